package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"ukulima/db"
	"ukulima/models"
	"ukulima/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProducts handles GET /api/products with the catalog filters.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filters := ParseCatalogFilters(r.URL.Query())
	query := BuildProductFilter(filters)
	page, limit := utils.ParsePage(r, 12, 100)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(utils.Skip(page, limit)).
		SetLimit(int64(limit))

	items, err := utils.FindAndDecode[models.Product](ctx, db.ProductCollection, query, opts)
	if err != nil {
		log.Printf("product list error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	total, err := db.ProductCollection.CountDocuments(ctx, query)
	if err != nil {
		log.Printf("product count error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"products":    items,
		"totalPages":  utils.TotalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// GetProduct returns one product and bumps its view counter.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOneAndUpdate(ctx,
		bson.M{"productid": ps.ByName("id")},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Printf("product fetch error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /api/products/product. Farmer role only.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if utils.GetRoleFromRequest(r) != models.RoleFarmer {
		utils.RespondWithError(w, http.StatusForbidden, "Only farmers can create products")
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := validateProduct(&product); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	product.ProductID = "p" + utils.GetUUID()
	product.Farmer = userID
	product.IsAvailable = product.Quantity > 0
	product.Rating = 0
	product.TotalReviews = 0
	product.Views = 0
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.MinOrder < 1 {
		product.MinOrder = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Printf("product insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/product/:id. Owning farmer only.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&existing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if existing.Farmer != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to update this product")
		return
	}

	var input models.Product
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := validateProduct(&input); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	update := bson.M{"$set": bson.M{
		"name":        input.Name,
		"description": input.Description,
		"category":    input.Category,
		"subcategory": input.Subcategory,
		"price":       input.Price,
		"unit":        input.Unit,
		"quantity":    input.Quantity,
		"minOrder":    input.MinOrder,
		"images":      input.Images,
		"location":    input.Location,
		"isOrganic":   input.IsOrganic,
		"isFresh":     input.IsFresh,
		"harvestDate": input.HarvestDate,
		"expiryDate":  input.ExpiryDate,
		"tags":        input.Tags,
		"isAvailable": input.Quantity > 0,
		"updatedAt":   time.Now(),
	}}

	var updated models.Product
	err := db.ProductCollection.FindOneAndUpdate(ctx,
		bson.M{"productid": productID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		log.Printf("product update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteProduct handles DELETE /api/products/product/:id. Owning farmer only.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&existing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if existing.Farmer != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to delete this product")
		return
	}

	if _, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": productID}); err != nil {
		log.Printf("product delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Product removed"})
}

// GetFarmerProducts handles GET /api/products/farmer/:farmerId.
func GetFarmerProducts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := utils.FindAndDecode[models.Product](ctx, db.ProductCollection, bson.M{
		"farmer":      ps.ByName("farmerId"),
		"isAvailable": true,
	}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Printf("farmer products error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

func validateProduct(p *models.Product) string {
	if p.Name == "" || p.Description == "" {
		return "Name and description are required"
	}
	if !contains(models.ProductCategories, p.Category) {
		return "Invalid category"
	}
	if p.Subcategory == "" {
		return "Subcategory is required"
	}
	if !contains(models.ProductUnits, p.Unit) {
		return "Invalid unit"
	}
	if p.Price <= 0 {
		return "Price must be positive"
	}
	if p.Quantity < 0 {
		return "Quantity cannot be negative"
	}
	if p.MinOrder < 0 {
		return "Minimum order cannot be negative"
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
