package reviews

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

// AddReview handles POST /api/reviews. The reviewer must be a participant of
// the referenced order; after the write the target product's and/or
// farmer's aggregates are recomputed.
func AddReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Product string   `json:"product"`
		Farmer  string   `json:"farmer"`
		Order   string   `json:"order"`
		Rating  int      `json:"rating"`
		Comment string   `json:"comment"`
		Images  []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Order == "" || input.Comment == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Order and comment are required")
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	if input.Product == "" && input.Farmer == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "A product or farmer to review is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderNumber": input.Order}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Printf("review order lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if order.Customer != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the order's customer can review it")
		return
	}

	review := models.Review{
		ReviewID:  "r" + utils.GetUUID(),
		User:      userID,
		Product:   input.Product,
		Farmer:    input.Farmer,
		Order:     input.Order,
		Rating:    input.Rating,
		Comment:   input.Comment,
		Images:    input.Images,
		CreatedAt: time.Now(),
	}

	if _, err := db.ReviewCollection.InsertOne(ctx, review); err != nil {
		log.Printf("review insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create review")
		return
	}

	if review.Product != "" {
		if err := RecomputeProductRating(ctx, review.Product); err != nil {
			log.Printf("product rating recompute error: %v", err)
		}
	}
	if review.Farmer != "" {
		if err := RecomputeFarmerRating(ctx, review.Farmer); err != nil {
			log.Printf("farmer rating recompute error: %v", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, review)
}

// GetReviews handles GET /api/reviews/:entityType/:entityId.
func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var filter bson.M
	switch ps.ByName("entityType") {
	case "product":
		filter = bson.M{"product": ps.ByName("entityId")}
	case "farmer":
		filter = bson.M{"farmer": ps.ByName("entityId")}
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown entity type")
		return
	}

	reviews, err := utils.FindAndDecode[models.Review](ctx, db.ReviewCollection, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Printf("review list error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, reviews)
}

// RecomputeProductRating reads every review for the product and writes the
// average back. Read-all-then-average, not incremental; concurrent reviews
// can lose an update.
func RecomputeProductRating(ctx context.Context, productID string) error {
	reviews, err := utils.FindAndDecode[models.Review](ctx, db.ReviewCollection, bson.M{"product": productID})
	if err != nil {
		return err
	}
	rating, count := Average(reviews)
	_, err = db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$set": bson.M{"rating": rating, "totalReviews": count}},
	)
	return err
}

// RecomputeFarmerRating mirrors RecomputeProductRating for a farmer.
func RecomputeFarmerRating(ctx context.Context, farmerID string) error {
	reviews, err := utils.FindAndDecode[models.Review](ctx, db.ReviewCollection, bson.M{"farmer": farmerID})
	if err != nil {
		return err
	}
	rating, count := Average(reviews)
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": farmerID},
		bson.M{"$set": bson.M{"rating": rating, "totalReviews": count}},
	)
	return err
}

// Average folds a review set into (mean rating, count). Empty input yields
// (0, 0).
func Average(reviews []models.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	total := 0
	for _, rev := range reviews {
		total += rev.Rating
	}
	return float64(total) / float64(len(reviews)), len(reviews)
}
