package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"ukulima/apperr"
	"ukulima/db"
	"ukulima/models"
	"ukulima/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderItemInput struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type createOrderInput struct {
	Items           []orderItemInput       `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	DeliveryMethod  string                 `json:"deliveryMethod"`
	PaymentMethod   string                 `json:"paymentMethod"`
	Notes           string                 `json:"notes"`
}

// CreateOrder handles POST /api/orders/order.
//
// Items are validated first (existence, stock, minOrder, single farmer), then
// stock is decremented per item with a conditional update so no product can
// go negative under concurrent orders. Cross-item atomicity is best-effort:
// if a decrement loses a race partway through, the earlier ones are
// re-incremented before the request fails.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input createOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || len(input.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.DeliveryMethod == "" {
		input.DeliveryMethod = models.DeliveryPickup
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = models.PayMpesa
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := buildOrder(ctx, userID, input)
	if err != nil {
		respondOrderError(w, err)
		return
	}

	if err := decrementStock(ctx, order.Items); err != nil {
		respondOrderError(w, err)
		return
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		// order document failed, give the stock back
		compensateStock(ctx, order.Items, len(order.Items))
		log.Printf("order insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// buildOrder validates every line item and assembles the order with
// snapshotted prices. Nothing is written yet.
func buildOrder(ctx context.Context, customerID string, input createOrderInput) (*models.Order, error) {
	var (
		items       []models.OrderItem
		totalAmount float64
		farmerID    string
	)

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", apperr.ErrInvalidInput)
		}

		var product models.Product
		err := db.ProductCollection.FindOne(ctx, bson.M{"productid": item.Product}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, item.Product)
		}
		if err != nil {
			return nil, err
		}

		line, err := makeLineItem(product, item.Quantity)
		if err != nil {
			return nil, err
		}

		// single-farmer orders only
		if farmerID == "" {
			farmerID = product.Farmer
		} else if product.Farmer != farmerID {
			return nil, fmt.Errorf("%w: all items must belong to the same farmer", apperr.ErrInvalidInput)
		}

		totalAmount += line.Price * float64(line.Quantity)
		items = append(items, line)
	}

	now := time.Now()
	return &models.Order{
		OrderNumber:     newOrderNumber(now),
		Customer:        customerID,
		Farmer:          farmerID,
		Items:           items,
		TotalAmount:     totalAmount,
		ShippingAddress: input.ShippingAddress,
		DeliveryMethod:  input.DeliveryMethod,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// makeLineItem checks one requested line against the product's stock rules
// and snapshots the current unit price into the line.
func makeLineItem(product models.Product, qty int) (models.OrderItem, error) {
	if product.Quantity < qty {
		return models.OrderItem{}, fmt.Errorf("%w: %s has %d available", apperr.ErrInsufficientStock, product.Name, product.Quantity)
	}
	if qty < product.MinOrder {
		return models.OrderItem{}, fmt.Errorf("%w: minimum for %s is %d", apperr.ErrBelowMinimumOrder, product.Name, product.MinOrder)
	}
	return models.OrderItem{
		Product:  product.ProductID,
		Quantity: qty,
		Price:    product.Price,
	}, nil
}

// newOrderNumber builds a receipt-style reference. The random suffix avoids
// the collisions a bare timestamp+count scheme has under concurrent creation;
// the unique index on orderNumber backstops it.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("UK%d%s", now.UnixMilli(), utils.GenerateRandomDigitString(6))
}

// decrementStock applies each line's decrement with a conditional filter so a
// concurrent order cannot drive stock negative. On failure at item i the
// first i decrements are compensated.
func decrementStock(ctx context.Context, items []models.OrderItem) error {
	for i, item := range items {
		res, err := db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": item.Product, "quantity": bson.M{"$gte": item.Quantity}},
			bson.M{
				"$inc": bson.M{"quantity": -item.Quantity},
				"$set": bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil || res.ModifiedCount == 0 {
			compensateStock(ctx, items, i)
			if err != nil {
				return err
			}
			return fmt.Errorf("%w: product %s", apperr.ErrInsufficientStock, item.Product)
		}

		// flip availability once stock hits exactly zero
		db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": item.Product, "quantity": 0},
			bson.M{"$set": bson.M{"isAvailable": false}},
		)
	}
	return nil
}

// compensateStock re-increments the first n items after a partial failure.
func compensateStock(ctx context.Context, items []models.OrderItem, n int) {
	for _, item := range items[:n] {
		_, err := db.ProductCollection.UpdateOne(ctx,
			bson.M{"productid": item.Product},
			bson.M{
				"$inc": bson.M{"quantity": item.Quantity},
				"$set": bson.M{"isAvailable": true, "updatedAt": time.Now()},
			},
		)
		if err != nil {
			log.Printf("stock compensation failed for %s: %v", item.Product, err)
		}
	}
}

// GetMyOrders handles GET /api/orders/myorders — orders where the caller is
// customer or farmer, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrderCollection, bson.M{
		"$or": []bson.M{{"customer": userID}, {"farmer": userID}},
	}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Printf("orders list error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/order/:id. Participants only.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := findOrder(ctx, ps.ByName("id"))
	if err != nil {
		respondOrderError(w, err)
		return
	}
	if _, err := ActorFor(order, userID); err != nil {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to view this order")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus handles PUT /api/orders/order/:id/status.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := findOrder(ctx, ps.ByName("id"))
	if err != nil {
		respondOrderError(w, err)
		return
	}

	actor, err := ActorFor(order, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to update this order")
		return
	}
	if err := CheckTransition(actor, order.Status, input.Status); err != nil {
		respondOrderError(w, err)
		return
	}

	update := bson.M{"status": input.Status, "updatedAt": time.Now()}
	if input.Status == models.OrderDelivered {
		now := time.Now()
		update["deliveryDate"] = now
	}

	var updated models.Order
	err = db.OrderCollection.FindOneAndUpdate(ctx,
		bson.M{"orderNumber": order.OrderNumber},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		log.Printf("order status update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// UpdatePaymentStatus handles PUT /api/orders/order/:id/payment. Customer only;
// the mpesa code is stored as an opaque reference, never verified.
func UpdatePaymentStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		PaymentStatus string `json:"paymentStatus"`
		MpesaCode     string `json:"mpesaCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !validPaymentStatuses[input.PaymentStatus] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := findOrder(ctx, ps.ByName("id"))
	if err != nil {
		respondOrderError(w, err)
		return
	}
	if order.Customer != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to update payment status")
		return
	}

	update := bson.M{"paymentStatus": input.PaymentStatus, "updatedAt": time.Now()}
	if input.MpesaCode != "" {
		update["mpesaCode"] = input.MpesaCode
	}

	var updated models.Order
	err = db.OrderCollection.FindOneAndUpdate(ctx,
		bson.M{"orderNumber": order.OrderNumber},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		log.Printf("payment update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update payment")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func findOrder(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: order", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func respondOrderError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("order error: %v", err)
		utils.RespondWithError(w, status, "Server error")
		return
	}
	msg := err.Error()
	if errors.Is(err, apperr.ErrForbidden) {
		msg = "Customers can only mark orders delivered or cancel them"
	}
	utils.RespondWithError(w, status, msg)
}
