package models

import "time"

// Fulfillment statuses
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderInTransit = "in_transit"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Payment statuses
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment methods
const (
	PayMpesa = "mpesa"
	PayCash  = "cash"
	PayBank  = "bank"
)

// Delivery methods
const (
	DeliveryPickup   = "pickup"
	DeliveryDoorstep = "delivery"
)

// OrderItem carries the unit price snapshotted at order time. It never
// changes afterwards, even if the product is repriced.
type OrderItem struct {
	Product  string  `json:"product" bson:"product"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
}

type ShippingAddress struct {
	County         string `json:"county,omitempty" bson:"county,omitempty"`
	SubCounty      string `json:"subCounty,omitempty" bson:"subCounty,omitempty"`
	Street         string `json:"street,omitempty" bson:"street,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty" bson:"additionalInfo,omitempty"`
}

type Order struct {
	OrderNumber     string          `json:"orderNumber" bson:"orderNumber"`
	Customer        string          `json:"customer" bson:"customer"`
	Farmer          string          `json:"farmer" bson:"farmer"`
	Items           []OrderItem     `json:"items" bson:"items"`
	TotalAmount     float64         `json:"totalAmount" bson:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	DeliveryMethod  string          `json:"deliveryMethod" bson:"deliveryMethod"`
	Status          string          `json:"status" bson:"status"`
	PaymentStatus   string          `json:"paymentStatus" bson:"paymentStatus"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod"`
	MpesaCode       string          `json:"mpesaCode" bson:"mpesaCode"`
	DeliveryDate    *time.Time      `json:"deliveryDate,omitempty" bson:"deliveryDate,omitempty"`
	Notes           string          `json:"notes" bson:"notes"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}
