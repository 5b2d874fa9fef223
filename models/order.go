package models

import "time"

// Order statuses
const (
	OrderCreated    = "created"
	OrderFailed     = "failed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Tracking stages
const (
	StageProcessing     = "processing"
	StageShipped        = "shipped"
	StageInTransit      = "in_transit"
	StageOutForDelivery = "out_for_delivery"
	StageDelivered      = "delivered"
)

// OrderItem is a snapshot of a product at purchase time. It is never
// re-synced with the catalog; later price or title edits must not alter
// historical orders.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Title     string  `json:"title" bson:"title"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

type TrackingStage struct {
	Stage     string    `json:"stage" bson:"stage"`
	Message   string    `json:"message" bson:"message"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type OrderRating struct {
	Stars     int       `json:"stars" bson:"stars"`
	Review    string    `json:"review,omitempty" bson:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Order struct {
	ID                 string          `json:"_id" bson:"_id"`
	OrderNumber        string          `json:"orderNumber" bson:"orderNumber"`
	UserID             string          `json:"userId" bson:"userId"`
	Items              []OrderItem     `json:"items" bson:"items"`
	TotalAmount        float64         `json:"totalAmount" bson:"totalAmount"`
	Status             string          `json:"status" bson:"status"`
	RazorpayOrderID    string          `json:"razorpayOrderId,omitempty" bson:"razorpayOrderId,omitempty"`
	RazorpayPaymentID  string          `json:"razorpayPaymentId,omitempty" bson:"razorpayPaymentId,omitempty"`
	RazorpaySignature  string          `json:"razorpaySignature,omitempty" bson:"razorpaySignature,omitempty"`
	DeliveryDate       *time.Time      `json:"deliveryDate,omitempty" bson:"deliveryDate,omitempty"`
	TrackingStatus     []TrackingStage `json:"trackingStatus,omitempty" bson:"trackingStatus,omitempty"`
	CancellationReason string          `json:"cancellationReason,omitempty" bson:"cancellationReason,omitempty"`
	Rating             *OrderRating    `json:"rating,omitempty" bson:"rating,omitempty"`
	CreatedAt          time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt" bson:"updatedAt"`
}
