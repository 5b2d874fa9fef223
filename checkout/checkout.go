package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	rndm "math/rand"
	"net/http"
	"time"

	"vastra/db"
	"vastra/models"
	"vastra/mq"
	"vastra/razorpay"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service coordinates checkout: it builds Orders from cart snapshots and
// settles them against the payment gateway.
type Service struct {
	Gateway *razorpay.Client
}

func NewService() *Service {
	return &Service{Gateway: razorpay.NewClient()}
}

// CartLine is one client-submitted cart entry.
type CartLine struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// GenerateOrderNumber builds the human-facing order identifier. Not
// globally unique by construction; the unique index on orderNumber turns a
// collision into a loud insert failure.
func GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%03d", time.Now().UnixMilli(), rndm.Intn(1000))
}

// SnapshotItems copies cart lines into order items, resolving titles and
// images from the catalog. A missing product falls back to a placeholder
// title and the line's own price rather than failing the order.
func SnapshotItems(lines []CartLine, catalog map[string]models.Product) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		item := models.OrderItem{
			ProductID: line.Product,
			Title:     "Product",
			Quantity:  line.Quantity,
			Price:     line.Price,
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if p, ok := catalog[line.Product]; ok {
			if p.Title != "" {
				item.Title = p.Title
			}
			if len(p.Images) > 0 {
				item.Image = p.Images[0]
			}
			if item.Price == 0 {
				item.Price = p.Price
			}
		}
		items = append(items, item)
	}
	return items
}

// SnapshotTotal sums price*quantity over the snapshots.
func SnapshotTotal(items []models.OrderItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// TotalsMatch tolerates sub-paisa float drift between the client total and
// the server-side recomputation.
func TotalsMatch(clientTotal, serverTotal float64) bool {
	return math.Abs(clientTotal-serverTotal) < 0.01
}

// VerifyOutcome is what a verification attempt does to an order.
type VerifyOutcome int

const (
	VerifyAccept   VerifyOutcome = iota // awaiting payment, signature good
	VerifyReject                        // awaiting payment, signature bad
	VerifyRepeat                        // already fulfilled, still-valid signature
	VerifyConflict                      // any other state
)

// ClassifyVerify gates verification on the order's status. Only an order
// still awaiting payment can transition; a repeated valid verify against a
// fulfilled order is a no-op, everything else is a conflict.
func ClassifyVerify(status string, valid bool) VerifyOutcome {
	if status == models.OrderCreated {
		if valid {
			return VerifyAccept
		}
		return VerifyReject
	}
	if valid && status == models.OrderProcessing {
		return VerifyRepeat
	}
	return VerifyConflict
}

// CreateOrder persists an Order from the caller's cart and opens a payment
// intent with the gateway. The owner is always the authenticated user; the
// submitted total is checked against the snapshot sum.
func (s *Service) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Items       []CartLine `json:"items"`
		TotalAmount float64    `json:"totalAmount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if len(input.Items) == 0 || input.TotalAmount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	productIDs := make([]string, 0, len(input.Items))
	for _, line := range input.Items {
		productIDs = append(productIDs, line.Product)
	}

	catalog := map[string]models.Product{}
	cursor, err := db.ProductCollection.Find(ctx, bson.M{"_id": bson.M{"$in": productIDs}})
	if err == nil {
		var found []models.Product
		if err := cursor.All(ctx, &found); err == nil {
			for _, p := range found {
				catalog[p.ID] = p
			}
		}
		cursor.Close(ctx)
	}

	items := SnapshotItems(input.Items, catalog)
	serverTotal := SnapshotTotal(items)
	if !TotalsMatch(input.TotalAmount, serverTotal) {
		utils.RespondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Order total mismatch: expected %.2f", serverTotal))
		return
	}

	now := time.Now()
	order := models.Order{
		ID:          primitive.NewObjectID().Hex(),
		OrderNumber: GenerateOrderNumber(),
		UserID:      userID,
		Items:       items,
		TotalAmount: input.TotalAmount,
		Status:      models.OrderCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Order number collision, please retry")
			return
		}
		log.Println("CreateOrder InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	// An order without a gateway id is the recognized transient state:
	// checkout never completed and the client may retry with a new order.
	amountPaise := int64(math.Round(input.TotalAmount * 100))
	gatewayOrder, err := s.Gateway.CreateOrder(ctx, amountPaise, order.ID)
	if err != nil {
		log.Println("CreateOrder gateway error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Payment gateway unavailable")
		return
	}

	_, err = db.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{"razorpayOrderId": gatewayOrder.ID, "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Println("CreateOrder UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"razorOrderId": gatewayOrder.ID,
		"orderId":      order.ID,
		"orderNumber":  order.OrderNumber,
	})
}

// VerifyPayment authenticates the gateway callback. A valid signature is
// the sole transition into fulfillment; an invalid one is terminal.
func (s *Service) VerifyPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var input struct {
		RazorpayOrderID   string `json:"razorpay_order_id"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.RazorpayOrderID == "" || input.RazorpayPaymentID == "" || input.RazorpaySignature == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"razorpayOrderId": input.RazorpayOrderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	valid := razorpay.VerifySignature(s.Gateway.KeySecret, input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature)

	switch ClassifyVerify(order.Status, valid) {
	case VerifyRepeat:
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Payment already verified", "orderId": order.ID})
		return
	case VerifyConflict:
		utils.RespondWithError(w, http.StatusConflict, "Order is not awaiting payment")
		return
	case VerifyReject:
		_, err := db.OrderCollection.UpdateOne(ctx,
			bson.M{"_id": order.ID},
			bson.M{"$set": bson.M{"status": models.OrderFailed, "updatedAt": time.Now()}},
		)
		if err != nil {
			log.Println("VerifyPayment mark failed error:", err)
		}
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	now := time.Now()
	deliveryDate := now.Add(7 * 24 * time.Hour)
	tracking := []models.TrackingStage{{
		Stage:     models.StageProcessing,
		Message:   "Order confirmed and being processed",
		UpdatedAt: now,
	}}

	_, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{
			"status":            models.OrderProcessing,
			"razorpayPaymentId": input.RazorpayPaymentID,
			"razorpaySignature": input.RazorpaySignature,
			"deliveryDate":      deliveryDate,
			"trackingStatus":    tracking,
			"updatedAt":         now,
		}},
	)
	if err != nil {
		log.Println("VerifyPayment UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify payment")
		return
	}

	mq.EmitOrderEvent(ctx, mq.OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      models.OrderProcessing,
		Stage:       models.StageProcessing,
		Message:     "Order confirmed and being processed",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Payment verified", "orderId": order.ID})
}
