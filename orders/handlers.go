package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"vastra/db"
	"vastra/models"
	"vastra/mq"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findOwnedOrder scopes the lookup to the caller. "Not yours" and "not
// found" are indistinguishable on purpose.
func findOwnedOrder(ctx context.Context, orderID, userID string) (*models.Order, error) {
	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID, "userId": userID}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	skip, limit := utils.ParsePagination(r, 50, 200)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := db.OrderCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		log.Println("GetOrders Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("GetOrders cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if len(list) == 0 {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, err := findOwnedOrder(ctx, ps.ByName("orderId"), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// TrackOrder returns the order plus its tracking stages, advancing the
// simulated progression first when the order is still in flight. Reads of
// in-flight orders therefore persist the recomputed stages (a mutating
// read); settled orders are returned untouched.
func TrackOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Order ID is required")
		return
	}

	order, err := findOwnedOrder(ctx, orderID, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if now := time.Now(); Trackable(order.Status) && !TrackingCurrent(order, now) {
		if err := advance(ctx, order, now); err != nil {
			log.Println("TrackOrder advance error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to track order")
			return
		}
	}

	tracking := order.TrackingStatus
	if tracking == nil {
		tracking = []models.TrackingStage{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"order":    order,
		"tracking": tracking,
	})
}

// advance recomputes tracking for an in-flight order, persists it together
// with any status change, and publishes the update. The order is mutated
// in place. Idempotent for a fixed now.
func advance(ctx context.Context, order *models.Order, now time.Time) error {
	elapsed := DaysSince(order.CreatedAt, now)
	order.TrackingStatus = BuildTracking(order.CreatedAt, order.DeliveryDate, now)
	order.Status = NextStatus(order.Status, elapsed)
	order.UpdatedAt = now

	_, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{
			"trackingStatus": order.TrackingStatus,
			"status":         order.Status,
			"updatedAt":      now,
		}},
	)
	if err != nil {
		return err
	}

	latest := order.TrackingStatus[len(order.TrackingStatus)-1]
	mq.EmitOrderEvent(ctx, mq.OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Stage:       latest.Stage,
		Message:     latest.Message,
	})
	return nil
}

func CancelOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		OrderID string `json:"orderId"`
		Reason  string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.OrderID == "" || input.Reason == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Order ID and reason are required")
		return
	}

	order, err := findOwnedOrder(ctx, input.OrderID, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if !CanCancel(order.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("Cannot cancel %s order", order.Status))
		return
	}

	now := time.Now()
	order.Status = models.OrderCancelled
	order.CancellationReason = input.Reason
	order.UpdatedAt = now

	_, err = db.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{
			"status":             models.OrderCancelled,
			"cancellationReason": input.Reason,
			"updatedAt":          now,
		}},
	)
	if err != nil {
		log.Println("CancelOrder UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	mq.EmitOrderEvent(ctx, mq.OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      models.OrderCancelled,
		Message:     input.Reason,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

// RateOrder attaches a rating to a delivered order. A repeat call
// replaces the stored rating; "rate once" is a client convention, not a
// server rule.
func RateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		OrderID string `json:"orderId"`
		Stars   int    `json:"stars"`
		Review  string `json:"review"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.OrderID == "" || input.Stars == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Order ID and rating are required")
		return
	}
	if input.Stars < 1 || input.Stars > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	order, err := findOwnedOrder(ctx, input.OrderID, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if order.Status != models.OrderDelivered {
		utils.RespondWithError(w, http.StatusBadRequest, "Can only rate delivered orders")
		return
	}

	rating := models.OrderRating{
		Stars:     input.Stars,
		Review:    input.Review,
		CreatedAt: time.Now(),
	}

	_, err = db.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{"rating": rating, "updatedAt": rating.CreatedAt}},
	)
	if err != nil {
		log.Println("RateOrder UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add rating")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Rating added successfully",
		"rating":  rating,
	})
}
