package products

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"time"

	"vastra/db"
	"vastra/models"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MeanRating is the running mean of embedded review ratings, rounded to
// one decimal. Zero when there are no reviews.
func MeanRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, rev := range reviews {
		sum += rev.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}

func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"_id": ps.ByName("id")}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}

	reviews := product.Reviews
	if reviews == nil {
		reviews = []models.Review{}
	}
	utils.RespondWithJSON(w, http.StatusOK, reviews)
}

// AddReview appends an embedded review and recomputes the product's mean
// rating in the same update.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Rating < 1 || input.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating required")
		return
	}

	productID := ps.ByName("id")
	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}

	review := models.Review{
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}
	reviews := append(product.Reviews, review)

	_, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{
			"reviews":   reviews,
			"rating":    MeanRating(reviews),
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		log.Println("AddReview UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add review")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true})
}

// GetOrderRatings surfaces the other review mechanism: ratings attached to
// delivered orders that contain this product.
func GetOrderRatings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"items.productId": ps.ByName("id"),
		"status":          models.OrderDelivered,
		"rating.stars":    bson.M{"$exists": true},
	}
	opts := options.Find().SetSort(bson.D{{Key: "rating.createdAt", Value: -1}})

	cursor, err := db.OrderCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetOrderRatings Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ratings")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		log.Println("GetOrderRatings cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ratings")
		return
	}

	ratings := []utils.M{}
	for _, order := range orders {
		if order.Rating == nil {
			continue
		}
		userName := "Anonymous User"
		var user models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user); err == nil && user.Name != "" {
			userName = user.Name
		}
		ratings = append(ratings, utils.M{
			"stars":     order.Rating.Stars,
			"review":    order.Rating.Review,
			"createdAt": order.Rating.CreatedAt,
			"userName":  userName,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, ratings)
}
