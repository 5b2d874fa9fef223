package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"vastra/db"
	"vastra/models"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// AddPaymentMethod stores display data only; nothing here ever sees a full
// card number.
func AddPaymentMethod(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var method models.PaymentMethod
	if err := json.NewDecoder(r.Body).Decode(&method); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if method.Type == "" {
		method.Type = "card"
	}
	method.ID = utils.GetUUID()

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$push": bson.M{"paymentMethods": method},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := fetchUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load payment methods")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Payment method added", "paymentMethods": user.PaymentMethods})
}

func DeletePaymentMethod(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Payment method ID required")
		return
	}

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"paymentMethods": bson.M{"id": id}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := fetchUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load payment methods")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Payment method deleted", "paymentMethods": user.PaymentMethods})
}
