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

func AddAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var address models.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if address.Line1 == "" || address.City == "" || address.State == "" || address.Zip == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing address fields")
		return
	}
	address.ID = utils.GetUUID()

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$push": bson.M{"addresses": address},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := fetchUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load addresses")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Address added", "addresses": user.Addresses})
}

func UpdateAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var address models.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil || address.ID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Address ID required")
		return
	}

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID, "addresses.id": address.ID},
		bson.M{
			"$set": bson.M{"addresses.$": address, "updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update address")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}

	user, err := fetchUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load addresses")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Address updated", "addresses": user.Addresses})
}

func DeleteAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Address ID required")
		return
	}

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"addresses": bson.M{"id": id}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := fetchUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load addresses")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Address deleted", "addresses": user.Addresses})
}
