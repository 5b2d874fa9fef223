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

func fetchUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func userResponse(user *models.User) utils.M {
	addresses := user.Addresses
	if addresses == nil {
		addresses = []models.Address{}
	}
	methods := user.PaymentMethods
	if methods == nil {
		methods = []models.PaymentMethod{}
	}
	return utils.M{
		"_id":            user.ID,
		"name":           user.Name,
		"email":          user.Email,
		"phone":          user.Phone,
		"addresses":      addresses,
		"paymentMethods": methods,
	}
}

func GetMe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := fetchUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, userResponse(user))
}

// UpdateProfile changes name/email/phone, rejecting duplicates on the
// unique fields.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	user, err := fetchUser(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	update := bson.M{"updatedAt": time.Now()}

	if input.Email != "" && input.Email != user.Email {
		count, err := db.UserCollection.CountDocuments(ctx, bson.M{"email": input.Email})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}
		if count > 0 {
			utils.RespondWithError(w, http.StatusConflict, "Email already in use")
			return
		}
		update["email"] = input.Email
		user.Email = input.Email
	}

	if input.Phone != "" && input.Phone != user.Phone {
		count, err := db.UserCollection.CountDocuments(ctx, bson.M{"phone": input.Phone})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}
		if count > 0 {
			utils.RespondWithError(w, http.StatusConflict, "Phone number already in use")
			return
		}
		update["phone"] = input.Phone
		user.Phone = input.Phone
	}

	if input.Name != "" {
		update["name"] = input.Name
		user.Name = input.Name
	}

	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": update}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, userResponse(user))
}
