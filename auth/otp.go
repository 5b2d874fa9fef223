package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vastra/db"
	"vastra/models"
	"vastra/rdx"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const otpTTL = 10 * time.Minute

// SendOTP issues a 6-digit login code for a registered phone number.
func SendOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Phone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Phone number is required")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"phone": input.Phone}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Phone number not registered. Please sign up first.")
		return
	}

	otp := utils.GenerateRandomDigitString(6)
	if err := rdx.RdxSet("otp:"+input.Phone, otp, otpTTL); err != nil {
		log.Println("SendOTP store error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	// No SMS gateway wired up; the code goes to the account's email, or
	// the server log when mail isn't configured.
	if err := sendMail(user.Email, "Login OTP", "Your login OTP is: "+otp+". Valid for 10 minutes."); err != nil {
		log.Println("SendOTP delivery error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "OTP sent successfully"})
}

// VerifyOTP checks and consumes a login code. First-time phone logins get
// a minimal account created on the spot.
func VerifyOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Phone string `json:"phone"`
		OTP   string `json:"otp"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Phone == "" || input.OTP == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Phone and OTP are required")
		return
	}

	stored, err := rdx.RdxGet("otp:" + input.Phone)
	if err != nil || stored == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "OTP not found or expired")
		return
	}
	if stored != input.OTP {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid OTP")
		return
	}
	if err := rdx.RdxDel("otp:" + input.Phone); err != nil {
		log.Println("VerifyOTP cleanup error:", err)
	}

	var user models.User
	err = db.UserCollection.FindOne(ctx, bson.M{"phone": input.Phone}).Decode(&user)
	if err != nil {
		name := input.Name
		if name == "" {
			name = "User"
		}
		now := time.Now()
		user = models.User{
			ID:             primitive.NewObjectID().Hex(),
			Name:           name,
			Email:          input.Phone + "@phone.local",
			Phone:          input.Phone,
			Addresses:      []models.Address{},
			PaymentMethods: []models.PaymentMethod{},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
			log.Println("VerifyOTP create user error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify OTP")
			return
		}
	}

	token, err := generateAccessToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	cacheSession(user.ID, token)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Login successful",
		"token":   token,
		"user":    utils.M{"id": user.ID, "name": user.Name, "email": user.Email},
	})
}
