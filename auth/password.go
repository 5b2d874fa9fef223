package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"vastra/db"
	"vastra/rdx"
	"vastra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

// ForgotPassword issues a reset token. The response never reveals whether
// the address has an account.
func ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}

	neutral := map[string]string{"message": "If an account exists, a reset link will be sent."}

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil || count == 0 {
		utils.RespondWithJSON(w, http.StatusOK, neutral)
		return
	}

	token := utils.GenerateRandomString(24)
	if err := rdx.RdxSet("pwreset:"+token, input.Email, resetTokenTTL); err != nil {
		log.Println("ForgotPassword store error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	baseURL := os.Getenv("APP_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	body := "Click the link below to reset your password. This link expires in 1 hour.\r\n" +
		baseURL + "/reset-password?token=" + token
	if err := sendMail(input.Email, "Password Reset", body); err != nil {
		log.Println("ForgotPassword delivery error:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, neutral)
}

// ResetPassword consumes a reset token and stores the new hash.
func ResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Token == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Token and password are required")
		return
	}

	email, err := rdx.RdxGet("pwreset:" + input.Token)
	if err != nil || email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password": string(hash), "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := rdx.RdxDel("pwreset:" + input.Token); err != nil {
		log.Println("ResetPassword cleanup error:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Password reset successful"})
}
