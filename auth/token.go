package auth

import (
	"time"

	"vastra/globals"
	"vastra/middleware"
	"vastra/models"

	"github.com/golang-jwt/jwt/v5"
)

const accessTokenTTL = 7 * 24 * time.Hour

func generateAccessToken(user models.User) (string, error) {
	claims := middleware.Claims{
		Email:  user.Email,
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
