package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vastra/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, userID, email string, expiry time.Time) string {
	t.Helper()
	claims := &Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func TestValidateJWT(t *testing.T) {
	token := signToken(t, "user123", "a@b.com", time.Now().Add(time.Hour))

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)

	// the Bearer prefix is stripped
	claims, err = ValidateJWT("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
}

func TestValidateJWTRejects(t *testing.T) {
	_, err := ValidateJWT("")
	assert.Error(t, err)

	_, err = ValidateJWT("not-a-jwt")
	assert.Error(t, err)

	expired := signToken(t, "user123", "a@b.com", time.Now().Add(-time.Hour))
	_, err = ValidateJWT(expired)
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	var gotUserID string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/api/orders", nil), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad format", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		handler(w, r, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token reaches handler", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/orders", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, "user123", "a@b.com", time.Now().Add(time.Hour)))
		w := httptest.NewRecorder()
		handler(w, r, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user123", gotUserID)
	})
}

func TestOptionalAuth(t *testing.T) {
	var gotUserID string
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous passes through", func(t *testing.T) {
		gotUserID = ""
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/api/products", nil), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, gotUserID)
	})

	t.Run("garbage token passes through anonymously", func(t *testing.T) {
		gotUserID = ""
		r := httptest.NewRequest("GET", "/api/products", nil)
		r.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		handler(w, r, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, gotUserID)
	})

	t.Run("valid token attaches userId", func(t *testing.T) {
		gotUserID = ""
		r := httptest.NewRequest("GET", "/api/products", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, "user456", "b@c.com", time.Now().Add(time.Hour)))
		w := httptest.NewRecorder()
		handler(w, r, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user456", gotUserID)
	})
}
