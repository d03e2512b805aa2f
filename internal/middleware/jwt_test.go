package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestParseBearer_Valid(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{
		"user_id": "user-42",
		"email":   "mina@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	userID, email, err := ParseBearer("Bearer "+token, testSecret)

	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
	assert.Equal(t, "mina@example.com", email)
}

func TestParseBearer_Missing(t *testing.T) {
	_, _, err := ParseBearer("", testSecret)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestParseBearer_BadFormat(t *testing.T) {
	_, _, err := ParseBearer("Basic abc123", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseBearer_Expired(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{
		"user_id": "user-42",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	_, _, err := ParseBearer("Bearer "+token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseBearer_WrongSecret(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{
		"user_id": "user-42",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, _, err := ParseBearer("Bearer "+token, "autre_secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseBearer_MissingUserID(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{
		"email": "mina@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, _, err := ParseBearer("Bearer "+token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})

	// Sans token
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Avec token valide
	token := mintToken(t, jwt.MapClaims{
		"user_id": "user-42",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-42")
}
