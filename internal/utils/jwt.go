package utils

import (
	"time"

	"hanbloom_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func GenerateJWT(user *models.User, secret string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
