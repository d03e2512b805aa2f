package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("token manquant")
	ErrInvalidToken = errors.New("token invalide")
)

// ParseBearer valide un header Authorization et retourne l'identité portée
// par le token. Utilisé en strict par AuthRequired, et en best-effort par le
// checkout (un token invalide y dégrade en invité au lieu d'échouer).
func ParseBearer(authHeader, secret string) (userID, email string, err error) {
	if authHeader == "" {
		return "", "", ErrNoToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "", ErrInvalidToken
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}

	userID, ok = claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", ErrInvalidToken
	}
	email, _ = claims["email"].(string)

	return userID, email, nil
}

// AuthRequired protège les endpoints de compte (adresses, commandes...)
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, err := ParseBearer(c.GetHeader("Authorization"), secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant ou invalide"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("email", email)
		c.Next()
	}
}
