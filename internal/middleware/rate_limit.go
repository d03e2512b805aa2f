package middleware

import (
	"context"
	"net/http"
	"time"

	"hanbloom_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	// Limites par endpoint
	CheckoutMaxAttempts = 10
	APIMaxRequests      = 100 // par minute pour les endpoints généraux

	// Durées de fenêtre
	CheckoutWindow = 1 * time.Minute
	APIWindow      = 1 * time.Minute
)

// CheckoutRateLimit limite les créations de session de paiement par IP.
// Fenêtre fixe Redis ; si Redis tousse on laisse passer, le rate limit
// n'est pas un point de défaillance du checkout.
func CheckoutRateLimit() gin.HandlerFunc {
	return rateLimit("checkout", CheckoutMaxAttempts, CheckoutWindow)
}

// APIRateLimit limite les endpoints généraux par IP
func APIRateLimit() gin.HandlerFunc {
	return rateLimit("api", APIMaxRequests, APIWindow)
}

func rateLimit(scope string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "ratelimit:" + scope + ":" + c.ClientIP()

		count, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}

		if count == 1 {
			database.Redis.Expire(ctx, key, window)
		}

		if count > int64(max) {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de requêtes, réessayez plus tard",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
