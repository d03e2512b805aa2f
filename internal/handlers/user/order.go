package user

import (
	"log"
	"net/http"

	"hanbloom_back_end/internal/database"
	"hanbloom_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

// GET /api/orders — commandes de l'utilisateur connecté, plus récentes d'abord
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orders, err := store.NewPostgresOrderStore(database.DB).ListByUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}
