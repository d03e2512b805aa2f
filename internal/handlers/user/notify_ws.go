package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"hanbloom_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// API ouverte à toutes les origines, comme le reste du CORS
		return true
	},
}

// NotificationsWebSocket pousse en temps réel les notifications de commande
// (paiement confirmé, échec) vers le storefront.
//
// GET /api/notifications/ws
func NotificationsWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pubsub := database.Redis.Subscribe(ctx, "notifications:"+userID)
	defer pubsub.Close()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Notifications temps réel activées",
	})

	// Détecter la fermeture côté client
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var payload map[string]interface{}
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				continue
			}

			if err := conn.WriteJSON(payload); err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
