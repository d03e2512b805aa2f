package user

import (
	"errors"
	"net/http"

	"hanbloom_back_end/internal/database"
	"hanbloom_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /api/notifications
func GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")

	notifs, err := store.NewPostgresNotificationStore(database.DB).ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture notifications"})
		return
	}

	unread := 0
	for _, n := range notifs {
		if !n.Read {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifs, "unread": unread})
}

// PUT /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	userID := c.GetString("user_id")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID notification invalide"})
		return
	}

	if err := store.NewPostgresNotificationStore(database.DB).MarkRead(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, store.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"read": true})
}
