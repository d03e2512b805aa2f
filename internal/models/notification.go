package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification : message in-app lié à une commande (paiement confirmé, échec...)
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	OrderID   uuid.UUID `json:"order_id"`
	Type      string    `json:"type"` // order_paid, order_failed
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
