package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// CustomerDetails : coordonnées rapportées par la passerelle après paiement
type CustomerDetails struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ShippingAddress : adresse de livraison collectée par la page de paiement
type ShippingAddress struct {
	Name       string `json:"name,omitempty"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Order reflète localement une session de paiement et son issue.
// payment_session_id est la clé de jointure avec la session externe,
// immuable une fois posée. Le statut ne va que de pending vers paid/failed.
type Order struct {
	ID               uuid.UUID        `json:"id"`
	UserID           *string          `json:"user_id"` // nil = invité
	OrderNumber      string           `json:"order_number"`
	LineItems        []CartLineItem   `json:"line_items"`
	TotalAmount      float64          `json:"total_amount"`
	Status           OrderStatus      `json:"status"`
	ShippingAddress  *ShippingAddress `json:"shipping_address"`
	CustomerDetails  *CustomerDetails `json:"customer_details"`
	PaymentSessionID string           `json:"payment_session_id"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
