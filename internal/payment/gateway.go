package payment

import (
	"context"

	"hanbloom_back_end/internal/models"
)

// LineItem : ligne envoyée à la passerelle, montant en unité mineure
// (paisa/centimes) — c'est ce montant qui fait foi, pas le total affiché.
type LineItem struct {
	Name       string
	ImageURL   string
	UnitAmount int64 // round(prix * 100)
	Quantity   int64
}

// SessionParams : paramètres de création d'une session de paiement hébergée
type SessionParams struct {
	LineItems        []LineItem
	Currency         string
	SuccessURL       string
	CancelURL        string
	CustomerID       string // id client passerelle existant (optionnel)
	CustomerEmail    string // sinon email de contact (optionnel)
	AllowedCountries []string
}

// Session : vue locale d'une session de paiement, côté création comme
// côté relecture. PaymentStatus est le statut passerelle verbatim.
type Session struct {
	ID              string
	URL             string
	PaymentStatus   string
	AmountTotal     int64
	Currency        string
	CustomerEmail   string
	CustomerName    string
	CustomerPhone   string
	ShippingName    string
	ShippingAddress *models.ShippingAddress
	PaymentIntentID string
	Created         int64
}

// Gateway abstrait la capacité "session de paiement hébergée" du
// fournisseur. Une seule implémentation réelle (Stripe) ; l'interface
// existe pour que les handlers soient testables sans réseau.
type Gateway interface {
	// FindCustomerByEmail retourne l'id client passerelle, ou "" si aucun.
	// Best-effort : une erreur ici ne doit pas bloquer le checkout.
	FindCustomerByEmail(ctx context.Context, email string) (string, error)

	CreateSession(ctx context.Context, params *SessionParams) (*Session, error)

	// RetrieveSession relit la session en expansant client et lignes
	RetrieveSession(ctx context.Context, id string) (*Session, error)
}
