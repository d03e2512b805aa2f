package checkout

import (
	"context"
	"log"
	"net/http"
	"time"

	"hanbloom_back_end/internal/models"
	"hanbloom_back_end/internal/payment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type customerInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type checkoutRequest struct {
	Items           []models.CartLineItem   `json:"items"`
	CustomerInfo    *customerInfo           `json:"customer_info"`
	ShippingAddress *models.ShippingAddress `json:"shipping_address"`
}

// CheckoutResult : issue de la création de session. PersistErr non nil
// signale un échec partiel — l'URL de paiement reste utilisable, seul le
// miroir local a raté. À l'appelant de décider s'il alerte les opérateurs.
type CheckoutResult struct {
	URL        string
	SessionID  string
	Order      *models.Order
	PersistErr error
}

// CreateSession crée une session de paiement hébergée et enregistre la
// commande pending correspondante.
//
// POST /api/checkout/session
func (h *Handler) CreateSession(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if reason := validateItems(req.Items); reason != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": reason})
		return
	}

	providedEmail := ""
	if req.CustomerInfo != nil {
		providedEmail = req.CustomerInfo.Email
	}
	identity := ResolveIdentity(c.GetHeader("Authorization"), providedEmail, h.Cfg.JWTSecret)

	ctx, cancel := context.WithTimeout(c.Request.Context(), createTimeout)
	defer cancel()

	result, err := h.createSession(ctx, req, identity, requestOrigin(c, h.Cfg.FrontendURL))
	if err != nil {
		writeGatewayError(c, err)
		return
	}

	if result.PersistErr != nil {
		// Échec partiel assumé : la session passerelle existe, le client
		// peut payer, mais la commande locale n'a pas été écrite
		log.Printf("⚠️ Session %s créée mais commande non enregistrée: %v", result.SessionID, result.PersistErr)
	} else {
		log.Printf("💳 Checkout créé: %s (%.2f %s) pour %s", result.SessionID,
			result.Order.TotalAmount, h.Cfg.Currency, identityLabel(identity))
	}

	c.JSON(http.StatusOK, gin.H{
		"url":        result.URL,
		"session_id": result.SessionID,
	})
}

func (h *Handler) createSession(ctx context.Context, req checkoutRequest, identity Identity, origin string) (*CheckoutResult, error) {
	// Recherche best-effort d'un client passerelle existant : un échec ici
	// ne bloque pas, la passerelle en créera un implicitement
	customerID := ""
	if identity.Email != "" {
		id, err := h.Gateway.FindCustomerByEmail(ctx, identity.Email)
		if err != nil {
			log.Printf("⚠️ Recherche client passerelle échouée pour %s: %v", identity.Email, err)
		} else {
			customerID = id
		}
	}

	sess, err := h.Gateway.CreateSession(ctx, &payment.SessionParams{
		LineItems:        gatewayLineItems(req.Items),
		Currency:         h.Cfg.Currency,
		SuccessURL:       origin + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:        origin + "/checkout/cancel",
		CustomerID:       customerID,
		CustomerEmail:    identity.Email,
		AllowedCountries: h.Cfg.ShippingCountry,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		ID:               uuid.New(),
		OrderNumber:      newOrderNumber(),
		LineItems:        req.Items,
		TotalAmount:      calcTotal(req.Items),
		Status:           models.OrderStatusPending,
		ShippingAddress:  req.ShippingAddress,
		PaymentSessionID: sess.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if identity.Kind == IdentityAuthenticated {
		order.UserID = &identity.UserID
	}
	if req.CustomerInfo != nil && (req.CustomerInfo.Email != "" || req.CustomerInfo.Name != "") {
		order.CustomerDetails = &models.CustomerDetails{
			Email: req.CustomerInfo.Email,
			Name:  req.CustomerInfo.Name,
		}
	}

	return &CheckoutResult{
		URL:        sess.URL,
		SessionID:  sess.ID,
		Order:      order,
		PersistErr: h.Orders.Insert(ctx, order),
	}, nil
}

// validateItems retourne la raison du rejet, ou "" si le panier est valide
func validateItems(items []models.CartLineItem) string {
	if len(items) == 0 {
		return "Panier vide"
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return "Quantité invalide pour " + item.Name
		}
		if item.UnitPrice < 0 {
			return "Prix invalide pour " + item.Name
		}
	}
	return ""
}

func identityLabel(identity Identity) string {
	switch identity.Kind {
	case IdentityAuthenticated:
		return "user " + identity.UserID
	case IdentityEmail:
		return identity.Email
	default:
		return "invité"
	}
}
