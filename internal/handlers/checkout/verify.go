package checkout

import (
	"context"
	"errors"
	"log"
	"net/http"

	"hanbloom_back_end/internal/models"
	"hanbloom_back_end/internal/payment"
	"hanbloom_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

type verifyRequest struct {
	SessionID string `json:"session_id"`
}

// Verify relit la session passerelle après le retour de redirection et
// règle la commande locale. Classification à sens unique et idempotente :
// paid reste paid, rejouer la même vérification est un no-op sûr.
//
// POST /api/checkout/verify
func (h *Handler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id requis"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), verifyTimeout)
	defer cancel()

	sess, err := h.Gateway.RetrieveSession(ctx, req.SessionID)
	if err != nil {
		writeGatewayError(c, err)
		return
	}

	status := mapPaymentStatus(sess.PaymentStatus)
	h.settleOrder(ctx, sess, status)

	// La réponse reflète la passerelle, que le miroir local ait suivi ou non.
	// payment_status est le statut passerelle verbatim, pas le statut local.
	response := gin.H{
		"session_id":     sess.ID,
		"payment_status": sess.PaymentStatus,
		"amount_total":   sess.AmountTotal,
		"currency":       sess.Currency,
		"payment_intent": sess.PaymentIntentID,
		"created":        sess.Created,
	}
	if sess.CustomerEmail != "" {
		response["customer_email"] = sess.CustomerEmail
	}

	c.JSON(http.StatusOK, response)
}

// settleOrder applique le règlement sur le miroir local, best-effort :
// toute erreur ici est logguée, jamais remontée à l'appelant
func (h *Handler) settleOrder(ctx context.Context, sess *payment.Session, status models.OrderStatus) {
	previous, err := h.Orders.GetBySessionID(ctx, sess.ID)
	if err != nil && !errors.Is(err, store.ErrOrderNotFound) {
		log.Printf("⚠️ Lecture commande %s échouée: %v", sess.ID, err)
	}

	settlement := store.OrderSettlement{Status: status}
	if sess.CustomerEmail != "" || sess.CustomerName != "" || sess.CustomerPhone != "" {
		settlement.CustomerDetails = &models.CustomerDetails{
			Email: sess.CustomerEmail,
			Name:  sess.CustomerName,
			Phone: sess.CustomerPhone,
		}
	}
	if sess.ShippingAddress != nil {
		settlement.ShippingAddress = sess.ShippingAddress
	}

	found, err := h.Orders.SettleBySessionID(ctx, sess.ID, settlement)
	if err != nil {
		log.Printf("⚠️ Mise à jour commande %s échouée: %v", sess.ID, err)
		return
	}
	if !found {
		log.Printf("⚠️ Aucune commande locale pour la session %s", sess.ID)
		return
	}

	log.Printf("✅ Commande réglée: session %s → %s", sess.ID, status)

	// Notification uniquement sur la transition pending → paid, pour ne pas
	// re-notifier quand la vérification est rejouée
	if h.Notifier != nil && status == models.OrderStatusPaid &&
		previous != nil && previous.Status == models.OrderStatusPending {
		order, err := h.Orders.GetBySessionID(ctx, sess.ID)
		if err != nil {
			log.Printf("⚠️ Relecture commande %s échouée: %v", sess.ID, err)
			return
		}
		h.Notifier.OrderPaid(order)
	}
}

// mapPaymentStatus classe le statut passerelle en statut local.
// Tout équivalent "payé" devient paid, le reste failed. Jamais de retour
// en arrière : la clause de SettleBySessionID verrouille la transition.
func mapPaymentStatus(gatewayStatus string) models.OrderStatus {
	switch gatewayStatus {
	case "paid", "no_payment_required", "succeeded":
		return models.OrderStatusPaid
	default:
		return models.OrderStatusFailed
	}
}
