package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hanbloom_back_end/internal/config"
	"hanbloom_back_end/internal/database"
	"hanbloom_back_end/internal/models"
	"hanbloom_back_end/internal/store"
	"hanbloom_back_end/internal/utils"

	"github.com/google/uuid"
)

// OrderNotifier diffuse la confirmation d'une commande payée :
// ligne in-app, push websocket via Redis, email avec facture.
type OrderNotifier struct {
	Notifications store.NotificationStore
	Mailer        *utils.Mailer
	Cfg           *config.Config
}

func NewOrderNotifier(notifications store.NotificationStore, mailer *utils.Mailer, cfg *config.Config) *OrderNotifier {
	return &OrderNotifier{
		Notifications: notifications,
		Mailer:        mailer,
		Cfg:           cfg,
	}
}

// OrderPaid est appelé une seule fois par commande, sur la transition
// pending → paid (le vérificateur filtre les rejeux)
func (n *OrderNotifier) OrderPaid(order *models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if order.UserID != nil {
		notif := &models.Notification{
			ID:        uuid.New(),
			UserID:    *order.UserID,
			OrderID:   order.ID,
			Type:      "order_paid",
			Message:   "Paiement confirmé pour la commande " + order.OrderNumber,
			CreatedAt: time.Now(),
		}

		if err := n.Notifications.Insert(ctx, notif); err != nil {
			log.Printf("⚠️ Insertion notification échouée: %v", err)
		} else {
			n.publish(ctx, *order.UserID, notif)
		}
	}

	if order.CustomerDetails != nil && order.CustomerDetails.Email != "" {
		go n.sendConfirmationEmail(order, order.CustomerDetails.Email)
	}
}

func (n *OrderNotifier) publish(ctx context.Context, userID string, notif *models.Notification) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":         "notification",
		"notification": notif,
	})
	if err != nil {
		return
	}
	database.Redis.Publish(ctx, "notifications:"+userID, payload)
}

func (n *OrderNotifier) sendConfirmationEmail(order *models.Order, email string) {
	qr, err := utils.GenerateOrderQR(n.Cfg.FrontendURL + "/orders/" + order.ID.String())
	if err != nil {
		log.Printf("⚠️ Génération QR échouée: %v", err)
		qr = ""
	}

	html := utils.GenerateOrderConfirmationHTML(order, qr)

	// La facture PDF est un plus, pas un prérequis de l'email
	pdf, err := utils.RenderInvoicePDF(n.Cfg.FrontendURL, order.ID.String())
	if err != nil {
		log.Printf("⚠️ Génération facture PDF échouée: %v", err)
		pdf = nil
	}

	if err := n.Mailer.Send(email, "Confirmation de votre commande Hanbloom", html, pdf); err != nil {
		log.Printf("❌ Erreur envoi e-mail confirmation: %v", err)
		return
	}
	log.Println("📧 E-mail de confirmation envoyé à", email)
}
