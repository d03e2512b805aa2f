// Package checkout porte les deux handlers du flux de paiement : création
// de session hébergée et vérification au retour de redirection.
//
// La passerelle fait foi, la ligne de commande locale n'est qu'un miroir
// best-effort. Lacune connue et assumée : aucune tâche de réconciliation ne
// rattrape les commandes restées pending quand le retour de redirection
// n'arrive jamais (onglet fermé après paiement).
package checkout

import (
	"errors"
	"log"
	"net/http"
	"time"

	"hanbloom_back_end/internal/config"
	"hanbloom_back_end/internal/models"
	"hanbloom_back_end/internal/payment"
	"hanbloom_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

const (
	createTimeout = 10 * time.Second
	verifyTimeout = 5 * time.Second
)

// Notifier est prévenu quand une commande passe à paid (email, in-app, ws)
type Notifier interface {
	OrderPaid(order *models.Order)
}

type Handler struct {
	Gateway  payment.Gateway
	Orders   store.OrderStore
	Notifier Notifier // optionnel
	Cfg      *config.Config
}

func NewHandler(gateway payment.Gateway, orders store.OrderStore, notifier Notifier, cfg *config.Config) *Handler {
	return &Handler{
		Gateway:  gateway,
		Orders:   orders,
		Notifier: notifier,
		Cfg:      cfg,
	}
}

// writeGatewayError traduit la taxonomie d'erreurs en réponse HTTP.
// ConfigurationError ne doit jamais exposer le détail : ce n'est pas la
// faute de l'appelant.
func writeGatewayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, payment.ErrNotConfigured):
		log.Println("❌ Passerelle non configurée")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service de paiement indisponible"})
	case errors.Is(err, payment.ErrTimeout):
		log.Println("❌ Délai passerelle dépassé")
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "La passerelle de paiement n'a pas répondu à temps"})
	default:
		var gwErr *payment.GatewayError
		if errors.As(err, &gwErr) && gwErr.Msg != "" {
			log.Printf("❌ Erreur passerelle: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": gwErr.Msg})
			return
		}
		log.Printf("❌ Erreur passerelle: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur de la passerelle de paiement"})
	}
}
