package checkout

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"hanbloom_back_end/internal/models"
	"hanbloom_back_end/internal/payment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// calcTotal calcule le montant total d'un panier.
// Valeur d'affichage et d'audit : le montant qui fait foi est la somme des
// unités mineures envoyées à la passerelle ligne par ligne.
func calcTotal(items []models.CartLineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// toMinorUnit convertit un prix en unité mineure (paisa), arrondi au plus proche
func toMinorUnit(price float64) int64 {
	return int64(math.Round(price * 100))
}

func gatewayLineItems(items []models.CartLineItem) []payment.LineItem {
	out := make([]payment.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, payment.LineItem{
			Name:       item.Name,
			ImageURL:   item.ImageURL,
			UnitAmount: toMinorUnit(item.UnitPrice),
			Quantity:   int64(item.Quantity),
		})
	}
	return out
}

// newOrderNumber génère un numéro de commande lisible, ex: HB-20260830-4F2A9C
func newOrderNumber() string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("HB-%s-%s", time.Now().Format("20060102"), fragment)
}

// requestOrigin dérive l'origine du storefront appelant pour construire les
// URLs de retour (Origin, puis Referer, puis config)
func requestOrigin(c *gin.Context, fallback string) string {
	if origin := c.GetHeader("Origin"); origin != "" {
		return strings.TrimSuffix(origin, "/")
	}

	if referer := c.GetHeader("Referer"); referer != "" {
		if u, err := url.Parse(referer); err == nil && u.Scheme != "" && u.Host != "" {
			return u.Scheme + "://" + u.Host
		}
	}

	return strings.TrimSuffix(fallback, "/")
}
