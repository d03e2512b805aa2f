package checkout

import (
	"net/http/httptest"
	"regexp"
	"testing"

	"hanbloom_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalcTotal(t *testing.T) {
	items := []models.CartLineItem{
		{ProductID: "p1", Name: "Snail Cream", UnitPrice: 1199.00, Quantity: 2},
		{ProductID: "p2", Name: "Rice Toner", UnitPrice: 850.50, Quantity: 1},
	}

	assert.InDelta(t, 3248.50, calcTotal(items), 0.001)
	assert.Zero(t, calcTotal(nil))
}

func TestToMinorUnit(t *testing.T) {
	assert.Equal(t, int64(119900), toMinorUnit(1199.00))
	assert.Equal(t, int64(85050), toMinorUnit(850.50))
	// Arrondi au plus proche, pas de troncature
	assert.Equal(t, int64(100), toMinorUnit(0.999))
	assert.Equal(t, int64(10), toMinorUnit(0.1))
	assert.Equal(t, int64(0), toMinorUnit(0))
}

func TestGatewayLineItems(t *testing.T) {
	items := gatewayLineItems([]models.CartLineItem{
		{ProductID: "p1", Name: "Snail Cream", UnitPrice: 1199.00, Quantity: 2, ImageURL: "https://cdn/img.jpg"},
	})

	assert.Len(t, items, 1)
	assert.Equal(t, "Snail Cream", items[0].Name)
	assert.Equal(t, int64(119900), items[0].UnitAmount)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, "https://cdn/img.jpg", items[0].ImageURL)
}

func TestNewOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^HB-\d{8}-[0-9A-F]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		n := newOrderNumber()
		assert.Regexp(t, pattern, n)
		assert.False(t, seen[n], "numéro de commande dupliqué: %s", n)
		seen[n] = true
	}
}

func TestRequestOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(origin, referer string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("POST", "/api/checkout/session", nil)
		if origin != "" {
			c.Request.Header.Set("Origin", origin)
		}
		if referer != "" {
			c.Request.Header.Set("Referer", referer)
		}
		return c
	}

	assert.Equal(t, "https://hanbloom.com",
		requestOrigin(newCtx("https://hanbloom.com", ""), "http://localhost:3000"))
	assert.Equal(t, "https://hanbloom.com",
		requestOrigin(newCtx("https://hanbloom.com/", ""), "http://localhost:3000"))
	assert.Equal(t, "https://hanbloom.com",
		requestOrigin(newCtx("", "https://hanbloom.com/panier"), "http://localhost:3000"))
	assert.Equal(t, "http://localhost:3000",
		requestOrigin(newCtx("", ""), "http://localhost:3000"))
}
