package checkout

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hanbloom_back_end/internal/config"
	"hanbloom_back_end/internal/models"
	"hanbloom_back_end/internal/payment"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

func testConfig() *config.Config {
	return &config.Config{
		Currency:        "pkr",
		ShippingCountry: []string{"PK"},
		FrontendURL:     "http://localhost:3000",
		JWTSecret:       testSecret,
	}
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/checkout/session", h.CreateSession)
	r.POST("/api/checkout/verify", h.Verify)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signToken(t *testing.T, userID, email string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(expiresIn).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func snailCreamCart() []models.CartLineItem {
	return []models.CartLineItem{
		{ProductID: "p1", Name: "Snail Cream", UnitPrice: 1199.00, Quantity: 2},
	}
}

func happyGateway() *mockGateway {
	return &mockGateway{
		CreateSess: &payment.Session{
			ID:  "cs_test_123",
			URL: "https://checkout.example.com/cs_test_123",
		},
	}
}

func TestCreateSession_EmptyCart(t *testing.T) {
	gateway := happyGateway()
	orders := &mockOrderStore{}
	h := NewHandler(gateway, orders, nil, testConfig())

	w := doJSON(t, newTestRouter(h), "/api/checkout/session",
		gin.H{"items": []models.CartLineItem{}}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// Aucun appel passerelle, aucune commande créée
	assert.Equal(t, 0, gateway.CreateCalls)
	assert.Equal(t, 0, orders.InsertCalls)
}

func TestCreateSession_InvalidQuantity(t *testing.T) {
	gateway := happyGateway()
	h := NewHandler(gateway, &mockOrderStore{}, nil, testConfig())

	w := doJSON(t, newTestRouter(h), "/api/checkout/session", gin.H{
		"items": []models.CartLineItem{
			{ProductID: "p1", Name: "Snail Cream", UnitPrice: 1199.00, Quantity: 0},
		},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, gateway.CreateCalls)
}

func TestCreateSession_NegativePrice(t *testing.T) {
	gateway := happyGateway()
	h := NewHandler(gateway, &mockOrderStore{}, nil, testConfig())

	w := doJSON(t, newTestRouter(h), "/api/checkout/session", gin.H{
		"items": []models.CartLineItem{
			{ProductID: "p1", Name: "Snail Cream", UnitPrice: -5, Quantity: 1},
		},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, gateway.CreateCalls)
}

func TestCreateSession_Success(t *testing.T) {
	gateway := happyGateway()
	orders := &mockOrderStore{}
	h := NewHandler(gateway, orders, nil, testConfig())

	w := doJSON(t, newTestRouter(h), "/api/checkout/session",
		gin.H{"items": snailCreamCart()}, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://checkout.example.com/cs_test_123", resp["url"])
	assert.Equal(t, "cs_test_123", resp["session_id"])

	// Montant passerelle en unité mineure : round(1199.00 * 100) = 119900
	require.NotNil(t, gateway.CreatedParams)
	require.Len(t, gateway.CreatedParams.LineItems, 1)
	assert.Equal(t, int64(119900), gateway.CreatedParams.LineItems[0].UnitAmount)
	assert.Equal(t, int64(2), gateway.CreatedParams.LineItems[0].Quantity)
	assert.Equal(t, "pkr", gateway.CreatedParams.Currency)
	assert.Equal(t, []string{"PK"}, gateway.CreatedParams.AllowedCountries)

	// Commande pending enregistrée, total = somme prix*quantité
	require.NotNil(t, orders.InsertedOrder)
	assert.Equal(t, models.OrderStatusPending, orders.InsertedOrder.Status)
	assert.InDelta(t, 2398.00, orders.InsertedOrder.TotalAmount, 0.001)
	assert.Equal(t, "cs_test_123", orders.InsertedOrder.PaymentSessionID)
	assert.Nil(t, orders.InsertedOrder.UserID) // invité
}

func TestCreateSession_AuthenticatedUser(t *testing.T) {
	gateway := happyGateway()
	orders := &mockOrderStore{}
	h := NewHandler(gateway, orders, nil, testConfig())

	token := signToken(t, "user-42", "mina@example.com", time.Hour)
	w := doJSON(t, newTestRouter(h), "/api/checkout/session",
		gin.H{"items": snailCreamCart()},
		map[string]string{"Authorization": "Bearer " + token})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, orders.InsertedOrder)
	require.NotNil(t, orders.InsertedOrder.UserID)
	assert.Equal(t, "user-42", *orders.InsertedOrder.UserID)
}

func TestCreateSession_BadTokenFallsBackToGuest(t *testing.T) {
	gateway := happyGateway()
	orders := &mockOrderStore{}
	h := NewHandler(gateway, orders, nil, testConfig())

	// Token expiré : le checkout ne doit jamais échouer pour un mauvais token
	token := signToken(t, "user-42", "mina@example.com", -time.Hour)
	w := doJSON(t, newTestRouter(h), "/api/checkout/session",
		gin.H{"items": snailCreamCart()},
		map[string]string{"Authorization": "Bearer " + token})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, orders.InsertedOrder)
	assert.Nil(t, orders.InsertedOrder.UserID)
}

func TestCreateSession_PersistFailureStillReturnsURL(t *testing.T) {
	gateway := happyGateway()
	orders := &mockOrderStore{InsertErr: errors.New("connexion refusée")}
	h := NewHandler(gateway, orders, nil, testConfig())

	w := doJSON(t, newTestRouter(h), "/api/checkout/session",
		gin.H{"items": snailCreamCart()}, nil)

	// Échec partiel : la session passerelle existe, l'URL doit sortir
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cs_test_123", resp["session_id"])
}

func TestCreateSession_CustomerLookupFailureNotFatal(t *testing.T) {
	gateway := happyGateway()
	gateway.CustomerErr = errors.New("api indisponible")
	orders := &mockOrderStore{}
	h := NewHandler(gateway, orders, nil, testConfig())

	w := doJSON(t, newTestRouter(h), "/api/checkout/session", gin.H{
		"items":         snailCreamCart(),
		"customer_info": gin.H{"email": "mina@example.com"},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, gateway.CreateCalls)
}

func TestCreateSession_NotConfigured(t *testing.T) {
	gateway := &mockGateway{CreateErr: payment.ErrNotConfigured}
	h := NewHandler(gateway, &mockOrderStore{}, nil, testConfig())

	w := doJSON(t, newTestRouter(h), "/api/checkout/session",
		gin.H{"items": snailCreamCart()}, nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	// Le détail de configuration ne doit pas fuiter
	assert.NotContains(t, w.Body.String(), "clé")
}

func TestCreateSession_GatewayRejection(t *testing.T) {
	gateway := &mockGateway{
		CreateErr: &payment.GatewayError{Op: "session.create", Msg: "Invalid currency"},
	}
	orders := &mockOrderStore{}
	h := NewHandler(gateway, orders, nil, testConfig())

	w := doJSON(t, newTestRouter(h), "/api/checkout/session",
		gin.H{"items": snailCreamCart()}, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid currency")
	assert.Equal(t, 0, orders.InsertCalls)
}

func TestCreateSession_GatewayTimeout(t *testing.T) {
	gateway := &mockGateway{CreateErr: payment.ErrTimeout}
	h := NewHandler(gateway, &mockOrderStore{}, nil, testConfig())

	w := doJSON(t, newTestRouter(h), "/api/checkout/session",
		gin.H{"items": snailCreamCart()}, nil)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}
