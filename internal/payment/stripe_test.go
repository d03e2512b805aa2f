package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83"
)

func TestWrap_Timeout(t *testing.T) {
	g := NewStripeGateway()

	err := g.wrap("session.create", context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestWrap_StripeError(t *testing.T) {
	g := NewStripeGateway()

	err := g.wrap("session.create", &stripe.Error{Msg: "Invalid currency: xyz"})

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "session.create", gwErr.Op)
	assert.Equal(t, "Invalid currency: xyz", gwErr.Msg)
}

func TestWrap_OpaqueError(t *testing.T) {
	g := NewStripeGateway()

	err := g.wrap("session.retrieve", errors.New("connexion refusée"))

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Empty(t, gwErr.Msg)
}

func TestFromStripeSession_MinimalFields(t *testing.T) {
	s := fromStripeSession(&stripe.CheckoutSession{
		ID:            "cs_test_123",
		URL:           "https://checkout.stripe.com/c/cs_test_123",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid,
		AmountTotal:   239800,
		Currency:      stripe.CurrencyPKR,
	})

	assert.Equal(t, "cs_test_123", s.ID)
	assert.Equal(t, "unpaid", s.PaymentStatus)
	assert.Equal(t, int64(239800), s.AmountTotal)
	assert.Equal(t, "pkr", s.Currency)
	assert.Empty(t, s.CustomerEmail)
	assert.Nil(t, s.ShippingAddress)
}

func TestFromStripeSession_ExpandedFields(t *testing.T) {
	s := fromStripeSession(&stripe.CheckoutSession{
		ID:            "cs_test_123",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
			Email: "mina@example.com",
			Name:  "Mina",
			Phone: "+92 300 1234567",
		},
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_test_987"},
		CollectedInformation: &stripe.CheckoutSessionCollectedInformation{
			ShippingDetails: &stripe.CheckoutSessionCollectedInformationShippingDetails{
				Name: "Mina Khan",
				Address: &stripe.Address{
					Line1:      "12 Mall Road",
					City:       "Lahore",
					PostalCode: "54000",
					Country:    "PK",
				},
			},
		},
	})

	assert.Equal(t, "paid", s.PaymentStatus)
	assert.Equal(t, "mina@example.com", s.CustomerEmail)
	assert.Equal(t, "pi_test_987", s.PaymentIntentID)
	require.NotNil(t, s.ShippingAddress)
	assert.Equal(t, "Mina Khan", s.ShippingAddress.Name)
	assert.Equal(t, "Lahore", s.ShippingAddress.City)
	assert.Equal(t, "PK", s.ShippingAddress.Country)
}

func TestGateway_NotConfigured(t *testing.T) {
	// Clé SDK vide : toutes les opérations doivent refuser proprement
	old := stripe.Key
	stripe.Key = ""
	defer func() { stripe.Key = old }()

	g := NewStripeGateway()
	ctx := context.Background()

	_, err := g.CreateSession(ctx, &SessionParams{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = g.RetrieveSession(ctx, "cs_test_123")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = g.FindCustomerByEmail(ctx, "mina@example.com")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
