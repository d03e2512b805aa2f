package payment

import (
	"context"
	"errors"

	"hanbloom_back_end/internal/models"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
	"github.com/stripe/stripe-go/v83/customer"
)

// StripeGateway implémente Gateway au-dessus des Checkout Sessions Stripe.
// La clé API est celle du SDK (stripe.Key), posée au démarrage.
type StripeGateway struct{}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

func (g *StripeGateway) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	if stripe.Key == "" {
		return "", ErrNotConfigured
	}

	params := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := customer.List(params)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", g.wrap("customer.list", err)
	}

	// Aucun client existant : Stripe en créera un implicitement
	return "", nil
}

func (g *StripeGateway) CreateSession(ctx context.Context, sp *SessionParams) (*Session, error) {
	if stripe.Key == "" {
		return nil, ErrNotConfigured
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(sp.LineItems))
	for _, item := range sp.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{item.ImageURL})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(sp.Currency),
				UnitAmount:  stripe.Int64(item.UnitAmount),
				ProductData: productData,
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:                lineItems,
		SuccessURL:               stripe.String(sp.SuccessURL),
		CancelURL:                stripe.String(sp.CancelURL),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(sp.AllowedCountries),
		},
	}
	params.Context = ctx

	// Client existant prioritaire, sinon email de contact
	if sp.CustomerID != "" {
		params.Customer = stripe.String(sp.CustomerID)
	} else if sp.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(sp.CustomerEmail)
	}

	s, err := session.New(params)
	if err != nil {
		return nil, g.wrap("session.create", err)
	}

	return fromStripeSession(s), nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, id string) (*Session, error) {
	if stripe.Key == "" {
		return nil, ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("customer")
	params.AddExpand("line_items")
	params.AddExpand("payment_intent")

	s, err := session.Get(id, params)
	if err != nil {
		return nil, g.wrap("session.retrieve", err)
	}

	return fromStripeSession(s), nil
}

// wrap classe une erreur SDK dans la taxonomie locale
func (g *StripeGateway) wrap(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &GatewayError{Op: op, Msg: stripeErr.Msg, Err: err}
	}
	return &GatewayError{Op: op, Err: err}
}

func fromStripeSession(s *stripe.CheckoutSession) *Session {
	out := &Session{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Created:       s.Created,
	}

	if s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
		out.CustomerName = s.CustomerDetails.Name
		out.CustomerPhone = s.CustomerDetails.Phone
	}

	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}

	if s.CollectedInformation != nil && s.CollectedInformation.ShippingDetails != nil {
		details := s.CollectedInformation.ShippingDetails
		out.ShippingName = details.Name
		if details.Address != nil {
			out.ShippingAddress = &models.ShippingAddress{
				Name:       details.Name,
				Line1:      details.Address.Line1,
				Line2:      details.Address.Line2,
				City:       details.Address.City,
				State:      details.Address.State,
				PostalCode: details.Address.PostalCode,
				Country:    details.Address.Country,
			}
		}
	}

	return out
}
