package checkout

import (
	"context"

	"hanbloom_back_end/internal/models"
	"hanbloom_back_end/internal/payment"
	"hanbloom_back_end/internal/store"
)

// mockGateway implémente payment.Gateway pour les tests
type mockGateway struct {
	CustomerID  string
	CustomerErr error

	CreatedParams *payment.SessionParams // capture les params de création
	CreateCalls   int
	CreateSess    *payment.Session
	CreateErr     error

	RetrieveCalls int
	RetrieveSess  *payment.Session
	RetrieveErr   error
}

func (m *mockGateway) FindCustomerByEmail(_ context.Context, _ string) (string, error) {
	return m.CustomerID, m.CustomerErr
}

func (m *mockGateway) CreateSession(_ context.Context, params *payment.SessionParams) (*payment.Session, error) {
	m.CreateCalls++
	m.CreatedParams = params
	return m.CreateSess, m.CreateErr
}

func (m *mockGateway) RetrieveSession(_ context.Context, _ string) (*payment.Session, error) {
	m.RetrieveCalls++
	return m.RetrieveSess, m.RetrieveErr
}

// mockOrderStore implémente store.OrderStore pour les tests
type mockOrderStore struct {
	InsertedOrder *models.Order
	InsertCalls   int
	InsertErr     error

	Settlements []store.OrderSettlement
	SettleFound bool
	SettleErr   error

	Existing    *models.Order
	ExistingErr error
}

func (m *mockOrderStore) Insert(_ context.Context, order *models.Order) error {
	m.InsertCalls++
	m.InsertedOrder = order
	return m.InsertErr
}

func (m *mockOrderStore) SettleBySessionID(_ context.Context, _ string, settlement store.OrderSettlement) (bool, error) {
	m.Settlements = append(m.Settlements, settlement)
	if m.SettleErr != nil {
		return false, m.SettleErr
	}
	// Simule la transition locale pour les rejeux
	if m.SettleFound && m.Existing != nil {
		m.Existing.Status = settlement.Status
	}
	return m.SettleFound, nil
}

func (m *mockOrderStore) GetBySessionID(_ context.Context, _ string) (*models.Order, error) {
	if m.ExistingErr != nil {
		return nil, m.ExistingErr
	}
	if m.Existing == nil {
		return nil, store.ErrOrderNotFound
	}
	copy := *m.Existing
	return &copy, nil
}

func (m *mockOrderStore) ListByUser(_ context.Context, _ string) ([]models.Order, error) {
	return nil, nil
}

// mockNotifier compte les confirmations envoyées
type mockNotifier struct {
	PaidOrders []*models.Order
}

func (m *mockNotifier) OrderPaid(order *models.Order) {
	m.PaidOrders = append(m.PaidOrders, order)
}
