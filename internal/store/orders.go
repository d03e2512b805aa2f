package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hanbloom_back_end/internal/models"
)

var ErrOrderNotFound = errors.New("commande introuvable")

// OrderSettlement : mutation unique appliquée par le vérificateur de paiement
type OrderSettlement struct {
	Status          models.OrderStatus
	CustomerDetails *models.CustomerDetails
	ShippingAddress *models.ShippingAddress
}

// OrderStore : accès aux lignes de commandes. Interface pour pouvoir
// mocker la persistance dans les tests des handlers.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error

	// SettleBySessionID applique le règlement sur la commande jointe par
	// payment_session_id. Retourne false si aucune ligne ne correspond.
	// Le statut ne recule jamais : une commande déjà réglée n'est
	// réécrite que si on ré-applique le même statut (no-op sûr).
	SettleBySessionID(ctx context.Context, sessionID string, settlement OrderSettlement) (bool, error)

	// GetBySessionID retourne ErrOrderNotFound si aucune commande locale
	// ne mire cette session (cas toléré, voir le vérificateur)
	GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error)

	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

type PostgresOrderStore struct {
	db *sql.DB
}

func NewPostgresOrderStore(db *sql.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

func (s *PostgresOrderStore) Insert(ctx context.Context, order *models.Order) error {
	lineItems, err := json.Marshal(order.LineItems)
	if err != nil {
		return fmt.Errorf("sérialisation line_items: %w", err)
	}

	shipping, err := marshalNullable(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("sérialisation shipping_address: %w", err)
	}

	details, err := marshalNullable(order.CustomerDetails)
	if err != nil {
		return fmt.Errorf("sérialisation customer_details: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, order_number, line_items, total_amount,
			status, shipping_address, customer_details, payment_session_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		order.ID, order.UserID, order.OrderNumber, lineItems, order.TotalAmount,
		order.Status, shipping, details, order.PaymentSessionID,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insertion commande: %w", err)
	}
	return nil
}

func (s *PostgresOrderStore) SettleBySessionID(ctx context.Context, sessionID string, settlement OrderSettlement) (bool, error) {
	shipping, err := marshalNullable(settlement.ShippingAddress)
	if err != nil {
		return false, fmt.Errorf("sérialisation shipping_address: %w", err)
	}

	details, err := marshalNullable(settlement.CustomerDetails)
	if err != nil {
		return false, fmt.Errorf("sérialisation customer_details: %w", err)
	}

	// La clause sur status garantit la transition à sens unique :
	// pending → paid/failed, ou ré-application idempotente du même statut
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $2,
			customer_details = COALESCE($3, customer_details),
			shipping_address = COALESCE($4, shipping_address),
			updated_at = $5
		WHERE payment_session_id = $1
		  AND (status = 'pending' OR status = $2)`,
		sessionID, settlement.Status, details, shipping, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("mise à jour commande: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *PostgresOrderStore) GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	var (
		order     models.Order
		lineItems []byte
		shipping  sql.NullString
		details   sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, order_number, line_items, total_amount, status,
			shipping_address, customer_details, payment_session_id,
			created_at, updated_at
		FROM orders
		WHERE payment_session_id = $1`,
		sessionID,
	).Scan(&order.ID, &order.UserID, &order.OrderNumber, &lineItems,
		&order.TotalAmount, &order.Status, &shipping, &details,
		&order.PaymentSessionID, &order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture commande: %w", err)
	}

	if err := json.Unmarshal(lineItems, &order.LineItems); err != nil {
		return nil, fmt.Errorf("décodage line_items: %w", err)
	}
	if shipping.Valid {
		_ = json.Unmarshal([]byte(shipping.String), &order.ShippingAddress)
	}
	if details.Valid {
		_ = json.Unmarshal([]byte(details.String), &order.CustomerDetails)
	}
	return &order, nil
}

func (s *PostgresOrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, order_number, line_items, total_amount, status,
			shipping_address, customer_details, payment_session_id,
			created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("lecture commandes: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var (
			order     models.Order
			lineItems []byte
			shipping  sql.NullString
			details   sql.NullString
		)
		if err := rows.Scan(&order.ID, &order.UserID, &order.OrderNumber,
			&lineItems, &order.TotalAmount, &order.Status,
			&shipping, &details, &order.PaymentSessionID,
			&order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan commande: %w", err)
		}

		if err := json.Unmarshal(lineItems, &order.LineItems); err != nil {
			return nil, fmt.Errorf("décodage line_items: %w", err)
		}
		if shipping.Valid {
			_ = json.Unmarshal([]byte(shipping.String), &order.ShippingAddress)
		}
		if details.Valid {
			_ = json.Unmarshal([]byte(details.String), &order.CustomerDetails)
		}

		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// marshalNullable retourne NULL SQL pour un pointeur nil
func marshalNullable(v any) (any, error) {
	switch t := v.(type) {
	case *models.ShippingAddress:
		if t == nil {
			return nil, nil
		}
	case *models.CustomerDetails:
		if t == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}
