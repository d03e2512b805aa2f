package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hanbloom_back_end/internal/models"

	"github.com/google/uuid"
)

var ErrAddressNotFound = errors.New("adresse introuvable")

type AddressStore interface {
	Insert(ctx context.Context, addr *models.Address) error
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	Update(ctx context.Context, addr *models.Address) error
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

type PostgresAddressStore struct {
	db *sql.DB
}

func NewPostgresAddressStore(db *sql.DB) *PostgresAddressStore {
	return &PostgresAddressStore{db: db}
}

func (s *PostgresAddressStore) Insert(ctx context.Context, addr *models.Address) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO addresses (id, user_id, label, recipient, line1, line2,
			city, state, postal_code, country, phone, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		addr.ID, addr.UserID, addr.Label, addr.Recipient, addr.Line1, addr.Line2,
		addr.City, addr.State, addr.PostalCode, addr.Country, addr.Phone,
		addr.IsDefault, addr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insertion adresse: %w", err)
	}
	return nil
}

func (s *PostgresAddressStore) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, label, recipient, line1, line2, city, state,
			postal_code, country, phone, is_default, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("lecture adresses: %w", err)
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.Recipient, &a.Line1,
			&a.Line2, &a.City, &a.State, &a.PostalCode, &a.Country, &a.Phone,
			&a.IsDefault, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan adresse: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (s *PostgresAddressStore) Update(ctx context.Context, addr *models.Address) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE addresses
		SET label = $3, recipient = $4, line1 = $5, line2 = $6, city = $7,
			state = $8, postal_code = $9, country = $10, phone = $11,
			is_default = $12
		WHERE id = $1 AND user_id = $2`,
		addr.ID, addr.UserID, addr.Label, addr.Recipient, addr.Line1, addr.Line2,
		addr.City, addr.State, addr.PostalCode, addr.Country, addr.Phone,
		addr.IsDefault,
	)
	if err != nil {
		return fmt.Errorf("mise à jour adresse: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (s *PostgresAddressStore) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("suppression adresse: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrAddressNotFound
	}
	return nil
}
