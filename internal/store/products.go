package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hanbloom_back_end/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrProductNotFound = errors.New("produit introuvable")

type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	List(ctx context.Context, category string, limit, offset int) ([]models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type PostgresProductStore struct {
	db *sql.DB
}

func NewPostgresProductStore(db *sql.DB) *PostgresProductStore {
	return &PostgresProductStore{db: db}
}

func (s *PostgresProductStore) Insert(ctx context.Context, p *models.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, category, price, stock,
			image_urls, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Name, p.Description, p.Category, p.Price, p.Stock,
		pq.Array(p.ImageURLs), pq.Array(p.Tags), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insertion produit: %w", err)
	}
	return nil
}

func (s *PostgresProductStore) List(ctx context.Context, category string, limit, offset int) ([]models.Product, error) {
	query := `
		SELECT id, name, description, category, price, stock, image_urls, tags,
			created_at, updated_at
		FROM products`
	args := []any{}

	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("lecture produits: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category,
			&p.Price, &p.Stock, pq.Array(&p.ImageURLs), pq.Array(&p.Tags),
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan produit: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *PostgresProductStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, category, price, stock, image_urls, tags,
			created_at, updated_at
		FROM products
		WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Stock,
		pq.Array(&p.ImageURLs), pq.Array(&p.Tags), &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture produit: %w", err)
	}
	return &p, nil
}
