package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hexalab/demostore_api/internal/models"
	"github.com/hexalab/demostore_api/internal/utils"
)

// ProductRepository handles product rows in PostgreSQL.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product. A sku collision surfaces as ErrSKUExists.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	const q = `
		INSERT INTO products (id, name, description, price, sku, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Price, p.SKU, p.CreatedAt)
	if isUniqueViolation(err) {
		return utils.ErrSKUExists
	}
	return err
}

// List returns all products, most recently created first.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	const q = `
		SELECT id, name, description, price, sku, created_at
		FROM products
		ORDER BY created_at DESC`
	out := []models.Product{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a product or nil when no row matches.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	const q = `
		SELECT id, name, description, price, sku, created_at
		FROM products
		WHERE id = $1`
	var p models.Product
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Update rewrites the mutable product fields. id and created_at are never
// touched. A sku collision surfaces as ErrSKUExists.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	const q = `
		UPDATE products
		SET name = $2, description = $3, price = $4, sku = $5
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Price, p.SKU)
	if isUniqueViolation(err) {
		return utils.ErrSKUExists
	}
	return err
}

// DeleteWithImages removes a product row inside a transaction and returns
// the urls of the image rows the FK cascade took with it. File cleanup is
// the caller's responsibility; collecting urls under the same transaction
// guarantees no image row survives pointing at the deleted product.
func (r *ProductRepository) DeleteWithImages(ctx context.Context, id string) ([]string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	urls := []string{}
	const selectQ = `SELECT url FROM product_images WHERE product_id = $1`
	if err := tx.SelectContext(ctx, &urls, selectQ, id); err != nil {
		return nil, err
	}

	const deleteQ = `DELETE FROM products WHERE id = $1`
	if _, err := tx.ExecContext(ctx, deleteQ, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete tx: %w", err)
	}
	return urls, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
