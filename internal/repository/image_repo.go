package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/hexalab/demostore_api/internal/models"
)

// ImageRepository handles product_images rows in PostgreSQL.
type ImageRepository struct {
	db *sqlx.DB
}

// NewImageRepository creates a new ImageRepository.
func NewImageRepository(db *sqlx.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// ListByProduct returns a product's images ordered by position, ties broken
// by creation time.
func (r *ImageRepository) ListByProduct(ctx context.Context, productID string) ([]models.ProductImage, error) {
	const q = `
		SELECT id, product_id, url, position, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY position ASC, created_at ASC`
	out := []models.ProductImage{}
	if err := r.db.SelectContext(ctx, &out, q, productID); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the image only when it belongs to the given product, or
// nil when no row matches.
func (r *ImageRepository) GetByID(ctx context.Context, imageID, productID string) (*models.ProductImage, error) {
	const q = `
		SELECT id, product_id, url, position, created_at
		FROM product_images
		WHERE id = $1 AND product_id = $2`
	var img models.ProductImage
	if err := r.db.GetContext(ctx, &img, q, imageID, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

// MaxPosition returns the highest position among a product's images, or -1
// when the product has none.
func (r *ImageRepository) MaxPosition(ctx context.Context, productID string) (int, error) {
	const q = `SELECT COALESCE(MAX(position), -1) FROM product_images WHERE product_id = $1`
	var max int
	if err := r.db.GetContext(ctx, &max, q, productID); err != nil {
		return 0, err
	}
	return max, nil
}

// Insert persists one image metadata row.
func (r *ImageRepository) Insert(ctx context.Context, img *models.ProductImage) error {
	const q = `
		INSERT INTO product_images (id, product_id, url, position, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, q, img.ID, img.ProductID, img.URL, img.Position, img.CreatedAt)
	return err
}

// Delete removes one image row by id.
func (r *ImageRepository) Delete(ctx context.Context, imageID string) error {
	const q = `DELETE FROM product_images WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, imageID)
	return err
}
