package models

import "time"

// Product represents a catalog product. The sku is user-supplied and
// globally unique; uniqueness is enforced by the storage layer.
// ID and CreatedAt are assigned at creation and immutable thereafter.
type Product struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	SKU         string    `db:"sku" json:"sku"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// ProductImage represents an uploaded image attached to a product.
// Position is a zero-based per-product ordering index assigned at creation
// and never renumbered; the set of positions need not stay contiguous
// after deletions.
type ProductImage struct {
	ID        string    `db:"id" json:"id"`
	ProductID string    `db:"product_id" json:"productId"`
	URL       string    `db:"url" json:"url"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
