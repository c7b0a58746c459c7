package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hexalab/demostore_api/internal/models"
	"github.com/hexalab/demostore_api/internal/utils"
)

// ProductStore is the persistence contract the product service depends on.
// Implemented by repository.ProductRepository.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	DeleteWithImages(ctx context.Context, id string) ([]string, error)
}

// FileStore is the managed file storage contract.
// Implemented by storage.LocalStorage.
type FileStore interface {
	Save(filename string, data []byte) (string, error)
	Remove(url string) error
	IsManaged(url string) bool
}

// ProductService handles product CRUD including the cascading delete of
// image rows and locally managed files.
type ProductService struct {
	products ProductStore
	files    FileStore
}

// NewProductService constructs a ProductService.
func NewProductService(products ProductStore, files FileStore) *ProductService {
	return &ProductService{products: products, files: files}
}

// ProductRequest is the payload shape shared by create and update.
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	SKU         string  `json:"sku" binding:"required"`
}

func (req *ProductRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", utils.ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", utils.ErrValidation)
	}
	if req.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", utils.ErrValidation)
	}
	if strings.TrimSpace(req.SKU) == "" {
		return fmt.Errorf("%w: sku must not be empty", utils.ErrValidation)
	}
	return nil
}

// CreateProduct validates the payload and persists a new product with a
// fresh id and the current timestamp.
func (s *ProductService) CreateProduct(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SKU:         req.SKU,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts returns all products, newest first.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

// UpdateProduct re-validates the payload and rewrites the mutable fields of
// an existing product. Id and creation timestamp are never altered.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *ProductRequest) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, utils.ErrProductNotFound
	}

	if err := req.validate(); err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.SKU = req.SKU
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the product and, transitively, its image rows and
// locally managed files. Rows go first, under one transaction; file
// removal is best effort afterwards, since the rows are the source of
// truth and a missing file must not block the delete.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return utils.ErrProductNotFound
	}

	urls, err := s.products.DeleteWithImages(ctx, id)
	if err != nil {
		return err
	}

	for _, url := range urls {
		if !s.files.IsManaged(url) {
			continue
		}
		if err := s.files.Remove(url); err != nil {
			log.Warn().Err(err).Str("url", url).Str("product_id", id).Msg("failed to remove image file")
		}
	}
	return nil
}
