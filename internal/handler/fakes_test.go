package handler

import (
	"context"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/hexalab/demostore_api/internal/models"
	"github.com/hexalab/demostore_api/internal/service"
	"github.com/hexalab/demostore_api/internal/storage"
	"github.com/hexalab/demostore_api/internal/utils"
)

// Test doubles for the repository and file-store contracts, so handler
// tests exercise real services end to end without PostgreSQL or a disk.

type memState struct {
	mu       sync.RWMutex
	products map[string]models.Product
	images   map[string]models.ProductImage
	files    map[string][]byte
}

type memProducts struct{ s *memState }
type memImages struct{ s *memState }
type memFiles struct{ s *memState }

func newMemStores() (*memProducts, *memImages, *memFiles) {
	s := &memState{
		products: make(map[string]models.Product),
		images:   make(map[string]models.ProductImage),
		files:    make(map[string][]byte),
	}
	return &memProducts{s: s}, &memImages{s: s}, &memFiles{s: s}
}

func (m *memProducts) Create(ctx context.Context, p *models.Product) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.products {
		if existing.SKU == p.SKU {
			return utils.ErrSKUExists
		}
	}
	m.s.products[p.ID] = *p
	return nil
}

func (m *memProducts) List(ctx context.Context) ([]models.Product, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]models.Product, 0, len(m.s.products))
	for _, p := range m.s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memProducts) GetByID(ctx context.Context, id string) (*models.Product, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	p, ok := m.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memProducts) Update(ctx context.Context, p *models.Product) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for id, existing := range m.s.products {
		if id != p.ID && existing.SKU == p.SKU {
			return utils.ErrSKUExists
		}
	}
	m.s.products[p.ID] = *p
	return nil
}

func (m *memProducts) DeleteWithImages(ctx context.Context, id string) ([]string, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	urls := []string{}
	for imgID, img := range m.s.images {
		if img.ProductID == id {
			urls = append(urls, img.URL)
			delete(m.s.images, imgID)
		}
	}
	delete(m.s.products, id)
	return urls, nil
}

func (m *memImages) ListByProduct(ctx context.Context, productID string) ([]models.ProductImage, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := []models.ProductImage{}
	for _, img := range m.s.images {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memImages) GetByID(ctx context.Context, imageID, productID string) (*models.ProductImage, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	img, ok := m.s.images[imageID]
	if !ok || img.ProductID != productID {
		return nil, nil
	}
	return &img, nil
}

func (m *memImages) MaxPosition(ctx context.Context, productID string) (int, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	max := -1
	for _, img := range m.s.images {
		if img.ProductID == productID && img.Position > max {
			max = img.Position
		}
	}
	return max, nil
}

func (m *memImages) Insert(ctx context.Context, img *models.ProductImage) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.images[img.ID] = *img
	return nil
}

func (m *memImages) Delete(ctx context.Context, imageID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.images, imageID)
	return nil
}

func (m *memFiles) Save(filename string, data []byte) (string, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	url := storage.URLPrefix + filename
	m.s.files[url] = data
	return url, nil
}

func (m *memFiles) Remove(url string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.files, url)
	return nil
}

func (m *memFiles) IsManaged(url string) bool {
	return len(url) > len(storage.URLPrefix) && url[:len(storage.URLPrefix)] == storage.URLPrefix
}

// newTestRouter wires real services over the in-memory stores behind the
// catalog routes.
func newTestRouter() (*gin.Engine, *memState) {
	gin.SetMode(gin.TestMode)

	products, images, files := newMemStores()
	productSvc := service.NewProductService(products, files)
	imageSvc := service.NewImageService(products, images, files)

	productHandler := NewProductHandler(productSvc)
	imageHandler := NewImageHandler(imageSvc)
	healthHandler := NewHealthHandler()

	router := gin.New()
	router.GET("/health", healthHandler.GetHealth)
	router.POST("/products", productHandler.CreateProduct)
	router.GET("/products", productHandler.ListProducts)
	router.PUT("/products/:id", productHandler.UpdateProduct)
	router.DELETE("/products/:id", productHandler.DeleteProduct)
	router.GET("/products/:id/images", imageHandler.ListImages)
	router.POST("/products/:id/images", imageHandler.UploadImages)
	router.DELETE("/products/:id/images/:imageId", imageHandler.DeleteImage)

	return router, products.s
}
