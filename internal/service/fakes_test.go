package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/hexalab/demostore_api/internal/models"
	"github.com/hexalab/demostore_api/internal/storage"
	"github.com/hexalab/demostore_api/internal/utils"
)

var errDiskFull = errors.New("disk full")

// memState is shared in-memory table state. memProducts and memImages are
// views over it implementing ProductStore and ImageStore, mirroring the
// repository contracts including the sku uniqueness check and the FK
// cascade of DeleteWithImages.
type memState struct {
	mu       sync.RWMutex
	products map[string]models.Product
	images   map[string]models.ProductImage
}

func newMemStores() (*memProducts, *memImages) {
	s := &memState{
		products: make(map[string]models.Product),
		images:   make(map[string]models.ProductImage),
	}
	return &memProducts{s: s}, &memImages{s: s}
}

type memProducts struct {
	s *memState
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

type memImages struct {
	s *memState
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

// fakeFiles is an in-memory FileStore tracking saved and removed urls.
type fakeFiles struct {
	mu        sync.Mutex
	files     map[string][]byte
	removed   []string
	saveErr   error
	removeErr error
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{files: make(map[string][]byte)}
}

func (f *fakeFiles) Save(filename string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return "", f.saveErr
	}
	url := storage.URLPrefix + filename
	f.files[url] = data
	return url, nil
}

func (f *fakeFiles) Remove(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.removeErr != nil {
		return f.removeErr
	}
	if !f.IsManaged(url) {
		return nil
	}
	delete(f.files, url)
	f.removed = append(f.removed, url)
	return nil
}

func (f *fakeFiles) IsManaged(url string) bool {
	return strings.HasPrefix(url, storage.URLPrefix)
}
