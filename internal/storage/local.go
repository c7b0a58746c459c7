package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// URLPrefix marks a stored url as locally managed. Urls without this prefix
// (externally hosted images) are never unlinked.
const URLPrefix = "/uploads/products/"

// LocalStorage persists uploaded files under a managed directory and maps
// between public urls and paths on disk.
type LocalStorage struct {
	root string // <uploads>/products
}

// NewLocalStorage creates the managed directory if needed and returns a
// store rooted at <dir>/products.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	root := filepath.Join(dir, "products")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

// Save writes data to the managed directory and returns the public url the
// file is served under. Filenames are caller-generated from fresh unique
// identifiers, so concurrent saves never touch the same path.
func (s *LocalStorage) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(s.root, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload %s: %w", filename, err)
	}
	return URLPrefix + filename, nil
}

// Remove unlinks the backing file of a managed url. Removing an unmanaged
// url is a no-op. A file that is already absent is not an error: the
// database row is the source of truth for existence.
func (s *LocalStorage) Remove(url string) error {
	if !s.IsManaged(url) {
		return nil
	}
	path := filepath.Join(s.root, filepath.Base(url))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsManaged reports whether the url points into the managed directory.
func (s *LocalStorage) IsManaged(url string) bool {
	return strings.HasPrefix(url, URLPrefix)
}

// Dir returns the directory files are written to, for static serving.
func (s *LocalStorage) Dir() string {
	return s.root
}
