package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hexalab/demostore_api/internal/models"
	"github.com/hexalab/demostore_api/internal/utils"
)

// Upload limits, matching the public API contract.
const (
	MaxFilesPerRequest = 5
	MaxFileSize        = 5 << 20 // 5 MiB per file
)

// imageExtensions is the content-type allow-list and the file extension
// each type maps to.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// FileUpload is one parsed multipart file: raw bytes plus the declared
// size and content type. The handler produces these before any business
// logic runs.
type FileUpload struct {
	Data        []byte
	Size        int64
	ContentType string
}

// ImageStore is the persistence contract the image service depends on.
// Implemented by repository.ImageRepository.
type ImageStore interface {
	ListByProduct(ctx context.Context, productID string) ([]models.ProductImage, error)
	GetByID(ctx context.Context, imageID, productID string) (*models.ProductImage, error)
	MaxPosition(ctx context.Context, productID string) (int, error)
	Insert(ctx context.Context, img *models.ProductImage) error
	Delete(ctx context.Context, imageID string) error
}

// ImageService handles the image upload workflow and image deletion.
type ImageService struct {
	products ProductStore
	images   ImageStore
	files    FileStore
}

// NewImageService constructs an ImageService.
func NewImageService(products ProductStore, images ImageStore, files FileStore) *ImageService {
	return &ImageService{products: products, images: images, files: files}
}

// ListImages returns a product's images ordered by position then creation
// time.
func (s *ImageService) ListImages(ctx context.Context, productID string) ([]models.ProductImage, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.images.ListByProduct(ctx, productID)
}

// UploadImages validates the whole batch before any persistence side
// effect, then writes each file and inserts its metadata row in input
// order. Positions continue from the product's current maximum. A failure
// mid-batch abandons the remaining files without rolling back the ones
// already persisted.
func (s *ImageService) UploadImages(ctx context.Context, productID string, uploads []FileUpload) ([]models.ProductImage, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := validateBatch(uploads); err != nil {
		return nil, err
	}

	maxPos, err := s.images.MaxPosition(ctx, productID)
	if err != nil {
		return nil, err
	}
	start := maxPos + 1
	createdAt := time.Now().UTC()

	created := make([]models.ProductImage, 0, len(uploads))
	for i, f := range uploads {
		filename := uuid.New().String() + "." + imageExtensions[f.ContentType]
		url, err := s.files.Save(filename, f.Data)
		if err != nil {
			log.Error().Err(err).Str("product_id", productID).Int("file_index", i).Msg("failed to store uploaded image")
			return nil, err
		}

		img := models.ProductImage{
			ID:        uuid.New().String(),
			ProductID: productID,
			URL:       url,
			Position:  start + i,
			CreatedAt: createdAt,
		}
		if err := s.images.Insert(ctx, &img); err != nil {
			return nil, err
		}
		created = append(created, img)
	}
	return created, nil
}

// DeleteImage removes one image row, verifying it belongs to the named
// product. The backing file is unlinked only when the stored url is
// locally managed; unlink failures are logged, not surfaced, because the
// row is authoritative.
func (s *ImageService) DeleteImage(ctx context.Context, productID, imageID string) error {
	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}

	img, err := s.images.GetByID(ctx, imageID, productID)
	if err != nil {
		return err
	}
	if img == nil {
		return utils.ErrImageNotFound
	}

	if err := s.images.Delete(ctx, imageID); err != nil {
		return err
	}

	if s.files.IsManaged(img.URL) {
		if err := s.files.Remove(img.URL); err != nil {
			log.Warn().Err(err).Str("url", img.URL).Str("image_id", imageID).Msg("failed to remove image file")
		}
	}
	return nil
}

// requireProduct resolves the product or fails with ErrProductNotFound.
func (s *ImageService) requireProduct(ctx context.Context, productID string) error {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return utils.ErrProductNotFound
	}
	return nil
}

// validateBatch applies the upload checks in contract order. The batch is
// all-or-nothing: one bad file rejects every file.
func validateBatch(uploads []FileUpload) error {
	if len(uploads) == 0 {
		return fmt.Errorf("%w: no images provided", utils.ErrValidation)
	}
	if len(uploads) > MaxFilesPerRequest {
		return fmt.Errorf("%w: maximum of %d files per request", utils.ErrValidation, MaxFilesPerRequest)
	}
	for _, f := range uploads {
		if f.Size == 0 {
			return fmt.Errorf("%w: empty file is not allowed", utils.ErrValidation)
		}
	}
	for _, f := range uploads {
		if f.Size > MaxFileSize {
			return fmt.Errorf("%w: max size is 5MB per file", utils.ErrFileTooLarge)
		}
	}
	for _, f := range uploads {
		if _, ok := imageExtensions[f.ContentType]; !ok {
			return fmt.Errorf("%w: invalid image type", utils.ErrUnsupportedMedia)
		}
	}
	return nil
}
