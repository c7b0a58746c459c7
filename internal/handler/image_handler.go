package handler

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/hexalab/demostore_api/internal/service"
	"github.com/hexalab/demostore_api/internal/utils"
)

// ImageHandler handles product image HTTP endpoints.
type ImageHandler struct {
	imageService *service.ImageService
}

// NewImageHandler constructs an ImageHandler.
func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// ListImages handles GET /products/:id/images
func (h *ImageHandler) ListImages(c *gin.Context) {
	images, err := h.imageService.ListImages(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Data(c, 200, images)
}

// UploadImages handles POST /products/:id/images. Multipart parts under the
// "images" field are parsed into typed uploads before the service runs its
// validation and persistence workflow.
func (h *ImageHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.Error(c, 400, "Validation error", "Invalid multipart form")
		return
	}

	uploads, err := parseUploads(form.File["images"])
	if err != nil {
		utils.Error(c, 400, "Validation error", "Failed to read uploaded file")
		return
	}

	images, err := h.imageService.UploadImages(c.Request.Context(), c.Param("id"), uploads)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Data(c, 201, images)
}

// DeleteImage handles DELETE /products/:id/images/:imageId
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	if err := h.imageService.DeleteImage(c.Request.Context(), c.Param("id"), c.Param("imageId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(204)
}

// parseUploads reads each multipart file into a typed upload carrying the
// raw bytes together with the declared size and content type.
func parseUploads(headers []*multipart.FileHeader) ([]service.FileUpload, error) {
	uploads := make([]service.FileUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}

		uploads = append(uploads, service.FileUpload{
			Data:        data,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}
	return uploads, nil
}
