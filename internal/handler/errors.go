package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hexalab/demostore_api/internal/utils"
)

// respondError maps a service error onto the HTTP error taxonomy:
// validation and duplicate sku to 400, missing product/image to 404,
// oversized files to 413, disallowed media types to 415 and anything
// unexpected to 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrValidation):
		utils.Error(c, 400, "Validation error", utils.Reason(err))
	case errors.Is(err, utils.ErrSKUExists):
		utils.Error(c, 400, "Validation error", "SKU already exists")
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "Not found", "Product not found")
	case errors.Is(err, utils.ErrImageNotFound):
		utils.Error(c, 404, "Not found", "Image not found")
	case errors.Is(err, utils.ErrFileTooLarge):
		utils.Error(c, 413, "File too large", utils.Reason(err))
	case errors.Is(err, utils.ErrUnsupportedMedia):
		utils.Error(c, 415, "Unsupported media type", utils.Reason(err))
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		utils.Error(c, 500, "Something went wrong!", err.Error())
	}
}
