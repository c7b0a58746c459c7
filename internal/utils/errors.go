package utils

import (
	"errors"
	"strings"
)

// Common application errors used across services. Handlers map these to
// HTTP statuses with errors.Is.
var (
	ErrValidation       = errors.New("VALIDATION_ERROR")
	ErrProductNotFound  = errors.New("PRODUCT_NOT_FOUND")
	ErrImageNotFound    = errors.New("IMAGE_NOT_FOUND")
	ErrSKUExists        = errors.New("SKU_EXISTS")
	ErrFileTooLarge     = errors.New("FILE_TOO_LARGE")
	ErrUnsupportedMedia = errors.New("UNSUPPORTED_MEDIA_TYPE")
)

// Reason extracts the human-readable part of a wrapped sentinel error,
// i.e. the text after "CODE: ". Falls back to the full error text.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if _, detail, ok := strings.Cut(msg, ": "); ok && detail != "" {
		return detail
	}
	return msg
}
