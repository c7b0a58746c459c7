package utils

import (
	"github.com/gin-gonic/gin"
)

// DataResponse is the envelope for successful responses carrying a payload.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse is the envelope for error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Data writes a success response wrapping the payload in {"data": ...}.
func Data(c *gin.Context, code int, data interface{}) {
	c.JSON(code, DataResponse{Data: data})
}

// Error writes an error response with a category label and a detail message.
func Error(c *gin.Context, code int, category, message string) {
	c.JSON(code, ErrorResponse{Error: category, Message: message})
}
