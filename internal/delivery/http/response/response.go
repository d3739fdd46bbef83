package response

import (
	"childcare-cv-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response. RequestID echoes the
// X-Request-ID assigned by the RequestID middleware so a candidate can quote
// it when reporting a failed request; 5xx bodies carry nothing else useful.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"` // empty outside the RequestID middleware
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: c.GetString(string(domain.KeyRequestID)),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: c.GetString(string(domain.KeyRequestID)),
	})
}
