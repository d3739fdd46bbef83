package middleware

import (
	"errors"
	"net/http"

	"childcare-cv-backend/internal/delivery/http/response"
	"childcare-cv-backend/pkg/apperror"
	"childcare-cv-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log := logger.FromContext(c.Request.Context())

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				log.Error("Request failed", zap.Int("code", appErr.Code), zap.Error(err))
				// Never expose internal error details to clients.
				response.Error(c, appErr.Code, publicMessage(appErr), nil)
				return
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		log.Error("Internal Server Error", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

func publicMessage(appErr *apperror.AppError) string {
	if appErr.Code == http.StatusInternalServerError {
		return "An unexpected error occurred. Please try again later."
	}
	return appErr.Message
}
