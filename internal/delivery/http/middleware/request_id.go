package middleware

import (
	"context"
	"time"

	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id (incoming header or a new UUID) and
// attaches a request-scoped logger to the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" || len(reqID) > 64 {
			reqID = uuid.NewString()
		}

		c.Set(string(domain.KeyRequestID), reqID)
		c.Header(requestIDHeader, reqID)

		ctx := context.WithValue(c.Request.Context(), domain.KeyRequestID, reqID)
		ctx = logger.WithContext(ctx, logger.Log.With(zap.String("request_id", reqID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AccessLogger writes one structured line per request using the request-scoped logger.
func AccessLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Int("bytes", c.Writer.Size()),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("duration", time.Since(start)),
		}

		log := logger.FromContext(c.Request.Context())
		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("request completed", fields...)
		case status >= 400:
			log.Warn("request completed", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
