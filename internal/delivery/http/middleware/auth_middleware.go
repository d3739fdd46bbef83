package middleware

import (
	"context"
	"net/http"
	"strings"

	"childcare-cv-backend/internal/delivery/http/response"
	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/auth"
	"childcare-cv-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenVerifier validates a bearer token issued by the identity provider.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.SupabaseClaims, error)
}

// AuthMiddleware verifies the bearer token and exposes the caller's identity
// both as gin keys and as request context values for the usecases.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			logger.FromContext(c.Request.Context()).Info("Token validation failed", zap.Error(err))
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.Subject)
		c.Set(string(domain.KeyUserEmail), claims.Email)
		c.Set(string(domain.KeyUserFirstName), claims.UserMetadata.FirstName)
		c.Set(string(domain.KeyUserLastName), claims.UserMetadata.LastName)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, claims.Subject)
		ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(zap.String("user_id", claims.Subject)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
