package v1

import (
	"net/http"
	"time"

	"childcare-cv-backend/config"
	"childcare-cv-backend/internal/delivery/http/middleware"
	"childcare-cv-backend/internal/delivery/http/response"
	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CandidateUC     domain.CandidateUsecase
	ExperienceUC    domain.ExperienceUsecase
	CredentialUC    domain.CredentialUsecase
	PublicProfileUC domain.PublicProfileUsecase
	UploadUC        domain.UploadUsecase
	HealthUC        usecase.HealthUsecase
	Verifier        middleware.TokenVerifier
	Config          *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.IsDevelopment())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLogger())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.S3PublicBaseURL))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		checks, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", checks)
			return
		}
		response.Success(c, http.StatusOK, "System operational", checks)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	publicLimit := middleware.RateLimitMiddleware(middleware.PublicProfileRateLimitConfig(
		cfg.RateLimitPublicThreshold,
		time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
	))
	NewPublicProfileHandler(v1, deps.PublicProfileUC, publicLimit)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Verifier))
	{
		NewCandidateHandler(protected, deps.CandidateUC)
		NewExperienceHandler(protected, deps.ExperienceUC)
		NewCredentialHandler(protected, deps.CredentialUC)

		uploadLimit := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(cfg.UploadMaxPerMinute))
		NewUploadHandler(protected, deps.UploadUC, int64(cfg.UploadMaxBytes), uploadLimit)
	}

	return r
}
