package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"childcare-cv-backend/config"
	_ "childcare-cv-backend/docs" // Important for Swagger
	v1 "childcare-cv-backend/internal/delivery/http/v1"
	"childcare-cv-backend/internal/repository/postgres"
	"childcare-cv-backend/internal/usecase"
	"childcare-cv-backend/pkg/auth"
	"childcare-cv-backend/pkg/database"
	"childcare-cv-backend/pkg/logger"
	"childcare-cv-backend/pkg/redis"
	"childcare-cv-backend/pkg/storage"
	"childcare-cv-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Childcare CV API
// @version         1.0
// @description     Candidate CV backend for childcare professionals: profile wizard, completion score and public CV pages.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	logger.Log.Info("Starting childcare CV backend", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))

	ctx := context.Background()

	// 3. Setup Database
	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DBUrl, cfg.MigrationsPath); err != nil {
			logger.Log.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, rate limiting falls back to memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", zap.Error(err))
	}
	defer redis.Close()

	// 5. Setup Object Storage
	objects, err := storage.NewS3Storage(ctx, storage.Config{
		Provider:        storage.Provider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		PublicBaseURL:   cfg.S3PublicBaseURL,
		WasabiEndpoint:  cfg.WasabiEndpoint,
	})
	if err != nil {
		logger.Log.Fatal("Failed to configure object storage", zap.Error(err))
	}

	optionalChecks := map[string]usecase.HealthCheckFunc{
		"redis":   redis.HealthCheck,
		"storage": objects.HealthCheck,
	}

	var scanner storage.Scanner = storage.NoOpScanner{}
	if cfg.ClamAVAddress != "" {
		clam := storage.NewClamAVScanner(cfg.ClamAVAddress, time.Duration(cfg.ClamAVTimeoutSeconds)*time.Second)
		optionalChecks["antivirus"] = clam.HealthCheck
		scanner = clam
	} else {
		logger.Log.Warn("CLAMAV_ADDRESS not configured, uploads are not scanned for malware")
	}

	// 6. Setup Repositories and UseCases
	store := postgres.NewProfileStore(dbPool)
	validate := validation.New()
	scorer := usecase.NewCompletionScorer(store)

	candidateUC := usecase.NewCandidateUsecase(store, scorer, validate)
	experienceUC := usecase.NewExperienceUsecase(store, scorer, validate)
	credentialUC := usecase.NewCredentialUsecase(store, scorer, validate)
	publicProfileUC := usecase.NewPublicProfileUsecase(store)
	uploadUC := usecase.NewUploadUsecase(store, objects, scanner, scorer, cfg.UploadMaxBytes)
	healthUC := usecase.NewHealthUsecase(
		map[string]usecase.HealthCheckFunc{"database": dbPool.Ping},
		optionalChecks,
	)

	// 7. Setup Auth (HS256 secret + JWKS for asymmetric keys)
	verifier := auth.NewVerifier(cfg.SupabaseJWTSecret, auth.NewProvider(auth.SupabaseJWKSURL(cfg.SupabaseUrl)))

	// 8. Setup Router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC:     candidateUC,
		ExperienceUC:    experienceUC,
		CredentialUC:    credentialUC,
		PublicProfileUC: publicProfileUC,
		UploadUC:        uploadUC,
		HealthUC:        healthUC,
		Verifier:        verifier,
		Config:          cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
