package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	AppEnv string
	// Database
	DBUrl          string
	MigrationsPath string
	RunMigrations  bool
	// Identity provider (Supabase Auth)
	SupabaseUrl       string
	SupabaseJWTSecret string
	FrontendURL       string
	// Redis (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate limiting
	RateLimitWindowSeconds   int
	RateLimitPublicThreshold int
	UploadMaxPerMinute       int
	// Object storage (S3 compatible)
	S3Provider        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	S3PublicBaseURL   string
	WasabiEndpoint    string
	UploadMaxBytes    int
	// Malware scanning (clamd); empty address disables scanning
	ClamAVAddress        string
	ClamAVTimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; in production the variables come from the platform.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		AppEnv:         getEnv("APP_ENV", "production"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		RunMigrations:  getEnvBool("RUN_MIGRATIONS", false),
		// Trailing slash would produce ".co//auth" when building the JWKS URL
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		RedisURL:          getEnv("REDIS_URL", getEnv("UPSTASH_REDIS_URL", "")),
		RedisPassword:     getEnv("REDIS_PASSWORD", getEnv("UPSTASH_REDIS_PASSWORD", "")),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitPublicThreshold: getEnvInt("RATE_LIMIT_PUBLIC_THRESHOLD", 60),
		UploadMaxPerMinute:       getEnvInt("UPLOAD_MAX_PER_MINUTE", 10),

		S3Provider:        getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "eu-west-3"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		WasabiEndpoint:    getEnv("WASABI_ENDPOINT", ""),
		UploadMaxBytes:    getEnvInt("UPLOAD_MAX_BYTES", 5<<20),

		ClamAVAddress:        getEnv("CLAMAV_ADDRESS", ""),
		ClamAVTimeoutSeconds: getEnvInt("CLAMAV_TIMEOUT_SECONDS", 30),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.S3Bucket == "" {
		log.Println("WARNING: S3_BUCKET not configured. Uploads will be rejected.")
	}

	return cfg, nil
}

// IsDevelopment reports whether local-only behaviour (dev CORS origins, console logs) is enabled.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
