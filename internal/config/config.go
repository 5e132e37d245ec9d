package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	AppURL      string
	Port        string
	FrontendURL string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration
	OTPExpiry time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// AI
	GeminiAPIKey string
	GeminiModel  string

	// Upload limits
	MaxUploadSize int64

	// Rate limiting
	RateLimitWindow   time.Duration
	RateLimitRequests int
	RateLimitAuth     int

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "AI Research Partner"),
		AppEnv:      envRequired("APP_ENV"), // 'development' or 'production'
		AppURL:      envString("APP_URL", "http://localhost:5000"),
		Port:        envString("PORT", "5000"),
		FrontendURL: envString("FRONTEND_URL", "http://localhost:5173"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/researchpartner.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 720*time.Hour), // 30 days
		OTPExpiry: envDuration("OTP_EXPIRY", 10*time.Minute),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// AI
		GeminiAPIKey: envString("GEMINI_API_KEY", ""),
		GeminiModel:  envString("GEMINI_MODEL", "gemini-2.0-flash"),

		// Uploads
		MaxUploadSize: envInt64("MAX_UPLOAD_SIZE", 20<<20), // 20 MB

		// Rate limiting
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitAuth:     envInt("RATE_LIMIT_AUTH", 10),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage (S3-compatible - required for paper uploads)
		S3Region:        envRequired("S3_REGION"),
		S3Bucket:        envRequired("S3_BUCKET"),
		S3AccessKey:     envRequired("S3_ACCESS_KEY"),
		S3SecretKey:     envRequired("S3_SECRET_KEY"),
		S3Endpoint:      envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 168*time.Hour),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for
// production deployments. Development allows email and AI to fall back to
// log-only modes for local testing.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if cfg.GeminiAPIKey == "" {
		slog.Error("production deployment requires GEMINI_API_KEY")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envInt64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
