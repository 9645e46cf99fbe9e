package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
)

// Config carries the environment configuration for the API server.
type Config struct {
	DatabaseURL string
	Port        int

	JWTSecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	// Remote email-sending functions (status updates need a service token,
	// booking confirmations are customer-facing and unauthenticated).
	StatusEmailURL       string
	ConfirmationEmailURL string
	EmailServiceToken    string

	// PinnedOwnerID pins the public customer site to a single tenant when
	// the deployment serves one business (OWNER_ID).
	PinnedOwnerID uuid.UUID
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		MinioEndpoint:        getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:       getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:       getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:          os.Getenv("MINIO_USE_SSL") == "true",
		MinioBucket:          getEnv("MINIO_BUCKET", "fleetrent"),
		StatusEmailURL:       os.Getenv("STATUS_EMAIL_URL"),
		ConfirmationEmailURL: os.Getenv("CONFIRMATION_EMAIL_URL"),
		EmailServiceToken:    os.Getenv("EMAIL_SERVICE_TOKEN"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	port := getEnv("PORT", "8080")
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
	}
	cfg.Port = p

	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			cfg.RedisDB = n
		}
	}

	if ownerID := os.Getenv("OWNER_ID"); ownerID != "" {
		id, err := uuid.Parse(ownerID)
		if err != nil {
			return nil, fmt.Errorf("invalid OWNER_ID %q: %w", ownerID, err)
		}
		cfg.PinnedOwnerID = id
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
