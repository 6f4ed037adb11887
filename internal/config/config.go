package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the binaries read from the environment.
// A .env file is loaded if present; real env vars win.
type Config struct {
	HTTPAddr string

	// Database
	DBHost     string
	DBPort     string
	DBName     string
	DBSecretID string

	// Evidence object storage
	S3Bucket string
	S3Region string

	// Reference data registry
	RefDataBaseURL string

	// Bulk import
	ImportFilePath   string
	ImportWebhookURL string

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	// Ignore a missing .env; containers inject the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBName:           getEnv("DB_NAME", "pay_managing"),
		DBSecretID:       getEnv("DB_SECRET_ID", ""),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		S3Region:         getEnv("AWS_REGION", "us-east-1"),
		RefDataBaseURL:   getEnv("REFDATA_BASE_URL", "https://restcountries.com"),
		ImportFilePath:   getEnv("IMPORT_FILE_PATH", "/upload/payment_information.csv"),
		ImportWebhookURL: getEnv("IMPORT_WEBHOOK_URL", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	return nil
}

// RequireS3 enforces the evidence-store settings; only the API binary
// serves uploads, the importer does not need a bucket.
func (c *Config) RequireS3() error {
	if c.S3Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
