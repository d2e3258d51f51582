// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	AWS         AWSConfig
	Catalog     CatalogConfig
	Upload      UploadConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
}

// CatalogConfig holds the Data Shop endpoints the publisher posts to. The
// product, table and column endpoints receive the catalog records; the backend
// endpoint receives the minimal product summary guarded by the admin password.
type CatalogConfig struct {
	ProductEndpoint string
	TableEndpoint   string
	ColumnEndpoint  string
	BackendEndpoint string
	AdminPassword   string
}

type UploadConfig struct {
	MaxArchiveSize int64 // in bytes
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 60),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 60),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("DATA_PRODUCTS_BUCKET", ""),
		},
		Catalog: CatalogConfig{
			ProductEndpoint: getEnv("CATALOG_PRODUCT_ENDPOINT", ""),
			TableEndpoint:   getEnv("CATALOG_TABLE_ENDPOINT", ""),
			ColumnEndpoint:  getEnv("CATALOG_COLUMN_ENDPOINT", ""),
			BackendEndpoint: getEnv("CATALOG_BACKEND_ENDPOINT", ""),
			AdminPassword:   getEnv("ADMIN_PW", ""),
		},
		Upload: UploadConfig{
			MaxArchiveSize: int64(getEnvAsInt("UPLOAD_MAX_ARCHIVE_MB", 200)) * 1024 * 1024,
		},
	}

	return config, config.Validate()
}

// Validate fails fast on missing required settings so a misconfigured pipeline
// never reaches the first upload.
func (c *Config) Validate() error {
	var missing []string

	if c.AWS.S3Bucket == "" {
		missing = append(missing, "DATA_PRODUCTS_BUCKET")
	}
	if c.Catalog.ProductEndpoint == "" {
		missing = append(missing, "CATALOG_PRODUCT_ENDPOINT")
	}
	if c.Catalog.TableEndpoint == "" {
		missing = append(missing, "CATALOG_TABLE_ENDPOINT")
	}
	if c.Catalog.ColumnEndpoint == "" {
		missing = append(missing, "CATALOG_COLUMN_ENDPOINT")
	}
	if c.Catalog.BackendEndpoint == "" {
		missing = append(missing, "CATALOG_BACKEND_ENDPOINT")
	}
	if c.Catalog.AdminPassword == "" {
		missing = append(missing, "ADMIN_PW")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
