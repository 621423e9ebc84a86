package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Endpoints EndpointsConfig
	Handlers  HandlersConfig
	Log       LogConfig
}

// ServerConfig holds host bridge server configuration
type ServerConfig struct {
	Port      int
	InboxSize int
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// EndpointsConfig describes where the pre-signed workflow endpoint URLs come from.
type EndpointsConfig struct {
	Source           string // "env", "local" or "s3"
	OrderFlowURL     string
	InventoryFlowURL string
	File             string
	LocalDir         string
	S3Endpoint       string
	S3Bucket         string
	S3Region         string
	S3AccessKey      string
	S3SecretKey      string
}

// HandlersConfig holds per-handler behaviour switches
type HandlersConfig struct {
	InventoryID        string
	InventoryNotify    bool
	OrderNotifyPending bool
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables, after loading a .env file if present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	serverPort, err := strconv.Atoi(getEnvOrDefault("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      serverPort,
			InboxSize: getIntOrDefault("HOSTBRIDGE_INBOX_SIZE", 100),
		},
		CORS: CORSConfig{
			AllowedOrigins:   parseCommaSeparated(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
			AllowedMethods:   parseCommaSeparated(getEnvOrDefault("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")),
			AllowedHeaders:   parseCommaSeparated(getEnvOrDefault("CORS_ALLOWED_HEADERS", "Content-Type,Accept")),
			AllowCredentials: getBoolOrDefault("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getIntOrDefault("CORS_MAX_AGE", 3600),
		},
		Endpoints: EndpointsConfig{
			Source:           getEnvOrDefault("ENDPOINTS_SOURCE", "env"),
			OrderFlowURL:     os.Getenv("ORDER_FLOW_URL"), // carries a signature, no default
			InventoryFlowURL: os.Getenv("INVENTORY_FLOW_URL"),
			File:             getEnvOrDefault("ENDPOINTS_FILE", "endpoints.yaml"),
			LocalDir:         getEnvOrDefault("ENDPOINTS_LOCAL_DIR", "."),
			S3Endpoint:       os.Getenv("ENDPOINTS_S3_ENDPOINT"),
			S3Bucket:         os.Getenv("ENDPOINTS_S3_BUCKET"),
			S3Region:         getEnvOrDefault("ENDPOINTS_S3_REGION", "us-east-1"),
			S3AccessKey:      os.Getenv("ENDPOINTS_S3_ACCESS_KEY"),
			S3SecretKey:      os.Getenv("ENDPOINTS_S3_SECRET_KEY"),
		},
		Handlers: HandlersConfig{
			InventoryID:        getEnvOrDefault("INVENTORY_ID", "213213"),
			InventoryNotify:    getBoolOrDefault("INVENTORY_NOTIFY", true),
			OrderNotifyPending: getBoolOrDefault("ORDER_NOTIFY_PENDING", true),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	switch c.Endpoints.Source {
	case "env":
		if c.Endpoints.OrderFlowURL == "" && c.Endpoints.InventoryFlowURL == "" {
			return fmt.Errorf("ORDER_FLOW_URL or INVENTORY_FLOW_URL is required when ENDPOINTS_SOURCE=env")
		}
	case "local":
		if c.Endpoints.File == "" {
			return fmt.Errorf("ENDPOINTS_FILE is required when ENDPOINTS_SOURCE=local")
		}
	case "s3":
		if c.Endpoints.S3Bucket == "" {
			return fmt.Errorf("ENDPOINTS_S3_BUCKET is required when ENDPOINTS_SOURCE=s3")
		}
		if c.Endpoints.File == "" {
			return fmt.Errorf("ENDPOINTS_FILE is required when ENDPOINTS_SOURCE=s3")
		}
	default:
		return fmt.Errorf("unsupported ENDPOINTS_SOURCE: %q", c.Endpoints.Source)
	}
	if c.Server.InboxSize <= 0 {
		return fmt.Errorf("HOSTBRIDGE_INBOX_SIZE must be positive")
	}
	return nil
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntOrDefault returns the integer value of an environment variable or a default value
func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getBoolOrDefault returns the boolean value of an environment variable or a default value
func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// parseCommaSeparated splits a comma-separated string into a slice of trimmed strings
func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
