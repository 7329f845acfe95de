// Package config handles external configuration loading from JSON and environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Debug   bool    `json:"debug"`
	Server  Server  `json:"server"`
	Storage Storage `json:"storage"`
	Auth    Auth    `json:"auth"`
}

// Server holds HTTP server configuration
type Server struct {
	Port         int    `json:"port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"readTimeout"`
	WriteTimeout int    `json:"writeTimeout"`
}

// Storage holds the data file and attachment directory locations
type Storage struct {
	DataFile       string `json:"dataFile"`
	AttachmentsDir string `json:"attachmentsDir"`
}

// Auth holds the single-operator login configuration
type Auth struct {
	JWTSecret       string `json:"jwtSecret"`
	ExpirationHours int    `json:"expirationHours"`
	AdminPassword   string `json:"adminPassword"`
}

// Load reads configuration from the specified JSON file and overrides with environment variables
func Load(configPath string) (*Config, error) {
	var cfg Config

	cleanPath := filepath.Clean(configPath)

	data, err := os.ReadFile(cleanPath)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, we continue with empty config and rely on Env Vars

	cfg.applyEnvOverrides()

	// Set defaults if missing (e.g. for purely env-based config)
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DataFile == "" {
		cfg.Storage.DataFile = "complaints_data.json"
	}
	if cfg.Storage.AttachmentsDir == "" {
		cfg.Storage.AttachmentsDir = "photos"
	}
	if cfg.Auth.ExpirationHours == 0 {
		cfg.Auth.ExpirationHours = 24
	}
	if cfg.Auth.AdminPassword == "" && cfg.Debug {
		cfg.Auth.AdminPassword = "admin123"
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides overrides config values with environment variables if set
func (c *Config) applyEnvOverrides() {
	if debug := os.Getenv("DEBUG"); debug != "" {
		c.Debug = debug == "true" || debug == "1"
	}

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if dataFile := os.Getenv("DATA_FILE"); dataFile != "" {
		c.Storage.DataFile = dataFile
	}

	if dir := os.Getenv("ATTACHMENTS_DIR"); dir != "" {
		c.Storage.AttachmentsDir = dir
	}

	// JWT secret (critical for production)
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}

	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		c.Auth.AdminPassword = password
	}
}

// validate checks that all required configuration values are present
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Validate storage paths for security
	cleanData := filepath.Clean(c.Storage.DataFile)
	if !filepath.IsLocal(cleanData) && !filepath.IsAbs(cleanData) {
		return fmt.Errorf("invalid data file path: potential path traversal detected")
	}
	cleanAttachments := filepath.Clean(c.Storage.AttachmentsDir)
	if !filepath.IsLocal(cleanAttachments) && !filepath.IsAbs(cleanAttachments) {
		return fmt.Errorf("invalid attachments directory: potential path traversal detected")
	}

	if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == "CHANGE_THIS_SECRET_IN_PRODUCTION" {
		if !c.Debug {
			return fmt.Errorf("JWT secret must be changed for production")
		}
	}

	if c.Auth.AdminPassword == "" && !c.Debug {
		return fmt.Errorf("admin password is required")
	}

	if c.Auth.ExpirationHours <= 0 {
		c.Auth.ExpirationHours = 24
	}

	return nil
}

// Address returns the full server address (host:port)
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DataFilePath returns the cleaned data file path
func (c *Config) DataFilePath() string {
	return filepath.Clean(c.Storage.DataFile)
}

// AttachmentsDirPath returns the cleaned attachments directory path
func (c *Config) AttachmentsDirPath() string {
	return filepath.Clean(c.Storage.AttachmentsDir)
}
