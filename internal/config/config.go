package config

import (
	"fmt"
	"log"
	"os"

	"image-hosting/internal/imaging"
	"image-hosting/internal/utils"

	"github.com/joho/godotenv"
	pkgConfig "github.com/kerimovok/go-pkg-utils/config"
	"gopkg.in/yaml.v3"
)

const configPath = "config/storage.yaml"

// StorageConfig holds upload storage settings
type StorageConfig struct {
	UploadDir      string   `yaml:"upload_dir"`
	MaxFileSize    string   `yaml:"max_file_size"`
	AllowedFormats []string `yaml:"allowed_formats"`
}

// ListingConfig holds image listing settings
type ListingConfig struct {
	PerPage int `yaml:"per_page"`
}

// MainConfig holds the root configuration
type MainConfig struct {
	Storage StorageConfig `yaml:"storage"`
	Listing ListingConfig `yaml:"listing"`
}

var Config MainConfig

// LoadConfig loads .env and the YAML storage configuration. A missing config
// file falls back to built-in defaults so the service can run in a bare
// container.
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		if pkgConfig.GetEnv("GO_ENV") != "production" {
			log.Println("Warning: Failed to load .env file")
		}
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		log.Printf("Config file %s not found, using defaults", configPath)
	case err != nil:
		return fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
		applyDefaults(&cfg)
		log.Printf("Storage configuration loaded from %s", configPath)
	}

	if _, err := cfg.MaxFileSizeBytes(); err != nil {
		return fmt.Errorf("invalid max_file_size: %w", err)
	}

	Config = cfg
	return nil
}

// GetConfig returns the current configuration
func GetConfig() MainConfig {
	return Config
}

// MaxFileSizeBytes parses the configured size string into bytes.
func (c MainConfig) MaxFileSizeBytes() (int64, error) {
	return utils.ParseSizeString(c.Storage.MaxFileSize)
}

func defaultConfig() MainConfig {
	return MainConfig{
		Storage: StorageConfig{
			UploadDir:      "images",
			MaxFileSize:    "10MB",
			AllowedFormats: imaging.DefaultAllowedFormats,
		},
		Listing: ListingConfig{PerPage: 10},
	}
}

func applyDefaults(cfg *MainConfig) {
	def := defaultConfig()
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = def.Storage.UploadDir
	}
	if cfg.Storage.MaxFileSize == "" {
		cfg.Storage.MaxFileSize = def.Storage.MaxFileSize
	}
	if len(cfg.Storage.AllowedFormats) == 0 {
		cfg.Storage.AllowedFormats = def.Storage.AllowedFormats
	}
	if cfg.Listing.PerPage <= 0 {
		cfg.Listing.PerPage = def.Listing.PerPage
	}
}
