// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const envPrefix = "HASTAREKHA_"

// Config holds every tunable of the service and CLI.
type Config struct {
	Addr            string
	DBPath          string
	WebDir          string
	MediaPipeScript string
	DetectTimeout   time.Duration
	MaxUploadBytes  int64
	MaxImageDim     int
	ThumbnailSize   int
	LogLevel        string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Addr:           ":8080",
		DBPath:         filepath.Join(home, ".hastarekha", "readings.db"),
		WebDir:         "web",
		DetectTimeout:  2 * time.Second,
		MaxUploadBytes: 10 * 1024 * 1024, // 10MB
		MaxImageDim:    1280,
		ThumbnailSize:  160,
		LogLevel:       "info",
	}
}

// Load reads HASTAREKHA_* variables over the defaults.
func Load() (Config, error) {
	def := Default()
	cfg := Config{
		Addr:            getEnvOrDefault("ADDR", def.Addr),
		DBPath:          getEnvOrDefault("DB", def.DBPath),
		WebDir:          getEnvOrDefault("WEB_DIR", def.WebDir),
		MediaPipeScript: getEnvOrDefault("MEDIAPIPE_SCRIPT", ""),
		DetectTimeout:   parseDurationOrDefault("DETECT_TIMEOUT", def.DetectTimeout),
		MaxUploadBytes:  parseIntOrDefault("MAX_UPLOAD_BYTES", def.MaxUploadBytes),
		MaxImageDim:     int(parseIntOrDefault("MAX_IMAGE_DIM", int64(def.MaxImageDim))),
		ThumbnailSize:   int(parseIntOrDefault("THUMBNAIL_SIZE", int64(def.ThumbnailSize))),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", def.LogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%sADDR must not be empty", envPrefix)
	}
	if c.DetectTimeout <= 0 {
		return fmt.Errorf("%sDETECT_TIMEOUT must be > 0 (got %s)", envPrefix, c.DetectTimeout)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("%sMAX_UPLOAD_BYTES must be > 0 (got %d)", envPrefix, c.MaxUploadBytes)
	}
	if c.MaxImageDim < 64 {
		return fmt.Errorf("%sMAX_IMAGE_DIM must be >= 64 (got %d)", envPrefix, c.MaxImageDim)
	}
	if c.ThumbnailSize <= 0 {
		return fmt.Errorf("%sTHUMBNAIL_SIZE must be > 0 (got %d)", envPrefix, c.ThumbnailSize)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(envPrefix + key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(envPrefix + key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(envPrefix + key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
