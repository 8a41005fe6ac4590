package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/cesargomez89/gameshelf/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port           string
	DBPath         string
	MetadataURL    string
	MetadataAPIKey string
	RetroURL       string
	RetroAPIKey    string
	SteamAPIURL    string
	SteamAPIKey    string
	LogLevel       string
	LogFormat      string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", constants.DefaultPort),
		DBPath:         getEnv("DB_PATH", constants.DefaultDBPath),
		MetadataURL:    getEnv("METADATA_URL", constants.DefaultMetadataURL),
		MetadataAPIKey: getEnv("METADATA_API_KEY", ""),
		RetroURL:       getEnv("RETRO_URL", constants.DefaultRetroURL),
		RetroAPIKey:    getEnv("RETRO_API_KEY", ""),
		SteamAPIURL:    getEnv("STEAM_API_URL", constants.DefaultSteamAPIURL),
		SteamAPIKey:    getEnv("STEAM_API_KEY", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	if c.MetadataURL != "" {
		if _, err := url.Parse(c.MetadataURL); err != nil {
			errors = append(errors, fmt.Sprintf("METADATA_URL is not a valid URL: %s", c.MetadataURL))
		}
	}

	if c.RetroURL != "" {
		if _, err := url.Parse(c.RetroURL); err != nil {
			errors = append(errors, fmt.Sprintf("RETRO_URL is not a valid URL: %s", c.RetroURL))
		}
	}

	if c.SteamAPIURL != "" {
		if _, err := url.Parse(c.SteamAPIURL); err != nil {
			errors = append(errors, fmt.Sprintf("STEAM_API_URL is not a valid URL: %s", c.SteamAPIURL))
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of debug, info, warn, error, got: %s", c.LogLevel))
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be text or json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
