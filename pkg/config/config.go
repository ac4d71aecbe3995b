// ABOUTME: Configuration management with environment variable and TOML file support
// ABOUTME: Defines the recognized options for one workbook processing run

package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	// ExcelPath is the input spreadsheet to process
	ExcelPath string `toml:"excel_path"`

	// OutputPath receives the illustrated spreadsheet
	OutputPath string `toml:"output_path"`

	// TempDir stages downloaded and converted files for one run
	TempDir string `toml:"temp_dir"`

	// PopplerPath is the directory holding the poppler binaries;
	// empty means resolve them from PATH
	PopplerPath string `toml:"poppler_path"`

	// MaxWorkers bounds the parallel fetch-and-convert pool
	MaxWorkers int `toml:"max_workers"`

	// FetchTimeoutSeconds bounds each individual download
	FetchTimeoutSeconds int `toml:"fetch_timeout_seconds"`
}

// LoadFromEnv loads configuration from environment variables, falling
// back to defaults for anything unset.
func LoadFromEnv() *Config {
	return &Config{
		ExcelPath:           os.Getenv("XLTHUMBS_EXCEL_PATH"),
		OutputPath:          os.Getenv("XLTHUMBS_OUTPUT_PATH"),
		TempDir:             getEnvOrDefault("XLTHUMBS_TEMP_DIR", "temp_files"),
		PopplerPath:         os.Getenv("XLTHUMBS_POPPLER_PATH"),
		MaxWorkers:          getEnvAsIntOrDefault("XLTHUMBS_MAX_WORKERS", 4),
		FetchTimeoutSeconds: getEnvAsIntOrDefault("XLTHUMBS_FETCH_TIMEOUT", 15),
	}
}

// MergeFile overlays values from a TOML config file onto the config.
// Only keys present in the file override existing values.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var overlay Config
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return err
	}

	if overlay.ExcelPath != "" {
		c.ExcelPath = overlay.ExcelPath
	}
	if overlay.OutputPath != "" {
		c.OutputPath = overlay.OutputPath
	}
	if overlay.TempDir != "" {
		c.TempDir = overlay.TempDir
	}
	if overlay.PopplerPath != "" {
		c.PopplerPath = overlay.PopplerPath
	}
	if overlay.MaxWorkers > 0 {
		c.MaxWorkers = overlay.MaxWorkers
	}
	if overlay.FetchTimeoutSeconds > 0 {
		c.FetchTimeoutSeconds = overlay.FetchTimeoutSeconds
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.ExcelPath == "" {
		return errors.New("input spreadsheet path is required")
	}
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	if c.TempDir == "" {
		return errors.New("temp directory is required")
	}
	if c.MaxWorkers <= 0 {
		return errors.New("max workers must be positive")
	}
	if c.FetchTimeoutSeconds <= 0 {
		return errors.New("fetch timeout must be positive")
	}
	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as an int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
