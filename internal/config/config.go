package config

import (
	"fmt"
	"os"
	"strings"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

type Config struct {
	// Output Configuration
	OutputDir       string
	DeliveryChannel string
	CurrencySymbol  string

	// Google Cloud Storage Configuration
	GCSOutputBucket string
	GCSOutputFolder string

	// Google Sheets Configuration
	GoogleSheetURL string
	InvoiceSheet   string
	LineItemSheet  string
	RegisterSheet  string

	// Issuer Configuration
	IssuerProfilePath string
	Issuer            models.IssuerProfile

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		OutputDir:         getEnv("OUTPUT_DIR", "."),
		DeliveryChannel:   strings.ToLower(getEnv("DELIVERY_CHANNEL", "file")),
		CurrencySymbol:    getEnv("CURRENCY_SYMBOL", "Rs. "),
		GCSOutputBucket:   getEnv("GCS_OUTPUT_BUCKET", ""),
		GCSOutputFolder:   getEnv("GCS_OUTPUT_FOLDER", ""),
		GoogleSheetURL:    getEnv("GOOGLE_SHEET_URL", ""),
		InvoiceSheet:      getEnv("INVOICE_SHEET", "Invoices"),
		LineItemSheet:     getEnv("LINE_ITEM_SHEET", "LineItems"),
		RegisterSheet:     getEnv("REGISTER_SHEET", "Register"),
		IssuerProfilePath: getEnv("ISSUER_PROFILE_PATH", ""),
		Issuer: models.IssuerProfile{
			Name:    getEnv("ISSUER_NAME", ""),
			Address: getEnv("ISSUER_ADDRESS", ""),
			Phone:   getEnv("ISSUER_PHONE", ""),
			Email:   getEnv("ISSUER_EMAIL", ""),
			TaxID:   getEnv("ISSUER_TAX_ID", ""),
			Bank: models.BankDetails{
				Name:          getEnv("ISSUER_BANK_NAME", ""),
				AccountName:   getEnv("ISSUER_ACCOUNT_NAME", ""),
				AccountNumber: getEnv("ISSUER_ACCOUNT_NUMBER", ""),
				IFSC:          getEnv("ISSUER_IFSC", ""),
			},
			PaymentApp: getEnv("ISSUER_PAYMENT_APP", ""),
		},
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.DeliveryChannel {
	case "file":
		if c.OutputDir == "" {
			return fmt.Errorf("OUTPUT_DIR is required for file delivery")
		}
	case "gcs":
		if c.GCSOutputBucket == "" {
			return fmt.Errorf("GCS_OUTPUT_BUCKET is required for gcs delivery")
		}
	default:
		return fmt.Errorf("DELIVERY_CHANNEL must be file or gcs, got %q", c.DeliveryChannel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}

	return nil
}

// RequireSheet checks that a spreadsheet is configured for sheet-backed
// commands.
func (c *Config) RequireSheet() error {
	if c.GoogleSheetURL == "" {
		return fmt.Errorf("GOOGLE_SHEET_URL is required")
	}
	return nil
}

// IssuerProfile returns the issuer profile assembled from ISSUER_* variables.
func (c *Config) IssuerProfile() *models.IssuerProfile {
	p := c.Issuer
	return &p
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
