// Package config loads runtime settings for the API server and the addsig
// command.
//
// Settings come from, in increasing priority: built-in defaults, an optional
// YAML file, and environment variables (a .env file in the working directory
// is loaded automatically).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go-signpdf/internal/pdf"

	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

// ErrConfigurationError is wrapped by every ConfigError.
var ErrConfigurationError = errors.New("configuration error")

// ConfigError reports an invalid setting.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfigurationError, e.Err}
	}
	return []error{ErrConfigurationError}
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// Stamp holds the default stamp box and date line layout.
type Stamp struct {
	// Width and Height of the stamp box in points.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// DateFormat is a Go time layout for the date line.
	DateFormat string `yaml:"date-format"`
}

type Config struct {
	Port           int           `yaml:"port"`
	PreviewDPI     float64       `yaml:"preview-dpi"`
	SessionTTL     time.Duration `yaml:"session-ttl"`
	ReapInterval   time.Duration `yaml:"reap-interval"`
	MaxPDFMB       int64         `yaml:"max-pdf-mb"`
	MaxSignatureMB int64         `yaml:"max-signature-mb"`
	Stamp          Stamp         `yaml:"stamp"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Port:           8080,
		PreviewDPI:     pdf.DefaultPreviewDPI,
		SessionTTL:     5 * time.Minute,
		ReapInterval:   time.Minute,
		MaxPDFMB:       25,
		MaxSignatureMB: 5,
		Stamp: Stamp{
			Width:      150,
			Height:     50,
			DateFormat: "02 01 2006",
		},
	}
}

// Load builds the configuration. path names an optional YAML file; when it
// is empty SIGNPDF_CONFIG is consulted.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("SIGNPDF_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("failed to read %s", path), Err: err}
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("failed to parse %s: %v", path, err)}
	}
	return nil
}

func (c *Config) loadEnv() error {
	if err := envInt("PORT", &c.Port); err != nil {
		return err
	}
	if err := envFloat("PREVIEW_DPI", &c.PreviewDPI); err != nil {
		return err
	}
	if err := envDuration("SESSION_TTL", &c.SessionTTL); err != nil {
		return err
	}
	if err := envDuration("REAP_INTERVAL", &c.ReapInterval); err != nil {
		return err
	}
	if err := envInt64("MAX_PDF_MB", &c.MaxPDFMB); err != nil {
		return err
	}
	if err := envInt64("MAX_SIGNATURE_MB", &c.MaxSignatureMB); err != nil {
		return err
	}
	if err := envFloat("STAMP_WIDTH", &c.Stamp.Width); err != nil {
		return err
	}
	if err := envFloat("STAMP_HEIGHT", &c.Stamp.Height); err != nil {
		return err
	}
	if v := os.Getenv("DATE_FORMAT"); v != "" {
		c.Stamp.DateFormat = v
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	switch {
	case c.Port < 0 || c.Port > 65535:
		return NewConfigError("port", fmt.Sprintf("%d is not a valid port", c.Port))
	case c.PreviewDPI <= 0:
		return NewConfigError("preview-dpi", "must be positive")
	case c.SessionTTL <= 0:
		return NewConfigError("session-ttl", "must be positive")
	case c.ReapInterval <= 0:
		return NewConfigError("reap-interval", "must be positive")
	case c.MaxPDFMB <= 0:
		return NewConfigError("max-pdf-mb", "must be positive")
	case c.MaxSignatureMB <= 0:
		return NewConfigError("max-signature-mb", "must be positive")
	case c.Stamp.Width <= 0 || c.Stamp.Height <= 0:
		return NewConfigError("stamp", "width and height must be positive")
	case c.Stamp.DateFormat == "":
		return NewConfigError("stamp.date-format", "required field is missing")
	}
	return nil
}

// Addr is the listen address for the API server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &ConfigError{Field: key, Message: fmt.Sprintf("%q is not an integer", v), Err: err}
	}
	*dst = n
	return nil
}

func envInt64(key string, dst *int64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return &ConfigError{Field: key, Message: fmt.Sprintf("%q is not an integer", v), Err: err}
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return &ConfigError{Field: key, Message: fmt.Sprintf("%q is not a number", v), Err: err}
	}
	*dst = f
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return &ConfigError{Field: key, Message: fmt.Sprintf("%q is not a duration", v), Err: err}
	}
	*dst = d
	return nil
}
