// Package config loads md2invoice settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2invoice/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxCurrencyLength    = 8
	MaxStyleLength       = 2048 // name or path
	MaxPathLength        = 4096
	MaxTextLength        = 500
	MaxPageSizeLength    = 10
	MaxOrientationLength = 10
)

// Margin bounds in inches, matching the PDF renderer.
const (
	MinMargin = 0.25
	MaxMargin = 3.0
)

// dirName is the per-user config directory under os.UserConfigDir.
const dirName = "go-md2invoice"

// Config holds settings for invoice conversion.
// Zero values mean "use the converter default".
type Config struct {
	Currency  string       `yaml:"currency"`
	Style     string       `yaml:"style"`     // embedded style name, CSS file path, or empty
	AssetPath string       `yaml:"assetPath"` // directory searched for styles before the embedded set
	Timeout   string       `yaml:"timeout"`   // Go duration, e.g. "45s"
	Page      PageConfig   `yaml:"page"`
	Footer    FooterConfig `yaml:"footer"`
	Output    OutputConfig `yaml:"output"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // letter, a4, legal
	Orientation string  `yaml:"orientation"` // portrait, landscape
	Margin      float64 `yaml:"margin"`      // inches
}

// FooterConfig defines the page footer.
type FooterConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Position       string `yaml:"position"` // left, center, right
	ShowPageNumber bool   `yaml:"showPageNumber"`
	Text           string `yaml:"text"`
}

// OutputConfig defines where and what to write.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
	HTML       bool   `yaml:"html"`       // also write the HTML document
}

// DefaultConfig returns an empty configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// TimeoutDuration returns the parsed timeout, or 0 when unset.
// Call Validate first; an unparsable value also yields 0.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks field lengths and enumerated values.
// Called by LoadConfig, but available to callers that build a Config by hand.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"currency", c.Currency, MaxCurrencyLength},
		{"style", c.Style, MaxStyleLength},
		{"assetPath", c.AssetPath, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"footer.text", c.Footer.Text, MaxTextLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, c.Timeout)
		}
	}

	if err := validateEnum("page.size", c.Page.Size, "letter", "a4", "legal"); err != nil {
		return err
	}
	if err := validateEnum("page.orientation", c.Page.Orientation, "portrait", "landscape"); err != nil {
		return err
	}
	if c.Page.Margin != 0 && (c.Page.Margin < MinMargin || c.Page.Margin > MaxMargin) {
		return fmt.Errorf("%w: page.margin must be between %.2f and %.2f, got %.2f",
			ErrInvalidValue, MinMargin, MaxMargin, c.Page.Margin)
	}
	return validateEnum("footer.position", c.Footer.Position, "left", "center", "right")
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts an empty value or one of allowed, case-insensitively.
func validateEnum(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)",
		ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a name
// searched in the current directory, then the user config directory.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return DefaultConfig(), nil
	}

	var cfg Config
	if err := yamlutil.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// userConfigDir is replaced in tests.
var userConfigDir = os.UserConfigDir

// resolveConfigPath searches for name.yaml then name.yml in the current
// directory, then in the user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if dir, err := userConfigDir(); err == nil {
		for _, ext := range extensions {
			p := filepath.Join(dir, dirName, name+ext)
			if fileExists(p) {
				return p, nil
			}
			tried = append(tried, p)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
