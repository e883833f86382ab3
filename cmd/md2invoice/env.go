package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	md2invoice "github.com/alnah/go-md2invoice"
)

// envPrefix namespaces every environment variable read by md2invoice.
const envPrefix = "MD2INVOICE"

// ErrInvalidEnv reports an environment variable with an unparsable value.
var ErrInvalidEnv = errors.New("invalid environment variable")

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Interactive bool // Stderr is a terminal
	NewPool     func(size int, opts ...md2invoice.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newConverterPool,
	}
}

// envConfig holds MD2INVOICE_* overrides.
type envConfig struct {
	ConfigPath string        `envconfig:"CONFIG"`
	Style      string        `envconfig:"STYLE"`
	Currency   string        `envconfig:"CURRENCY"`
	Timeout    time.Duration `envconfig:"TIMEOUT"`
	PageSize   string        `envconfig:"PAGE_SIZE"`
	Workers    int           `envconfig:"WORKERS"`
	OutputDir  string        `envconfig:"OUTPUT_DIR"`
}

// knownEnvVars lists the variables envConfig reads.
var knownEnvVars = map[string]bool{
	"MD2INVOICE_CONFIG":     true,
	"MD2INVOICE_STYLE":      true,
	"MD2INVOICE_CURRENCY":   true,
	"MD2INVOICE_TIMEOUT":    true,
	"MD2INVOICE_PAGE_SIZE":  true,
	"MD2INVOICE_WORKERS":    true,
	"MD2INVOICE_OUTPUT_DIR": true,
}

// loadEnvConfig reads MD2INVOICE_* variables from the process environment.
func loadEnvConfig() (*envConfig, error) {
	var cfg envConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnv, err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("%w: %s_TIMEOUT must be positive, got %s", ErrInvalidEnv, envPrefix, cfg.Timeout)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: %s_WORKERS must be >= 0, got %d", ErrInvalidEnv, envPrefix, cfg.Workers)
	}
	return &cfg, nil
}

// warnUnknownEnvVars logs MD2INVOICE_* variables that nothing reads, usually typos.
func warnUnknownEnvVars(logger *slog.Logger, environ []string) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix+"_") && !knownEnvVars[name] {
			logger.Warn("unknown environment variable", "name", name)
		}
	}
}
