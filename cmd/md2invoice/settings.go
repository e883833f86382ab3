package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	md2invoice "github.com/alnah/go-md2invoice"
	"github.com/alnah/go-md2invoice/internal/config"
)

// Sentinel errors for flag validation.
var (
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// settings is the merged result of flags, environment, and config file.
type settings struct {
	style     string
	assetPath string
	currency  string
	timeout   time.Duration
	workers   int
	page      *md2invoice.PageSettings
	footer    *md2invoice.Footer
	outputDir string
	html      bool
	htmlOnly  bool
}

// configPath returns the config file to load: flag, then environment.
func configPath(f *cliFlags, env *envConfig) string {
	if f.config != "" {
		return f.config
	}
	return env.ConfigPath
}

// loadConfig loads the config file named by flags or environment, if any.
func loadConfig(f *cliFlags, env *envConfig) (*config.Config, error) {
	path := configPath(f, env)
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveSettings merges sources. Precedence: flags > environment > config > defaults.
func resolveSettings(f *cliFlags, env *envConfig, cfg *config.Config) (*settings, error) {
	s := &settings{
		style:     firstNonEmpty(f.style, env.Style, cfg.Style),
		assetPath: firstNonEmpty(f.assetPath, cfg.AssetPath),
		currency:  firstNonEmpty(f.currency, env.Currency, cfg.Currency),
		outputDir: firstNonEmpty(env.OutputDir, cfg.Output.DefaultDir),
		html:      f.output.html || cfg.Output.HTML,
		htmlOnly:  f.output.htmlOnly,
	}

	timeout, err := resolveTimeout(f.timeout, env.Timeout, cfg.TimeoutDuration())
	if err != nil {
		return nil, err
	}
	s.timeout = timeout

	workers := f.workers
	if workers == 0 {
		workers = env.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return nil, err
	}
	s.workers = workers

	s.page = resolvePage(f, env, cfg)
	if err := s.page.Validate(); err != nil {
		return nil, err
	}

	s.footer = resolveFooter(f, cfg)
	if err := s.footer.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// resolveTimeout parses the flag value, falling back to environment then config.
// Zero means the converter default.
func resolveTimeout(flagValue string, envValue, cfgValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return cfgValue, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2invoice.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2invoice.MaxPoolSize)
	}
	return nil
}

// resolvePage overlays config, environment and flags on the default page settings.
func resolvePage(f *cliFlags, env *envConfig, cfg *config.Config) *md2invoice.PageSettings {
	page := md2invoice.DefaultPageSettings()
	if size := firstNonEmpty(f.page.size, env.PageSize, cfg.Page.Size); size != "" {
		page.Size = strings.ToLower(size)
	}
	if o := firstNonEmpty(f.page.orientation, cfg.Page.Orientation); o != "" {
		page.Orientation = strings.ToLower(o)
	}
	switch {
	case f.page.margin != 0:
		page.Margin = f.page.margin
	case cfg.Page.Margin != 0:
		page.Margin = cfg.Page.Margin
	}
	return page
}

// resolveFooter returns nil unless a footer was requested by flag or config.
func resolveFooter(f *cliFlags, cfg *config.Config) *md2invoice.Footer {
	enabled := f.footer.enabled || f.footer.text != "" || cfg.Footer.Enabled
	if !enabled {
		return nil
	}
	return &md2invoice.Footer{
		Position:       strings.ToLower(firstNonEmpty(f.footer.position, cfg.Footer.Position)),
		ShowPageNumber: f.footer.enabled || cfg.Footer.ShowPageNumber,
		Text:           firstNonEmpty(f.footer.text, cfg.Footer.Text),
	}
}

// converterOptions builds the options shared by every converter in the pool.
func (s *settings) converterOptions(now func() time.Time, logger *slog.Logger) []md2invoice.Option {
	opts := []md2invoice.Option{
		md2invoice.WithLogger(logger),
	}
	if now != nil {
		opts = append(opts, md2invoice.WithClock(now))
	}
	if s.style != "" {
		opts = append(opts, md2invoice.WithStyle(s.style))
	}
	if s.assetPath != "" {
		opts = append(opts, md2invoice.WithAssetPath(s.assetPath))
	}
	if s.currency != "" {
		opts = append(opts, md2invoice.WithCurrency(s.currency))
	}
	if s.timeout > 0 {
		opts = append(opts, md2invoice.WithTimeout(s.timeout))
	}
	return opts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
