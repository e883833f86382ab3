package md2invoice

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// Footer positions.
const (
	FooterLeft   = "left"
	FooterCenter = "center"
	FooterRight  = "right"
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns letter portrait with the default margin.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks page settings case-insensitively. A nil receiver means defaults.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// Footer configures the native PDF footer.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	Text           string
}

// Validate checks the footer position. A nil receiver means no footer.
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", FooterLeft, FooterCenter, FooterRight:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// Input contains conversion parameters.
type Input struct {
	Markdown string        // invoice document (required)
	CSS      string        // extra CSS appended after the converter style
	Page     *PageSettings // nil means DefaultPageSettings
	Footer   *Footer       // nil means no footer
	HTMLOnly bool          // skip PDF generation
}

// ConvertResult holds every artifact of a conversion.
type ConvertResult struct {
	Invoice  *Invoice // reconciled record
	Markdown string   // rendered invoice Markdown
	HTML     []byte
	PDF      []byte // nil when Input.HTMLOnly
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the configuration applied by options.
type converterConfig struct {
	timeout       time.Duration
	styleInput    string // name, file path or CSS content
	resolvedStyle string
	assetPath     string
	currency      string
	now           func() time.Time
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the page load timeout of the PDF renderer.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2invoice: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the invoice style: an embedded style name ("invoice", "minimal"),
// a path to a CSS file, or CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath adds a directory whose styles/{name}.css files take precedence over
// the embedded styles.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithCurrency sets the symbol amounts are rendered with.
func WithCurrency(symbol string) Option {
	return func(c *Converter) {
		c.cfg.currency = symbol
	}
}

// WithClock sets the clock used for the default issue date.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.cfg.now = now
	}
}

// WithLogger sets the logger for conversion progress. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}
