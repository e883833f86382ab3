package md2invoice

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alnah/go-md2invoice/internal/assets"
	"github.com/alnah/go-md2invoice/internal/fileutil"
	"github.com/alnah/go-md2invoice/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
	_ assets.StyleLoader     = (*assets.AssetResolver)(nil)
)

// Converter runs an invoice document through parsing, reconciliation, rendering
// and PDF generation. It owns one browser and is not safe for concurrent use;
// use ConverterPool for parallel work.
type Converter struct {
	cfg           converterConfig
	logger        *slog.Logger
	parser        *Parser
	styleLoader   assets.StyleLoader
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter. The browser is started lazily on the first PDF.
// Returns an error if the asset path or the style cannot be resolved.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:  defaultTimeout,
			currency: DefaultCurrency,
		},
		logger:        slog.New(slog.DiscardHandler),
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cssInjector:   &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.parser = NewParser()
	if c.cfg.now != nil {
		c.parser.Now = c.cfg.now
	}

	if c.styleLoader == nil {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("resolving asset path: %w", err)
		}
		if resolver.HasCustomLoader() {
			c.logger.Debug("using custom asset path", "path", c.cfg.assetPath)
		}
		c.styleLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert parses and reconciles input.Markdown, then renders it to HTML and PDF.
// Invoice content errors (ErrEmptyDocument, ErrNoBillableContent, *TotalMismatchError)
// are returned unwrapped. Internal panics are recovered into errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	parsed, err := c.parser.Parse(input.Markdown)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("parsed invoice",
		"invoice_id", parsed.InvoiceID,
		"line_items", len(parsed.LineItems),
		"expenses", len(parsed.Expenses))

	inv, err := Reconcile(parsed)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("reconciled totals",
		"invoice_id", inv.InvoiceID,
		"line_items_total", inv.Totals.LineItems.StringFixed(2),
		"expenses_total", inv.Totals.Expenses.StringFixed(2),
		"grand_total", inv.Totals.Grand.StringFixed(2))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	markdown := RenderMarkdown(inv, c.cfg.currency)

	htmlContent, err := c.htmlConverter.ToHTML(ctx, Title(inv), markdown)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Converter style first, caller CSS last so it can override.
	cssContent := c.cfg.resolvedStyle
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ConvertResult{
		Invoice:  inv,
		Markdown: markdown,
		HTML:     []byte(htmlContent),
	}

	if input.HTMLOnly {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{
		Footer: input.Footer,
		Page:   input.Page,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	c.logger.Debug("generated PDF", "invoice_id", inv.InvoiceID, "bytes", len(pdfBytes))

	res.PDF = pdfBytes
	return res, nil
}

// Close releases the browser.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle turns the style option (name, path or CSS content) into CSS.
// No style option means the embedded default style.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.styleLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrStyleNotFound, input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks the render settings. Document content is checked by the parser.
func (c *Converter) validateInput(input Input) error {
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return input.Footer.Validate()
}
