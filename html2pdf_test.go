package md2invoice

// Notes:
// - rodConverter is exercised with a mock renderer; no browser is launched.
// - resolvePageDimensions and buildPDFOptions are pure and tested exhaustively.
// - buildFooterTemplate is checked with substring assertions.

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-md2invoice/internal/fileutil"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockRenderer struct {
	Result      []byte
	Err         error
	CalledWith  string
	FileContent string
	CalledOpts  *pdfOptions
}

func (m *mockRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	m.CalledWith = filePath
	m.CalledOpts = opts
	if data, err := os.ReadFile(filePath); err == nil {
		m.FileContent = string(data)
	}
	return m.Result, m.Err
}

// testableRodConverter mirrors rodConverter.ToPDF around a mock renderer.
type testableRodConverter struct {
	mock *mockRenderer
}

func (c *testableRodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.mock.RenderFromFile(ctx, tmpPath, opts)
}

// ---------------------------------------------------------------------------
// TestRodConverter_ToPDF - Temp file handoff
// ---------------------------------------------------------------------------

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	t.Run("renders the written temp file", func(t *testing.T) {
		t.Parallel()

		mock := &mockRenderer{Result: []byte("%PDF-1.7")}
		conv := &testableRodConverter{mock: mock}
		opts := &pdfOptions{Page: DefaultPageSettings()}

		pdf, err := conv.ToPDF(context.Background(), "<html>Invoice</html>", opts)
		if err != nil {
			t.Fatalf("ToPDF() error = %v", err)
		}
		if string(pdf) != "%PDF-1.7" {
			t.Errorf("ToPDF() = %q", pdf)
		}
		if mock.FileContent != "<html>Invoice</html>" {
			t.Errorf("renderer saw %q", mock.FileContent)
		}
		if mock.CalledOpts != opts {
			t.Error("renderer did not receive the options")
		}
		if fileutil.FileExists(mock.CalledWith) {
			t.Error("temp file not cleaned up")
		}
	})

	t.Run("renderer error propagates", func(t *testing.T) {
		t.Parallel()

		mock := &mockRenderer{Err: ErrPDFGeneration}
		_, err := (&testableRodConverter{mock: mock}).ToPDF(context.Background(), "<html></html>", nil)
		if !errors.Is(err, ErrPDFGeneration) {
			t.Errorf("ToPDF() error = %v, want ErrPDFGeneration", err)
		}
	})
}

func TestRodRenderer_RenderFromFile_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Returns before any browser is launched.
	_, err := newRodRenderer(defaultTimeout).RenderFromFile(ctx, "/nonexistent.html", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestBuildFooterTemplate - Footer Template Generation
// ---------------------------------------------------------------------------

func TestBuildFooterTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		footer   *Footer
		wantPart string
		wantNot  string
	}{
		{"nil footer", nil, "<span></span>", "<div"},
		{"empty footer", &Footer{}, "<span></span>", "<div"},
		{"page number", &Footer{ShowPageNumber: true}, `<span class="pageNumber"></span>/<span class="totalPages"></span>`, ""},
		{"text", &Footer{Text: "Acme Ltd, VAT 123"}, "Acme Ltd, VAT 123", ""},
		{"text and page number", &Footer{Text: "Acme", ShowPageNumber: true}, `Acme - <span class="pageNumber">`, ""},
		{"left", &Footer{Text: "x", Position: "left"}, "text-align: left", ""},
		{"center uppercase", &Footer{Text: "x", Position: "CENTER"}, "text-align: center", ""},
		{"default right", &Footer{Text: "x"}, "text-align: right", ""},
		{"escapes html", &Footer{Text: "<script>alert(1)</script>"}, "&lt;script&gt;", "<script>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := buildFooterTemplate(tt.footer)
			if tt.wantPart != "" && !strings.Contains(result, tt.wantPart) {
				t.Errorf("expected %q in result, got: %s", tt.wantPart, result)
			}
			if tt.wantNot != "" && strings.Contains(result, tt.wantNot) {
				t.Errorf("expected %q NOT in result, got: %s", tt.wantNot, result)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolvePageDimensions - Page Dimension Calculation
// ---------------------------------------------------------------------------

func TestResolvePageDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		page             *PageSettings
		hasFooter        bool
		wantW, wantH     float64
		wantMargin       float64
		wantBottomMargin float64
	}{
		{"nil uses letter portrait", nil, false, 8.5, 11, DefaultMargin, DefaultMargin},
		{"nil with footer", nil, true, 8.5, 11, DefaultMargin, DefaultMargin + footerMarginExtra},
		{"letter landscape", &PageSettings{Size: "letter", Orientation: "landscape", Margin: 0.5}, false, 11, 8.5, 0.5, 0.5},
		{"a4 portrait", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.5}, false, 8.27, 11.69, 0.5, 0.5},
		{"a4 landscape", &PageSettings{Size: "a4", Orientation: "landscape", Margin: 0.5}, false, 11.69, 8.27, 0.5, 0.5},
		{"legal portrait", &PageSettings{Size: "legal", Orientation: "portrait", Margin: 0.5}, false, 8.5, 14, 0.5, 0.5},
		{"custom margin with footer", &PageSettings{Size: "letter", Orientation: "portrait", Margin: 1}, true, 8.5, 11, 1, 1 + footerMarginExtra},
		{"case insensitive", &PageSettings{Size: "A4", Orientation: "LANDSCAPE", Margin: 0.5}, false, 11.69, 8.27, 0.5, 0.5},
		{"unknown size falls back to letter", &PageSettings{Size: "tabloid", Margin: 0.5}, false, 8.5, 11, 0.5, 0.5},
		{"zero margin uses default", &PageSettings{Size: "letter"}, false, 8.5, 11, DefaultMargin, DefaultMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h, margin, bottom := resolvePageDimensions(tt.page, tt.hasFooter)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("dimensions = %vx%v, want %vx%v", w, h, tt.wantW, tt.wantH)
			}
			if margin != tt.wantMargin {
				t.Errorf("margin = %v, want %v", margin, tt.wantMargin)
			}
			if bottom != tt.wantBottomMargin {
				t.Errorf("bottomMargin = %v, want %v", bottom, tt.wantBottomMargin)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildPDFOptions - PDF Options Construction
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	renderer := &rodRenderer{timeout: defaultTimeout}

	t.Run("nil opts", func(t *testing.T) {
		t.Parallel()

		pdfOpts := renderer.buildPDFOptions(nil)
		if *pdfOpts.MarginBottom != DefaultMargin {
			t.Errorf("MarginBottom = %v, want %v", *pdfOpts.MarginBottom, DefaultMargin)
		}
		if pdfOpts.DisplayHeaderFooter {
			t.Error("expected no header/footer by default")
		}
		if !pdfOpts.PrintBackground {
			t.Error("expected PrintBackground")
		}
	})

	t.Run("footer and page settings", func(t *testing.T) {
		t.Parallel()

		pdfOpts := renderer.buildPDFOptions(&pdfOptions{
			Page:   &PageSettings{Size: "a4", Orientation: "landscape", Margin: 0.75},
			Footer: &Footer{ShowPageNumber: true},
		})

		if *pdfOpts.PaperWidth != 11.69 || *pdfOpts.PaperHeight != 8.27 {
			t.Errorf("paper = %vx%v, want 11.69x8.27", *pdfOpts.PaperWidth, *pdfOpts.PaperHeight)
		}
		if *pdfOpts.MarginTop != 0.75 || *pdfOpts.MarginLeft != 0.75 || *pdfOpts.MarginRight != 0.75 {
			t.Errorf("margins = %v/%v/%v, want 0.75", *pdfOpts.MarginTop, *pdfOpts.MarginLeft, *pdfOpts.MarginRight)
		}
		if *pdfOpts.MarginBottom != 0.75+footerMarginExtra {
			t.Errorf("MarginBottom = %v, want %v", *pdfOpts.MarginBottom, 0.75+footerMarginExtra)
		}
		if !pdfOpts.DisplayHeaderFooter {
			t.Error("expected header/footer enabled")
		}
		if !strings.Contains(pdfOpts.FooterTemplate, "pageNumber") {
			t.Errorf("FooterTemplate = %q", pdfOpts.FooterTemplate)
		}
	})
}

// ---------------------------------------------------------------------------
// Close and dimension table
// ---------------------------------------------------------------------------

func TestRodRenderer_Close_Idempotent(t *testing.T) {
	t.Parallel()

	renderer := newRodRenderer(defaultTimeout)
	for i := 0; i < 3; i++ {
		if err := renderer.Close(); err != nil {
			t.Errorf("Close() call %d error = %v", i+1, err)
		}
	}
}

func TestRodConverter_Close_NilRenderer(t *testing.T) {
	t.Parallel()

	if err := (&rodConverter{}).Close(); err != nil {
		t.Errorf("Close() with nil renderer error = %v", err)
	}
}

func TestPageDimensions_Portrait(t *testing.T) {
	t.Parallel()

	for _, size := range []string{PageSizeLetter, PageSizeA4, PageSizeLegal} {
		dims, ok := pageDimensions[size]
		if !ok {
			t.Errorf("missing page dimensions for %q", size)
			continue
		}
		if dims.width <= 0 || dims.height <= dims.width {
			t.Errorf("%s: %vx%v is not a portrait size", size, dims.width, dims.height)
		}
	}
}
