package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no escape needed", "td { text-align: right; }", "td { text-align: right; }"},
		{"escapes style close", "</style>", `<\/style>`},
		{"multiple occurrences", "</a></b>", `<\/a><\/b>`},
		{"case variation", "</STYLE>", `<\/STYLE>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	const css = "table { width: 100%; }"
	const style = "<style>" + css + "</style>"

	tests := []struct {
		name     string
		html     string
		css      string
		expected string
	}{
		{
			name:     "before closing head",
			html:     "<html><head><title>Invoice</title></head><body></body></html>",
			css:      css,
			expected: "<html><head><title>Invoice</title>" + style + "</head><body></body></html>",
		},
		{
			name:     "uppercase head",
			html:     "<HTML><HEAD></HEAD><BODY></BODY></HTML>",
			css:      css,
			expected: "<HTML><HEAD>" + style + "</HEAD><BODY></BODY></HTML>",
		},
		{
			name:     "after body with attributes",
			html:     `<body class="invoice"><h1>Invoice</h1></body>`,
			css:      css,
			expected: `<body class="invoice">` + style + `<h1>Invoice</h1></body>`,
		},
		{
			name:     "prepended to fragment",
			html:     "<h1>Invoice</h1>",
			css:      css,
			expected: style + "<h1>Invoice</h1>",
		},
		{
			name:     "empty css",
			html:     "<head></head>",
			css:      "",
			expected: "<head></head>",
		},
		{
			name:     "css is sanitized",
			html:     "<head></head>",
			css:      "</style><script>alert(1)</script>",
			expected: `<head><style><\/style><script>alert(1)<\/script></style></head>`,
		},
	}

	injector := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if got != tt.expected {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInjectCSS_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	html := "<head></head>"
	got := (&CSSInjection{}).InjectCSS(ctx, html, "body {}")
	if strings.Contains(got, "<style>") {
		t.Errorf("InjectCSS() with cancelled context injected CSS: %q", got)
	}
}
