// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2invoice/internal/fileutil"
)

// IsInContainer detects a Docker container by the /.dockerenv file.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser launch and connection errors.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	// The launcher disables the sandbox only for CI=true or a custom binary.
	if (inCI || IsInContainer()) && os.Getenv("CI") != "true" && os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set CI=true to run Chrome without its sandbox")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "use --html-only to skip PDF generation")

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the PDF timeout.
func ForTimeout() string {
	return format("raise the limit with --timeout or MD2INVOICE_TIMEOUT")
}

// ForConfigNotFound suggests --config, or creating the first user config path tried.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-md2invoice") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForStyleNotFound lists the built-in styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check the output directory is writable")
}

// ForTotalMismatch explains how to resolve a written total that disagrees
// with the computed one.
func ForTotalMismatch() string {
	return format("correct the written total, or remove it to use the computed one")
}

// ForNoBillableContent points at the accepted row formats.
func ForNoBillableContent() string {
	return format(`add "Line Item: description, date, hours, amount" lines or a "## Line Items" table`)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
