package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel(): they call t.Setenv() and
//   replace the package-level IsInContainer.

import (
	"strings"
	"testing"
)

func stubContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	IsInContainer = func() bool { return in }
	t.Cleanup(func() { IsInContainer = orig })
}

func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "ROD_BROWSER_BIN"} {
		t.Setenv(k, "")
	}
}

func TestForBrowserConnect_InDocker(t *testing.T) {
	stubContainer(t, true)
	clearCIEnv(t)

	hint := ForBrowserConnect()

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint = %q, want hint prefix", hint)
	}
	for _, want := range []string{"CI=true", "ROD_BROWSER_BIN", "--html-only"} {
		if !strings.Contains(hint, want) {
			t.Errorf("hint %q should mention %s", hint, want)
		}
	}
}

func TestForBrowserConnect_CIAlreadyTrue(t *testing.T) {
	stubContainer(t, false)
	clearCIEnv(t)
	t.Setenv("CI", "true")

	hint := ForBrowserConnect()

	if strings.Contains(hint, "CI=true") {
		t.Errorf("hint %q should not suggest CI=true when already set", hint)
	}
	if !strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Errorf("hint %q should mention ROD_BROWSER_BIN", hint)
	}
}

func TestForBrowserConnect_GitHubActions(t *testing.T) {
	stubContainer(t, false)
	clearCIEnv(t)
	t.Setenv("GITHUB_ACTIONS", "true")

	if hint := ForBrowserConnect(); !strings.Contains(hint, "CI=true") {
		t.Errorf("hint %q should suggest CI=true on GitHub Actions", hint)
	}
}

func TestForBrowserConnect_CustomBinary(t *testing.T) {
	stubContainer(t, true)
	clearCIEnv(t)
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	hint := ForBrowserConnect()

	if strings.Contains(hint, "CI=true") || strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Errorf("hint %q should only suggest --html-only", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains []string
	}{
		{"no paths", nil, []string{"--config"}},
		{
			"user config path",
			[]string{"billing.yaml", "/home/u/.config/go-md2invoice/billing.yaml"},
			[]string{"--config", "or create /home/u/.config/go-md2invoice/billing.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			for _, want := range tt.contains {
				if !strings.Contains(hint, want) {
					t.Errorf("hint %q should contain %q", hint, want)
				}
			}
		})
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", got)
	}
	if got := ForStyleNotFound([]string{"invoice", "minimal"}); got != "\n  hint: available: invoice, minimal" {
		t.Errorf("ForStyleNotFound() = %q", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"timeout":     ForTimeout(),
		"output":      ForOutputDirectory(),
		"mismatch":    ForTotalMismatch(),
		"no billable": ForNoBillableContent(),
	}
	for name, hint := range tests {
		if !strings.HasPrefix(hint, "\n  hint: ") || len(hint) <= len("\n  hint: ") {
			t.Errorf("%s hint = %q, want non-empty formatted hint", name, hint)
		}
	}
}

func TestFormatHints(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
}
