package main

import (
	"errors"
	"os"

	md2invoice "github.com/alnah/go-md2invoice"
	"github.com/alnah/go-md2invoice/internal/assets"
	"github.com/alnah/go-md2invoice/internal/config"
)

// Exit codes for the md2invoice CLI.
// 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or environment
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitInvoice = 5 // Invoice content rejected
)

// exitCodeFor returns the exit code for an error. Wrapped errors are matched
// with errors.Is.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Invoice content (exit 5)
	if errors.Is(err, md2invoice.ErrEmptyDocument) ||
		errors.Is(err, md2invoice.ErrNoBillableContent) ||
		errors.Is(err, md2invoice.ErrExpensesMismatch) ||
		errors.Is(err, md2invoice.ErrGrandTotalMismatch) {
		return ExitInvoice
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2invoice.ErrBrowserConnect) ||
		errors.Is(err, md2invoice.ErrPageCreate) ||
		errors.Is(err, md2invoice.ErrPageLoad) ||
		errors.Is(err, md2invoice.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrOutputNotDir) ||
		errors.Is(err, md2invoice.ErrInvalidPageSize) ||
		errors.Is(err, md2invoice.ErrInvalidOrientation) ||
		errors.Is(err, md2invoice.ErrInvalidMargin) ||
		errors.Is(err, md2invoice.ErrInvalidFooterPosition) ||
		errors.Is(err, md2invoice.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	return ExitGeneral
}
