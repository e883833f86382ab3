package md2invoice

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for invoice parsing and reconciliation.
var (
	ErrEmptyDocument      = errors.New("invoice document is empty")
	ErrNoBillableContent  = errors.New("no line items or expenses found in the invoice")
	ErrExpensesMismatch   = errors.New("expenses total does not match calculated sum")
	ErrGrandTotalMismatch = errors.New("grand total does not match calculated sum")
)

// Sentinel errors for rendering.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrStyleNotFound  = errors.New("style not found")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")
)

// TotalMismatchError reports a declared total that disagrees with the computed one.
// Kind is ErrExpensesMismatch or ErrGrandTotalMismatch.
type TotalMismatchError struct {
	Kind       error
	Written    decimal.Decimal
	Calculated decimal.Decimal
}

func (e *TotalMismatchError) Error() string {
	label := "total"
	switch e.Kind {
	case ErrExpensesMismatch:
		label = "expenses total"
	case ErrGrandTotalMismatch:
		label = "grand total"
	}
	return fmt.Sprintf("%s (written: %s) does not match calculated sum (%s)",
		label, e.Written.StringFixed(2), e.Calculated.StringFixed(2))
}

func (e *TotalMismatchError) Unwrap() error {
	return e.Kind
}
