package md2invoice

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Party is a billed or billing party. Email is only rendered for the payee.
type Party struct {
	Name      string
	Address   string
	Telephone string
	Email     string
}

// LineItem is a billable unit of work.
type LineItem struct {
	Description string
	Date        string
	Hours       decimal.Decimal
	Amount      decimal.Decimal
}

// Expense is a reimbursable cost.
type Expense struct {
	Date        string
	Name        string
	Description string
	Amount      decimal.Decimal
}

// Totals holds the computed sums of an invoice, each rounded to 2 decimals.
type Totals struct {
	LineItems decimal.Decimal
	Expenses  decimal.Decimal
	Grand     decimal.Decimal
}

// Invoice is the structured record parsed from an invoice document.
// Totals is nil until the invoice has been through Reconcile.
type Invoice struct {
	InvoiceID string
	IssueDate string // YYYY-M-D
	Payer     Party
	Payee     Party
	LineItems []LineItem
	Expenses  []Expense

	// Totals written by the author, checked rather than trusted.
	DeclaredExpensesTotal decimal.NullDecimal
	DeclaredGrandTotal    decimal.NullDecimal

	// Notes is free-form Markdown from a notes section, kept verbatim.
	Notes string

	Totals *Totals
}

// HasBillableContent reports whether the invoice has at least one line item or expense.
func (inv *Invoice) HasBillableContent() bool {
	return len(inv.LineItems) > 0 || len(inv.Expenses) > 0
}

// unsafeNameChars matches runs of characters not allowed in derived file names.
var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// OutputName derives a file name such as "invoice-INV-2025-001-2025-1-9.pdf".
// The ID is left out when empty; ext is given without the dot.
func OutputName(inv *Invoice, ext string) string {
	parts := []string{"invoice"}
	for _, p := range []string{inv.InvoiceID, inv.IssueDate} {
		clean := strings.Trim(unsafeNameChars.ReplaceAllString(strings.TrimSpace(p), "_"), "._-")
		if clean != "" {
			parts = append(parts, clean)
		}
	}
	return strings.Join(parts, "-") + "." + ext
}
