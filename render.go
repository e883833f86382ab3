package md2invoice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alnah/go-md2invoice/internal/money"
)

// DefaultCurrency is the symbol amounts are rendered with when none is configured.
const DefaultCurrency = "$"

// emptyCell stands in for missing values in the rendered document.
const emptyCell = "—"

var (
	markdownEscaper = strings.NewReplacer(
		`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
		"<", `\<`, ">", `\>`, "|", `\|`, "~", `\~`, "#", `\#`, "&", `\&`,
	)
	// Line starts goldmark would read as a list item.
	listMarkerPattern = regexp.MustCompile(`^(\d+)([.)])|^([-+=])`)
)

// RenderMarkdown lays out an invoice as a Markdown document: title, date, the two
// parties, the line item and expense tables, a summary of totals and any notes.
// Totals come from inv.Totals, or are computed without checks when inv has not
// been reconciled.
func RenderMarkdown(inv *Invoice, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	totals := computeTotals(inv)
	if inv.Totals != nil {
		totals = *inv.Totals
	}
	amount := func(d decimal.Decimal) string { return money.Format(d, currency) }

	var b strings.Builder

	if inv.InvoiceID != "" {
		fmt.Fprintf(&b, "# Invoice #%s\n\n", escapeMarkdown(inv.InvoiceID))
	} else {
		b.WriteString("# Invoice\n\n")
	}
	if inv.IssueDate != "" {
		fmt.Fprintf(&b, "Date: %s\n\n", escapeMarkdown(inv.IssueDate))
	}

	fmt.Fprintf(&b, "## To\n\n%s\n\n", partyBlock(inv.Payer.Name, inv.Payer.Address, inv.Payer.Telephone))
	fmt.Fprintf(&b, "## From\n\n%s\n\n",
		partyBlock(inv.Payee.Name, inv.Payee.Address, inv.Payee.Telephone, inv.Payee.Email))

	b.WriteString("## Line Items\n\n")
	b.WriteString("| Description | Date | Hours | Amount |\n|:---|:---|---:|---:|\n")
	for _, item := range inv.LineItems {
		writeRow(&b, escapeMarkdown(item.Description), escapeMarkdown(item.Date),
			item.Hours.String(), amount(item.Amount))
	}
	if len(inv.LineItems) == 0 {
		writeRow(&b, emptyCell, "", "", "")
	}
	b.WriteString("\n")

	b.WriteString("## Expenses\n\n")
	b.WriteString("| Date | Name | Description | Amount |\n|:---|:---|:---|---:|\n")
	for _, exp := range inv.Expenses {
		writeRow(&b, escapeMarkdown(exp.Date), escapeMarkdown(exp.Name),
			escapeMarkdown(exp.Description), amount(exp.Amount))
	}
	if len(inv.Expenses) == 0 {
		writeRow(&b, emptyCell, "", "", "")
	}
	b.WriteString("\n")

	expensesTotal := emptyCell
	if !totals.Expenses.IsZero() {
		expensesTotal = amount(totals.Expenses)
	}
	b.WriteString("## Summary\n\n")
	b.WriteString("| Item | Amount |\n|:---|---:|\n")
	writeRow(&b, "Line Items", amount(totals.LineItems))
	writeRow(&b, "Total Expenses", expensesTotal)
	writeRow(&b, "**Total**", "**"+amount(totals.Grand)+"**")

	if inv.Notes != "" {
		fmt.Fprintf(&b, "\n## Notes\n\n%s\n", inv.Notes)
	}

	return b.String()
}

// Title is the document title for a rendered invoice.
func Title(inv *Invoice) string {
	if inv.InvoiceID == "" {
		return "Invoice"
	}
	return "Invoice " + inv.InvoiceID
}

// partyBlock renders the non-empty fields one per line, relying on hard wraps.
func partyBlock(fields ...string) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			lines = append(lines, escapeLine(f))
		}
	}
	if len(lines) == 0 {
		return emptyCell
	}
	return strings.Join(lines, "\n")
}

func writeRow(b *strings.Builder, cells ...string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

// escapeMarkdown escapes inline Markdown syntax in s.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// escapeLine escapes s for use as a whole line of a paragraph.
func escapeLine(s string) string {
	return listMarkerPattern.ReplaceAllString(escapeMarkdown(s), `$1\$2$3`)
}
