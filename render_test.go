package md2invoice

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-md2invoice/internal/pipeline"
)

func TestRenderMarkdown_Layout(t *testing.T) {
	t.Parallel()

	inv := sampleInvoice()
	inv.Payer = Party{Name: "Test Company", Address: "123 Main St, Anytown, USA", Telephone: "(123) 456-7890"}
	inv.Payee = Party{Name: "My Company", Email: "mycompany@gmail.com"}

	reconciled, err := Reconcile(inv)
	require.NoError(t, err)

	want := `# Invoice #INV-2025-123

Date: 2025-1-15

## To

Test Company
123 Main St, Anytown, USA
(123) 456-7890

## From

My Company
mycompany@gmail.com

## Line Items

| Description | Date | Hours | Amount |
|:---|:---|---:|---:|
| Backend development | 2025-1-6 | 10 | $1000.00 |

## Expenses

| Date | Name | Description | Amount |
|:---|:---|:---|---:|
| 2025-1-6 | Uber | Transport to client | $37.92 |
| 2025-1-7 | Uber | Transport from client | $50.23 |

## Summary

| Item | Amount |
|:---|---:|
| Line Items | $1000.00 |
| Total Expenses | $88.15 |
| **Total** | **$1088.15** |
`
	assert.Equal(t, want, RenderMarkdown(reconciled, ""))
}

func TestRenderMarkdown_NoExpenses(t *testing.T) {
	t.Parallel()

	inv := &Invoice{
		InvoiceID: "INV-1",
		LineItems: []LineItem{{Description: "Design", Date: "2025-1-2", Hours: dec("2"), Amount: dec("200")}},
	}

	got := RenderMarkdown(inv, "€")
	assert.Contains(t, got, "| — |  |  |  |\n")
	assert.Contains(t, got, "| Total Expenses | — |\n")
	assert.Contains(t, got, "| **Total** | **€200.00** |\n")
	assert.Contains(t, got, "## To\n\n—\n")
}

func TestRenderMarkdown_UsesReconciledTotals(t *testing.T) {
	t.Parallel()

	inv := &Invoice{
		LineItems:             []LineItem{{Description: "a", Date: "d", Amount: dec("1000.00")}},
		DeclaredExpensesTotal: nullDecimal("88.15"),
	}
	reconciled, err := Reconcile(inv)
	require.NoError(t, err)

	got := RenderMarkdown(reconciled, "$")
	assert.Contains(t, got, "| Total Expenses | $88.15 |")
	assert.Contains(t, got, "**$1088.15**")
}

func TestRenderMarkdown_NegativeAmount(t *testing.T) {
	t.Parallel()

	inv := &Invoice{LineItems: []LineItem{{Description: "Credit", Date: "d", Amount: dec("-5")}}}

	got := RenderMarkdown(inv, "$")
	assert.Contains(t, got, "| Credit | d | 0 | -$5.00 |")
	assert.Contains(t, got, "**-$5.00**")
}

func TestRenderMarkdown_NegativeExpensesTotal(t *testing.T) {
	t.Parallel()

	inv := &Invoice{
		LineItems: []LineItem{{Description: "Design", Date: "d", Amount: dec("200")}},
		Expenses:  []Expense{{Date: "d", Name: "Refund", Description: "Credit note", Amount: dec("-15.50")}},
	}

	got := RenderMarkdown(inv, "$")
	assert.Contains(t, got, "| Total Expenses | -$15.50 |\n")
	assert.Contains(t, got, "| **Total** | **$184.50** |\n")
}

func TestRenderMarkdown_EscapesContent(t *testing.T) {
	t.Parallel()

	inv := &Invoice{
		InvoiceID: "A|B",
		Payer:     Party{Name: "- Not a list", Address: "1. Not a list either"},
		LineItems: []LineItem{{Description: "Fix *all* the <bugs> | more", Date: "d", Amount: dec("1")}},
	}

	got := RenderMarkdown(inv, "$")
	assert.Contains(t, got, `# Invoice #A\|B`)
	assert.Contains(t, got, `\- Not a list`)
	assert.Contains(t, got, `1\. Not a list either`)
	assert.Contains(t, got, `Fix \*all\* the \<bugs\> \| more`)
}

func TestRenderMarkdown_Notes(t *testing.T) {
	t.Parallel()

	inv := &Invoice{
		LineItems: []LineItem{{Description: "a", Date: "d", Amount: dec("1")}},
		Notes:     "Pay within **30 days**.",
	}

	got := RenderMarkdown(inv, "$")
	assert.True(t, strings.HasSuffix(got, "\n## Notes\n\nPay within **30 days**.\n"), got)
}

func TestRenderMarkdown_ThroughGoldmark(t *testing.T) {
	t.Parallel()

	inv, err := fixedParser().Parse(readFixture(t, "sectioned.md"))
	require.NoError(t, err)
	reconciled, err := Reconcile(inv)
	require.NoError(t, err)

	html, err := pipeline.NewGoldmarkConverter().ToHTML(context.Background(), Title(reconciled), RenderMarkdown(reconciled, "$"))
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Invoice INV-2025-123</title>")
	assert.Contains(t, html, "Test Company<br />")
	assert.Contains(t, html, "$1088.15")
	assert.Equal(t, 3, strings.Count(html, "<table>"))
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Invoice INV-9", Title(&Invoice{InvoiceID: "INV-9"}))
	assert.Equal(t, "Invoice", Title(&Invoice{}))
}
