package md2invoice

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/alnah/go-md2invoice/internal/money"
)

// Reconcile computes the invoice totals and checks them against any totals the
// author declared. It returns a new Invoice with Totals set and leaves inv untouched.
//
// A declared expenses total is an assertion about the itemized expenses. When the
// document has no itemized expenses it is the expenses figure itself.
// Declared values are never used in place of computed sums otherwise.
func Reconcile(inv *Invoice) (*Invoice, error) {
	totals := computeTotals(inv)

	if inv.DeclaredExpensesTotal.Valid && len(inv.Expenses) > 0 {
		written := money.Round2(inv.DeclaredExpensesTotal.Decimal)
		if money.Differs(written, totals.Expenses) {
			return nil, &TotalMismatchError{
				Kind:       ErrExpensesMismatch,
				Written:    inv.DeclaredExpensesTotal.Decimal,
				Calculated: totals.Expenses,
			}
		}
	}

	if inv.DeclaredGrandTotal.Valid {
		written := money.Round2(inv.DeclaredGrandTotal.Decimal)
		if money.Differs(written, totals.Grand) {
			return nil, &TotalMismatchError{
				Kind:       ErrGrandTotalMismatch,
				Written:    inv.DeclaredGrandTotal.Decimal,
				Calculated: totals.Grand,
			}
		}
	}

	out := *inv
	out.LineItems = slices.Clone(inv.LineItems)
	out.Expenses = slices.Clone(inv.Expenses)
	out.Totals = &totals
	return &out, nil
}

// computeTotals sums the invoice without checking declared totals.
func computeTotals(inv *Invoice) Totals {
	lineItems := make([]decimal.Decimal, len(inv.LineItems))
	for i, item := range inv.LineItems {
		lineItems[i] = item.Amount
	}
	expenses := make([]decimal.Decimal, len(inv.Expenses))
	for i, exp := range inv.Expenses {
		expenses[i] = exp.Amount
	}

	totals := Totals{
		LineItems: money.Round2(money.Sum(lineItems)),
		Expenses:  money.Round2(money.Sum(expenses)),
	}
	if inv.DeclaredExpensesTotal.Valid && len(inv.Expenses) == 0 {
		totals.Expenses = money.Round2(inv.DeclaredExpensesTotal.Decimal)
	}
	totals.Grand = money.Round2(totals.LineItems.Add(totals.Expenses))
	return totals
}
