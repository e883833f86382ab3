// Package md2invoice turns invoices written in Markdown into checked PDF documents.
//
// # Quick Start
//
// Parse and reconcile without rendering:
//
//	inv, err := md2invoice.Parse(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inv, err = md2invoice.Reconcile(inv)
//	if err != nil {
//	    log.Fatal(err) // e.g. a declared total that does not add up
//	}
//	fmt.Println(inv.Totals.Grand.StringFixed(2))
//
// Or run the whole pipeline:
//
//	conv, err := md2invoice.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2invoice.Input{Markdown: source})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(md2invoice.OutputName(result.Invoice, "pdf"), result.PDF, 0644)
//
// # Document Format
//
// Two dialects are accepted, line by line, in the same document.
//
// Flat labels:
//
//	Invoice ID: INV-2025-001
//	Recipient Name: Test Company
//	Invoicer Email: me@example.com
//	Line Item: Backend development, 2025-1-6, 10, 1000.00
//	Expense: 2025-1-6, Uber, Transport to client, 37.92
//	Total: 1037.92
//
// Sections, under "## Payer", "## Payee", "## Line Items", "## Expenses",
// "## Total" and "## Notes" headings. Parties are "- Key: value" lists; line items
// and expenses are four-column pipe tables whose first row is a header.
//
// Rows missing any of their four fields are dropped silently. Declared totals are
// never trusted: Reconcile recomputes them and fails when they differ by a cent or more.
//
// # Conversion Pipeline
//
//  1. Parse into an Invoice
//  2. Reconcile totals (round half away from zero to 2 decimals)
//  3. Render the invoice as Markdown
//  4. Markdown to HTML via goldmark, CSS injection
//  5. PDF rendering via headless Chrome (go-rod)
//
// # Configuration
//
//	conv, err := md2invoice.NewConverter(
//	    md2invoice.WithTimeout(time.Minute),
//	    md2invoice.WithStyle("minimal"),
//	    md2invoice.WithCurrency("€"),
//	    md2invoice.WithLogger(slog.Default()),
//	)
//
// Page size, margins and footer are set per conversion through Input.
//
// # Parallel Processing
//
//	pool := md2invoice.NewConverterPool(md2invoice.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. go-rod downloads a managed Chromium on
// first run. Set ROD_BROWSER_BIN to use an installed browser; the sandbox is
// disabled when it is set or when CI=true.
package md2invoice
