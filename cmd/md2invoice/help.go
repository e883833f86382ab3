package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2invoice [flags] <input> [output]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown invoices to PDF. Totals are computed from the line items")
	fmt.Fprintln(w, "and expenses, and any totals written in the document are checked.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input     Invoice markdown file, or a directory of them")
	fmt.Fprintln(w, "  output    Output file or directory (default: next to the input)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file path, or CSS (default: invoice)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory searched for styles first")
	fmt.Fprintln(w, "      --currency <s>        Currency symbol (default: $)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (default: 30s)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers for directories (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Footer:")
	fmt.Fprintln(w, "      --footer              Add a footer with page numbers")
	fmt.Fprintln(w, "      --footer-text <s>     Footer text")
	fmt.Fprintln(w, "      --footer-position <s> Position: left, center, right")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --html                Also write the HTML document")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip PDF")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w, "      --version             Print version")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2INVOICE_CONFIG, MD2INVOICE_STYLE, MD2INVOICE_CURRENCY, MD2INVOICE_TIMEOUT,")
	fmt.Fprintln(w, "  MD2INVOICE_PAGE_SIZE, MD2INVOICE_WORKERS, MD2INVOICE_OUTPUT_DIR")
	fmt.Fprintln(w, "  A .env file in the working directory is loaded first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 error, 2 usage or config, 3 file I/O, 4 browser, 5 invoice content")
}
