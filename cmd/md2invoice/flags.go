package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// footerFlags holds footer flags.
type footerFlags struct {
	enabled  bool
	text     string
	position string
}

// outputFlags holds output mode flags.
type outputFlags struct {
	html     bool // write HTML alongside the PDF
	htmlOnly bool // write HTML only, skip PDF
}

// cliFlags holds every md2invoice flag.
type cliFlags struct {
	config    string
	style     string
	assetPath string
	currency  string
	timeout   string
	workers   int
	page      pageFlags
	footer    footerFlags
	output    outputFlags
	quiet     bool
	verbose   bool
	version   bool
	help      bool
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addFooterFlags adds footer flags to a FlagSet.
func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.BoolVar(&f.enabled, "footer", false, "add a footer with page numbers")
	fs.StringVar(&f.text, "footer-text", "", "footer text (implies --footer)")
	fs.StringVar(&f.position, "footer-position", "", "footer position: left, center, right")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
}

// parseFlags parses command-line arguments (without the program name) and
// returns the flags and the positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2invoice", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory searched for styles")
	fs.StringVar(&f.currency, "currency", "", "currency symbol (default \"$\")")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addOutputFlags(fs, &f.output)

	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
