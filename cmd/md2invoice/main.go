// Command md2invoice converts markdown invoices to PDF.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"

	md2invoice "github.com/alnah/go-md2invoice"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// A missing .env is normal; real environment variables win over it.
	_ = godotenv.Load()

	env := DefaultEnv()
	env.Interactive = term.IsTerminal(os.Stderr.Fd())
	os.Exit(runMain(os.Args[1:], env))
}

// runMain parses args, runs the conversion and returns the process exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "md2invoice %s\n", Version)
		return ExitSuccess
	}

	logger := newLogger(env.Stderr, flags.quiet, flags.verbose)

	// maxprocs.Set only fails on an invalid GOMAXPROCS, in which case the
	// runtime default applies.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := run(ctx, positional, flags, env, logger); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// newLogger logs at Warn by default, Debug when verbose, Error when quiet.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run resolves settings and converts every discovered invoice.
func run(ctx context.Context, positional []string, flags *cliFlags, env *Environment, logger *slog.Logger) error {
	if len(positional) == 0 {
		return ErrNoInput
	}
	if len(positional) > 2 {
		return fmt.Errorf("%w: got %d, want <input> [output]", ErrTooManyArgs, len(positional))
	}

	envCfg, err := loadEnvConfig()
	if err != nil {
		return err
	}
	warnUnknownEnvVars(logger, os.Environ())

	cfg, err := loadConfig(flags, envCfg)
	if err != nil {
		return err
	}

	s, err := resolveSettings(flags, envCfg, cfg)
	if err != nil {
		return err
	}

	var output string
	if len(positional) == 2 {
		output = positional[1]
	}
	files, err := discoverFiles(positional[0], output, s.outputDir)
	if err != nil {
		return err
	}

	poolSize := min(md2invoice.ResolvePoolSize(s.workers), len(files))
	logger.Debug("starting conversion", "files", len(files), "workers", poolSize)

	pool := env.NewPool(poolSize, s.converterOptions(env.Now, logger)...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converter pool", "error", err)
		}
	}()

	currency := s.currency
	if currency == "" {
		currency = md2invoice.DefaultCurrency
	}
	params := &conversionParams{
		page:     s.page,
		footer:   s.footer,
		html:     s.html,
		htmlOnly: s.htmlOnly,
		currency: currency,
	}

	start := time.Now()
	var results []ConversionResult
	convert := func() { results = convertBatch(ctx, pool, files, params) }
	if len(files) == 1 && env.Interactive && !flags.quiet && !flags.verbose {
		withSpinner(env.Stderr, "Generating invoice...", convert)
	} else {
		convert()
	}
	logger.Debug("conversion finished", "elapsed", time.Since(start).Round(time.Millisecond))

	failed := printResults(results, flags.quiet, flags.verbose, currency, env)
	switch {
	case failed == 0:
		return nil
	case len(results) == 1:
		return results[0].Err
	default:
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(results))
	}
}
