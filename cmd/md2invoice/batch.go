package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	md2invoice "github.com/alnah/go-md2invoice"
	"github.com/alnah/go-md2invoice/internal/encoding"
	"github.com/alnah/go-md2invoice/internal/fileutil"
	"github.com/alnah/go-md2invoice/internal/money"
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown = errors.New("failed to read invoice file")
	ErrWriteOutput  = errors.New("failed to write output file")
	ErrBatchFailed  = errors.New("conversion(s) failed")
)

// conversionParams groups parameters shared by every file of a run.
type conversionParams struct {
	page     *md2invoice.PageSettings
	footer   *md2invoice.Footer
	html     bool
	htmlOnly bool
	currency string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Invoice    *md2invoice.Invoice
	Err        error
	Duration   time.Duration
}

// outputNames hands out unique output paths within one run.
type outputNames struct {
	mu    sync.Mutex
	taken map[string]bool
}

func newOutputNames() *outputNames {
	return &outputNames{taken: make(map[string]bool)}
}

// claim returns dir/name, or a name suffixed with the source file name when
// another invoice of this run already took it.
func (n *outputNames) claim(dir, name, source string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	path := filepath.Join(dir, name)
	if n.taken[path] {
		ext := filepath.Ext(name)
		src := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		path = filepath.Join(dir, strings.TrimSuffix(name, ext)+"-"+src+ext)
	}
	n.taken[path] = true
	return path
}

// convertBatch processes files concurrently using the converter pool.
// Results are in the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	names := newOutputNames()
	results := make([]ConversionResult, len(files))
	jobs := make(chan int, len(files))

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params, names)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile reads, converts and writes one invoice.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams, names *outputNames) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	data, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}
	text, err := encoding.ToUTF8(data)
	if err != nil {
		return fail(fmt.Errorf("%w: %s: %v", ErrReadMarkdown, f.InputPath, err))
	}

	res, err := conv.Convert(ctx, md2invoice.Input{
		Markdown: text,
		Page:     params.page,
		Footer:   params.footer,
		HTMLOnly: params.htmlOnly,
	})
	if err != nil {
		return fail(err)
	}
	result.Invoice = res.Invoice

	pdfPath := f.OutputPath
	if pdfPath == "" {
		pdfPath = names.claim(f.OutputDir, md2invoice.OutputName(res.Invoice, "pdf"), f.InputPath)
	}

	if params.html || params.htmlOnly {
		htmlPath := replaceExt(pdfPath, ".html")
		if err := fileutil.WriteOutput(htmlPath, res.HTML); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		if params.htmlOnly {
			result.OutputPath = htmlPath
			result.Duration = time.Since(start)
			return result
		}
	}

	if err := fileutil.WriteOutput(pdfPath, res.PDF); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	result.OutputPath = pdfPath
	result.Duration = time.Since(start)
	return result
}

// replaceExt swaps the extension of path for ext (with dot).
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults writes per-file outcomes and, for batches, a summary line.
// A single failed file is left for the caller to report. Returns the number of failures.
func printResults(results []ConversionResult, quiet, verbose bool, currency string, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			continue
		}
		if quiet {
			continue
		}
		if verbose && r.Invoice != nil && r.Invoice.Totals != nil {
			fmt.Fprintf(env.Stdout, "%s -> %s (total %s, %v)\n", r.InputPath, r.OutputPath,
				money.Format(r.Invoice.Totals.Grand, currency), r.Duration.Round(time.Millisecond))
			continue
		}
		fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
