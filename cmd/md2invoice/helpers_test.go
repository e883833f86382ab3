package main

// Notes:
// - Test infrastructure shared by the cmd tests: a converter that runs the real
//   parser and reconciler but fakes rendering, and a channel-backed pool.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	md2invoice "github.com/alnah/go-md2invoice"
)

const (
	validInvoice = `Invoice ID: INV-1
Date: 2025-1-9
Recipient Name: Globex
Line Item: Design, 2025-1-2, 4, 400.00
Expense: 2025-1-3, Train, Client visit, 50.00
Total: 450.00
`
	mismatchInvoice = `Invoice ID: INV-2
Date: 2025-1-9
Line Item: Design, 2025-1-2, 4, 400.00
Total: 999.00
`
	mockPDF  = "%PDF-1.4 mock"
	mockHTML = "<!DOCTYPE html><html><body>mock</body></html>"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
}

// invoiceConverter parses and reconciles like the real converter and returns
// canned HTML and PDF.
type invoiceConverter struct {
	mu     sync.Mutex
	inputs []md2invoice.Input
	err    error
}

func (c *invoiceConverter) Convert(_ context.Context, input md2invoice.Input) (*md2invoice.ConvertResult, error) {
	c.mu.Lock()
	c.inputs = append(c.inputs, input)
	c.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}
	parser := &md2invoice.Parser{Now: fixedNow}
	inv, err := parser.Parse(input.Markdown)
	if err != nil {
		return nil, err
	}
	inv, err = md2invoice.Reconcile(inv)
	if err != nil {
		return nil, err
	}
	res := &md2invoice.ConvertResult{Invoice: inv, HTML: []byte(mockHTML)}
	if !input.HTMLOnly {
		res.PDF = []byte(mockPDF)
	}
	return res, nil
}

func (c *invoiceConverter) calls() []md2invoice.Input {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]md2invoice.Input(nil), c.inputs...)
}

// mockPool hands out one shared converter up to size times concurrently.
type mockPool struct {
	size       int
	conv       CLIConverter
	acquireErr error
	sem        chan struct{}

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

func newMockPool(size int, conv CLIConverter) *mockPool {
	return &mockPool{size: size, conv: conv, sem: make(chan struct{}, size)}
}

func (p *mockPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.sem <- struct{}{}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {
	<-p.sem
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.New("closed twice")
	}
	p.closed = true
	return nil
}

// testEnv returns an Environment writing to buffers and using conv for every pool.
func testEnv(conv CLIConverter) (*Environment, *bytes.Buffer, *bytes.Buffer, *[]*mockPool) {
	var stdout, stderr bytes.Buffer
	pools := &[]*mockPool{}
	env := &Environment{
		Now:    fixedNow,
		Stdout: &stdout,
		Stderr: &stderr,
		NewPool: func(size int, _ ...md2invoice.Option) Pool {
			p := newMockPool(size, conv)
			*pools = append(*pools, p)
			return p
		},
	}
	return env, &stdout, &stderr, pools
}

func writeInvoice(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}
