package main

import (
	"context"
	"fmt"

	md2invoice "github.com/alnah/go-md2invoice"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2invoice.Input) (*md2invoice.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2invoice.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// poolAdapter exposes md2invoice.ConverterPool through Pool.
type poolAdapter struct {
	pool *md2invoice.ConverterPool
}

var _ Pool = (*poolAdapter)(nil)

func newConverterPool(size int, opts ...md2invoice.Option) Pool {
	return &poolAdapter{pool: md2invoice.NewConverterPool(size, opts...)}
}

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics when given a converter the pool did not hand out.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*md2invoice.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int    { return a.pool.Size() }
func (a *poolAdapter) Close() error { return a.pool.Close() }
