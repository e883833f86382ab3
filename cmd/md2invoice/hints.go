package main

import (
	"context"
	"errors"
	"strings"

	md2invoice "github.com/alnah/go-md2invoice"
	"github.com/alnah/go-md2invoice/internal/assets"
	"github.com/alnah/go-md2invoice/internal/config"
	"github.com/alnah/go-md2invoice/internal/hints"
)

// hintFor returns a hint to print after err, or "".
func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, md2invoice.ErrExpensesMismatch), errors.Is(err, md2invoice.ErrGrandTotalMismatch):
		return hints.ForTotalMismatch()
	case errors.Is(err, md2invoice.ErrNoBillableContent):
		return hints.ForNoBillableContent()
	case errors.Is(err, context.DeadlineExceeded), strings.Contains(err.Error(), context.DeadlineExceeded.Error()):
		return hints.ForTimeout()
	case errors.Is(err, md2invoice.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, md2invoice.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().Names())
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// triedPaths extracts the "tried a, b" list from a config lookup error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
