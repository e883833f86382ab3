package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2invoice/internal/fileutil"
)

// Sentinel errors for input and output resolution.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrTooManyArgs      = errors.New("too many arguments")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrNoMarkdownFiles  = errors.New("no markdown files found")
	ErrOutputNotDir     = errors.New("output must be a directory when input is a directory")
)

// FileToConvert is one invoice to process. Exactly one of OutputPath and
// OutputDir is set; with OutputDir the file name is derived from the invoice.
type FileToConvert struct {
	InputPath  string
	OutputPath string
	OutputDir  string
}

// discoverFiles resolves the input argument into files to convert.
// output is the optional second argument; defaultDir comes from config or environment.
func discoverFiles(input, output, defaultDir string) ([]FileToConvert, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsMarkdown(input) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(input))
		}
		f := FileToConvert{InputPath: input}
		switch {
		case output != "" && fileutil.DirExists(output):
			f.OutputDir = output
		case output != "":
			f.OutputPath = output
		case defaultDir != "":
			f.OutputDir = defaultDir
		default:
			f.OutputDir = filepath.Dir(input)
		}
		return []FileToConvert{f}, nil
	}

	if output != "" && fileutil.FileExists(output) {
		return nil, fmt.Errorf("%w: %s", ErrOutputNotDir, output)
	}
	base := output
	if base == "" {
		base = defaultDir
	}

	var files []FileToConvert
	err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		outDir := filepath.Dir(path)
		if base != "" {
			rel, relErr := filepath.Rel(input, outDir)
			if relErr != nil {
				rel = "."
			}
			outDir = filepath.Join(base, rel)
		}
		files = append(files, FileToConvert{InputPath: path, OutputDir: outDir})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, input)
	}
	return files, nil
}
