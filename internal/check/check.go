// Package check parses many cPaws files concurrently and reports the
// outcome per file. It backs the check command and its watch mode.
package check

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/leapstack-labs/paws/pkg/ast"
	"github.com/leapstack-labs/paws/pkg/parser"
	"golang.org/x/sync/errgroup"
)

// Config holds checker settings.
type Config struct {
	Workers    int
	MaxDepth   int
	Extensions []string
	Logger     *slog.Logger
}

// Result is the outcome of checking one file.
type Result struct {
	Path    string
	Text    string
	Program *ast.Program
	// Err is a parse, depth or read error. Nil means the file parsed.
	Err error
}

// OK reports whether the file parsed.
func (r Result) OK() bool { return r.Err == nil }

// Checker parses files with a bounded number of workers.
type Checker struct {
	workers    int
	opts       parser.Options
	extensions []string
	logger     *slog.Logger
}

// New creates a Checker from cfg.
func New(cfg Config) *Checker {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{
		workers:    workers,
		opts:       parser.Options{MaxDepth: cfg.MaxDepth},
		extensions: cfg.Extensions,
		logger:     logger,
	}
}

// Collect expands paths into the files to check. Files named directly are
// always kept; directories are walked for files with a known extension.
// Hidden directories are skipped. The result is sorted and deduplicated.
func (c *Checker) Collect(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("cannot check %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(p))
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && len(d.Name()) > 1 && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if c.Matches(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// Matches reports whether path has one of the configured extensions.
func (c *Checker) Matches(path string) bool {
	return slices.Contains(c.extensions, filepath.Ext(path))
}

// Run checks files concurrently and returns results in the order of files.
// Only context cancellation stops a run early; per-file failures are
// reported in the results.
func (c *Checker) Run(ctx context.Context, files []string) ([]Result, error) {
	results := make([]Result, len(files))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.workers)

	for i, path := range files {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			results[i] = c.checkFile(path)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Checker) checkFile(path string) Result {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from the command line
	if err != nil {
		c.logger.Debug("read failed", "path", path, "error", err)
		return Result{Path: path, Err: fmt.Errorf("%s: %w", path, err)}
	}

	text := string(data)
	prog, err := parser.ParseWithOptions(path, text, c.opts)
	if err != nil {
		c.logger.Debug("parse failed", "path", path, "error", err)
		return Result{Path: path, Text: text, Err: err}
	}

	symbols, groups := ast.Count(prog.Nodes)
	c.logger.Debug("parsed", "path", path, "symbols", symbols, "groups", groups)
	return Result{Path: path, Text: text, Program: prog}
}

// Failed counts results with errors.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}
