package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/fsmgraph"
	"github.com/aretw0/fsmgraph/internal/presentation/tui"
)

// Generate writes one diagram per block of every file.
// Failed files and blocks are reported and skipped; the run then ends with ErrFailed.
func Generate(ctx context.Context, opts Options) error {
	logger := createLogger(opts)
	gen, err := newGenerator(opts, logger)
	if err != nil {
		return err
	}

	p := tui.NewPrinter(opts.out())
	failed := 0
	for _, file := range opts.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, n := generateFile(ctx, gen, file, opts, p, logger)
		failed += n
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d error(s)", ErrFailed, failed)
	}
	return nil
}

// generateFile processes one host file and returns its result (nil when the
// whole file failed) and the number of failures.
func generateFile(ctx context.Context, gen *fsmgraph.Generator, file string, opts Options, p *tui.Printer, logger *slog.Logger) (*fsmgraph.Result, int) {
	logger.Debug("Generating", "file", file, "format", gen.Format())

	res, err := gen.GenerateFile(ctx, file)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, 0
		}
		p.Failed(file, err)
		return nil, 1
	}

	failed := 0
	for _, d := range res.Diagrams {
		if err := emit(d, opts, p); err != nil {
			logger.Error("Write failed", "file", file, "machine", d.Name(), "error", err)
			p.Failed(file, err)
			failed++
		}
	}
	for _, err := range res.Errors {
		p.Failed(file, err)
		failed++
	}
	return res, failed
}

func emit(d fsmgraph.Diagram, opts Options, p *tui.Printer) error {
	if opts.Stdout {
		_, err := opts.out().Write(d.Content)
		return err
	}

	dir := opts.Config.OutDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, d.FileName())
	if err := os.WriteFile(path, d.Content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	p.Wrote(path)
	return nil
}
