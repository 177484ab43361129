package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/fsmgraph"
	"github.com/aretw0/fsmgraph/internal/presentation/tui"
	"github.com/aretw0/fsmgraph/pkg/domain"
)

// watchDebounce collects the burst of events an editor emits for one save.
const watchDebounce = 100 * time.Millisecond

// Watch generates every file once, then regenerates a file whenever it changes,
// until ctx is cancelled. Failures are reported and never stop the loop.
func Watch(ctx context.Context, opts Options) error {
	logger := createLogger(opts)
	gen, err := newGenerator(opts, logger)
	if err != nil {
		return err
	}
	p := tui.NewPrinter(opts.out())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	// Directories are watched rather than files so that editors replacing
	// the file on save keep being tracked.
	targets := make(map[string]string)
	dirs := make(map[string]bool)
	for _, file := range opts.Files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("invalid path %s: %w", file, err)
		}
		targets[abs] = file
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	known := make(map[string]machines, len(opts.Files))
	for _, file := range opts.Files {
		res, _ := generateFile(ctx, gen, file, opts, p, logger)
		known[file] = indexMachines(res)
	}

	logger.Info("Starting Watcher", "files", len(targets))
	p.System("Watching %d file(s). Press Ctrl+C to stop.", len(targets))

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Watcher stopped")
			p.System("%s", stopMessage(ctx))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			file, tracked := targets[filepath.Clean(event.Name)]
			if !tracked || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Debug("Change detected", "event", event.String())
			pending[file] = true
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", "error", err)

		case <-fire:
			fire = nil
			files := make([]string, 0, len(pending))
			for file := range pending {
				files = append(files, file)
			}
			clear(pending)
			slices.Sort(files)
			regenerate(ctx, gen, files, known, opts, p, logger)
		}
	}
}

// machines indexes the machines of one file by name.
type machines map[string]*domain.StateMachineDef

func indexMachines(res *fsmgraph.Result) machines {
	m := make(machines)
	if res == nil {
		return m
	}
	for _, d := range res.Diagrams {
		m[d.Name()] = d.Machine
	}
	return m
}

// regenerate rebuilds files and reports how each machine changed since the last build.
func regenerate(ctx context.Context, gen *fsmgraph.Generator, files []string, known map[string]machines, opts Options, p *tui.Printer, logger *slog.Logger) {
	for _, file := range files {
		p.System("Change detected in '%s'.", file)
		res, _ := generateFile(ctx, gen, file, opts, p, logger)
		if res == nil {
			continue
		}

		previous := known[file]
		for _, d := range res.Diagrams {
			old, seen := previous[d.Name()]
			if !seen {
				p.System("%s: new machine.", d.Name())
				continue
			}
			if diff := domain.Diff(old, d.Machine); diff != nil {
				p.System("%s: %s.", d.Name(), diff.Summary())
			}
		}
		known[file] = rebaseline(previous, res)
	}
}

// rebaseline returns the machines to diff the next pass against. While any
// block fails, machines missing from res keep their last good definition.
func rebaseline(previous machines, res *fsmgraph.Result) machines {
	next := indexMachines(res)
	if len(res.Errors) == 0 {
		return next
	}
	for name, def := range previous {
		if _, ok := next[name]; !ok {
			next[name] = def
		}
	}
	return next
}
