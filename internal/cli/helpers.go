package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/aretw0/fsmgraph"
	"github.com/aretw0/fsmgraph/internal/logging"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// stopMessage describes why ctx ended, using the captured signal when ctx
// is a *SignalContext.
func stopMessage(ctx context.Context) string {
	var sig os.Signal
	if sc, ok := ctx.(*SignalContext); ok {
		sig = sc.Signal()
	}
	switch sig {
	case os.Interrupt:
		return "Interrupted."
	case syscall.SIGTERM:
		return "Terminated."
	default:
		return "Stopped."
	}
}

// createLogger returns opts.Logger, or a logger derived from the debug setting.
func createLogger(opts Options) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return logging.ForDebug(opts.Config.Debug)
}

// newGenerator maps the resolved settings onto the library options.
func newGenerator(opts Options, logger *slog.Logger) (*fsmgraph.Generator, error) {
	format, err := fsmgraph.ParseFormat(opts.Config.Format)
	if err != nil {
		return nil, err
	}
	return fsmgraph.New(
		fsmgraph.WithTag(opts.Config.Tag),
		fsmgraph.WithFormat(format),
		fsmgraph.WithLegend(opts.Config.Legend),
		fsmgraph.WithGridThreshold(opts.Config.GridThreshold),
		fsmgraph.WithLogger(logger),
	)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or 0 when unknown.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
