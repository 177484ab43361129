package cli

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/fsmgraph/internal/config"
)

// ErrFailed is returned when at least one file or block could not be processed.
// Details have already been printed by then.
var ErrFailed = errors.New("one or more state machines failed")

// Options configures a command run.
type Options struct {
	Files  []string
	Config config.Config

	// Stdout prints diagrams instead of writing files (generate).
	Stdout bool
	// JSON dumps the parsed machines (describe).
	JSON bool

	Out    io.Writer // defaults to os.Stdout
	Logger *slog.Logger
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}
