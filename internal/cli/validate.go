package cli

import (
	"fmt"

	"github.com/aretw0/fsmgraph/internal/presentation/tui"
)

// Validate parses every block without rendering and reports each one.
func Validate(opts Options) error {
	logger := createLogger(opts)
	gen, err := newGenerator(opts, logger)
	if err != nil {
		return err
	}

	p := tui.NewPrinter(opts.out())
	failed := 0
	for _, file := range opts.Files {
		res, err := gen.ParseFile(file)
		if err != nil {
			p.Failed(file, err)
			failed++
			continue
		}
		for _, d := range res.Diagrams {
			p.OK("%s: %s (%d states, %d transitions)", file, d.Name(), len(d.Machine.States()), d.Machine.TransitionCount())
		}
		for _, err := range res.Errors {
			p.Failed(file, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d error(s)", ErrFailed, failed)
	}
	return nil
}
