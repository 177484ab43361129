package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/fsmgraph/internal/presentation/tui"
	"github.com/aretw0/fsmgraph/pkg/domain"
)

// Describe prints a summary of every machine: markdown (styled on a terminal)
// or, with opts.JSON, the parsed model.
func Describe(opts Options) error {
	logger := createLogger(opts)
	gen, err := newGenerator(opts, logger)
	if err != nil {
		return err
	}

	out := opts.out()
	p := tui.NewPrinter(out)
	failed := 0
	var machines []*domain.StateMachineDef
	for _, file := range opts.Files {
		res, err := gen.ParseFile(file)
		if err != nil {
			p.Failed(file, err)
			failed++
			continue
		}
		for _, d := range res.Diagrams {
			machines = append(machines, d.Machine)
		}
		for _, err := range res.Errors {
			p.Failed(file, err)
			failed++
		}
	}

	if opts.JSON {
		data, err := json.MarshalIndent(machines, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode machines: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else if len(machines) > 0 {
		render := tui.PlainRenderer
		if isTerminal(out) {
			if r, err := tui.NewRenderer(terminalWidth(out)); err == nil {
				render = r
			} else {
				logger.Debug("Markdown renderer unavailable", "error", err)
			}
		}

		summaries := make([]string, len(machines))
		for i, m := range machines {
			summaries[i] = tui.Summary(m)
		}
		text, err := render(strings.Join(summaries, "\n"))
		if err != nil {
			return fmt.Errorf("failed to render summary: %w", err)
		}
		fmt.Fprint(out, text)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d error(s)", ErrFailed, failed)
	}
	return nil
}
