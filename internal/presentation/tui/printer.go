package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Printer writes the user-facing status lines of the CLI.
// Colors are dropped automatically when w is not a terminal.
type Printer struct {
	w   io.Writer
	out *termenv.Output
}

// NewPrinter creates a Printer on w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, out: termenv.NewOutput(w)}
}

// Wrote reports a generated file.
func (p *Printer) Wrote(path string) {
	fmt.Fprintf(p.w, "Wrote %s\n", path)
}

// Failed reports a block or file that could not be processed.
func (p *Printer) Failed(subject string, err error) {
	label := p.out.String("error:").Foreground(p.out.Color("#fb7185")).Bold()
	fmt.Fprintf(p.w, "%s %s: %v\n", label, subject, err)
}

// OK reports a successful check.
func (p *Printer) OK(format string, args ...any) {
	mark := p.out.String("ok").Foreground(p.out.Color("#4ade80"))
	fmt.Fprintf(p.w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// System prints a standardized system message.
func (p *Printer) System(format string, args ...any) {
	fmt.Fprintf(p.w, ">>> %s\n", fmt.Sprintf(format, args...))
}
