package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// Format is an output format for a diagram.
type Format string

const (
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mermaid"
	FormatSVG     Format = "svg"
	FormatPNG     Format = "png"
)

var extensions = map[Format]string{
	FormatDOT:     ".dot",
	FormatMermaid: ".mmd",
	FormatSVG:     ".svg",
	FormatPNG:     ".png",
}

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := extensions[f]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
	}
	return f, nil
}

// Extension returns the file extension, including the dot.
func (f Format) Extension() string {
	return extensions[f]
}

// IsImage reports whether the format needs the Graphviz layout engine.
func (f Format) IsImage() bool {
	return f == FormatSVG || f == FormatPNG
}
