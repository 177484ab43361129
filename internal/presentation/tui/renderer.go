package tui

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a Renderer backed by glamour, wrapping at width columns
// (0 keeps glamour's default).
func NewRenderer(width int) (Renderer, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

// PlainRenderer returns markdown unchanged, for pipes and files.
func PlainRenderer(markdown string) (string, error) {
	return markdown, nil
}
