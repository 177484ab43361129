package domain

import "errors"

// ErrGrammar is wrapped by every error reporting a DSL block that does not match the grammar.
var ErrGrammar = errors.New("grammar error")

// ErrNoBlocks is returned when a host file contains no tagged state machine block.
var ErrNoBlocks = errors.New("no state machine blocks found")

// ErrUnsupportedFormat is returned when an output format is not known to the renderer.
var ErrUnsupportedFormat = errors.New("unsupported output format")
