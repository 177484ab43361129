package fsmgraph

import (
	_ "embed"
)

// Version is the release of the library and of the fsmgraph command.
//
//go:embed VERSION
var Version string
