/*
Package fsmgraph renders finite state machines, declared as state_machine! blocks
inside host source files, as directed-graph diagrams.

# Concept

A block names the machine, its initial state and its transitions:

	state_machine! {
	    derive(Debug)
	    CircuitBreaker(Closed)

	    Closed(Unsuccessful) => Open [SetupTimer],
	    Open(TimerTriggered) => HalfOpen,
	    HalfOpen => {
	        Successful => Closed,
	        Unsuccessful => Open [SetupTimer],
	    }
	}

Each block becomes one diagram. Transitions sharing a source, a target and an
output are merged into one edge whose label lists every input; outputs are drawn
as a small chain (input node, then action node) between the two states. Edges
into states declared earlier are drawn reversed so the layout keeps flowing
left to right.

# Usage

	gen, err := fsmgraph.New(fsmgraph.WithFormat(fsmgraph.FormatDOT))
	if err != nil {
		log.Fatal(err)
	}

	res, err := gen.GenerateFile(ctx, "src/breaker.rs")
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range res.Diagrams {
		os.WriteFile(d.FileName(), d.Content, 0644)
	}
	if err := res.Err(); err != nil {
		log.Print(err) // blocks that did not parse
	}

DOT is the default output. Mermaid flowcharts are available as FormatMermaid,
and SVG or PNG images are rendered with an embedded Graphviz (FormatSVG, FormatPNG).

The grammar and the token model live in package pkg/dsl; the parsed model in pkg/domain.
*/
package fsmgraph
