package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const circuitBreaker = `
derive(Debug)
CircuitBreaker(Closed)

Closed(Unsuccessful) => Open [SetupTimer],
Open(TimerTriggered) => HalfOpen,
HalfOpen => {
    Successful => Closed,
    Unsuccessful => Open [SetupTimer],
}
`

const circuitBreakerDOT = `digraph "graph" {
  rankdir="LR";
  newrank=true;
  label="CircuitBreaker";
  labelloc="t";
  node [shape=Mrecord];
  SM_init [label="", shape=point];
  SM_init -> "Closed";
  subgraph cluster_legend {
    label="Legend";
    style="dashed";
    legend_state [label="state"];
    legend_input [label="input", shape=cds];
    legend_output [label="output", shape=note];
    legend_state -> legend_input -> legend_output [style="invis"];
  }
  "in:Closed:SetupTimer:Open" [label="Unsuccessful", shape=cds];
  "out:SetupTimer:Open" [label="SetupTimer", shape=note];
  "in:HalfOpen:SetupTimer:Open" [label="Unsuccessful", shape=cds];
  "Closed" -> "in:Closed:SetupTimer:Open" [style="solid", color="#1f77b4", dir=none];
  "in:Closed:SetupTimer:Open" -> "out:SetupTimer:Open" [style="solid", color="#1f77b4", dir=none];
  "out:SetupTimer:Open" -> "Open" [style="solid", color="#1f77b4"];
  "Open" -> "HalfOpen" [label="TimerTriggered", style="dashed", color="#ff7f0e", minlen=2];
  "Closed" -> "HalfOpen" [label="Successful", style="dotted", color="#2ca02c", dir=back, minlen=2];
  "in:HalfOpen:SetupTimer:Open" -> "HalfOpen" [style="bold", color="#d62728", dir=none];
  "out:SetupTimer:Open" -> "in:HalfOpen:SetupTimer:Open" [style="bold", color="#d62728", dir=none];
}
`

func TestRenderDOTCircuitBreaker(t *testing.T) {
	name, dot := GenerateDOT(mustParse(t, circuitBreaker))

	assert.Equal(t, "CircuitBreaker", name)
	assert.Equal(t, circuitBreakerDOT, dot)
}

func TestRenderDOTDeterministic(t *testing.T) {
	def := mustParse(t, circuitBreaker)

	_, first := GenerateDOT(def)
	for i := 0; i < 10; i++ {
		_, again := GenerateDOT(def)
		require.Equal(t, first, again)
	}
}

func TestRenderDOTWithoutLegend(t *testing.T) {
	_, dot := GenerateDOT(mustParse(t, `M(A) A(x) => B`), WithLegend(false))

	assert.NotContains(t, dot, "cluster_legend")
	assert.Contains(t, dot, `SM_init -> "A";`)
	assert.Contains(t, dot, `"A" -> "B" [label="x", style="solid", color="#1f77b4", minlen=2];`)
}

func TestRenderDOTGridLabel(t *testing.T) {
	_, dot := GenerateDOT(mustParse(t, `M(A) A => { a => B, b => B, c => B, d => B, e => B }`))

	assert.Contains(t, dot, `"A" -> "B" [label="a, b, c\nd, e", style="solid"`)
}

func TestRenderDOTSameRank(t *testing.T) {
	_, dot := GenerateDOT(mustParse(t, `M(A) A(x) => A [tick]`))

	assert.Contains(t, dot, `  { rank=same; "A"; "in:A:tick:A"; "out:tick:A"; }`)
	assert.NotContains(t, dot, "dir=back")
}

func TestRenderDOTOneEdgePerGroup(t *testing.T) {
	_, dot := GenerateDOT(mustParse(t, `M(A) A => { x => B, y => B, z => C }`), WithLegend(false))

	var edges int
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, " -> ") && !strings.HasPrefix(strings.TrimSpace(line), InitNodeID) {
			edges++
		}
	}
	assert.Equal(t, 2, edges)
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, quote(tt.in))
	}
}
