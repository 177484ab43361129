package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// InitNodeID is the point node marking the entry of the machine.
const InitNodeID = "SM_init"

const legend = `  subgraph cluster_legend {
    label="Legend";
    style="dashed";
    legend_state [label="state"];
    legend_input [label="input", shape=cds];
    legend_output [label="output", shape=note];
    legend_state -> legend_input -> legend_output [style="invis"];
  }
`

// GenerateDOT builds and renders a single machine.
// It returns the machine name, used by callers to name the output file.
func GenerateDOT(def *domain.StateMachineDef, opts ...Option) (string, string) {
	return def.Name, RenderDOT(Build(def, opts...))
}

// RenderDOT serialises a model to Graphviz DOT.
func RenderDOT(m *Model) string {
	var sb strings.Builder

	sb.WriteString("digraph \"graph\" {\n")
	sb.WriteString("  rankdir=\"LR\";\n")
	sb.WriteString("  newrank=true;\n")
	if m.Title != "" {
		fmt.Fprintf(&sb, "  label=%s;\n", quote(m.Title))
		sb.WriteString("  labelloc=\"t\";\n")
	}
	sb.WriteString("  node [shape=Mrecord];\n")
	fmt.Fprintf(&sb, "  %s [label=\"\", shape=point];\n", InitNodeID)
	fmt.Fprintf(&sb, "  %s -> %s;\n", InitNodeID, quote(m.Initial))

	if m.Legend {
		sb.WriteString(legend)
	}

	for _, n := range m.Nodes {
		switch n.Kind {
		case NodeKindInput:
			fmt.Fprintf(&sb, "  %s [label=%s, shape=cds];\n", quote(n.ID), quote(n.Label))
		case NodeKindOutput:
			fmt.Fprintf(&sb, "  %s [label=%s, shape=note];\n", quote(n.ID), quote(n.Label))
		}
	}

	for _, e := range m.Edges {
		writeDOTEdge(&sb, e)
	}

	for _, rank := range m.Ranks {
		sb.WriteString("  { rank=same;")
		for _, id := range rank {
			fmt.Fprintf(&sb, " %s;", quote(id))
		}
		sb.WriteString(" }\n")
	}

	sb.WriteString("}\n")
	return sb.String()
}

func writeDOTEdge(sb *strings.Builder, e Edge) {
	tail, head := e.From, e.To
	if e.Back {
		tail, head = head, tail
	}

	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, "label="+quote(e.Label))
	}
	attrs = append(attrs, "style="+quote(e.Style), "color="+quote(e.Color))
	switch {
	case !e.Arrow:
		attrs = append(attrs, "dir=none")
	case e.Back:
		attrs = append(attrs, "dir=back")
	}
	if e.MinLen > 0 {
		attrs = append(attrs, fmt.Sprintf("minlen=%d", e.MinLen))
	}

	fmt.Fprintf(sb, "  %s -> %s [%s];\n", quote(tail), quote(head), strings.Join(attrs, ", "))
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// quote renders s as a DOT double-quoted ID.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
