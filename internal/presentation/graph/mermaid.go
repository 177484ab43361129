package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// GenerateMermaid builds and renders a single machine as a Mermaid flowchart.
func GenerateMermaid(def *domain.StateMachineDef, opts ...Option) (string, string) {
	return def.Name, RenderMermaid(Build(def, opts...))
}

// RenderMermaid produces a Mermaid flowchart from a model.
// It applies semantic shapes:
// - State: (Rounded)
// - Input decoration: >Flag]
// - Output decoration: [/Parallelogram/]
// Edges keep their logical direction; Mermaid has no dir=back.
func RenderMermaid(m *Model) string {
	var sb strings.Builder
	if m.Title != "" {
		fmt.Fprintf(&sb, "---\ntitle: %s\n---\n", m.Title)
	}
	sb.WriteString("flowchart LR\n")

	ids := mermaidIDs(m)
	fmt.Fprintf(&sb, "    %s((\" \"))\n", InitNodeID)
	for _, n := range m.Nodes {
		id := ids[n.ID]
		label := mermaidLabel(n.Label)
		switch n.Kind {
		case NodeKindInput:
			fmt.Fprintf(&sb, "    %s>\"%s\"]\n", id, label)
		case NodeKindOutput:
			fmt.Fprintf(&sb, "    %s[/\"%s\"/]\n", id, label)
		default:
			fmt.Fprintf(&sb, "    %s(\"%s\")\n", id, label)
		}
	}

	fmt.Fprintf(&sb, "    %s --> %s\n", InitNodeID, ids[m.Initial])
	for _, e := range m.Edges {
		link := mermaidLink(e)
		if e.Label != "" {
			link = fmt.Sprintf("%s|\"%s\"|", link, mermaidLabel(e.Label))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", ids[e.From], link, ids[e.To])
	}

	// Link 0 is the initial marker edge.
	for i, e := range m.Edges {
		if e.Color != "" {
			fmt.Fprintf(&sb, "    linkStyle %d stroke:%s\n", i+1, e.Color)
		}
	}

	return sb.String()
}

func mermaidLink(e Edge) string {
	switch e.Style {
	case "dashed", "dotted":
		if e.Arrow {
			return "-.->"
		}
		return "-.-"
	case "bold":
		if e.Arrow {
			return "==>"
		}
		return "==="
	default:
		if e.Arrow {
			return "-->"
		}
		return "---"
	}
}

var mermaidEscaper = strings.NewReplacer(`"`, "#quot;", "\n", "<br/>")

func mermaidLabel(s string) string {
	return mermaidEscaper.Replace(s)
}

// mermaidIDs maps every node to a distinct Mermaid identifier. States are
// named first so they keep their sanitized name; any later collision, with
// another node or with InitNodeID, gets a numeric suffix.
func mermaidIDs(m *Model) map[string]string {
	ids := make(map[string]string, len(m.Nodes))
	used := map[string]bool{InitNodeID: true}

	assign := func(n *Node) {
		base := sanitizeMermaidID(n.ID)
		id := base
		for i := 2; used[id]; i++ {
			id = fmt.Sprintf("%s_%d", base, i)
		}
		used[id] = true
		ids[n.ID] = id
	}
	for _, n := range m.Nodes {
		if n.Kind == NodeKindState {
			assign(n)
		}
	}
	for _, n := range m.Nodes {
		if n.Kind != NodeKindState {
			assign(n)
		}
	}
	return ids
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
