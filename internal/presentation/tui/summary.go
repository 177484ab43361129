package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// Summary describes a machine as markdown: its states and a transition table.
func Summary(def *domain.StateMachineDef) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", def.Name)
	fmt.Fprintf(&sb, "- **Initial state:** `%s`\n", def.InitialState)
	fmt.Fprintf(&sb, "- **States:** %s\n", codeList(def.States()))
	fmt.Fprintf(&sb, "- **Transitions:** %d\n", def.TransitionCount())

	if def.TransitionCount() == 0 {
		return sb.String()
	}

	sb.WriteString("\n| From | Input | To | Output |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, from := range def.Transitions {
		for _, t := range from.Transitions {
			output := "-"
			if t.HasOutput() {
				output = "`" + t.Output + "`"
			}
			fmt.Fprintf(&sb, "| `%s` | `%s` | `%s` | %s |\n", from.InitialState, t.InputValue, t.FinalState, output)
		}
	}
	return sb.String()
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}
