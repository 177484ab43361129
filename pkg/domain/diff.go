package domain

import (
	"fmt"
	"strings"
)

// TransitionRef is a transition together with its source state.
type TransitionRef struct {
	From string `json:"from"`
	Transition
}

func (r TransitionRef) String() string {
	s := fmt.Sprintf("%s(%s) => %s", r.From, r.InputValue, r.FinalState)
	if r.HasOutput() {
		s += " [" + r.Output + "]"
	}
	return s
}

// MachineDiff represents the changes between two versions of a machine.
type MachineDiff struct {
	Name string `json:"name"`

	// InitialState is set only when the initial state changed.
	InitialState *string `json:"initial_state,omitempty"`

	AddedStates   []string `json:"added_states,omitempty"`
	RemovedStates []string `json:"removed_states,omitempty"`

	AddedTransitions   []TransitionRef `json:"added_transitions,omitempty"`
	RemovedTransitions []TransitionRef `json:"removed_transitions,omitempty"`
}

// Diff calculates the difference between oldDef and newDef.
// If oldDef is nil, it returns a diff representing the entire newDef (first load).
// It returns nil when nothing changed. Grouping is ignored: moving a transition
// between two groups of the same source state is not a change.
func Diff(oldDef, newDef *StateMachineDef) *MachineDiff {
	if newDef == nil {
		return nil
	}
	if oldDef == nil {
		oldDef = &StateMachineDef{}
	}

	diff := &MachineDiff{Name: newDef.Name}
	if oldDef.InitialState != newDef.InitialState {
		diff.InitialState = &newDef.InitialState
	}
	diff.AddedStates, diff.RemovedStates = diffStates(oldDef.States(), newDef.States())
	diff.AddedTransitions, diff.RemovedTransitions = diffTransitions(refs(oldDef), refs(newDef))

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffStates(old, new []string) (added, removed []string) {
	inOld := make(map[string]bool, len(old))
	for _, s := range old {
		inOld[s] = true
	}
	inNew := make(map[string]bool, len(new))
	for _, s := range new {
		inNew[s] = true
		if !inOld[s] {
			added = append(added, s)
		}
	}
	for _, s := range old {
		if !inNew[s] {
			removed = append(removed, s)
		}
	}
	return added, removed
}

// diffTransitions compares transitions as multisets, so a duplicated
// declaration counts once per occurrence.
func diffTransitions(old, new []TransitionRef) (added, removed []TransitionRef) {
	count := make(map[TransitionRef]int, len(old))
	for _, r := range old {
		count[r]++
	}
	for _, r := range new {
		if count[r] > 0 {
			count[r]--
			continue
		}
		added = append(added, r)
	}
	for _, r := range old {
		if count[r] > 0 {
			count[r]--
			removed = append(removed, r)
		}
	}
	return added, removed
}

func refs(d *StateMachineDef) []TransitionRef {
	var out []TransitionRef
	for _, from := range d.Transitions {
		for _, t := range from.Transitions {
			out = append(out, TransitionRef{From: from.InitialState, Transition: t})
		}
	}
	return out
}

// IsEmpty checks if the diff contains any change.
func (d *MachineDiff) IsEmpty() bool {
	return d.InitialState == nil &&
		len(d.AddedStates) == 0 &&
		len(d.RemovedStates) == 0 &&
		len(d.AddedTransitions) == 0 &&
		len(d.RemovedTransitions) == 0
}

// Summary renders the diff on one line, e.g. "initial Open, +1 state, -2 transitions".
func (d *MachineDiff) Summary() string {
	var parts []string
	if d.InitialState != nil {
		parts = append(parts, "initial "+*d.InitialState)
	}
	parts = appendCount(parts, "+", len(d.AddedStates), "state")
	parts = appendCount(parts, "-", len(d.RemovedStates), "state")
	parts = appendCount(parts, "+", len(d.AddedTransitions), "transition")
	parts = appendCount(parts, "-", len(d.RemovedTransitions), "transition")
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}

func appendCount(parts []string, sign string, n int, noun string) []string {
	switch n {
	case 0:
		return parts
	case 1:
		return append(parts, fmt.Sprintf("%s1 %s", sign, noun))
	default:
		return append(parts, fmt.Sprintf("%s%d %ss", sign, n, noun))
	}
}
