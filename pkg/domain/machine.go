package domain

// StateMachineDef is the parsed form of one state machine block.
type StateMachineDef struct {
	// Name is the diagram title and the output file stem.
	Name string `json:"name" yaml:"name"`

	// InitialState is not required to appear among the declared sources.
	InitialState string `json:"initial_state" yaml:"initial_state"`

	// Transitions holds one entry per declared source group, in declaration order.
	Transitions []FromState `json:"transitions" yaml:"transitions"`
}

// FromState groups the transitions declared for a single source state.
type FromState struct {
	InitialState string       `json:"from" yaml:"from"`
	Transitions  []Transition `json:"transitions" yaml:"transitions"`
}

// States returns every state mentioned by the machine, in first-mention order.
// The initial state always comes first.
func (d *StateMachineDef) States() []string {
	seen := make(map[string]bool)
	var states []string
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		states = append(states, s)
	}

	add(d.InitialState)
	for _, from := range d.Transitions {
		add(from.InitialState)
		for _, t := range from.Transitions {
			add(t.FinalState)
		}
	}
	return states
}

// TransitionCount returns the number of declared transitions across all groups.
func (d *StateMachineDef) TransitionCount() int {
	n := 0
	for _, from := range d.Transitions {
		n += len(from.Transitions)
	}
	return n
}
