package dsl

import "github.com/aretw0/fsmgraph/pkg/domain"

// FromBuilder provides a fluent API for the transitions of one source group.
type FromBuilder struct {
	group   domain.FromState
	builder *Builder
}

// On adds a transition triggered by input. Set its destination with To.
func (f *FromBuilder) On(input string) *TransitionBuilder {
	f.group.Transitions = append(f.group.Transitions, domain.Transition{InputValue: input})
	return &TransitionBuilder{from: f, index: len(f.group.Transitions) - 1}
}

// From opens the next group on the parent builder.
func (f *FromBuilder) From(state string) *FromBuilder {
	return f.builder.From(state)
}

// TransitionBuilder configures the transition most recently added with On.
type TransitionBuilder struct {
	from  *FromBuilder
	index int
}

// To sets the destination state.
func (t *TransitionBuilder) To(state string) *TransitionBuilder {
	t.from.group.Transitions[t.index].FinalState = state
	return t
}

// Output attaches an action to the transition.
func (t *TransitionBuilder) Output(action string) *TransitionBuilder {
	t.from.group.Transitions[t.index].Output = action
	return t
}

// On adds another transition to the same source group.
func (t *TransitionBuilder) On(input string) *TransitionBuilder {
	return t.from.On(input)
}

// From opens the next group on the parent builder.
func (t *TransitionBuilder) From(state string) *FromBuilder {
	return t.from.From(state)
}
