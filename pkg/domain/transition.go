package domain

// Transition is one outgoing edge of a FromState.
type Transition struct {
	// InputValue is the input that triggers the transition.
	InputValue string `json:"input" yaml:"input"`

	FinalState string `json:"to" yaml:"to"`

	// Output is the action attached to the transition.
	// If empty, the transition is a pure state change.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// HasOutput reports whether the transition runs an action.
func (t Transition) HasOutput() bool {
	return t.Output != ""
}
