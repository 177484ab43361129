package dsl

import "github.com/aretw0/fsmgraph/pkg/domain"

// Builder constructs a StateMachineDef in code, mirroring what the parser produces.
type Builder struct {
	name    string
	initial string
	groups  []*FromBuilder
}

// New creates a new machine builder.
func New(name, initial string) *Builder {
	return &Builder{name: name, initial: initial}
}

// From opens a new transition group for the given source state.
// Calling From twice with the same state declares two groups, as the DSL allows.
func (b *Builder) From(state string) *FromBuilder {
	fb := &FromBuilder{group: domain.FromState{InitialState: state}, builder: b}
	b.groups = append(b.groups, fb)
	return fb
}

// Build returns the machine. The builder can keep being used afterwards.
func (b *Builder) Build() *domain.StateMachineDef {
	def := &domain.StateMachineDef{
		Name:         b.name,
		InitialState: b.initial,
		Transitions:  make([]domain.FromState, 0, len(b.groups)),
	}
	for _, fb := range b.groups {
		group := domain.FromState{
			InitialState: fb.group.InitialState,
			Transitions:  append([]domain.Transition(nil), fb.group.Transitions...),
		}
		def.Transitions = append(def.Transitions, group)
	}
	return def
}
