package dsl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fsmgraph/pkg/domain"
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

func TestParseInlineAndBracedGroups(t *testing.T) {
	def, err := ParseString(`Name(A) A(x) => B, B => { y => A, z => B }`)
	require.NoError(t, err)

	assert.Equal(t, &domain.StateMachineDef{
		Name:         "Name",
		InitialState: "A",
		Transitions: []domain.FromState{
			{InitialState: "A", Transitions: []domain.Transition{
				{InputValue: "x", FinalState: "B"},
			}},
			{InitialState: "B", Transitions: []domain.Transition{
				{InputValue: "y", FinalState: "A"},
				{InputValue: "z", FinalState: "B"},
			}},
		},
	}, def)
}

func TestParseCircuitBreaker(t *testing.T) {
	def, err := ParseString(circuitBreaker)
	require.NoError(t, err)

	assert.Equal(t, "CircuitBreaker", def.Name)
	assert.Equal(t, "Closed", def.InitialState)
	require.Len(t, def.Transitions, 3)

	assert.Equal(t, domain.FromState{InitialState: "Closed", Transitions: []domain.Transition{
		{InputValue: "Unsuccessful", FinalState: "Open", Output: "SetupTimer"},
	}}, def.Transitions[0])
	assert.Equal(t, domain.FromState{InitialState: "Open", Transitions: []domain.Transition{
		{InputValue: "TimerTriggered", FinalState: "HalfOpen"},
	}}, def.Transitions[1])
	assert.Equal(t, domain.FromState{InitialState: "HalfOpen", Transitions: []domain.Transition{
		{InputValue: "Successful", FinalState: "Closed"},
		{InputValue: "Unsuccessful", FinalState: "Open", Output: "SetupTimer"},
	}}, def.Transitions[2])
}

func TestParseHeaderAttributes(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		machine string
		initial string
		groups  int
	}{
		{"no transitions", `Machine(Idle)`, "Machine", "Idle", 0},
		{"outer attribute", `#[derive(Debug)] pub Machine(Idle)`, "Machine", "Idle", 0},
		{"several attributes", `derive(Debug, Clone) repr(C) M(S) S(a) => T`, "M", "S", 1},
		{"options with arguments", `repr_c(u8) pub(crate) M(S) S(a) => T`, "M", "S", 1},
		{"optional commas", `M(S) S(a) => T T => { b => S c => T [act] }`, "M", "S", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseString(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.machine, def.Name)
			assert.Equal(t, tt.initial, def.InitialState)
			assert.Len(t, def.Transitions, tt.groups)
		})
	}
}

func TestParseTokensWithoutPositions(t *testing.T) {
	tokens := []Token{
		NewIdent("M"), NewGroup(Paren, NewIdent("S")),
		NewIdent("S"), NewGroup(Paren, NewIdent("go")), NewPunct("=>"),
		NewIdent("T"), NewGroup(Bracket, NewIdent("log")),
	}

	def, err := Parse(tokens)
	require.NoError(t, err)
	assert.Equal(t, []domain.FromState{{InitialState: "S", Transitions: []domain.Transition{
		{InputValue: "go", FinalState: "T", Output: "log"},
	}}}, def.Transitions)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
		got      string
	}{
		{"missing arrow before braces", `Name(A) A(x) => B, B { y => A }`, "'=>'", "'{...}' group"},
		{"missing arrow after input", `Name(A) A(x) => B, B(y) A`, "'=>'", `identifier "A"`},
		{"missing arrow inside braces", `Name(A) A => { x B }`, "'=>'", `identifier "B"`},
		{"wrong group delimiter", `Name(A) A => ( x => B )`, "'{'", "'(...)' group"},
		{"out of tokens", `Name(A) A(x) =>`, "identifier", "end of input"},
		{"literal output", `Name(A) A(x) => B ["s"]`, "identifier", `literal "\"s\""`},
		{"two initial states", `Name(A B)`, "')'", `identifier "B"`},
		{"empty block", ``, "identifier", "end of input"},
		{"name without initial state", `Name`, "'('", "end of input"},
		{"leftover token", `Name(A) A(x) => B; C`, "identifier", `punctuation ";"`},
		{"first group missing arrow", `Name(A) A(x) B`, "'=>'", `identifier "B"`},
		{"first group missing arrow before braces", `Name(A) A { y => B }`, "'=>'", "'{...}' group"},
		{"first group followed by a valid one", `Name(A) A(x) B(y) => C`, "'=>'", `identifier "B"`},
		{"attributes only", `derive(Debug) pub`, "identifier", "end of input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseString(tt.src)
			require.Error(t, err)
			assert.Nil(t, def)
			assert.True(t, errors.Is(err, domain.ErrGrammar))

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.expected, syntaxErr.Expected)
			assert.Equal(t, tt.got, syntaxErr.Got)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseString("Name(A)\nA(x) => B,\nB(y) C")
	require.Error(t, err)
	assert.Equal(t, `line 3, col 6: expected '=>', got identifier "C"`, err.Error())
}

func TestParseLexErrorIsNotGrammarError(t *testing.T) {
	_, err := ParseString(`Name(A) A(x) => B [`)
	require.Error(t, err)

	var lexErr *LexError
	assert.ErrorAs(t, err, &lexErr)
	assert.False(t, errors.Is(err, domain.ErrGrammar))
}
