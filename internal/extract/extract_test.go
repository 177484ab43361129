package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fsmgraph/pkg/dsl"
)

const hostFile = `use rust_fsm::*;

state_machine! {
    derive(Debug)
    Door(Closed)

    Closed(Open) => Opened,
    Opened(Close) => Closed,
}

fn main() {
    // Nested invocations are not items.
    state_machine! { Inner(A) A(x) => B }
}

#[allow(dead_code)]
state_machine! {
    Light(Off)
    Off(Toggle) => On [Glow],
    On(Toggle) => Off,
}

rust_fsm::state_machine! { Qualified(A) }
`

func TestExtractTopLevelBlocks(t *testing.T) {
	blocks, err := Extract([]byte(hostFile), DefaultTag)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, "state_machine#1", blocks[0].Name)
	assert.Equal(t, 3, blocks[0].Pos.Line)
	assert.Equal(t, "state_machine#2", blocks[1].Name)
	assert.Equal(t, 17, blocks[1].Pos.Line)

	door, err := dsl.Parse(blocks[0].Tokens)
	require.NoError(t, err)
	assert.Equal(t, "Door", door.Name)
	assert.Len(t, door.Transitions, 2)

	light, err := dsl.Parse(blocks[1].Tokens)
	require.NoError(t, err)
	assert.Equal(t, "Light", light.Name)
	assert.Equal(t, "Glow", light.Transitions[0].Transitions[0].Output)
}

func TestExtractItemBoundaries(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"empty file", ``, 0},
		{"no blocks", `fn main() {}`, 0},
		{"first token", `state_machine! { M(A) }`, 1},
		{"after semicolon", `use x; state_machine!(M(A));`, 1},
		{"after item body", `struct S {} state_machine! { M(A) }`, 1},
		{"after attribute", `#[cfg(test)] state_machine! { M(A) }`, 1},
		{"after plain array", `const X: [u8; 0] = [] state_machine! { M(A) }`, 0},
		{"qualified path", `a::state_machine! { M(A) }`, 0},
		{"macro definition", `macro_rules! state_machine { () => {} }`, 0},
		{"missing bang", `state_machine { M(A) }`, 0},
		{"two blocks", `state_machine! { M(A) } state_machine! { N(B) }`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := Extract([]byte(tt.src), DefaultTag)
			require.NoError(t, err)
			assert.Len(t, blocks, tt.want)
		})
	}
}

func TestExtractCustomTag(t *testing.T) {
	src := `fsm! { M(A) } state_machine! { N(B) }`

	blocks, err := Extract([]byte(src), "fsm")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "fsm#1", blocks[0].Name)

	blocks, err = Extract([]byte(src), "")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "state_machine#1", blocks[0].Name)
}

func TestExtractLexError(t *testing.T) {
	_, err := Extract([]byte(`state_machine! { M(A) `), DefaultTag)
	require.Error(t, err)

	var lexErr *dsl.LexError
	assert.True(t, errors.As(err, &lexErr))
	assert.Contains(t, err.Error(), "unclosed '{'")
}
