// Package extract finds tagged state machine blocks in host source files.
package extract

import (
	"fmt"

	"github.com/aretw0/fsmgraph/pkg/dsl"
)

// DefaultTag is the macro name that introduces a block.
const DefaultTag = "state_machine"

// Block is the body of one tagged block.
type Block struct {
	// Name identifies the block before it is parsed, e.g. "state_machine#2".
	Name   string
	Tokens []dsl.Token
	Pos    dsl.Position // position of the tag
}

// Extract returns every top-level `tag! { ... }` item of src, in source order.
// Invocations nested inside other items, or reached through a path such as
// `crate::tag!`, are not blocks. A src without blocks returns an empty slice.
func Extract(src []byte, tag string) ([]Block, error) {
	if tag == "" {
		tag = DefaultTag
	}
	tokens, err := dsl.Lex(src)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	var blocks []Block
	for i := 0; i+2 < len(tokens); i++ {
		if !tokens[i].Is(dsl.Ident, tag) || !tokens[i+1].Is(dsl.Punct, "!") {
			continue
		}
		body := tokens[i+2]
		if body.Kind != dsl.Group || !startsItem(tokens, i) {
			continue
		}
		blocks = append(blocks, Block{
			Name:   fmt.Sprintf("%s#%d", tag, len(blocks)+1),
			Tokens: body.Children,
			Pos:    tokens[i].Pos,
		})
		i += 2
	}
	return blocks, nil
}

// startsItem reports whether tokens[i] begins a new top-level item: it is the
// first token, or follows the end of an item or an outer attribute.
func startsItem(tokens []dsl.Token, i int) bool {
	if i == 0 {
		return true
	}
	prev := tokens[i-1]
	switch {
	case prev.Is(dsl.Punct, ";"):
		return true
	case prev.IsGroup(dsl.Brace):
		return true
	case prev.IsGroup(dsl.Bracket):
		return i >= 2 && tokens[i-2].Is(dsl.Punct, "#")
	}
	return false
}
