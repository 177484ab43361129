package dsl

import (
	"fmt"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// endOfInput is reported as the found token when a block runs out of tokens.
const endOfInput = "end of input"

// LexError reports host source text that cannot be tokenized
// (unterminated literal or comment, unbalanced delimiter, stray character).
type LexError struct {
	Message string
	Pos     Position
}

func (e *LexError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

// SyntaxError reports a token that does not match the DSL grammar.
// It wraps domain.ErrGrammar.
type SyntaxError struct {
	Expected string
	Got      string
	Pos      Position
}

func (e *SyntaxError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: expected %s, got %s", e.Pos.Line, e.Pos.Column, e.Expected, e.Got)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

func (e *SyntaxError) Unwrap() error { return domain.ErrGrammar }
