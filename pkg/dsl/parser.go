package dsl

import (
	"fmt"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// Parse parses the token trees of one state machine block.
// Returns a *SyntaxError on failure; there is no partial result.
func Parse(tokens []Token) (*domain.StateMachineDef, error) {
	p := &parser{tokens: tokens}
	return p.parseBlock()
}

// ParseString lexes src and parses it as a single block body.
func ParseString(src string) (*domain.StateMachineDef, error) {
	tokens, err := Lex([]byte(src))
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

type parser struct {
	tokens []Token
	pos    int
	end    Position // reported when the tokens run out
}

// sub returns a parser over the children of a group.
func (p *parser) sub(group Token) *parser {
	return &parser{tokens: group.Children, end: group.Pos}
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peekAt(n int) (Token, bool) {
	if p.pos+n >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos+n], true
}

func (p *parser) peek() (Token, bool) {
	return p.peekAt(0)
}

func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// unexpected builds a SyntaxError against the current token.
func (p *parser) unexpected(expected string) error {
	tok, ok := p.peek()
	if !ok {
		return &SyntaxError{Expected: expected, Got: endOfInput, Pos: p.end}
	}
	return &SyntaxError{Expected: expected, Got: tok.describe(), Pos: tok.Pos}
}

func (p *parser) expectIdent() (Token, error) {
	tok, ok := p.peek()
	if !ok || tok.Kind != Ident {
		return Token{}, p.unexpected("identifier")
	}
	p.pos++
	return tok, nil
}

func (p *parser) expectPunct(op string) error {
	tok, ok := p.peek()
	if !ok || !tok.Is(Punct, op) {
		return p.unexpected(fmt.Sprintf("'%s'", op))
	}
	p.pos++
	return nil
}

func (p *parser) expectGroup(delim Delimiter) (Token, error) {
	tok, ok := p.peek()
	if !ok || !tok.IsGroup(delim) {
		return Token{}, p.unexpected(fmt.Sprintf("'%s'", delim.Open()))
	}
	p.pos++
	return tok, nil
}

func (p *parser) expectEnd(expected string) error {
	if !p.atEnd() {
		return p.unexpected(expected)
	}
	return nil
}

func (p *parser) skipPunct(op string) {
	if tok, ok := p.peek(); ok && tok.Is(Punct, op) {
		p.pos++
	}
}

// groupIdent reads the single identifier enclosed by a group.
func (p *parser) groupIdent(group Token) (string, error) {
	inner := p.sub(group)
	tok, err := inner.expectIdent()
	if err != nil {
		return "", err
	}
	if err := inner.expectEnd(fmt.Sprintf("'%s'", group.Delim.Close())); err != nil {
		return "", err
	}
	return tok.Text, nil
}

func (p *parser) parseBlock() (*domain.StateMachineDef, error) {
	def := &domain.StateMachineDef{}
	if err := p.parseHeader(def); err != nil {
		return nil, err
	}

	for !p.atEnd() {
		from, err := p.parseTransitionGroup()
		if err != nil {
			return nil, err
		}
		def.Transitions = append(def.Transitions, from)
		p.skipPunct(",")
	}
	return def, nil
}

// headerAttributes are the macro options that may carry a parenthesised
// argument list before the machine name.
var headerAttributes = map[string]bool{
	"derive": true,
	"repr":   true,
	"repr_c": true,
	"pub":    true,
}

// parseHeader reads attribute* NAME '(' INITIAL ')'.
// Attributes are #[...], a keyword from headerAttributes with an optional
// argument list, or a bare IDENT followed by another IDENT. The first other
// IDENT is the machine name, and everything after its initial state is a
// transition group.
func (p *parser) parseHeader(def *domain.StateMachineDef) error {
	for {
		tok, ok := p.peek()
		if !ok || !(tok.Kind == Ident || tok.Is(Punct, "#")) {
			return p.unexpected("identifier")
		}
		p.pos++

		if tok.Kind == Punct {
			if _, err := p.expectGroup(Bracket); err != nil {
				return err
			}
			continue
		}

		next, ok := p.peek()
		if headerAttributes[tok.Text] {
			if ok && next.IsGroup(Paren) {
				p.pos++
			}
			continue
		}
		if ok && next.Kind == Ident {
			continue
		}
		if !ok || !next.IsGroup(Paren) {
			return p.unexpected("'('")
		}
		p.pos++

		initial, err := p.groupIdent(next)
		if err != nil {
			return err
		}
		def.Name = tok.Text
		def.InitialState = initial
		return nil
	}
}

// parseTransitionGroup reads one of
//
//	FROM '(' INPUT ')' '=>' target
//	FROM '=>' '{' (INPUT '=>' target ','?)* '}'
func (p *parser) parseTransitionGroup() (domain.FromState, error) {
	fromTok, err := p.expectIdent()
	if err != nil {
		return domain.FromState{}, err
	}
	from := domain.FromState{InitialState: fromTok.Text}

	if tok, ok := p.peek(); ok && tok.IsGroup(Paren) {
		p.pos++
		input, err := p.groupIdent(tok)
		if err != nil {
			return domain.FromState{}, err
		}
		if err := p.expectPunct("=>"); err != nil {
			return domain.FromState{}, err
		}
		t, err := p.parseTarget()
		if err != nil {
			return domain.FromState{}, err
		}
		t.InputValue = input
		from.Transitions = []domain.Transition{t}
		return from, nil
	}

	if err := p.expectPunct("=>"); err != nil {
		return domain.FromState{}, err
	}
	body, err := p.expectGroup(Brace)
	if err != nil {
		return domain.FromState{}, err
	}

	inner := p.sub(body)
	for !inner.atEnd() {
		inputTok, err := inner.expectIdent()
		if err != nil {
			return domain.FromState{}, err
		}
		if err := inner.expectPunct("=>"); err != nil {
			return domain.FromState{}, err
		}
		t, err := inner.parseTarget()
		if err != nil {
			return domain.FromState{}, err
		}
		t.InputValue = inputTok.Text
		from.Transitions = append(from.Transitions, t)
		inner.skipPunct(",")
	}
	return from, nil
}

// parseTarget reads FINAL ('[' OUTPUT ']')?.
func (p *parser) parseTarget() (domain.Transition, error) {
	finalTok, err := p.expectIdent()
	if err != nil {
		return domain.Transition{}, err
	}
	t := domain.Transition{FinalState: finalTok.Text}

	if tok, ok := p.peek(); ok && tok.IsGroup(Bracket) {
		p.pos++
		output, err := p.groupIdent(tok)
		if err != nil {
			return domain.Transition{}, err
		}
		t.Output = output
	}
	return t, nil
}
