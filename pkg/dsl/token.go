package dsl

import (
	"fmt"
	"strings"
)

// Kind identifies the type of a token tree.
type Kind int

const (
	Ident   Kind = iota // [A-Za-z_][A-Za-z0-9_]*; r#name is stored as name
	Punct               // operators, '=>' and '::' are single tokens
	Literal             // strings, chars, numbers
	Group               // a delimited sequence of tokens
)

var kindNames = map[Kind]string{
	Ident:   "identifier",
	Punct:   "punctuation",
	Literal: "literal",
	Group:   "group",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Delimiter is the bracket pair enclosing a Group.
type Delimiter int

const (
	NoDelim Delimiter = iota
	Paren             // ( ... )
	Bracket           // [ ... ]
	Brace             // { ... }
)

// Open returns the opening character of the delimiter.
func (d Delimiter) Open() string {
	switch d {
	case Paren:
		return "("
	case Bracket:
		return "["
	case Brace:
		return "{"
	}
	return ""
}

// Close returns the closing character of the delimiter.
func (d Delimiter) Close() string {
	switch d {
	case Paren:
		return ")"
	case Bracket:
		return "]"
	case Brace:
		return "}"
	}
	return ""
}

// Position locates a token in host source text. The zero value means unknown.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a token tree: a leaf token or a delimited group of tokens.
type Token struct {
	Kind     Kind
	Text     string    // text of leaf tokens
	Delim    Delimiter // set for groups
	Children []Token   // set for groups
	Pos      Position
}

// NewIdent returns an identifier token.
func NewIdent(name string) Token {
	return Token{Kind: Ident, Text: name}
}

// NewPunct returns a punctuation token.
func NewPunct(op string) Token {
	return Token{Kind: Punct, Text: op}
}

// NewLiteral returns a literal token with its source text.
func NewLiteral(text string) Token {
	return Token{Kind: Literal, Text: text}
}

// NewGroup returns a group token.
func NewGroup(delim Delimiter, children ...Token) Token {
	return Token{Kind: Group, Delim: delim, Children: children}
}

// Is reports whether t is a leaf of the given kind with the given text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsGroup reports whether t is a group with the given delimiter.
func (t Token) IsGroup(delim Delimiter) bool {
	return t.Kind == Group && t.Delim == delim
}

// String renders the token back to source-like text.
func (t Token) String() string {
	if t.Kind != Group {
		return t.Text
	}
	parts := make([]string, len(t.Children))
	for i, c := range t.Children {
		parts[i] = c.String()
	}
	return t.Delim.Open() + strings.Join(parts, " ") + t.Delim.Close()
}

// describe is the form used in error messages.
func (t Token) describe() string {
	if t.Kind == Group {
		return fmt.Sprintf("'%s...%s' group", t.Delim.Open(), t.Delim.Close())
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
