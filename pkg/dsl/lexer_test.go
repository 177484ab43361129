package dsl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}

func TestLexTransitionLine(t *testing.T) {
	src := "A(x) => B [act], // trailing comment\n/* nested /* block */ comment */ C"
	tokens, err := Lex([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "A (x) => B [act] , C", joinTokens(tokens))
	require.Len(t, tokens, 7)

	assert.Equal(t, Ident, tokens[0].Kind)
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Pos)
	assert.True(t, tokens[1].IsGroup(Paren))
	assert.Equal(t, []Token{{Kind: Ident, Text: "x", Pos: Position{Line: 1, Column: 3, Offset: 2}}}, tokens[1].Children)
	assert.True(t, tokens[2].Is(Punct, "=>"))
	assert.True(t, tokens[4].IsGroup(Bracket))
	assert.True(t, tokens[5].Is(Punct, ","))
	assert.Equal(t, 2, tokens[6].Pos.Line)
}

func TestLexNestedGroups(t *testing.T) {
	tokens, err := Lex([]byte("{ a ( b [ c ] ) }"))
	require.NoError(t, err)
	require.Len(t, tokens, 1)

	brace := tokens[0]
	assert.True(t, brace.IsGroup(Brace))
	require.Len(t, brace.Children, 2)
	paren := brace.Children[1]
	assert.True(t, paren.IsGroup(Paren))
	require.Len(t, paren.Children, 2)
	assert.True(t, paren.Children[1].IsGroup(Bracket))
	assert.Equal(t, "{a (b [c])}", brace.String())
}

func TestLexLiterals(t *testing.T) {
	src := `"a \" b" r#"x"y"# 'c' '\'' b'z' 'a 1.5 0..3 b"bytes"`
	tokens, err := Lex([]byte(src))
	require.NoError(t, err)

	want := []struct {
		kind Kind
		text string
	}{
		{Literal, `"a \" b"`},
		{Literal, `r#"x"y"#`},
		{Literal, `'c'`},
		{Literal, `'\''`},
		{Literal, `b'z'`},
		{Punct, `'`},
		{Ident, `a`},
		{Literal, `1.5`},
		{Literal, `0`},
		{Punct, `..`},
		{Literal, `3`},
		{Literal, `b"bytes"`},
	}
	require.Len(t, tokens, len(want))
	for i, w := range want {
		assert.Equal(t, w.kind, tokens[i].Kind, "token %d", i)
		assert.Equal(t, w.text, tokens[i].Text, "token %d", i)
	}
}

func TestLexPunctuation(t *testing.T) {
	tokens, err := Lex([]byte("a::b -> c => d #[x] r#type"))
	require.NoError(t, err)
	assert.Equal(t, "a :: b -> c => d # [x] type", joinTokens(tokens))
	assert.Equal(t, Ident, tokens[len(tokens)-1].Kind)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		pos     Position
	}{
		{"mismatched close", "(a]", "mismatched ']', expected ')'", Position{Line: 1, Column: 3, Offset: 2}},
		{"unclosed group", "x (a", "unclosed '('", Position{Line: 1, Column: 3, Offset: 2}},
		{"stray close", "a }", "unexpected '}'", Position{Line: 1, Column: 3, Offset: 2}},
		{"unterminated string", `a "abc`, "unterminated string", Position{Line: 1, Column: 3, Offset: 2}},
		{"unterminated comment", "a /* x", "unterminated block comment", Position{Line: 1, Column: 3, Offset: 2}},
		{"unterminated raw string", `r#"abc"`, "unterminated raw string", Position{Line: 1, Column: 1, Offset: 0}},
		{"unknown character", "a `b`", "unexpected character '`'", Position{Line: 1, Column: 3, Offset: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex([]byte(tt.src))
			require.Error(t, err)

			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.message, lexErr.Message)
			assert.Equal(t, tt.pos, lexErr.Pos)
		})
	}
}
