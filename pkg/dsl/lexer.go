package dsl

import (
	"bytes"
	"fmt"
	"strings"
)

// multiPunct lists the operators scanned as a single token, longest first.
var multiPunct = []string{
	"...", "..=", "<<=", ">>=",
	"=>", "->", "<-", "::", "==", "!=", "<=", ">=", "&&", "||",
	"+=", "-=", "*=", "/=", "%=", "^=", "&=", "|=", "<<", ">>", "..",
}

const singlePunct = "!#$%&*+,-./:;<=>?@^|~"

// Lexer turns host source text into token trees.
type Lexer struct {
	src  []byte
	pos  int // current byte offset
	line int // current line (1-based)
	col  int // current column (1-based)
}

// NewLexer creates a new Lexer for the given source bytes.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Lex tokenizes src into a sequence of token trees.
// Returns a *LexError on malformed input.
func Lex(src []byte) ([]Token, error) {
	return NewLexer(src).Tokens()
}

// Tokens scans the whole input. Every delimiter must be balanced.
func (l *Lexer) Tokens() ([]Token, error) {
	return l.scanTrees(NoDelim, Position{})
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && !l.atEnd(); i++ {
		l.advance()
	}
}

func (l *Lexer) errorf(pos Position, format string, args ...any) *LexError {
	return &LexError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// scanTrees reads tokens until the closing delimiter of the enclosing group,
// or until end of input at the top level.
func (l *Lexer) scanTrees(closing Delimiter, openPos Position) ([]Token, error) {
	var tokens []Token
	for {
		if err := l.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
		if l.atEnd() {
			if closing != NoDelim {
				return nil, l.errorf(openPos, "unclosed '%s'", closing.Open())
			}
			return tokens, nil
		}

		pos := l.currentPos()
		ch := l.peek()

		if delim := openingDelim(ch); delim != NoDelim {
			l.advance()
			children, err := l.scanTrees(delim, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Kind: Group, Delim: delim, Children: children, Pos: pos})
			continue
		}

		if delim := closingDelim(ch); delim != NoDelim {
			if delim != closing {
				if closing == NoDelim {
					return nil, l.errorf(pos, "unexpected '%c'", ch)
				}
				return nil, l.errorf(pos, "mismatched '%c', expected '%s'", ch, closing.Close())
			}
			l.advance()
			return tokens, nil
		}

		tok, err := l.scanLeaf()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

func openingDelim(ch byte) Delimiter {
	switch ch {
	case '(':
		return Paren
	case '[':
		return Bracket
	case '{':
		return Brace
	}
	return NoDelim
}

func closingDelim(ch byte) Delimiter {
	switch ch {
	case ')':
		return Paren
	case ']':
		return Bracket
	case '}':
		return Brace
	}
	return NoDelim
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for !l.atEnd() {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '/' && l.peekAt(1) == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekAt(1) == '*':
			// Block comments nest.
			startPos := l.currentPos()
			l.advanceN(2)
			depth := 1
			for depth > 0 {
				if l.atEnd() {
					return l.errorf(startPos, "unterminated block comment")
				}
				switch {
				case l.peek() == '/' && l.peekAt(1) == '*':
					l.advanceN(2)
					depth++
				case l.peek() == '*' && l.peekAt(1) == '/':
					l.advanceN(2)
					depth--
				default:
					l.advance()
				}
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) scanLeaf() (Token, error) {
	pos := l.currentPos()
	ch := l.peek()

	switch {
	case ch == '"':
		return l.scanString(pos, 0)
	case ch == '\'':
		return l.scanQuote(pos)
	case ch == 'b' && l.peekAt(1) == '"':
		return l.scanString(pos, 1)
	case ch == 'b' && l.peekAt(1) == '\'':
		l.advance()
		tok, err := l.scanQuote(pos)
		if err != nil {
			return Token{}, err
		}
		tok.Text = "b" + tok.Text
		return tok, nil
	case ch == 'r' && isRawStringStart(l.src[l.pos+1:]):
		return l.scanRawString(pos, 1)
	case ch == 'b' && l.peekAt(1) == 'r' && isRawStringStart(l.src[l.pos+2:]):
		return l.scanRawString(pos, 2)
	case ch == 'r' && l.peekAt(1) == '#' && isIdentStart(l.peekAt(2)):
		l.advanceN(2)
		return l.scanIdentifier(pos), nil
	case isDigit(ch):
		return l.scanNumber(pos), nil
	case isIdentStart(ch):
		return l.scanIdentifier(pos), nil
	}

	for _, op := range multiPunct {
		if bytes.HasPrefix(l.src[l.pos:], []byte(op)) {
			l.advanceN(len(op))
			return Token{Kind: Punct, Text: op, Pos: pos}, nil
		}
	}
	if strings.IndexByte(singlePunct, ch) >= 0 {
		l.advance()
		return Token{Kind: Punct, Text: string(ch), Pos: pos}, nil
	}

	l.advance()
	return Token{}, l.errorf(pos, "unexpected character %q", ch)
}

// scanString scans a double-quoted string; prefix is the length of a 'b' or similar prefix.
func (l *Lexer) scanString(pos Position, prefix int) (Token, error) {
	start := l.pos
	l.advanceN(prefix + 1)
	for {
		if l.atEnd() {
			return Token{}, l.errorf(pos, "unterminated string")
		}
		ch := l.advance()
		if ch == '"' {
			break
		}
		if ch == '\\' {
			if l.atEnd() {
				return Token{}, l.errorf(pos, "unterminated string escape")
			}
			l.advance()
		}
	}
	l.skipSuffix()
	return Token{Kind: Literal, Text: string(l.src[start:l.pos]), Pos: pos}, nil
}

func isRawStringStart(rest []byte) bool {
	i := 0
	for i < len(rest) && rest[i] == '#' {
		i++
	}
	return i < len(rest) && rest[i] == '"'
}

// scanRawString scans r"..." and r#"..."# forms, any number of hashes.
func (l *Lexer) scanRawString(pos Position, prefix int) (Token, error) {
	start := l.pos
	l.advanceN(prefix)
	hashes := 0
	for l.peek() == '#' {
		l.advance()
		hashes++
	}
	l.advance() // opening "
	terminator := "\"" + strings.Repeat("#", hashes)
	for {
		if l.atEnd() {
			return Token{}, l.errorf(pos, "unterminated raw string")
		}
		if bytes.HasPrefix(l.src[l.pos:], []byte(terminator)) {
			l.advanceN(len(terminator))
			break
		}
		l.advance()
	}
	l.skipSuffix()
	return Token{Kind: Literal, Text: string(l.src[start:l.pos]), Pos: pos}, nil
}

// scanQuote scans either a char literal ('a', '\n', '\u{1F600}') or a lifetime
// marker. A lifetime produces a lone "'" punct; its name is scanned next as an identifier.
func (l *Lexer) scanQuote(pos Position) (Token, error) {
	start := l.pos
	if l.peekAt(1) == '\\' {
		// Opening quote, backslash and the escaped character.
		l.advanceN(3)
		for {
			if l.atEnd() || l.peek() == '\n' {
				return Token{}, l.errorf(pos, "unterminated char literal")
			}
			if l.advance() == '\'' {
				break
			}
		}
		return Token{Kind: Literal, Text: string(l.src[start:l.pos]), Pos: pos}, nil
	}

	width := runeWidth(l.peekAt(1))
	if width > 0 && l.peekAt(1+width) == '\'' {
		l.advanceN(width + 2)
		return Token{Kind: Literal, Text: string(l.src[start:l.pos]), Pos: pos}, nil
	}

	if !isIdentStart(l.peekAt(1)) {
		return Token{}, l.errorf(pos, "unterminated char literal")
	}
	l.advance()
	return Token{Kind: Punct, Text: "'", Pos: pos}, nil
}

func (l *Lexer) scanNumber(pos Position) Token {
	start := l.pos
	for !l.atEnd() {
		ch := l.peek()
		if isIdentContinue(ch) || (ch == '.' && isDigit(l.peekAt(1))) {
			l.advance()
			continue
		}
		break
	}
	return Token{Kind: Literal, Text: string(l.src[start:l.pos]), Pos: pos}
}

func (l *Lexer) scanIdentifier(pos Position) Token {
	start := l.pos
	for !l.atEnd() && isIdentContinue(l.peek()) {
		l.advance()
	}
	return Token{Kind: Ident, Text: string(l.src[start:l.pos]), Pos: pos}
}

// skipSuffix consumes a literal suffix such as the u8 in "x"u8.
func (l *Lexer) skipSuffix() {
	for !l.atEnd() && isIdentContinue(l.peek()) {
		l.advance()
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isIdentStart accepts any non-ASCII byte so UTF-8 identifiers pass through whole.
func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// runeWidth returns the byte length of the UTF-8 sequence starting with b, or 0 for b == 0.
func runeWidth(b byte) int {
	switch {
	case b == 0:
		return 0
	case b < 0x80:
		return 1
	case b>>5 == 0x6:
		return 2
	case b>>4 == 0xE:
		return 3
	default:
		return 4
	}
}
