package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes filter and order expressions.
type Lexer struct {
	input string
	pos   int
	kind  error // sentinel wrapped by lexing errors
}

// NewLexer creates a lexer for the given input. Errors it reports wrap kind.
func NewLexer(input string, kind error) *Lexer {
	return &Lexer{input: input, kind: kind}
}

// Tokenize scans the whole input. The final token is always TokenEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(offset int) rune {
	p := l.pos + offset
	if p >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[p:])
	return r
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipWhitespace()
	start := l.pos
	if start >= len(l.input) {
		return Token{Type: TokenEOF, Pos: start}, nil
	}

	r := l.peek()
	switch {
	case r == '\'' || r == '"':
		return l.scanString(start)
	case isDigit(r), r == '-' && isDigit(l.peekAt(1)), r == '.' && isDigit(l.peekAt(1)):
		return l.scanNumber(start), nil
	case isIdentStart(r):
		return l.scanIdent(start), nil
	}

	two := func(t TokenType, lit string) (Token, error) {
		l.advance()
		l.advance()
		return Token{Type: t, Literal: lit, Pos: start}, nil
	}
	switch {
	case r == '!' && l.peekAt(1) == '=':
		return two(TokenNEQ, "!=")
	case r == '<' && l.peekAt(1) == '>':
		return two(TokenNEQ, "<>")
	case r == '<' && l.peekAt(1) == '=':
		return two(TokenLTE, "<=")
	case r == '>' && l.peekAt(1) == '=':
		return two(TokenGTE, ">=")
	}

	l.advance()
	one := func(t TokenType) (Token, error) {
		return Token{Type: t, Literal: string(r), Pos: start}, nil
	}
	switch r {
	case '=':
		return one(TokenEQ)
	case '<':
		return one(TokenLT)
	case '>':
		return one(TokenGT)
	case ',':
		return one(TokenComma)
	case '(':
		return one(TokenLParen)
	case ')':
		return one(TokenRParen)
	}
	return Token{}, newParseErrorf(l.kind, start, "unexpected character %q", r)
}

// scanString reads a quoted literal. A doubled quote inside the literal
// stands for one quote character, as in SQL.
func (l *Lexer) scanString(start int) (Token, error) {
	quote := l.advance()
	var b strings.Builder
	for l.pos < len(l.input) {
		r := l.advance()
		if r == quote {
			if l.peek() == quote {
				l.advance()
				b.WriteRune(quote)
				continue
			}
			return Token{Type: TokenString, Literal: b.String(), Pos: start}, nil
		}
		b.WriteRune(r)
	}
	return Token{}, newParseError(l.kind, start, "unterminated string")
}

// scanNumber reads a bare numeric or date-like value such as 4.5 or
// 01/11/2022. Validation of the value happens later against the column kind.
func (l *Lexer) scanNumber(start int) Token {
	l.advance()
	for l.pos < len(l.input) {
		r := l.peek()
		if !isDigit(r) && r != '.' && r != '/' && r != '-' {
			break
		}
		l.advance()
	}
	return Token{Type: TokenNumber, Literal: l.input[start:l.pos], Pos: start}
}

func (l *Lexer) scanIdent(start int) Token {
	for l.pos < len(l.input) && isIdentPart(l.peek()) {
		l.advance()
	}
	lit := l.input[start:l.pos]
	return Token{Type: LookupKeyword(lit), Literal: lit, Pos: start}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
