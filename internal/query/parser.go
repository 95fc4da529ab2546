package query

import "fmt"

// Parser is a recursive-descent parser over a token slice.
type Parser struct {
	tokens []Token
	pos    int
	kind   error
}

// ParseFilter parses a boolean filter expression.
//
//	filter     := or EOF
//	or         := and { OR and }
//	and        := unary { AND unary }
//	unary      := NOT unary | "(" or ")" | comparison
//	comparison := IDENT ( IS [NOT] NULL | [NOT] LIKE value | op value )
func ParseFilter(input string) (Expr, error) {
	tokens, err := NewLexer(input, ErrInvalidFilter).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens, kind: ErrInvalidFilter}
	if p.check(TokenEOF) {
		return nil, p.errorf("empty expression")
	}
	expr, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}
	if !p.check(TokenEOF) {
		return nil, p.errorf("unexpected %s", describe(p.peek()))
	}
	return expr, nil
}

// ParseOrder parses a comma-separated list of `column DIRECTION` pairs.
// Directions must be exactly ASC or DESC. Trailing commas are ignored.
func ParseOrder(input string) ([]OrderItem, error) {
	tokens, err := NewLexer(input, ErrInvalidOrderBy).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens, kind: ErrInvalidOrderBy}

	var items []OrderItem
	for !p.check(TokenEOF) {
		col := p.peek()
		if col.Type != TokenIdent {
			return nil, p.errorf("expected column name, got %s", describe(col))
		}
		p.advance()

		dir := p.peek()
		if dir.Type != TokenIdent || (dir.Literal != "ASC" && dir.Literal != "DESC") {
			return nil, p.errorf("expected ASC or DESC after %q, got %s", col.Literal, describe(dir))
		}
		p.advance()
		items = append(items, OrderItem{Column: col.Literal, ColumnPos: col.Pos, Direction: dir.Literal})

		if p.check(TokenEOF) {
			break
		}
		if !p.check(TokenComma) {
			return nil, p.errorf("expected ',' between order terms, got %s", describe(p.peek()))
		}
		p.advance()
		// Trailing separators are trimmed; an empty term in the middle is not.
		if p.check(TokenComma) {
			for p.check(TokenComma) {
				p.advance()
			}
			if !p.check(TokenEOF) {
				return nil, p.errorf("empty order term")
			}
		}
	}
	if len(items) == 0 {
		return nil, p.errorf("empty expression")
	}
	return items, nil
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) errorf(format string, args ...any) error {
	return newParseErrorf(p.kind, p.peek().Pos, format, args...)
}

func (p *Parser) parseOrExpr() (Expr, error) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	for p.check(TokenOr) {
		p.advance()
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		left = &BinaryLogicExpr{Op: LogicOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAndExpr() (Expr, error) {
	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	for p.check(TokenAnd) {
		p.advance()
		right, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		left = &BinaryLogicExpr{Op: LogicAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnaryExpr() (Expr, error) {
	switch {
	case p.check(TokenNot):
		p.advance()
		inner, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Inner: inner}, nil
	case p.check(TokenLParen):
		p.advance()
		inner, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		if !p.check(TokenRParen) {
			return nil, p.errorf("expected ')', got %s", describe(p.peek()))
		}
		p.advance()
		return inner, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Expr, error) {
	col := p.peek()
	if col.Type != TokenIdent {
		return nil, p.errorf("expected column name, got %s", describe(col))
	}
	p.advance()

	if p.check(TokenIs) {
		p.advance()
		negated := false
		if p.check(TokenNot) {
			p.advance()
			negated = true
		}
		if !p.check(TokenNull) {
			return nil, p.errorf("expected NULL after IS, got %s", describe(p.peek()))
		}
		p.advance()
		return &NullCheckExpr{Column: col.Literal, ColumnPos: col.Pos, Negated: negated}, nil
	}

	op, err := p.parseCompOp()
	if err != nil {
		return nil, err
	}
	val := p.peek()
	if !val.Type.isValue() {
		return nil, p.errorf("expected value after %s, got %s", op, describe(val))
	}
	p.advance()
	return &ComparisonExpr{
		Column:    col.Literal,
		ColumnPos: col.Pos,
		Op:        op,
		Value:     Literal{Raw: val.Literal, Quoted: val.Type == TokenString, Pos: val.Pos},
	}, nil
}

func (p *Parser) parseCompOp() (CompOp, error) {
	tok := p.advance()
	switch tok.Type {
	case TokenEQ:
		return CompEQ, nil
	case TokenNEQ:
		return CompNEQ, nil
	case TokenLT:
		return CompLT, nil
	case TokenLTE:
		return CompLTE, nil
	case TokenGT:
		return CompGT, nil
	case TokenGTE:
		return CompGTE, nil
	case TokenLike:
		return CompLike, nil
	case TokenNot:
		if p.check(TokenLike) {
			p.advance()
			return CompNotLike, nil
		}
	}
	return 0, newParseErrorf(p.kind, tok.Pos,
		"expected comparison operator (=, !=, <, <=, >, >=, LIKE, NOT LIKE, IS NULL), got %s", describe(tok))
}

func describe(tok Token) string {
	if tok.Type == TokenEOF {
		return tok.Type.String()
	}
	return fmt.Sprintf("%q", tok.Literal)
}
