package query

import "strings"

// TokenType identifies the kind of lexical token.
type TokenType int

const (
	TokenEOF    TokenType = iota
	TokenIdent            // column name or bare word
	TokenString           // 'quoted' or "quoted"
	TokenNumber           // 4.5, 01/11/2022, -3

	// Operators
	TokenEQ     // =
	TokenNEQ    // != or <>
	TokenLT     // <
	TokenLTE    // <=
	TokenGT     // >
	TokenGTE    // >=
	TokenComma  // ,
	TokenLParen // (
	TokenRParen // )

	// Keywords
	TokenAnd
	TokenOr
	TokenNot
	TokenLike
	TokenIs
	TokenNull
)

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenEQ:
		return "="
	case TokenNEQ:
		return "!="
	case TokenLT:
		return "<"
	case TokenLTE:
		return "<="
	case TokenGT:
		return ">"
	case TokenGTE:
		return ">="
	case TokenComma:
		return ","
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenNot:
		return "NOT"
	case TokenLike:
		return "LIKE"
	case TokenIs:
		return "IS"
	case TokenNull:
		return "NULL"
	default:
		return "unknown"
	}
}

// Token is a single lexical token of a filter or order expression.
type Token struct {
	Type    TokenType
	Literal string // raw text; quotes removed for strings
	Pos     int    // byte offset in source
}

var keywords = map[string]TokenType{
	"and":  TokenAnd,
	"or":   TokenOr,
	"not":  TokenNot,
	"like": TokenLike,
	"is":   TokenIs,
	"null": TokenNull,
}

// LookupKeyword returns the keyword token type for an identifier, or
// TokenIdent. Lookup is case-insensitive.
func LookupKeyword(ident string) TokenType {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return TokenIdent
}

// isValue reports whether the token can stand on the right of a comparison.
func (t TokenType) isValue() bool {
	return t == TokenString || t == TokenNumber || t == TokenIdent
}
