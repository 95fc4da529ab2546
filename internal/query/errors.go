package query

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// Builder errors.
var (
	ErrUnknownColumn  = errors.New("unknown column")
	ErrInvalidFilter  = errors.New("invalid filter")
	ErrInvalidOrderBy = errors.New("invalid order")
)

// ParseError reports a malformed expression with the byte offset at which
// parsing stopped. It unwraps to ErrInvalidFilter or ErrInvalidOrderBy.
type ParseError struct {
	Kind    error
	Message string
	Pos     int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %s at position %d", e.Kind, e.Message, e.Pos+1)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func newParseError(kind error, pos int, msg string) *ParseError {
	return &ParseError{Kind: kind, Message: msg, Pos: pos}
}

func newParseErrorf(kind error, pos int, format string, args ...any) *ParseError {
	return newParseError(kind, pos, fmt.Sprintf(format, args...))
}

// maxSuggestDistance caps how far a suggestion may be from the input.
const maxSuggestDistance = 2

// Suggest returns the candidate closest to input by edit distance, or ""
// when nothing is within reach. Reach shrinks with short input: one edit per
// three characters, up to maxSuggestDistance.
func Suggest(input string, candidates []string) string {
	best := ""
	bestDist := min(maxSuggestDistance, utf8.RuneCountInString(input)/3) + 1
	for _, c := range candidates {
		if d := levenshtein.Distance(input, c, nil); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func unknownColumnError(column string, candidates []string) error {
	if s := Suggest(column, candidates); s != "" {
		return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownColumn, column, s)
	}
	return fmt.Errorf("%w %q", ErrUnknownColumn, column)
}
