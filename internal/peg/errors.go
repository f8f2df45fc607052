package peg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrDoubleResolve       = errors.New("placeholder resolved twice")
	ErrActionOnPlaceholder = errors.New("action attached to placeholder")
	ErrNotPlaceholder      = errors.New("not a placeholder of this grammar")
	ErrCircularReference   = errors.New("placeholder resolves to itself")
	ErrInvalidAction       = errors.New("invalid action id")
)

// ParseError reports input that does not match the grammar. Offset is the
// furthest position any rule failed at; Line and Column are 1-based and
// Column counts runes.
type ParseError struct {
	Offset   int
	Line     int
	Column   int
	Found    string
	Expected []string
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func newParseError(input string, offset int, expected []string) *ParseError {
	line, col := 1, 1
	for _, r := range input[:offset] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}

	found := "end of input"
	if offset < len(input) {
		r := []rune(input[offset:])[0]
		found = strconv.QuoteRune(r)
	}

	msg := "unexpected " + found
	if len(expected) > 0 {
		msg += ", expected " + joinAlternatives(expected)
	}

	return &ParseError{
		Offset:   offset,
		Line:     line,
		Column:   col,
		Found:    found,
		Expected: expected,
		Message:  msg,
	}
}

func joinAlternatives(items []string) string {
	switch len(items) {
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
