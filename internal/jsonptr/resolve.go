package jsonptr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chriserin/pegast/internal/jsonast"
)

var (
	ErrNotFound     = errors.New("member not found")
	ErrIndex        = errors.New("invalid array index")
	ErrNotContainer = errors.New("cannot descend into scalar")
)

// Format renders tokens as a pointer string, escaping "~" and "/".
func Format(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		t = strings.ReplaceAll(t, "~", "~0")
		b.WriteString(strings.ReplaceAll(t, "/", "~1"))
	}
	return b.String()
}

// Resolve walks doc along tokens. An empty token list refers to doc itself.
// Objects with repeated keys resolve to the last member.
func Resolve(tokens []string, doc jsonast.Node) (jsonast.Node, error) {
	cur := doc
	for i, tok := range tokens {
		at := Format(tokens[:i+1])
		switch v := cur.(type) {
		case *jsonast.Object:
			next, ok := v.Get(tok)
			if !ok {
				return nil, fmt.Errorf("%s: %w", at, ErrNotFound)
			}
			cur = next
		case *jsonast.Array:
			idx, err := arrayIndex(tok, v.Len())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", at, err)
			}
			cur = v.Items.Slice()[idx]
		default:
			return nil, fmt.Errorf("%s: %w %v", at, ErrNotContainer, kindName(cur))
		}
	}
	return cur, nil
}

func arrayIndex(tok string, n int) (int, error) {
	if tok == "-" {
		return 0, fmt.Errorf("%w: \"-\" refers past the last element", ErrIndex)
	}
	if tok == "" || len(tok) > 1 && tok[0] == '0' || strings.TrimLeft(tok, "0123456789") != "" {
		return 0, fmt.Errorf("%w: %q", ErrIndex, tok)
	}
	idx, err := strconv.Atoi(tok)
	if err != nil || idx >= n {
		return 0, fmt.Errorf("%w: %s out of range for length %d", ErrIndex, tok, n)
	}
	return idx, nil
}

func kindName(n jsonast.Node) string {
	if n == nil {
		return "nil"
	}
	return n.Kind().String()
}
