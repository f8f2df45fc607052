// Package jsonptr parses RFC 6901 JSON Pointers into a token-list AST and
// resolves them against documents from package jsonast.
package jsonptr

import (
	"fmt"

	"github.com/chriserin/pegast/internal/ast"
)

type Kind int

const (
	KindChar Kind = iota
	KindString
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindList:
		return "list"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is one of *Char, *String or *List.
type Node interface {
	Kind() Kind
	alloc() *header
}

type header struct {
	id uint64
	tr *ast.Tracker
}

func (h *header) alloc() *header { return h }

// Char is a single decoded character of a reference token.
type Char struct {
	header
	Value rune
}

// String is a decoded reference token.
type String struct {
	header
	Value string
}

// List is the sequence of reference tokens of a pointer.
type List struct {
	header
	Items *ast.List[Node]
}

func (*Char) Kind() Kind   { return KindChar }
func (*String) Kind() Kind { return KindString }
func (*List) Kind() Kind   { return KindList }

func NewChar(tr *ast.Tracker, r rune) *Char {
	return &Char{header: header{id: tr.Alloc(), tr: tr}, Value: r}
}

func NewString(tr *ast.Tracker, s string) *String {
	return &String{header: header{id: tr.Alloc(), tr: tr}, Value: s}
}

func NewList(tr *ast.Tracker) *List {
	return &List{header: header{id: tr.Alloc(), tr: tr}, Items: ast.NewList[Node]()}
}

// Free releases n and, for a List, every token it owns.
func Free(n Node) {
	if n == nil {
		return
	}
	if l, ok := n.(*List); ok {
		for _, it := range l.Items.Take().All() {
			Free(it)
		}
	}
	h := n.alloc()
	h.tr.Release(h.id)
}

// Tokens returns the decoded reference tokens of a pointer AST.
func Tokens(n Node) ([]string, error) {
	l, ok := n.(*List)
	if !ok {
		return nil, fmt.Errorf("pointer root is %v, want list", kindOf(n))
	}
	out := make([]string, 0, l.Items.Len())
	for i, it := range l.Items.All() {
		s, ok := it.(*String)
		if !ok {
			return nil, fmt.Errorf("token %d is %v, want string", i, kindOf(it))
		}
		out = append(out, s.Value)
	}
	return out, nil
}

// Describe renders n in constructor notation, e.g. List([String("a/b")]).
func Describe(n Node) string {
	switch v := n.(type) {
	case *Char:
		return fmt.Sprintf("Char(%q)", v.Value)
	case *String:
		return fmt.Sprintf("String(%q)", v.Value)
	case *List:
		s := "List(["
		for i, it := range v.Items.All() {
			if i > 0 {
				s += ", "
			}
			s += Describe(it)
		}
		return s + "])"
	}
	return "<nil>"
}

func kindOf(n Node) any {
	if n == nil {
		return "nil"
	}
	return n.Kind()
}
