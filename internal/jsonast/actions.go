package jsonast

import (
	"errors"
	"strconv"

	"github.com/chriserin/pegast/internal/ast"
	"github.com/chriserin/pegast/internal/eval"
	"github.com/chriserin/pegast/internal/peg"
)

type action int

const (
	actString action = iota
	actNumber
	actBoolean
	actNull
	actElements
	actArray
	actMember
	actMembers
	actObject
	numActions
)

type ctx = eval.Context[Node]

func newRegistry() (*eval.Registry[action, Node], error) {
	r := eval.NewRegistry[action, Node](numActions)
	for id, fn := range map[action]eval.Action[Node]{
		actString:   buildString,
		actNumber:   buildNumber,
		actBoolean:  buildBoolean,
		actNull:     buildNull,
		actElements: buildList,
		actArray:    promoteTo(KindArray),
		actMember:   buildMember,
		actMembers:  buildList,
		actObject:   promoteTo(KindObject),
	} {
		if err := r.Register(id, fn); err != nil {
			return nil, err
		}
	}
	if err := r.SetFreeHook(Free); err != nil {
		return nil, err
	}
	return r, r.Seal()
}

func tracker(user any) *ast.Tracker {
	tr, _ := user.(*ast.Tracker)
	return tr
}

// expect frees every child and fails unless there are exactly want.
func expect(c *ctx, n *peg.Node, children []Node, want int) bool {
	if len(children) == want {
		return true
	}
	c.Free(children...)
	c.Fail("%s: expected %d child results, got %d", n.RuleName(), want, len(children))
	return false
}

func buildString(c *ctx, n *peg.Node, children []Node, user any) {
	if !expect(c, n, children, 0) {
		return
	}
	s, err := unquote(n.Text())
	if err != nil {
		c.Fail("string at offset %d: %v", n.Offset(), err)
		return
	}
	c.Push(NewString(tracker(user), s))
}

func buildNumber(c *ctx, n *peg.Node, children []Node, user any) {
	if !expect(c, n, children, 0) {
		return
	}
	f, err := strconv.ParseFloat(n.Text(), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			c.Fail("number %s is out of range", n.Text())
		} else {
			c.Fail("invalid number %s", n.Text())
		}
		return
	}
	c.Push(NewNumber(tracker(user), f))
}

func buildBoolean(c *ctx, n *peg.Node, children []Node, user any) {
	if !expect(c, n, children, 0) {
		return
	}
	switch n.Text() {
	case "true":
		c.Push(NewBoolean(tracker(user), true))
	case "false":
		c.Push(NewBoolean(tracker(user), false))
	default:
		c.Fail("unsupported boolean literal %q", n.Text())
	}
}

func buildNull(c *ctx, n *peg.Node, children []Node, user any) {
	if !expect(c, n, children, 0) {
		return
	}
	if n.Text() != "null" {
		c.Fail("unsupported null literal %q", n.Text())
		return
	}
	c.Push(NewNull(tracker(user)))
}

// buildList accumulates any number of children, including none.
func buildList(c *ctx, _ *peg.Node, children []Node, user any) {
	l := NewList(tracker(user))
	for _, child := range children {
		l.Items.Append(child)
	}
	c.Push(l)
}

func promoteTo(kind Kind) eval.Action[Node] {
	return func(c *ctx, n *peg.Node, children []Node, _ any) {
		if !expect(c, n, children, 1) {
			return
		}
		promoted, err := Promote(children[0], kind)
		if err != nil {
			c.Free(children[0])
			c.Fail("%s: %v", kind, err)
			return
		}
		c.Push(promoted)
	}
}

func buildMember(c *ctx, n *peg.Node, children []Node, user any) {
	if !expect(c, n, children, 2) {
		return
	}
	key, ok := children[0].(*String)
	if !ok {
		c.Free(children...)
		c.Fail("member key is %s, want string", kindOf(children[0]))
		return
	}
	// detach the payload so freeing the transient key node cannot touch it
	name := key.Value
	key.Value = ""
	Free(key)
	c.Push(NewMember(tracker(user), name, children[1]))
}
