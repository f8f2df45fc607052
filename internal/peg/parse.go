package peg

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Parse matches root against the whole of input. It returns the root of the
// concrete parse tree, or a *ParseError positioned at the furthest failure.
func Parse(root *Rule, input string) (*Node, error) {
	p := &parser{input: input}
	n, next, ok := p.match(root, 0)
	if ok && next == len(input) {
		return n, nil
	}
	if ok {
		p.fail(next, "end of input")
	}
	return nil, newParseError(input, p.farthest, p.expected)
}

type parser struct {
	input    string
	farthest int
	expected []string
}

func (p *parser) fail(pos int, what string) {
	switch {
	case pos > p.farthest:
		p.farthest = pos
		p.expected = []string{what}
	case pos == p.farthest && !slices.Contains(p.expected, what):
		p.expected = append(p.expected, what)
	}
}

func (p *parser) node(r *Rule, start, end int, children []*Node) *Node {
	return &Node{rule: r, input: p.input, start: start, end: end, children: children}
}

func (p *parser) match(r *Rule, pos int) (*Node, int, bool) {
	switch r.kind {
	case kindLit:
		if strings.HasPrefix(p.input[pos:], r.lit) {
			return p.node(r, pos, pos+len(r.lit), nil), pos + len(r.lit), true
		}
		p.fail(pos, r.name)
		return nil, pos, false

	case kindClass:
		if pos < len(p.input) {
			c, size := utf8.DecodeRuneInString(p.input[pos:])
			if c != utf8.RuneError || size > 1 {
				if r.pred(c) {
					return p.node(r, pos, pos+size, nil), pos + size, true
				}
			}
		}
		p.fail(pos, r.name)
		return nil, pos, false

	case kindSeq:
		children := make([]*Node, 0, len(r.subs))
		cur := pos
		for _, sub := range r.subs {
			n, next, ok := p.match(sub, cur)
			if !ok {
				return nil, pos, false
			}
			children = append(children, n)
			cur = next
		}
		return p.node(r, pos, cur, children), cur, true

	case kindChoice:
		for _, sub := range r.subs {
			if n, next, ok := p.match(sub, pos); ok {
				return p.node(r, pos, next, []*Node{n}), next, true
			}
		}
		return nil, pos, false

	case kindZeroOrMore, kindOneOrMore, kindRepeat:
		min, max := 0, -1
		switch r.kind {
		case kindOneOrMore:
			min = 1
		case kindRepeat:
			min, max = r.min, r.max
		}
		var children []*Node
		cur := pos
		for max < 0 || len(children) < max {
			n, next, ok := p.match(r.subs[0], cur)
			if !ok || next == cur && len(children) >= min {
				break
			}
			children = append(children, n)
			cur = next
		}
		if len(children) < min {
			return nil, pos, false
		}
		return p.node(r, pos, cur, children), cur, true

	case kindOptional:
		if n, next, ok := p.match(r.subs[0], pos); ok {
			return p.node(r, pos, next, []*Node{n}), next, true
		}
		return p.node(r, pos, pos, nil), pos, true

	case kindSepBy:
		item, sep := r.subs[0], r.subs[1]
		first, cur, ok := p.match(item, pos)
		if !ok {
			return p.node(r, pos, pos, nil), pos, true
		}
		children := []*Node{first}
		for {
			s, afterSep, ok := p.match(sep, cur)
			if !ok {
				break
			}
			n, next, ok := p.match(item, afterSep)
			if !ok {
				break
			}
			children = append(children, s, n)
			cur = next
		}
		return p.node(r, pos, cur, children), cur, true

	case kindLexeme:
		n, next, ok := p.match(r.subs[0], pos)
		if !ok {
			return nil, pos, false
		}
		end := next
		for next < len(p.input) && isSpace(rune(p.input[next])) {
			next++
		}
		return p.node(r, pos, end, []*Node{n}), next, true

	case kindAction:
		n, next, ok := p.match(r.subs[0], pos)
		if !ok {
			return nil, pos, false
		}
		wrapped := p.node(r, n.start, n.end, []*Node{n})
		wrapped.action, wrapped.hasAction = r.action, true
		return wrapped, next, true

	case kindNamed:
		far, expected := p.farthest, slices.Clone(p.expected)
		n, next, ok := p.match(r.subs[0], pos)
		if !ok && p.farthest == pos {
			if far == pos {
				p.expected = expected
			} else {
				p.expected = nil
			}
			p.fail(pos, r.name)
		}
		return n, next, ok

	case kindRef:
		if r.target == nil {
			panic(fmt.Sprintf("peg: unresolved placeholder %q", r.name))
		}
		return p.match(r.target, pos)
	}
	panic(fmt.Sprintf("peg: unknown rule kind %d", r.kind))
}
