package jsonptr

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/chriserin/pegast/internal/ast"
	"github.com/chriserin/pegast/internal/eval"
	"github.com/chriserin/pegast/internal/peg"
)

type action int

const (
	actChar action = iota
	actEscape
	actToken
	actPointer
	numActions
)

type ctx = eval.Context[Node]

var language = mustLanguage()

func grammar() (*peg.Rule, []int) {
	g := peg.NewGrammar("json-pointer")
	unescaped := g.Action(int(actChar), peg.NoneOf("/~"))
	escaped := g.Action(int(actEscape), peg.Seq(peg.Lit("~"), peg.Named("'0' or '1'", peg.AnyOf("01"))))
	token := g.Action(int(actToken), peg.ZeroOrMore(peg.Choice(escaped, unescaped)))
	pointer := g.Action(int(actPointer), peg.ZeroOrMore(peg.Seq(peg.Lit("/"), token)))
	return g.MustBuild(pointer), g.Actions()
}

func newRegistry() (*eval.Registry[action, Node], error) {
	r := eval.NewRegistry[action, Node](numActions)
	for id, fn := range map[action]eval.Action[Node]{
		actChar:    buildChar,
		actEscape:  buildEscape,
		actToken:   buildToken,
		actPointer: buildPointer,
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

func mustLanguage() *eval.Language[action, Node] {
	root, ids := grammar()
	lang, err := eval.NewLanguage("json-pointer", root, ids, newRegistry)
	if err != nil {
		panic(err)
	}
	return lang
}

func tracker(user any) *ast.Tracker {
	tr, _ := user.(*ast.Tracker)
	return tr
}

func buildChar(c *ctx, n *peg.Node, children []Node, user any) {
	if len(children) != 0 {
		c.Free(children...)
		c.Fail("character: expected 0 child results, got %d", len(children))
		return
	}
	r := []rune(n.Text())
	if len(r) != 1 {
		c.Fail("character: matched %q, want one rune", n.Text())
		return
	}
	c.Push(NewChar(tracker(user), r[0]))
}

func buildEscape(c *ctx, n *peg.Node, children []Node, user any) {
	if len(children) != 0 {
		c.Free(children...)
		c.Fail("escape: expected 0 child results, got %d", len(children))
		return
	}
	switch n.Text() {
	case "~0":
		c.Push(NewChar(tracker(user), '~'))
	case "~1":
		c.Push(NewChar(tracker(user), '/'))
	default:
		c.Fail("unsupported escape %q", n.Text())
	}
}

func buildToken(c *ctx, _ *peg.Node, children []Node, user any) {
	var b strings.Builder
	for _, child := range children {
		ch, ok := child.(*Char)
		if !ok {
			c.Free(children...)
			c.Fail("token element is %v, want char", kindOf(child))
			return
		}
		b.WriteRune(ch.Value)
	}
	c.Free(children...)
	c.Push(NewString(tracker(user), b.String()))
}

func buildPointer(c *ctx, _ *peg.Node, children []Node, user any) {
	for _, child := range children {
		if _, ok := child.(*String); !ok {
			c.Free(children...)
			c.Fail("pointer element is %v, want string", kindOf(child))
			return
		}
	}
	l := NewList(tracker(user))
	for _, child := range children {
		l.Items.Append(child)
	}
	c.Push(l)
}

// Parser parses JSON Pointers.
type Parser struct {
	lang    *eval.Language[action, Node]
	tracker *ast.Tracker
}

func NewParser() *Parser {
	return &Parser{lang: language}
}

func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	p.lang = p.lang.WithLogger(logger)
	return p
}

func (p *Parser) WithObserver(o eval.Observer) *Parser {
	p.lang = p.lang.WithObserver(o)
	return p
}

func (p *Parser) WithTracker(tr *ast.Tracker) *Parser {
	p.tracker = tr
	return p
}

func (p *Parser) Parse(input string) *eval.Result[Node] {
	return p.lang.Run(input, p.tracker)
}

// ParseFragment parses the URI fragment form of a pointer, e.g. "#/a%20b".
func (p *Parser) ParseFragment(fragment string) (*eval.Result[Node], error) {
	raw, ok := strings.CutPrefix(fragment, "#")
	if !ok {
		return nil, fmt.Errorf("fragment %q does not start with #", fragment)
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding fragment %q: %w", fragment, err)
	}
	return p.Parse(decoded), nil
}

func Parse(input string) *eval.Result[Node] {
	return NewParser().Parse(input)
}
