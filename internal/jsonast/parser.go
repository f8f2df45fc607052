package jsonast

import (
	"log/slog"

	"github.com/chriserin/pegast/internal/ast"
	"github.com/chriserin/pegast/internal/eval"
	"github.com/chriserin/pegast/internal/peg"
)

var language = mustLanguage()

func grammar() (*peg.Rule, []int) {
	g := peg.NewGrammar("json")
	value := g.Placeholder("value")

	comma := peg.Lexeme(peg.Lit(","))
	digit := peg.Range('0', '9')

	escape := peg.Seq(peg.Lit(`\`), peg.Choice(
		peg.AnyOf(`"\/bfnrt`),
		peg.Seq(peg.Lit("u"), peg.Repeat(peg.Class("hex digit", isHex), 4, 4)),
	))
	char := peg.Class("string character", func(r rune) bool {
		return r >= 0x20 && r != '"' && r != '\\'
	})
	str := peg.Lexeme(g.Action(int(actString), peg.Named("string",
		peg.Seq(peg.Lit(`"`), peg.ZeroOrMore(peg.Choice(escape, char)), peg.Lit(`"`)))))

	integer := peg.Seq(
		peg.Optional(peg.Lit("-")),
		peg.Choice(peg.Lit("0"), peg.Seq(peg.Range('1', '9'), peg.ZeroOrMore(digit))),
	)
	frac := peg.Seq(peg.Lit("."), peg.OneOrMore(digit))
	exp := peg.Seq(peg.AnyOf("eE"), peg.Optional(peg.AnyOf("+-")), peg.OneOrMore(digit))
	number := peg.Lexeme(g.Action(int(actNumber), peg.Seq(integer, peg.Optional(frac), peg.Optional(exp))))

	boolean := peg.Lexeme(g.Action(int(actBoolean), peg.Choice(peg.Lit("true"), peg.Lit("false"))))
	null := peg.Lexeme(g.Action(int(actNull), peg.Lit("null")))

	array := g.Action(int(actArray), peg.Seq(
		peg.Lexeme(peg.Lit("[")),
		g.Action(int(actElements), peg.SepBy(value, comma)),
		peg.Lexeme(peg.Lit("]")),
	))

	member := g.Action(int(actMember), peg.Seq(str, peg.Lexeme(peg.Lit(":")), value))
	object := g.Action(int(actObject), peg.Seq(
		peg.Lexeme(peg.Lit("{")),
		g.Action(int(actMembers), peg.SepBy(member, comma)),
		peg.Lexeme(peg.Lit("}")),
	))

	g.Resolve(value, peg.Choice(object, array, str, number, boolean, null))
	return g.MustBuild(peg.Seq(peg.Whitespace(), value)), g.Actions()
}

func mustLanguage() *eval.Language[action, Node] {
	root, ids := grammar()
	lang, err := eval.NewLanguage("json", root, ids, newRegistry)
	if err != nil {
		panic(err)
	}
	return lang
}

// Parser parses JSON documents.
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

// WithTracker records every node allocation and release in tr.
func (p *Parser) WithTracker(tr *ast.Tracker) *Parser {
	p.tracker = tr
	return p
}

// Parse parses input. On failure the caller should call Cleanup on the
// result; on success it owns Root and may release it with Free.
func (p *Parser) Parse(input string) *eval.Result[Node] {
	return p.lang.Run(input, p.tracker)
}

// Parse parses input with a default Parser.
func Parse(input string) *eval.Result[Node] {
	return NewParser().Parse(input)
}
