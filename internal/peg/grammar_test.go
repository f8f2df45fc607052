package peg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nested builds: item = "(" item* ")"
func nested(t *testing.T) *Rule {
	t.Helper()
	g := NewGrammar("parens")
	item := g.Placeholder("item")
	g.Resolve(item, g.Action(0, Seq(Lit("("), ZeroOrMore(item), Lit(")"))))
	root, err := g.Build(item)
	require.NoError(t, err)
	return root
}

func depth(n *Node) int {
	best := 0
	for _, c := range n.Children() {
		if d := depth(c); d > best {
			best = d
		}
	}
	if _, ok := n.Action(); ok {
		return best + 1
	}
	return best
}

func TestGrammar_SelfRecursion(t *testing.T) {
	root := nested(t)

	n, err := Parse(root, "(()(()))")
	require.NoError(t, err)
	assert.Equal(t, 3, depth(n))
}

func TestGrammar_DeepNesting(t *testing.T) {
	root := nested(t)
	const levels = 5000
	input := strings.Repeat("(", levels) + strings.Repeat(")", levels)

	n, err := Parse(root, input)
	require.NoError(t, err)
	assert.Equal(t, levels, depth(n))
}

func TestGrammar_MutualRecursion(t *testing.T) {
	g := NewGrammar("ab")
	a := g.Placeholder("a")
	b := g.Placeholder("b")
	g.Resolve(a, Choice(Seq(Lit("a"), b), Lit("a")))
	g.Resolve(b, Seq(Lit("b"), a))
	root, err := g.Build(a)
	require.NoError(t, err)

	_, err = Parse(root, "ababa")
	require.NoError(t, err)
	_, err = Parse(root, "abab")
	require.Error(t, err)
}

func TestGrammar_ResolutionIsObservedByEarlierReferences(t *testing.T) {
	g := NewGrammar("late")
	ph := g.Placeholder("x")
	user := Seq(Lit("["), ph, Lit("]"))
	g.Resolve(ph, Lit("x"))
	root, err := g.Build(user)
	require.NoError(t, err)

	_, err = Parse(root, "[x]")
	require.NoError(t, err)
}

func TestGrammar_UnresolvedReference(t *testing.T) {
	g := NewGrammar("broken")
	ph := g.Placeholder("missing")
	_, err := g.Build(Seq(Lit("a"), ph))
	require.ErrorIs(t, err, ErrUnresolvedReference)
	assert.Contains(t, err.Error(), "missing")
}

func TestGrammar_DoubleResolve(t *testing.T) {
	g := NewGrammar("twice")
	ph := g.Placeholder("x")
	g.Resolve(ph, Lit("a"))
	g.Resolve(ph, Lit("b"))
	_, err := g.Build(ph)
	require.ErrorIs(t, err, ErrDoubleResolve)
}

func TestGrammar_ResolveForeignRule(t *testing.T) {
	g := NewGrammar("foreign")
	other := NewGrammar("other").Placeholder("x")
	g.Resolve(other, Lit("a"))
	g.Resolve(Lit("y"), Lit("a"))
	_, err := g.Build(Lit("a"))
	require.ErrorIs(t, err, ErrNotPlaceholder)
}

func TestGrammar_ActionOnPlaceholderIsRejected(t *testing.T) {
	g := NewGrammar("act")
	ph := g.Placeholder("x")
	r := g.Action(1, ph)
	g.Resolve(ph, Lit("a"))
	_, err := g.Build(r)
	require.ErrorIs(t, err, ErrActionOnPlaceholder)
}

func TestGrammar_CircularPlaceholders(t *testing.T) {
	g := NewGrammar("loop")
	a := g.Placeholder("a")
	b := g.Placeholder("b")
	g.Resolve(a, b)
	g.Resolve(b, a)
	_, err := g.Build(a)
	require.ErrorIs(t, err, ErrCircularReference)
}

func TestGrammar_ActionsAreRecordedSorted(t *testing.T) {
	g := NewGrammar("ids")
	g.Action(2, Lit("a"))
	g.Action(0, Lit("b"))
	g.Action(2, Lit("c"))
	assert.Equal(t, []int{0, 2}, g.Actions())
}

func TestGrammar_PlaceholderNameInParseError(t *testing.T) {
	g := NewGrammar("named")
	value := g.Placeholder("value")
	g.Resolve(value, Choice(Lit("1"), Lit("2")))
	root, err := g.Build(Seq(Lit("["), value, Lit("]")))
	require.NoError(t, err)

	_, err = Parse(root, "[x]")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Offset)
	assert.Equal(t, []string{"value"}, pe.Expected)
}

func TestGrammar_UnresolvedPlaceholderPanicsAtMatch(t *testing.T) {
	g := NewGrammar("raw")
	ph := g.Placeholder("x")
	assert.Panics(t, func() { _, _ = Parse(ph, "a") })
}

func TestGrammar_MustBuildPanics(t *testing.T) {
	g := NewGrammar("must")
	ph := g.Placeholder("x")
	assert.Panics(t, func() { g.MustBuild(ph) })
}
