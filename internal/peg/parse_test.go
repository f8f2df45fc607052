package peg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digit() *Rule { return Range('0', '9') }

func TestParse_Literal(t *testing.T) {
	n, err := Parse(Lit("abc"), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", n.Text())
	assert.Equal(t, 3, n.Len())
	assert.Empty(t, n.Children())
}

func TestParse_MustConsumeAllInput(t *testing.T) {
	_, err := Parse(Lit("ab"), "abc")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Offset)
	assert.Equal(t, []string{"end of input"}, pe.Expected)
	assert.Equal(t, `'c'`, pe.Found)
}

func TestParse_SequenceChildrenInOrder(t *testing.T) {
	n, err := Parse(Seq(Lit("a"), Lit("b"), Lit("c")), "abc")
	require.NoError(t, err)
	require.Len(t, n.Children(), 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, want, n.Children()[i].Text())
	}
}

func TestParse_ChoiceIsOrdered(t *testing.T) {
	r := Choice(Lit("a"), Lit("ab"))
	_, err := Parse(r, "ab")
	require.Error(t, err)

	n, err := Parse(Choice(Lit("ab"), Lit("a")), "ab")
	require.NoError(t, err)
	assert.Equal(t, "ab", n.Text())
}

func TestParse_RepetitionAndOptional(t *testing.T) {
	r := Seq(Optional(Lit("-")), OneOrMore(digit()))

	n, err := Parse(r, "-123")
	require.NoError(t, err)
	assert.Equal(t, "-123", n.Text())
	assert.Len(t, n.Children()[1].Children(), 3)

	n, err = Parse(r, "7")
	require.NoError(t, err)
	assert.Empty(t, n.Children()[0].Children())

	_, err = Parse(r, "-")
	require.Error(t, err)
}

func TestParse_BoundedRepeat(t *testing.T) {
	hex4 := Repeat(AnyOf("0123456789abcdef"), 4, 4)
	_, err := Parse(hex4, "00e9")
	require.NoError(t, err)

	_, err = Parse(hex4, "00e")
	require.Error(t, err)

	_, err = Parse(hex4, "00e9a")
	require.Error(t, err)
}

func TestParse_SepByAllowsEmptyAndRejectsTrailingSeparator(t *testing.T) {
	list := SepBy(digit(), Lit(","))

	n, err := Parse(list, "")
	require.NoError(t, err)
	assert.Empty(t, n.Children())

	n, err = Parse(list, "1,2,3")
	require.NoError(t, err)
	assert.Len(t, n.Children(), 5)

	_, err = Parse(list, "1,2,")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 4, pe.Offset)
}

func TestParse_LexemeSpanExcludesWhitespace(t *testing.T) {
	r := Seq(Lexeme(Lit("a")), Lexeme(Lit("b")))
	n, err := Parse(r, "a \n\tb  ")
	require.NoError(t, err)
	assert.Equal(t, "a", n.Children()[0].Text())
	assert.Equal(t, "b", n.Children()[1].Text())
}

func TestParse_ClassIsRuneAware(t *testing.T) {
	r := OneOrMore(NoneOf("/"))
	n, err := Parse(r, "héllo✓")
	require.NoError(t, err)
	assert.Len(t, n.Children(), 6)
	assert.Equal(t, "✓", n.Children()[5].Text())
}

func TestParse_ActionIsCopiedToNode(t *testing.T) {
	n, err := Parse(WithAction(Lit("x"), 3), "x")
	require.NoError(t, err)
	id, ok := n.Action()
	assert.True(t, ok)
	assert.Equal(t, 3, id)

	_, ok = n.Children()[0].Action()
	assert.False(t, ok)
}

func TestParseError_LineAndColumn(t *testing.T) {
	r := Seq(Lit("a\n"), Lit("bc"), Lit("d"))
	_, err := Parse(r, "a\nbcx")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 4, pe.Offset)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, 3, pe.Column)
	assert.Equal(t, `2:3: unexpected 'x', expected "d"`, pe.Error())
}

func TestParseError_ListsAlternatives(t *testing.T) {
	_, err := Parse(Choice(Lit("a"), Lit("b"), Lit("c")), "z")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{`"a"`, `"b"`, `"c"`}, pe.Expected)
	assert.True(t, strings.HasSuffix(pe.Message, `expected "a", "b" or "c"`))
}

func TestParseError_EndOfInput(t *testing.T) {
	_, err := Parse(Seq(Lit("ab"), Lit("c")), "ab")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "end of input", pe.Found)
	assert.Equal(t, 2, pe.Offset)
	assert.False(t, errors.Is(err, ErrUnresolvedReference))
}
