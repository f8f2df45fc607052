package peg

import (
	"strconv"
	"strings"
)

type ruleKind int

const (
	kindLit ruleKind = iota
	kindClass
	kindSeq
	kindChoice
	kindZeroOrMore
	kindOneOrMore
	kindOptional
	kindRepeat
	kindSepBy
	kindLexeme
	kindAction
	kindNamed
	kindRef
)

// Rule is a node of the grammar graph. Rules are immutable once built, except
// for placeholders which are resolved exactly once.
type Rule struct {
	name   string
	kind   ruleKind
	lit    string
	pred   func(rune) bool
	subs   []*Rule
	min    int
	max    int
	action int
	target *Rule
}

func (r *Rule) Name() string { return r.name }

// IsPlaceholder reports whether r is a forward reference.
func (r *Rule) IsPlaceholder() bool { return r.kind == kindRef }

// Lit matches s exactly.
func Lit(s string) *Rule {
	return &Rule{name: strconv.Quote(s), kind: kindLit, lit: s}
}

// Class matches a single rune for which pred returns true. name is used in
// error messages.
func Class(name string, pred func(rune) bool) *Rule {
	return &Rule{name: name, kind: kindClass, pred: pred}
}

// Range matches a single rune in [lo, hi].
func Range(lo, hi rune) *Rule {
	return Class(strconv.QuoteRune(lo)+"-"+strconv.QuoteRune(hi), func(r rune) bool {
		return r >= lo && r <= hi
	})
}

// AnyOf matches a single rune contained in chars.
func AnyOf(chars string) *Rule {
	return Class("one of "+strconv.Quote(chars), func(r rune) bool {
		return strings.ContainsRune(chars, r)
	})
}

// NoneOf matches a single rune not contained in chars.
func NoneOf(chars string) *Rule {
	return Class("none of "+strconv.Quote(chars), func(r rune) bool {
		return !strings.ContainsRune(chars, r)
	})
}

func Seq(rules ...*Rule) *Rule {
	return &Rule{name: "sequence", kind: kindSeq, subs: rules}
}

// Choice tries each alternative in order and commits to the first match.
func Choice(rules ...*Rule) *Rule {
	return &Rule{name: "choice", kind: kindChoice, subs: rules}
}

func ZeroOrMore(r *Rule) *Rule {
	return &Rule{name: r.name + "*", kind: kindZeroOrMore, subs: []*Rule{r}}
}

func OneOrMore(r *Rule) *Rule {
	return &Rule{name: r.name + "+", kind: kindOneOrMore, subs: []*Rule{r}}
}

func Optional(r *Rule) *Rule {
	return &Rule{name: r.name + "?", kind: kindOptional, subs: []*Rule{r}}
}

// Repeat matches r at least min and at most max times. A negative max means
// no upper bound.
func Repeat(r *Rule, min, max int) *Rule {
	return &Rule{name: r.name + "{" + strconv.Itoa(min) + "," + strconv.Itoa(max) + "}", kind: kindRepeat, subs: []*Rule{r}, min: min, max: max}
}

// SepBy matches zero or more items separated by sep. A trailing separator is
// not consumed.
func SepBy(item, sep *Rule) *Rule {
	return &Rule{name: item.name + " list", kind: kindSepBy, subs: []*Rule{item, sep}}
}

// Lexeme matches r and then skips any JSON whitespace that follows it. The
// node it produces spans r only.
func Lexeme(r *Rule) *Rule {
	return &Rule{name: r.name, kind: kindLexeme, subs: []*Rule{r}}
}

// Whitespace matches zero or more space, tab, carriage return or line feed
// characters.
func Whitespace() *Rule {
	return ZeroOrMore(Class("whitespace", isSpace))
}

// WithAction attaches an action id to r. Prefer Grammar.Action, which also
// records the id for the registry check.
func WithAction(r *Rule, id int) *Rule {
	return &Rule{name: r.name, kind: kindAction, subs: []*Rule{r}, action: id}
}

// Named labels r so that a failure at its start is reported as "expected
// name" instead of listing every primitive r could have begun with.
func Named(name string, r *Rule) *Rule {
	return &Rule{name: name, kind: kindNamed, subs: []*Rule{r}}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
