package peg

import (
	"errors"
	"fmt"
	"slices"
)

// Grammar collects placeholders and action ids while rules are composed so
// that Build can verify every forward reference was resolved.
type Grammar struct {
	name         string
	placeholders []*Rule
	actions      []int
	errs         []error
}

func NewGrammar(name string) *Grammar {
	return &Grammar{name: name}
}

func (g *Grammar) Name() string { return g.name }

// Placeholder returns a content-less rule that can be referenced right away
// and resolved later. Failures at its start are reported as "expected name".
func (g *Grammar) Placeholder(name string) *Rule {
	r := &Rule{name: name, kind: kindRef}
	g.placeholders = append(g.placeholders, r)
	return r
}

// Resolve makes ph delegate to body. Every existing reference to ph observes
// the resolution.
func (g *Grammar) Resolve(ph, body *Rule) {
	switch {
	case ph == nil || ph.kind != kindRef || !slices.Contains(g.placeholders, ph):
		g.errs = append(g.errs, fmt.Errorf("%w: %v", ErrNotPlaceholder, ruleName(ph)))
	case ph.target != nil:
		g.errs = append(g.errs, fmt.Errorf("%w: %s", ErrDoubleResolve, ph.name))
	case body == nil:
		g.errs = append(g.errs, fmt.Errorf("%w: %s resolved to nil", ErrUnresolvedReference, ph.name))
	default:
		ph.target = Named(ph.name, body)
	}
}

// Action attaches id to r and records it. Actions belong on built rules;
// attaching one to a placeholder is reported by Build.
func (g *Grammar) Action(id int, r *Rule) *Rule {
	if r.kind == kindRef {
		g.errs = append(g.errs, fmt.Errorf("%w: %s", ErrActionOnPlaceholder, r.name))
	}
	if id < 0 {
		g.errs = append(g.errs, fmt.Errorf("%w: %d", ErrInvalidAction, id))
	}
	if !slices.Contains(g.actions, id) {
		g.actions = append(g.actions, id)
	}
	return WithAction(r, id)
}

// Actions returns the sorted action ids attached through this grammar.
func (g *Grammar) Actions() []int {
	ids := slices.Clone(g.actions)
	slices.Sort(ids)
	return ids
}

// Build finishes assembly and returns root. It reports every assembly
// error, including placeholders that were never resolved.
func (g *Grammar) Build(root *Rule) (*Rule, error) {
	errs := slices.Clone(g.errs)
	for _, ph := range g.placeholders {
		if ph.target == nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnresolvedReference, ph.name))
			continue
		}
		if resolvesToSelf(ph) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrCircularReference, ph.name))
		}
	}
	if root == nil {
		errs = append(errs, fmt.Errorf("grammar %s: nil root rule", g.name))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("grammar %s: %w", g.name, errors.Join(errs...))
	}
	return root, nil
}

// MustBuild is like Build but panics on error. Use it for grammars defined
// at package initialization.
func (g *Grammar) MustBuild(root *Rule) *Rule {
	r, err := g.Build(root)
	if err != nil {
		panic(err)
	}
	return r
}

// resolvesToSelf follows a chain of placeholders that resolve directly to
// other placeholders.
func resolvesToSelf(ph *Rule) bool {
	seen := map[*Rule]bool{ph: true}
	cur := ph.target
	for cur != nil {
		if cur.kind == kindNamed {
			cur = cur.subs[0]
		}
		if cur.kind != kindRef {
			return false
		}
		if seen[cur] {
			return true
		}
		seen[cur] = true
		cur = cur.target
	}
	return false
}

func ruleName(r *Rule) string {
	if r == nil {
		return "<nil>"
	}
	return r.name
}
