package eval

import (
	"github.com/chriserin/pegast/internal/peg"
)

// Evaluate walks the parse tree rooted at root and returns the single AST
// result it produces. On failure it returns the results still on the stack;
// the caller owns them and must free them.
func (r *Registry[ID, N]) Evaluate(root *peg.Node, user any) (N, []N, error) {
	var zero N
	if !r.sealed {
		return zero, nil, ErrRegistryNotSealed
	}

	w := &walker[ID, N]{
		reg:  r,
		user: user,
		ctx:  &Context[N]{action: -1, free: r.Free},
	}
	_, ok := w.walk(root)
	stack := w.ctx.stack
	if !ok {
		return zero, stack, w.ctx.err
	}
	if len(stack) != 1 {
		return zero, stack, newBuildError(-1, "parse produced %d results, want 1", len(stack))
	}
	return stack[0], nil, nil
}

type walker[ID ~int, N any] struct {
	reg  *Registry[ID, N]
	user any
	ctx  *Context[N]
}

// walk evaluates n and returns how many results it left on the stack.
func (w *walker[ID, N]) walk(n *peg.Node) (int, bool) {
	pushed := 0
	for _, child := range n.Children() {
		k, ok := w.walk(child)
		pushed += k
		if !ok {
			return pushed, false
		}
	}

	id, ok := n.Action()
	if !ok {
		return pushed, true
	}

	c := w.ctx
	c.action = id
	fn := w.reg.lookup(id)
	if fn == nil {
		c.err = newBuildError(id, "no action registered for id %d", id)
		return pushed, false
	}

	base := len(c.stack) - pushed
	children := make([]N, pushed)
	copy(children, c.stack[base:])
	clear(c.stack[base:])
	c.stack = c.stack[:base]

	fn(c, n, children, w.user)

	got := len(c.stack) - base
	if c.err != nil {
		return got, false
	}
	if got != 1 {
		c.err = newBuildError(id, "action %d pushed %d results, want 1", id, got)
		return got, false
	}
	return 1, true
}
