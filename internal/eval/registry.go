package eval

import (
	"fmt"

	"github.com/chriserin/pegast/internal/peg"
)

// Action builds one AST result from the results of a parse node's children.
// children is handed over: before returning, the action must either Push
// exactly one result that incorporates or has freed every child, or Fail
// after freeing every child itself.
type Action[N any] func(c *Context[N], n *peg.Node, children []N, user any)

// Registry maps action ids in [0, size) to actions, plus the hook that frees
// a node during error cleanup. It is read-only once sealed.
type Registry[ID ~int, N any] struct {
	size    ID
	actions []Action[N]
	free    func(N)
	sealed  bool
}

func NewRegistry[ID ~int, N any](size ID) *Registry[ID, N] {
	return &Registry[ID, N]{
		size:    size,
		actions: make([]Action[N], max(int(size), 0)),
	}
}

func (r *Registry[ID, N]) Register(id ID, fn Action[N]) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	if id < 0 || id >= r.size {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidActionID, id, r.size)
	}
	if r.actions[id] != nil {
		return fmt.Errorf("%w: action %d", ErrDuplicateRegistration, id)
	}
	if fn == nil {
		return fmt.Errorf("%w: nil action for %d", ErrInvalidActionID, id)
	}
	r.actions[id] = fn
	return nil
}

// SetFreeHook sets the function used to release nodes during cleanup.
func (r *Registry[ID, N]) SetFreeHook(fn func(N)) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	r.free = fn
	return nil
}

// Seal verifies every id is bound and the free hook is set, then freezes the
// registry.
func (r *Registry[ID, N]) Seal() error {
	for id, fn := range r.actions {
		if fn == nil {
			return fmt.Errorf("%w: action %d has no callback", ErrIncompleteRegistry, id)
		}
	}
	if r.free == nil {
		return fmt.Errorf("%w: no free hook", ErrIncompleteRegistry)
	}
	r.sealed = true
	return nil
}

// Check reports whether every id a grammar attaches is within range.
func (r *Registry[ID, N]) Check(ids []int) error {
	for _, id := range ids {
		if id < 0 || id >= int(r.size) {
			return fmt.Errorf("%w: grammar uses %d, registry holds [0, %d)", ErrInvalidActionID, id, r.size)
		}
	}
	return nil
}

// Free releases n through the free hook.
func (r *Registry[ID, N]) Free(n N) {
	if r.free != nil {
		r.free(n)
	}
}

func (r *Registry[ID, N]) Size() ID { return r.size }

func (r *Registry[ID, N]) lookup(id int) Action[N] {
	if id < 0 || id >= len(r.actions) {
		return nil
	}
	return r.actions[id]
}
