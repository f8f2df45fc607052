package eval

// Context is the evaluation state an action sees: the result stack and the
// error slot.
type Context[N any] struct {
	stack  []N
	err    *BuildError
	action int
	free   func(N)
}

// Push transfers ownership of n to the result stack.
func (c *Context[N]) Push(n N) {
	c.stack = append(c.stack, n)
}

// Fail records an AST build error. Only the first failure is kept.
func (c *Context[N]) Fail(format string, args ...any) {
	if c.err == nil {
		c.err = newBuildError(c.action, format, args...)
	}
}

// Free releases nodes through the registry's free hook.
func (c *Context[N]) Free(nodes ...N) {
	for _, n := range nodes {
		c.free(n)
	}
}

func (c *Context[N]) Failed() bool { return c.err != nil }

// Action returns the id of the action being run.
func (c *Context[N]) Action() int { return c.action }
