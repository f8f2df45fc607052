// Package eval turns a concrete parse tree from package peg into a typed AST.
//
// A Registry binds every action id a grammar uses to an Action. Evaluate walks
// the parse tree in post-order and keeps child results on an explicit stack.
// A node without an action passes its children's results through unchanged.
// A node with an action hands exactly its children's results to the action,
// which then owns them: it either pushes one result or fails and frees them
// all.
//
// When an action fails, results already pushed by siblings are still on the
// stack. Evaluate returns them as abandoned, and Result.Cleanup releases
// them through the registry's free hook.
package eval
