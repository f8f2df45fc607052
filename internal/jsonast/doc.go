// Package jsonast parses JSON text into an owned AST.
//
// Every node records which ast.Tracker allocated it, so Free can account for
// it. Arrays and objects are built in two steps: a generic List accumulates
// the elements or members, then Promote moves that sequence into an Array or
// Object without copying it.
package jsonast
