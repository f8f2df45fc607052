// Package peg is a small backtracking PEG engine. Grammars are composed from
// primitive rules (literals, character classes) and combinators (sequence,
// ordered choice, repetition, delimited lists, lexemes). Matching produces a
// concrete parse tree of *Node values; a rule may carry an integer action id
// which is copied onto the nodes it produces so a later pass can interpret
// the tree.
//
// Recursive grammars are assembled through a Grammar: allocate a placeholder,
// use it inside other rules, then Resolve it to the real body. Build reports
// placeholders that were never resolved.
//
// Left-recursive rules are not supported and will not terminate.
package peg
