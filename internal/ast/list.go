package ast

import "iter"

// List is an append-only singly-linked sequence. It keeps a tail pointer so
// Append is O(1) and maintains its length as elements are added.
type List[T any] struct {
	head *elem[T]
	tail *elem[T]
	n    int
}

type elem[T any] struct {
	v    T
	next *elem[T]
}

func NewList[T any]() *List[T] {
	return &List[T]{}
}

func (l *List[T]) Append(v T) {
	e := &elem[T]{v: v}
	if l.tail == nil {
		l.head = e
	} else {
		l.tail.next = e
	}
	l.tail = e
	l.n++
}

// Len returns the number of elements. A nil list is empty.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.n
}

// All yields the elements in insertion order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if l == nil {
			return
		}
		i := 0
		for e := l.head; e != nil; e = e.next {
			if !yield(i, e.v) {
				return
			}
			i++
		}
	}
}

// Slice copies the element handles into a slice. The elements themselves
// are not copied.
func (l *List[T]) Slice() []T {
	out := make([]T, 0, l.Len())
	for _, v := range l.All() {
		out = append(out, v)
	}
	return out
}

// Take moves every element into a new list and leaves l empty, so the
// elements are never reachable from both.
func (l *List[T]) Take() *List[T] {
	if l == nil {
		return NewList[T]()
	}
	moved := &List[T]{head: l.head, tail: l.tail, n: l.n}
	l.head, l.tail, l.n = nil, nil, 0
	return moved
}
