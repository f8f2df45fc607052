package jsonast

import (
	"errors"
	"fmt"
	"iter"

	"github.com/chriserin/pegast/internal/ast"
)

var (
	ErrNotList      = errors.New("node is not a list")
	ErrNotMember    = errors.New("object element is not a member")
	ErrBadPromotion = errors.New("lists promote only to array or object")
)

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindNull
	KindList
	KindArray
	KindObject
	KindMember
)

var kindNames = [...]string{
	KindString:  "string",
	KindNumber:  "number",
	KindBoolean: "boolean",
	KindNull:    "null",
	KindList:    "list",
	KindArray:   "array",
	KindObject:  "object",
	KindMember:  "member",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Node is one of *String, *Number, *Boolean, *Null, *List, *Array, *Object
// or *Member.
type Node interface {
	Kind() Kind
	alloc() *header
}

type header struct {
	id uint64
	tr *ast.Tracker
}

func (h *header) alloc() *header { return h }

func newHeader(tr *ast.Tracker) header {
	return header{id: tr.Alloc(), tr: tr}
}

type String struct {
	header
	Value string
}

type Number struct {
	header
	Value float64
}

type Boolean struct {
	header
	Value bool
}

type Null struct {
	header
}

// List is the generic accumulator for array elements and object members
// before promotion.
type List struct {
	header
	Items *ast.List[Node]
}

type Array struct {
	header
	Items *ast.List[Node]
}

// Object holds members in source order. Duplicate keys are kept.
type Object struct {
	header
	Items *ast.List[Node]
}

// Member owns its key and its value.
type Member struct {
	header
	Key   string
	Value Node
}

func (*String) Kind() Kind  { return KindString }
func (*Number) Kind() Kind  { return KindNumber }
func (*Boolean) Kind() Kind { return KindBoolean }
func (*Null) Kind() Kind    { return KindNull }
func (*List) Kind() Kind    { return KindList }
func (*Array) Kind() Kind   { return KindArray }
func (*Object) Kind() Kind  { return KindObject }
func (*Member) Kind() Kind  { return KindMember }

func NewString(tr *ast.Tracker, s string) *String {
	return &String{header: newHeader(tr), Value: s}
}

func NewNumber(tr *ast.Tracker, f float64) *Number {
	return &Number{header: newHeader(tr), Value: f}
}

func NewBoolean(tr *ast.Tracker, b bool) *Boolean {
	return &Boolean{header: newHeader(tr), Value: b}
}

func NewNull(tr *ast.Tracker) *Null {
	return &Null{header: newHeader(tr)}
}

func NewList(tr *ast.Tracker) *List {
	return &List{header: newHeader(tr), Items: ast.NewList[Node]()}
}

// NewMember takes ownership of value.
func NewMember(tr *ast.Tracker, key string, value Node) *Member {
	return &Member{header: newHeader(tr), Key: key, Value: value}
}

func NewArray(tr *ast.Tracker, elems ...Node) *Array {
	items := ast.NewList[Node]()
	for _, e := range elems {
		items.Append(e)
	}
	return &Array{header: newHeader(tr), Items: items}
}

func NewObject(tr *ast.Tracker, members ...*Member) *Object {
	items := ast.NewList[Node]()
	for _, m := range members {
		items.Append(m)
	}
	return &Object{header: newHeader(tr), Items: items}
}

// NewContainer builds an Array or Object directly from an element sequence.
// It takes ownership of items.
func NewContainer(tr *ast.Tracker, kind Kind, items *ast.List[Node]) (Node, error) {
	if items == nil {
		items = ast.NewList[Node]()
	}
	switch kind {
	case KindArray:
		return &Array{header: newHeader(tr), Items: items}, nil
	case KindObject:
		for i, it := range items.All() {
			if _, ok := it.(*Member); !ok {
				return nil, fmt.Errorf("%w: element %d is %s", ErrNotMember, i, kindOf(it))
			}
		}
		return &Object{header: newHeader(tr), Items: items}, nil
	}
	return nil, fmt.Errorf("%w: got %s", ErrBadPromotion, kind)
}

// Promote reinterprets a List as an Array or Object. The elements move into
// the new node without being copied and the list shell is freed. On error n
// is left untouched and still belongs to the caller.
func Promote(n Node, kind Kind) (Node, error) {
	l, ok := n.(*List)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotList, kindOf(n))
	}
	if kind == KindObject {
		for i, it := range l.Items.All() {
			if _, ok := it.(*Member); !ok {
				return nil, fmt.Errorf("%w: element %d is %s", ErrNotMember, i, kindOf(it))
			}
		}
	}
	if kind != KindArray && kind != KindObject {
		return nil, fmt.Errorf("%w: got %s", ErrBadPromotion, kind)
	}
	promoted, err := NewContainer(l.tr, kind, l.Items.Take())
	if err != nil {
		return nil, err
	}
	Free(l)
	return promoted, nil
}

// Free releases n and everything it owns. It is a no-op on nil. Owned
// children are detached as they are freed so a second path cannot reach
// them.
func Free(n Node) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *List:
		freeItems(v.Items)
		v.Items = nil
	case *Array:
		freeItems(v.Items)
		v.Items = nil
	case *Object:
		freeItems(v.Items)
		v.Items = nil
	case *Member:
		value := v.Value
		v.Value = nil
		Free(value)
	}
	h := n.alloc()
	h.tr.Release(h.id)
}

func freeItems(items *ast.List[Node]) {
	for _, it := range items.Take().All() {
		Free(it)
	}
}

// Elements yields the elements of an Array.
func (a *Array) Elements() iter.Seq2[int, Node] { return a.Items.All() }

// Members yields the members of an Object in source order.
func (o *Object) Members() iter.Seq2[int, *Member] {
	return func(yield func(int, *Member) bool) {
		for i, it := range o.Items.All() {
			if !yield(i, it.(*Member)) {
				return
			}
		}
	}
}

// Get returns the value of the last member named key.
func (o *Object) Get(key string) (Node, bool) {
	var found Node
	ok := false
	for _, m := range o.Members() {
		if m.Key == key {
			found, ok = m.Value, true
		}
	}
	return found, ok
}

func (a *Array) Len() int  { return a.Items.Len() }
func (o *Object) Len() int { return o.Items.Len() }

func kindOf(n Node) string {
	if n == nil {
		return "nil"
	}
	return n.Kind().String()
}
