package jsonast

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

var ErrUnencodable = errors.New("node cannot be encoded")

// Marshal renders n as compact JSON. Lists encode as arrays.
func Marshal(n Node) ([]byte, error) {
	return MarshalIndent(n, "")
}

// MarshalIndent renders n as JSON, placing each element on its own line
// indented by indent when indent is not empty.
func MarshalIndent(n Node, indent string) ([]byte, error) {
	e := &encoder{indent: indent}
	if err := e.encode(n, 0); err != nil {
		return nil, err
	}
	return e.buf, nil
}

type encoder struct {
	buf    []byte
	indent string
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf = append(e.buf, '\n')
	for range depth {
		e.buf = append(e.buf, e.indent...)
	}
}

func (e *encoder) encode(n Node, depth int) error {
	switch v := n.(type) {
	case *String:
		e.buf = appendString(e.buf, v.Value)
	case *Number:
		if math.IsInf(v.Value, 0) || math.IsNaN(v.Value) {
			return fmt.Errorf("%w: number %v", ErrUnencodable, v.Value)
		}
		e.buf = strconv.AppendFloat(e.buf, v.Value, 'g', -1, 64)
	case *Boolean:
		e.buf = strconv.AppendBool(e.buf, v.Value)
	case *Null:
		e.buf = append(e.buf, "null"...)
	case *List:
		return e.sequence('[', ']', v.Items.Slice(), depth)
	case *Array:
		return e.sequence('[', ']', v.Items.Slice(), depth)
	case *Object:
		return e.sequence('{', '}', v.Items.Slice(), depth)
	case *Member:
		e.buf = appendString(e.buf, v.Key)
		e.buf = append(e.buf, ':')
		if e.indent != "" {
			e.buf = append(e.buf, ' ')
		}
		if v.Value == nil {
			return fmt.Errorf("%w: member %q has no value", ErrUnencodable, v.Key)
		}
		return e.encode(v.Value, depth)
	case nil:
		return fmt.Errorf("%w: nil node", ErrUnencodable)
	default:
		return fmt.Errorf("%w: %T", ErrUnencodable, n)
	}
	return nil
}

func (e *encoder) sequence(open, close byte, items []Node, depth int) error {
	e.buf = append(e.buf, open)
	for i, it := range items {
		if i > 0 {
			e.buf = append(e.buf, ',')
		}
		e.newline(depth + 1)
		if err := e.encode(it, depth+1); err != nil {
			return err
		}
	}
	if len(items) > 0 {
		e.newline(depth)
	}
	e.buf = append(e.buf, close)
	return nil
}

func appendString(buf []byte, s string) []byte {
	const hex = "0123456789abcdef"
	buf = append(buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				buf = append(buf, `�`...)
			} else {
				buf = append(buf, s[i:i+size]...)
			}
			i += size
			continue
		}
		switch c {
		case '"', '\\':
			buf = append(buf, '\\', c)
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\t':
			buf = append(buf, '\\', 't')
		case '\b':
			buf = append(buf, '\\', 'b')
		case '\f':
			buf = append(buf, '\\', 'f')
		default:
			if c < 0x20 {
				buf = append(buf, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
			} else {
				buf = append(buf, c)
			}
		}
		i++
	}
	return append(buf, '"')
}

// ToValue converts n to the values encoding/json would decode the same
// document into. When an object repeats a key the last member wins.
func ToValue(n Node) any {
	switch v := n.(type) {
	case *String:
		return v.Value
	case *Number:
		return v.Value
	case *Boolean:
		return v.Value
	case *List:
		return toSlice(v.Items.Slice())
	case *Array:
		return toSlice(v.Items.Slice())
	case *Object:
		m := make(map[string]any, v.Len())
		for _, mem := range v.Members() {
			m[mem.Key] = ToValue(mem.Value)
		}
		return m
	case *Member:
		return map[string]any{v.Key: ToValue(v.Value)}
	}
	return nil
}

func toSlice(items []Node) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = ToValue(it)
	}
	return out
}

// Describe renders n in constructor notation, e.g.
// Object([Member("k", Boolean(true))]).
func Describe(n Node) string {
	var b strings.Builder
	describe(&b, n)
	return b.String()
}

func describe(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *String:
		fmt.Fprintf(b, "String(%s)", appendString(nil, v.Value))
	case *Number:
		fmt.Fprintf(b, "Number(%s)", strconv.FormatFloat(v.Value, 'g', -1, 64))
	case *Boolean:
		fmt.Fprintf(b, "Boolean(%t)", v.Value)
	case *Null:
		b.WriteString("Null")
	case *List:
		describeItems(b, "List", v.Items.Slice())
	case *Array:
		describeItems(b, "Array", v.Items.Slice())
	case *Object:
		describeItems(b, "Object", v.Items.Slice())
	case *Member:
		fmt.Fprintf(b, "Member(%s, ", appendString(nil, v.Key))
		describe(b, v.Value)
		b.WriteByte(')')
	default:
		b.WriteString("<nil>")
	}
}

func describeItems(b *strings.Builder, name string, items []Node) {
	b.WriteString(name)
	b.WriteString("([")
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		describe(b, it)
	}
	b.WriteString("])")
}
