package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/chriserin/pegast/internal/jsonast"
	"github.com/chriserin/pegast/internal/jsonptr"
)

type treeNode struct {
	label    string
	children []treeNode
}

func render(w io.Writer, root treeNode) {
	fmt.Fprintln(w, root.label)
	renderChildren(w, root.children, "")
}

func renderChildren(w io.Writer, children []treeNode, prefix string) {
	for i, c := range children {
		branch, indent := "├──", faintStyle.Render("│")+"   "
		if i == len(children)-1 {
			branch, indent = "└──", "    "
		}
		fmt.Fprintln(w, prefix+faintStyle.Render(branch)+" "+c.label)
		renderChildren(w, c.children, prefix+indent)
	}
}

// JSONTree prints a JSON AST one node per line.
func JSONTree(w io.Writer, n jsonast.Node) {
	render(w, jsonTree(n))
}

func jsonTree(n jsonast.Node) treeNode {
	switch v := n.(type) {
	case *jsonast.String:
		return treeNode{label: strconv.Quote(v.Value)}
	case *jsonast.Number:
		return treeNode{label: strconv.FormatFloat(v.Value, 'g', -1, 64)}
	case *jsonast.Boolean:
		return treeNode{label: strconv.FormatBool(v.Value)}
	case *jsonast.Null:
		return treeNode{label: "null"}
	case *jsonast.Array:
		t := treeNode{label: container("array", v.Len())}
		for _, e := range v.Elements() {
			t.children = append(t.children, jsonTree(e))
		}
		return t
	case *jsonast.Object:
		t := treeNode{label: container("object", v.Len())}
		for _, m := range v.Members() {
			t.children = append(t.children, jsonTree(m))
		}
		return t
	case *jsonast.Member:
		value := jsonTree(v.Value)
		value.label = keyStyle.Render(strconv.Quote(v.Key)) + ": " + value.label
		return value
	case *jsonast.List:
		t := treeNode{label: container("list", v.Items.Len())}
		for _, e := range v.Items.All() {
			t.children = append(t.children, jsonTree(e))
		}
		return t
	}
	return treeNode{label: "<nil>"}
}

// PointerTree prints a JSON Pointer AST.
func PointerTree(w io.Writer, n jsonptr.Node) {
	render(w, pointerTree(n))
}

func pointerTree(n jsonptr.Node) treeNode {
	switch v := n.(type) {
	case *jsonptr.List:
		t := treeNode{label: container("pointer", v.Items.Len())}
		for _, e := range v.Items.All() {
			t.children = append(t.children, pointerTree(e))
		}
		return t
	case *jsonptr.String:
		return treeNode{label: strconv.Quote(v.Value)}
	case *jsonptr.Char:
		return treeNode{label: strconv.QuoteRune(v.Value)}
	}
	return treeNode{label: "<nil>"}
}

func container(kind string, n int) string {
	return kindStyle.Render(kind) + " " + faintStyle.Render(fmt.Sprintf("(%d)", n))
}
