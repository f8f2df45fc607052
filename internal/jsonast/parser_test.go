package jsonast

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/chriserin/pegast/internal/ast"
	"github.com/chriserin/pegast/internal/eval"
)

func parseOK(t *testing.T, input string) Node {
	t.Helper()
	res := Parse(input)
	require.NoError(t, res.Err())
	return res.Root
}

func TestParse_Documents(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, `String("hello")`},
		{`42`, `Number(42)`},
		{`[1,2,3]`, `Array([Number(1), Number(2), Number(3)])`},
		{`{}`, `Object([])`},
		{`[]`, `Array([])`},
		{`{"k":true}`, `Object([Member("k", Boolean(true))])`},
		{` { "a" : [ null , false ] } `, `Object([Member("a", Array([Null, Boolean(false)]))])`},
		{`-0.5e2`, `Number(-50)`},
		{`"a\"b\\c\/d\n"`, `String("a\"b\\c/d\n")`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(parseOK(t, tt.input)))
		})
	}
}

func TestParse_NestedArraysMirrorNesting(t *testing.T) {
	root := parseOK(t, `[[[[]]]]`)
	assert.Equal(t, `Array([Array([Array([Array([])])])])`, Describe(root))
}

func TestParse_NestedObjectsMirrorNesting(t *testing.T) {
	root := parseOK(t, `{"a":{"b":{"c":null}}}`)
	assert.Equal(t, `Object([Member("a", Object([Member("b", Object([Member("c", Null)]))]))])`, Describe(root))

	obj := root.(*Object)
	a, ok := obj.Get("a")
	require.True(t, ok)
	b, ok := a.(*Object).Get("b")
	require.True(t, ok)
	c, ok := b.(*Object).Get("c")
	require.True(t, ok)
	assert.Equal(t, KindNull, c.Kind())
}

func TestParse_DeepNesting(t *testing.T) {
	const levels = 10000
	input := strings.Repeat("[", levels) + strings.Repeat("]", levels)

	root := parseOK(t, input)
	depth := 0
	for n := root; ; depth++ {
		arr, ok := n.(*Array)
		require.True(t, ok)
		if arr.Len() == 0 {
			break
		}
		n = arr.Items.Slice()[0]
	}
	assert.Equal(t, levels-1, depth)
}

func TestParse_MissingValueIsParseError(t *testing.T) {
	res := Parse(`{"a":}`)

	require.NotNil(t, res.ParseErr)
	assert.Nil(t, res.BuildErr)
	assert.GreaterOrEqual(t, res.ParseErr.Offset, 5)
	assert.Equal(t, []string{"value"}, res.ParseErr.Expected)
	assert.Equal(t, eval.OutcomeParseError, res.Outcome())
}

func TestParse_SyntaxErrors(t *testing.T) {
	for _, input := range []string{
		``, `[1,]`, `{"a" 1}`, `01`, `truex`, `"unterminated`, `"tab	inside"`, `[1 2]`, `{a:1}`, `"\x"`, `1.`, `-`,
	} {
		t.Run(input, func(t *testing.T) {
			res := Parse(input)
			require.NotNil(t, res.ParseErr, "input %q", input)
			assert.Nil(t, res.BuildErr)
		})
	}
}

func TestParse_UnicodeEscapes(t *testing.T) {
	assert.Equal(t, "é😀", parseOK(t, `"é😀"`).(*String).Value)
	assert.Equal(t, "�x", parseOK(t, `"\ud83dx"`).(*String).Value)
	assert.Equal(t, "ünï", parseOK(t, `"ünï"`).(*String).Value)
}

func TestParse_NumberOutOfRangeIsBuildError(t *testing.T) {
	res := Parse(`1e400`)

	assert.Nil(t, res.ParseErr)
	require.NotNil(t, res.BuildErr)
	assert.Contains(t, res.BuildErr.Error(), "out of range")
	assert.Equal(t, int(actNumber), res.BuildErr.Action)
}

func TestParse_EmbeddedNULIsBuildError(t *testing.T) {
	res := Parse(`"a\u0000b"`)
	require.NotNil(t, res.BuildErr)
	assert.Contains(t, res.BuildErr.Error(), "NUL")
}

func TestParse_FailedRunsFreeEverything(t *testing.T) {
	for _, input := range []string{
		`[1, 2, 1e999]`,
		`{"a": [true, "x\u0000"], "b": 1}`,
		`{"ok": {"deep": [1, [2, [3, 1e400]]]}}`,
		`[{"k": "v"}, null, 9e999999]`,
	} {
		t.Run(input, func(t *testing.T) {
			tr := ast.NewTracker()
			res := NewParser().WithTracker(tr).Parse(input)
			require.NotNil(t, res.BuildErr)
			assert.Nil(t, res.Root)

			res.Cleanup()
			assert.Equal(t, tr.Allocs(), tr.Frees())
			assert.Equal(t, 0, tr.Live())
			assert.Equal(t, 0, tr.DoubleFrees())
		})
	}
}

func TestParse_SuccessfulRunFreesCleanly(t *testing.T) {
	tr := ast.NewTracker()
	res := NewParser().WithTracker(tr).Parse(`{"a": [1, "two", {"b": null}], "c": false}`)
	require.NoError(t, res.Err())
	res.Cleanup()

	// a, b, c members; object x2; array; 1, "two", null, false
	assert.Equal(t, 10, tr.Live())

	Free(res.Root)
	assert.Equal(t, 0, tr.Live())
	assert.Equal(t, 0, tr.DoubleFrees())
}

func TestParse_StringsDoNotAliasInput(t *testing.T) {
	input := []byte(`["abc"]`)
	root := parseOK(t, string(input))
	for i := range input {
		input[i] = 'x'
	}
	assert.Equal(t, "abc", root.(*Array).Items.Slice()[0].(*String).Value)
}

var roundTripCorpus = []string{
	`null`,
	`true`,
	`"plain"`,
	`"esc \" \\ \/ \b \f \n \r \t A é 𝄞"`,
	`0`,
	`-12.5e-3`,
	`1E+2`,
	`123456789012345678`,
	`[]`,
	`{}`,
	`[1, "a", [true, false, null], {"x": {"y": []}}]`,
	`{"dup": 1, "dup": 2}`,
	"\n\t{ \"ws\" :\r\n [ 1 ,2 ] }\n",
	`{"emoji": "😀", "cjk": "漢字", "ctrl": "\u001f"}`,
}

func TestRoundTrip_MatchesEncodingJSON(t *testing.T) {
	for _, input := range roundTripCorpus {
		t.Run(input, func(t *testing.T) {
			var want any
			require.NoError(t, json.Unmarshal([]byte(input), &want))

			root := parseOK(t, input)
			assert.Equal(t, want, ToValue(root))

			out, err := Marshal(root)
			require.NoError(t, err)
			var again any
			require.NoError(t, json.Unmarshal(out, &again))
			assert.Equal(t, want, again)

			reparsed := parseOK(t, string(out))
			assert.Equal(t, Describe(root), Describe(reparsed))
		})
	}
}

func TestMarshalIndent(t *testing.T) {
	root := parseOK(t, `{"a":[1,2],"b":{}}`)
	out, err := MarshalIndent(root, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": {}\n}", string(out))
}

func TestMarshalYAML_KeepsMemberOrder(t *testing.T) {
	root := parseOK(t, `{"z": 1, "a": [true, "s", null], "m": 1.5}`)
	out, err := MarshalYAML(root)
	require.NoError(t, err)

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(out, &doc))
	require.Len(t, doc.Content, 1)
	mapping := doc.Content[0]
	var keys []string
	for i := 0; i < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)

	var values map[string]any
	require.NoError(t, yaml.Unmarshal(out, &values))
	assert.Equal(t, 1, values["z"])
	assert.Equal(t, []any{true, "s", nil}, values["a"])
	assert.Equal(t, 1.5, values["m"])

	dup := parseOK(t, `{"a": 1, "b": true, "a": 2}`)
	out, err = MarshalYAML(dup)
	require.NoError(t, err)
	assert.Equal(t, "a: 2\nb: true\n", string(out))
	values = nil
	require.NoError(t, yaml.Unmarshal(out, &values))
	assert.Equal(t, map[string]any{"a": 2, "b": true}, values)
}

func TestMarshalYAML_KeepsNegativeZero(t *testing.T) {
	out, err := MarshalYAML(parseOK(t, `[-0, 0, -3]`))
	require.NoError(t, err)
	assert.Equal(t, "- -0.0\n- 0\n- -3\n", string(out))

	var values []float64
	require.NoError(t, yaml.Unmarshal(out, &values))
	require.Len(t, values, 3)
	assert.True(t, math.Signbit(values[0]), "got %q", out)
	assert.False(t, math.Signbit(values[1]))
	assert.Equal(t, -3.0, values[2])
}
