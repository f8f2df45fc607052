package jsonast

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ToYAML converts n to a YAML node tree. Object member order is kept; a
// repeated key appears once, at its first position, with the last value.
func ToYAML(n Node) (*yaml.Node, error) {
	switch v := n.(type) {
	case *String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Value}, nil
	case *Number:
		if v.Value == 0 && math.Signbit(v.Value) {
			// a plain -0 would resolve as the integer zero
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: "-0.0"}, nil
		}
		if v.Value == math.Trunc(v.Value) && math.Abs(v.Value) < 1e15 {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(v.Value), 10)}, nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.Value, 'g', -1, 64)}, nil
	case *Boolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Value)}, nil
	case *Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *List:
		return yamlSequence(v.Items.Slice())
	case *Array:
		return yamlSequence(v.Items.Slice())
	case *Object:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		valueAt := map[string]int{}
		for _, m := range v.Members() {
			if i, seen := valueAt[m.Key]; seen {
				val, err := ToYAML(m.Value)
				if err != nil {
					return nil, err
				}
				out.Content[i] = val
				continue
			}
			if err := appendYAMLMember(out, m); err != nil {
				return nil, err
			}
			valueAt[m.Key] = len(out.Content) - 1
		}
		return out, nil
	case *Member:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		return out, appendYAMLMember(out, v)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnencodable, n)
}

func yamlSequence(items []Node) (*yaml.Node, error) {
	out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, it := range items {
		y, err := ToYAML(it)
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, y)
	}
	return out, nil
}

func appendYAMLMember(out *yaml.Node, m *Member) error {
	val, err := ToYAML(m.Value)
	if err != nil {
		return err
	}
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
	out.Content = append(out.Content, key, val)
	return nil
}

// MarshalYAML renders n as a YAML document.
func MarshalYAML(n Node) ([]byte, error) {
	y, err := ToYAML(n)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(y); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}
