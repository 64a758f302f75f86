// Package yamljson converts between YAML and JSON while keeping mapping
// order intact.
package yamljson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/tools/jsonvalue"
	"gopkg.in/yaml.v3"
)

// ToJSON parses a single YAML document and renders it as indented JSON.
func ToJSON(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", apperr.ErrEmptyInput
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return "", apperr.Validation(err, fmt.Sprintf("Invalid YAML: %v", err))
	}
	v, err := fromNode(&doc)
	if err != nil {
		return "", apperr.Validation(err, fmt.Sprintf("Unsupported YAML: %v", err))
	}
	out, err := v.Indent("  ")
	return string(out), err
}

// FromJSON renders a JSON document as block-style YAML.
func FromJSON(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", apperr.ErrEmptyInput
	}
	v, err := jsonvalue.Parse([]byte(input))
	if err != nil {
		return "", apperr.Validation(err, fmt.Sprintf("Invalid JSON: %v", err))
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toNode(v)); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func fromNode(n *yaml.Node) (jsonvalue.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jsonvalue.NullValue(), nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]jsonvalue.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			items = append(items, v)
		}
		return jsonvalue.ArrayValue(items...), nil
	case yaml.MappingNode:
		obj := jsonvalue.ObjectValue()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, val := n.Content[i], n.Content[i+1]
			if k.ShortTag() == "!!merge" {
				if err := merge(&obj, val); err != nil {
					return jsonvalue.Value{}, err
				}
				continue
			}
			v, err := fromNode(val)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			obj.Set(k.Value, v)
		}
		return obj, nil
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return jsonvalue.Value{}, fmt.Errorf("line %d: unexpected node kind %d", n.Line, n.Kind)
}

// merge applies a "<<" key: one mapping or a sequence of mappings.
func merge(obj *jsonvalue.Value, n *yaml.Node) error {
	src, err := fromNode(n)
	if err != nil {
		return err
	}
	sources := []jsonvalue.Value{src}
	if src.Kind() == jsonvalue.Array {
		sources = src.Items()
	}
	for _, s := range sources {
		if s.Kind() != jsonvalue.Object {
			return fmt.Errorf("line %d: merge value is not a mapping", n.Line)
		}
		for _, m := range s.Members() {
			if _, exists := obj.Get(m.Key); !exists {
				obj.Set(m.Key, m.Value)
			}
		}
	}
	return nil
}

func fromScalar(n *yaml.Node) (jsonvalue.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return jsonvalue.NullValue(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return jsonvalue.Value{}, err
		}
		return jsonvalue.BoolValue(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return jsonvalue.StringValue(n.Value), nil
		}
		return jsonvalue.NumberValue(json.Number(strconv.FormatInt(i, 10))), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return jsonvalue.Value{}, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return jsonvalue.NullValue(), nil
		}
		return jsonvalue.NumberValue(json.Number(strconv.FormatFloat(f, 'f', -1, 64))), nil
	default:
		return jsonvalue.StringValue(n.Value), nil
	}
}

func toNode(v jsonvalue.Value) *yaml.Node {
	switch v.Kind() {
	case jsonvalue.Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case jsonvalue.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool())}
	case jsonvalue.Number:
		tag := "!!int"
		if strings.ContainsAny(v.Number().String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Number().String()}
	case jsonvalue.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}
	case jsonvalue.Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, toNode(item))
		}
		return n
	default:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
				toNode(m.Value),
			)
		}
		return n
	}
}
