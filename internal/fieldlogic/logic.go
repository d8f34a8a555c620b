package fieldlogic

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Logic is the ordered mapping of actions a field declares, keyed by action
// name. Both encodings keep declaration order.
type Logic []Action

// UnmarshalYAML decodes a logic mapping. An action without a key takes the
// mapping key.
func (l *Logic) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*l = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: logic must be a mapping", node.Line)
	}

	out := make(Logic, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var a Action
		if err := node.Content[i+1].Decode(&a); err != nil {
			return fmt.Errorf("logic %q: %w", name, err)
		}
		if a.Key == "" {
			a.Key = name
		}
		out = append(out, a)
	}
	*l = out
	return nil
}

// MarshalYAML encodes the actions as a mapping keyed by action key.
func (l Logic) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, a := range l {
		var val yaml.Node
		if err := val.Encode(a); err != nil {
			return nil, fmt.Errorf("logic %q: %w", a.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: a.Key},
			&val,
		)
	}
	return node, nil
}

// UnmarshalJSON decodes a logic object, keeping member order.
func (l *Logic) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("logic must be an object")
	}

	out := make(Logic, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		var a Action
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("logic %q: %w", name, err)
		}
		if a.Key == "" {
			a.Key = name
		}
		out = append(out, a)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = out
	return nil
}

// MarshalJSON encodes the actions as an object keyed by action key.
func (l Logic) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("logic %q: %w", a.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
