package subpanel

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Schema is the translated subpanel schema of one module: tab key to Tab, in
// layout declaration order. Its JSON and YAML encodings keep that order.
type Schema struct {
	// Module is the legacy module the schema was translated for.
	Module string

	tabs  []*Tab
	index map[string]int
}

// NewSchema returns an empty schema for module.
func NewSchema(module string) *Schema {
	return &Schema{
		Module: module,
		tabs:   make([]*Tab, 0),
		index:  make(map[string]int),
	}
}

// add appends a fully assembled tab. A repeated key replaces the earlier tab
// in place.
func (s *Schema) add(tab *Tab) {
	if i, ok := s.index[tab.Name]; ok {
		s.tabs[i] = tab
		return
	}
	s.index[tab.Name] = len(s.tabs)
	s.tabs = append(s.tabs, tab)
}

// Len returns the number of tabs.
func (s *Schema) Len() int {
	return len(s.tabs)
}

// Keys returns the tab keys in order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.tabs))
	for i, t := range s.tabs {
		keys[i] = t.Name
	}
	return keys
}

// Get returns the tab stored under key.
func (s *Schema) Get(key string) (*Tab, bool) {
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return s.tabs[i], true
}

// Tabs returns the tabs in order.
func (s *Schema) Tabs() []*Tab {
	out := make([]*Tab, len(s.tabs))
	copy(out, s.tabs)
	return out
}

// MarshalJSON encodes the schema as a JSON object keyed by tab key.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range s.tabs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(t.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("encoding tab %q: %w", t.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the schema as a YAML mapping keyed by tab key.
func (s *Schema) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, t := range s.tabs {
		var val yaml.Node
		if err := val.Encode(t); err != nil {
			return nil, fmt.Errorf("encoding tab %q: %w", t.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Name},
			&val,
		)
	}
	return node, nil
}
