package legacy

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// eachPair walks a YAML mapping node in declaration order.
// A null node is treated as an empty mapping.
func eachPair(node *yaml.Node, what string, fn func(key string, value *yaml.Node) error) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %s must be a mapping", node.Line, what)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalYAML decodes list_fields preserving declaration order.
func (l *ListFields) UnmarshalYAML(node *yaml.Node) error {
	fields := make(ListFields, 0, len(node.Content)/2)
	err := eachPair(node, "list_fields", func(key string, value *yaml.Node) error {
		var f ListField
		if err := value.Decode(&f); err != nil {
			return fmt.Errorf("list field %q: %w", key, err)
		}
		var attrs Attributes
		if err := value.Decode(&attrs); err != nil {
			return fmt.Errorf("list field %q: %w", key, err)
		}
		if attrs == nil {
			attrs = Attributes{}
		}
		f.Key = key
		f.Attributes = attrs
		fields = append(fields, f)
		return nil
	})
	if err != nil {
		return err
	}
	*l = fields
	return nil
}

// UnmarshalYAML decodes collection_list preserving declaration order.
func (c *CollectionList) UnmarshalYAML(node *yaml.Node) error {
	entries := make(CollectionList, 0, len(node.Content)/2)
	err := eachPair(node, "collection_list", func(key string, value *yaml.Node) error {
		var e CollectionEntry
		if err := value.Decode(&e); err != nil {
			return fmt.Errorf("collection entry %q: %w", key, err)
		}
		e.Key = key
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return err
	}
	*c = entries
	return nil
}

// UnmarshalYAML decodes subpanel_setup preserving declaration order.
func (t *Tabs) UnmarshalYAML(node *yaml.Node) error {
	tabs := make(Tabs, 0, len(node.Content)/2)
	err := eachPair(node, "subpanel_setup", func(key string, value *yaml.Node) error {
		var tab TabDescriptor
		if err := value.Decode(&tab); err != nil {
			return fmt.Errorf("tab %q: %w", key, err)
		}
		tab.Key = key
		tabs = append(tabs, tab)
		return nil
	})
	if err != nil {
		return err
	}
	*t = tabs
	return nil
}
