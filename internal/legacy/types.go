// Package legacy models the loosely-typed subpanel metadata produced by the
// legacy CRM runtime: subpanel layouts, panel definitions, list fields,
// top buttons and field definitions (vardefs).
//
// The types here are read-only inputs. Ordered legacy mappings (list_fields,
// subpanel_setup, collection_list) are decoded into slices so that declaration
// order survives decoding.
package legacy

import "encoding/json"

// Attributes is a raw legacy attribute bag, as found in list field entries,
// button parameters and field definitions.
type Attributes map[string]any

// String returns the attribute as a string, or "" when it is absent or not a string.
func (a Attributes) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// Clone returns a deep copy of a. A nil bag clones to an empty one.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return map[string]any(Attributes(val).Clone())
	case Attributes:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}

// FieldDefinitions maps a field key to its legacy field definition (vardef).
type FieldDefinitions map[string]Attributes

// ListField is one entry of a panel definition's list_fields mapping.
type ListField struct {
	// Key is the mapping key the entry was declared under.
	Key string `yaml:"-"`

	Name        string `yaml:"name"`
	VName       string `yaml:"vname"`
	Usage       string `yaml:"usage"`
	Alias       string `yaml:"alias"`
	WidgetClass string `yaml:"widget_class"`

	// Attributes holds every raw key of the entry, including the typed ones above.
	Attributes Attributes `yaml:"-"`
}

// QueryOnly reports whether the entry only feeds the query and is never displayed.
func (f ListField) QueryOnly() bool {
	return f.Usage == UsageQueryOnly
}

// UsageQueryOnly marks list fields that are selected but never rendered.
const UsageQueryOnly = "query_only"

// ListFields is an ordered list_fields mapping.
type ListFields []ListField

// ButtonDefinition is a raw top button entry.
type ButtonDefinition struct {
	WidgetClass      string     `yaml:"widget_class"`
	AdditionalFields Attributes `yaml:"additionalFields"`
	ExtraParams      Attributes `yaml:"extraParams"`
}

// WidgetDefinition is an insight widget layout: rows of columns plus any
// other key the legacy definition carries.
type WidgetDefinition struct {
	Rows []WidgetRow `yaml:"rows"`

	// Extra holds every key other than rows.
	Extra Attributes `yaml:",inline"`
}

// IsEmpty reports whether the definition declares nothing at all.
func (w *WidgetDefinition) IsEmpty() bool {
	return w == nil || (len(w.Rows) == 0 && len(w.Extra) == 0)
}

// Clone returns a deep copy of w.
func (w *WidgetDefinition) Clone() *WidgetDefinition {
	if w == nil {
		return nil
	}
	out := &WidgetDefinition{Rows: make([]WidgetRow, len(w.Rows))}
	for i, row := range w.Rows {
		out.Rows[i] = row.Clone()
	}
	if w.Extra != nil {
		out.Extra = w.Extra.Clone()
	}
	return out
}

// MarshalJSON flattens Extra next to rows.
func (w WidgetDefinition) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(w.Extra)+1)
	for k, v := range w.Extra {
		out[k] = v
	}
	out["rows"] = w.Rows
	return json.Marshal(out)
}

// WidgetRow is one row of an insight widget.
type WidgetRow struct {
	Justify string       `yaml:"justify,omitempty"`
	Align   string       `yaml:"align,omitempty"`
	Class   string       `yaml:"class,omitempty"`
	Cols    []Attributes `yaml:"cols"`

	// Extra holds every other key of the row.
	Extra Attributes `yaml:",inline"`
}

// Clone returns a deep copy of r.
func (r WidgetRow) Clone() WidgetRow {
	cols := make([]Attributes, len(r.Cols))
	for i, col := range r.Cols {
		cols[i] = col.Clone()
	}
	r.Cols = cols
	if r.Extra != nil {
		r.Extra = r.Extra.Clone()
	}
	return r
}

// MarshalJSON flattens Extra next to the typed keys.
func (r WidgetRow) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+4)
	for k, v := range r.Extra {
		out[k] = v
	}
	for k, v := range map[string]string{"justify": r.Justify, "align": r.Align, "class": r.Class} {
		if v != "" {
			out[k] = v
		}
	}
	out["cols"] = r.Cols
	return json.Marshal(out)
}

// PanelDefinition is the legacy subpanel definition file content.
type PanelDefinition struct {
	ListFields    ListFields         `yaml:"list_fields"`
	TopButtons    []ButtonDefinition `yaml:"top_buttons"`
	InsightWidget *WidgetDefinition  `yaml:"insightWidget"`
}

// CollectionEntry is one sub-definition of a collection tab.
type CollectionEntry struct {
	Key          string `yaml:"-"`
	Module       string `yaml:"module"`
	SubpanelName string `yaml:"subpanel_name"`
}

// CollectionList is an ordered collection_list mapping.
type CollectionList []CollectionEntry

// Lookup returns the entry declared under name.
func (c CollectionList) Lookup(name string) (CollectionEntry, bool) {
	for _, e := range c {
		if e.Key == name {
			return e, true
		}
	}
	return CollectionEntry{}, false
}

// TabDescriptor is one subpanel_setup entry of a module layout.
type TabDescriptor struct {
	Key string `yaml:"-"`

	Module                       string             `yaml:"module"`
	SubpanelName                 string             `yaml:"subpanel_name"`
	TitleKey                     string             `yaml:"title_key"`
	HeaderDefinitionFromSubpanel string             `yaml:"header_definition_from_subpanel"`
	CollectionList               CollectionList     `yaml:"collection_list"`
	TopButtons                   []ButtonDefinition `yaml:"top_buttons"`
	InsightWidget                *WidgetDefinition  `yaml:"insightWidget"`
}

// IsCollection reports whether the tab aggregates several sub-definitions.
func (t TabDescriptor) IsCollection() bool {
	return len(t.CollectionList) > 0
}

// Tabs is an ordered subpanel_setup mapping.
type Tabs []TabDescriptor

// Layout is the subpanel layout of one legacy module.
type Layout struct {
	// Module is the legacy module name the layout belongs to.
	Module string `yaml:"-"`

	Tabs Tabs `yaml:"subpanel_setup"`

	// AvailableTabs is the ACL-filtered list of visible tab keys. Nil means
	// no filter was recorded and every declared tab is visible.
	AvailableTabs []string `yaml:"available_tabs"`
}
