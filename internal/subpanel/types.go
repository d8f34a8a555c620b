package subpanel

import "github.com/opmodel/legacyui/internal/legacy"

// Tab is one normalized subpanel.
type Tab struct {
	Name          string              `json:"name" yaml:"name"`
	Icon          string              `json:"icon" yaml:"icon"`
	Module        string              `json:"module" yaml:"module"`
	LegacyModule  string              `json:"legacyModule" yaml:"legacyModule"`
	HeaderModule  string              `json:"headerModule" yaml:"headerModule"`
	TitleKey      string              `json:"title_key" yaml:"title_key"`
	TopButtons    []Button            `json:"top_buttons" yaml:"top_buttons"`
	InsightWidget InsightWidgetConfig `json:"insightWidget" yaml:"insightWidget"`
	LineActions   []LineAction        `json:"lineActions" yaml:"lineActions"`
	Columns       []Column            `json:"columns" yaml:"columns"`
}

// Button is a normalized top-of-panel action button.
type Button struct {
	Key              string            `json:"key" yaml:"key"`
	LabelKey         string            `json:"labelKey" yaml:"labelKey"`
	Module           string            `json:"module" yaml:"module"`
	WidgetClass      string            `json:"widget_class" yaml:"widget_class"`
	AdditionalFields legacy.Attributes `json:"additionalFields" yaml:"additionalFields"`
	ExtraParams      legacy.Attributes `json:"extraParams" yaml:"extraParams"`
}

// LineAction is a per-row subpanel action.
type LineAction struct {
	Key          string           `json:"key" yaml:"key"`
	Action       string           `json:"action" yaml:"action"`
	Icon         string           `json:"icon" yaml:"icon"`
	AsyncProcess bool             `json:"asyncProcess" yaml:"asyncProcess"`
	LabelKey     string           `json:"labelKey" yaml:"labelKey"`
	Module       string           `json:"module" yaml:"module"`
	Routing      bool             `json:"routing" yaml:"routing"`
	Params       LineActionParams `json:"params" yaml:"params"`
	Modes        []string         `json:"modes" yaml:"modes"`
}

// LineActionParams configures a line action.
type LineActionParams struct {
	LinkFieldMapping    map[string]string `json:"linkFieldMapping" yaml:"linkFieldMapping"`
	DisplayConfirmation bool              `json:"displayConfirmation" yaml:"displayConfirmation"`
	ConfirmationLabel   string            `json:"confirmationLabel" yaml:"confirmationLabel"`
}

// InsightWidgetConfig configures the statistics banner shown next to a subpanel.
// The zero value is the empty configuration.
type InsightWidgetConfig struct {
	Type    string                `json:"type,omitempty" yaml:"type,omitempty"`
	Options *InsightWidgetOptions `json:"options,omitempty" yaml:"options,omitempty"`
}

// IsEmpty reports whether no widget is configured.
func (c InsightWidgetConfig) IsEmpty() bool {
	return c.Type == "" && c.Options == nil
}

// InsightWidgetOptions wraps the widget layout.
type InsightWidgetOptions struct {
	InsightWidget *legacy.WidgetDefinition `json:"insightWidget" yaml:"insightWidget"`
}

// Column is a renderable list column: the explicit column attributes merged
// with the matching field definition.
type Column map[string]any

// Name returns the column field name.
func (c Column) Name() string {
	s, _ := c["name"].(string)
	return s
}

// Label returns the column label key.
func (c Column) Label() string {
	s, _ := c["label"].(string)
	return s
}

// Link reports whether the column renders as a link to the related record.
func (c Column) Link() bool {
	b, _ := c["link"].(bool)
	return b
}

// Sortable reports whether the column can be sorted.
func (c Column) Sortable() bool {
	b, _ := c["sortable"].(bool)
	return b
}
