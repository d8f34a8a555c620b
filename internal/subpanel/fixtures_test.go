package subpanel

import (
	"strings"

	"github.com/opmodel/legacyui/internal/legacy"
)

// fakeDeps is an in-memory implementation of every translator collaborator.
type fakeDeps struct {
	layouts   map[string]*legacy.Layout
	available map[string][]string
	panels    map[string]*legacy.Subpanel
	fields    map[string]legacy.FieldDefinitions

	// fieldCalls records the modules field definitions were requested for.
	fieldCalls []string
}

func newFakeDeps() *fakeDeps {
	return &fakeDeps{
		layouts:   map[string]*legacy.Layout{},
		available: map[string][]string{},
		panels:    map[string]*legacy.Subpanel{},
		fields:    map[string]legacy.FieldDefinitions{},
	}
}

func (f *fakeDeps) deps() Deps {
	return Deps{Layouts: f, Tabs: f, Panels: f, Fields: f, Modules: f}
}

func (f *fakeDeps) Layout(module string) (*legacy.Layout, bool) {
	l, ok := f.layouts[module]
	return l, ok
}

func (f *fakeDeps) AvailableTabs(module string) []string {
	return f.available[module]
}

func (f *fakeDeps) LoadSubpanel(_ string, tab legacy.TabDescriptor) (*legacy.Subpanel, bool) {
	sp, ok := f.panels[tab.Key]
	return sp, ok
}

func (f *fakeDeps) FieldDefinitions(module string) legacy.FieldDefinitions {
	f.fieldCalls = append(f.fieldCalls, module)
	return f.fields[module]
}

// ToFrontEnd lower-cases module names, which is what the real map does for
// the stock modules.
func (f *fakeDeps) ToFrontEnd(module string) string {
	return strings.ToLower(module)
}

func (f *fakeDeps) ToLegacy(module string) string {
	if module == "" {
		return ""
	}
	return strings.ToUpper(module[:1]) + module[1:]
}

func listField(key string, attrs legacy.Attributes) legacy.ListField {
	f := legacy.ListField{Key: key, Attributes: attrs}
	if attrs == nil {
		f.Attributes = legacy.Attributes{}
	}
	f.Name = f.Attributes.String("name")
	f.VName = f.Attributes.String("vname")
	f.Usage = f.Attributes.String("usage")
	f.Alias = f.Attributes.String("alias")
	f.WidgetClass = f.Attributes.String("widget_class")
	return f
}

func panel(name, module string, fields ...legacy.ListField) *legacy.Subpanel {
	return &legacy.Subpanel{
		Name:       name,
		Module:     module,
		Definition: legacy.PanelDefinition{ListFields: fields},
	}
}
