// Package subpanel translates legacy subpanel metadata into the normalized,
// render-ready subpanel schema consumed by the UI.
//
// The translation is a pure function of its collaborators: the module layout,
// the ACL-filtered tab list, the panel loader, the field definitions and the
// module name mapper. Gaps in the legacy metadata never produce errors; they
// produce absent tabs, columns or buttons.
package subpanel

import "github.com/opmodel/legacyui/internal/legacy"

// LayoutSource provides the declared subpanel layout of a legacy module.
type LayoutSource interface {
	// Layout returns the module layout, or false when the module is unknown.
	Layout(module string) (*legacy.Layout, bool)
}

// TabFilter provides the keys of the tabs visible to the current user.
type TabFilter interface {
	AvailableTabs(module string) []string
}

// PanelLoader loads the legacy subpanel handle for a declared tab.
type PanelLoader interface {
	// LoadSubpanel returns false when the panel cannot be loaded.
	LoadSubpanel(module string, tab legacy.TabDescriptor) (*legacy.Subpanel, bool)
}

// FieldDefinitionGateway provides field definitions keyed by field name.
// The module argument is a frontend module name.
type FieldDefinitionGateway interface {
	FieldDefinitions(module string) legacy.FieldDefinitions
}

// ModuleNameMapper maps module names between their legacy and frontend forms.
type ModuleNameMapper interface {
	ToFrontEnd(module string) string
	ToLegacy(module string) string
}

// Deps bundles the collaborators of a Translator.
type Deps struct {
	Layouts LayoutSource
	Tabs    TabFilter
	Panels  PanelLoader
	Fields  FieldDefinitionGateway
	Modules ModuleNameMapper
}
