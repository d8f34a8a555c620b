package subpanel

import (
	"slices"

	"github.com/opmodel/legacyui/internal/legacy"
	"github.com/opmodel/legacyui/internal/output"
)

// Translator turns the legacy subpanel metadata of a module into a Schema.
// A Translator holds no per-call state and is safe for concurrent use when
// its collaborators are.
type Translator struct {
	deps Deps
}

// NewTranslator returns a Translator over deps.
func NewTranslator(deps Deps) *Translator {
	return &Translator{deps: deps}
}

// Translate builds the subpanel schema of the legacy module.
//
// Phases:
//  1. Resolve the declared layout and keep the visible tabs, in declaration order.
//  2. Load each tab's subpanel handle, skipping tabs that fail to load.
//  3. Compose buttons, insight widget, line actions and columns per tab.
//  4. Emit tabs whose column subpanel resolved.
//
// An unknown module yields an empty schema.
func (t *Translator) Translate(module string) *Schema {
	schema := NewSchema(module)

	layout, ok := t.deps.Layouts.Layout(module)
	if !ok {
		output.Debug("no subpanel layout", "module", module)
		return schema
	}

	available := t.deps.Tabs.AvailableTabs(module)
	for _, desc := range layout.Tabs {
		if !slices.Contains(available, desc.Key) {
			output.Debug("tab not available", "module", module, "tab", desc.Key)
			continue
		}

		tab, ok := t.translateTab(module, desc)
		if !ok {
			continue
		}
		schema.add(tab)
	}

	return schema
}

func (t *Translator) translateTab(module string, desc legacy.TabDescriptor) (*Tab, bool) {
	sp, ok := t.deps.Panels.LoadSubpanel(module, desc)
	if !ok {
		output.Debug("subpanel not loaded", "module", module, "tab", desc.Key)
		return nil, false
	}

	columnPanel, hasColumns := sp.HeaderPanel()
	headerModule := t.HeaderModule(desc)
	defs := t.deps.Fields.FieldDefinitions(headerModule)
	frontend := t.deps.Modules.ToFrontEnd(desc.Module)

	tab := &Tab{
		Name:          desc.Key,
		Icon:          desc.Module,
		Module:        frontend,
		LegacyModule:  desc.Module,
		HeaderModule:  headerModule,
		TitleKey:      desc.TitleKey,
		TopButtons:    MapButtons(sp, desc, t.deps.Modules),
		InsightWidget: ResolveInsightWidget(sp, desc, frontend),
		LineActions:   DeriveLineActions(sp, frontend),
	}

	if !hasColumns {
		output.Debug("empty column subpanel", "module", module, "tab", desc.Key)
		return nil, false
	}
	tab.Columns = MapColumns(columnPanel, defs)

	return tab, true
}

// HeaderModule resolves the frontend module whose field definitions describe
// the tab columns.
//
// A plain tab, or a collection without a header pointer, uses its own module.
// A collection uses the module of the named header sub-definition, then the
// first declared sub-definition that names a module, then its own module.
func (t *Translator) HeaderModule(desc legacy.TabDescriptor) string {
	mapper := t.deps.Modules

	if !desc.IsCollection() || desc.HeaderDefinitionFromSubpanel == "" {
		return mapper.ToFrontEnd(desc.Module)
	}

	if entry, ok := desc.CollectionList.Lookup(desc.HeaderDefinitionFromSubpanel); ok && entry.Module != "" {
		return mapper.ToFrontEnd(entry.Module)
	}

	for _, entry := range desc.CollectionList {
		if entry.Module != "" {
			return mapper.ToFrontEnd(entry.Module)
		}
	}

	return mapper.ToFrontEnd(desc.Module)
}
