package legacy

// Subpanel is a loaded legacy subpanel handle.
//
// A plain subpanel carries its own panel definition. A collection subpanel
// aggregates sub-panels (one per collection_list entry that could be loaded)
// and borrows its list fields from a header sub-panel.
type Subpanel struct {
	// Name is the tab key the subpanel was loaded for, or the collection
	// entry key for sub-panels.
	Name string

	// Module is the legacy module of the related records.
	Module string

	Definition PanelDefinition

	// TopButtons overrides the definition's top buttons when set.
	TopButtons []ButtonDefinition

	// Collection holds the loaded sub-panels of a collection, in declaration order.
	Collection []*Subpanel

	// HeaderName selects the header sub-panel of a collection.
	HeaderName string

	collection bool
}

// NewCollection returns a collection subpanel over the given sub-panels.
// The result is a collection even when no sub-panel could be loaded.
func NewCollection(name, module, headerName string, panels []*Subpanel) *Subpanel {
	return &Subpanel{
		Name:       name,
		Module:     module,
		Collection: panels,
		HeaderName: headerName,
		collection: true,
	}
}

// IsCollection reports whether the subpanel aggregates sub-panels.
func (s *Subpanel) IsCollection() bool {
	return s.collection
}

// ModuleName returns the legacy module of the subpanel records.
func (s *Subpanel) ModuleName() string {
	return s.Module
}

// HeaderPanel returns the panel whose list fields describe the subpanel columns.
//
// For a plain subpanel that is the subpanel itself. For a collection it is
// the sub-panel named by HeaderName, falling back to the first declared
// sub-panel. A collection without sub-panels has no header panel.
func (s *Subpanel) HeaderPanel() (*Subpanel, bool) {
	if !s.collection {
		return s, true
	}
	if len(s.Collection) == 0 {
		return nil, false
	}
	if s.HeaderName != "" {
		for _, sub := range s.Collection {
			if sub.Name == s.HeaderName {
				return sub, true
			}
		}
	}
	return s.Collection[0], true
}

// ListFields returns the panel's own list fields.
func (s *Subpanel) ListFields() ListFields {
	return s.Definition.ListFields
}

// Buttons returns the raw top button definitions.
func (s *Subpanel) Buttons() []ButtonDefinition {
	if s.TopButtons != nil {
		return s.TopButtons
	}
	return s.Definition.TopButtons
}

// InsightWidget returns the explicit insight widget of the panel definition.
func (s *Subpanel) InsightWidget() (*WidgetDefinition, bool) {
	if s.Definition.InsightWidget.IsEmpty() {
		return nil, false
	}
	return s.Definition.InsightWidget, true
}
