package metadata

import "github.com/opmodel/legacyui/internal/subpanel"

// Deps wires the store into a subpanel translator.
func (s *Store) Deps() subpanel.Deps {
	return s.DepsWithFields(s)
}

// DepsWithFields wires the store into a subpanel translator with a separate
// field definition source.
func (s *Store) DepsWithFields(fields subpanel.FieldDefinitionGateway) subpanel.Deps {
	return subpanel.Deps{
		Layouts: s,
		Tabs:    s,
		Panels:  s,
		Fields:  fields,
		Modules: s.modules,
	}
}
