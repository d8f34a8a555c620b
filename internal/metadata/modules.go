package metadata

// ModuleMap maps legacy module names to frontend names and back.
// Names it does not know map to themselves.
type ModuleMap struct {
	toFront  map[string]string
	toLegacy map[string]string
}

// NewModuleMap builds a map from legacy name to frontend name.
func NewModuleMap(legacyToFront map[string]string) *ModuleMap {
	m := &ModuleMap{
		toFront:  make(map[string]string, len(legacyToFront)),
		toLegacy: make(map[string]string, len(legacyToFront)),
	}
	for legacyName, front := range legacyToFront {
		m.toFront[legacyName] = front
		m.toLegacy[front] = legacyName
	}
	return m
}

// ToFrontEnd returns the frontend name of a legacy module.
func (m *ModuleMap) ToFrontEnd(module string) string {
	if front, ok := m.toFront[module]; ok {
		return front
	}
	return module
}

// ToLegacy returns the legacy name of a frontend module.
func (m *ModuleMap) ToLegacy(module string) string {
	if legacyName, ok := m.toLegacy[module]; ok {
		return legacyName
	}
	return module
}

// Len returns the number of mapped modules.
func (m *ModuleMap) Len() int {
	return len(m.toFront)
}
