package subpanel

import (
	"strings"

	"github.com/opmodel/legacyui/internal/legacy"
)

// WidgetDetailViewLink is the list field widget that renders a link to the
// related record.
const WidgetDetailViewLink = "SubPanelDetailViewLink"

// MapColumns builds the columns of sp from its list fields.
//
// Entries marked query_only are never rendered, and entries with no matching
// field definition are dropped. Explicit list field attributes win over the
// field definition, which only fills keys left unset.
func MapColumns(sp *legacy.Subpanel, defs legacy.FieldDefinitions) []Column {
	fields := sp.ListFields()
	columns := make([]Column, 0, len(fields))

	for _, f := range fields {
		if f.QueryOnly() {
			continue
		}
		name := f.Name
		if name == "" {
			name = f.Key
		}
		_, hasKey := defs[f.Key]
		_, hasName := defs[name]
		if !hasKey && !hasName {
			continue
		}
		columns = append(columns, buildColumn(f, name, lookupDefinition(defs, f.Key, name)))
	}

	return columns
}

// lookupDefinition tries the lower-cased key, then the key, then the resolved name.
func lookupDefinition(defs legacy.FieldDefinitions, key, name string) legacy.Attributes {
	for _, candidate := range []string{strings.ToLower(key), key, name} {
		if def, ok := defs[candidate]; ok {
			return def
		}
	}
	return nil
}

func buildColumn(f legacy.ListField, name string, def legacy.Attributes) Column {
	col := Column{
		"name":     "",
		"label":    "",
		"sortable": true,
	}
	for k, v := range f.Attributes.Clone() {
		col[k] = v
	}
	col["name"] = name
	col["label"] = f.VName
	if f.WidgetClass == WidgetDetailViewLink {
		col["link"] = true
	}

	for k, v := range def.Clone() {
		if _, set := col[k]; !set {
			col[k] = v
		}
	}
	return col
}
