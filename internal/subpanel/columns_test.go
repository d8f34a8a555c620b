package subpanel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/legacyui/internal/legacy"
)

func TestMapColumns_ExcludesQueryOnly(t *testing.T) {
	sp := panel("contacts", "Contacts",
		listField("account_id", legacy.Attributes{"usage": "query_only"}),
		listField("name", legacy.Attributes{"vname": "LBL_LIST_NAME"}),
	)
	defs := legacy.FieldDefinitions{
		"account_id": {"type": "id"},
		"name":       {"type": "name"},
	}

	got := MapColumns(sp, defs)

	require.Len(t, got, 1)
	assert.Equal(t, "name", got[0].Name())
}

func TestMapColumns_RequiresFieldDefinition(t *testing.T) {
	sp := panel("contacts", "Contacts",
		listField("edit_button", legacy.Attributes{"vname": "LBL_EDIT_BUTTON"}),
		listField("full", legacy.Attributes{"name": "full_name"}),
		listField("email1", nil),
	)
	defs := legacy.FieldDefinitions{
		"full_name": {"type": "fullname"},
		"email1":    {"type": "email"},
	}

	got := MapColumns(sp, defs)

	require.Len(t, got, 2)
	assert.Equal(t, "full_name", got[0].Name())
	assert.Equal(t, "email1", got[1].Name())
}

func TestMapColumns_Merge(t *testing.T) {
	sp := panel("contacts", "Contacts",
		listField("name", legacy.Attributes{
			"vname":        "LBL_LIST_NAME",
			"widget_class": WidgetDetailViewLink,
			"width":        "40%",
			"sortable":     false,
		}),
		listField("phone_work", nil),
	)
	defs := legacy.FieldDefinitions{
		"name": {
			"name":  "name",
			"type":  "name",
			"label": "LBL_NAME",
			"width": "10%",
		},
		"phone_work": {"type": "phone", "vname": "LBL_OFFICE_PHONE"},
	}

	got := MapColumns(sp, defs)
	require.Len(t, got, 2)

	name := got[0]
	assert.Equal(t, "name", name.Name())
	assert.Equal(t, "LBL_LIST_NAME", name.Label())
	assert.True(t, name.Link())
	assert.False(t, name.Sortable())
	assert.Equal(t, "40%", name["width"])
	assert.Equal(t, "name", name["type"])

	phone := got[1]
	assert.Equal(t, "phone_work", phone.Name())
	assert.Equal(t, "", phone.Label())
	assert.False(t, phone.Link())
	assert.True(t, phone.Sortable())
	assert.Equal(t, "phone", phone["type"])
	assert.Equal(t, "LBL_OFFICE_PHONE", phone["vname"])
}

func TestMapColumns_LowerCasedKeyLookup(t *testing.T) {
	sp := panel("cases", "Cases",
		listField("Case_Number", legacy.Attributes{"name": "case_number"}),
	)
	defs := legacy.FieldDefinitions{
		"case_number": {"type": "int"},
	}

	got := MapColumns(sp, defs)

	require.Len(t, got, 1)
	assert.Equal(t, "case_number", got[0].Name())
	assert.Equal(t, "int", got[0]["type"])
}

func TestMapColumns_EmptyListFields(t *testing.T) {
	got := MapColumns(panel("empty", "Notes"), legacy.FieldDefinitions{"name": {}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMapColumns_DoesNotMutateDefinitions(t *testing.T) {
	def := legacy.Attributes{"type": "name", "options": map[string]any{"a": "b"}}
	sp := panel("contacts", "Contacts", listField("name", nil))

	got := MapColumns(sp, legacy.FieldDefinitions{"name": def})
	got[0]["options"].(map[string]any)["a"] = "changed"

	assert.Equal(t, "b", def["options"].(map[string]any)["a"])
}
