package diff

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/legacyui/internal/metadata"
	"github.com/opmodel/legacyui/internal/output"
	"github.com/opmodel/legacyui/internal/subpanel"
	"github.com/opmodel/legacyui/internal/testutil"
)

func translate(t *testing.T, dir string) *subpanel.Schema {
	t.Helper()
	store, err := metadata.Open(dir)
	require.NoError(t, err)
	return subpanel.NewTranslator(store.Deps()).Translate("Accounts")
}

func snapshotYAML(t *testing.T, schema *subpanel.Schema) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, output.Encode(&buf, schema, output.FormatYAML))
	return buf.Bytes()
}

func TestCompare_Unchanged(t *testing.T) {
	dir := testutil.MetadataFixture(t)
	schema := translate(t, dir)

	result, err := Compare(snapshotYAML(t, schema), schema, Options{})
	require.NoError(t, err)
	assert.False(t, result.HasChanges())
	assert.Equal(t, "No changes detected.", result.Render(output.NoColorStyles()))
}

func TestCompare_JSONSnapshot(t *testing.T) {
	schema := translate(t, testutil.MetadataFixture(t))

	data, err := json.Marshal(schema)
	require.NoError(t, err)

	result, err := Compare(data, schema, Options{})
	require.NoError(t, err)
	assert.False(t, result.HasChanges())
}

func TestCompare_Changes(t *testing.T) {
	dir := testutil.MetadataFixture(t)
	before := snapshotYAML(t, translate(t, dir))

	// Drop history from the visible tabs and relabel the contacts name column.
	testutil.WriteFile(t, dir, "layouts/Accounts.yaml", `subpanel_setup:
  contacts:
    module: Contacts
    subpanel_name: ForAccounts
    title_key: LBL_CONTACTS_SUBPANEL_TITLE
available_tabs: [contacts]
`)
	testutil.WriteFile(t, dir, "subpanels/Contacts/ForAccounts.yaml", `list_fields:
  name:
    vname: LBL_FULL_NAME
    widget_class: SubPanelDetailViewLink
`)

	result, err := Compare(before, translate(t, dir), Options{})
	require.NoError(t, err)

	assert.True(t, result.HasChanges())
	assert.Empty(t, result.Added)
	assert.Equal(t, []string{"history"}, result.Removed)
	require.Len(t, result.Modified, 1)
	assert.Equal(t, "contacts", result.Modified[0].Name)
	assert.Contains(t, result.Modified[0].Diff, "LBL_FULL_NAME")
}

func TestCompare_AddedTabs(t *testing.T) {
	schema := translate(t, testutil.MetadataFixture(t))

	result, err := Compare([]byte("{}\n"), schema, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"contacts", "history"}, result.Added)
}

func TestCompare_InvalidSnapshot(t *testing.T) {
	schema := subpanel.NewSchema("Accounts")

	_, err := Compare([]byte("- a\n- b\n"), schema, Options{})
	assert.Error(t, err)

	_, err = Compare([]byte("a: [\n"), schema, Options{})
	assert.Error(t, err)
}

func TestParseSnapshot_KeepsOrder(t *testing.T) {
	src, err := yaml.Marshal(map[string]any{"b": 1})
	require.NoError(t, err)

	tabs, order, err := parseSnapshot(append([]byte("z: {}\n"), src...))
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "b"}, order)
	assert.Len(t, tabs, 2)
}
