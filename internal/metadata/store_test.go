package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/legacyui/internal/errors"
	"github.com/opmodel/legacyui/internal/legacy"
	"github.com/opmodel/legacyui/internal/testutil"
)

func TestOpen_MissingDir(t *testing.T) {
	_, err := Open("/nonexistent/legacyui/metadata")
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestOpen_WithoutModulesFile(t *testing.T) {
	s, err := Open(testutil.TempDir(t))
	require.NoError(t, err)

	assert.Equal(t, 0, s.Modules().Len())
	assert.Equal(t, "Accounts", s.Modules().ToFrontEnd("Accounts"))

	_, ok := s.Layout("Accounts")
	assert.False(t, ok)
	assert.Empty(t, s.FieldDefinitions("accounts"))
}

func TestStore_Layout(t *testing.T) {
	s, err := Open(testutil.MetadataFixture(t))
	require.NoError(t, err)

	layout, ok := s.Layout("Accounts")
	require.True(t, ok)
	assert.Equal(t, "Accounts", layout.Module)
	require.Len(t, layout.Tabs, 3)
	assert.Equal(t, "contacts", layout.Tabs[0].Key)
	assert.Equal(t, "history", layout.Tabs[1].Key)

	assert.Equal(t, []string{"history", "contacts"}, s.AvailableTabs("Accounts"))

	modules, err := s.LayoutModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"Accounts"}, modules)

	modules, err = s.VardefsModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"Contacts", "Meetings"}, modules)
}

func TestStore_AvailableTabsDefaultsToDeclared(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.WriteFile(t, dir, "layouts/Cases.yaml", `subpanel_setup:
  bugs:
    module: Bugs
  tasks:
    module: Tasks
`)
	s, err := Open(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"bugs", "tasks"}, s.AvailableTabs("Cases"))
}

func TestStore_LoadSubpanel(t *testing.T) {
	s, err := Open(testutil.MetadataFixture(t))
	require.NoError(t, err)
	layout, ok := s.Layout("Accounts")
	require.True(t, ok)

	contacts, ok := s.LoadSubpanel("Accounts", layout.Tabs[0])
	require.True(t, ok)
	assert.False(t, contacts.IsCollection())
	assert.Len(t, contacts.ListFields(), 5)
	require.Len(t, contacts.Buttons(), 2, "tab top_buttons override the panel's")
	assert.Equal(t, "SubPanelTopButtonQuickCreate", contacts.Buttons()[0].WidgetClass)

	history, ok := s.LoadSubpanel("Accounts", layout.Tabs[1])
	require.True(t, ok)
	assert.True(t, history.IsCollection())
	require.Len(t, history.Collection, 2)
	header, ok := history.HeaderPanel()
	require.True(t, ok)
	assert.Equal(t, "meetings", header.Name)

	_, ok = s.LoadSubpanel("Accounts", layout.Tabs[2])
	assert.False(t, ok, "bugs has no default subpanel file")
}

func TestStore_CollectionKeepsLoadableEntries(t *testing.T) {
	s, err := Open(testutil.MetadataFixture(t))
	require.NoError(t, err)

	tab := legacy.TabDescriptor{
		Key:    "activities",
		Module: "Activities",
		CollectionList: legacy.CollectionList{
			{Key: "calls", Module: "Calls"},
			{Key: "notes", Module: "Notes", SubpanelName: "ForHistory"},
		},
	}

	sp, ok := s.LoadSubpanel("Accounts", tab)
	require.True(t, ok)
	require.Len(t, sp.Collection, 1)
	assert.Equal(t, "notes", sp.Collection[0].Name)
}

func TestStore_FieldDefinitionsByFrontendName(t *testing.T) {
	s, err := Open(testutil.MetadataFixture(t))
	require.NoError(t, err)

	defs := s.FieldDefinitions("contacts")
	require.Contains(t, defs, "email1")
	assert.Equal(t, "email", defs["email1"].String("type"))

	assert.Empty(t, s.FieldDefinitions("notes"))
}

func TestStore_InvalidFile(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.WriteFile(t, dir, "layouts/Cases.yaml", `subpanel_setup:
  bugs:
    title_key: LBL_BUGS
`)
	s, err := Open(dir)
	require.NoError(t, err)

	_, err = s.LoadLayout("Cases")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrValidation)

	var detail *oerrors.DetailError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, "Cases", detail.Module)
	assert.Equal(t, "bugs", detail.Tab)
	assert.Contains(t, detail.File, "Cases.yaml")

	_, ok := s.Layout("Cases")
	assert.False(t, ok)

	errs := s.Vet()
	assert.Len(t, errs, 1)
}

func TestStore_VetFixture(t *testing.T) {
	s, err := Open(testutil.MetadataFixture(t))
	require.NoError(t, err)
	assert.Empty(t, s.Vet())
}

func TestStore_Reload(t *testing.T) {
	dir := testutil.MetadataFixture(t)
	s, err := Open(dir)
	require.NoError(t, err)
	assert.Len(t, s.FieldDefinitions("meetings"), 2)

	testutil.WriteFile(t, dir, "vardefs/Meetings.yaml", "fields:\n  name:\n    type: name\n")
	assert.Len(t, s.FieldDefinitions("meetings"), 2, "cached until reload")

	s.Reload()
	assert.Len(t, s.FieldDefinitions("meetings"), 1)
}

func TestModuleMap(t *testing.T) {
	m := NewModuleMap(map[string]string{"Project": "project", "ProjectTask": "project-task"})

	assert.Equal(t, "project-task", m.ToFrontEnd("ProjectTask"))
	assert.Equal(t, "ProjectTask", m.ToLegacy("project-task"))
	assert.Equal(t, "Unknown", m.ToFrontEnd("Unknown"))
	assert.Equal(t, "unknown", m.ToLegacy("unknown"))
}
