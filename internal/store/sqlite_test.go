package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/legacyui/internal/identity"
	"github.com/opmodel/legacyui/internal/legacy"
	"github.com/opmodel/legacyui/internal/testutil"
)

type upperMapper map[string]string

func (m upperMapper) ToLegacy(module string) string {
	if l, ok := m[module]; ok {
		return l
	}
	return module
}

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(upperMapper{"contacts": "Contacts"})
	require.NoError(t, s.Open(":memory:"))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_ImportAndLoad(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	n, err := s.Import(ctx, "Contacts", legacy.FieldDefinitions{
		"name":   {"type": "name", "len": 255},
		"email1": {"type": "email", "options": map[string]any{"a": "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	defs, err := s.LoadModule(ctx, "Contacts")
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "email", defs["email1"].String("type"))
	assert.Equal(t, float64(255), defs["name"]["len"])
	assert.Equal(t, "b", defs["email1"]["options"].(map[string]any)["a"])
}

func TestSQLiteStore_ImportUpserts(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Import(ctx, "Contacts", legacy.FieldDefinitions{"name": {"type": "name"}})
	require.NoError(t, err)
	_, err = s.Import(ctx, "Contacts", legacy.FieldDefinitions{"name": {"type": "fullname"}})
	require.NoError(t, err)

	defs, err := s.LoadModule(ctx, "Contacts")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "fullname", defs["name"].String("type"))

	modules, err := s.Modules(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Contacts"}, modules)
}

func TestSQLiteStore_FieldDefinitionsByFrontendName(t *testing.T) {
	s := setupStore(t)
	_, err := s.Import(context.Background(), "Contacts", legacy.FieldDefinitions{"name": {"type": "name"}})
	require.NoError(t, err)

	assert.Len(t, s.FieldDefinitions("contacts"), 1)
	assert.Empty(t, s.FieldDefinitions("accounts"))
}

func TestSQLiteStore_ClosedStore(t *testing.T) {
	s := NewSQLiteStore(nil)

	_, err := s.LoadModule(context.Background(), "Contacts")
	assert.Error(t, err)
	assert.Empty(t, s.FieldDefinitions("Contacts"))
	assert.NoError(t, s.Close())
}

func TestSQLiteStore_FileDatabase(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "fields.db")
	ctx := context.Background()

	s := NewSQLiteStore(nil)
	require.NoError(t, s.Open(path))
	_, err := s.Import(ctx, "Notes", legacy.FieldDefinitions{"name": {"type": "name"}})
	require.NoError(t, err)
	version, err := s.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	require.NoError(t, s.Close())

	reopened := NewSQLiteStore(nil)
	require.NoError(t, reopened.Open(path))
	defer reopened.Close()

	defs, err := reopened.LoadModule(ctx, "Notes")
	require.NoError(t, err)
	assert.Len(t, defs, 1)
}

func TestSQLiteStore_RowIdentity(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Import(ctx, "Contacts", legacy.FieldDefinitions{"name": {"type": "name"}})
	require.NoError(t, err)

	var id string
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT id FROM field_definitions WHERE module = ? AND name = ?`, "Contacts", "name").Scan(&id))
	assert.Equal(t, identity.FieldDefinitionID("Contacts", "name").String(), id)
}
