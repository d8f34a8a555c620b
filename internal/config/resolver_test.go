package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FlagPrecedence(t *testing.T) {
	t.Setenv("LEGACYUI_SERVER_ADDR", ":7000")

	result := Resolve(ResolveOptions{
		Key:         KeyServerAddr,
		FlagValue:   ":9000",
		ConfigValue: ":7000",
		Default:     ":8080",
	})

	assert.Equal(t, ":9000", result.Value)
	assert.Equal(t, SourceFlag, result.Source)
	assert.Equal(t, ":7000", result.Shadowed[SourceEnv])
	assert.NotContains(t, result.Shadowed, SourceConfig, "config value merged from env is not reported twice")
	assert.Equal(t, ":8080", result.Shadowed[SourceDefault])
}

func TestResolve_EnvPrecedence(t *testing.T) {
	t.Setenv("LEGACYUI_METADATA_DIR", "/env/metadata")

	result := Resolve(ResolveOptions{
		Key:         KeyMetadataDir,
		ConfigValue: "/env/metadata",
		Default:     DefaultMetadataDir,
	})

	assert.Equal(t, "/env/metadata", result.Value)
	assert.Equal(t, SourceEnv, result.Source)
	assert.NotContains(t, result.Shadowed, SourceFlag)
}

func TestResolve_ConfigFallback(t *testing.T) {
	t.Setenv("LEGACYUI_STORE_PATH", "")

	result := Resolve(ResolveOptions{
		Key:         KeyStorePath,
		ConfigValue: "/data/defs.db",
		Default:     DefaultStorePath,
	})

	assert.Equal(t, "/data/defs.db", result.Value)
	assert.Equal(t, SourceConfig, result.Source)
	assert.Equal(t, DefaultStorePath, result.Shadowed[SourceDefault])
}

func TestResolve_Default(t *testing.T) {
	t.Setenv("LEGACYUI_FIELD_DEFINITIONS_SOURCE", "")

	result := Resolve(ResolveOptions{Key: KeyFieldDefinitions, Default: SourceFiles})

	assert.Equal(t, SourceFiles, result.Value)
	assert.Equal(t, SourceDefault, result.Source)
	assert.Empty(t, result.Shadowed)
}

func TestResolveConfigPath(t *testing.T) {
	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(EnvConfig, "/env/config.yaml")

		result, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: "/flag/config.yaml"})

		require.NoError(t, err)
		assert.Equal(t, "/flag/config.yaml", result.ConfigPath)
		assert.Equal(t, SourceFlag, result.Source)
		assert.Equal(t, "/env/config.yaml", result.Shadowed[SourceEnv])
		assert.Contains(t, result.Shadowed, SourceDefault)
	})

	t.Run("env wins over default", func(t *testing.T) {
		t.Setenv(EnvConfig, "/env/config.yaml")

		result, err := ResolveConfigPath(ResolveConfigPathOptions{})

		require.NoError(t, err)
		assert.Equal(t, "/env/config.yaml", result.ConfigPath)
		assert.Equal(t, SourceEnv, result.Source)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvConfig, "")

		result, err := ResolveConfigPath(ResolveConfigPathOptions{})

		require.NoError(t, err)
		assert.Equal(t, SourceDefault, result.Source)
		assert.Equal(t, "config.yaml", filepath.Base(result.ConfigPath))
	})
}

func TestResolveAll(t *testing.T) {
	for _, env := range EnvVars {
		t.Setenv(env, "")
	}
	path := writeConfig(t, `
metadataDir: /file/metadata
server:
  addr: 127.0.0.1:9000
`)

	resolved, err := ResolveAll(Flags{Config: path, MetadataDir: "/flag/metadata"})

	require.NoError(t, err)
	assert.Equal(t, path, resolved.ConfigPath)
	assert.Equal(t, "/flag/metadata", resolved.Config.MetadataDir)
	assert.Equal(t, "127.0.0.1:9000", resolved.Config.Server.Addr)
	assert.Equal(t, SourceFiles, resolved.Config.FieldDefinitions.Source)
	assert.Equal(t, ExpandTilde(DefaultStorePath), resolved.Config.Store.Path)

	sources := map[string]ConfigSource{}
	for _, v := range resolved.Values {
		sources[v.Key] = v.Source
	}
	assert.Equal(t, SourceFlag, sources["config"])
	assert.Equal(t, SourceFlag, sources[KeyMetadataDir])
	assert.Equal(t, SourceConfig, sources[KeyServerAddr])
	assert.Equal(t, SourceDefault, sources[KeyStorePath])
}
