package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "./metadata", cfg.MetadataDir)
	assert.Equal(t, SourceFiles, cfg.FieldDefinitions.Source)
	assert.Equal(t, "~/.legacyui/fielddefs.db", cfg.Store.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Nil(t, cfg.Log.Timestamps)
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := &Config{
		MetadataDir: "/srv/metadata",
		Server:      ServerConfig{Addr: "127.0.0.1:9000"},
	}

	got := cfg.WithDefaults()

	assert.Equal(t, "/srv/metadata", got.MetadataDir)
	assert.Equal(t, "127.0.0.1:9000", got.Server.Addr)
	assert.Equal(t, SourceFiles, got.FieldDefinitions.Source)
	assert.Equal(t, DefaultStorePath, got.Store.Path)

	// The receiver is left untouched.
	assert.Empty(t, cfg.Store.Path)
}

func TestResolvedValue_String(t *testing.T) {
	rv := ResolvedValue{Key: KeyServerAddr, Value: ":9000", Source: SourceEnv}
	assert.Equal(t, ":9000", rv.String())

	rv.Value = true
	assert.Empty(t, rv.String())
}
