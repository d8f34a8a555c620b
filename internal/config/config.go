// Package config provides configuration loading and management.
package config

// Field definition sources.
const (
	SourceFiles  = "files"
	SourceSQLite = "sqlite"
)

// FieldDefinitionsConfig selects where column field definitions come from.
type FieldDefinitionsConfig struct {
	// Source is "files" (vardefs under the metadata directory) or "sqlite"
	// (definitions imported with `legacyui vardefs import`).
	// Env: LEGACYUI_FIELD_DEFINITIONS_SOURCE, Default: files
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// StoreConfig contains the SQLite field definition store settings.
type StoreConfig struct {
	// Path is the database file.
	// Env: LEGACYUI_STORE_PATH, Default: ~/.legacyui/fielddefs.db
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address.
	// Env: LEGACYUI_SERVER_ADDR, Default: :8080
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// Config represents the legacyui configuration.
// Loaded from ~/.legacyui/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// MetadataDir is the root of the legacy metadata tree.
	// Env: LEGACYUI_METADATA_DIR, Default: ./metadata
	MetadataDir string `json:"metadataDir,omitempty" yaml:"metadataDir,omitempty"`

	FieldDefinitions FieldDefinitionsConfig `json:"fieldDefinitions,omitempty" yaml:"fieldDefinitions,omitempty"`
	Store            StoreConfig            `json:"store,omitempty" yaml:"store,omitempty"`
	Server           ServerConfig           `json:"server,omitempty" yaml:"server,omitempty"`
	Log              LogConfig              `json:"log,omitempty" yaml:"log,omitempty"`
}

// Default values.
const (
	DefaultMetadataDir = "./metadata"
	DefaultStorePath   = "~/.legacyui/fielddefs.db"
	DefaultServerAddr  = ":8080"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `legacyui config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		MetadataDir:      DefaultMetadataDir,
		FieldDefinitions: FieldDefinitionsConfig{Source: SourceFiles},
		Store:            StoreConfig{Path: DefaultStorePath},
		Server:           ServerConfig{Addr: DefaultServerAddr},
	}
}

// WithDefaults returns a copy of c with unset values filled from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	out := *c
	def := DefaultConfig()
	if out.MetadataDir == "" {
		out.MetadataDir = def.MetadataDir
	}
	if out.FieldDefinitions.Source == "" {
		out.FieldDefinitions.Source = def.FieldDefinitions.Source
	}
	if out.Store.Path == "" {
		out.Store.Path = def.Store.Path
	}
	if out.Server.Addr == "" {
		out.Server.Addr = def.Server.Addr
	}
	return &out
}

// ResolvedValue records where one configuration value came from.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}
