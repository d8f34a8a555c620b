package config

import (
	"os"

	"github.com/opmodel/legacyui/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolveOptions contains the inputs of one string value resolution.
type ResolveOptions struct {
	// Key is the configuration key, used to find the environment variable.
	Key string
	// FlagValue is the flag value (empty if not set).
	FlagValue string
	// ConfigValue is the value from the config file (empty if not set).
	ConfigValue string
	// Default is the built-in default.
	Default string
}

// Resolve resolves a value using precedence:
// (1) flag, (2) environment variable, (3) config file, (4) default.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]any),
	}

	envValue := os.Getenv(EnvVars[opts.Key])

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.Default},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		// The loader already merged the environment into the config value.
		if c.source == SourceConfig && c.value == envValue {
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	if result.Source == "" {
		result.Value = ""
		result.Source = SourceDefault
	}
	return result
}

// String returns the resolved value as a string.
func (r ResolvedValue) String() string {
	s, _ := r.Value.(string)
	return s
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) LEGACYUI_CONFIG env, (3) ~/.legacyui/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvConfig)

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// Flags carries the command-line overrides of the configuration.
type Flags struct {
	Config           string
	MetadataDir      string
	FieldDefinitions string
	StorePath        string
	ServerAddr       string
}

// Resolved is a fully resolved configuration.
type Resolved struct {
	Config     *Config
	ConfigPath string
	Values     []ResolvedValue
}

// ResolveAll loads the config file and applies flag overrides on top of it.
// Every resolved value is returned for verbose logging.
func ResolveAll(flags Flags) (*Resolved, error) {
	pathResult, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: flags.Config})
	if err != nil {
		return nil, err
	}

	fileCfg, err := NewLoader().Load(pathResult.ConfigPath)
	if err != nil {
		return nil, err
	}

	def := DefaultConfig()
	values := []ResolvedValue{
		{
			Key:      "config",
			Value:    pathResult.ConfigPath,
			Source:   pathResult.Source,
			Shadowed: toAny(pathResult.Shadowed),
		},
		Resolve(ResolveOptions{Key: KeyMetadataDir, FlagValue: flags.MetadataDir, ConfigValue: fileCfg.MetadataDir, Default: def.MetadataDir}),
		Resolve(ResolveOptions{Key: KeyFieldDefinitions, FlagValue: flags.FieldDefinitions, ConfigValue: fileCfg.FieldDefinitions.Source, Default: def.FieldDefinitions.Source}),
		Resolve(ResolveOptions{Key: KeyStorePath, FlagValue: flags.StorePath, ConfigValue: fileCfg.Store.Path, Default: def.Store.Path}),
		Resolve(ResolveOptions{Key: KeyServerAddr, FlagValue: flags.ServerAddr, ConfigValue: fileCfg.Server.Addr, Default: def.Server.Addr}),
	}

	cfg := &Config{
		MetadataDir:      values[1].String(),
		FieldDefinitions: FieldDefinitionsConfig{Source: values[2].String()},
		Store:            StoreConfig{Path: ExpandTilde(values[3].String())},
		Server:           ServerConfig{Addr: values[4].String()},
		Log:              fileCfg.Log,
	}

	return &Resolved{
		Config:     cfg,
		ConfigPath: pathResult.ConfigPath,
		Values:     values,
	}, nil
}

func toAny(m map[ConfigSource]string) map[ConfigSource]any {
	out := make(map[ConfigSource]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
