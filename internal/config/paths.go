package config

import (
	"os"
	"path/filepath"
)

// Environment variable naming the config file.
const EnvConfig = envPrefix + "_CONFIG"

// Paths contains standard filesystem paths for legacyui.
type Paths struct {
	// ConfigFile is the path to the config file (~/.legacyui/config.yaml).
	ConfigFile string

	// StoreFile is the default SQLite store (~/.legacyui/fielddefs.db).
	StoreFile string

	// HomeDir is the legacyui home directory (~/.legacyui).
	HomeDir string
}

// DefaultPaths returns the default paths for legacyui.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".legacyui")

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		StoreFile:  filepath.Join(home, "fielddefs.db"),
		HomeDir:    home,
	}, nil
}

// GetConfigFile returns the config file path.
// If LEGACYUI_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Dir(expanded), 0o755)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}

// ExpandTilde is ExpandPath that falls back to the input on error.
func ExpandTilde(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}
