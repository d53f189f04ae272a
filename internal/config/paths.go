package config

import (
	"os"
	"path/filepath"

	"github.com/stefanclaw/infofetch/internal/info"
)

// Dir returns the configuration directory path (~/.config/infofetch).
// It can be overridden with the INFOFETCH_CONFIG_DIR environment variable.
func Dir() string {
	if d := os.Getenv("INFOFETCH_CONFIG_DIR"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "infofetch")
	}
	return filepath.Join(home, ".config", "infofetch")
}

// ConfigFile returns the path to the config.yaml file.
func ConfigFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

// LogFile returns the path the launcher logs to.
func LogFile() string {
	return filepath.Join(Dir(), "infofetch.log")
}

// DataFile returns the info list path: store.path when set, otherwise
// info_list.json beside the running executable.
func (c Config) DataFile() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join(Dir(), info.FileName)
	}
	return filepath.Join(filepath.Dir(exe), info.FileName)
}
