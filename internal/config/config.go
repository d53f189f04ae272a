package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Keywords KeywordsConfig `yaml:"keywords"`
	Search   SearchConfig   `yaml:"search"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	TUI      TUIConfig      `yaml:"tui"`
}

// KeywordsConfig holds the three command keywords.
type KeywordsConfig struct {
	Fetch  string `yaml:"fetch"`
	Add    string `yaml:"add"`
	Remove string `yaml:"remove"`
}

// SearchConfig holds fuzzy search settings.
type SearchConfig struct {
	MaxResults int    `yaml:"max_results"`
	Filter     string `yaml:"filter"` // auto, fzf or fuzzy
	FzfPath    string `yaml:"fzf_path"`
	Timeout    string `yaml:"timeout"` // e.g. "5s"
}

// StoreConfig holds data file settings.
type StoreConfig struct {
	Path string `yaml:"path"` // empty: info_list.json next to the executable
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// TUIConfig holds launcher settings.
type TUIConfig struct {
	Watch bool `yaml:"watch"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Keywords: KeywordsConfig{
			Fetch:  "fi",
			Add:    "fa",
			Remove: "fr",
		},
		Search: SearchConfig{
			MaxResults: 8,
			Filter:     "auto",
			FzfPath:    "fzf",
			Timeout:    "5s",
		},
		Log: LogConfig{
			Level: "info",
		},
		TUI: TUIConfig{
			Watch: true,
		},
	}
}

// Load reads the config from disk. If the file doesn't exist, returns defaults.
func Load() (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(ConfigFile())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), err
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigFile(), data, 0o644)
}

// IsFirstRun returns true if the config file does not exist.
func IsFirstRun() bool {
	_, err := os.Stat(ConfigFile())
	return os.IsNotExist(err)
}

// Validate checks that the keywords are set and distinct.
func (c Config) Validate() error {
	kw := map[string]string{
		"fetch":  c.Keywords.Fetch,
		"add":    c.Keywords.Add,
		"remove": c.Keywords.Remove,
	}
	seen := make(map[string]string, len(kw))
	for _, id := range []string{"fetch", "add", "remove"} {
		word := kw[id]
		if word == "" {
			return fmt.Errorf("keywords.%s must not be empty", id)
		}
		if other, ok := seen[word]; ok {
			return fmt.Errorf("keywords.%s and keywords.%s are both %q", other, id, word)
		}
		seen[word] = id
	}
	if _, err := time.ParseDuration(c.Search.Timeout); c.Search.Timeout != "" && err != nil {
		return fmt.Errorf("search.timeout: %w", err)
	}
	return nil
}

// SearchTimeout returns the parsed filter timeout, falling back to 5s.
func (c Config) SearchTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Search.Timeout)
	if d <= 0 {
		return 5 * time.Second
	}
	return d
}
