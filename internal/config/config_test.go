package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Keywords.Fetch != "fi" {
		t.Errorf("fetch keyword = %q, want fi", cfg.Keywords.Fetch)
	}
	if cfg.Keywords.Add != "fa" {
		t.Errorf("add keyword = %q, want fa", cfg.Keywords.Add)
	}
	if cfg.Keywords.Remove != "fr" {
		t.Errorf("remove keyword = %q, want fr", cfg.Keywords.Remove)
	}
	if cfg.Search.MaxResults != 8 {
		t.Errorf("max_results = %d, want 8", cfg.Search.MaxResults)
	}
	if cfg.Search.Filter != "auto" {
		t.Errorf("filter = %q, want auto", cfg.Search.Filter)
	}
	if cfg.Store.Path != "" {
		t.Errorf("store.path = %q, want empty", cfg.Store.Path)
	}
	if !cfg.TUI.Watch {
		t.Error("watch should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("INFOFETCH_CONFIG_DIR", tmp)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Should return defaults when config file doesn't exist
	if cfg.Keywords.Fetch != "fi" {
		t.Errorf("keywords.fetch = %q, want fi", cfg.Keywords.Fetch)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("INFOFETCH_CONFIG_DIR", tmp)

	cfg := Defaults()
	cfg.Keywords.Add = "info+"
	cfg.Search.MaxResults = 3

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Verify file exists
	if _, err := os.Stat(filepath.Join(tmp, "config.yaml")); err != nil {
		t.Fatalf("config.yaml not created: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.Keywords.Add != "info+" {
		t.Errorf("loaded add keyword = %q, want info+", loaded.Keywords.Add)
	}
	if loaded.Search.MaxResults != 3 {
		t.Errorf("loaded max_results = %d, want 3", loaded.Search.MaxResults)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("INFOFETCH_CONFIG_DIR", tmp)
	os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte("keywords:\n  fetch: get\n"), 0o644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Keywords.Fetch != "get" {
		t.Errorf("fetch keyword = %q, want get", cfg.Keywords.Fetch)
	}
	if cfg.Keywords.Add != "fa" {
		t.Errorf("add keyword = %q, want default fa", cfg.Keywords.Add)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("INFOFETCH_CONFIG_DIR", tmp)
	os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte("keywords: [not, a, map"), 0o644)

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on invalid yaml")
	}
}

func TestIsFirstRun(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("INFOFETCH_CONFIG_DIR", tmp)

	if !IsFirstRun() {
		t.Error("IsFirstRun() = false, want true (no config.yaml)")
	}

	if err := Save(Defaults()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if IsFirstRun() {
		t.Error("IsFirstRun() = true, want false (config.yaml exists)")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty fetch", func(c *Config) { c.Keywords.Fetch = "" }, "keywords.fetch"},
		{"duplicate", func(c *Config) { c.Keywords.Remove = c.Keywords.Add }, "both"},
		{"bad timeout", func(c *Config) { c.Search.Timeout = "soon" }, "search.timeout"},
	}

	for _, tt := range tests {
		cfg := Defaults()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: Validate() = nil, want error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error = %q, want mention of %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestSearchTimeout(t *testing.T) {
	cfg := Defaults()
	if got := cfg.SearchTimeout(); got != 5*time.Second {
		t.Errorf("SearchTimeout() = %v, want 5s", got)
	}

	cfg.Search.Timeout = "250ms"
	if got := cfg.SearchTimeout(); got != 250*time.Millisecond {
		t.Errorf("SearchTimeout() = %v, want 250ms", got)
	}

	cfg.Search.Timeout = ""
	if got := cfg.SearchTimeout(); got != 5*time.Second {
		t.Errorf("SearchTimeout() with empty value = %v, want 5s", got)
	}
}
