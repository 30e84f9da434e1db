package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Preferences.MaxRepairAttempts != 1 {
		t.Errorf("MaxRepairAttempts = %d, want 1", cfg.Preferences.MaxRepairAttempts)
	}
	if cfg.Reasoner.Enabled() {
		t.Error("reasoner enabled by default")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}

func TestLoadHydratesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "config_format_version: \"1\"\nreasoner:\n  endpoint: http://localhost:9000\n"
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Reasoner.Enabled() {
		t.Error("reasoner endpoint not loaded")
	}
	if cfg.Reasoner.TimeoutSeconds != 10 {
		t.Errorf("reasoner timeout = %d, want hydrated 10", cfg.Reasoner.TimeoutSeconds)
	}
	if cfg.Preferences.HandlerTimeoutSeconds != 30 {
		t.Errorf("handler timeout = %d, want hydrated 30", cfg.Preferences.HandlerTimeoutSeconds)
	}
}
