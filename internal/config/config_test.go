package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingPathReturnsDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("exists = true for a path that was never created")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Fatalf("cfg = %+v, want built-in defaults", cfg)
	}
}

func TestLoadParsesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`log_level = "debug"`+"\n"+`log_format = "json"`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolvedPath, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists || resolvedPath != path {
		t.Fatalf("exists=%v resolvedPath=%q, want exists=true resolvedPath=%q", exists, resolvedPath, path)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("cfg = %+v, want log_level=debug log_format=json", cfg)
	}
}

func TestSampleConfigIsNonEmpty(t *testing.T) {
	if SampleConfig() == "" {
		t.Fatal("SampleConfig() is empty")
	}
}
