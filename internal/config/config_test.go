package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults for a missing file, got %+v", cfg)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "llvmgen.toml")
	contents := "clang_path = \"/opt/llvm/bin/clang\"\noptimize = true\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ClangPath != "/opt/llvm/bin/clang" {
		t.Errorf("ClangPath = %q, want overridden value", cfg.ClangPath)
	}
	if !cfg.Optimize {
		t.Error("expected Optimize to be overridden to true")
	}
	if cfg.OptPath != Default().OptPath {
		t.Errorf("expected unset fields to keep their default, OptPath = %q", cfg.OptPath)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "llvmgen.toml")
	if err := os.WriteFile(path, []byte("this is not valid toml ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}
