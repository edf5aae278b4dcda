package buildcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseValid(t *testing.T) {
	data := []byte(`
modules:
  - path: src/main.kst
  - path: src/util.kst
    name: helpers
output_dir: out
target: x86_64-linux-gnu
`)

	cfg, err := Parse(data, "kestrel.yaml")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(cfg.Modules) != 2 {
		t.Fatalf("modules: got %d, want 2", len(cfg.Modules))
	}
	if got := cfg.Modules[0].CodeName(); got != "main" {
		t.Errorf("derived name: got %q, want main", got)
	}
	if got := cfg.Modules[1].CodeName(); got != "helpers" {
		t.Errorf("explicit name: got %q, want helpers", got)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("output dir: got %q", cfg.OutputDir)
	}
	if !cfg.CacheEnabled() {
		t.Errorf("cache should default to enabled")
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("modules:\n  - path: a.kst\n"), "kestrel.yaml")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.OutputDir != "build" {
		t.Errorf("default output dir: got %q", cfg.OutputDir)
	}
	if cfg.Target != "native" {
		t.Errorf("default target: got %q", cfg.Target)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no modules", "output_dir: out\n"},
		{"missing path", "modules:\n  - name: x\n"},
		{"name conflict", "modules:\n  - path: a/mod.kst\n  - path: b/mod.kst\n"},
		{"not a source file", "modules:\n  - path: src/main.txt\n"},
		{"bad yaml", "modules: ["},
	}

	for _, tt := range tests {
		if _, err := Parse([]byte(tt.data), "kestrel.yaml"); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestCodeNameExtensions(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"src/main.kst", "main"},
		{"src/main.kestrel", "main"},
		{"deep/a/b/mod.kst", "mod"},
	}

	for _, tt := range tests {
		m := Module{Path: tt.path}
		if got := m.CodeName(); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCacheDisabled(t *testing.T) {
	cfg, err := Parse([]byte("modules:\n  - path: a.kst\ncache: false\n"), "kestrel.yaml")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.CacheEnabled() {
		t.Errorf("cache should be disabled")
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(root, "kestrel.yaml")
	if err := os.WriteFile(cfgPath, []byte("modules:\n  - path: a.kst\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Find(nested)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found != cfgPath {
		t.Errorf("found %q, want %q", found, cfgPath)
	}
}

func TestFindMissing(t *testing.T) {
	found, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found != "" {
		t.Errorf("found %q in empty tree", found)
	}
}
