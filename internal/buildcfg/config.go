// Package buildcfg parses and validates kestrel.yaml, the per-project
// build configuration.
package buildcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kestrel-lang/kestrelc/internal/config"
)

// Config represents the top-level kestrel.yaml configuration.
type Config struct {
	// Modules lists the source modules to compile.
	Modules []Module `yaml:"modules"`

	// OutputDir is where generated C++ files are written. Defaults to
	// "build".
	OutputDir string `yaml:"output_dir,omitempty"`

	// Target is the target triple baked into cache keys (e.g.
	// "x86_64-linux-gnu"). Defaults to "native".
	Target string `yaml:"target,omitempty"`

	// Cache enables the build cache under .kestrel/. Defaults to true;
	// set to false to force regeneration.
	Cache *bool `yaml:"cache,omitempty"`
}

// Module is a single compiled source module.
type Module struct {
	// Path is the source file path, relative to kestrel.yaml.
	Path string `yaml:"path"`

	// Name overrides the module code name derived from the file name.
	Name string `yaml:"name,omitempty"`
}

// Load reads and parses a kestrel.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses kestrel.yaml content from bytes. The path argument is
// used only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// Find searches for kestrel.yaml starting from dir and walking up to
// parent directories. Returns the path and nil error if found, or empty
// string and nil error if not found.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, config.BuildConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		candidate = filepath.Join(dir, config.BuildConfigFileNameAlt)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if len(c.Modules) == 0 {
		return fmt.Errorf("%s: no modules defined", path)
	}

	seenNames := make(map[string]string) // name → path (for conflict detection)

	for i, mod := range c.Modules {
		if mod.Path == "" {
			return fmt.Errorf("%s: modules[%d]: path is required", path, i)
		}
		if sourceExt(mod.Path) == "" {
			return fmt.Errorf("%s: modules[%d]: %s is not a source file (expected %s)",
				path, i, mod.Path, config.SourceFileExt)
		}

		name := mod.CodeName()
		if prev, ok := seenNames[name]; ok && prev != mod.Path {
			return fmt.Errorf("%s: modules[%d]: module name %q conflicts with %s",
				path, i, name, prev)
		}
		seenNames[name] = mod.Path
	}

	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "build"
	}
	if c.Target == "" {
		c.Target = "native"
	}
}

// CacheEnabled reports whether the build cache should be used.
func (c *Config) CacheEnabled() bool {
	return c.Cache == nil || *c.Cache
}

// CodeName returns the module's generated-code name: the explicit Name
// if set, otherwise the source file base name without extension.
func (m *Module) CodeName() string {
	if m.Name != "" {
		return m.Name
	}
	base := filepath.Base(m.Path)
	if ext := sourceExt(base); ext != "" {
		return base[:len(base)-len(ext)]
	}
	return base
}

// sourceExt returns the recognized source extension of path, or "".
func sourceExt(path string) string {
	base := filepath.Base(path)
	for _, ext := range config.SourceFileExtensions {
		if len(base) > len(ext) && strings.HasSuffix(base, ext) {
			return ext
		}
	}
	return ""
}
