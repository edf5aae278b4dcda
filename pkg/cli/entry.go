// Package cli implements the kestrelc command line entry point.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kestrel-lang/kestrelc/internal/backend"
	"github.com/kestrel-lang/kestrelc/internal/buildcache"
	"github.com/kestrel-lang/kestrelc/internal/buildcfg"
	"github.com/kestrel-lang/kestrelc/internal/config"
	"github.com/kestrel-lang/kestrelc/internal/diagnostics"
)

const usage = `Usage: kestrelc <command> [arguments]

Commands:
  check          validate kestrel.yaml
  emit           generate C++ for the configured modules
  cache stats    show build cache statistics
  cache clear    remove all build cache entries
  version        print the compiler version
`

// Entry runs the CLI and returns the process exit code.
func Entry(args []string) int {
	diag := diagnostics.Default()

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	switch args[0] {
	case "version":
		fmt.Printf("%s %s\n", config.ToolName, config.ToolVersion)
		return 0
	case "check":
		return runCheck(diag)
	case "emit":
		return runEmit(diag)
	case "cache":
		if len(args) < 2 {
			fmt.Fprint(os.Stderr, usage)
			return 2
		}
		return runCache(diag, args[1])
	default:
		diag.Errorf("unknown command %q", args[0])
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
}

// loadConfig finds and loads kestrel.yaml from the working directory
// upward. Returns the config and the directory containing it.
func loadConfig(diag *diagnostics.Printer) (*buildcfg.Config, string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		diag.Errorf("resolving working directory: %v", err)
		return nil, "", false
	}

	path, err := buildcfg.Find(wd)
	if err != nil {
		diag.Errorf("%v", err)
		return nil, "", false
	}
	if path == "" {
		diag.Errorf("no %s found from %s upward", config.BuildConfigFileName, wd)
		return nil, "", false
	}

	cfg, err := buildcfg.Load(path)
	if err != nil {
		diag.Errorf("%v", err)
		return nil, "", false
	}

	return cfg, filepath.Dir(path), true
}

func runCheck(diag *diagnostics.Printer) int {
	cfg, dir, ok := loadConfig(diag)
	if !ok {
		return 1
	}
	diag.Infof("%s: %d module(s), target %s, output %s",
		filepath.Join(dir, config.BuildConfigFileName), len(cfg.Modules), cfg.Target, cfg.OutputDir)
	return 0
}

func runCache(diag *diagnostics.Printer, sub string) int {
	_, dir, ok := loadConfig(diag)
	if !ok {
		return 1
	}

	cache, err := buildcache.Open(dir)
	if err != nil {
		diag.Errorf("%v", err)
		return 1
	}
	defer cache.Close()

	switch sub {
	case "stats":
		stats, err := cache.Stats()
		if err != nil {
			diag.Errorf("%v", err)
			return 1
		}
		fmt.Printf("entries: %d\nbytes:   %d\n", stats.Entries, stats.Bytes)
		return 0
	case "clear":
		if err := cache.Clear(); err != nil {
			diag.Errorf("%v", err)
			return 1
		}
		diag.Infof("cache cleared")
		return 0
	default:
		diag.Errorf("unknown cache command %q", sub)
		return 2
	}
}

// runEmit drives the backend emitter for every configured module. The
// front end supplies classified function units; until a module has been
// analyzed this emits the bare translation-unit skeleton, which is still
// cached so repeated runs are cheap.
func runEmit(diag *diagnostics.Printer) (code int) {
	// Violated invariants in the backend surface as panics; report them
	// as compiler bugs instead of crashing with a stack trace.
	defer func() {
		if r := recover(); r != nil {
			diag.Internalf("%v", r)
			code = 1
		}
	}()

	cfg, dir, ok := loadConfig(diag)
	if !ok {
		return 1
	}

	var cache *buildcache.Cache
	if cfg.CacheEnabled() {
		var err error
		cache, err = buildcache.Open(dir)
		if err != nil {
			diag.Warnf("build cache unavailable: %v", err)
		} else {
			defer cache.Close()
		}
	}

	outDir := cfg.OutputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(dir, outDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		diag.Errorf("creating output dir: %v", err)
		return 1
	}

	emitter := backend.NewEmitter()

	for _, mod := range cfg.Modules {
		srcPath := mod.Path
		if !filepath.IsAbs(srcPath) {
			srcPath = filepath.Join(dir, srcPath)
		}

		source, err := os.ReadFile(srcPath)
		if err != nil {
			diag.Errorf("reading %s: %v", mod.Path, err)
			return 1
		}

		name := mod.CodeName()
		outPath := filepath.Join(outDir, name+config.GeneratedFileExt)
		key := buildcache.Key(source, cfg.Target)

		if cache != nil {
			if content, hit, err := cache.Get(key); err != nil {
				diag.Warnf("cache read for %s: %v", name, err)
			} else if hit {
				if err := os.WriteFile(outPath, content, 0o644); err != nil {
					diag.Errorf("writing %s: %v", outPath, err)
					return 1
				}
				diag.Infof("%s: cached", name)
				continue
			}
		}

		file, err := emitter.EmitModule(&backend.ModuleUnit{Name: name})
		if err != nil {
			diag.Errorf("%v", err)
			return 1
		}

		if err := os.WriteFile(outPath, []byte(file.Content), 0o644); err != nil {
			diag.Errorf("writing %s: %v", outPath, err)
			return 1
		}
		if cache != nil {
			if err := cache.Put(key, name, []byte(file.Content)); err != nil {
				diag.Warnf("cache write for %s: %v", name, err)
			}
		}
		diag.Infof("%s: emitted %s", name, file.Filename)
	}

	return 0
}
