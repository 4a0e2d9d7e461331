// Package config loads build settings for the CLI: compiled-in
// defaults, overridden by an optional llvmgen.toml in the working
// directory, overridden in turn by command-line flags. Grounded on the
// teacher's per-platform CompilationConfig in cmd/pirx/main.go, adapted
// from a hardcoded switch on runtime.GOOS to a file-overridable struct.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every setting the toolchain package needs to locate and
// invoke the external LLVM programs, plus default build behavior.
type Config struct {
	OptPath   string `toml:"opt_path"`
	LlcPath   string `toml:"llc_path"`
	ClangPath string `toml:"clang_path"`
	LliPath   string `toml:"lli_path"`
	CacheDir  string `toml:"cache_dir"`
	Optimize  bool   `toml:"optimize"`
}

// Default returns the compiled-in configuration: external tools
// resolved from PATH by bare name, optimization off, cache directory
// under the OS temp dir.
func Default() Config {
	return Config{
		OptPath:   "opt",
		LlcPath:   "llc",
		ClangPath: "clang",
		LliPath:   "lli",
		CacheDir:  os.TempDir() + "/llvmgen-cache",
		Optimize:  false,
	}
}

// Load returns Default(), overlaid with path if it exists. A missing
// file is not an error: the defaults apply as-is. A malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}
