// Package toolchain drives the external LLVM programs (opt, llc, clang,
// lli) that turn emitted IR text into an optimized module, an object
// file, a linked executable, or a direct interpreted run. It mirrors the
// teacher's cmd/pirx build driver: write an intermediate file, shell out
// to one external tool per stage, surface combined output on failure.
package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
)

// Toolchain names the external binaries used at each build stage and
// where intermediate files are cached between runs.
type Toolchain struct {
	OptPath   string
	LlcPath   string
	ClangPath string
	LliPath   string
	CacheDir  string
}

// New returns a Toolchain using the default binary names (resolved via
// PATH) and a cache directory under the OS temp dir.
func New() *Toolchain {
	return &Toolchain{
		OptPath:   "opt",
		LlcPath:   "llc",
		ClangPath: "clang",
		LliPath:   "lli",
		CacheDir:  filepath.Join(os.TempDir(), "llvmgen-cache"),
	}
}

// Stage identifies how far a build should proceed.
type Stage int

const (
	StageIR Stage = iota
	StageAssembly
	StageExecutable
)

// BuildOptions controls a single invocation of Build.
type BuildOptions struct {
	Optimize bool   // run `opt` on the IR before lowering it
	Stage    Stage  // how far to carry the build
	Output   string // destination path for the requested stage's artifact
}

// run executes one external command, returning its combined output
// wrapped in an error that a caller can print however it likes.
func (tc *Toolchain) run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return &StageError{Tool: name, Output: string(out), Err: err}
	}
	return nil
}

// StageError reports a failing external tool invocation along with its
// combined stdout/stderr, so a caller can render it (optionally colored)
// without re-running the command.
type StageError struct {
	Tool   string
	Output string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v\n%s", e.Tool, e.Err, e.Output)
}

func (e *StageError) Unwrap() error { return e.Err }

// FormatError renders a StageError for a terminal. When w is a TTY the
// "<tool> failed" banner line is colored red and the tool output follows
// uncolored; otherwise (piped output, CI logs) everything is plain.
func FormatError(w *os.File, err error) string {
	se, ok := err.(*StageError)
	if !ok {
		return err.Error()
	}
	if isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd()) {
		return fmt.Sprintf("\x1b[31m%s failed: %v\x1b[0m\n%s", se.Tool, se.Err, se.Output)
	}
	return se.Error()
}

// Build lowers the IR text irText through opt (optional), llc, and
// clang, stopping at opts.Stage, and writes the final artifact to
// opts.Output. baseName is used to derive intermediate file names inside
// the toolchain's cache directory.
func (tc *Toolchain) Build(irText, baseName string, opts BuildOptions) error {
	lock, err := tc.acquireCacheLock()
	if err != nil {
		return fmt.Errorf("locking build cache: %w", err)
	}
	defer lock.Unlock()

	irPath := filepath.Join(tc.CacheDir, baseName+".ll")
	if err := os.WriteFile(irPath, []byte(irText), 0o644); err != nil {
		return fmt.Errorf("writing intermediate IR: %w", err)
	}

	if opts.Optimize {
		optPath := filepath.Join(tc.CacheDir, baseName+".opt.ll")
		if err := tc.run(tc.OptPath, "-S", "-O2", "-o", optPath, irPath); err != nil {
			return err
		}
		irPath = optPath
	}

	if opts.Stage == StageIR {
		return copyFile(irPath, opts.Output)
	}

	asmPath := filepath.Join(tc.CacheDir, baseName+".s")
	if err := tc.run(tc.LlcPath, "-o", asmPath, irPath); err != nil {
		return err
	}

	if opts.Stage == StageAssembly {
		return copyFile(asmPath, opts.Output)
	}

	if err := tc.run(tc.ClangPath, "-o", opts.Output, asmPath); err != nil {
		return err
	}
	return nil
}

// Run interprets irText directly with lli and returns its combined
// stdout/stderr, without producing any on-disk executable. Used by the
// CLI's "run" subcommand for quick iteration.
func (tc *Toolchain) Run(irText, baseName string) (string, error) {
	lock, err := tc.acquireCacheLock()
	if err != nil {
		return "", fmt.Errorf("locking build cache: %w", err)
	}
	defer lock.Unlock()

	irPath := filepath.Join(tc.CacheDir, baseName+".ll")
	if err := os.WriteFile(irPath, []byte(irText), 0o644); err != nil {
		return "", fmt.Errorf("writing intermediate IR: %w", err)
	}

	cmd := exec.Command(tc.LliPath, irPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), &StageError{Tool: tc.LliPath, Output: string(out), Err: err}
	}
	return string(out), nil
}

// acquireCacheLock ensures the cache directory exists and takes an
// exclusive file lock on it, so concurrent builds sharing one cache
// directory don't trample each other's intermediate files.
func (tc *Toolchain) acquireCacheLock() (*flock.Flock, error) {
	if err := os.MkdirAll(tc.CacheDir, 0o755); err != nil {
		return nil, err
	}
	lock := flock.New(filepath.Join(tc.CacheDir, ".lock"))
	if err := lock.Lock(); err != nil {
		return nil, err
	}
	return lock, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// StageFromName maps a CLI -emit flag value to a Stage.
func StageFromName(name string) (Stage, error) {
	switch strings.ToLower(name) {
	case "ir":
		return StageIR, nil
	case "asm", "assembly":
		return StageAssembly, nil
	case "exe", "executable", "":
		return StageExecutable, nil
	default:
		return 0, fmt.Errorf("unknown emit stage %q", name)
	}
}
