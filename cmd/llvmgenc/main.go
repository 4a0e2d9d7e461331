// Command llvmgenc is the command-line front end for the compiler: it
// parses one or more source files, lowers them to LLVM IR through
// internal/codegen/eval, and optionally carries the build further
// through the external LLVM toolchain. Structured as cobra subcommands,
// the same shape as the teacher's cmd/pirx build driver.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/iley/llvmgen/internal/ast"
	"github.com/iley/llvmgen/internal/codegen/eval"
	"github.com/iley/llvmgen/internal/config"
	"github.com/iley/llvmgen/internal/lexer"
	"github.com/iley/llvmgen/internal/parser"
	"github.com/iley/llvmgen/internal/toolchain"
)

var (
	outputFile string
	emitStage  string
	optimize   bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "llvmgenc",
	Short: "Compiler front end for the IR generator",
	Long:  "Parses source files and lowers them to LLVM IR, optionally carrying the build through to a linked executable.",
}

var buildCmd = &cobra.Command{
	Use:   "build <file>...",
	Short: "Compile source files, stopping at the stage named by -emit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(args)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <file>...",
	Short: "Compile and immediately interpret the program with lli",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterpreted(args)
	},
}

func init() {
	for _, c := range []*cobra.Command{buildCmd} {
		c.Flags().StringVarP(&outputFile, "o", "o", "", "output file name")
		c.Flags().StringVar(&emitStage, "emit", "exe", "stage to stop at: ir, asm, or exe")
		c.Flags().BoolVarP(&optimize, "O1", "O", false, "run the optimizer before lowering")
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "llvmgen.toml", "path to an optional config overlay")
	rootCmd.AddCommand(buildCmd, runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// compileFiles parses and lowers every input file into one combined IR
// module. Each file contributes its functions to a single program, so
// cross-file calls resolve without a separate linking pass.
func compileFiles(files []string) (string, error) {
	prog, err := parseFiles(files)
	if err != nil {
		return "", err
	}
	ev := eval.New(eval.NewCompileContext())
	ir, err := ev.EvalProgram(prog)
	if err != nil {
		return "", fmt.Errorf("compile error: %w", err)
	}
	return ir, nil
}

func parseFiles(files []string) (*ast.Program, error) {
	var combined *ast.Program
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		lex := lexer.New(f, name)
		prog, err := parser.Parse(lex)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if combined == nil {
			combined = prog
		} else {
			combined.Functions = append(combined.Functions, prog.Functions...)
		}
	}
	return combined, nil
}

func runBuild(files []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ir, err := compileFiles(files)
	if err != nil {
		return err
	}

	stage, err := toolchain.StageFromName(emitStage)
	if err != nil {
		return err
	}

	out := outputFile
	if out == "" {
		out = defaultOutputName(files[0], stage)
	}

	tc := toolchain.New()
	tc.OptPath = cfg.OptPath
	tc.LlcPath = cfg.LlcPath
	tc.ClangPath = cfg.ClangPath
	tc.LliPath = cfg.LliPath
	tc.CacheDir = cfg.CacheDir

	baseName := strings.TrimSuffix(filepath.Base(files[0]), filepath.Ext(files[0]))

	start := time.Now()
	err = tc.Build(ir, baseName, toolchain.BuildOptions{
		Optimize: optimize || cfg.Optimize,
		Stage:    stage,
		Output:   out,
	})
	if err != nil {
		return fmt.Errorf("%s", toolchain.FormatError(os.Stderr, err))
	}
	elapsed := time.Since(start)

	if info, statErr := os.Stat(out); statErr == nil {
		fmt.Printf("Built %s (%s) in %s\n", out, humanize.Bytes(uint64(info.Size())), elapsed.Round(time.Millisecond))
	} else {
		fmt.Printf("Built %s in %s\n", out, elapsed.Round(time.Millisecond))
	}
	return nil
}

func runInterpreted(files []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ir, err := compileFiles(files)
	if err != nil {
		return err
	}

	tc := toolchain.New()
	tc.LliPath = cfg.LliPath
	tc.CacheDir = cfg.CacheDir

	baseName := strings.TrimSuffix(filepath.Base(files[0]), filepath.Ext(files[0]))
	out, err := tc.Run(ir, baseName)
	if err != nil {
		fmt.Fprint(os.Stdout, out)
		return fmt.Errorf("%s", toolchain.FormatError(os.Stderr, err))
	}
	fmt.Fprint(os.Stdout, out)
	return nil
}

func defaultOutputName(firstFile string, stage toolchain.Stage) string {
	base := strings.TrimSuffix(firstFile, filepath.Ext(firstFile))
	switch stage {
	case toolchain.StageIR:
		return base + ".ll"
	case toolchain.StageAssembly:
		return base + ".s"
	default:
		return base
	}
}
