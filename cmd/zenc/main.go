// Command zenc is the driver: it reads a Zen source file, runs it
// through the lexer/parser/emitter pipeline, writes the emitted C to
// disk, and hands that file to an external C compiler (spec.md section
// 4.4). It is deliberately thin — everything that decides the shape of
// the output lives in internal/parser and internal/emitter.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/zenlang/zenc/internal/diagnostic"
	"github.com/zenlang/zenc/internal/emitter"
	"github.com/zenlang/zenc/internal/parser"
	"github.com/zenlang/zenc/internal/toolchain"
)

const version = "0.1.0"

var (
	errColor  = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version", "-v", "--version":
		fmt.Printf("zenc version %s\n", version)
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}
	run(opts)
}

// options is the compiler's entire command-line configuration (spec.md
// section 11: no config file). The only environment variable consulted
// is CC, by toolchain.FindCompiler.
type options struct {
	input  string
	output string
}

func parseOptions(args []string) (options, error) {
	var opts options
	var positional []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("-o requires an argument")
			}
			opts.output = args[i+1]
			i++
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) == 0 {
		return opts, fmt.Errorf("no input file specified")
	}
	opts.input = positional[0]
	if opts.output == "" && len(positional) > 1 {
		opts.output = positional[1]
	}
	if opts.output == "" {
		opts.output = defaultOutputName(opts.input)
	}
	return opts, nil
}

func defaultOutputName(input string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	return base + ".c"
}

func printUsage() {
	fmt.Println("zenc - Zen to C source-to-source compiler")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  zenc <input.zen> [-o <output.c>]")
	fmt.Println("  zenc <input.zen> <output.c>")
	fmt.Println("  zenc version")
	fmt.Println("  zenc help")
}

func run(opts options) {
	source, err := os.ReadFile(opts.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", opts.input, err)
		os.Exit(1)
	}

	program, diags := parser.Parse(string(source))

	emitDiags := &diagnostic.Bag{}
	cSource := emitter.Emit(program, emitDiags)
	diags.Merge(emitDiags)
	printDiagnostics(diags)

	if err := os.WriteFile(opts.output, []byte(cSource), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", opts.output, err)
		os.Exit(1)
	}

	compileNative(opts.output)
}

// compileNative invokes the external C compiler on the emitted file.
// Absence of a working compiler is not fatal to the transpilation step
// already completed above (spec.md section 6).
func compileNative(cFile string) {
	compiler, err := toolchain.FindCompiler()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; skipping native compilation\n", err)
		return
	}

	binary := strings.TrimSuffix(cFile, filepath.Ext(cFile)) + ".out"
	result, err := toolchain.Compile(compiler, cFile, binary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error invoking %s: %v\n", compiler, err)
		os.Exit(1)
	}
	if result.Stderr != "" {
		fmt.Fprint(os.Stderr, result.Stderr)
	}
	if result.ExitCode != 0 {
		os.Exit(result.ExitCode)
	}
}

// printDiagnostics renders a diagnostic.Bag to stderr, coloring by
// severity (spec.md section 11). color.Color already detects a
// non-terminal stderr and falls back to plain text in that case.
func printDiagnostics(diags *diagnostic.Bag) {
	for _, d := range diags.All() {
		line := fmt.Sprintf("%s at line %d, column %d: %s", d.Severity, d.Line, d.Column, d.Message)
		switch d.Severity {
		case diagnostic.Error:
			errColor.Fprintln(os.Stderr, line)
		default:
			warnColor.Fprintln(os.Stderr, line)
		}
	}
}
