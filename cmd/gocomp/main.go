package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/ShihHsuanChen/gocomp/internal/config"
	"github.com/ShihHsuanChen/gocomp/internal/diagnostics"
	"github.com/ShihHsuanChen/gocomp/internal/expander"
	"github.com/ShihHsuanChen/gocomp/pkg/comp"
)

// Version can be set at build time using: -ldflags "-X main.Version=..."
var Version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [arguments]

Commands:
  expand [fragment]   translate one comprehension fragment (or read it from stdin)
                      and print the emitted Go expression
  build <path>...     expand every %s template file in the given files or
                      directories, writing the generated .go siblings
  version             print the version
  help                print this help

Flags:
  -v, --verbose       log each expansion
`, os.Args[0], config.SourceFileExt)
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			// Print stack trace for debugging
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	verbose := false
	var args []string
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
			continue
		}
		args = append(args, arg)
	}

	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "help", "-help", "--help":
		usage()
	case "version", "-version", "--version":
		fmt.Println("gocomp " + Version)
	case "expand":
		os.Exit(runExpand(args[1:]))
	case "build":
		os.Exit(runBuild(args[1:], verbose))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		usage()
		os.Exit(2)
	}
}

func runExpand(args []string) int {
	fragment, err := readFragment(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	cfg, err := expander.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}

	result, err := comp.TranslateWithOptions(fragment, comp.Options{
		ElemType:      cfg.ElemType,
		RuntimeImport: cfg.Runtime.Import,
		RuntimeAlias:  cfg.Runtime.Alias,
	})
	if err != nil {
		if diag, ok := err.(*diagnostics.DiagnosticError); ok {
			printDiagnostics([]*diagnostics.DiagnosticError{diag})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		return 1
	}

	fmt.Println(result.Expr)
	return 0
}

func runBuild(args []string, verbose bool) int {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s build <file%s|dir>...\n", os.Args[0], config.SourceFileExt)
		return 2
	}

	files, err := collectTemplates(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No %s files found\n", config.SourceFileExt)
		return 1
	}

	failed := false
	for _, file := range files {
		cfg, err := expander.LoadConfig(filepath.Dir(file))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			failed = true
			continue
		}
		exp := expander.New(cfg)
		exp.Verbose = verbose
		if _, errs := exp.ExpandFile(file); len(errs) > 0 {
			printDiagnostics(errs)
			failed = true
		}
	}

	if failed {
		return 1
	}
	return 0
}

func readFragment(args []string) (string, error) {
	if len(args) >= 1 {
		return strings.Join(args, " "), nil
	}
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("Usage: %s expand <fragment> or pipe from stdin", os.Args[0])
	}
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("Error reading input: %w", err)
	}
	return string(input), nil
}

func collectTemplates(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isTemplateFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isTemplateFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func printDiagnostics(errs []*diagnostics.DiagnosticError) {
	fmt.Fprintln(os.Stderr, "Expansion failed with errors:")
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "- %s\n", colorize(err.Error()))
	}
}

// colorize wraps a message in red when stderr is a terminal. NO_COLOR and
// TERM=dumb disable coloring, following https://no-color.org/.
func colorize(msg string) string {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return msg
	}
	if os.Getenv("TERM") == "dumb" {
		return msg
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return msg
	}
	return "\x1b[31m" + msg + "\x1b[0m"
}
