package expander

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/ShihHsuanChen/gocomp/internal/config"
	"github.com/ShihHsuanChen/gocomp/internal/diagnostics"
	"github.com/ShihHsuanChen/gocomp/internal/emitter"
	"github.com/ShihHsuanChen/gocomp/internal/lexer"
	"github.com/ShihHsuanChen/gocomp/internal/parser"
	"github.com/ShihHsuanChen/gocomp/internal/pipeline"
	"github.com/ShihHsuanChen/gocomp/internal/token"
)

// Expander splices translated comprehensions into host source.
type Expander struct {
	opts    emitter.Options
	Verbose bool
	Log     io.Writer
}

func New(cfg *Config) *Expander {
	return &Expander{opts: cfg.EmitterOptions(), Log: os.Stderr}
}

func (e *Expander) logf(format string, args ...interface{}) {
	if e.Verbose && e.Log != nil {
		fmt.Fprintf(e.Log, format+"\n", args...)
	}
}

// ExpandFile expands one template file and writes the generated sibling:
// foo.gocomp becomes foo.go. Nothing is written when any fragment fails.
func (e *Expander) ExpandFile(path string) (string, []*diagnostics.DiagnosticError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", []*diagnostics.DiagnosticError{hostError("reading %s: %v", path, err)}
	}

	expanded, errs := e.ExpandSource(string(data), path)
	if len(errs) > 0 {
		return "", errs
	}

	header := fmt.Sprintf(config.GeneratedHeaderFormat, filepath.Base(path))
	out := header + "\n\n" + expanded

	outPath := generatedPath(path)
	formatted, err := imports.Process(outPath, []byte(out), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
		// Imports are injected explicitly during expansion; only
		// formatting is wanted here, so the resolver never runs.
		FormatOnly: true,
	})
	if err != nil {
		return "", []*diagnostics.DiagnosticError{hostError("formatting %s: %v", outPath, err)}
	}

	if err := os.WriteFile(outPath, formatted, 0644); err != nil {
		return "", []*diagnostics.DiagnosticError{hostError("writing %s: %v", outPath, err)}
	}
	e.logf("gocomp: %s -> %s", path, outPath)
	return outPath, nil
}

// ExpandSource replaces every comp![ ... ] marker in src with its emitted
// expression and injects the imports the expressions need. FilePath is used
// for diagnostics only.
func (e *Expander) ExpandSource(src, filePath string) (string, []*diagnostics.DiagnosticError) {
	expanded, needed, errs := e.expandMarkers(src, filePath)
	if len(errs) > 0 {
		return "", errs
	}
	if len(needed) > 0 {
		expanded = injectImports(expanded, needed, e.runtimeAlias())
	}
	return expanded, nil
}

// expandMarkers rewrites markers innermost-first: fragments are expanded
// recursively before translation, and sibling markers are replaced back to
// front so earlier offsets stay valid.
func (e *Expander) expandMarkers(src, filePath string) (string, []string, []*diagnostics.DiagnosticError) {
	markers, badOffset, ok := findMarkers(src)
	if !ok {
		line, col := positionAt(src, badOffset)
		err := hostError("unterminated %s marker", strings.TrimSuffix(config.MarkerPrefix, "["))
		err.Line, err.Column, err.File = line, col, filePath
		return "", nil, []*diagnostics.DiagnosticError{err}
	}

	needed := map[string]bool{}
	var allErrs []*diagnostics.DiagnosticError

	for i := len(markers) - 1; i >= 0; i-- {
		m := markers[i]
		fragment := m.fragment(src)

		// Nested markers expand first; their output is ordinary host
		// expression text by the time the outer fragment is parsed.
		fragment, nestedImports, errs := e.expandMarkers(fragment, filePath)
		if len(errs) > 0 {
			allErrs = append(allErrs, errs...)
			continue
		}
		for _, imp := range nestedImports {
			needed[imp] = true
		}

		line, col := positionAt(src, m.fragStart)
		expr, imps, errs := e.translateFragment(fragment, filePath, line, col)
		if len(errs) > 0 {
			allErrs = append(allErrs, errs...)
			continue
		}
		for _, imp := range imps {
			needed[imp] = true
		}

		src = src[:m.start] + expr + src[m.end:]
	}

	if len(allErrs) > 0 {
		return "", nil, allErrs
	}

	paths := make([]string, 0, len(needed))
	for imp := range needed {
		paths = append(paths, imp)
	}
	sort.Strings(paths)
	return src, paths, nil
}

// translateFragment runs the core pipeline on one fragment and rebases any
// diagnostics from fragment-relative positions onto the enclosing file.
func (e *Expander) translateFragment(fragment, filePath string, line, col int) (string, []string, []*diagnostics.DiagnosticError) {
	ctx := pipeline.NewPipelineContext(fragment)
	ctx.FilePath = filePath

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		emitter.NewEmitterProcessor(e.opts),
	)
	final := p.Run(ctx)
	e.logf("gocomp: trace %s: %q", final.TraceID, fragment)

	if len(final.Errors) > 0 {
		for _, err := range final.Errors {
			rebase(err, line, col)
		}
		return "", nil, final.Errors
	}
	return final.Output, final.Imports, nil
}

func (e *Expander) runtimeAlias() map[string]string {
	opts := e.opts
	if opts.RuntimeImport == "" {
		opts.RuntimeImport = config.RuntimeImportPath
	}
	if opts.RuntimeAlias == "" {
		opts.RuntimeAlias = config.RuntimeAlias
	}
	if filepath.Base(opts.RuntimeImport) == opts.RuntimeAlias {
		return nil
	}
	return map[string]string{opts.RuntimeImport: opts.RuntimeAlias}
}

// injectImports adds an import declaration right after the package clause
// for every needed path not already imported. Text-level containment is
// enough here: a quoted path anywhere in the file means the import exists
// or the collision is the author's to resolve.
func injectImports(src string, paths []string, aliases map[string]string) string {
	var missing []string
	for _, p := range paths {
		if !strings.Contains(src, `"`+p+`"`) {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return src
	}

	var block strings.Builder
	block.WriteString("\nimport (\n")
	for _, p := range missing {
		if alias, ok := aliases[p]; ok {
			block.WriteString(fmt.Sprintf("\t%s %q\n", alias, p))
		} else {
			block.WriteString(fmt.Sprintf("\t%q\n", p))
		}
	}
	block.WriteString(")\n")

	idx := packageClauseEnd(src)
	if idx < 0 {
		// No package clause: bare snippet, prepend the block.
		return block.String() + src
	}
	return src[:idx] + "\n" + block.String() + src[idx:]
}

// packageClauseEnd returns the offset just past the line containing the
// package clause, or -1 if there is none.
func packageClauseEnd(src string) int {
	offset := 0
	for _, line := range strings.SplitAfter(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "package ") || trimmed == "package" {
			return offset + len(line)
		}
		offset += len(line)
	}
	return -1
}

// positionAt converts a byte offset into 1-based line and column.
func positionAt(src string, offset int) (line, col int) {
	line = 1
	col = 1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// rebase shifts a fragment-relative diagnostic onto file coordinates.
func rebase(err *diagnostics.DiagnosticError, fragLine, fragCol int) {
	if err.Line <= 0 {
		err.Line, err.Column = fragLine, fragCol
		return
	}
	if err.Line == 1 {
		err.Column += fragCol - 1
	}
	err.Line += fragLine - 1
}

func hostError(format string, args ...interface{}) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.ErrX001, token.Token{}, format, args...)
}

// generatedPath maps a template path to its generated sibling:
// pipeline.gocomp -> pipeline.go, pipeline.go.gocomp -> pipeline.go.
func generatedPath(path string) string {
	out := strings.TrimSuffix(path, config.SourceFileExt)
	if !strings.HasSuffix(out, ".go") {
		out += ".go"
	}
	return out
}
