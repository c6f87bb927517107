// Package comp is the library surface of the translator: one call turns a
// comprehension fragment into a Go iterator-pipeline expression.
//
//	expr, err := comp.Translate("x * 2 for x in xs if x > 0")
//
// The fragment is the text between the comp![ ... ] delimiters; delimiter
// handling and splicing belong to the host (see internal/expander for the
// bundled one). Translation is a pure function: no state survives a call.
package comp

import (
	"fmt"

	"github.com/ShihHsuanChen/gocomp/internal/emitter"
	"github.com/ShihHsuanChen/gocomp/internal/lexer"
	"github.com/ShihHsuanChen/gocomp/internal/parser"
	"github.com/ShihHsuanChen/gocomp/internal/pipeline"
)

// Options mirror the emitter knobs a host may set. The zero value uses the
// defaults (element type any, the bundled seq runtime).
type Options struct {
	ElemType      string
	RuntimeImport string
	RuntimeAlias  string
}

// Result is the emitted expression plus the import paths it references.
type Result struct {
	Expr    string
	Imports []string
}

// Translate lowers one fragment with default options and returns just the
// expression text.
func Translate(fragment string) (string, error) {
	result, err := TranslateWithOptions(fragment, Options{})
	if err != nil {
		return "", err
	}
	return result.Expr, nil
}

// TranslateWithOptions runs the full pipeline on one fragment. On a parse
// error it returns the first diagnostic; there is never partial output.
func TranslateWithOptions(fragment string, opts Options) (*Result, error) {
	ctx := pipeline.NewPipelineContext(fragment)

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		emitter.NewEmitterProcessor(emitter.Options{
			ElemType:      opts.ElemType,
			RuntimeImport: opts.RuntimeImport,
			RuntimeAlias:  opts.RuntimeAlias,
		}),
	)

	finalCtx := processingPipeline.Run(ctx)

	if len(finalCtx.Errors) > 0 {
		return nil, finalCtx.Errors[0]
	}
	if finalCtx.Output == "" {
		return nil, fmt.Errorf("translation produced no output")
	}

	return &Result{Expr: finalCtx.Output, Imports: finalCtx.Imports}, nil
}
