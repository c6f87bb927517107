package pipeline

import (
	"github.com/google/uuid"

	"github.com/ShihHsuanChen/gocomp/internal/ast"
	"github.com/ShihHsuanChen/gocomp/internal/diagnostics"
	"github.com/ShihHsuanChen/gocomp/internal/token"
)

// Processor is one stage of the translation pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext threads the state of one translation through the stages.
// One fragment = one context; nothing is shared or cached across calls.
type PipelineContext struct {
	SourceCode string // the comprehension fragment
	FilePath   string // enclosing file, if any (diagnostics only)
	TraceID    string // correlates diagnostics from one translation in verbose output

	TokenStream *token.TokenStream // set by the lexer stage
	Comp        *ast.Comprehension // set by the parser stage
	Output      string             // set by the emitter stage
	Imports     []string           // import paths the emitted expression needs

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(sourceCode string) *PipelineContext {
	return &PipelineContext{
		SourceCode: sourceCode,
		TraceID:    uuid.NewString(),
	}
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Stages guard on their own inputs, so running on after an error
		// is safe and keeps one invocation reporting everything it found.
	}
	return ctx
}
