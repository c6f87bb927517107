// Package emitter lowers a comprehension IR into one Go expression: a lazy
// range-over-func pipeline equivalent to the nested map-filter iteration the
// source describes.
//
// For the fragment
//
//	x * 2 for x in xs if x > 0
//
// the emitted expression is
//
//	iter.Seq[any](func(yield func(any) bool) {
//		for x := range seq.Values(xs) {
//			if !(x > 0) {
//				continue
//			}
//			if !yield(x * 2) {
//				return
//			}
//		}
//	})
//
// Clauses nest left to right (the leftmost clause is the outermost loop, so
// it varies slowest), filters conjoin with short-circuit &&, and the whole
// expression produces elements one at a time: laziness, ordering and early
// termination all ride on Go's range-over-func contract. Go function
// literals need explicit parameter types, which the translator does not
// know for opaque expressions; range bindings are inferred from the
// sequence, so the stages lower to nested loops inside a single generator
// literal rather than a chain of adaptor calls with typed closures. Only
// the produced element type is configurable (default any).
package emitter

import (
	"fmt"
	"strings"

	"github.com/ShihHsuanChen/gocomp/internal/ast"
	"github.com/ShihHsuanChen/gocomp/internal/config"
)

// Options control the surface of the emitted expression. The zero value is
// usable; empty fields fall back to the defaults in internal/config.
type Options struct {
	// ElemType is the element type of the produced iter.Seq. The
	// translator never inspects the mapping expression, so it cannot
	// infer this; hosts that know the type can set it.
	ElemType string

	// RuntimeImport is the import path of the runtime package providing
	// the source adaptor the loops range over.
	RuntimeImport string

	// RuntimeAlias is the package name the emitted code refers to the
	// runtime by.
	RuntimeAlias string
}

func (o Options) withDefaults() Options {
	if o.ElemType == "" {
		o.ElemType = config.DefaultElemType
	}
	if o.RuntimeImport == "" {
		o.RuntimeImport = config.RuntimeImportPath
	}
	if o.RuntimeAlias == "" {
		o.RuntimeAlias = config.RuntimeAlias
	}
	return o
}

// Result is one emitted expression plus the imports it needs. Imports are
// paths only; the host decides how to splice them into the enclosing file.
type Result struct {
	Expr    string
	Imports []string
}

type Emitter struct {
	opts   Options
	buf    strings.Builder
	indent int
}

func New(opts Options) *Emitter {
	return &Emitter{opts: opts.withDefaults()}
}

func (e *Emitter) writeLine(line string) {
	for i := 0; i < e.indent; i++ {
		e.buf.WriteByte('\t')
	}
	e.buf.WriteString(line)
	e.buf.WriteByte('\n')
}

// Emit lowers the comprehension. The IR comes from the parser, which
// enforces all structural invariants, so emission has no failure path:
// given a well-formed tree it always produces a complete expression.
func (e *Emitter) Emit(comp *ast.Comprehension) *Result {
	elem := e.opts.ElemType

	e.buf.Reset()
	e.indent = 0
	e.buf.WriteString(fmt.Sprintf("iter.Seq[%s](func(yield func(%s) bool) {\n", elem, elem))
	e.indent = 1

	// The nesting is built iteratively, one stage per clause, with the
	// closing braces replayed afterwards: the structural right-fold of
	// the lowering without recursion over the clause list.
	for i, clause := range comp.Clauses {
		binder := clause.Pattern.Names[0]
		if clause.Pattern.Arity() > 1 {
			binder = elementVar(i)
		}

		e.writeLine(fmt.Sprintf("for %s := range %s.Values(%s) {", binder, e.opts.RuntimeAlias, clause.Sequence.Text))
		e.indent++

		if clause.Pattern.Arity() > 1 {
			e.writeLine(destructure(clause.Pattern.Names, binder))
		}

		if len(clause.Filters) > 0 {
			e.writeLine(fmt.Sprintf("if !%s {", guard(clause.Filters)))
			e.indent++
			e.writeLine("continue")
			e.indent--
			e.writeLine("}")
		}
	}

	e.writeLine(fmt.Sprintf("if !yield(%s) {", comp.Mapping.Text))
	e.indent++
	e.writeLine("return")
	e.indent--
	e.writeLine("}")

	for range comp.Clauses {
		e.indent--
		e.writeLine("}")
	}
	e.buf.WriteString("})")

	return &Result{
		Expr:    e.buf.String(),
		Imports: []string{"iter", e.opts.RuntimeImport},
	}
}

// elementVar names the raw element binding of a destructuring clause. The
// clause index keeps the name unique across nested stages.
func elementVar(i int) string {
	return fmt.Sprintf("__e%d", i)
}

// destructure binds a multi-name pattern by positional decomposition of the
// iterated element. An element whose length does not match the pattern
// arity fails at target run time (index out of range), which is the target
// language's concern, not the translator's.
func destructure(names []string, binder string) string {
	parts := make([]string, len(names))
	for i := range names {
		parts[i] = fmt.Sprintf("%s[%d]", binder, i)
	}
	return strings.Join(names, ", ") + " := " + strings.Join(parts, ", ")
}

// guard conjoins a clause's filters left to right. Each filter keeps its
// own parentheses so opaque expressions cannot leak precedence into the
// conjunction; && evaluation order gives the required short-circuit.
func guard(filters []ast.Expr) string {
	if len(filters) == 1 {
		return "(" + filters[0].Text + ")"
	}
	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = "(" + f.Text + ")"
	}
	return "(" + strings.Join(parts, " && ") + ")"
}
