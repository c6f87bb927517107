package prettyprinter

import (
	"fmt"
	"strings"

	"github.com/ShihHsuanChen/gocomp/internal/ast"
)

// --- Tree Printer (structural dump of the IR) ---

// TreePrinter renders the structural shape of a comprehension: clause
// count, pattern arity and filter count per clause, and the verbatim
// opaque expression texts. Snapshot tests diff this dump to pin the
// parse -> IR mapping.
type TreePrinter struct {
	buf    strings.Builder
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

func (p *TreePrinter) writeLine(format string, args ...interface{}) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.buf.WriteString(fmt.Sprintf(format, args...))
	p.buf.WriteByte('\n')
}

func (p *TreePrinter) Print(comp *ast.Comprehension) {
	if comp == nil {
		p.writeLine("Comprehension <nil>")
		return
	}
	p.writeLine("Comprehension (clauses: %d)", len(comp.Clauses))
	p.indent++
	p.writeLine("Mapping: %s", comp.Mapping.Text)
	for i, clause := range comp.Clauses {
		p.writeLine("Clause %d (arity: %d, filters: %d)", i, clause.Pattern.Arity(), len(clause.Filters))
		p.indent++
		p.writeLine("Pattern: %s", strings.Join(clause.Pattern.Names, ", "))
		p.writeLine("Sequence: %s", clause.Sequence.Text)
		for j, filter := range clause.Filters {
			p.writeLine("Filter %d: %s", j, filter.Text)
		}
		p.indent--
	}
	p.indent--
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

// --- Code Printer (output looks like comprehension source) ---

// CodePrinter re-serializes the IR back to fragment syntax. Together with
// the parser this round-trips any accepted fragment up to whitespace.
type CodePrinter struct {
	buf strings.Builder
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) Print(comp *ast.Comprehension) {
	if comp == nil {
		return
	}
	p.buf.WriteString(comp.Mapping.Text)
	for _, clause := range comp.Clauses {
		p.buf.WriteString(" for ")
		p.buf.WriteString(strings.Join(clause.Pattern.Names, ", "))
		p.buf.WriteString(" in ")
		p.buf.WriteString(clause.Sequence.Text)
		for _, filter := range clause.Filters {
			p.buf.WriteString(" if ")
			p.buf.WriteString(filter.Text)
		}
	}
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}
