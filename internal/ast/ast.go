// Package ast defines the comprehension IR: the parsed, structured form of a
// fragment, independent of both the surface syntax and the emitted Go. The
// tree is immutable once the parser returns it; the emitter borrows it
// read-only.
package ast

import "github.com/ShihHsuanChen/gocomp/internal/token"

// Expr is an opaque, already-validated sub-expression of the host grammar
// (mapping, filter predicate, or iterated sequence). Text is the verbatim
// source slice; it is pasted into the emitted code unchanged and never
// inspected structurally.
type Expr struct {
	Token token.Token // first token of the expression
	Text  string
}

func (e Expr) GetToken() token.Token { return e.Token }

// Pattern is the binding target of one iteration step.
// A single name binds the whole element; multiple names bind a positional
// decomposition. Names need not be unique; duplicate names are the target
// language's concern.
type Pattern struct {
	Token token.Token // first name token
	Names []string    // length >= 1, order significant
}

// Arity returns the number of bindings the pattern introduces.
func (p *Pattern) Arity() int { return len(p.Names) }

// ForIfClause is one generator stage: a pattern, the sequence it iterates,
// and zero or more filter predicates. Filters are evaluated left to right
// and conjoined; an empty list means unconditionally true.
type ForIfClause struct {
	Token    token.Token // the 'for' token
	Pattern  *Pattern
	Sequence Expr
	Filters  []Expr
}

// Comprehension is the root of the IR.
// Syntax: mapping for_if_clause+
// Example: x * 2 for x in xs if x > 0
//
// Clause order is significant: the leftmost clause is the outermost
// iteration and varies slowest in the emitted pipeline.
type Comprehension struct {
	Token   token.Token // first token of the fragment
	Mapping Expr
	Clauses []*ForIfClause // length >= 1
}

func (c *Comprehension) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}
