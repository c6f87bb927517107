// Package parser recognizes the comprehension grammar and builds the IR.
//
// Grammar:
//
//	comprehension  := mapping for_if_clause+
//	mapping        := expression
//	for_if_clause  := 'for' pattern 'in' sequence ('if' expression)*
//	pattern        := name (',' name)*
//	sequence       := expression
//
// Sub-expressions (mapping, sequence, predicates) are opaque: they are
// scanned as balanced token runs up to the next clause keyword and handed
// to the host expression grammar (go/parser) for validation, never
// interpreted here.
package parser

import (
	goparser "go/parser"
	"strings"

	"github.com/ShihHsuanChen/gocomp/internal/ast"
	"github.com/ShihHsuanChen/gocomp/internal/diagnostics"
	"github.com/ShihHsuanChen/gocomp/internal/pipeline"
	"github.com/ShihHsuanChen/gocomp/internal/token"
)

type Parser struct {
	stream *token.TokenStream
	ctx    *pipeline.PipelineContext
	source string

	curToken  token.Token
	peekToken token.Token
}

func New(stream *token.TokenStream, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{
		stream: stream,
		ctx:    ctx,
		source: ctx.SourceCode,
	}
	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, tok, format, args...))
}

// ParseComprehension parses one complete fragment. On any grammar failure it
// records a diagnostic and returns nil; no partial IR is ever published.
func (p *Parser) ParseComprehension() *ast.Comprehension {
	startToken := p.curToken

	mapping, err := p.parseOpaqueExpr()
	if err != nil {
		p.addError(diagnostics.ErrC001, startToken, "malformed comprehension: invalid mapping expression: %s", err)
		return nil
	}
	if mapping.Text == "" {
		p.addError(diagnostics.ErrC001, startToken, "malformed comprehension: missing mapping expression")
		return nil
	}

	comp := &ast.Comprehension{Token: startToken, Mapping: mapping}

	for p.curTokenIs(token.FOR) {
		clause := p.parseForIfClause()
		if clause == nil {
			return nil
		}
		comp.Clauses = append(comp.Clauses, clause)
	}

	if len(comp.Clauses) == 0 {
		if p.curTokenIs(token.EOF) {
			p.addError(diagnostics.ErrC002, p.curToken, "missing 'for' clause: a comprehension needs at least one generator")
		} else {
			p.addError(diagnostics.ErrC001, p.curToken, "malformed comprehension: unexpected %q after mapping expression", p.curToken.Lexeme)
		}
		return nil
	}

	if !p.curTokenIs(token.EOF) {
		p.addError(diagnostics.ErrC005, p.curToken, "trailing input after comprehension: unexpected %q", p.curToken.Lexeme)
		return nil
	}

	return comp
}

// parseForIfClause parses 'for' pattern 'in' sequence ('if' expression)*.
// curToken is positioned on the 'for' keyword on entry and on the token
// after the clause on return.
func (p *Parser) parseForIfClause() *ast.ForIfClause {
	forToken := p.curToken
	p.nextToken() // consume 'for'

	pattern := p.parsePattern()
	if pattern == nil {
		return nil
	}

	if !p.curTokenIs(token.IN) {
		p.addError(diagnostics.ErrC004, p.curToken, "malformed clause: expected 'in' after pattern, got %q", p.curToken.Lexeme)
		return nil
	}
	p.nextToken() // consume 'in'

	seqToken := p.curToken
	sequence, err := p.parseOpaqueExpr()
	if err != nil {
		p.addError(diagnostics.ErrC004, seqToken, "malformed clause: invalid sequence expression: %s", err)
		return nil
	}
	if sequence.Text == "" {
		p.addError(diagnostics.ErrC004, seqToken, "malformed clause: missing sequence expression after 'in'")
		return nil
	}

	clause := &ast.ForIfClause{Token: forToken, Pattern: pattern, Sequence: sequence}

	for p.curTokenIs(token.IF) {
		p.nextToken() // consume 'if'
		predToken := p.curToken
		predicate, err := p.parseOpaqueExpr()
		if err != nil {
			p.addError(diagnostics.ErrC004, predToken, "malformed clause: invalid filter predicate: %s", err)
			return nil
		}
		if predicate.Text == "" {
			p.addError(diagnostics.ErrC004, predToken, "malformed clause: missing predicate expression after 'if'")
			return nil
		}
		clause.Filters = append(clause.Filters, predicate)
	}

	return clause
}

// parsePattern parses name (',' name)*. curToken is on the first candidate
// name on entry and on the token after the pattern on return.
func (p *Parser) parsePattern() *ast.Pattern {
	if !p.curTokenIs(token.IDENT) {
		p.addError(diagnostics.ErrC003, p.curToken, "malformed pattern: expected a name after 'for', got %q", p.curToken.Lexeme)
		return nil
	}

	pattern := &ast.Pattern{Token: p.curToken, Names: []string{p.curToken.Lexeme}}
	p.nextToken()

	for p.curTokenIs(token.COMMA) {
		p.nextToken() // consume ','
		if !p.curTokenIs(token.IDENT) {
			p.addError(diagnostics.ErrC003, p.curToken, "malformed pattern: expected a name after ',', got %q", p.curToken.Lexeme)
			return nil
		}
		pattern.Names = append(pattern.Names, p.curToken.Lexeme)
		p.nextToken()
	}

	return pattern
}

// parseOpaqueExpr consumes a balanced token run up to the next depth-zero
// clause keyword ('for' or 'if'), a depth-zero closing bracket, or EOF,
// slices the verbatim source text, and delegates validation to the host
// expression grammar. An unmatched closer cannot belong to the expression,
// so it is left for the caller; that is how trailing input surfaces. An
// empty run is returned as an Expr with empty Text; the caller decides
// whether that is an error at its position.
func (p *Parser) parseOpaqueExpr() (ast.Expr, error) {
	startToken := p.curToken
	depth := 0
	end := -1

	for !p.curTokenIs(token.EOF) {
		if depth == 0 && (p.curTokenIs(token.FOR) || p.curTokenIs(token.IF) || p.curToken.IsClose()) {
			break
		}
		if p.curToken.IsOpen() {
			depth++
		} else if p.curToken.IsClose() {
			depth--
		}
		end = p.curToken.End
		p.nextToken()
	}

	if end < 0 {
		return ast.Expr{Token: startToken}, nil
	}

	text := strings.TrimSpace(p.source[startToken.Offset:end])
	if _, err := goparser.ParseExpr(text); err != nil {
		return ast.Expr{}, err
	}

	return ast.Expr{Token: startToken, Text: text}, nil
}
