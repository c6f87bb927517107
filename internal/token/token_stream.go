package token

// Source produces tokens one at a time. The lexer is the only production
// implementation; tests substitute fixed slices.
type Source interface {
	NextToken() Token
}

// TokenStream is a buffered reader over a Source with arbitrary lookahead.
// The parser consumes it linearly; Peek never commits.
type TokenStream struct {
	source Source
	buf    []Token
	done   bool
}

func NewTokenStream(source Source) *TokenStream {
	return &TokenStream{source: source}
}

func (ts *TokenStream) fill(n int) {
	for len(ts.buf) < n && !ts.done {
		tok := ts.source.NextToken()
		ts.buf = append(ts.buf, tok)
		if tok.Type == EOF {
			ts.done = true
		}
	}
}

// Next returns the next token, advancing the stream. After the underlying
// input is exhausted it keeps returning EOF.
func (ts *TokenStream) Next() Token {
	ts.fill(1)
	if len(ts.buf) == 0 {
		return Token{Type: EOF}
	}
	tok := ts.buf[0]
	if tok.Type != EOF {
		ts.buf = ts.buf[1:]
	}
	return tok
}

// Peek returns up to n upcoming tokens without consuming them.
func (ts *TokenStream) Peek(n int) []Token {
	ts.fill(n)
	if len(ts.buf) < n {
		return ts.buf
	}
	return ts.buf[:n]
}
