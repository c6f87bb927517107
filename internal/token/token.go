package token

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	// Keywords of the comprehension grammar. Inside a fragment these are
	// reserved even where the host language would allow them as identifiers.
	FOR
	IN
	IF

	IDENT
	COMMA

	// Delimiters are tracked individually so expression scanning can keep a
	// nesting depth and only honor clause keywords at depth zero.
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE

	// ATOM is any other lexeme of the host expression grammar: literals,
	// operators, selectors. The parser never interprets atoms; they only
	// delimit the verbatim slices handed back to the host.
	ATOM
)

var tokenNames = map[TokenType]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "EOF",
	FOR:      "FOR",
	IN:       "IN",
	IF:       "IF",
	IDENT:    "IDENT",
	COMMA:    "COMMA",
	LPAREN:   "LPAREN",
	RPAREN:   "RPAREN",
	LBRACKET: "LBRACKET",
	RBRACKET: "RBRACKET",
	LBRACE:   "LBRACE",
	RBRACE:   "RBRACE",
	ATOM:     "ATOM",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is one lexeme of a comprehension fragment. Offset and End are byte
// positions into the fragment so opaque expressions can be sliced verbatim
// from the original source instead of being re-assembled from lexemes.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
	Offset int
	End    int
}

var keywords = map[string]TokenType{
	"for": FOR,
	"in":  IN,
	"if":  IF,
}

// LookupIdent distinguishes grammar keywords from plain identifiers.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsOpen reports whether the token opens a bracket pair.
func (t Token) IsOpen() bool {
	return t.Type == LPAREN || t.Type == LBRACKET || t.Type == LBRACE
}

// IsClose reports whether the token closes a bracket pair.
func (t Token) IsClose() bool {
	return t.Type == RPAREN || t.Type == RBRACKET || t.Type == RBRACE
}
