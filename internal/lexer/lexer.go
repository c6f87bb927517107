package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/ShihHsuanChen/gocomp/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// NextToken scans the next lexeme of the fragment. Newlines are plain
// whitespace here: a comprehension fragment is a single expression-level
// construct, so line breaks never terminate anything.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	startLine, startCol, startOff := l.line, l.column, l.position

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Line: l.line, Column: l.column, Offset: len(l.input), End: len(l.input)}
	case ',':
		l.readChar()
		return l.emit(token.COMMA, startLine, startCol, startOff)
	case '(':
		l.readChar()
		return l.emit(token.LPAREN, startLine, startCol, startOff)
	case ')':
		l.readChar()
		return l.emit(token.RPAREN, startLine, startCol, startOff)
	case '[':
		l.readChar()
		return l.emit(token.LBRACKET, startLine, startCol, startOff)
	case ']':
		l.readChar()
		return l.emit(token.RBRACKET, startLine, startCol, startOff)
	case '{':
		l.readChar()
		return l.emit(token.LBRACE, startLine, startCol, startOff)
	case '}':
		l.readChar()
		return l.emit(token.RBRACE, startLine, startCol, startOff)
	case '"', '\'', '`':
		// String, rune and raw-string literals are scanned as single atoms
		// so brackets inside them can't disturb the expression depth count.
		if ok := l.readQuoted(l.ch); !ok {
			return l.emit(token.ILLEGAL, startLine, startCol, startOff)
		}
		return l.emit(token.ATOM, startLine, startCol, startOff)
	}

	if isLetter(l.ch) {
		l.readIdentifier()
		tok := l.emit(token.IDENT, startLine, startCol, startOff)
		tok.Type = token.LookupIdent(tok.Lexeme)
		return tok
	}

	if isDigit(l.ch) {
		l.readNumber()
		return l.emit(token.ATOM, startLine, startCol, startOff)
	}

	// Anything else (operators, dots, ...) passes through one rune at a
	// time. Expression text is sliced from the source by byte offsets, so
	// multi-rune operators need no recognition of their own.
	l.readChar()
	return l.emit(token.ATOM, startLine, startCol, startOff)
}

func (l *Lexer) emit(t token.TokenType, line, col, off int) token.Token {
	return token.Token{
		Type:   t,
		Lexeme: l.input[off:l.position],
		Line:   line,
		Column: col,
		Offset: off,
		End:    l.position,
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		// Handle comments
		if l.ch == '/' {
			if l.peekChar() == '/' {
				l.readChar() // consume first /
				l.readChar() // consume second /
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
				continue
			} else if l.peekChar() == '*' {
				l.readChar() // consume /
				l.readChar() // consume *
				for l.ch != 0 {
					if l.ch == '*' && l.peekChar() == '/' {
						l.readChar() // consume *
						l.readChar() // consume /
						break
					}
					l.readChar()
				}
				continue
			}
		}
		break
	}
}

// readQuoted consumes a quoted literal including its delimiters. Backslash
// escapes are honored in " and ' literals but not in raw ` literals.
// Returns false when the literal is unterminated.
func (l *Lexer) readQuoted(quote rune) bool {
	l.readChar() // consume opening quote
	for l.ch != quote {
		if l.ch == 0 {
			return false
		}
		if quote != '`' && l.ch == '\\' {
			l.readChar() // consume backslash
			if l.ch == 0 {
				return false
			}
		}
		l.readChar()
	}
	l.readChar() // consume closing quote
	return true
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() {
	for isDigit(l.ch) || isLetter(l.ch) || l.ch == '.' {
		// Digits, hex/exponent letters and the decimal point are folded
		// into one atom; the host grammar validates the literal itself.
		l.readChar()
	}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
