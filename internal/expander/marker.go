package expander

import (
	"strings"

	"github.com/ShihHsuanChen/gocomp/internal/config"
)

// marker is one comp![ ... ] occurrence in host source.
type marker struct {
	start     int // offset of the marker prefix
	fragStart int // offset of the first fragment byte
	fragEnd   int // offset of the closing ']'
	end       int // offset just past the closing ']'
}

func (m marker) fragment(src string) string {
	return src[m.fragStart:m.fragEnd]
}

// scanState tracks enough of the host lexical grammar to ignore marker
// prefixes and brackets inside string/rune literals and comments.
type scanState int

const (
	stateCode scanState = iota
	stateLineComment
	stateBlockComment
	stateDQuote
	stateSQuote
	stateBackquote
)

// findMarkers locates every marker in src, in order. An opened marker with
// no matching close reports ok=false with the offset of its prefix.
func findMarkers(src string) (markers []marker, badOffset int, ok bool) {
	state := stateCode
	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch state {
		case stateLineComment:
			if ch == '\n' {
				state = stateCode
			}
		case stateBlockComment:
			if ch == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = stateCode
				i++
			}
		case stateDQuote, stateSQuote:
			if ch == '\\' {
				i++
			} else if (state == stateDQuote && ch == '"') || (state == stateSQuote && ch == '\'') {
				state = stateCode
			}
		case stateBackquote:
			if ch == '`' {
				state = stateCode
			}
		case stateCode:
			switch {
			case ch == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stateLineComment
				i++
			case ch == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stateBlockComment
				i++
			case ch == '"':
				state = stateDQuote
			case ch == '\'':
				state = stateSQuote
			case ch == '`':
				state = stateBackquote
			case strings.HasPrefix(src[i:], config.MarkerPrefix):
				m, mok := matchMarker(src, i)
				if !mok {
					return markers, i, false
				}
				markers = append(markers, m)
				i = m.end - 1
			}
		}
	}
	return markers, 0, true
}

// matchMarker finds the ']' closing the marker opened at offset start.
// Square-bracket depth is tracked through the fragment (a ']' can only
// occur inside an index/literal bracket pair or a string, both of which
// are accounted for), so the first depth-zero ']' closes the marker.
func matchMarker(src string, start int) (marker, bool) {
	fragStart := start + len(config.MarkerPrefix)
	depth := 0
	state := stateCode
	for i := fragStart; i < len(src); i++ {
		ch := src[i]
		switch state {
		case stateLineComment:
			if ch == '\n' {
				state = stateCode
			}
		case stateBlockComment:
			if ch == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = stateCode
				i++
			}
		case stateDQuote, stateSQuote:
			if ch == '\\' {
				i++
			} else if (state == stateDQuote && ch == '"') || (state == stateSQuote && ch == '\'') {
				state = stateCode
			}
		case stateBackquote:
			if ch == '`' {
				state = stateCode
			}
		case stateCode:
			switch {
			case ch == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stateLineComment
				i++
			case ch == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stateBlockComment
				i++
			case ch == '"':
				state = stateDQuote
			case ch == '\'':
				state = stateSQuote
			case ch == '`':
				state = stateBackquote
			case ch == '[':
				depth++
			case ch == ']':
				if depth == 0 {
					return marker{start: start, fragStart: fragStart, fragEnd: i, end: i + 1}, true
				}
				depth--
			}
		}
	}
	return marker{}, false
}
