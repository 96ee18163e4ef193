package search

// Lexer tokenizes boolean search queries.
//
// The scanner is deliberately forgiving: there is no error path. Anything
// that is not whitespace, a parenthesis or a quote is collected into a word,
// and words that are not AND/OR/NOT keywords become search terms. An
// unterminated quoted phrase simply runs to the end of the query.

import (
	"strings"
)

// Lexer scans a query string in a single left-to-right pass.
type Lexer struct {
	source string
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer for the given query.
func NewLexer(query string) *Lexer {
	// Queries are short; one token per ~4 bytes is a generous estimate.
	return &Lexer{
		source: query,
		tokens: make([]Token, 0, len(query)/4+4),
	}
}

// Tokenize scans query into its token sequence. It never fails.
func Tokenize(query string) []Token {
	return NewLexer(query).ScanAll()
}

// ScanAll lexes the entire query and returns all tokens.
// This is a single-pass scanner with no backtracking.
func (l *Lexer) ScanAll() []Token {
	for l.pos < len(l.source) {
		l.skipWhitespace()

		if l.pos >= len(l.source) {
			break
		}

		switch l.peek() {
		case '(':
			l.advance()
			l.tokens = append(l.tokens, Token{Type: LPAREN, Text: "("})
		case ')':
			l.advance()
			l.tokens = append(l.tokens, Token{Type: RPAREN, Text: ")"})
		case '"':
			l.scanPhrase()
		default:
			l.scanWord()
		}
	}

	return l.tokens
}

// scanPhrase scans a quoted phrase: "...". The entire contents, including
// embedded whitespace, become a single TERM. There is no escaping; the first
// '"' after the opening quote closes the phrase. A missing closing quote is
// tolerated and the phrase runs to the end of the query. Empty phrases
// produce no token.
func (l *Lexer) scanPhrase() {
	l.advance() // consume opening quote

	start := l.pos
	for l.pos < len(l.source) && l.source[l.pos] != '"' {
		l.pos++
	}
	phrase := l.source[start:l.pos]

	if l.pos < len(l.source) {
		l.advance() // consume closing quote
	}

	if phrase != "" {
		l.tokens = append(l.tokens, Token{Type: TERM, Text: phrase})
	}
}

// scanWord scans a maximal run of bytes that are not whitespace, parentheses
// or quotes, then classifies it as an operator keyword or a plain term.
// Keyword matching is case-insensitive; terms keep their original casing.
func (l *Lexer) scanWord() {
	start := l.pos
	for l.pos < len(l.source) && !isWordBoundary(l.source[l.pos]) {
		l.pos++
	}

	word := l.source[start:l.pos]

	switch {
	case strings.EqualFold(word, "AND"):
		l.tokens = append(l.tokens, Token{Type: AND, Text: word})
	case strings.EqualFold(word, "OR"):
		l.tokens = append(l.tokens, Token{Type: OR, Text: word})
	case strings.EqualFold(word, "NOT"):
		l.tokens = append(l.tokens, Token{Type: NOT, Text: word})
	default:
		l.tokens = append(l.tokens, Token{Type: TERM, Text: word})
	}
}

// isWordBoundary reports whether ch ends a bare word.
func isWordBoundary(ch byte) bool {
	return isSpace(ch) || ch == '(' || ch == ')' || ch == '"'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// skipWhitespace skips over whitespace bytes.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) && isSpace(l.source[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	return ch
}
