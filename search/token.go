package search

// TokenType represents the type of token scanned from a query.
type TokenType uint8

const (
	// TERM is a bare word or the contents of a quoted phrase.
	TERM TokenType = iota

	// Operators
	AND // and
	OR  // or
	NOT // not

	// Grouping
	LPAREN // (
	RPAREN // )
)

var tokenNames = map[TokenType]string{
	TERM:   "TERM",
	AND:    "AND",
	OR:     "OR",
	NOT:    "NOT",
	LPAREN: "(",
	RPAREN: ")",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a single lexical token in a query. Text carries the
// original lexeme and is only meaningful for TERM tokens; operator and
// parenthesis tokens are identified by Type alone.
type Token struct {
	Type TokenType
	Text string
}

// IsOperator reports whether the token is one of AND, OR or NOT.
func (t Token) IsOperator() bool {
	return t.Type == AND || t.Type == OR || t.Type == NOT
}

// precedence returns the binding strength of an operator token.
// Higher binds tighter: NOT > AND > OR. Non-operators have precedence 0.
func precedence(t TokenType) int {
	switch t {
	case NOT:
		return 3
	case AND:
		return 2
	case OR:
		return 1
	default:
		return 0
	}
}
