package search

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// rpnString renders an RPN sequence compactly for comparison.
func rpnString(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == TERM {
			parts = append(parts, tok.Text)
		} else {
			parts = append(parts, tok.Type.String())
		}
	}
	return strings.Join(parts, " ")
}

func TestToRPNOrdering(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single term",
			input: "coffee",
			want:  "coffee",
		},
		{
			name:  "simple and",
			input: "a AND b",
			want:  "a b AND",
		},
		{
			name:  "simple or",
			input: "a OR b",
			want:  "a b OR",
		},
		{
			name:  "not prefix",
			input: "NOT a",
			want:  "a NOT",
		},
		{
			name:  "and binds tighter than or",
			input: "a OR b AND c",
			want:  "a b c AND OR",
		},
		{
			name:  "not binds tighter than and",
			input: "NOT a AND b",
			want:  "a NOT b AND",
		},
		{
			name:  "parens override precedence",
			input: "(a OR b) AND c",
			want:  "a b OR c AND",
		},
		{
			name:  "redundant parens",
			input: "a OR (b AND c)",
			want:  "a b c AND OR",
		},
		{
			name:  "nested parens",
			input: "((a OR b) AND (c OR d))",
			want:  "a b OR c d OR AND",
		},
		{
			name:  "not over group",
			input: "NOT (a OR b)",
			want:  "a b OR NOT",
		},
		{
			name:  "chained and is left associative",
			input: "a AND b AND c",
			want:  "a b AND c AND",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rpn := ToRPN(Tokenize(tt.input))
			assert.Equal(t, tt.want, rpnString(rpn))
		})
	}
}

func TestToRPNMalformedInput(t *testing.T) {
	// Structural irregularities degrade silently; nothing errors.
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unmatched right paren is ignored",
			input: "a) AND b",
			want:  "a b AND",
		},
		{
			name:  "unmatched left paren is discarded",
			input: "(a AND b",
			want:  "a b AND",
		},
		{
			name:  "only parens",
			input: "()",
			want:  "",
		},
		{
			name:  "dangling operator",
			input: "a AND",
			want:  "a AND",
		},
		{
			name:  "consecutive operators",
			input: "a AND AND b",
			want:  "a AND b AND",
		},
		{
			name:  "lone operator",
			input: "AND",
			want:  "AND",
		},
		{
			name:  "deeply nested unbalanced",
			input: "(((a OR b)",
			want:  "a b OR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rpn := ToRPN(Tokenize(tt.input))
			assert.Equal(t, tt.want, rpnString(rpn))
		})
	}
}

func TestToRPNDeepNestingIterative(t *testing.T) {
	// Pathological nesting depth must not recurse; 100k parens would blow a
	// call stack but only grows the explicit operator stack here.
	depth := 100_000
	query := strings.Repeat("(", depth) + "a" + strings.Repeat(")", depth)

	rpn := ToRPN(Tokenize(query))

	assert.Equal(t, 1, len(rpn))
	assert.Equal(t, "a", rpn[0].Text)
}
