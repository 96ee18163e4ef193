package search

import (
	"strings"
)

// Searchable is the capability a record must provide to be filtered.
// SearchableText returns a single flattened text blob derived from the
// record's fields; for a fixed record the result must be deterministic so
// that term matching is reproducible across calls.
type Searchable interface {
	SearchableText() string
}

// Predicate reports whether a single record matches a compiled query.
type Predicate[T Searchable] func(record T) bool

// Compile turns an RPN token sequence into a predicate over records.
//
// Evaluation is a boolean stack machine. Each TERM pushes a case-insensitive
// substring test of the term against the record's searchable text. Operators
// pop their operands; an operand-starved operator (a query like a bare "AND")
// short-circuits to non-matching instead of failing. An empty final stack
// also evaluates to non-matching.
func Compile[T Searchable](rpn []Token) Predicate[T] {
	return func(record T) bool {
		var text string
		textReady := false

		stack := make([]bool, 0, len(rpn))

		for _, tok := range rpn {
			switch tok.Type {
			case TERM:
				// The searchable text is derived once per record, on the
				// first term that needs it.
				if !textReady {
					text = strings.ToLower(record.SearchableText())
					textReady = true
				}
				stack = append(stack, strings.Contains(text, strings.ToLower(tok.Text)))

			case AND:
				if len(stack) < 2 {
					return false
				}
				right := stack[len(stack)-1]
				left := stack[len(stack)-2]
				stack = stack[:len(stack)-2]
				stack = append(stack, left && right)

			case OR:
				if len(stack) < 2 {
					return false
				}
				right := stack[len(stack)-1]
				left := stack[len(stack)-2]
				stack = stack[:len(stack)-2]
				stack = append(stack, left || right)

			case NOT:
				if len(stack) < 1 {
					return false
				}
				stack[len(stack)-1] = !stack[len(stack)-1]
			}
		}

		if len(stack) == 0 {
			return false
		}
		return stack[0]
	}
}
