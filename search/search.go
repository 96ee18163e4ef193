// Package search implements a boolean query engine for filtering ledger
// records. Queries support the operators AND, OR and NOT (case-insensitive),
// grouping with parentheses and quoted phrases:
//
//	coffee                      simple term
//	coffee AND fuel             both terms must match
//	coffee OR fuel              either term matches
//	NOT pending                 exclude a term
//	(coffee OR fuel) AND car    grouped conditions
//	"Annual Dinner"             exact phrase, matched as one unit
//
// Matching is a case-insensitive substring test against the text a record
// exposes through the Searchable interface. The pipeline is pure and
// allocates all of its working state per call, so it is safe to use from
// multiple goroutines without coordination.
package search

import (
	"strings"
)

// Filter returns the records matching query.
//
// A blank or whitespace-only query returns records unchanged. Malformed
// queries never produce an error: lexical and structural irregularities are
// absorbed by the tokenizer and parser, operand starvation evaluates to
// non-matching, and any residual failure in the pipeline falls open to the
// full unfiltered input. A broken query degrades to "show everything" rather
// than hiding data.
func Filter[T Searchable](records []T, query string) (matched []T) {
	if strings.TrimSpace(query) == "" {
		return records
	}

	// Fail open. Nothing in the pipeline is expected to panic, but a query
	// that somehow breaks it must not take the host application down or make
	// records vanish.
	defer func() {
		if r := recover(); r != nil {
			matched = records
		}
	}()

	predicate := CompileQuery[T](query)

	matched = make([]T, 0, len(records))
	for _, record := range records {
		if predicate(record) {
			matched = append(matched, record)
		}
	}

	return matched
}

// CompileQuery runs the full tokenize → RPN → compile pipeline and returns
// the resulting predicate. Callers that filter many collections with the
// same query can compile once and apply the predicate themselves; Filter is
// the convenience path.
func CompileQuery[T Searchable](query string) Predicate[T] {
	return Compile[T](ToRPN(Tokenize(query)))
}

// Explain describes how a query is interpreted, for diagnostics. It returns
// the scanned token sequence and its postfix ordering.
func Explain(query string) (tokens, rpn []Token) {
	tokens = Tokenize(query)
	return tokens, ToRPN(tokens)
}
