package search

// ToRPN converts an infix token sequence to postfix (reverse Polish) order
// using the shunting-yard algorithm. The conversion is iterative with an
// explicit operator stack, so deeply nested groups cannot grow the call
// stack.
//
// Structural irregularities degrade silently rather than erroring: an
// unmatched ')' is discarded, and an unmatched '(' left on the stack at the
// end of input is dropped instead of being flagged. The evaluator's operand
// guards absorb whatever ordering falls out.
func ToRPN(tokens []Token) []Token {
	output := make([]Token, 0, len(tokens))
	stack := make([]Token, 0, len(tokens))

	for _, tok := range tokens {
		switch tok.Type {
		case TERM:
			output = append(output, tok)

		case AND, OR, NOT:
			// Pop operators with higher or equal precedence. All three
			// operators share the left-associative pop rule; arity is the
			// evaluator's concern, the parser only orders them.
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Type == LPAREN || precedence(top.Type) < precedence(tok.Type) {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)

		case LPAREN:
			stack = append(stack, tok)

		case RPAREN:
			// Pop until the matching left paren.
			for len(stack) > 0 && stack[len(stack)-1].Type != LPAREN {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			// Discard the left paren itself, if any.
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	// Pop remaining operators. A leftover LPAREN is dropped.
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Type != LPAREN {
			output = append(output, top)
		}
	}

	return output
}
