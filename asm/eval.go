package asm

// ref: https://en.wikipedia.org/wiki/Shunting-yard_algorithm

// resolveFunc returns the value for a named symbol.
type resolveFunc func(name string) (int64, bool)

// evaluate computes the value of the given expression.
// Names are looked up through resolve.
func evaluate(expr expression, resolve resolveFunc) (int64, error) {
	postfix, err := toPostfix(expr)
	if err != nil {
		return 0, err
	}

	stack := make([]int64, 0, len(postfix))

	for _, tok := range postfix {
		switch tok.typ {
		case tokNumber:
			v, err := parseNumber(tok.value)
			if err != nil {
				return 0, newError(tok.pos, "invalid number %q", tok.value)
			}
			stack = append(stack, v)

		case tokName:
			v, ok := resolve(tok.value)
			if !ok {
				return 0, newError(tok.pos, "reference to unresolved value %s", tok.value)
			}
			stack = append(stack, v)

		case tokOperator:
			if isUnary(tok.value) {
				if len(stack) < 1 {
					return 0, newError(tok.pos, "missing operand for %q", tok.value[1:])
				}
				stack[len(stack)-1] = applyUnary(tok.value, stack[len(stack)-1])
				continue
			}

			if len(stack) < 2 {
				return 0, newError(tok.pos, "missing operand for %q", tok.value)
			}

			a, b := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-2]

			v, err := apply(tok.value, a, b)
			if err != nil {
				return 0, newError(tok.pos, "%v", err)
			}
			stack = append(stack, v)

		default:
			return 0, newError(tok.pos, "unexpected token %q in expression", tok.value)
		}
	}

	if len(stack) != 1 {
		return 0, newError(expr[0].pos, "invalid expression")
	}

	return stack[0], nil
}

// toPostfix uses Dijkstra's Shunting Yard algorithm to convert the given
// infix expression into postfix notation. Unary operators are renamed
// with a "u" prefix.
//
// There should be no more parentheses once this call is finished.
func toPostfix(expr expression) ([]token, error) {
	out := make([]token, 0, len(expr))
	ops := make([]token, 0, len(expr)/2)
	wantValue := true

	for _, tok := range expr {
		if tok.typ != tokOperator {
			if !wantValue {
				return nil, newError(tok.pos, "unexpected value %q; expected operator", tok.value)
			}
			out = append(out, tok)
			wantValue = false
			continue
		}

		switch tok.value {
		case "(":
			ops = append(ops, tok)
			wantValue = true

		case ")":
			var haveParen bool

			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.value == "(" {
					haveParen = true
					break
				}
				out = append(out, top)
			}

			if !haveParen {
				return nil, newError(tok.pos, "mismatched closing parenthesis")
			}
			wantValue = false

		default:
			if wantValue {
				if tok.value != "-" && tok.value != "+" && tok.value != "~" {
					return nil, newError(tok.pos, "unexpected operator %q; expected value", tok.value)
				}
				tok.value = "u" + tok.value
			}

			np, nleft := opProperties(tok.value)
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.value == "(" {
					break
				}

				tp, _ := opProperties(top.value)
				if tp < np || (tp == np && !nleft) {
					break
				}

				out = append(out, top)
				ops = ops[:len(ops)-1]
			}

			ops = append(ops, tok)
			wantValue = true
		}
	}

	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].value == "(" {
			return nil, newError(ops[i].pos, "mismatched opening parenthesis")
		}
		out = append(out, ops[i])
	}

	return out, nil
}

// opProperties returns the precedence of the given operator,
// as well as true if it is left-associative. Higher values bind tighter.
func opProperties(op string) (int, bool) {
	switch op {
	case "u+", "u-", "u~":
		return 7, false
	case "*", "/", "%":
		return 6, true
	case "+", "-":
		return 5, true
	case ">>", "<<":
		return 4, true
	case "&":
		return 3, true
	case "^":
		return 2, true
	case "|":
		return 1, true
	}
	return 0, true
}

func isUnary(op string) bool {
	return len(op) == 2 && op[0] == 'u'
}
