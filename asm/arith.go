package asm

import "fmt"

// apply performs the given arithmetic operation on operands a and b
// and returns the result.
//
// Supported operations are: + - * / % << >> & | ^
func apply(op string, a, b int64) (int64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a / b, nil
	case "%":
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a % b, nil
	case "<<":
		if b < 0 {
			return 0, fmt.Errorf("negative shift count %d", b)
		}
		return a << uint(b), nil
	case ">>":
		if b < 0 {
			return 0, fmt.Errorf("negative shift count %d", b)
		}
		return a >> uint(b), nil
	case "&":
		return a & b, nil
	case "|":
		return a | b, nil
	case "^":
		return a ^ b, nil
	}
	return 0, fmt.Errorf("unrecognized operation %q", op)
}

// applyUnary performs the given unary operation on a.
func applyUnary(op string, a int64) int64 {
	switch op {
	case "u-":
		return -a
	case "u~":
		return ^a
	}
	return a
}
