package asm

import (
	"strconv"
	"strings"
)

// expression is a single instruction operand in infix notation.
type expression []token

// statement defines a single source line.
type statement struct {
	pos      Position
	label    string       // Optional label defined on this line.
	name     string       // Instruction, directive or constant name.
	constant bool         // Is this a constant definition?
	operands []expression // Comma separated operands.
}

// parse groups the given tokens into statements, one per non-empty line.
func parse(tokens []token) ([]*statement, error) {
	var out []*statement

	for len(tokens) > 0 {
		end := 0
		for tokens[end].typ != tokEOL {
			end++
		}

		line := tokens[:end]
		tokens = tokens[end+1:]

		if len(line) == 0 {
			continue
		}

		st, err := parseLine(line)
		if err != nil {
			return nil, err
		}

		out = append(out, st)
	}

	return out, nil
}

// parseLine parses a single, non-empty line in one of the forms:
//
//    label:
//    label: name operand, operand, ...
//    name operand, operand, ...
//    name = expression
//    name EQU expression
//
func parseLine(line []token) (*statement, error) {
	st := &statement{pos: line[0].pos}

	if line[0].typ == tokLabel {
		st.label = line[0].value
		line = line[1:]

		if len(line) == 0 {
			return st, nil
		}
	}

	if line[0].typ != tokName {
		return nil, newError(line[0].pos, "unexpected token %q; expected instruction name", line[0].value)
	}

	st.name = line[0].value
	line = line[1:]

	if len(line) > 0 && isAssignment(line[0]) {
		if st.label != "" {
			return nil, newError(st.pos, "constant definition %q can not have a label", st.name)
		}

		st.constant = true
		line = line[1:]
	}

	if len(line) == 0 {
		if st.constant {
			return nil, newError(st.pos, "missing value for constant %q", st.name)
		}
		return st, nil
	}

	var expr expression
	for _, tok := range line {
		if tok.typ != tokComma {
			expr = append(expr, tok)
			continue
		}

		if len(expr) == 0 {
			return nil, newError(tok.pos, "missing operand")
		}

		st.operands = append(st.operands, expr)
		expr = nil
	}

	if len(expr) == 0 {
		return nil, newError(line[len(line)-1].pos, "missing operand")
	}

	st.operands = append(st.operands, expr)

	if st.constant && len(st.operands) != 1 {
		return nil, newError(st.pos, "constant %q must have exactly one value", st.name)
	}

	return st, nil
}

// isAssignment returns true if tok turns a statement into a constant definition.
func isAssignment(tok token) bool {
	return (tok.typ == tokOperator && tok.value == "=") ||
		(tok.typ == tokName && strings.EqualFold(tok.value, "equ"))
}

// parseNumber parses a numeric literal as produced by the tokenizer.
// Underscores may be used to group digits.
func parseNumber(value string) (int64, error) {
	value = strings.ReplaceAll(value, "_", "")
	lower := strings.ToLower(value)

	switch {
	case strings.HasPrefix(lower, "$"):
		return strconv.ParseInt(value[1:], 16, 64)
	case strings.HasPrefix(lower, "0x"):
		return strconv.ParseInt(value[2:], 16, 64)
	case strings.HasPrefix(lower, "0b"):
		return strconv.ParseInt(value[2:], 2, 64)
	}

	index := strings.Index(value, "#")
	if index == -1 {
		return strconv.ParseInt(value, 10, 64)
	}

	base, err := strconv.Atoi(value[:index])
	if err != nil || base < 2 || base > 36 {
		return 0, strconv.ErrSyntax
	}

	return strconv.ParseInt(value[index+1:], base, 64)
}
