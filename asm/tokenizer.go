package asm

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"
)

// Known token types.
const (
	tokLabel = 1 + iota
	tokName
	tokNumber
	tokOperator
	tokComma
	tokEOL
)

// token defines a single lexical element.
type token struct {
	typ   int
	pos   Position
	value string
}

// tokenizer defines tokenizer state.
type tokenizer struct {
	file   string
	data   []byte
	lines  []int // Byte offsets at which each line starts.
	start  int
	end    int
	tokens []token
}

// tokenize reads sourcecode from the given reader and turns it into a flat
// stream of tokens. Each line is terminated by a tokEOL token. The filename
// provides source context for each token.
func tokenize(r io.Reader, filename string) (tokens []token, err error) {
	var t tokenizer

	t.data, err = io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %v", err)
	}

	// The tokenizer breaks out of its loop through the use of a panic,
	// We need to catch it here and convert it to a proper error message.
	defer func() {
		x := recover()
		if x == nil {
			return
		}

		if _, ok := x.(runtime.Error); ok {
			panic(x)
		}

		err = x.(error)
	}()

	t.file = filename
	t.lines = append(t.lines, 0)
	for i, b := range t.data {
		if b == '\n' {
			t.lines = append(t.lines, i+1)
		}
	}

	t.readDocument()
	return t.tokens, nil
}

// readDocument reads a source file.
func (t *tokenizer) readDocument() {
	for t.end < len(t.data) {
		switch {
		case t.readSpace():
		case t.readComment():
		case t.readChar('\n'):
			t.emit(tokEOL)
		case t.readChar(','):
			t.emit(tokComma)
		case t.readNumber():
		case t.readIndirect():
		case t.readName():
		case t.readOperator():
		default:
			t.error("unexpected token '%c'; expected comment, label, instruction or operand", t.read())
		}
	}

	t.emit(tokEOL)
}

// readNumber reads a numeric literal.
//
// A number can take any of the forms:
//
//    $ff
//    0xff
//    0b1010
//    16#ff
//    255
//
// Its value is checked by parseNumber.
func (t *tokenizer) readNumber() bool {
	if t.readChar('$') {
		if !t.readSet(isHexDigit) {
			t.error("invalid number; expected hexadecimal digits after '$'")
		}
	} else {
		if !t.readSet(isDigit) {
			return false
		}
		t.readSet(func(r byte) bool { return r == '_' || r == '#' || isAlpha(r) || isDigit(r) })
	}

	t.emit(tokNumber)
	return true
}

// readIndirect reads the [I] operand.
func (t *tokenizer) readIndirect() bool {
	if !t.readChar('[') {
		return false
	}

	t.readSet(isSpace)
	if !t.readChar('I') && !t.readChar('i') {
		t.error("invalid indirect operand; expected [I]")
	}

	t.readSet(isSpace)
	if !t.readChar(']') {
		t.error("invalid indirect operand; expected [I]")
	}

	t.emitValue(tokName, "[I]")
	return true
}

// readName reads an instruction, label or symbol name.
// A name immediately followed by ':' defines a label.
func (t *tokenizer) readName() bool {
	if !t.readSet(func(r byte) bool { return r == '_' || r == '.' || isAlpha(r) }) {
		return false
	}

	t.readSet(func(r byte) bool { return r == '_' || r == '.' || isAlpha(r) || isDigit(r) })

	name := t.current()
	if t.readChar(':') {
		t.emitValue(tokLabel, name)
	} else {
		t.emit(tokName)
	}

	return true
}

// readOperator reads an operator in an expression.
func (t *tokenizer) readOperator() bool {
	if t.readWord("<<") || t.readWord(">>") {
		t.emit(tokOperator)
		return true
	}

	if r := t.read(); strings.IndexByte("+-*/%&|^~()=", r) == -1 {
		t.unread()
		return false
	}

	t.emit(tokOperator)
	return true
}

// readComment reads and skips code comments.
func (t *tokenizer) readComment() bool {
	if !t.readChar(';') {
		return false
	}

	t.readSet(func(r byte) bool { return r != '\n' })
	t.ignore()
	return true
}

// readSpace reads whitespace other than newlines and skips it.
func (t *tokenizer) readSpace() bool {
	if !t.readSet(isSpace) {
		return false
	}
	t.ignore()
	return true
}

// readSet reads bytes as long as they match the given predicate.
// Returns true if more than zero bytes have been read.
func (t *tokenizer) readSet(match func(byte) bool) bool {
	var n int

	for t.end < len(t.data) && match(t.data[t.end]) {
		t.end++
		n++
	}

	return n > 0
}

// readWord reads bytes equal to the given string.
// Returns false if there is no match.
func (t *tokenizer) readWord(str string) bool {
	if !strings.HasPrefix(string(t.data[t.end:]), str) {
		return false
	}
	t.end += len(str)
	return true
}

// readChar reads the next byte, only if it matches x.
func (t *tokenizer) readChar(x byte) bool {
	if t.end < len(t.data) && t.data[t.end] == x {
		t.end++
		return true
	}
	return false
}

// read reads the next byte. Returns 0 at the end of the input.
func (t *tokenizer) read() byte {
	if t.end >= len(t.data) {
		return 0
	}
	t.end++
	return t.data[t.end-1]
}

// unread puts back the last read byte.
func (t *tokenizer) unread() {
	if t.end > t.start {
		t.end--
	}
}

// current returns the current read token.
func (t *tokenizer) current() string {
	return string(t.data[t.start:t.end])
}

// position returns the source position for the given byte offset.
func (t *tokenizer) position(offset int) Position {
	line := sort.Search(len(t.lines), func(i int) bool { return t.lines[i] > offset })
	return Position{
		File:   t.file,
		Line:   line,
		Col:    offset - t.lines[line-1] + 1,
		Offset: offset,
	}
}

// error emits a new error with the given message.
func (t *tokenizer) error(f string, argv ...interface{}) {
	panic(newError(t.position(t.start), f, argv...))
}

// emit emits a new token of the given type, using the currently
// read buffer.
func (t *tokenizer) emit(typ int) {
	t.emitValue(typ, t.current())
}

// emitValue emits a new token of the given type and value, positioned
// at the start of the currently read buffer.
func (t *tokenizer) emitValue(typ int, value string) {
	t.tokens = append(t.tokens, token{
		typ:   typ,
		pos:   t.position(t.start),
		value: value,
	})
	t.ignore()
}

// ignore skips the currently read buffer.
func (t *tokenizer) ignore() {
	t.start = t.end
}

func isSpace(r byte) bool    { return r == ' ' || r == '\t' || r == '\r' }
func isDigit(r byte) bool    { return r >= '0' && r <= '9' }
func isAlpha(r byte) bool    { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isHexDigit(r byte) bool { return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') }
