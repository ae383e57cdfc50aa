// Package arch defines the CHIP-8 instruction set along with
// some related helper functions.
package arch

import "strings"

// Opcode identifies one of the known instruction kinds.
type Opcode int

// Known opcodes. The comment holds the instruction word pattern.
const (
	Invalid Opcode = iota

	NOP  // 0000
	CLS  // 00E0
	RET  // 00EE
	JMP  // 1nnn
	CALL // 2nnn

	SKEQ  // 3xnn
	SKNE  // 4xnn
	SKEQR // 5xy0
	MOV   // 6xnn
	ADD   // 7xnn

	MOVR // 8xy0
	OR   // 8xy1
	AND  // 8xy2
	XOR  // 8xy3
	ADDR // 8xy4
	SUB  // 8xy5
	SHR  // 8xy6
	SUBN // 8xy7
	SHL  // 8xyE

	SKNER // 9xy0
	MVI   // Annn
	JMI   // Bnnn
	RAND  // Cxnn
	DRAW  // Dxyn
	SKPR  // Ex9E
	SKUP  // ExA1

	GDELAY // Fx07
	KEY    // Fx0A
	SDELAY // Fx15
	SSOUND // Fx18
	ADI    // Fx1E
	FONT   // Fx29
	BCD    // Fx33
	STR    // Fx55
	LDR    // Fx65

	opcodeCount
)

var names = [...]string{
	Invalid: "???",
	NOP:     "NOP",
	CLS:     "CLS",
	RET:     "RET",
	JMP:     "JMP",
	CALL:    "CALL",
	SKEQ:    "SKEQ",
	SKNE:    "SKNE",
	SKEQR:   "SKEQR",
	MOV:     "MOV",
	ADD:     "ADD",
	MOVR:    "MOVR",
	OR:      "OR",
	AND:     "AND",
	XOR:     "XOR",
	ADDR:    "ADDR",
	SUB:     "SUB",
	SHR:     "SHR",
	SUBN:    "SUBN",
	SHL:     "SHL",
	SKNER:   "SKNER",
	MVI:     "MVI",
	JMI:     "JMI",
	RAND:    "RAND",
	DRAW:    "DRAW",
	SKPR:    "SKPR",
	SKUP:    "SKUP",
	GDELAY:  "GDELAY",
	KEY:     "KEY",
	SDELAY:  "SDELAY",
	SSOUND:  "SSOUND",
	ADI:     "ADI",
	FONT:    "FONT",
	BCD:     "BCD",
	STR:     "STR",
	LDR:     "LDR",
}

// Count returns the number of valid opcodes.
func Count() int {
	return int(opcodeCount) - 1
}

// Lookup returns the opcode for the given instruction name.
// Returns false if the name is not recognized.
func Lookup(name string) (Opcode, bool) {
	name = strings.ToUpper(name)
	for op := NOP; op < opcodeCount; op++ {
		if names[op] == name {
			return op, true
		}
	}
	return Invalid, false
}

// Name returns the name for the given opcode.
// Returns false if the opcode is not recognized.
func Name(op Opcode) (string, bool) {
	if op <= Invalid || op >= opcodeCount {
		return "", false
	}
	return names[op], true
}

func (op Opcode) String() string {
	if name, ok := Name(op); ok {
		return name
	}
	return names[Invalid]
}

// Decode maps an instruction word onto its opcode.
// Returns Invalid if the word matches no known pattern.
func Decode(word uint16) Opcode {
	n1 := word >> 12
	n4 := word & 0xf
	nn := word & 0xff

	switch n1 {
	case 0x0:
		switch word {
		case 0x0000:
			return NOP
		case 0x00e0:
			return CLS
		case 0x00ee:
			return RET
		}
	case 0x1:
		return JMP
	case 0x2:
		return CALL
	case 0x3:
		return SKEQ
	case 0x4:
		return SKNE
	case 0x5:
		if n4 == 0 {
			return SKEQR
		}
	case 0x6:
		return MOV
	case 0x7:
		return ADD
	case 0x8:
		switch n4 {
		case 0x0:
			return MOVR
		case 0x1:
			return OR
		case 0x2:
			return AND
		case 0x3:
			return XOR
		case 0x4:
			return ADDR
		case 0x5:
			return SUB
		case 0x6:
			return SHR
		case 0x7:
			return SUBN
		case 0xe:
			return SHL
		}
	case 0x9:
		if n4 == 0 {
			return SKNER
		}
	case 0xa:
		return MVI
	case 0xb:
		return JMI
	case 0xc:
		return RAND
	case 0xd:
		return DRAW
	case 0xe:
		switch nn {
		case 0x9e:
			return SKPR
		case 0xa1:
			return SKUP
		}
	case 0xf:
		switch nn {
		case 0x07:
			return GDELAY
		case 0x0a:
			return KEY
		case 0x15:
			return SDELAY
		case 0x18:
			return SSOUND
		case 0x1e:
			return ADI
		case 0x29:
			return FONT
		case 0x33:
			return BCD
		case 0x55:
			return STR
		case 0x65:
			return LDR
		}
	}

	return Invalid
}

// IsSkip returns true if the opcode conditionally skips the next instruction.
func IsSkip(op Opcode) bool {
	switch op {
	case SKEQ, SKNE, SKEQR, SKNER, SKPR, SKUP:
		return true
	}
	return false
}

// IsJump returns true if the opcode unconditionally transfers control.
func IsJump(op Opcode) bool {
	switch op {
	case JMP, JMI, CALL, RET:
		return true
	}
	return false
}
