package asm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/rom"
)

func assemble(t *testing.T, src string) *Program {
	t.Helper()

	prog, err := Assemble(strings.NewReader(src), "test.asm", 0x200)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestAssemble(t *testing.T) {
	prog := assemble(t, `
; Draws a digit and loops forever.
digit = 7
x EQU 8 * 2

start:
	LD   V0, x          ; x position
	LD   V1, $0a
	LD   V2, digit
	LD   F, V2
	DRW  V0, V1, 5
	CALL sub
done:	JP   done

sub:	LD   I, glyph
	RET

glyph:	DB   ($f0 << 1) >> 1, $90, 0b1001_0000
	DW   glyph - start, -1
`)

	want := []byte{
		0x60, 0x10,
		0x61, 0x0a,
		0x62, 0x07,
		0xf2, 0x29,
		0xd0, 0x15,
		0x22, 0x0e,
		0x12, 0x0c,
		0xa2, 0x12,
		0x00, 0xee,
		0xf0, 0x90, 0x90,
		0x00, 0x12, 0xff, 0xff,
	}

	if !bytes.Equal(prog.Code, want) {
		t.Fatalf("code mismatch:\nwant % x\nhave % x", want, prog.Code)
	}

	symbols := map[string]int{
		"digit": 7,
		"x":     16,
		"start": 0x200,
		"done":  0x20c,
		"sub":   0x20e,
		"glyph": 0x212,
	}

	for k, v := range symbols {
		if prog.Symbols[k] != v {
			t.Fatalf("symbol %s: want %#x, have %#x", k, v, prog.Symbols[k])
		}
	}
}

func TestForms(t *testing.T) {
	for _, tt := range []struct {
		src  string
		want uint16
	}{
		{"CLS", 0x00e0},
		{"ret", 0x00ee},
		{"NOP", 0x0000},
		{"SYS $123", 0x0123},
		{"JP $345", 0x1345},
		{"JP V0, $345", 0xb345},
		{"CALL $456", 0x2456},
		{"SE V3, $42", 0x3342},
		{"SE V3, V4", 0x5340},
		{"SNE V3, $42", 0x4342},
		{"SNE V3, V4", 0x9340},
		{"LD V5, 255", 0x65ff},
		{"LD V5, -1", 0x65ff},
		{"LD V5, VA", 0x85a0},
		{"LD I, $abc", 0xaabc},
		{"LD V6, DT", 0xf607},
		{"LD V6, K", 0xf60a},
		{"LD DT, V6", 0xf615},
		{"LD ST, V6", 0xf618},
		{"LD F, V6", 0xf629},
		{"LD B, V6", 0xf633},
		{"LD [I], V6", 0xf655},
		{"LD [ i ], V6", 0xf655},
		{"LD V6, [I]", 0xf665},
		{"ADD V7, 1", 0x7701},
		{"ADD V7, V8", 0x8784},
		{"ADD I, V7", 0xf71e},
		{"OR V1, V2", 0x8121},
		{"AND V1, V2", 0x8122},
		{"XOR V1, V2", 0x8123},
		{"SUB V1, V2", 0x8125},
		{"SHR V1", 0x8106},
		{"SHR V1, V2", 0x8126},
		{"SUBN V1, V2", 0x8127},
		{"SHL V1", 0x810e},
		{"SHL V1, V2", 0x812e},
		{"RND VE, $0f", 0xce0f},
		{"DRW V1, V2, 15", 0xd12f},
		{"SKP V9", 0xe99e},
		{"SKNP V9", 0xe9a1},
	} {
		prog := assemble(t, tt.src)
		have := uint16(prog.Code[0])<<8 | uint16(prog.Code[1])
		if len(prog.Code) != 2 || have != tt.want {
			t.Fatalf("%s: want %04x, have % x", tt.src, tt.want, prog.Code)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	words := []uint16{
		0x0000, 0x00e0, 0x00ee, 0x1abc, 0x2abc, 0x3a12, 0x4a12, 0x5ab0,
		0x6a12, 0x7a12, 0x8ab0, 0x8ab1, 0x8ab2, 0x8ab3, 0x8ab4, 0x8ab5,
		0x8a06, 0x8ab7, 0x8a0e, 0x9ab0, 0xaabc, 0xbabc, 0xca12, 0xdab5,
		0xea9e, 0xeaa1, 0xfa07, 0xfa0a, 0xfa15, 0xfa18, 0xfa1e, 0xfa29,
		0xfa33, 0xfa55, 0xfa65, 0x5121, 0xffff,
	}

	var src strings.Builder
	var want []byte
	var instr arch.Instruction

	for i, w := range words {
		instr.Decode(0x200+i*2, byte(w>>8), byte(w))
		src.WriteString(instr.String())
		src.WriteByte('\n')
		want = append(want, byte(w>>8), byte(w))
	}

	prog := assemble(t, src.String())
	if !bytes.Equal(prog.Code, want) {
		t.Fatalf("code mismatch for:\n%s\nwant % x\nhave % x", src.String(), want, prog.Code)
	}
}

func TestErrors(t *testing.T) {
	for _, tt := range []struct {
		src  string
		line int
		msg  string
	}{
		{"CLS\nFOO V1", 2, "unknown instruction"},
		{"LD V1, V2, V3", 1, "invalid operands"},
		{"LD V1, 256", 1, "out of range"},
		{"JP $1000", 1, "out of range"},
		{"DRW V0, V1, 16", 1, "out of range"},
		{"JP nowhere", 1, "unresolved value nowhere"},
		{"a: CLS\na: CLS", 2, "duplicate symbol"},
		{"A: CLS\na: CLS", 2, "duplicate symbol"},
		{"v1: CLS", 1, "reserved name"},
		{"dt = 3", 1, "reserved name"},
		{"x = y\ny = 1", 1, "unresolved value y"},
		{"LD V0, (1 + 2", 1, "mismatched opening"},
		{"LD V0, 1 + 2)", 1, "mismatched closing"},
		{"LD V0, 1 2", 1, "expected operator"},
		{"LD V0, 1 / 0", 1, "division by zero"},
		{"LD V0,", 1, "missing operand"},
		{"DB", 1, "at least one value"},
		{"LD V0, $", 1, "hexadecimal digits"},
		{"LD V0, 12xz", 1, "invalid number"},
		{"LD V0, @", 1, "unexpected token"},
		{"x =", 1, "missing value"},
		{"\n\n  , CLS", 3, "expected instruction name"},
	} {
		_, err := Assemble(strings.NewReader(tt.src), "test.asm", 0x200)
		if err == nil {
			t.Fatalf("%q: expected error", tt.src)
		}

		var e *Error
		if !errors.As(err, &e) {
			t.Fatalf("%q: want *Error, have %T: %v", tt.src, err, err)
		}

		if e.Pos.Line != tt.line || !strings.Contains(e.Msg, tt.msg) {
			t.Fatalf("%q: want line %d containing %q, have %v", tt.src, tt.line, tt.msg, err)
		}
	}
}

func TestProgramTooLarge(t *testing.T) {
	src := strings.Repeat("CLS\n", 0x701)

	_, err := Assemble(strings.NewReader(src), "test.asm", 0x200)
	if err == nil || !strings.Contains(err.Error(), "does not fit") {
		t.Fatalf("want memory error, have %v", err)
	}
}

func TestSave(t *testing.T) {
	prog := assemble(t, "LD V0, 1\nJP $200")

	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		if err := prog.Save(&buf, compress); err != nil {
			t.Fatal(err)
		}

		data, err := rom.Read(&buf)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(data, prog.Code) {
			t.Fatalf("compress=%v: want % x, have % x", compress, prog.Code, data)
		}
	}
}
