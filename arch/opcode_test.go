package arch

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		want Opcode
	}{
		{0x0000, NOP},
		{0x00e0, CLS},
		{0x00ee, RET},
		{0x1234, JMP},
		{0x2abc, CALL},
		{0x3a12, SKEQ},
		{0x4a12, SKNE},
		{0x5ab0, SKEQR},
		{0x6a12, MOV},
		{0x7a12, ADD},
		{0x8ab0, MOVR},
		{0x8ab1, OR},
		{0x8ab2, AND},
		{0x8ab3, XOR},
		{0x8ab4, ADDR},
		{0x8ab5, SUB},
		{0x8ab6, SHR},
		{0x8ab7, SUBN},
		{0x8abe, SHL},
		{0x9ab0, SKNER},
		{0xa123, MVI},
		{0xb123, JMI},
		{0xca12, RAND},
		{0xdab5, DRAW},
		{0xea9e, SKPR},
		{0xeaa1, SKUP},
		{0xfa07, GDELAY},
		{0xfa0a, KEY},
		{0xfa15, SDELAY},
		{0xfa18, SSOUND},
		{0xfa1e, ADI},
		{0xfa29, FONT},
		{0xfa33, BCD},
		{0xfa55, STR},
		{0xfa65, LDR},

		{0x0123, Invalid},
		{0x00e1, Invalid},
		{0x00ff, Invalid},
		{0x5ab1, Invalid},
		{0x8ab8, Invalid},
		{0x8abf, Invalid},
		{0x9ab1, Invalid},
		{0xea00, Invalid},
		{0xfa00, Invalid},
		{0xfaff, Invalid},
	}

	seen := make(map[Opcode]bool)

	for _, tt := range tests {
		have := Decode(tt.word)
		if have != tt.want {
			t.Fatalf("decode %04x: want %v, have %v", tt.word, tt.want, have)
		}
		if have != Invalid {
			seen[have] = true
		}
	}

	if len(seen) != Count() {
		t.Fatalf("expected %d distinct opcodes; have %d", Count(), len(seen))
	}
}

func TestNameLookup(t *testing.T) {
	for op := NOP; op < opcodeCount; op++ {
		name, ok := Name(op)
		if !ok {
			t.Fatalf("no name for opcode %d", op)
		}

		back, ok := Lookup(name)
		if !ok || back != op {
			t.Fatalf("lookup %q: want %v, have %v", name, op, back)
		}
	}

	if _, ok := Name(Invalid); ok {
		t.Fatalf("Invalid should not have a name")
	}

	if _, ok := Lookup("HALT"); ok {
		t.Fatalf("unexpected opcode for HALT")
	}
}

func TestRegisterName(t *testing.T) {
	for i := 0; i < RegisterCount; i++ {
		name := RegisterName(i)
		if RegisterIndex(name) != i {
			t.Fatalf("register %d: round trip through %q failed", i, name)
		}
	}

	if RegisterName(VF) != "VF" {
		t.Fatalf("want VF, have %q", RegisterName(VF))
	}

	for _, name := range []string{"", "V", "VG", "R0", "V10"} {
		if IsRegister(name) {
			t.Fatalf("%q should not be a register", name)
		}
	}
}
