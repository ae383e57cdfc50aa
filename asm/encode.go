package asm

import (
	"strings"

	"github.com/hexaflex/chip8/arch"
)

// form defines one operand layout for an instruction.
//
// Args is a comma separated operand pattern. Lower case letters denote
// operand slots: v is a register (x first, then y), a a 12-bit address,
// b a byte and n a nibble. Anything else must match the operand keyword
// exactly.
type form struct {
	args string
	op   uint16
}

// forms lists the known instructions in conventional notation.
var forms = map[string][]form{
	"CLS":  {{"", 0x00e0}},
	"RET":  {{"", 0x00ee}},
	"NOP":  {{"", 0x0000}},
	"SYS":  {{"a", 0x0000}},
	"JP":   {{"a", 0x1000}, {"V0,a", 0xb000}},
	"CALL": {{"a", 0x2000}},
	"SE":   {{"v,b", 0x3000}, {"v,v", 0x5000}},
	"SNE":  {{"v,b", 0x4000}, {"v,v", 0x9000}},
	"LD": {
		{"v,b", 0x6000},
		{"v,v", 0x8000},
		{"I,a", 0xa000},
		{"v,DT", 0xf007},
		{"v,K", 0xf00a},
		{"DT,v", 0xf015},
		{"ST,v", 0xf018},
		{"F,v", 0xf029},
		{"B,v", 0xf033},
		{"[I],v", 0xf055},
		{"v,[I]", 0xf065},
	},
	"ADD":  {{"v,b", 0x7000}, {"v,v", 0x8004}, {"I,v", 0xf01e}},
	"OR":   {{"v,v", 0x8001}},
	"AND":  {{"v,v", 0x8002}},
	"XOR":  {{"v,v", 0x8003}},
	"SUB":  {{"v,v", 0x8005}},
	"SHR":  {{"v", 0x8006}, {"v,v", 0x8006}},
	"SUBN": {{"v,v", 0x8007}},
	"SHL":  {{"v", 0x800e}, {"v,v", 0x800e}},
	"RND":  {{"v,b", 0xc000}},
	"DRW":  {{"v,v,n", 0xd000}},
	"SKP":  {{"v", 0xe09e}},
	"SKNP": {{"v", 0xe0a1}},
}

// keywords are operand names with a fixed meaning.
var keywords = []string{"I", "[I]", "DT", "ST", "K", "F", "B"}

// keyword returns the keyword or register name represented by expr.
// Returns "" if expr is a plain value expression.
func keyword(expr expression) string {
	if len(expr) != 1 || expr[0].typ != tokName {
		return ""
	}

	name := strings.ToUpper(expr[0].value)
	if arch.IsRegister(name) || isKeyword(name) {
		return name
	}

	return ""
}

// isKeyword returns true if name is an operand keyword.
func isKeyword(name string) bool {
	for _, k := range keywords {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// match returns true if the operands fit the pattern in f.
func (f *form) match(operands []expression) bool {
	args := f.slots()
	if len(args) != len(operands) {
		return false
	}

	for i, arg := range args {
		kw := keyword(operands[i])

		switch arg {
		case "v":
			if !arch.IsRegister(kw) {
				return false
			}
		case "a", "b", "n":
			if kw != "" {
				return false
			}
		default:
			if kw != arg {
				return false
			}
		}
	}

	return true
}

func (f *form) slots() []string {
	if f.args == "" {
		return nil
	}
	return strings.Split(f.args, ",")
}

// encode encodes the given instruction statement.
func (a *assembler) encode(st *statement) (uint16, error) {
	name := strings.ToUpper(st.name)

	var f *form
	for i := range forms[name] {
		if forms[name][i].match(st.operands) {
			f = &forms[name][i]
			break
		}
	}

	if f == nil {
		return 0, newError(st.pos, "invalid operands for instruction %s", name)
	}

	word := f.op
	regs := 0

	for i, arg := range f.slots() {
		expr := st.operands[i]

		switch arg {
		case "v":
			r := uint16(arch.RegisterIndex(keyword(expr)))
			if regs == 0 {
				word |= r << 8
			} else {
				word |= r << 4
			}
			regs++

		case "a":
			v, err := a.value(expr, 0, 0xfff)
			if err != nil {
				return 0, err
			}
			word |= uint16(v)

		case "b":
			v, err := a.value(expr, -128, 0xff)
			if err != nil {
				return 0, err
			}
			word |= uint16(v) & 0xff

		case "n":
			v, err := a.value(expr, 0, 0xf)
			if err != nil {
				return 0, err
			}
			word |= uint16(v)
		}
	}

	return word, nil
}
