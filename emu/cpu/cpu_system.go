package cpu

import (
	"github.com/rcornwell/rv32emu/emu/decode"
	"github.com/rcornwell/rv32emu/emu/encoding"
)

// mepc is the machine exception program counter CSR address, the only
// privileged CSR this engine's MRET path consults.
const mepc = 0x341

// execCSR implements the six Zicsr read-modify-write ops. Per instruction,
// the old CSR value is read once, written to rd (rd=0 suppresses the
// register write but never the CSR write), then the CSR is updated from
// rs1 (or, for the *I forms, a 5-bit unsigned immediate).
func (c *CPU) execCSR(v decode.Variant, word uint32) {
	rd := encoding.Rd(word)
	addr := uint32(encoding.ImmI(word)) & 0xFFF

	var rhs uint32
	switch v {
	case decode.CSRRWI, decode.CSRRSI, decode.CSRRCI:
		rhs = encoding.Rs1(word) // rs1 field holds a 5-bit unsigned immediate
	default:
		rhs = c.X.Read(encoding.Rs1(word))
	}

	old := c.CSR.Read(addr)
	c.X.Write(rd, old)

	var next uint32
	switch v {
	case decode.CSRRW, decode.CSRRWI:
		next = rhs
	case decode.CSRRS, decode.CSRRSI:
		next = old | rhs
	case decode.CSRRC, decode.CSRRCI:
		next = old &^ rhs
	}
	c.CSR.Write(addr, next)
}
