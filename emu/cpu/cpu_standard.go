package cpu

import (
	"github.com/rcornwell/rv32emu/emu/decode"
	"github.com/rcornwell/rv32emu/emu/encoding"
	"github.com/rcornwell/rv32emu/emu/memory"
)

// execALU handles the ALU-immediate and ALU-register families. Shift
// amounts are always masked to 5 bits.
func (c *CPU) execALU(v decode.Variant, word uint32) {
	rd := encoding.Rd(word)
	rs1 := encoding.Rs1(word)
	a := c.X.Read(rs1)
	sa := c.X.ReadSigned(rs1)

	var b uint32
	var sb int32
	imm := encoding.ImmI(word)
	switch v {
	case decode.ADDI, decode.SLTI, decode.SLTIU, decode.XORI, decode.ORI, decode.ANDI:
		b = uint32(imm)
		sb = imm
	case decode.SLLI, decode.SRLI, decode.SRAI:
		b = encoding.Shamt(word) & 0x1F
	default:
		rs2 := encoding.Rs2(word)
		b = c.X.Read(rs2)
		sb = c.X.ReadSigned(rs2)
	}

	var result uint32
	switch v {
	case decode.ADDI, decode.ADD:
		result = a + b
	case decode.SUB:
		result = a - b
	case decode.SLTI, decode.SLT:
		result = boolToWord(sa < sb)
	case decode.SLTIU, decode.SLTU:
		result = boolToWord(a < b)
	case decode.XORI, decode.XOR:
		result = a ^ b
	case decode.ORI, decode.OR:
		result = a | b
	case decode.ANDI, decode.AND:
		result = a & b
	case decode.SLLI, decode.SLL:
		result = a << (b & 0x1F)
	case decode.SRLI, decode.SRL:
		result = a >> (b & 0x1F)
	case decode.SRAI, decode.SRA:
		result = uint32(sa >> (b & 0x1F))
	}
	c.X.Write(rd, result)
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// execUpper handles LUI and AUIPC.
func (c *CPU) execUpper(v decode.Variant, word uint32, oldPC uint32) {
	rd := encoding.Rd(word)
	imm := encoding.ImmU(word)
	if v == decode.LUI {
		c.X.Write(rd, uint32(imm))
		return
	}
	c.X.Write(rd, oldPC+uint32(imm))
}

// execJAL handles JAL: rd gets the return address, PC jumps relative to
// the pre-increment PC.
func (c *CPU) execJAL(word uint32, oldPC uint32) {
	rd := encoding.Rd(word)
	imm := encoding.ImmJ(word)
	c.X.Write(rd, oldPC+4)
	c.PC = uint32(int32(oldPC) + imm)
}

// execJALR computes a signed base-plus-offset target, clears its low bit,
// writes the return address, then jumps. The base-address signedness
// mirrors the reference implementation this engine is bit-exact against;
// it is deliberately not reinterpreted as unsigned.
func (c *CPU) execJALR(word uint32, oldPC uint32) {
	rd := encoding.Rd(word)
	rs1 := encoding.Rs1(word)
	imm := encoding.ImmI(word)
	target := uint32(c.X.ReadSigned(rs1)+imm) &^ 1
	c.X.Write(rd, oldPC+4)
	c.PC = target
}

// execBranch evaluates the branch condition and, if taken, replaces PC
// (already advanced to oldPC+4) with the target relative to oldPC.
func (c *CPU) execBranch(v decode.Variant, word uint32, oldPC uint32) {
	rs1 := encoding.Rs1(word)
	rs2 := encoding.Rs2(word)
	a := c.X.Read(rs1)
	b := c.X.Read(rs2)
	sa := c.X.ReadSigned(rs1)
	sb := c.X.ReadSigned(rs2)

	var taken bool
	switch v {
	case decode.BEQ:
		taken = a == b
	case decode.BNE:
		taken = a != b
	case decode.BLT:
		taken = sa < sb
	case decode.BGE:
		taken = sa >= sb
	case decode.BLTU:
		taken = a < b
	case decode.BGEU:
		taken = a >= b
	}
	if taken {
		imm := encoding.ImmB(word)
		c.PC = uint32(int32(oldPC) + imm)
	}
}

// execLoad reads the effective address and sign/zero-extends per width.
func (c *CPU) execLoad(v decode.Variant, word uint32) {
	rd := encoding.Rd(word)
	rs1 := encoding.Rs1(word)
	addr := uint32(c.X.ReadSigned(rs1) + encoding.ImmI(word))

	switch v {
	case decode.LB:
		c.X.Write(rd, uint32(memory.Read[int8](&c.Mem, addr)))
	case decode.LH:
		c.X.Write(rd, uint32(memory.Read[int16](&c.Mem, addr)))
	case decode.LW:
		c.X.Write(rd, memory.Read[uint32](&c.Mem, addr))
	case decode.LBU:
		c.X.Write(rd, uint32(memory.Read[uint8](&c.Mem, addr)))
	case decode.LHU:
		c.X.Write(rd, uint32(memory.Read[uint16](&c.Mem, addr)))
	case decode.FLW:
		c.F.WriteBits(rd, memory.Read[uint32](&c.Mem, addr))
	}
}

// execStore writes the low bits of rs2 (or the float bit-pattern for FSW)
// to the effective address.
func (c *CPU) execStore(v decode.Variant, word uint32) {
	rs1 := encoding.Rs1(word)
	rs2 := encoding.Rs2(word)
	addr := uint32(c.X.ReadSigned(rs1) + encoding.ImmS(word))

	switch v {
	case decode.SB:
		memory.Write[uint8](&c.Mem, addr, uint8(c.X.Read(rs2)))
	case decode.SH:
		memory.Write[uint16](&c.Mem, addr, uint16(c.X.Read(rs2)))
	case decode.SW:
		memory.Write[uint32](&c.Mem, addr, c.X.Read(rs2))
	case decode.FSW:
		memory.Write[uint32](&c.Mem, addr, c.F.ReadBits(rs2))
	}
}

// execM handles the integer multiply/divide extension, including the
// divisor-zero and signed-overflow special cases.
func (c *CPU) execM(v decode.Variant, word uint32) {
	rd := encoding.Rd(word)
	rs1 := encoding.Rs1(word)
	rs2 := encoding.Rs2(word)
	a := c.X.Read(rs1)
	b := c.X.Read(rs2)
	sa := c.X.ReadSigned(rs1)
	sb := c.X.ReadSigned(rs2)

	var result uint32
	switch v {
	case decode.MUL:
		result = uint32(int64(sa) * int64(sb))
	case decode.MULH:
		result = uint32((int64(sa) * int64(sb)) >> 32)
	case decode.MULHSU:
		result = uint32((int64(sa) * int64(int64(b))) >> 32)
	case decode.MULHU:
		result = uint32((uint64(a) * uint64(b)) >> 32)
	case decode.DIV:
		switch {
		case sb == 0:
			result = 0xFFFFFFFF
		case sa == -0x80000000 && sb == -1:
			result = 0x80000000
		default:
			result = uint32(sa / sb)
		}
	case decode.DIVU:
		if b == 0 {
			result = 0xFFFFFFFF
		} else {
			result = a / b
		}
	case decode.REM:
		switch {
		case sb == 0:
			result = uint32(sa)
		case sa == -0x80000000 && sb == -1:
			result = 0
		default:
			result = uint32(sa % sb)
		}
	case decode.REMU:
		if b == 0 {
			result = a
		} else {
			result = a % b
		}
	}
	c.X.Write(rd, result)
}
