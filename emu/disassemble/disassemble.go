/*
 * rv32emu - Disassembler
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package disassemble renders a decoded instruction word as a single
// canonical textual line, selecting a template by variant family the same
// way the original opcode-to-template map does.
package disassemble

import (
	"fmt"

	"github.com/rcornwell/rv32emu/emu/decode"
	"github.com/rcornwell/rv32emu/emu/encoding"
)

// MaxLen is the longest textual form this package promises to produce,
// not counting the NUL terminator a C caller might append.
const MaxLen = 31

// Format renders word as its canonical disassembly, cut to at most MaxLen
// characters.
func Format(word uint32) string {
	s := format(word)
	if len(s) > MaxLen {
		s = s[:MaxLen]
	}
	return s
}

// format renders word as its canonical disassembly without a length limit.
func format(word uint32) string {
	v := decode.Decode(word)
	name := v.Name()

	switch v {
	case decode.ILLEGAL, decode.MRET, decode.FENCE, decode.FENCE_I,
		decode.ECALL, decode.EBREAK:
		return name

	case decode.LUI, decode.AUIPC:
		return fmt.Sprintf("%s x%d, %d", name, encoding.Rd(word), encoding.ImmU(word)>>12)

	case decode.JAL:
		return fmt.Sprintf("%s x%d, %d", name, encoding.Rd(word), encoding.ImmJ(word))

	case decode.JALR:
		return fmt.Sprintf("%s x%d, x%d, %d", name, encoding.Rd(word), encoding.Rs1(word), encoding.ImmI(word))

	case decode.BEQ, decode.BNE, decode.BLT, decode.BGE, decode.BLTU, decode.BGEU:
		return fmt.Sprintf("%s x%d, x%d, %d", name, encoding.Rs1(word), encoding.Rs2(word), encoding.ImmB(word))

	case decode.LB, decode.LH, decode.LW, decode.LBU, decode.LHU:
		return fmt.Sprintf("%s x%d, %d(x%d)", name, encoding.Rd(word), encoding.ImmI(word), encoding.Rs1(word))

	case decode.SB, decode.SH, decode.SW:
		return fmt.Sprintf("%s x%d, %d(x%d)", name, encoding.Rs2(word), encoding.ImmS(word), encoding.Rs1(word))

	case decode.SLLI, decode.SRLI, decode.SRAI:
		return fmt.Sprintf("%s x%d, x%d, %d", name, encoding.Rd(word), encoding.Rs1(word), encoding.Shamt(word)&0x1F)

	case decode.ADDI, decode.SLTI, decode.SLTIU, decode.XORI, decode.ORI, decode.ANDI:
		return fmt.Sprintf("%s x%d, x%d, %d", name, encoding.Rd(word), encoding.Rs1(word), encoding.ImmI(word))

	case decode.ADD, decode.SUB, decode.SLL, decode.SLT, decode.SLTU, decode.XOR,
		decode.SRL, decode.SRA, decode.OR, decode.AND,
		decode.MUL, decode.MULH, decode.MULHSU, decode.MULHU,
		decode.DIV, decode.DIVU, decode.REM, decode.REMU:
		return fmt.Sprintf("%s x%d, x%d, x%d", name, encoding.Rd(word), encoding.Rs1(word), encoding.Rs2(word))

	case decode.CSRRW, decode.CSRRS, decode.CSRRC:
		return fmt.Sprintf("%s x%d, %s, x%d", name, encoding.Rd(word), csrName(encoding.ImmI(word)&0xFFF), encoding.Rs1(word))

	case decode.CSRRWI, decode.CSRRSI, decode.CSRRCI:
		return fmt.Sprintf("%s x%d, %s, %d", name, encoding.Rd(word), csrName(encoding.ImmI(word)&0xFFF), encoding.Rs1(word))

	case decode.FLW:
		return fmt.Sprintf("%s f%d, %d(x%d)", name, encoding.Rd(word), encoding.ImmI(word), encoding.Rs1(word))

	case decode.FSW:
		return fmt.Sprintf("%s f%d, %d(x%d)", name, encoding.Rs2(word), encoding.ImmS(word), encoding.Rs1(word))

	case decode.FMADD_S, decode.FMSUB_S, decode.FNMSUB_S, decode.FNMADD_S:
		return fmt.Sprintf("%s f%d, f%d, f%d, f%d%s", name, encoding.Rd(word), encoding.Rs1(word),
			encoding.Rs2(word), encoding.Rs3(word), rmSuffix(word))

	case decode.FADD_S, decode.FSUB_S, decode.FMUL_S, decode.FDIV_S:
		return fmt.Sprintf("%s f%d, f%d, f%d%s", name, encoding.Rd(word), encoding.Rs1(word),
			encoding.Rs2(word), rmSuffix(word))

	case decode.FSQRT_S:
		return fmt.Sprintf("%s f%d, f%d%s", name, encoding.Rd(word), encoding.Rs1(word), rmSuffix(word))

	case decode.FSGNJ_S, decode.FSGNJN_S, decode.FSGNJX_S, decode.FMIN_S, decode.FMAX_S:
		return fmt.Sprintf("%s f%d, f%d, f%d", name, encoding.Rd(word), encoding.Rs1(word), encoding.Rs2(word))

	case decode.FCVT_W_S, decode.FCVT_WU_S:
		return fmt.Sprintf("%s x%d, f%d%s", name, encoding.Rd(word), encoding.Rs1(word), rmSuffix(word))

	case decode.FCVT_S_W, decode.FCVT_S_WU:
		return fmt.Sprintf("%s f%d, x%d%s", name, encoding.Rd(word), encoding.Rs1(word), rmSuffix(word))

	case decode.FMV_X_W:
		return fmt.Sprintf("%s x%d, f%d", name, encoding.Rd(word), encoding.Rs1(word))

	case decode.FMV_W_X:
		return fmt.Sprintf("%s f%d, x%d", name, encoding.Rd(word), encoding.Rs1(word))

	case decode.FEQ_S, decode.FLT_S, decode.FLE_S:
		return fmt.Sprintf("%s x%d, f%d, f%d", name, encoding.Rd(word), encoding.Rs1(word), encoding.Rs2(word))

	case decode.FCLASS_S:
		return fmt.Sprintf("%s x%d, f%d", name, encoding.Rd(word), encoding.Rs1(word))
	}
	return name
}

// rmSuffix renders the funct3 rounding-mode field as ", rmName", or "" for
// the dynamic-rounding encoding (111); an unrecognized encoding renders as
// ", unknown".
func rmSuffix(word uint32) string {
	rm := RMName(encoding.Funct3(word))
	if rm == "" {
		return ""
	}
	return ", " + rm
}

// RMName maps a 3-bit rounding-mode field to its symbolic name. The dynamic
// encoding (111) is rendered as an empty string rather than "dyn", matching
// the implementation this emulator is bit-exact against.
func RMName(rm uint32) string {
	switch rm {
	case 0b000:
		return "rne"
	case 0b001:
		return "rtz"
	case 0b010:
		return "rdn"
	case 0b011:
		return "rup"
	case 0b100:
		return "rmm"
	case 0b111:
		return ""
	default:
		return "unknown"
	}
}

// csrName looks up the symbolic name for a 12-bit CSR address, falling
// back to decimal for anything not in the known table.
func csrName(addr int32) string {
	if name, ok := csrNames[uint32(addr)]; ok {
		return name
	}
	return fmt.Sprintf("%d", addr)
}
