/*
 * rv32emu - Instruction decoder
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

// Package decode classifies a raw 32-bit instruction word into one of a
// closed set of opcode variants. Decode is total and pure: every word maps
// to exactly one Variant, with ILLEGAL as the catch-all.
package decode

import "github.com/rcornwell/rv32emu/emu/encoding"

// Variant is a decoded opcode tag.
type Variant int

const (
	ILLEGAL Variant = iota
	MRET

	// RV32I
	LUI
	AUIPC
	JAL
	JALR
	BEQ
	BNE
	BLT
	BGE
	BLTU
	BGEU
	LB
	LH
	LW
	LBU
	LHU
	SB
	SH
	SW
	ADDI
	SLTI
	SLTIU
	XORI
	ORI
	ANDI
	SLLI
	SRLI
	SRAI
	ADD
	SUB
	SLL
	SLT
	SLTU
	XOR
	SRL
	SRA
	OR
	AND
	FENCE
	ECALL
	EBREAK

	// Zifencei
	FENCE_I

	// Zicsr
	CSRRW
	CSRRS
	CSRRC
	CSRRWI
	CSRRSI
	CSRRCI

	// M extension
	MUL
	MULH
	MULHSU
	MULHU
	DIV
	DIVU
	REM
	REMU

	// F extension
	FLW
	FSW
	FMADD_S
	FMSUB_S
	FNMSUB_S
	FNMADD_S
	FADD_S
	FSUB_S
	FMUL_S
	FDIV_S
	FSQRT_S
	FSGNJ_S
	FSGNJN_S
	FSGNJX_S
	FMIN_S
	FMAX_S
	FCVT_W_S
	FCVT_WU_S
	FCVT_S_W
	FCVT_S_WU
	FMV_X_W
	FMV_W_X
	FEQ_S
	FLT_S
	FLE_S
	FCLASS_S

	variantCount
)

// Count is the number of distinct Variant values, including ILLEGAL.
const Count = int(variantCount)

const mretWord = 0x30200073

// Decode classifies word. It never consults or mutates architectural state.
func Decode(word uint32) Variant {
	if encoding.Quadrant(word) != 0x3 {
		return ILLEGAL
	}
	if word == mretWord {
		return MRET
	}

	op := encoding.Opcode(word)
	f3 := encoding.Funct3(word)
	f7 := encoding.Funct7(word)

	switch op {
	case 0b0110111:
		return LUI
	case 0b0010111:
		return AUIPC
	case 0b1101111:
		return JAL
	case 0b1100111:
		if f3 == 0 {
			return JALR
		}
		return ILLEGAL
	case 0b1100011:
		switch f3 {
		case 0b000:
			return BEQ
		case 0b001:
			return BNE
		case 0b100:
			return BLT
		case 0b101:
			return BGE
		case 0b110:
			return BLTU
		case 0b111:
			return BGEU
		}
		return ILLEGAL
	case 0b0000011:
		switch f3 {
		case 0b000:
			return LB
		case 0b001:
			return LH
		case 0b010:
			return LW
		case 0b100:
			return LBU
		case 0b101:
			return LHU
		}
		return ILLEGAL
	case 0b0100011:
		switch f3 {
		case 0b000:
			return SB
		case 0b001:
			return SH
		case 0b010:
			return SW
		}
		return ILLEGAL
	case 0b0010011:
		switch f3 {
		case 0b000:
			return ADDI
		case 0b010:
			return SLTI
		case 0b011:
			return SLTIU
		case 0b100:
			return XORI
		case 0b110:
			return ORI
		case 0b111:
			return ANDI
		case 0b001:
			if f7 == 0x00 {
				return SLLI
			}
			return ILLEGAL
		case 0b101:
			switch f7 {
			case 0x00:
				return SRLI
			case 0x20:
				return SRAI
			}
			return ILLEGAL
		}
		return ILLEGAL
	case 0b0110011:
		switch f7 {
		case 0x00:
			switch f3 {
			case 0b000:
				return ADD
			case 0b001:
				return SLL
			case 0b010:
				return SLT
			case 0b011:
				return SLTU
			case 0b100:
				return XOR
			case 0b101:
				return SRL
			case 0b110:
				return OR
			case 0b111:
				return AND
			}
		case 0x20:
			switch f3 {
			case 0b000:
				return SUB
			case 0b101:
				return SRA
			}
		case 0x01:
			switch f3 {
			case 0b000:
				return MUL
			case 0b001:
				return MULH
			case 0b010:
				return MULHSU
			case 0b011:
				return MULHU
			case 0b100:
				return DIV
			case 0b101:
				return DIVU
			case 0b110:
				return REM
			case 0b111:
				return REMU
			}
		}
		return ILLEGAL
	case 0b0001111:
		if f3 == 0b001 {
			return FENCE_I
		}
		return FENCE
	case 0b1110011:
		switch f3 {
		case 0b000:
			imm := encoding.ImmI(word)
			switch imm {
			case 0:
				return ECALL
			case 1:
				return EBREAK
			}
			return ILLEGAL
		case 0b001:
			return CSRRW
		case 0b010:
			return CSRRS
		case 0b011:
			return CSRRC
		case 0b101:
			return CSRRWI
		case 0b110:
			return CSRRSI
		case 0b111:
			return CSRRCI
		}
		return ILLEGAL
	case 0b0000111:
		if f3 == 0b010 {
			return FLW
		}
		return ILLEGAL
	case 0b0100111:
		if f3 == 0b010 {
			return FSW
		}
		return ILLEGAL
	case 0b1000011:
		if encoding.Funct2(word) != 0 {
			return ILLEGAL
		}
		return FMADD_S
	case 0b1000111:
		if encoding.Funct2(word) != 0 {
			return ILLEGAL
		}
		return FMSUB_S
	case 0b1001011:
		if encoding.Funct2(word) != 0 {
			return ILLEGAL
		}
		return FNMSUB_S
	case 0b1001111:
		if encoding.Funct2(word) != 0 {
			return ILLEGAL
		}
		return FNMADD_S
	case 0b1010011:
		return decodeFOp(word, f3, f7)
	}
	return ILLEGAL
}

func decodeFOp(word uint32, f3, f7 uint32) Variant {
	rs2 := encoding.Rs2(word)
	switch f7 {
	case 0x00:
		return FADD_S
	case 0x04:
		return FSUB_S
	case 0x08:
		return FMUL_S
	case 0x0C:
		return FDIV_S
	case 0x2C:
		if rs2 == 0x00 {
			return FSQRT_S
		}
	case 0x10:
		switch f3 {
		case 0b000:
			return FSGNJ_S
		case 0b001:
			return FSGNJN_S
		case 0b010:
			return FSGNJX_S
		}
	case 0x14:
		switch f3 {
		case 0b000:
			return FMIN_S
		case 0b001:
			return FMAX_S
		}
	case 0x60:
		switch rs2 {
		case 0x00:
			return FCVT_W_S
		case 0x01:
			return FCVT_WU_S
		}
	case 0x68:
		switch rs2 {
		case 0x00:
			return FCVT_S_W
		case 0x01:
			return FCVT_S_WU
		}
	case 0x70:
		switch f3 {
		case 0b000:
			if rs2 == 0x00 {
				return FMV_X_W
			}
		case 0b001:
			if rs2 == 0x00 {
				return FCLASS_S
			}
		}
	case 0x74:
		if f3 == 0b000 && rs2 == 0x00 {
			return FMV_W_X
		}
	case 0x50:
		switch f3 {
		case 0b010:
			return FEQ_S
		case 0b001:
			return FLT_S
		case 0b000:
			return FLE_S
		}
	}
	return ILLEGAL
}
