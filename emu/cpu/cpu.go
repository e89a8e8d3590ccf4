/*
 * rv32emu - Execution engine
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

// Package cpu is the one-instruction-at-a-time execution engine: fetch,
// decode, advance PC, dispatch. The engine is the architectural state
// owner; it never logs and never touches a filesystem, matching the pure
// state-machine role the host bridge wraps.
package cpu

import (
	"github.com/rcornwell/rv32emu/emu/decode"
	"github.com/rcornwell/rv32emu/emu/memory"
	"github.com/rcornwell/rv32emu/emu/registers"
)

// HaltReason records why the last Step returned false.
type HaltReason int

const (
	// HaltNone means the engine has not halted.
	HaltNone HaltReason = iota
	HaltECall
	HaltEBreak
	HaltIllegal
)

var haltReasonNames = [...]string{"none", "ecall", "ebreak", "illegal"}

func (h HaltReason) String() string {
	if int(h) < 0 || int(h) >= len(haltReasonNames) {
		return "unknown"
	}
	return haltReasonNames[h]
}

// CPU holds the complete architectural state of one hart: PC, the three
// register banks, and physical memory.
type CPU struct {
	PC  uint32
	X   registers.IntegerFile
	F   registers.FloatFile
	CSR registers.CSRFile
	Mem memory.Memory

	Halt HaltReason
}

// New returns a CPU in the reset state.
func New() *CPU {
	c := &CPU{}
	c.Reset()
	return c
}

// Reset zeros PC, every register bank, memory, and all dirty flags.
func (c *CPU) Reset() {
	c.PC = 0
	c.X.Reset()
	c.F.Reset()
	c.CSR.Reset()
	c.Mem.Reset()
	c.Halt = HaltNone
}

// Step fetches and executes one instruction. It returns true to continue
// running, false on ECALL, EBREAK, or an illegal opcode.
func (c *CPU) Step() bool {
	word := memory.Read[uint32](&c.Mem, c.PC)
	v := decode.Decode(word)

	if v == decode.MRET {
		c.PC = c.CSR.Read(mepc)
		return true
	}

	oldPC := c.PC
	c.PC = oldPC + 4

	switch {
	case isALUImm(v), isALUReg(v):
		c.execALU(v, word)
	case v == decode.LUI || v == decode.AUIPC:
		c.execUpper(v, word, oldPC)
	case v == decode.JAL:
		c.execJAL(word, oldPC)
	case v == decode.JALR:
		c.execJALR(word, oldPC)
	case isBranch(v):
		c.execBranch(v, word, oldPC)
	case isLoad(v):
		c.execLoad(v, word)
	case isStore(v):
		c.execStore(v, word)
	case v == decode.FENCE || v == decode.FENCE_I:
		// no-ops
	case v == decode.ECALL:
		c.Halt = HaltECall
		return false
	case v == decode.EBREAK:
		c.Halt = HaltEBreak
		return false
	case isZicsr(v):
		c.execCSR(v, word)
	case isMExtension(v):
		c.execM(v, word)
	case isFloat(v):
		c.execFloat(v, word)
	default:
		c.Halt = HaltIllegal
		return false
	}
	return true
}

func isALUImm(v decode.Variant) bool {
	switch v {
	case decode.ADDI, decode.SLTI, decode.SLTIU, decode.XORI, decode.ORI, decode.ANDI,
		decode.SLLI, decode.SRLI, decode.SRAI:
		return true
	}
	return false
}

func isALUReg(v decode.Variant) bool {
	switch v {
	case decode.ADD, decode.SUB, decode.SLL, decode.SLT, decode.SLTU, decode.XOR,
		decode.SRL, decode.SRA, decode.OR, decode.AND:
		return true
	}
	return false
}

func isBranch(v decode.Variant) bool {
	switch v {
	case decode.BEQ, decode.BNE, decode.BLT, decode.BGE, decode.BLTU, decode.BGEU:
		return true
	}
	return false
}

func isLoad(v decode.Variant) bool {
	switch v {
	case decode.LB, decode.LH, decode.LW, decode.LBU, decode.LHU, decode.FLW:
		return true
	}
	return false
}

func isStore(v decode.Variant) bool {
	switch v {
	case decode.SB, decode.SH, decode.SW, decode.FSW:
		return true
	}
	return false
}

func isZicsr(v decode.Variant) bool {
	switch v {
	case decode.CSRRW, decode.CSRRS, decode.CSRRC, decode.CSRRWI, decode.CSRRSI, decode.CSRRCI:
		return true
	}
	return false
}

func isMExtension(v decode.Variant) bool {
	switch v {
	case decode.MUL, decode.MULH, decode.MULHSU, decode.MULHU, decode.DIV, decode.DIVU, decode.REM, decode.REMU:
		return true
	}
	return false
}

func isFloat(v decode.Variant) bool {
	switch v {
	case decode.FMADD_S, decode.FMSUB_S, decode.FNMSUB_S, decode.FNMADD_S,
		decode.FADD_S, decode.FSUB_S, decode.FMUL_S, decode.FDIV_S, decode.FSQRT_S,
		decode.FSGNJ_S, decode.FSGNJN_S, decode.FSGNJX_S, decode.FMIN_S, decode.FMAX_S,
		decode.FCVT_W_S, decode.FCVT_WU_S, decode.FCVT_S_W, decode.FCVT_S_WU,
		decode.FMV_X_W, decode.FMV_W_X, decode.FEQ_S, decode.FLT_S, decode.FLE_S, decode.FCLASS_S:
		return true
	}
	return false
}
