/*
 * rv32emu - Host-state bridge
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

// Package host is the thin bridge a driver (CLI, debugger, test harness)
// uses to run a hart: reset, load an ELF image, single-step, and read back
// architectural state for display. The engine itself never imports this
// package; host wraps emu/cpu, the same direction the teacher's core
// package wraps its own engine.
package host

import (
	"github.com/rcornwell/rv32emu/emu/cpu"
	"github.com/rcornwell/rv32emu/emu/elf"
	"github.com/rcornwell/rv32emu/emu/memory"
	"github.com/rcornwell/rv32emu/emu/metrics"
)

// LoadResult names the outcome of LoadELF.
type LoadResult int

const (
	LoadOK LoadResult = iota
	LoadWrongMagic
	LoadWrongClass
	LoadWrongData
	LoadWrongType
	LoadWrongMachine
	LoadWrongVersion
	LoadNoEntry
	LoadOther
)

var errToResult = map[error]LoadResult{
	elf.ErrWrongMagic:   LoadWrongMagic,
	elf.ErrWrongClass:   LoadWrongClass,
	elf.ErrWrongData:    LoadWrongData,
	elf.ErrWrongType:    LoadWrongType,
	elf.ErrWrongMachine: LoadWrongMachine,
	elf.ErrWrongVersion: LoadWrongVersion,
	elf.ErrNoEntry:      LoadNoEntry,
	elf.ErrTooSmall:     LoadOther,
}

// Hart owns one CPU and exposes it to a driver through the bridge
// contract. It is not safe for concurrent use by more than one driver
// goroutine at a time, matching the single-owner discipline of the engine
// it wraps.
type Hart struct {
	cpu     *cpu.CPU
	metrics *metrics.Registry
}

// New returns a Hart in the reset state. metrics may be nil if the caller
// does not want counters updated.
func New(m *metrics.Registry) *Hart {
	return &Hart{cpu: cpu.New(), metrics: m}
}

// Reset zeros all architectural state.
func (h *Hart) Reset() {
	h.cpu.Reset()
	if h.metrics != nil {
		h.metrics.Reset()
	}
}

// LoadELF validates and loads a 32-bit little-endian RISC-V ET_EXEC image.
// On success the hart is reset and every PT_LOAD segment is applied.
func (h *Hart) LoadELF(data []byte) LoadResult {
	h.cpu.Reset()
	entry, err := elf.Load(data, &h.cpu.Mem)
	if err != nil {
		if r, ok := errToResult[err]; ok {
			return r
		}
		return LoadOther
	}
	h.cpu.PC = entry
	return LoadOK
}

// Step executes one instruction. It returns false on ECALL, EBREAK, or an
// illegal opcode.
func (h *Hart) Step() bool {
	cont := h.cpu.Step()
	if h.metrics != nil {
		h.metrics.StepExecuted(h.cpu.Halt)
	}
	return cont
}

// PC returns the current program counter.
func (h *Hart) PC() uint32 { return h.cpu.PC }

// HaltReason returns why the last Step returned false, or HaltNone if the
// hart has not halted.
func (h *Hart) HaltReason() cpu.HaltReason { return h.cpu.Halt }

// IntRegister returns the raw bits of integer register i.
func (h *Hart) IntRegister(i uint32) uint32 { return h.cpu.X.Read(i) }

// IntDirty reports whether integer register i changed since the last
// ClearDirtyFlags.
func (h *Hart) IntDirty(i uint32) bool { return h.cpu.X.Dirty(i) }

// FloatRegister returns the raw bits of float register i.
func (h *Hart) FloatRegister(i uint32) uint32 { return h.cpu.F.ReadBits(i) }

// CSR returns the value of CSR addr, resolving fcsr/fflags/frm aliasing.
func (h *Hart) CSR(addr uint32) uint32 { return h.cpu.CSR.Read(addr) }

// MemoryByte returns the byte at addr.
func (h *Hart) MemoryByte(addr uint32) uint8 {
	return memory.Read[uint8](&h.cpu.Mem, addr)
}

// MemoryDirty reports whether the byte at addr changed since the last
// ClearDirtyFlags.
func (h *Hart) MemoryDirty(addr uint32) bool {
	return h.cpu.Mem.Dirty(addr)
}

// ClearDirtyFlags clears the dirty bits on every bank. The engine never
// calls this itself; only a driver decides when "just changed" state has
// been observed.
func (h *Hart) ClearDirtyFlags() {
	h.cpu.X.ClearDirty()
	h.cpu.F.ClearDirty()
	h.cpu.CSR.ClearDirty()
	h.cpu.Mem.ClearDirty()
}
