/*
 * rv32emu - Architectural register files
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

// Package registers holds the three architectural register banks: the
// integer file, the float file, and the CSR file, each with per-entry
// dirty-flag tracking in the style of the memory bank's access bits.
package registers

import "github.com/rcornwell/rv32emu/util/trap"

const (
	numInt = 32
	numCSR = 4096
)

// IntegerFile is the 32-entry general-purpose integer bank. x0 always
// reads as zero and silently discards writes.
type IntegerFile struct {
	x     [numInt]uint32
	dirty [numInt]bool
}

// Read returns the raw bits stored in register i, or 0 for i==0.
func (f *IntegerFile) Read(i uint32) uint32 {
	trap.Assert(i < numInt, "integer register index %d out of range", i)
	if i == 0 {
		return 0
	}
	return f.x[i]
}

// ReadSigned returns register i interpreted as a two's-complement int32.
func (f *IntegerFile) ReadSigned(i uint32) int32 {
	return int32(f.Read(i))
}

// Write stores v into register i, unless i==0, and sets its dirty flag.
func (f *IntegerFile) Write(i uint32, v uint32) {
	trap.Assert(i < numInt, "integer register index %d out of range", i)
	if i == 0 {
		return
	}
	f.x[i] = v
	f.dirty[i] = true
}

// Dirty reports whether register i has been written since the last
// ClearDirty.
func (f *IntegerFile) Dirty(i uint32) bool {
	trap.Assert(i < numInt, "integer register index %d out of range", i)
	return f.dirty[i]
}

// ClearDirty clears every dirty flag.
func (f *IntegerFile) ClearDirty() {
	f.dirty = [numInt]bool{}
}

// Reset zeros every register and dirty flag.
func (f *IntegerFile) Reset() {
	f.x = [numInt]uint32{}
	f.dirty = [numInt]bool{}
}

// FloatFile is the 32-entry single-precision float bank. Values are stored
// as raw bit patterns so NaN payloads transit unmodified through move,
// classify, and sign-injection operations.
type FloatFile struct {
	f     [numInt]uint32
	dirty [numInt]bool
}

// ReadBits returns the raw IEEE-754 bit pattern stored in register i.
func (f *FloatFile) ReadBits(i uint32) uint32 {
	trap.Assert(i < numInt, "float register index %d out of range", i)
	return f.f[i]
}

// WriteBits stores the raw bit pattern v into register i and sets its
// dirty flag. There is no pinned-zero register in the float bank.
func (f *FloatFile) WriteBits(i uint32, v uint32) {
	trap.Assert(i < numInt, "float register index %d out of range", i)
	f.f[i] = v
	f.dirty[i] = true
}

// Dirty reports whether register i has been written since the last
// ClearDirty.
func (f *FloatFile) Dirty(i uint32) bool {
	trap.Assert(i < numInt, "float register index %d out of range", i)
	return f.dirty[i]
}

// ClearDirty clears every dirty flag.
func (f *FloatFile) ClearDirty() {
	f.dirty = [numInt]bool{}
}

// Reset zeros every register and dirty flag.
func (f *FloatFile) Reset() {
	f.f = [numInt]uint32{}
	f.dirty = [numInt]bool{}
}

// CSR addresses that participate in the floating-point status aliasing.
const (
	CSRFflags = 0x001
	CSRFrm    = 0x002
	CSRFcsr   = 0x003
)

// CSRFile is the 4096-entry control/status register bank. fcsr, fflags,
// and frm alias into a single underlying cell per the RISC-V Zicsr
// convention; every other address is a plain 32-bit cell.
type CSRFile struct {
	csr   [numCSR]uint32
	dirty [numCSR]bool
}

// Read returns the current value of CSR addr, resolving the fcsr/fflags/frm
// alias.
func (c *CSRFile) Read(addr uint32) uint32 {
	trap.Assert(addr < numCSR, "CSR index %d out of range", addr)
	switch addr {
	case CSRFflags:
		return c.csr[CSRFcsr] & 0x1F
	case CSRFrm:
		return (c.csr[CSRFcsr] >> 5) & 0x7
	case CSRFcsr:
		return c.csr[CSRFcsr] & 0xFF
	default:
		return c.csr[addr]
	}
}

// Write stores v into CSR addr. Writes to fflags or frm update only their
// field of the shared fcsr cell, leaving the other field untouched; this is
// the one dispatcher in the register files with action at a distance.
func (c *CSRFile) Write(addr uint32, v uint32) {
	trap.Assert(addr < numCSR, "CSR index %d out of range", addr)
	switch addr {
	case CSRFflags:
		c.csr[CSRFcsr] = (c.csr[CSRFcsr] &^ 0x1F) | (v & 0x1F)
	case CSRFrm:
		c.csr[CSRFcsr] = (c.csr[CSRFcsr] &^ 0xE0) | ((v & 0x7) << 5)
	case CSRFcsr:
		c.csr[CSRFcsr] = v & 0xFF
	default:
		c.csr[addr] = v
	}
	c.dirty[addr] = true
	if addr == CSRFflags || addr == CSRFrm {
		c.dirty[CSRFcsr] = true
	}
}

// Dirty reports whether CSR addr has been written since the last
// ClearDirty.
func (c *CSRFile) Dirty(addr uint32) bool {
	trap.Assert(addr < numCSR, "CSR index %d out of range", addr)
	return c.dirty[addr]
}

// ClearDirty clears every dirty flag.
func (c *CSRFile) ClearDirty() {
	c.dirty = [numCSR]bool{}
}

// Reset zeros every CSR cell and dirty flag.
func (c *CSRFile) Reset() {
	c.csr = [numCSR]uint32{}
	c.dirty = [numCSR]bool{}
}
