/*
 * rv32emu - Flat physical memory
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

// Package memory is the hart's flat, byte-addressable little-endian RAM,
// with typed generic accessors and a per-byte dirty bitmap mirroring the
// register files' dirty tracking.
package memory

import (
	"math"

	"github.com/rcornwell/rv32emu/util/trap"
)

// Size is the total addressable memory in bytes.
const Size = 1024 * 1024

// Memory is a flat little-endian byte array.
type Memory struct {
	mem   [Size]byte
	dirty [Size]bool
}

// Integer is the set of integer widths Read/Write support.
type Integer interface {
	int8 | int16 | int32 | uint8 | uint16 | uint32
}

func checkBounds(addr uint32, width int) {
	trap.Assert(uint64(addr)+uint64(width) <= Size, "memory access at 0x%X+%d out of range", addr, width)
}

// Read copies sizeof(T) little-endian bytes at addr into a T. T ranges over
// the signed/unsigned 8/16/32-bit integers.
func Read[T Integer](m *Memory, addr uint32) T {
	var zero T
	width := widthOf(zero)
	checkBounds(addr, width)
	var v uint32
	for i := 0; i < width; i++ {
		v |= uint32(m.mem[int(addr)+i]) << (8 * i)
	}
	return truncate[T](v)
}

// Write stores the low sizeof(T) bytes of v at addr in little-endian order
// and marks those bytes dirty.
func Write[T Integer](m *Memory, addr uint32, v T) {
	width := widthOf(v)
	checkBounds(addr, width)
	u := widen(v)
	for i := 0; i < width; i++ {
		m.mem[int(addr)+i] = byte(u >> (8 * i))
		m.dirty[int(addr)+i] = true
	}
}

// ReadFloat32 reads an IEEE-754 single-precision value at addr.
func ReadFloat32(m *Memory, addr uint32) float32 {
	bits := Read[uint32](m, addr)
	return math.Float32frombits(bits)
}

// WriteFloat32 writes the bit pattern of v at addr.
func WriteFloat32(m *Memory, addr uint32, v float32) {
	Write[uint32](m, addr, math.Float32bits(v))
}

// Dirty reports whether the byte at addr has been written since the last
// ClearDirty.
func (m *Memory) Dirty(addr uint32) bool {
	trap.Assert(addr < Size, "memory address 0x%X out of range", addr)
	return m.dirty[addr]
}

// ClearDirty clears every byte's dirty flag.
func (m *Memory) ClearDirty() {
	m.dirty = [Size]bool{}
}

// Reset zeros every byte and dirty flag.
func (m *Memory) Reset() {
	m.mem = [Size]byte{}
	m.dirty = [Size]bool{}
}

// LoadSegment copies data into memory starting at addr, marking each byte
// dirty. It is used by the ELF loader for PT_LOAD segments.
func (m *Memory) LoadSegment(addr uint32, data []byte) {
	checkBounds(addr, len(data))
	copy(m.mem[addr:], data)
	for i := range data {
		m.dirty[int(addr)+i] = true
	}
}

func widthOf(v any) int {
	switch v.(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32:
		return 4
	}
	panic("unsupported integer width")
}

func widen(v any) uint32 {
	switch x := v.(type) {
	case int8:
		return uint32(uint8(x))
	case uint8:
		return uint32(x)
	case int16:
		return uint32(uint16(x))
	case uint16:
		return uint32(x)
	case int32:
		return uint32(x)
	case uint32:
		return x
	}
	panic("unsupported integer width")
}

func truncate[T Integer](v uint32) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return any(int8(uint8(v))).(T)
	case uint8:
		return any(uint8(v)).(T)
	case int16:
		return any(int16(uint16(v))).(T)
	case uint16:
		return any(uint16(v)).(T)
	case int32:
		return any(int32(v)).(T)
	case uint32:
		return any(v).(T)
	}
	panic("unsupported integer width")
}
