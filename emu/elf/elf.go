/*
 * rv32emu - ELF32 loader
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

// Package elf validates and loads a 32-bit little-endian RISC-V ET_EXEC
// image into a flat physical memory. Only the program-header table is
// honored; section headers are not consulted. Validation deliberately does
// not go through debug/elf's own NewFile, which rejects some headers this
// loader must accept permissively (e.g. the riscv-tests binaries' non-PIE
// entry points).
package elf

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"errors"

	"github.com/spf13/afero"

	"github.com/rcornwell/rv32emu/emu/memory"
)

// Rejection kinds, one per validation step, matching the host API's named
// result codes.
var (
	ErrTooSmall     = errors.New("elf: input too small for a header")
	ErrWrongMagic   = errors.New("elf: wrong magic")
	ErrWrongClass   = errors.New("elf: wrong class, want ELFCLASS32")
	ErrWrongData    = errors.New("elf: wrong data encoding, want little-endian")
	ErrWrongType    = errors.New("elf: wrong type, want ET_EXEC")
	ErrWrongMachine = errors.New("elf: wrong machine, want EM_RISCV")
	ErrWrongVersion = errors.New("elf: wrong version")
	ErrNoEntry      = errors.New("elf: zero entry point")
)

// addrMask clears the high bit used as a physical/virtual flag by the
// riscv-tests binaries.
const addrMask = 0x7FFFFFFF

// Load validates data as a 32-bit little-endian RISC-V ET_EXEC image,
// copies every PT_LOAD segment into m, and returns the masked entry point.
// On any validation error m is left untouched.
func Load(data []byte, m *memory.Memory) (uint32, error) {
	if len(data) < binary.Size(elf.Header32{}) {
		return 0, ErrTooSmall
	}
	if !bytes.Equal(data[0:4], []byte{0x7F, 'E', 'L', 'F'}) {
		return 0, ErrWrongMagic
	}
	if data[elf.EI_CLASS] != byte(elf.ELFCLASS32) {
		return 0, ErrWrongClass
	}
	if data[elf.EI_DATA] != byte(elf.ELFDATA2LSB) {
		return 0, ErrWrongData
	}

	var hdr elf.Header32
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &hdr); err != nil {
		return 0, ErrTooSmall
	}
	if elf.Type(hdr.Type) != elf.ET_EXEC {
		return 0, ErrWrongType
	}
	if elf.Machine(hdr.Machine) != elf.EM_RISCV {
		return 0, ErrWrongMachine
	}
	if hdr.Version != uint32(elf.EV_CURRENT) {
		return 0, ErrWrongVersion
	}
	if hdr.Entry == 0 {
		return 0, ErrNoEntry
	}

	phOff := int(hdr.Phoff)
	phEntSize := int(hdr.Phentsize)
	phNum := int(hdr.Phnum)
	for i := 0; i < phNum; i++ {
		off := phOff + i*phEntSize
		if off+phEntSize > len(data) {
			break
		}
		var ph elf.Prog32
		if err := binary.Read(bytes.NewReader(data[off:off+phEntSize]), binary.LittleEndian, &ph); err != nil {
			continue
		}
		if elf.ProgType(ph.Type) != elf.PT_LOAD {
			continue
		}
		start := int(ph.Off)
		end := start + int(ph.Filesz)
		if start < 0 || end > len(data) || end < start {
			continue
		}
		paddr := ph.Paddr & addrMask
		m.LoadSegment(paddr, data[start:end])
	}

	return hdr.Entry & addrMask, nil
}

// LoadFile reads path through fs and loads it per Load.
func LoadFile(fs afero.Fs, path string, m *memory.Memory) (uint32, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return 0, err
	}
	return Load(data, m)
}
