/*
 * rv32emu - Raw instruction bit-slice views
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

// Package encoding maps a raw 32-bit RISC-V instruction word to its named
// bit-slices, one accessor per field. Nothing here is a packed struct; every
// field is an explicit mask-and-shift so the layout never depends on the
// host's bit-field ordering.
package encoding

// Quadrant returns the two low bits of word, the RISC-V encoding quadrant.
// 0b11 selects the 32-bit instruction space; the other three are reserved
// for 16-bit compressed opcodes this emulator does not implement.
func Quadrant(word uint32) uint32 {
	return word & 0x3
}

// Opcode returns the 7-bit major opcode, bits [6:0].
func Opcode(word uint32) uint32 {
	return word & 0x7F
}

// Funct3 returns bits [14:12].
func Funct3(word uint32) uint32 {
	return (word >> 12) & 0x7
}

// Funct7 returns bits [31:25].
func Funct7(word uint32) uint32 {
	return (word >> 25) & 0x7F
}

// Funct2 returns bits [26:25], the R4-format discriminator used by the FMA
// family in place of a full funct7.
func Funct2(word uint32) uint32 {
	return (word >> 25) & 0x3
}

// Rd returns the destination register index, bits [11:7].
func Rd(word uint32) uint32 {
	return (word >> 7) & 0x1F
}

// Rs1 returns the first source register index, bits [19:15].
func Rs1(word uint32) uint32 {
	return (word >> 15) & 0x1F
}

// Rs2 returns the second source register index, bits [24:20].
func Rs2(word uint32) uint32 {
	return (word >> 20) & 0x1F
}

// Rs3 returns the R4-format third source register index, bits [31:27].
func Rs3(word uint32) uint32 {
	return (word >> 27) & 0x1F
}

// Shamt returns the shift amount as encoded in the low 5 bits of the I-type
// immediate field; callers doing a full I-immediate decode should prefer
// ImmI and mask separately, this accessor exists because shift instructions
// never sign-extend the field.
func Shamt(word uint32) uint32 {
	return Rs2(word)
}

// SignExtend treats the low n bits of x as a two's-complement integer of
// width n and sign-extends it to a full int32. n must be in [1,31].
func SignExtend(x uint32, n uint) int32 {
	shift := 32 - n
	return int32(x<<shift) >> shift
}

// ImmI reconstructs the sign-extended I-type immediate, bits [31:20].
func ImmI(word uint32) int32 {
	return SignExtend(word>>20, 12)
}

// ImmS reconstructs the sign-extended S-type immediate: imm[11:5] from
// bits[31:25], imm[4:0] from bits[11:7].
func ImmS(word uint32) int32 {
	hi := (word >> 25) & 0x7F
	lo := (word >> 7) & 0x1F
	return SignExtend((hi<<5)|lo, 12)
}

// ImmB reconstructs the sign-extended B-type immediate: imm[12|10:5] from
// bits[31:25], imm[4:1|11] from bits[11:7]; bit 0 is always zero.
func ImmB(word uint32) int32 {
	bit12 := (word >> 31) & 0x1
	bit11 := (word >> 7) & 0x1
	bits10_5 := (word >> 25) & 0x3F
	bits4_1 := (word >> 8) & 0xF
	v := (bit12 << 12) | (bit11 << 11) | (bits10_5 << 5) | (bits4_1 << 1)
	return SignExtend(v, 13)
}

// ImmU reconstructs the U-type immediate, bits [31:12] left in place
// (already shifted into the upper 20 bits, low 12 bits zero).
func ImmU(word uint32) int32 {
	return int32(word & 0xFFFFF000)
}

// ImmJ reconstructs the sign-extended J-type immediate: imm[20|10:1|11|19:12].
func ImmJ(word uint32) int32 {
	bit20 := (word >> 31) & 0x1
	bits19_12 := (word >> 12) & 0xFF
	bit11 := (word >> 20) & 0x1
	bits10_1 := (word >> 21) & 0x3FF
	v := (bit20 << 20) | (bits19_12 << 12) | (bit11 << 11) | (bits10_1 << 1)
	return SignExtend(v, 21)
}
