package cpu

import (
	"math"

	"github.com/rcornwell/rv32emu/emu/decode"
	"github.com/rcornwell/rv32emu/emu/encoding"
	"github.com/rcornwell/rv32emu/emu/registers"
)

// canonicalNaN is the quiet-NaN bit pattern every NaN-valued float result
// is replaced with before it becomes visible architectural state.
const canonicalNaN = 0x7FC00000

// Sticky flag bits, packed into the low 5 bits of fflags.
const (
	flagInexact   = 1 << 0
	flagUnderflow = 1 << 1
	flagOverflow  = 1 << 2
	flagDivByZero = 1 << 3
	flagInvalid   = 1 << 4
)

// execFloat dispatches the F-extension variants. Every arithmetic op
// follows the same protocol: compute, derive sticky flags, OR them into
// fflags, canonicalize any NaN result, then write the destination.
func (c *CPU) execFloat(v decode.Variant, word uint32) {
	rd := encoding.Rd(word)
	rs1 := encoding.Rs1(word)
	rs2 := encoding.Rs2(word)

	a := math.Float32frombits(c.F.ReadBits(rs1))
	b := math.Float32frombits(c.F.ReadBits(rs2))

	switch v {
	case decode.FADD_S:
		c.writeFloatResult(rd, addFlags(a, b))
	case decode.FSUB_S:
		c.writeFloatResult(rd, subFlags(a, b))
	case decode.FMUL_S:
		c.writeFloatResult(rd, mulFlags(a, b))
	case decode.FDIV_S:
		c.writeFloatResult(rd, divFlags(a, b))
	case decode.FSQRT_S:
		c.writeFloatResult(rd, sqrtFlags(a))

	case decode.FMADD_S, decode.FMSUB_S, decode.FNMSUB_S, decode.FNMADD_S:
		rs3 := encoding.Rs3(word)
		d := math.Float32frombits(c.F.ReadBits(rs3))
		c.writeFloatResult(rd, fmaFlags(v, a, b, d))

	case decode.FSGNJ_S:
		c.F.WriteBits(rd, sgnj(a, b))
	case decode.FSGNJN_S:
		c.F.WriteBits(rd, sgnjn(a, b))
	case decode.FSGNJX_S:
		c.F.WriteBits(rd, sgnjx(a, b))

	case decode.FMIN_S:
		c.writeFloatResult(rd, minMaxFlags(a, b, true))
	case decode.FMAX_S:
		c.writeFloatResult(rd, minMaxFlags(a, b, false))

	case decode.FCVT_W_S:
		result, flags := cvtToInt(a, true)
		c.setFlags(flags)
		c.X.Write(rd, result)
	case decode.FCVT_WU_S:
		result, flags := cvtToInt(a, false)
		c.setFlags(flags)
		c.X.Write(rd, result)

	case decode.FCVT_S_W:
		c.F.WriteBits(rd, math.Float32bits(float32(c.X.ReadSigned(rs1))))
	case decode.FCVT_S_WU:
		c.F.WriteBits(rd, math.Float32bits(float32(c.X.Read(rs1))))

	case decode.FMV_X_W:
		c.X.Write(rd, c.F.ReadBits(rs1))
	case decode.FMV_W_X:
		c.F.WriteBits(rd, c.X.Read(rs1))

	case decode.FEQ_S:
		c.writeCompareResult(rd, feq(a, b))
	case decode.FLT_S:
		c.writeCompareResult(rd, flt(a, b))
	case decode.FLE_S:
		c.writeCompareResult(rd, fle(a, b))

	case decode.FCLASS_S:
		c.X.Write(rd, fclass(c.F.ReadBits(rs1)))
	}
}

// fpResult is a float32 result paired with the sticky flags it produced.
type fpResult struct {
	bits  uint32
	flags uint32
}

// writeFloatResult ORs r's flags into fflags and writes its (possibly
// canonicalized) bit pattern to float register rd.
func (c *CPU) writeFloatResult(rd uint32, r fpResult) {
	c.setFlags(r.flags)
	c.F.WriteBits(rd, r.bits)
}

func (c *CPU) setFlags(flags uint32) {
	c.CSR.Write(registers.CSRFflags, c.CSR.Read(registers.CSRFflags)|flags)
}

func canonicalize(v float32) uint32 {
	if math.IsNaN(float64(v)) {
		return canonicalNaN
	}
	return math.Float32bits(v)
}

func isSubnormal(v float32) bool {
	bits := math.Float32bits(v)
	exp := (bits >> 23) & 0xFF
	mant := bits & 0x7FFFFF
	return exp == 0 && mant != 0
}

// roundTrip computes flags common to add/sub/mul/div/sqrt: overflow when a
// finite computation escapes to infinity, underflow when it lands in the
// subnormal range, inexact when the float32 result does not exactly equal
// the wider-precision computation.
func roundTrip(r64 float64, invalidInputs bool) fpResult {
	r32 := float32(r64)
	var flags uint32
	if invalidInputs {
		flags |= flagInvalid
		return fpResult{bits: canonicalNaN, flags: flags}
	}
	if math.IsNaN(r64) {
		flags |= flagInvalid
		return fpResult{bits: canonicalNaN, flags: flags}
	}
	if math.IsInf(r64, 0) {
		return fpResult{bits: canonicalize(r32), flags: flags}
	}
	if math.IsInf(float64(r32), 0) {
		flags |= flagOverflow | flagInexact
		return fpResult{bits: canonicalize(r32), flags: flags}
	}
	if isSubnormal(r32) {
		flags |= flagUnderflow
	}
	if float64(r32) != r64 {
		flags |= flagInexact
	}
	return fpResult{bits: canonicalize(r32), flags: flags}
}

func addFlags(a, b float32) fpResult {
	invalid := math.IsInf(float64(a), 0) && math.IsInf(float64(b), 0) && (float64(a) > 0) != (float64(b) > 0)
	return roundTrip(float64(a)+float64(b), invalid || isSNaN(a) || isSNaN(b))
}

func subFlags(a, b float32) fpResult {
	invalid := math.IsInf(float64(a), 0) && math.IsInf(float64(b), 0) && (float64(a) > 0) == (float64(b) > 0)
	return roundTrip(float64(a)-float64(b), invalid || isSNaN(a) || isSNaN(b))
}

func mulFlags(a, b float32) fpResult {
	invalid := (a == 0 && math.IsInf(float64(b), 0)) || (b == 0 && math.IsInf(float64(a), 0))
	return roundTrip(float64(a)*float64(b), invalid || isSNaN(a) || isSNaN(b))
}

func divFlags(a, b float32) fpResult {
	invalid := (a == 0 && b == 0) || (math.IsInf(float64(a), 0) && math.IsInf(float64(b), 0))
	r := roundTrip(float64(a)/float64(b), invalid || isSNaN(a) || isSNaN(b))
	if !invalid && b == 0 && a != 0 && !math.IsNaN(float64(a)) {
		r.flags |= flagDivByZero
	}
	return r
}

func sqrtFlags(a float32) fpResult {
	invalid := a < 0 && a != 0
	return roundTrip(math.Sqrt(float64(a)), invalid || isSNaN(a))
}

func fmaFlags(v decode.Variant, a, b, d float32) fpResult {
	product := float64(a) * float64(b)
	invalid := (a == 0 && math.IsInf(float64(b), 0)) || (b == 0 && math.IsInf(float64(a), 0)) ||
		isSNaN(a) || isSNaN(b) || isSNaN(d)
	var r64 float64
	switch v {
	case decode.FMADD_S:
		r64 = product + float64(d)
	case decode.FMSUB_S:
		r64 = product - float64(d)
	case decode.FNMSUB_S:
		r64 = -product + float64(d)
	case decode.FNMADD_S:
		r64 = -product - float64(d)
	}
	return roundTrip(r64, invalid)
}

// isSNaN reports whether v is a signaling NaN: a NaN whose quiet bit
// (mantissa bit 22) is clear.
func isSNaN(v float32) bool {
	bits := math.Float32bits(v)
	exp := (bits >> 23) & 0xFF
	mant := bits & 0x7FFFFF
	return exp == 0xFF && mant != 0 && mant&0x400000 == 0
}

func signBit(v float32) uint32 {
	return math.Float32bits(v) >> 31
}

func sgnj(a, b float32) uint32 {
	return (math.Float32bits(b) & 0x80000000) | (math.Float32bits(a) & 0x7FFFFFFF)
}

func sgnjn(a, b float32) uint32 {
	return (^math.Float32bits(b) & 0x80000000) | (math.Float32bits(a) & 0x7FFFFFFF)
}

func sgnjx(a, b float32) uint32 {
	sign := (math.Float32bits(a) ^ math.Float32bits(b)) & 0x80000000
	return sign | (math.Float32bits(a) & 0x7FFFFFFF)
}

// minMaxFlags implements FMIN.S (min=true) / FMAX.S (min=false), with
// RISC-V's NaN-propagation and signed-zero tie-break rules: a lone NaN
// operand is ignored, two NaN operands canonicalize, and (+0,-0) resolves
// by sign rather than by numeric comparison.
func minMaxFlags(a, b float32, min bool) fpResult {
	aNaN := math.IsNaN(float64(a))
	bNaN := math.IsNaN(float64(b))
	var flags uint32
	if isSNaN(a) || isSNaN(b) {
		flags |= flagInvalid
	}
	if aNaN && bNaN {
		return fpResult{bits: canonicalNaN, flags: flags}
	}
	if aNaN {
		return fpResult{bits: canonicalize(b), flags: flags}
	}
	if bNaN {
		return fpResult{bits: canonicalize(a), flags: flags}
	}
	if a == 0 && b == 0 && signBit(a) != signBit(b) {
		if min {
			if signBit(a) == 1 {
				return fpResult{bits: canonicalize(a), flags: flags}
			}
			return fpResult{bits: canonicalize(b), flags: flags}
		}
		if signBit(a) == 0 {
			return fpResult{bits: canonicalize(a), flags: flags}
		}
		return fpResult{bits: canonicalize(b), flags: flags}
	}
	if min == (a < b) {
		return fpResult{bits: canonicalize(a), flags: flags}
	}
	return fpResult{bits: canonicalize(b), flags: flags}
}

// cvtToInt saturates a to an int32 (signed=true) or uint32 (signed=false)
// per the RISC-V FCVT.W.S/FCVT.WU.S saturation table, setting Invalid
// whenever the input was out of range or NaN.
func cvtToInt(a float32, signed bool) (uint32, uint32) {
	if math.IsNaN(float64(a)) {
		if signed {
			return 0x7FFFFFFF, flagInvalid
		}
		return 0xFFFFFFFF, flagInvalid
	}
	r := math.RoundToEven(float64(a))
	if signed {
		switch {
		case r >= 2147483648.0:
			return 0x7FFFFFFF, flagInvalid
		case r < -2147483648.0:
			return 0x80000000, flagInvalid
		}
		result := int32(r)
		flags := uint32(0)
		if float64(result) != r {
			flags = flagInexact
		}
		return uint32(result), flags
	}
	switch {
	case r >= 4294967296.0:
		return 0xFFFFFFFF, flagInvalid
	case r < 0:
		return 0, flagInvalid
	}
	result := uint32(r)
	flags := uint32(0)
	if float64(result) != r {
		flags = flagInexact
	}
	return result, flags
}

func feq(a, b float32) (uint32, uint32) {
	var flags uint32
	if isSNaN(a) || isSNaN(b) {
		flags = flagInvalid
	}
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return 0, flags
	}
	return boolToWord(a == b), flags
}

func flt(a, b float32) (uint32, uint32) {
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return 0, flagInvalid
	}
	return boolToWord(a < b), 0
}

func fle(a, b float32) (uint32, uint32) {
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return 0, flagInvalid
	}
	return boolToWord(a <= b), 0
}

func (c *CPU) writeCompareResult(rd uint32, result, flags uint32) {
	c.setFlags(flags)
	c.X.Write(rd, result)
}

// fclass returns the 10-bit one-hot classification mask of bits, per the
// FCLASS.S bit-position table.
func fclass(bits uint32) uint32 {
	sign := bits >> 31
	exp := (bits >> 23) & 0xFF
	mant := bits & 0x7FFFFF

	switch {
	case exp == 0xFF && mant == 0:
		if sign == 1 {
			return 1 << 0 // -inf
		}
		return 1 << 7 // +inf
	case exp == 0xFF:
		if mant&0x400000 != 0 {
			return 1 << 9 // quiet NaN
		}
		return 1 << 8 // signalling NaN
	case exp == 0 && mant == 0:
		if sign == 1 {
			return 1 << 3 // -0
		}
		return 1 << 4 // +0
	case exp == 0:
		if sign == 1 {
			return 1 << 2 // negative subnormal
		}
		return 1 << 5 // positive subnormal
	default:
		if sign == 1 {
			return 1 << 1 // negative normal
		}
		return 1 << 6 // positive normal
	}
}
