package cpu

import (
	"math"
	"testing"

	"github.com/rcornwell/rv32emu/emu/decode"
	"github.com/rcornwell/rv32emu/emu/memory"
)

func load(c *CPU, pc uint32, words ...uint32) {
	for i, w := range words {
		memory.Write[uint32](&c.Mem, pc+uint32(i*4), w)
	}
	c.PC = pc
}

func encodeR(rd, rs1, rs2 uint32) uint32 {
	return (0x01 << 25) | (rs2 << 20) | (rs1 << 15) | (0b100 << 12) | (rd << 7) | 0b0110011
}

func TestX0Invariant(t *testing.T) {
	c := New()
	if got := c.X.Read(0); got != 0 {
		t.Fatalf("x0 = %d, want 0", got)
	}
}

func TestAddImmediate(t *testing.T) {
	c := New()
	// addi x1, x0, 5
	load(c, 0, 0x00500093)
	c.Step()
	if got := c.X.Read(1); got != 5 {
		t.Errorf("x1 = %d, want 5", got)
	}
	if c.PC != 4 {
		t.Errorf("PC = %d, want 4", c.PC)
	}
}

func TestJALRClearsLowBit(t *testing.T) {
	c := New()
	c.X.Write(1, 7) // odd base
	// jalr x5, x1, 0
	load(c, 0, 0x000082E7)
	c.Step()
	if c.PC != 6 {
		t.Errorf("PC = %d, want 6 (low bit cleared)", c.PC)
	}
	if got := c.X.Read(5); got != 4 {
		t.Errorf("x5 = %d, want 4", got)
	}
}

func TestJALToX0StillBranches(t *testing.T) {
	c := New()
	// jal x0, 8
	load(c, 0, 0x0080006F)
	c.Step()
	if c.PC != 8 {
		t.Errorf("PC = %d, want 8", c.PC)
	}
	if got := c.X.Read(0); got != 0 {
		t.Errorf("x0 = %d, want 0 (write suppressed)", got)
	}
}

func TestDivEdgeCases(t *testing.T) {
	c := New()
	c.X.Write(1, 42)
	c.X.Write(2, 0)
	c.execM(decode.DIV, encodeR(3, 1, 2))
	if got := c.X.ReadSigned(3); got != -1 {
		t.Errorf("DIV(42,0) = %d, want -1", got)
	}
	c.execM(decode.DIVU, encodeR(6, 1, 2))
	if got := c.X.Read(6); got != 0xFFFFFFFF {
		t.Errorf("DIVU(42,0) = 0x%X, want 0xFFFFFFFF", got)
	}
	c.execM(decode.REM, encodeR(7, 1, 2))
	if got := c.X.Read(7); got != 42 {
		t.Errorf("REM(42,0) = %d, want 42", got)
	}

	c.X.Write(1, uint32(int32(-0x80000000)))
	c.X.Write(2, uint32(int32(-1)))
	c.execM(decode.DIV, encodeR(4, 1, 2))
	if got := c.X.Read(4); got != 0x80000000 {
		t.Errorf("DIV(INT_MIN,-1) = 0x%X, want 0x80000000", got)
	}
	c.execM(decode.REM, encodeR(5, 1, 2))
	if got := c.X.Read(5); got != 0 {
		t.Errorf("REM(INT_MIN,-1) = %d, want 0", got)
	}
}

func TestFMinMaxSignedZero(t *testing.T) {
	r := minMaxFlags(math.Float32frombits(0x80000000), math.Float32frombits(0x00000000), true)
	if r.bits != 0x80000000 {
		t.Errorf("FMIN(-0,+0) = 0x%X, want 0x80000000 (-0)", r.bits)
	}
	r = minMaxFlags(math.Float32frombits(0x80000000), math.Float32frombits(0x00000000), false)
	if r.bits != 0x00000000 {
		t.Errorf("FMAX(-0,+0) = 0x%X, want 0x00000000 (+0)", r.bits)
	}
}

func TestFCVTSaturation(t *testing.T) {
	result, flags := cvtToInt(float32(math.NaN()), true)
	if result != 0x7FFFFFFF || flags&flagInvalid == 0 {
		t.Errorf("FCVT.W.S(NaN) = 0x%X flags=0x%X, want 0x7FFFFFFF with Invalid", result, flags)
	}
	result, flags = cvtToInt(-1.0, false)
	if result != 0 || flags&flagInvalid == 0 {
		t.Errorf("FCVT.WU.S(-1.0) = 0x%X flags=0x%X, want 0 with Invalid", result, flags)
	}
}

func TestSignInjection(t *testing.T) {
	a := math.Float32frombits(0x3F800000) // 1.0
	b := math.Float32frombits(0xBF800000) // -1.0
	got := sgnj(a, b)
	want := (math.Float32bits(b) & 0x80000000) | (math.Float32bits(a) & 0x7FFFFFFF)
	if got != want {
		t.Errorf("sgnj = 0x%X, want 0x%X", got, want)
	}
}

func TestCanonicalNaN(t *testing.T) {
	r := addFlags(math.Float32frombits(0x7F800000), math.Float32frombits(0xFF800000)) // +inf + -inf
	if r.bits != canonicalNaN {
		t.Errorf("inf + -inf = 0x%X, want canonical NaN 0x%X", r.bits, canonicalNaN)
	}
	if r.flags&flagInvalid == 0 {
		t.Error("expected Invalid flag on inf + -inf")
	}
}

func TestCSRAliasViaEngine(t *testing.T) {
	c := New()
	c.setFlags(0x1F)
	if got := c.CSR.Read(0x003); got&0x1F != 0x1F {
		t.Errorf("fcsr low bits = 0x%X, want 0x1F", got&0x1F)
	}
}

func TestEcallHalts(t *testing.T) {
	c := New()
	load(c, 0, 0x00000073) // ecall
	if cont := c.Step(); cont {
		t.Error("Step() after ECALL should return false")
	}
	if c.Halt != HaltECall {
		t.Errorf("Halt = %v, want HaltECall", c.Halt)
	}
}

func TestIllegalOpcodeHalts(t *testing.T) {
	c := New()
	load(c, 0, 0x00000000) // all zero bits: quadrant 00 -> ILLEGAL
	if cont := c.Step(); cont {
		t.Error("Step() on illegal word should return false")
	}
	if c.Halt != HaltIllegal {
		t.Errorf("Halt = %v, want HaltIllegal", c.Halt)
	}
}

func TestMRETReloadsFromMepc(t *testing.T) {
	c := New()
	c.CSR.Write(mepc, 0x2000)
	load(c, 0, 0x30200073) // mret
	if !c.Step() {
		t.Fatal("Step() on MRET should return true")
	}
	if c.PC != 0x2000 {
		t.Errorf("PC = 0x%X, want 0x2000", c.PC)
	}
}
