package registers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestX0AlwaysZero(t *testing.T) {
	var f IntegerFile
	f.Write(0, 0xFFFFFFFF)
	if got := f.Read(0); got != 0 {
		t.Errorf("x0 = 0x%X, want 0", got)
	}
	if f.Dirty(0) {
		t.Error("write to x0 should not set dirty flag")
	}
}

func TestIntegerWriteRead(t *testing.T) {
	var f IntegerFile
	f.Write(5, 0x12345678)
	if got := f.Read(5); got != 0x12345678 {
		t.Errorf("Read(5) = 0x%X, want 0x12345678", got)
	}
	if !f.Dirty(5) {
		t.Error("x5 should be dirty after write")
	}
	f.ClearDirty()
	if f.Dirty(5) {
		t.Error("ClearDirty did not clear x5")
	}
}

func TestCSRFcsrAliasing(t *testing.T) {
	var c CSRFile
	c.Write(CSRFflags, 0x1F)
	require.Equal(t, uint32(0x1F), c.Read(CSRFcsr)&0x1F, "fcsr low 5 bits")

	c.Write(CSRFrm, 0x5)
	require.Equal(t, uint32(0x5), c.Read(CSRFrm), "frm")
	require.Equal(t, uint32(0x1F), c.Read(CSRFflags), "fflags must survive an frm write")
	require.Equal(t, uint32(0xBF), c.Read(CSRFcsr), "fcsr")
}

func TestCSRFcsrDirectWrite(t *testing.T) {
	var c CSRFile
	c.Write(CSRFcsr, 0x1FF)
	if got := c.Read(CSRFcsr); got != 0xFF {
		t.Errorf("fcsr read = 0x%X, want masked to 0xFF", got)
	}
}

func TestCSRPlainCell(t *testing.T) {
	var c CSRFile
	c.Write(0x341, 0xCAFEBABE)
	if got := c.Read(0x341); got != 0xCAFEBABE {
		t.Errorf("mepc = 0x%X, want 0xCAFEBABE", got)
	}
}

func TestFloatBankPreservesNaNPayload(t *testing.T) {
	var f FloatFile
	const payload = 0x7FA00001
	f.WriteBits(3, payload)
	if got := f.ReadBits(3); got != payload {
		t.Errorf("ReadBits = 0x%X, want 0x%X", got, payload)
	}
}
