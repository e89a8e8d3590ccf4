package encoding

import "testing"

func TestSignExtend(t *testing.T) {
	if got := SignExtend(0x800, 12); got != -2048 {
		t.Errorf("SignExtend(0x800, 12) = %d, want -2048", got)
	}
	if got := SignExtend(0x7FF, 12); got != 2047 {
		t.Errorf("SignExtend(0x7FF, 12) = %d, want 2047", got)
	}
}

func TestImmJScenario(t *testing.T) {
	// jal x0, -32
	if got := ImmJ(0xFE1FF06F); got != -32 {
		t.Errorf("ImmJ = %d, want -32", got)
	}
}

func TestImmUScenario(t *testing.T) {
	// lui x20, 1 -> imm[31:12]=1 -> value 0x1000
	if got := ImmU(0x00001A37); got != 0x1000 {
		t.Errorf("ImmU = 0x%X, want 0x1000", got)
	}
}

func TestFieldAccessors(t *testing.T) {
	word := uint32(0x021080B3) // mul x1, x1, x1
	if got := Opcode(word); got != 0b0110011 {
		t.Errorf("Opcode = 0b%b, want 0b0110011", got)
	}
	if got := Rd(word); got != 1 {
		t.Errorf("Rd = %d, want 1", got)
	}
	if got := Rs1(word); got != 1 {
		t.Errorf("Rs1 = %d, want 1", got)
	}
	if got := Rs2(word); got != 1 {
		t.Errorf("Rs2 = %d, want 1", got)
	}
	if got := Funct7(word); got != 0x01 {
		t.Errorf("Funct7 = 0x%X, want 0x01", got)
	}
}
