package host

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"

	"github.com/rcornwell/rv32emu/emu/metrics"
)

// buildImage assembles a minimal ELF32 RISC-V image containing two
// preassembled words: addi x1, x0, 5 then ecall.
func buildImage(t *testing.T) []byte {
	t.Helper()
	payload := make([]byte, 8)
	binary.LittleEndian.PutUint32(payload[0:4], 0x00500093) // addi x1, x0, 5
	binary.LittleEndian.PutUint32(payload[4:8], 0x00000073) // ecall

	hdr := elf.Header32{
		Ident:     [elf.EI_NIDENT]byte{0x7F, 'E', 'L', 'F', byte(elf.ELFCLASS32), byte(elf.ELFDATA2LSB), byte(elf.EV_CURRENT)},
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_RISCV),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     0x1000,
		Phoff:     uint32(binary.Size(elf.Header32{})),
		Phentsize: uint16(binary.Size(elf.Prog32{})),
		Phnum:     1,
	}
	prog := elf.Prog32{
		Type:   uint32(elf.PT_LOAD),
		Off:    uint32(binary.Size(elf.Header32{}) + binary.Size(elf.Prog32{})),
		Paddr:  0x1000,
		Filesz: uint32(len(payload)),
		Memsz:  uint32(len(payload)),
	}

	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, &hdr)
	binary.Write(buf, binary.LittleEndian, &prog)
	buf.Write(payload)
	return buf.Bytes()
}

func TestLoadELFAndStep(t *testing.T) {
	h := New(metrics.New())
	if r := h.LoadELF(buildImage(t)); r != LoadOK {
		t.Fatalf("LoadELF = %v, want LoadOK", r)
	}
	if h.PC() != 0x1000 {
		t.Fatalf("PC = 0x%X, want 0x1000", h.PC())
	}
	if !h.Step() {
		t.Fatal("Step() on addi should return true")
	}
	if got := h.IntRegister(1); got != 5 {
		t.Errorf("x1 = %d, want 5", got)
	}
	if !h.IntDirty(1) {
		t.Error("x1 should be dirty after write")
	}
	if cont := h.Step(); cont {
		t.Error("Step() on ecall should return false")
	}
	if h.HaltReason().String() != "ecall" {
		t.Errorf("HaltReason = %v, want ecall", h.HaltReason())
	}
}

func TestLoadELFRejectsBadMagic(t *testing.T) {
	h := New(nil)
	data := buildImage(t)
	data[0] = 0x00
	if r := h.LoadELF(data); r != LoadWrongMagic {
		t.Errorf("LoadELF = %v, want LoadWrongMagic", r)
	}
}

func TestClearDirtyFlags(t *testing.T) {
	h := New(nil)
	h.LoadELF(buildImage(t))
	h.Step()
	if !h.IntDirty(1) {
		t.Fatal("expected x1 dirty before clear")
	}
	h.ClearDirtyFlags()
	if h.IntDirty(1) {
		t.Error("expected x1 clean after ClearDirtyFlags")
	}
}

func TestResetZeroesState(t *testing.T) {
	h := New(nil)
	h.LoadELF(buildImage(t))
	h.Step()
	h.Reset()
	if h.PC() != 0 {
		t.Errorf("PC after Reset = 0x%X, want 0", h.PC())
	}
	if h.IntRegister(1) != 0 {
		t.Errorf("x1 after Reset = %d, want 0", h.IntRegister(1))
	}
}
