package elf

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/rcornwell/rv32emu/emu/memory"
)

func buildImage(t *testing.T, mutate func(*elf.Header32, *elf.Prog32)) []byte {
	t.Helper()
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
	payload := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	prog := elf.Prog32{
		Type:   uint32(elf.PT_LOAD),
		Off:    uint32(binary.Size(elf.Header32{}) + binary.Size(elf.Prog32{})),
		Paddr:  0x1000,
		Filesz: uint32(len(payload)),
		Memsz:  uint32(len(payload)),
	}
	if mutate != nil {
		mutate(&hdr, &prog)
	}
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, &hdr)
	binary.Write(buf, binary.LittleEndian, &prog)
	buf.Write(payload)
	return buf.Bytes()
}

func TestLoadValidImage(t *testing.T) {
	data := buildImage(t, nil)
	var m memory.Memory
	entry, err := Load(data, &m)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if entry != 0x1000 {
		t.Errorf("entry = 0x%X, want 0x1000", entry)
	}
	if got := memory.Read[uint32](&m, 0x1000); got != 0xDDCCBBAA {
		t.Errorf("loaded word = 0x%X, want 0xDDCCBBAA", got)
	}
}

func TestEntryHighBitMasked(t *testing.T) {
	data := buildImage(t, func(h *elf.Header32, p *elf.Prog32) {
		h.Entry = 0x80001000
	})
	var m memory.Memory
	entry, err := Load(data, &m)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if entry != 0x1000 {
		t.Errorf("entry = 0x%X, want masked 0x1000", entry)
	}
}

func TestRejectionKinds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*elf.Header32, *elf.Prog32)
		want   error
	}{
		{"class", func(h *elf.Header32, p *elf.Prog32) { h.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS64) }, ErrWrongClass},
		{"data", func(h *elf.Header32, p *elf.Prog32) { h.Ident[elf.EI_DATA] = byte(elf.ELFDATA2MSB) }, ErrWrongData},
		{"type", func(h *elf.Header32, p *elf.Prog32) { h.Type = uint16(elf.ET_DYN) }, ErrWrongType},
		{"machine", func(h *elf.Header32, p *elf.Prog32) { h.Machine = uint16(elf.EM_X86_64) }, ErrWrongMachine},
		{"version", func(h *elf.Header32, p *elf.Prog32) { h.Version = 0 }, ErrWrongVersion},
		{"entry", func(h *elf.Header32, p *elf.Prog32) { h.Entry = 0 }, ErrNoEntry},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data := buildImage(t, c.mutate)
			var m memory.Memory
			_, err := Load(data, &m)
			require.ErrorIs(t, err, c.want)
		})
	}
}

func TestWrongMagic(t *testing.T) {
	data := buildImage(t, nil)
	data[0] = 0x00
	var m memory.Memory
	_, err := Load(data, &m)
	if err != ErrWrongMagic {
		t.Errorf("Load() error = %v, want ErrWrongMagic", err)
	}
}

func TestLoadFileThroughAfero(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := buildImage(t, nil)
	if err := afero.WriteFile(fs, "/test.elf", data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var m memory.Memory
	entry, err := LoadFile(fs, "/test.elf", &m)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if entry != 0x1000 {
		t.Errorf("entry = 0x%X, want 0x1000", entry)
	}
}
