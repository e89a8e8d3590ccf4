package cpu

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/rcornwell/rv32emu/emu/elf"
)

// riscvTestNames lists the riscv-tests binaries this engine is gated
// against. Passing is defined as reaching ECALL with x10 == 0.
var riscvTestNames = []string{
	"rv32ui-p-add", "rv32ui-p-addi", "rv32ui-p-and", "rv32ui-p-andi",
	"rv32ui-p-auipc", "rv32ui-p-beq", "rv32ui-p-bge", "rv32ui-p-bgeu",
	"rv32ui-p-blt", "rv32ui-p-bltu", "rv32ui-p-bne", "rv32ui-p-fence_i",
	"rv32ui-p-jal", "rv32ui-p-jalr", "rv32ui-p-lb", "rv32ui-p-lbu",
	"rv32ui-p-lh", "rv32ui-p-lhu", "rv32ui-p-lui", "rv32ui-p-lw",
	"rv32ui-p-ma_data", "rv32ui-p-or", "rv32ui-p-ori", "rv32ui-p-sb",
	"rv32ui-p-sh", "rv32ui-p-simple", "rv32ui-p-sll", "rv32ui-p-slli",
	"rv32ui-p-slt", "rv32ui-p-slti", "rv32ui-p-sltiu", "rv32ui-p-sltu",
	"rv32ui-p-sra", "rv32ui-p-srai", "rv32ui-p-srl", "rv32ui-p-srli",
	"rv32ui-p-sub", "rv32ui-p-sw", "rv32ui-p-xor", "rv32ui-p-xori",
	"rv32um-p-mul", "rv32um-p-mulh", "rv32um-p-mulhu", "rv32um-p-mulhsu",
	"rv32um-p-rem", "rv32um-p-remu", "rv32um-p-divu", "rv32um-p-div",
	"rv32uf-p-fadd", "rv32uf-p-recoding", "rv32uf-p-move", "rv32uf-p-ldst",
	"rv32uf-p-fmin", "rv32uf-p-fmadd", "rv32uf-p-fcvt_w", "rv32uf-p-fcvt",
	"rv32uf-p-fcmp", "rv32uf-p-fclass", "rv32uf-p-fdiv",
}

// runToHalt executes c until Step returns false or maxSteps is exceeded.
func runToHalt(c *CPU, maxSteps int) error {
	for i := 0; i < maxSteps; i++ {
		if !c.Step() {
			return nil
		}
	}
	return os.ErrDeadlineExceeded
}

// TestConformance runs the riscv-tests suite when RV32EMU_CONFORMANCE_DIR
// points at a directory of compiled test binaries. It is skipped otherwise
// since those ELF images are not vendored into this repository.
func TestConformance(t *testing.T) {
	dir := os.Getenv("RV32EMU_CONFORMANCE_DIR")
	if dir == "" {
		t.Skip("RV32EMU_CONFORMANCE_DIR not set; skipping riscv-tests conformance run")
	}

	var g errgroup.Group
	for _, name := range riscvTestNames {
		name := name
		g.Go(func() error {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				t.Errorf("%s: %v", name, err)
				return nil
			}
			c := New()
			entry, err := elf.Load(data, &c.Mem)
			if err != nil {
				t.Errorf("%s: elf.Load: %v", name, err)
				return nil
			}
			c.PC = entry
			if err := runToHalt(c, 10_000_000); err != nil {
				t.Errorf("%s: %v", name, err)
				return nil
			}
			if c.Halt != HaltECall {
				t.Errorf("%s: halted on %v, want ecall", name, c.Halt)
				return nil
			}
			if got := c.X.Read(10); got != 0 {
				t.Errorf("%s: x10 = %d, want 0", name, got)
			}
			return nil
		})
	}
	_ = g.Wait()
}
