package disassemble

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatScenarios(t *testing.T) {
	cases := []struct {
		word uint32
		want string
	}{
		{0x00001A37, "lui x20, 1"},
		{0xFE1FF06F, "jal x0, -32"},
		{0x00008067, "jalr x0, x1, 0"},
		{0x00E78023, "sb x14, 0(x15)"},
		{0x1006A073, "csrrs x0, sstatus, x13"},
		{0x021080B3, "mul x1, x1, x1"},
		{0x58057553, "fsqrt.s f10, f10"},
		{0xE00482D3, "fmv.x.w x5, f9"},
	}

	got := make([]string, len(cases))
	want := make([]string, len(cases))
	for i, c := range cases {
		got[i] = Format(c.word)
		want[i] = c.want
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Format() golden table mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatFitsMaxLen(t *testing.T) {
	words := []uint32{0x00001A37, 0xFE1FF06F, 0x021080B3, 0x1006A073}
	for _, w := range words {
		if got := Format(w); len(got) > MaxLen {
			t.Errorf("Format(0x%08X) = %q, len %d exceeds MaxLen %d", w, got, len(got), MaxLen)
		}
	}
}

func TestRMNameDynamicIsEmpty(t *testing.T) {
	if got := RMName(0b111); got != "" {
		t.Errorf("RMName(dyn) = %q, want empty", got)
	}
}

func TestRMNameUnknown(t *testing.T) {
	if got := RMName(0b101); got != "unknown" {
		t.Errorf("RMName(101) = %q, want \"unknown\"", got)
	}
}

func TestCSRFallsBackToDecimal(t *testing.T) {
	if got := csrName(0x7FF); got != "2047" {
		t.Errorf("csrName(unknown) = %q, want \"2047\"", got)
	}
}

func TestCSRIndexedRanges(t *testing.T) {
	if got := csrNames[0x3B0]; got != "pmpaddr0" {
		t.Errorf("pmpaddr0 name = %q", got)
	}
	if got := csrNames[0xC03]; got != "hpmcounter3" {
		t.Errorf("hpmcounter3 name = %q", got)
	}
}

func TestIllegalAndNoOperandForms(t *testing.T) {
	if got := Format(0x00000000); got != "illegal" {
		t.Errorf("Format(illegal) = %q", got)
	}
	if got := Format(0x30200073); got != "mret" {
		t.Errorf("Format(mret) = %q", got)
	}
}
