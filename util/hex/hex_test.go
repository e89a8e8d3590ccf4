package hex

import (
	"strings"
	"testing"
)

func TestFormatWord(t *testing.T) {
	var b strings.Builder
	FormatWord(&b, []uint32{0xDEADBEEF, 0x00000001})
	if got, want := b.String(), "DEADBEEF 00000001 "; got != want {
		t.Errorf("FormatWord = %q, want %q", got, want)
	}
}

func TestFormatBytes(t *testing.T) {
	var b strings.Builder
	FormatBytes(&b, true, []byte{0x01, 0xAB, 0xFF})
	if got, want := b.String(), "01 AB FF "; got != want {
		t.Errorf("FormatBytes(space) = %q, want %q", got, want)
	}

	b.Reset()
	FormatBytes(&b, false, []byte{0x01, 0xAB})
	if got, want := b.String(), "01AB"; got != want {
		t.Errorf("FormatBytes(no space) = %q, want %q", got, want)
	}
}

func TestFormatByte(t *testing.T) {
	var b strings.Builder
	FormatByte(&b, 0x0A)
	if got, want := b.String(), "0A"; got != want {
		t.Errorf("FormatByte = %q, want %q", got, want)
	}
}
