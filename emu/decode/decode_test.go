package decode

import "testing"

func TestNameTableCoversEveryVariant(t *testing.T) {
	if len(names) != Count {
		t.Fatalf("names table has %d entries, want %d", len(names), Count)
	}
	for v := Variant(0); int(v) < Count; v++ {
		if names[v] == "" {
			t.Errorf("variant %d has no name", v)
		}
	}
}

func TestDecodeReservesLowQuadrants(t *testing.T) {
	for q := uint32(0); q < 3; q++ {
		if got := Decode(q); got != ILLEGAL {
			t.Errorf("Decode(quadrant %d) = %v, want ILLEGAL", q, got)
		}
	}
}

func TestDecodeScenarios(t *testing.T) {
	cases := []struct {
		word uint32
		want Variant
	}{
		{0x00001A37, LUI},
		{0xFE1FF06F, JAL},
		{0x00008067, JALR},
		{0x00E78023, SB},
		{0x1006A073, CSRRS},
		{0x021080B3, MUL},
		{0x58057553, FSQRT_S},
		{0xE00482D3, FMV_X_W},
		{0x30200073, MRET},
		{0x001101C3, FMADD_S},
	}
	for _, c := range cases {
		if got := Decode(c.word); got != c.want {
			t.Errorf("Decode(0x%08X) = %v, want %v", c.word, got, c.want)
		}
	}
}

func TestDecodeRejectsReservedFMAFormat(t *testing.T) {
	cases := []uint32{0x021101C3, 0x021101C7, 0x021101CB, 0x021101CF}
	for _, word := range cases {
		if got := Decode(word); got != ILLEGAL {
			t.Errorf("Decode(0x%08X) = %v, want ILLEGAL (reserved fmt)", word, got)
		}
	}
}

func TestDecodeIsPure(t *testing.T) {
	word := uint32(0x021080B3)
	first := Decode(word)
	second := Decode(word)
	if first != second {
		t.Errorf("Decode not pure: %v != %v", first, second)
	}
}
