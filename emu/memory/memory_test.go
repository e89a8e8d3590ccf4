package memory

import "testing"

func TestReadWriteRoundTrip(t *testing.T) {
	var m Memory
	Write[uint32](&m, 0x100, 0xDEADBEEF)
	if got := Read[uint32](&m, 0x100); got != 0xDEADBEEF {
		t.Errorf("Read[uint32] = 0x%X, want 0xDEADBEEF", got)
	}
	Write[int16](&m, 0x200, -1)
	if got := Read[int16](&m, 0x200); got != -1 {
		t.Errorf("Read[int16] = %d, want -1", got)
	}
	if got := Read[uint16](&m, 0x200); got != 0xFFFF {
		t.Errorf("Read[uint16] = 0x%X, want 0xFFFF", got)
	}
}

func TestLittleEndianByteOrder(t *testing.T) {
	var m Memory
	Write[uint32](&m, 0, 0x01020304)
	if got := Read[uint8](&m, 0); got != 0x04 {
		t.Errorf("low byte = 0x%X, want 0x04", got)
	}
	if got := Read[uint8](&m, 3); got != 0x01 {
		t.Errorf("high byte = 0x%X, want 0x01", got)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	var m Memory
	WriteFloat32(&m, 0x40, 3.5)
	if got := ReadFloat32(&m, 0x40); got != 3.5 {
		t.Errorf("ReadFloat32 = %v, want 3.5", got)
	}
}

func TestDirtyFlags(t *testing.T) {
	var m Memory
	if m.Dirty(10) {
		t.Fatal("fresh memory reports dirty")
	}
	Write[uint8](&m, 10, 1)
	if !m.Dirty(10) {
		t.Error("written byte not marked dirty")
	}
	m.ClearDirty()
	if m.Dirty(10) {
		t.Error("ClearDirty did not clear")
	}
}

func TestOutOfBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on out-of-bounds access")
		}
	}()
	var m Memory
	Read[uint32](&m, Size-1)
}

func TestLoadSegment(t *testing.T) {
	var m Memory
	data := []byte{1, 2, 3, 4}
	m.LoadSegment(0x1000, data)
	for i, want := range data {
		if got := Read[uint8](&m, uint32(0x1000+i)); got != want {
			t.Errorf("byte %d = %d, want %d", i, got, want)
		}
	}
}
