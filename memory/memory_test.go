package memory

import "testing"

func TestReadWriteDouble(t *testing.T) {
	m := New(1024)
	if err := m.WriteDouble(1000, 42); err != nil {
		t.Fatal(err)
	}
	v, err := m.ReadDouble(1000)
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Fatalf("got %d want 42", v)
	}
}

func TestBoundaryStore(t *testing.T) {
	m := New(1024)
	if err := m.WriteDouble(1024-8, 7); err != nil {
		t.Fatalf("store at size-8 should succeed: %v", err)
	}
	if err := m.WriteDouble(1024-7, 7); err == nil {
		t.Fatalf("store at size-7 should fail")
	}
}

func TestBitAccessors(t *testing.T) {
	m := New(16)
	if err := m.WriteBit(0, 3, 1); err != nil {
		t.Fatal(err)
	}
	b, err := m.ReadByte(0)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0x08 {
		t.Fatalf("got %#x want 0x08", b)
	}
	bit, err := m.ReadBit(0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if bit != 1 {
		t.Fatalf("got %d want 1", bit)
	}
}

func TestLittleEndian(t *testing.T) {
	m := New(16)
	if err := m.WriteWord(0, 0x01020304); err != nil {
		t.Fatal(err)
	}
	b0, _ := m.ReadByte(0)
	b3, _ := m.ReadByte(3)
	if b0 != 0x04 || b3 != 0x01 {
		t.Fatalf("expected little-endian layout, got b0=%#x b3=%#x", b0, b3)
	}
}

func TestZeroInitialized(t *testing.T) {
	m := New(16)
	v, err := m.ReadDouble(0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 {
		t.Fatalf("expected zero-initialized buffer, got %d", v)
	}
}
