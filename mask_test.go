package archon

import "testing"

func TestMaskMarkAndTest(t *testing.T) {
	tests := []struct {
		name string
		bits []uint32
	}{
		{name: "single low bit", bits: []uint32{0}},
		{name: "single high bit", bits: []uint32{255}},
		{name: "spans words", bits: []uint32{3, 64, 128, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Mask
			for _, b := range tt.bits {
				m.Mark(b)
			}
			for _, b := range tt.bits {
				if !m.Test(b) {
					t.Errorf("expected bit %d to be set", b)
				}
			}
			if m.PopCount() != len(tt.bits) {
				t.Errorf("PopCount() = %d, want %d", m.PopCount(), len(tt.bits))
			}
		})
	}
}

func TestMaskUnmark(t *testing.T) {
	var m Mask
	m.Mark(5)
	m.Mark(70)
	m.Unmark(5)
	if m.Test(5) {
		t.Error("bit 5 should be cleared")
	}
	if !m.Test(70) {
		t.Error("bit 70 should remain set")
	}
}

func TestMaskContainsAll(t *testing.T) {
	var a, b Mask
	a.Mark(1)
	a.Mark(2)
	a.Mark(4)
	b.Mark(1)
	b.Mark(2)

	if !a.ContainsAll(b) {
		t.Error("a should contain all bits of b")
	}
	if b.ContainsAll(a) {
		t.Error("b should not contain all bits of a")
	}
}

func TestMaskContainsAnyNone(t *testing.T) {
	var a, b, c Mask
	a.Mark(1)
	b.Mark(1)
	b.Mark(2)
	c.Mark(3)

	if !a.ContainsAny(b) {
		t.Error("a and b share bit 1")
	}
	if a.ContainsAny(c) {
		t.Error("a and c share nothing")
	}
	if !a.ContainsNone(c) {
		t.Error("a and c should share no bits")
	}
}

func TestMaskUnionSubtract(t *testing.T) {
	var a, b Mask
	a.Mark(1)
	b.Mark(2)

	u := a.Union(b)
	if !u.Test(1) || !u.Test(2) {
		t.Error("union should contain both bits")
	}

	s := u.Subtract(b)
	if !s.Test(1) || s.Test(2) {
		t.Error("subtract should remove only b's bits")
	}
}

func TestMaskIsEmpty(t *testing.T) {
	var m Mask
	if !m.IsEmpty() {
		t.Error("zero-value mask should be empty")
	}
	m.Mark(10)
	if m.IsEmpty() {
		t.Error("mask with a set bit should not be empty")
	}
}

func TestMaskBitsAscending(t *testing.T) {
	var m Mask
	m.Mark(200)
	m.Mark(3)
	m.Mark(64)
	m.Mark(0)

	got := m.Bits()
	want := []uint32{0, 3, 64, 200}
	if len(got) != len(want) {
		t.Fatalf("Bits() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Bits()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
