package archon

import (
	"testing"
	"unsafe"
)

type trivialStruct struct {
	X, Y float64
}

type pointerHoldingStruct struct {
	Name string
}

func TestIsTriviallyRelocatable(t *testing.T) {
	tdTrivial := NewTypeDescriptor[trivialStruct]()
	if !tdTrivial.Relocatable() {
		t.Error("trivialStruct should be relocatable")
	}

	tdString := NewTypeDescriptor[pointerHoldingStruct]()
	if tdString.Relocatable() {
		t.Error("struct with a string field should not be relocatable")
	}
}

func TestTypeDescriptorMoveConstruct(t *testing.T) {
	td := NewTypeDescriptor[trivialStruct]()

	src := trivialStruct{X: 1, Y: 2}
	var dst trivialStruct

	td.MoveConstruct(unsafe.Pointer(&dst), unsafe.Pointer(&src))

	if dst.X != 1 || dst.Y != 2 {
		t.Errorf("dst = %+v, want {1 2}", dst)
	}
}

func TestTypeDescriptorSwap(t *testing.T) {
	td := NewTypeDescriptor[trivialStruct]()

	a := trivialStruct{X: 1, Y: 2}
	b := trivialStruct{X: 3, Y: 4}

	td.Swap(unsafe.Pointer(&a), unsafe.Pointer(&b))

	if a.X != 3 || a.Y != 4 || b.X != 1 || b.Y != 2 {
		t.Errorf("after swap, a=%+v b=%+v", a, b)
	}
}

func TestTypeDescriptorDestroyNonRelocatable(t *testing.T) {
	td := NewTypeDescriptor[pointerHoldingStruct]()

	v := pointerHoldingStruct{Name: "hello"}
	td.Destroy(unsafe.Pointer(&v))

	if v.Name != "" {
		t.Errorf("Destroy should zero the value, got %+v", v)
	}
}

func TestTypeDescriptorCustomDestroy(t *testing.T) {
	var destroyed int
	td := NewTypeDescriptor[trivialStruct](WithDestroy(func(unsafe.Pointer) {
		destroyed++
	}))

	v := trivialStruct{X: 1}
	td.Destroy(unsafe.Pointer(&v))

	if destroyed != 1 {
		t.Errorf("custom destroy should have run once, ran %d times", destroyed)
	}
}

func TestTypeDescriptorSizeAlign(t *testing.T) {
	td := NewTypeDescriptor[trivialStruct]()
	if td.Size() != unsafe.Sizeof(trivialStruct{}) {
		t.Errorf("Size() = %d, want %d", td.Size(), unsafe.Sizeof(trivialStruct{}))
	}
	if td.Align() != unsafe.Alignof(trivialStruct{}) {
		t.Errorf("Align() = %d, want %d", td.Align(), unsafe.Alignof(trivialStruct{}))
	}
}
