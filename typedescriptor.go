package archon

import (
	"reflect"
	"unsafe"
)

// TypeDescriptor is the type-erased shape of a registered component type: its
// size and alignment, plus the three operations a BlobColumn needs to manage
// values of that type without ever knowing the concrete Go type again.
//
// A descriptor is built once, at registration time, via reflection. Every
// later column operation dispatches through the function pointers it holds.
// For relocatable types those are plain byte operations; for non-relocatable
// types each destroy, move and swap goes through reflect.NewAt.
type TypeDescriptor struct {
	goType reflect.Type
	size   uintptr
	align  uintptr

	// relocatable is true when the type has no pointer, slice, map, chan,
	// func, interface, or string anywhere in its shape, so a plain byte-copy
	// is a legal move and a legal swap.
	relocatable bool

	destroy       func(ptr unsafe.Pointer)
	moveConstruct func(dst, src unsafe.Pointer)
	swap          func(a, b unsafe.Pointer)
}

// DescriptorOption customizes a TypeDescriptor at registration time.
type DescriptorOption func(*TypeDescriptor)

// WithDestroy overrides the destructor invoked when a component value is
// dropped (removed from an entity, or overwritten by Replace). The default
// is a no-op for relocatable types; for non-relocatable types the default
// zeroes the slot via reflect so the GC can reclaim what it referenced.
func WithDestroy(fn func(ptr unsafe.Pointer)) DescriptorOption {
	return func(td *TypeDescriptor) { td.destroy = fn }
}

// NewTypeDescriptor builds the TypeDescriptor for T, deriving size, alignment
// and the move/destroy/swap operations from reflection exactly once.
func NewTypeDescriptor[T any](opts ...DescriptorOption) *TypeDescriptor {
	var zero T
	gt := reflect.TypeOf(&zero).Elem()

	td := &TypeDescriptor{
		goType: gt,
		size:   gt.Size(),
		align:  uintptr(gt.Align()),
	}
	td.relocatable = isTriviallyRelocatable(gt)

	if td.relocatable {
		td.destroy = func(unsafe.Pointer) {}
		td.moveConstruct = func(dst, src unsafe.Pointer) {
			memcopy(dst, src, td.size)
		}
		td.swap = func(a, b unsafe.Pointer) {
			swapBytes(a, b, td.size)
		}
	} else {
		td.destroy = func(ptr unsafe.Pointer) {
			rv := reflect.NewAt(gt, ptr).Elem()
			rv.Set(reflect.Zero(gt))
		}
		td.moveConstruct = func(dst, src unsafe.Pointer) {
			dv := reflect.NewAt(gt, dst).Elem()
			sv := reflect.NewAt(gt, src).Elem()
			dv.Set(sv)
			sv.Set(reflect.Zero(gt))
		}
		td.swap = func(a, b unsafe.Pointer) {
			av := reflect.NewAt(gt, a).Elem()
			bv := reflect.NewAt(gt, b).Elem()
			tmp := reflect.New(gt).Elem()
			tmp.Set(av)
			av.Set(bv)
			bv.Set(tmp)
		}
	}

	for _, opt := range opts {
		opt(td)
	}
	return td
}

// Size returns the size in bytes of one component value.
func (td *TypeDescriptor) Size() uintptr { return td.size }

// Align returns the required alignment in bytes of one component value.
func (td *TypeDescriptor) Align() uintptr { return td.align }

// Relocatable reports whether the type may be relocated with a raw byte copy.
func (td *TypeDescriptor) Relocatable() bool { return td.relocatable }

// GoType returns the reflect.Type this descriptor was built from.
func (td *TypeDescriptor) GoType() reflect.Type { return td.goType }

// Destroy runs the type's destructor on the value at ptr, leaving the slot
// logically empty. Must be called exactly once per constructed value.
func (td *TypeDescriptor) Destroy(ptr unsafe.Pointer) { td.destroy(ptr) }

// MoveConstruct move-constructs the value at src into the uninitialized slot
// at dst, leaving src logically empty (no destructor owed on src afterward).
func (td *TypeDescriptor) MoveConstruct(dst, src unsafe.Pointer) { td.moveConstruct(dst, src) }

// Swap exchanges the values at a and b in place.
func (td *TypeDescriptor) Swap(a, b unsafe.Pointer) { td.swap(a, b) }

// isTriviallyRelocatable conservatively reports whether a value of type t can
// be moved or swapped with a raw byte copy instead of going through the Go
// runtime's assignment semantics. Anything that is, or contains, a pointer,
// slice, map, channel, function, interface or string is excluded: a bitwise
// copy of those can race with the garbage collector or duplicate ownership.
func isTriviallyRelocatable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return isTriviallyRelocatable(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isTriviallyRelocatable(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// Pointer, Slice, Map, Chan, Func, Interface, String, UnsafePointer.
		return false
	}
}

func memcopy(dst, src unsafe.Pointer, size uintptr) {
	copy(unsafe.Slice((*byte)(dst), size), unsafe.Slice((*byte)(src), size))
}

func swapBytes(a, b unsafe.Pointer, size uintptr) {
	as := unsafe.Slice((*byte)(a), size)
	bs := unsafe.Slice((*byte)(b), size)
	var scratch [64]byte
	if size <= 64 {
		buf := scratch[:size]
		copy(buf, as)
		copy(as, bs)
		copy(bs, buf)
		return
	}
	buf := make([]byte, size)
	copy(buf, as)
	copy(as, bs)
	copy(bs, buf)
}
