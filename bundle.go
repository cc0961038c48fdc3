package archon

import "unsafe"

// Bundle is a transient, packed buffer of component values waiting to be
// written into an archetype row. Values are laid out back to back in
// ascending bit order with no padding between them; every archetype column
// keeps its values in its own properly aligned backing array, so the bundle
// itself never needs to pad for alignment.
//
// A Bundle is consumed exactly once, by Transfer. Go has no destructors, so
// an owned Bundle that is built but never transferred must be explicitly
// released with Close to avoid leaking whatever its values hold onto.
type Bundle struct {
	registry *ComponentRegistry
	bitmask  Mask
	data     []byte
	owned    bool
	consumed bool
}

// NewBundle wraps data, already laid out in ascending-bit order with one
// value per bit set in bitmask, as a Bundle. When owned is true, Close
// destroys the values data holds unless Transfer has already run; nothing
// destroys them when an unconsumed Bundle simply falls out of scope. When
// owned is false, the caller retains ownership and Close is a no-op.
func NewBundle(registry *ComponentRegistry, bitmask Mask, data []byte, owned bool) *Bundle {
	return &Bundle{registry: registry, bitmask: bitmask, data: data, owned: owned}
}

// Transfer walks the bundle's values in ascending bit order, invoking dest
// once per value with the value's component bit and an unsafe pointer to its
// packed bytes. dest is expected to move-construct (or copy, for
// relocatable types) the value out of the bundle's buffer; Transfer itself
// never runs a destructor on the source bytes, matching move-out semantics.
// Calling Transfer a second time on the same Bundle is a contract violation.
func (b *Bundle) Transfer(dest func(bit uint32, ptr unsafe.Pointer)) {
	if b.consumed {
		panicTrace(bundleReusedError{})
	}
	b.consumed = true
	if len(b.data) == 0 || b.bitmask.IsEmpty() {
		return
	}
	offset := uintptr(0)
	base := unsafe.Pointer(&b.data[0])
	for _, bit := range b.bitmask.Bits() {
		desc := b.registry.DescriptorOf(bit)
		dest(bit, unsafe.Add(base, offset))
		offset += desc.size
	}
}

// Close releases an owned Bundle that was never transferred, destroying each
// packed value in place. It is a no-op for a borrowed Bundle or one that has
// already been transferred or closed.
func (b *Bundle) Close() {
	if !b.owned || b.consumed {
		return
	}
	b.consumed = true
	if len(b.data) == 0 || b.bitmask.IsEmpty() {
		return
	}
	offset := uintptr(0)
	base := unsafe.Pointer(&b.data[0])
	for _, bit := range b.bitmask.Bits() {
		desc := b.registry.DescriptorOf(bit)
		desc.Destroy(unsafe.Add(base, offset))
		offset += desc.size
	}
}

// Bitmask returns the component set this bundle carries.
func (b *Bundle) Bitmask() Mask { return b.bitmask }

type bundleReusedError struct{}

func (bundleReusedError) Error() string { return "bundle already transferred" }

// packValues lays out values (one pointer per component, already in
// ascending bit order matching bitmask.Bits()) into a freshly owned byte
// buffer, for use with NewBundle(..., owned: true).
func packValues(registry *ComponentRegistry, bitmask Mask, values []unsafe.Pointer) []byte {
	bits := bitmask.Bits()
	total := uintptr(0)
	for _, bit := range bits {
		total += registry.DescriptorOf(bit).size
	}
	buf := make([]byte, total)
	if total == 0 {
		return buf
	}
	base := unsafe.Pointer(&buf[0])
	offset := uintptr(0)
	for i, bit := range bits {
		desc := registry.DescriptorOf(bit)
		desc.MoveConstruct(unsafe.Add(base, offset), values[i])
		offset += desc.size
	}
	return buf
}
