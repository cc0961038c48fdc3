package archon

import (
	"reflect"
	"unsafe"
)

// blobColumnInitialCapacity is the element count a freshly allocated
// BlobColumn starts with, doubled on every subsequent growth.
const blobColumnInitialCapacity = 4

// BlobColumn is a type-erased, dynamically growable column of component
// values. It is the columnar building block every Archetype row is made of:
// one BlobColumn per component bit the archetype's bitmask carries.
//
// The backing array is allocated through reflect.New(reflect.ArrayOf(n, t))
// rather than a raw byte slice, so the garbage collector continues to scan
// it correctly for non-relocatable component types.
type BlobColumn struct {
	desc     *TypeDescriptor
	buffer   reflect.Value
	base     unsafe.Pointer
	length   uint32
	capacity uint32
}

// NewBlobColumn allocates an empty column for the component type described
// by desc, with room for Config.InitialColumnCapacity() elements.
func NewBlobColumn(desc *TypeDescriptor) *BlobColumn {
	c := &BlobColumn{desc: desc}
	cap := Config.InitialColumnCapacity()
	if cap == 0 {
		cap = blobColumnInitialCapacity
	}
	c.allocate(cap)
	return c
}

func (c *BlobColumn) allocate(capacity uint32) {
	arrType := reflect.ArrayOf(int(capacity), c.desc.GoType())
	c.buffer = reflect.New(arrType).Elem()
	c.base = c.buffer.Addr().UnsafePointer()
	c.capacity = capacity
}

// Length returns the number of live elements in the column.
func (c *BlobColumn) Length() uint32 { return c.length }

// Capacity returns the number of elements the column can hold before the
// next Grow.
func (c *BlobColumn) Capacity() uint32 { return c.capacity }

// Descriptor returns the TypeDescriptor this column stores values of.
func (c *BlobColumn) Descriptor() *TypeDescriptor { return c.desc }

func (c *BlobColumn) ptrAt(index uint32) unsafe.Pointer {
	return unsafe.Add(c.base, uintptr(index)*c.desc.size)
}

// Get returns an unsafe pointer to the live element at index.
func (c *BlobColumn) Get(index uint32) unsafe.Pointer {
	return c.ptrAt(index)
}

// Grow doubles the column's capacity (a zero capacity becomes
// blobColumnInitialCapacity),
// reallocating the backing array and move-constructing every live element
// into the new storage.
func (c *BlobColumn) Grow() {
	newCap := c.capacity * 2
	if newCap == 0 {
		newCap = blobColumnInitialCapacity
	}
	c.GrowTo(newCap)
}

// GrowTo reallocates the column to hold at least capacity elements. It is a
// no-op if the column already has that much room.
func (c *BlobColumn) GrowTo(capacity uint32) {
	if capacity <= c.capacity {
		return
	}
	oldBase := c.base
	oldBuffer := c.buffer
	c.allocate(capacity)
	for i := uint32(0); i < c.length; i++ {
		src := unsafe.Add(oldBase, uintptr(i)*c.desc.size)
		dst := c.ptrAt(i)
		c.desc.MoveConstruct(dst, src)
	}
	_ = oldBuffer
}

// Emplace grows the column if needed and appends one unconstructed slot,
// returning its index. The slot is zeroed when it comes from fresh storage; a
// slot vacated by an earlier SwapRemove or Pop of a relocatable type may still
// hold the old value's bytes. Callers must construct a value into the slot
// (via Set) before it is considered live for destructor purposes.
func (c *BlobColumn) Emplace() uint32 {
	if c.length >= c.capacity {
		c.Grow()
	}
	idx := c.length
	c.length++
	return idx
}

// Push appends value, move-constructing it from src into a freshly emplaced
// slot (a byte copy for relocatable types). src must point to a value of the column's component type
// that the caller no longer owns (Push takes ownership, matching
// MoveConstruct semantics: it does not separately destroy *src).
func (c *BlobColumn) Push(src unsafe.Pointer) uint32 {
	idx := c.Emplace()
	c.desc.MoveConstruct(c.ptrAt(idx), src)
	return idx
}

// Set copies value into an already-emplaced, logically empty slot at index
// (a slot produced by Emplace that has not yet been constructed into). Set
// never runs Destroy on the destination first; use Replace for that.
func (c *BlobColumn) Set(index uint32, src unsafe.Pointer) {
	c.desc.MoveConstruct(c.ptrAt(index), src)
}

// Replace destroys the current live value at index and move-constructs
// value from src into its place. Use this when overwriting a slot that
// already holds a constructed value.
func (c *BlobColumn) Replace(index uint32, src unsafe.Pointer) {
	dst := c.ptrAt(index)
	c.desc.Destroy(dst)
	c.desc.MoveConstruct(dst, src)
}

// Swap exchanges the live values at indices a and b.
func (c *BlobColumn) Swap(a, b uint32) {
	if a == b {
		return
	}
	c.desc.Swap(c.ptrAt(a), c.ptrAt(b))
}

// SwapRemove removes the element at index by swapping the last live element
// into its place (if index is not already last) and then shrinking the
// column by one.
//
// destroyRemoved selects whether the value originally at index is destroyed
// (true: the caller is dropping this column entirely) or whether it
// survives the swap because it was already move-constructed elsewhere by
// the caller (false: see Archetype.MoveRowTo).
func (c *BlobColumn) SwapRemove(index uint32, destroyRemoved bool) {
	last := c.length - 1
	if destroyRemoved {
		c.desc.Destroy(c.ptrAt(index))
	}
	if index != last {
		c.desc.MoveConstruct(c.ptrAt(index), c.ptrAt(last))
	}
	c.length--
}

// Pop removes and destroys the last live element.
func (c *BlobColumn) Pop() {
	last := c.length - 1
	c.desc.Destroy(c.ptrAt(last))
	c.length--
}

// Last returns an unsafe pointer to the last live element. The column must
// be non-empty.
func (c *BlobColumn) Last() unsafe.Pointer {
	return c.ptrAt(c.length - 1)
}

// Clear destroys every live element and resets the length to zero, without
// releasing the backing array.
func (c *BlobColumn) Clear() {
	for i := uint32(0); i < c.length; i++ {
		c.desc.Destroy(c.ptrAt(i))
	}
	c.length = 0
}
