package archon

import "unsafe"

// Chunk is one archetype's contribution to a query match: its entity list
// and an unsafe pointer to the start of each requested component's column,
// in the same ascending-bit order the query was built with.
type Chunk struct {
	Entities []Entity
	columns  []unsafe.Pointer
	descs    []*TypeDescriptor
}

// Column returns the base pointer of the i'th requested column in this
// chunk (i indexes into the query's required-bit list, ascending).
func (c Chunk) Column(i int) unsafe.Pointer { return c.columns[i] }

// At returns a pointer to the i'th requested column's value for row.
func (c Chunk) At(i int, row uint32) unsafe.Pointer {
	return unsafe.Add(c.columns[i], uintptr(row)*c.descs[i].size)
}

// Len returns the number of rows (entities) in this chunk.
func (c Chunk) Len() int { return len(c.Entities) }

// QueryEngine matches archetypes against a required component bitmask: an
// archetype matches when archetype.Bitmask() contains every bit required
// (archetype.bitmask & required == required, per the bitmask test used
// throughout the archetype/query design).
type QueryEngine struct {
	required Mask
}

// NewQueryEngine returns a QueryEngine that matches archetypes carrying at
// least every bit set in required.
func NewQueryEngine(required Mask) *QueryEngine {
	return &QueryEngine{required: required}
}

// Fetch scans every archetype in set and returns one Chunk per matching
// archetype that has at least one row, with columns resolved for each bit in
// required, ascending. Matching archetypes with no rows yield no Chunk.
func (q *QueryEngine) Fetch(set *ArchetypeSet, registry *ComponentRegistry) []Chunk {
	bits := q.required.Bits()
	chunks := make([]Chunk, 0)
	for _, a := range set.All() {
		if !a.Bitmask().ContainsAll(q.required) {
			continue
		}
		if a.RowCount() == 0 {
			continue
		}
		columns := make([]unsafe.Pointer, len(bits))
		descs := make([]*TypeDescriptor, len(bits))
		for i, bit := range bits {
			col := a.Column(bit)
			descs[i] = registry.DescriptorOf(bit)
			if col.Length() > 0 {
				columns[i] = col.Get(0)
			}
		}
		chunks = append(chunks, Chunk{Entities: a.Entities(), columns: columns, descs: descs})
	}
	return chunks
}

// Query2 iterates every entity carrying both A and B, invoking fn once per
// match with pointers directly into archetype storage. Mutations through
// those pointers are visible immediately.
func Query2[A, B any](w *World, fn func(e Entity, a *A, b *B)) {
	idA := ComponentIDFor[A](w.registry)
	idB := ComponentIDFor[B](w.registry)
	var required Mask
	required.Mark(idA.Raw())
	required.Mark(idB.Raw())

	qe := NewQueryEngine(required)
	for _, chunk := range qe.Fetch(w.archetypes, w.registry) {
		ca := chunk.Column(bitPosition(required, idA.Raw()))
		cb := chunk.Column(bitPosition(required, idB.Raw()))
		for row := 0; row < chunk.Len(); row++ {
			pa := (*A)(unsafe.Add(ca, uintptr(row)*unsafe.Sizeof(*new(A))))
			pb := (*B)(unsafe.Add(cb, uintptr(row)*unsafe.Sizeof(*new(B))))
			fn(chunk.Entities[row], pa, pb)
		}
	}
}

// Query3 iterates every entity carrying A, B and C.
func Query3[A, B, C any](w *World, fn func(e Entity, a *A, b *B, c *C)) {
	idA := ComponentIDFor[A](w.registry)
	idB := ComponentIDFor[B](w.registry)
	idC := ComponentIDFor[C](w.registry)
	var required Mask
	required.Mark(idA.Raw())
	required.Mark(idB.Raw())
	required.Mark(idC.Raw())

	qe := NewQueryEngine(required)
	for _, chunk := range qe.Fetch(w.archetypes, w.registry) {
		ca := chunk.Column(bitPosition(required, idA.Raw()))
		cb := chunk.Column(bitPosition(required, idB.Raw()))
		cc := chunk.Column(bitPosition(required, idC.Raw()))
		for row := 0; row < chunk.Len(); row++ {
			pa := (*A)(unsafe.Add(ca, uintptr(row)*unsafe.Sizeof(*new(A))))
			pb := (*B)(unsafe.Add(cb, uintptr(row)*unsafe.Sizeof(*new(B))))
			pc := (*C)(unsafe.Add(cc, uintptr(row)*unsafe.Sizeof(*new(C))))
			fn(chunk.Entities[row], pa, pb, pc)
		}
	}
}

// Query4 iterates every entity carrying A, B, C and D.
func Query4[A, B, C, D any](w *World, fn func(e Entity, a *A, b *B, c *C, d *D)) {
	idA := ComponentIDFor[A](w.registry)
	idB := ComponentIDFor[B](w.registry)
	idC := ComponentIDFor[C](w.registry)
	idD := ComponentIDFor[D](w.registry)
	var required Mask
	required.Mark(idA.Raw())
	required.Mark(idB.Raw())
	required.Mark(idC.Raw())
	required.Mark(idD.Raw())

	qe := NewQueryEngine(required)
	for _, chunk := range qe.Fetch(w.archetypes, w.registry) {
		ca := chunk.Column(bitPosition(required, idA.Raw()))
		cb := chunk.Column(bitPosition(required, idB.Raw()))
		cc := chunk.Column(bitPosition(required, idC.Raw()))
		cd := chunk.Column(bitPosition(required, idD.Raw()))
		for row := 0; row < chunk.Len(); row++ {
			pa := (*A)(unsafe.Add(ca, uintptr(row)*unsafe.Sizeof(*new(A))))
			pb := (*B)(unsafe.Add(cb, uintptr(row)*unsafe.Sizeof(*new(B))))
			pc := (*C)(unsafe.Add(cc, uintptr(row)*unsafe.Sizeof(*new(C))))
			pd := (*D)(unsafe.Add(cd, uintptr(row)*unsafe.Sizeof(*new(D))))
			fn(chunk.Entities[row], pa, pb, pc, pd)
		}
	}
}

// bitPosition returns the ascending position of bit within mask.Bits(),
// i.e. which query column index it corresponds to.
func bitPosition(mask Mask, bit uint32) int {
	for i, b := range mask.Bits() {
		if b == bit {
			return i
		}
	}
	panicTrace(UnknownComponentError{ID: bit})
	return -1
}
