package archon

import (
	"iter"
	"unsafe"
)

// Cursor provides stateful, chunk-at-a-time iteration over the entities
// matched by a QueryEngine, for callers that don't know the component arity
// at compile time (e.g. tooling, or a query built from a runtime-assembled
// Mask).
type Cursor struct {
	chunks      []Chunk
	chunkIndex  int
	entityIndex int
}

// NewCursor fetches every matching Chunk up front and returns a Cursor ready
// to iterate them. Mutating the ArchetypeSet while a Cursor built from it is
// still in use is a contract violation.
func NewCursor(engine *QueryEngine, set *ArchetypeSet, registry *ComponentRegistry) *Cursor {
	return &Cursor{chunks: engine.Fetch(set, registry), entityIndex: -1}
}

// Next advances to the next matched entity, returning false once every
// chunk has been exhausted.
func (c *Cursor) Next() bool {
	for c.chunkIndex < len(c.chunks) {
		c.entityIndex++
		if c.entityIndex < c.chunks[c.chunkIndex].Len() {
			return true
		}
		c.chunkIndex++
		c.entityIndex = -1
	}
	return false
}

// Entity returns the entity at the cursor's current position. Valid only
// after a call to Next returned true.
func (c *Cursor) Entity() Entity {
	return c.chunks[c.chunkIndex].Entities[c.entityIndex]
}

// Column returns a pointer to the i'th requested column's value at the
// cursor's current position.
func (c *Cursor) Column(i int) unsafe.Pointer {
	return c.chunks[c.chunkIndex].At(i, uint32(c.entityIndex))
}

// Chunks returns an iterator over every matched chunk, for callers that
// prefer to walk whole chunks themselves (e.g. to batch a SIMD-friendly
// operation across a contiguous column) rather than row by row.
func (c *Cursor) Chunks() iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for _, chunk := range c.chunks {
			if !yield(chunk) {
				return
			}
		}
	}
}

// Rows returns an iterator over every matched (entity, chunk, row) triple in
// chunk order.
func (c *Cursor) Rows() iter.Seq2[Entity, rowRef] {
	return func(yield func(Entity, rowRef) bool) {
		for _, chunk := range c.chunks {
			for row := 0; row < chunk.Len(); row++ {
				ref := rowRef{chunk: chunk, row: uint32(row)}
				if !yield(chunk.Entities[row], ref) {
					return
				}
			}
		}
	}
}

// rowRef identifies one row within one matched chunk, letting a Rows
// consumer fetch any of the chunk's requested columns for that row.
type rowRef struct {
	chunk Chunk
	row   uint32
}

// Column returns a pointer to the i'th requested column's value for this row.
func (r rowRef) Column(i int) unsafe.Pointer { return r.chunk.At(i, r.row) }
