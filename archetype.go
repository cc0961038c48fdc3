package archon

// Archetype is a columnar table holding every entity that carries exactly
// one fixed set of component types, its bitmask. Each set bit in the
// bitmask owns one BlobColumn; all columns and the entity list grow and
// shrink in lockstep, row for row.
type Archetype struct {
	bitmask   Mask
	columns   map[uint32]*BlobColumn
	columnIDs []uint32
	entities  []Entity
}

// NewArchetype builds the (initially empty) archetype for bitmask, allocating
// one BlobColumn per set bit using the descriptor registered for it.
func NewArchetype(bitmask Mask, registry *ComponentRegistry) *Archetype {
	bits := bitmask.Bits()
	a := &Archetype{
		bitmask:   bitmask,
		columns:   make(map[uint32]*BlobColumn, len(bits)),
		columnIDs: bits,
	}
	for _, bit := range bits {
		a.columns[bit] = NewBlobColumn(registry.DescriptorOf(bit))
	}
	return a
}

// Bitmask returns the exact component set this archetype holds.
func (a *Archetype) Bitmask() Mask { return a.bitmask }

// RowCount returns the number of entities (rows) currently stored.
func (a *Archetype) RowCount() uint32 { return uint32(len(a.entities)) }

// ColumnIDs returns the component bit ids this archetype has columns for, in
// ascending order.
func (a *Archetype) ColumnIDs() []uint32 { return a.columnIDs }

// Column returns the BlobColumn for bit, or nil if this archetype does not
// carry that component.
func (a *Archetype) Column(bit uint32) *BlobColumn { return a.columns[bit] }

// EntityAt returns the entity occupying row.
func (a *Archetype) EntityAt(row uint32) Entity { return a.entities[row] }

// Entities returns the live entity list backing this archetype, in row
// order. Callers must not retain it across a mutation.
func (a *Archetype) Entities() []Entity { return a.entities }

// Grow appends a new, empty row for entity: every column gains one
// uninitialized slot (via BlobColumn.Emplace) and the entity list gains one
// entry. The caller must construct a value into every column's new slot
// before the row is considered fully formed.
func (a *Archetype) Grow(entity Entity) uint32 {
	row := uint32(len(a.entities))
	a.entities = append(a.entities, entity)
	for _, bit := range a.columnIDs {
		idx := a.columns[bit].Emplace()
		if idx != row {
			panicTrace(archetypeDesyncError{})
		}
	}
	return row
}

// SetEntity overwrites the entity recorded for row, used after a swap-remove
// relocates the last row into a vacated slot.
func (a *Archetype) SetEntity(row uint32, entity Entity) {
	a.entities[row] = entity
}

// PopEntity drops the last row's entity record without touching any column.
// MoveRowTo and RemoveRow shrink the entity list themselves.
func (a *Archetype) PopEntity() {
	a.entities = a.entities[:len(a.entities)-1]
}

// MoveRowTo migrates row out of a into dest, which must already have had
// Grow called for the same entity (dest's last row is the destination).
// Columns dest shares with a are move-constructed across; columns only a
// has are destroyed. Afterward row is removed from a by a destructor-free
// swap-remove: every value that lived at row has already been moved out or
// destroyed exactly once.
func (a *Archetype) MoveRowTo(row uint32, dest *Archetype) {
	destRow := dest.RowCount() - 1
	for _, bit := range a.columnIDs {
		srcCol := a.columns[bit]
		if destCol := dest.columns[bit]; destCol != nil {
			destCol.Set(destRow, srcCol.Get(row))
		} else {
			srcCol.Descriptor().Destroy(srcCol.Get(row))
		}
	}
	a.removeRowNoDestroy(row)
}

// RemoveRow drops row entirely: every column's value at row is destroyed,
// then the row is removed from the table via swap-remove.
func (a *Archetype) RemoveRow(row uint32) {
	for _, bit := range a.columnIDs {
		col := a.columns[bit]
		col.Descriptor().Destroy(col.Get(row))
	}
	a.removeRowNoDestroy(row)
}

// removeRowNoDestroy performs the swap-remove shrink step common to
// MoveRowTo and RemoveRow once every column value at row has already been
// disposed of (moved out or destroyed) by the caller.
func (a *Archetype) removeRowNoDestroy(row uint32) {
	last := uint32(len(a.entities)) - 1
	for _, bit := range a.columnIDs {
		a.columns[bit].SwapRemove(row, false)
	}
	if row != last {
		a.entities[row] = a.entities[last]
	}
	a.entities = a.entities[:last]
}

type archetypeDesyncError struct{}

func (archetypeDesyncError) Error() string {
	return "archetype column and entity row counts diverged"
}
