package archon

// ArchetypeSet owns every Archetype that currently exists, keyed by bitmask,
// and provides the one operation that spans two archetypes at once: moving
// an entity's row when its component set changes.
//
// Archetypes are stored behind pointers in a plain slice. Growing the slice
// only ever relocates the pointers it holds, never the Archetype values
// themselves, so an *Archetype obtained from GetOrCreate stays valid across
// any later insertion.
type ArchetypeSet struct {
	registry   *ComponentRegistry
	byBitmask  map[Mask]uint32
	archetypes []*Archetype
}

// NewArchetypeSet returns a set with the always-present empty archetype
// (bitmask zero) already created. Every entity with no components lives
// there, including one whose components have all been removed.
func NewArchetypeSet(registry *ComponentRegistry) *ArchetypeSet {
	s := &ArchetypeSet{
		registry:  registry,
		byBitmask: make(map[Mask]uint32),
	}
	s.GetOrCreate(Mask{})
	return s
}

// GetOrCreate returns the archetype for bitmask, creating and registering an
// empty one if it does not exist yet.
func (s *ArchetypeSet) GetOrCreate(bitmask Mask) *Archetype {
	if idx, ok := s.byBitmask[bitmask]; ok {
		return s.archetypes[idx]
	}
	idx := uint32(len(s.archetypes))
	a := NewArchetype(bitmask, s.registry)
	s.archetypes = append(s.archetypes, a)
	s.byBitmask[bitmask] = idx
	return a
}

// Exists reports whether an archetype for bitmask has already been created.
func (s *ArchetypeSet) Exists(bitmask Mask) bool {
	_, ok := s.byBitmask[bitmask]
	return ok
}

// PositionOf returns the index of the archetype for bitmask. The archetype
// must already exist.
func (s *ArchetypeSet) PositionOf(bitmask Mask) uint32 {
	idx, ok := s.byBitmask[bitmask]
	if !ok {
		panicTrace(archetypeDesyncError{})
	}
	return idx
}

// At returns the archetype at index, or nil if out of range.
func (s *ArchetypeSet) At(index uint32) *Archetype {
	if int(index) >= len(s.archetypes) {
		return nil
	}
	return s.archetypes[index]
}

// All returns every archetype currently registered, in creation order.
func (s *ArchetypeSet) All() []*Archetype { return s.archetypes }

// Len returns the number of distinct archetypes currently registered.
func (s *ArchetypeSet) Len() int { return len(s.archetypes) }

// MoveEntity relocates entity's row from the archetype at fromMask to the
// archetype at toMask (creating the destination if needed), and updates
// table with the entity's new Location. fromMask and toMask must differ.
// Component values for bits toMask adds over fromMask are left
// uninitialized in the destination row; the caller writes them afterward.
func (s *ArchetypeSet) MoveEntity(table *EntityTable, entity Entity, fromMask, toMask Mask) {
	from := s.GetOrCreate(fromMask)
	to := s.GetOrCreate(toMask)

	oldLoc := table.LocationOf(entity)
	row := oldLoc.Row
	last := from.RowCount() - 1

	newRow := to.Grow(entity)

	from.MoveRowTo(row, to)

	if row != last {
		relocated := from.EntityAt(row)
		table.SetLocation(relocated, Location{ArchetypeIndex: s.PositionOf(fromMask), Row: row})
	}

	table.SetLocation(entity, Location{ArchetypeIndex: s.PositionOf(toMask), Row: newRow})
}

// DespawnFrom removes entity's row from the archetype at mask entirely
// (every column value destroyed), patching the Location of whichever entity
// the swap-remove relocated into the vacated row.
func (s *ArchetypeSet) DespawnFrom(table *EntityTable, entity Entity, mask Mask) {
	a := s.GetOrCreate(mask)
	loc := table.LocationOf(entity)
	row := loc.Row
	last := a.RowCount() - 1

	a.RemoveRow(row)

	if row != last {
		relocated := a.EntityAt(row)
		table.SetLocation(relocated, Location{ArchetypeIndex: s.PositionOf(mask), Row: row})
	}
}
