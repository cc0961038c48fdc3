package archon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchetypeSetGetOrCreateReusesArchetype(t *testing.T) {
	r, pos, vel, _ := newTestRegistry(t)
	set := NewArchetypeSet(r)

	var mask Mask
	mask.Mark(pos.Raw())
	mask.Mark(vel.Raw())

	a1 := set.GetOrCreate(mask)
	a2 := set.GetOrCreate(mask)

	assert.Same(t, a1, a2, "same bitmask must resolve to the same archetype")
}

func TestArchetypeSetAlwaysHasEmptyArchetype(t *testing.T) {
	r, _, _, _ := newTestRegistry(t)
	set := NewArchetypeSet(r)

	assert.True(t, set.Exists(Mask{}))
}

func TestArchetypeSetMoveEntityUpdatesLocation(t *testing.T) {
	r, pos, vel, _ := newTestRegistry(t)
	set := NewArchetypeSet(r)
	table := NewEntityTable()

	var fromMask, toMask Mask
	fromMask.Mark(pos.Raw())
	toMask.Mark(pos.Raw())
	toMask.Mark(vel.Raw())

	from := set.GetOrCreate(fromMask)
	e := table.Create(Location{})
	row := from.Grow(e)
	table.SetLocation(e, Location{ArchetypeIndex: set.PositionOf(fromMask), Row: row})

	set.MoveEntity(table, e, fromMask, toMask)

	loc := table.LocationOf(e)
	assert.Equal(t, set.PositionOf(toMask), loc.ArchetypeIndex)
	assert.EqualValues(t, 0, loc.Row)
	assert.EqualValues(t, 0, from.RowCount(), "source archetype should have lost its row")
}

func TestArchetypeSetMoveEntityPatchesRelocatedSibling(t *testing.T) {
	r, pos, vel, _ := newTestRegistry(t)
	set := NewArchetypeSet(r)
	table := NewEntityTable()

	var fromMask, toMask Mask
	fromMask.Mark(pos.Raw())
	toMask.Mark(pos.Raw())
	toMask.Mark(vel.Raw())

	from := set.GetOrCreate(fromMask)

	e1 := table.Create(Location{})
	row1 := from.Grow(e1)
	table.SetLocation(e1, Location{ArchetypeIndex: set.PositionOf(fromMask), Row: row1})

	e2 := table.Create(Location{})
	row2 := from.Grow(e2)
	table.SetLocation(e2, Location{ArchetypeIndex: set.PositionOf(fromMask), Row: row2})

	// Move e1 (row 0) out; e2 (the last row) should slide into row 0 and have
	// its Location patched to match.
	set.MoveEntity(table, e1, fromMask, toMask)

	e2Loc := table.LocationOf(e2)
	assert.EqualValues(t, 0, e2Loc.Row, "e2 should have been swapped into the vacated row")
	assert.Equal(t, set.PositionOf(fromMask), e2Loc.ArchetypeIndex)
}

func TestArchetypeSetDespawnFromPatchesRelocatedSibling(t *testing.T) {
	r, pos, _, _ := newTestRegistry(t)
	set := NewArchetypeSet(r)
	table := NewEntityTable()

	var mask Mask
	mask.Mark(pos.Raw())
	a := set.GetOrCreate(mask)

	e1 := table.Create(Location{})
	row1 := a.Grow(e1)
	table.SetLocation(e1, Location{ArchetypeIndex: set.PositionOf(mask), Row: row1})

	e2 := table.Create(Location{})
	row2 := a.Grow(e2)
	table.SetLocation(e2, Location{ArchetypeIndex: set.PositionOf(mask), Row: row2})

	set.DespawnFrom(table, e1, mask)

	e2Loc := table.LocationOf(e2)
	assert.EqualValues(t, 0, e2Loc.Row)
	assert.EqualValues(t, 1, a.RowCount())
}
