package archon

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

type posComp struct{ X, Y float64 }
type velComp struct{ X, Y float64 }
type healthComp struct{ HP int }

func newTestRegistry(t *testing.T) (*ComponentRegistry, ComponentID[posComp], ComponentID[velComp], ComponentID[healthComp]) {
	t.Helper()
	r := NewComponentRegistry()
	pos := RegisterComponent[posComp](r)
	vel := RegisterComponent[velComp](r)
	hp := RegisterComponent[healthComp](r)
	return r, pos, vel, hp
}

func TestArchetypeGrowAllocatesRowAcrossAllColumns(t *testing.T) {
	r, pos, vel, _ := newTestRegistry(t)
	var mask Mask
	mask.Mark(pos.Raw())
	mask.Mark(vel.Raw())

	a := NewArchetype(mask, r)
	e := Entity{Index: 1}
	row := a.Grow(e)

	assert.EqualValues(t, 0, row)
	assert.EqualValues(t, 1, a.RowCount())
	assert.Equal(t, e, a.EntityAt(0))

	posCol := a.Column(pos.Raw())
	velCol := a.Column(vel.Raw())
	assert.EqualValues(t, 1, posCol.Length())
	assert.EqualValues(t, 1, velCol.Length())
}

func TestArchetypeMoveRowToDropsAndRetainsColumns(t *testing.T) {
	r, pos, vel, hp := newTestRegistry(t)

	var fromMask, toMask Mask
	fromMask.Mark(pos.Raw())
	fromMask.Mark(vel.Raw())
	toMask.Mark(pos.Raw())
	toMask.Mark(hp.Raw())

	from := NewArchetype(fromMask, r)
	to := NewArchetype(toMask, r)

	e := Entity{Index: 1}
	row := from.Grow(e)
	pv := (*posComp)(from.Column(pos.Raw()).Get(row))
	*pv = posComp{X: 1, Y: 2}
	vv := (*velComp)(from.Column(vel.Raw()).Get(row))
	*vv = velComp{X: 3, Y: 4}

	to.Grow(e)
	to.Column(hp.Raw()).Set(0, unsafe.Pointer(&healthComp{HP: 10}))

	from.MoveRowTo(row, to)

	assert.EqualValues(t, 0, from.RowCount(), "source row should be removed")
	assert.EqualValues(t, 1, to.RowCount())

	gotPos := (*posComp)(to.Column(pos.Raw()).Get(0))
	assert.Equal(t, posComp{X: 1, Y: 2}, *gotPos, "retained column should carry the moved value")

	gotHP := (*healthComp)(to.Column(hp.Raw()).Get(0))
	assert.Equal(t, 10, gotHP.HP, "pre-populated new column should be untouched by the move")
}

func TestArchetypeMoveRowToDestroysDroppedColumnExactlyOnce(t *testing.T) {
	r := NewComponentRegistry()
	var destroyed int
	keptID := RegisterComponent[posComp](r)
	droppedDesc := NewTypeDescriptor[velComp](WithDestroy(func(unsafe.Pointer) { destroyed++ }))
	droppedID := r.Register(droppedDesc)

	var fromMask, toMask Mask
	fromMask.Mark(keptID.Raw())
	fromMask.Mark(droppedID)
	toMask.Mark(keptID.Raw())

	from := NewArchetype(fromMask, r)
	to := NewArchetype(toMask, r)

	e1 := Entity{Index: 1}
	row1 := from.Grow(e1)
	e2 := Entity{Index: 2}
	_ = from.Grow(e2)
	_ = row1

	to.Grow(e1)
	from.MoveRowTo(0, to)

	assert.Equal(t, 1, destroyed, "dropped column's value must be destroyed exactly once, even when row != last")
	assert.EqualValues(t, 1, from.RowCount(), "the relocated last row should now occupy row 0")
	assert.Equal(t, e2, from.EntityAt(0), "swap-remove should have moved e2 into the vacated row")
}

func TestArchetypeRemoveRowDestroysEveryColumn(t *testing.T) {
	r := NewComponentRegistry()
	var destroyed int
	countDestroy := WithDestroy(func(unsafe.Pointer) { destroyed++ })
	pos := RegisterComponent[posComp](r, countDestroy)
	vel := RegisterComponent[velComp](r, countDestroy)

	var mask Mask
	mask.Mark(pos.Raw())
	mask.Mark(vel.Raw())
	a := NewArchetype(mask, r)

	e := Entity{Index: 5}
	a.Grow(e)

	a.RemoveRow(0)
	assert.EqualValues(t, 0, a.RowCount())
	assert.Equal(t, 2, destroyed, "both columns' values at the row should be destroyed once each")
}
