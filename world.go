package archon

import "unsafe"

// World is the external interface the storage engine exposes: spawning and
// despawning entities, inserting and removing components, and reading a
// single component back out. It owns a ComponentRegistry, an EntityTable and
// an ArchetypeSet. Insert and remove both go through the same archetype
// migration machinery; despawn removes every component and then bumps the
// entity's generation.
type World struct {
	registry   *ComponentRegistry
	entities   *EntityTable
	archetypes *ArchetypeSet
}

// NewWorld returns a World backed by registry. The empty (bitmask-zero)
// archetype is created eagerly, so every entity, even one with no
// components, always has a Location.
func NewWorld(registry *ComponentRegistry) *World {
	return &World{
		registry:   registry,
		entities:   NewEntityTable(),
		archetypes: NewArchetypeSet(registry),
	}
}

// Registry returns the ComponentRegistry this World was built with.
func (w *World) Registry() *ComponentRegistry { return w.registry }

// IsAlive reports whether e refers to a currently live entity.
func (w *World) IsAlive(e Entity) bool { return w.entities.IsAlive(e) }

// SpawnEmpty creates a new entity with no components, placed in the empty
// archetype.
func (w *World) SpawnEmpty() Entity {
	empty := w.archetypes.GetOrCreate(Mask{})
	e := w.entities.Create(Location{})
	row := empty.Grow(e)
	w.entities.SetLocation(e, Location{ArchetypeIndex: w.archetypes.PositionOf(Mask{}), Row: row})
	return e
}

// SpawnBundle creates a new entity and immediately inserts bundle's
// components into it, consuming the bundle exactly once.
func (w *World) SpawnBundle(bundle *Bundle) Entity {
	e := w.SpawnEmpty()
	w.InsertBundle(e, bundle)
	return e
}

// bitmaskOf returns the component bitmask of the archetype e currently
// occupies. e must be alive.
func (w *World) bitmaskOf(e Entity) Mask {
	loc := w.entities.LocationOf(e)
	return w.archetypes.At(loc.ArchetypeIndex).Bitmask()
}

// InsertBundle writes every component bundle carries onto entity, migrating
// it to the archetype for the union of its current bitmask and bundle's
// bitmask if that union differs from its current bitmask. A bit bundle
// carries that entity's archetype already had is overwritten in place (the
// existing value is destroyed first); a newly added bit is written into the
// freshly grown row. InsertBundle consumes bundle exactly once; do not call
// Transfer or Close on it afterward.
func (w *World) InsertBundle(entity Entity, bundle *Bundle) {
	if !w.entities.IsAlive(entity) {
		panicTrace(EntityNotAliveError{Entity: entity})
	}

	oldMask := w.bitmaskOf(entity)
	targetMask := oldMask.Union(bundle.Bitmask())

	if targetMask != oldMask {
		w.archetypes.MoveEntity(w.entities, entity, oldMask, targetMask)
	}

	target := w.archetypes.At(w.entities.LocationOf(entity).ArchetypeIndex)
	row := w.entities.LocationOf(entity).Row

	bundle.Transfer(func(bit uint32, ptr unsafe.Pointer) {
		col := target.Column(bit)
		if oldMask.Test(bit) {
			col.Replace(row, ptr)
		} else {
			col.Set(row, ptr)
		}
	})
}

// Insert writes a single component value of type T onto entity, following
// the same migrate-or-overwrite rule as InsertBundle, and returns entity for
// convenient chaining after SpawnEmpty.
func Insert[T any](w *World, entity Entity, value T) Entity {
	id := ComponentIDFor[T](w.registry)
	insertValues(w, entity, []uint32{id.Raw()}, []unsafe.Pointer{unsafe.Pointer(&value)})
	return entity
}

// Insert2 writes two component values onto entity in one migration.
func Insert2[A, B any](w *World, entity Entity, a A, b B) Entity {
	idA := ComponentIDFor[A](w.registry)
	idB := ComponentIDFor[B](w.registry)
	insertValues(w, entity,
		[]uint32{idA.Raw(), idB.Raw()},
		[]unsafe.Pointer{unsafe.Pointer(&a), unsafe.Pointer(&b)})
	return entity
}

// Insert3 writes three component values onto entity in one migration.
func Insert3[A, B, C any](w *World, entity Entity, a A, b B, c C) Entity {
	idA := ComponentIDFor[A](w.registry)
	idB := ComponentIDFor[B](w.registry)
	idC := ComponentIDFor[C](w.registry)
	insertValues(w, entity,
		[]uint32{idA.Raw(), idB.Raw(), idC.Raw()},
		[]unsafe.Pointer{unsafe.Pointer(&a), unsafe.Pointer(&b), unsafe.Pointer(&c)})
	return entity
}

// insertValues builds a bundle over ids/values (unordered-by-bit as given)
// and inserts it, ascending-sorting the bits first since Bundle requires
// ascending order.
func insertValues(w *World, entity Entity, ids []uint32, values []unsafe.Pointer) {
	var bitmask Mask
	for _, id := range ids {
		bitmask.Mark(id)
	}
	ordered := bitmask.Bits()
	orderedValues := make([]unsafe.Pointer, len(ordered))
	for i, bit := range ordered {
		for j, id := range ids {
			if id == bit {
				orderedValues[i] = values[j]
				break
			}
		}
	}
	data := packValues(w.registry, bitmask, orderedValues)
	bundle := NewBundle(w.registry, bitmask, data, true)
	w.InsertBundle(entity, bundle)
}

// RemoveBundle removes every component bit set in mask from entity, migrating
// it to the archetype for its current bitmask with those bits cleared. It is
// a benign no-op if entity carries none of the named bits.
func (w *World) RemoveBundle(entity Entity, mask Mask) {
	if !w.entities.IsAlive(entity) {
		panicTrace(EntityNotAliveError{Entity: entity})
	}
	oldMask := w.bitmaskOf(entity)
	targetMask := oldMask.Subtract(mask)
	if targetMask == oldMask {
		return
	}
	w.archetypes.MoveEntity(w.entities, entity, oldMask, targetMask)
}

// Remove removes component type T from entity.
func Remove[T any](w *World, entity Entity) {
	id := ComponentIDFor[T](w.registry)
	var m Mask
	m.Mark(id.Raw())
	w.RemoveBundle(entity, m)
}

// Remove2 removes component types A and B from entity in one migration.
func Remove2[A, B any](w *World, entity Entity) {
	idA := ComponentIDFor[A](w.registry)
	idB := ComponentIDFor[B](w.registry)
	var m Mask
	m.Mark(idA.Raw())
	m.Mark(idB.Raw())
	w.RemoveBundle(entity, m)
}

// Remove3 removes component types A, B and C from entity in one migration.
func Remove3[A, B, C any](w *World, entity Entity) {
	idA := ComponentIDFor[A](w.registry)
	idB := ComponentIDFor[B](w.registry)
	idC := ComponentIDFor[C](w.registry)
	var m Mask
	m.Mark(idA.Raw())
	m.Mark(idB.Raw())
	m.Mark(idC.Raw())
	w.RemoveBundle(entity, m)
}

// Despawn retires entity: every component it carries is removed (destroyed
// in place) and its handle's generation is bumped, making the handle
// permanently stale. Despawning an already-dead handle is a contract
// violation.
func (w *World) Despawn(entity Entity) {
	if !w.entities.IsAlive(entity) {
		panicTrace(EntityNotAliveError{Entity: entity})
	}
	mask := w.bitmaskOf(entity)
	w.archetypes.DespawnFrom(w.entities, entity, mask)
	w.entities.Despawn(entity)
}

// Get returns a pointer to entity's component of type T, or nil if it does
// not carry one. Panics if entity is not alive.
func Get[T any](w *World, entity Entity) *T {
	if !w.entities.IsAlive(entity) {
		panicTrace(EntityNotAliveError{Entity: entity})
	}
	id := ComponentIDFor[T](w.registry)
	loc := w.entities.LocationOf(entity)
	a := w.archetypes.At(loc.ArchetypeIndex)
	col := a.Column(id.Raw())
	if col == nil {
		return nil
	}
	return (*T)(col.Get(loc.Row))
}

// Has reports whether entity currently carries component type T.
func Has[T any](w *World, entity Entity) bool {
	if !w.entities.IsAlive(entity) {
		return false
	}
	id := ComponentIDFor[T](w.registry)
	return w.bitmaskOf(entity).Test(id.Raw())
}
