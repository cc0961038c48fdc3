/*
Package archon provides an archetype-based Entity-Component-System (ECS)
storage engine.

Archon keeps entities with identical component sets packed into the same
columnar table (an "archetype"), so that iterating a query walks contiguous
memory instead of chasing pointers. Components are stored type-erased behind
a small descriptor (size, alignment, move/destroy/swap) so the storage engine
never needs compile-time knowledge of a component's type.

Core Concepts:

  - Entity: an (id, generation) handle to a logical object.
  - Component: a value of a registered type, stored in columnar form.
  - Archetype: a table holding every entity sharing one exact component set.
  - Bundle: a transient packed buffer of component values consumed by insert.
  - Query: a bitmask describing the components an iteration requires.

Basic Usage:

	registry := archon.NewComponentRegistry()
	position := archon.RegisterComponent[Position](registry)
	velocity := archon.RegisterComponent[Velocity](registry)

	world := archon.Factory.NewWorld(registry)

	e := archon.Insert2(world, world.SpawnEmpty(), Position{X: 1}, Velocity{X: 2})

	archon.Query2(world, func(_ archon.Entity, pos *Position, vel *Velocity) {
		pos.X += vel.X
	})

	_ = e
	_ = position
	_ = velocity

Archon is single-threaded and non-reentrant: mutating the store from inside
an iteration callback is a contract violation, not a supported pattern.
*/
package archon
