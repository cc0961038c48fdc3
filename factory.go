package archon

// factory implements the factory pattern for archon's top-level types,
// exposing a single global construction entry point.
type factory struct{}

// Factory is the global factory instance for creating archon components.
var Factory factory

// NewComponentRegistry creates an empty ComponentRegistry.
func (f factory) NewComponentRegistry() *ComponentRegistry {
	return NewComponentRegistry()
}

// NewWorld creates a new World backed by registry.
func (f factory) NewWorld(registry *ComponentRegistry) *World {
	return NewWorld(registry)
}

// NewQueryEngine creates a QueryEngine matching archetypes that carry every
// bit set in required.
func (f factory) NewQueryEngine(required Mask) *QueryEngine {
	return NewQueryEngine(required)
}

// NewCursor creates a Cursor over every entity the given QueryEngine matches
// in w.
func (f factory) NewCursor(engine *QueryEngine, w *World) *Cursor {
	return NewCursor(engine, w.archetypes, w.registry)
}

// FactoryNewComponent registers T against registry and returns its typed
// ComponentID.
func FactoryNewComponent[T any](registry *ComponentRegistry, opts ...DescriptorOption) ComponentID[T] {
	return RegisterComponent[T](registry, opts...)
}
