package archon

import "reflect"

// MaxComponents is the largest number of distinct component types a single
// ComponentRegistry can assign bits for, one per bit of a Mask.
const MaxComponents = MaskBits

// ComponentRegistry assigns a unique, stable bit identifier to each
// registered component type, append-only for the lifetime of the registry.
// Bit assignment order is registration order; ids are never reused.
type ComponentRegistry struct {
	byType map[reflect.Type]uint32
	descs  []*TypeDescriptor
}

// NewComponentRegistry returns an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		byType: make(map[reflect.Type]uint32),
	}
}

// Register assigns the next free bit to the component type described by
// desc. Panics if the type is already registered or the registry is
// exhausted.
func (r *ComponentRegistry) Register(desc *TypeDescriptor) uint32 {
	if _, ok := r.byType[desc.GoType()]; ok {
		panicTrace(DuplicateRegistrationError{TypeName: desc.GoType().String()})
	}
	if len(r.descs) >= MaxComponents {
		panicTrace(RegistryExhaustedError{})
	}
	id := uint32(len(r.descs))
	r.byType[desc.GoType()] = id
	r.descs = append(r.descs, desc)
	return id
}

// RegisterComponent registers T (building its TypeDescriptor via reflection)
// and returns its assigned ComponentID. Calling it twice for the same T on
// the same registry panics.
func RegisterComponent[T any](r *ComponentRegistry, opts ...DescriptorOption) ComponentID[T] {
	desc := NewTypeDescriptor[T](opts...)
	id := r.Register(desc)
	return ComponentID[T]{id: id}
}

// IsRegistered reports whether T has already been registered on r.
func IsRegistered[T any](r *ComponentRegistry) bool {
	var zero T
	_, ok := r.byType[reflect.TypeOf(&zero).Elem()]
	return ok
}

// ComponentIDFor returns the ComponentID assigned to T, looked up by T's
// reflect.Type. Panics if T has not been registered.
func ComponentIDFor[T any](r *ComponentRegistry) ComponentID[T] {
	var zero T
	gt := reflect.TypeOf(&zero).Elem()
	id, ok := r.byType[gt]
	if !ok {
		panicTrace(UnknownComponentError{})
	}
	return ComponentID[T]{id: id}
}

// DescriptorOf returns the TypeDescriptor registered for bit id. Panics if id
// was never assigned.
func (r *ComponentRegistry) DescriptorOf(id uint32) *TypeDescriptor {
	if int(id) >= len(r.descs) {
		panicTrace(UnknownComponentError{ID: id})
	}
	return r.descs[id]
}

// Len returns the number of component types registered so far.
func (r *ComponentRegistry) Len() int { return len(r.descs) }

// ComponentID is a typed handle to a registered component's bit id, tying the
// bit to its Go type parameter T. The generic helpers (Insert2, Query2 and
// the like) do not take a ComponentID; they obtain one per call through
// ComponentIDFor, a registry lookup keyed by reflect.Type.
type ComponentID[T any] struct {
	id uint32
}

// Raw returns the untyped bit identifier.
func (c ComponentID[T]) Raw() uint32 { return c.id }
