package archon

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// EntityNotAliveError reports that an operation targeted an entity handle
// whose generation no longer matches the live entity at that slot, most
// commonly a handle surviving past a despawn.
type EntityNotAliveError struct {
	Entity Entity
}

func (e EntityNotAliveError) Error() string {
	return fmt.Sprintf("entity %v is not alive", e.Entity)
}

// UnknownComponentError reports a ComponentID that was never registered
// against the ComponentRegistry in use.
type UnknownComponentError struct {
	ID uint32
}

func (e UnknownComponentError) Error() string {
	return fmt.Sprintf("component id %d is not registered", e.ID)
}

// ComponentNotPresentError reports that an entity was queried or mutated for
// a component bit its archetype does not carry.
type ComponentNotPresentError struct {
	Entity Entity
	ID     uint32
}

func (e ComponentNotPresentError) Error() string {
	return fmt.Sprintf("entity %v does not have component id %d", e.Entity, e.ID)
}

// RegistryExhaustedError reports that a ComponentRegistry has already
// assigned MaxComponents bits and cannot register another type.
type RegistryExhaustedError struct{}

func (e RegistryExhaustedError) Error() string {
	return fmt.Sprintf("component registry exhausted: at most %d components", MaxComponents)
}

// DuplicateRegistrationError reports a second Register call for a type that
// already has an assigned bit.
type DuplicateRegistrationError struct {
	TypeName string
}

func (e DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("component type %s is already registered", e.TypeName)
}

// panicTrace wraps err with a stack trace via bark and panics, matching the
// contract-violation model: every failure originating inside the core is a
// programming error in the caller, never a recoverable condition.
func panicTrace(err error) {
	panic(bark.AddTrace(err))
}
