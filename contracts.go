package silo

import (
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// Component is any user-defined value type that can be attached to an
// entity. Components are what distinguish one archetype from another.
type Component interface {
	table.ElementType
}

// Archetype is the runtime embodiment of a shape: a stable bitmask identity
// plus the columnar table backing every entity that shares it.
type Archetype interface {
	ID() uint32
	Bitmask() mask.Mask
	Table() table.Table
}

// EntityDestroyCallback is invoked, synchronously, when the entity carrying
// it is destroyed.
type EntityDestroyCallback func(Entity)
