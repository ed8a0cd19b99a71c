package silo

import "github.com/TheBitDrifter/table"

// factory implements the factory pattern for silo's constructible types.
type factory struct{}

// Factory is the global factory instance for constructing Queries and
// Cursors without going through World directly.
var Factory factory

// NewQuery creates a new, empty Query.
func (f factory) NewQuery() Query {
	return NewQuery()
}

// NewCursor creates a new Cursor over world for query.
func (f factory) NewCursor(world *World, query QueryNode) *Cursor {
	return NewCursor(world, query)
}

// FactoryNewComponent creates a new AccessibleComponent for type T, assigning
// it a fresh table.ElementType identity.
func FactoryNewComponent[T any]() AccessibleComponent[T] {
	iden := table.FactoryNewElementType[T]()
	return AccessibleComponent[T]{
		Component: iden,
		Accessor:  table.FactoryNewAccessor[T](iden),
	}
}

// FactoryNewCache creates a new Cache with the given capacity.
func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
