package silo

import "github.com/TheBitDrifter/table"

// AccessibleComponent extends a Component identity with a typed
// table.Accessor, letting callers fetch *T straight out of a Cursor/View
// position or an Entity without any further type assertions. Built with
// FactoryNewComponent.
type AccessibleComponent[T any] struct {
	Component
	table.Accessor[T]
}

// GetFromCursor retrieves the component value for the entity at the
// cursor's current position.
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	return c.Get(cursor.entityIndex-1, cursor.currentArchetype.table)
}

// GetFromCursorSafe is GetFromCursor but checks first whether the current
// archetype even carries this component, to support querying over component
// sets that don't all appear on every matched archetype (e.g. Or queries).
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	if !c.CheckCursor(cursor) {
		return false, nil
	}
	return true, c.GetFromCursor(cursor)
}

// CheckCursor reports whether the archetype at the cursor's current position
// carries this component.
func (c AccessibleComponent[T]) CheckCursor(cursor *Cursor) bool {
	return c.Accessor.Check(cursor.currentArchetype.table)
}

// GetFromEntity retrieves the component value for the given entity.
func (c AccessibleComponent[T]) GetFromEntity(entity Entity) *T {
	return c.Get(entity.Index(), entity.Table())
}

// CheckEntity reports whether entity's archetype carries this component.
func (c AccessibleComponent[T]) CheckEntity(entity Entity) bool {
	return c.Accessor.Check(entity.Table())
}
