package silo

import (
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// EntityID identifies an entity, allocated monotonically and never reused
// within the lifetime of the table.EntryIndex that backs it.
type EntityID = table.EntryID

// entityRegistry maps entity ids to the bitmask of their owning archetype.
// It exists alongside, not instead of, the table package's own entry
// bookkeeping: the registry is what lets Has be checked without walking
// the archetype store.
type entityRegistry struct {
	masks map[EntityID]mask.Mask
}

func newEntityRegistry() *entityRegistry {
	return &entityRegistry{masks: make(map[EntityID]mask.Mask)}
}

func (r *entityRegistry) register(id EntityID, m mask.Mask) {
	r.masks[id] = m
}

func (r *entityRegistry) unregister(id EntityID) {
	delete(r.masks, id)
}

func (r *entityRegistry) maskOf(id EntityID) (mask.Mask, bool) {
	m, ok := r.masks[id]
	return m, ok
}

func (r *entityRegistry) len() int {
	return len(r.masks)
}
