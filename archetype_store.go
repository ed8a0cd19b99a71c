package silo

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// archetypeStore maps component-set bitmasks to their archetype table.
// Every key inserted here is mirrored into the owning World's
// archetypeIndex in the same call, keeping the set of bitmasks in the
// Archetype Index identical to the set of keys of the Archetype Store.
type archetypeStore struct {
	byMask map[mask.Mask]*archetype
	all    []*archetype
	index  *archetypeIndex
	nextID archetypeID
}

func newArchetypeStore(index *archetypeIndex) *archetypeStore {
	return &archetypeStore{
		byMask: make(map[mask.Mask]*archetype),
		index:  index,
		nextID: 1,
	}
}

// get returns the archetype stored under m, if any.
func (s *archetypeStore) get(m mask.Mask) (*archetype, bool) {
	a, ok := s.byMask[m]
	return a, ok
}

// getOrCreate returns the archetype stored under m, building and indexing a
// new one via schema/entryIndex/components if absent.
func (s *archetypeStore) getOrCreate(m mask.Mask, schema table.Schema, entryIndex table.EntryIndex, components ...Component) (*archetype, error) {
	if a, ok := s.byMask[m]; ok {
		return a, nil
	}
	a, err := newArchetype(schema, entryIndex, s.nextID, m, components...)
	if err != nil {
		return nil, fmt.Errorf("archetype store: %w", err)
	}
	s.byMask[m] = a
	s.all = append(s.all, a)
	s.index.Insert(m)
	s.nextID++
	return a, nil
}

// archetypes returns every archetype currently in the store, in creation
// order.
func (s *archetypeStore) archetypes() []*archetype {
	return s.all
}
