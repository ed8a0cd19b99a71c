package silo

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// MaxComponents is the upper bound on distinct component types a single
// World may register. It is also the bit width the archetypeIndex trie
// walks.
const MaxComponents = 128

// ComponentRegistry assigns each component type a dense, stable id, backed
// by the world's table.Schema for the actual row/bit assignment and by a
// Cache enforcing the MaxComponents ceiling. Go has no compile-time side
// effects to derive ids from, so registration happens idempotently at
// first use instead.
type ComponentRegistry struct {
	schema table.Schema
	seen   Cache[reflect.Type]
}

func newComponentRegistry(schema table.Schema) *ComponentRegistry {
	return &ComponentRegistry{
		schema: schema,
		seen: &SimpleCache[reflect.Type]{
			itemIndices: make(map[string]int),
			maxCapacity: MaxComponents,
		},
	}
}

// Register assigns (or confirms) a dense id for each of components'
// underlying types. It returns ComponentLimitExceededError once more than
// MaxComponents distinct component types have been observed by this
// registry.
func (r *ComponentRegistry) Register(components ...Component) error {
	for _, c := range components {
		typ := reflect.TypeOf(c)
		if _, ok := r.seen.GetIndex(typ.String()); !ok {
			if _, err := r.seen.Register(typ.String(), typ); err != nil {
				return ComponentLimitExceededError{Attempted: r.seen.Len() + 1}
			}
		}
		r.schema.Register(c)
	}
	return nil
}

// RowIndexFor returns the dense row/bit index assigned to c. c must already
// be registered.
func (r *ComponentRegistry) RowIndexFor(c Component) uint32 {
	return r.schema.RowIndexFor(c)
}

// Bitmask registers components (if new) and returns their combined bitmask.
func (r *ComponentRegistry) Bitmask(components ...Component) (mask.Mask, error) {
	var m mask.Mask
	if err := r.Register(components...); err != nil {
		return m, err
	}
	for _, c := range components {
		m.Mark(r.RowIndexFor(c))
	}
	return m, nil
}
