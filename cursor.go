package silo

import (
	"iter"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

var _ iCursor = &Cursor{}

// iCursor is the minimal stepping interface a Cursor exposes.
type iCursor interface {
	Entities() iter.Seq2[int, table.Table]
	Next() bool
}

// Cursor provides manual, stateful iteration over every entity matching a
// Query within a World. Initialize takes out the World's iterating lock
// for the cursor's lifetime; Reset (called automatically once iteration
// is exhausted) releases it.
type Cursor struct {
	query QueryNode
	world *World

	currentArchetype *archetype
	storageIndex     int
	entityIndex      int
	remaining        int

	initialized       bool
	matchedArchetypes []*archetype
}

// NewCursor creates a Cursor over world for query. A nil query matches every
// entity in world.
func NewCursor(world *World, query QueryNode) *Cursor {
	return &Cursor{world: world, query: query}
}

// Next advances to the next matching entity, returning false once exhausted.
func (c *Cursor) Next() bool {
	if c.entityIndex < c.remaining {
		c.entityIndex++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	if !c.initialized {
		c.Initialize()
	}

	for c.storageIndex < len(c.matchedArchetypes) {
		c.currentArchetype = c.matchedArchetypes[c.storageIndex]
		c.remaining = c.currentArchetype.table.Length()
		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.storageIndex++
		c.entityIndex = 0
	}

	c.Reset()
	return false
}

// Entities returns an iterator over (row index, table) pairs for every
// matching entity, suitable for range-over-func loops.
func (c *Cursor) Entities() iter.Seq2[int, table.Table] {
	return func(yield func(int, table.Table) bool) {
		c.Initialize()

		for c.storageIndex < len(c.matchedArchetypes) {
			c.currentArchetype = c.matchedArchetypes[c.storageIndex]
			c.remaining = c.currentArchetype.table.Length()

			for c.entityIndex < c.remaining {
				if !yield(c.entityIndex, c.currentArchetype.table) {
					c.Reset()
					return
				}
				c.entityIndex++
			}

			c.entityIndex = 0
			c.storageIndex++
		}

		c.Reset()
	}
}

// Initialize resolves the query against world's archetypes and locks world
// against structural writes for the duration of the iteration.
func (c *Cursor) Initialize() {
	if c.initialized {
		return
	}

	c.world.lockIterating()
	c.matchedArchetypes = c.matchingArchetypes()

	if len(c.matchedArchetypes) > 0 {
		c.storageIndex = 0
		c.currentArchetype = c.matchedArchetypes[0]
		c.remaining = c.currentArchetype.table.Length()
	}
	c.initialized = true
}

// matchingArchetypes resolves the query to the archetypes it matches. When
// the query reduces to a pure AND of component leaves, it routes through
// the Archetype Index's trie rather than scanning every stored archetype;
// otherwise it falls back to evaluating the query against each one in
// turn.
func (c *Cursor) matchingArchetypes() []*archetype {
	if rows, ok := andMask(c.world, c.query); ok {
		var qm mask.Mask
		for _, row := range rows {
			qm.Mark(row)
		}
		var matched []*archetype
		for m := range c.world.index.Supersets(qm) {
			if a, ok := c.world.store.get(m); ok {
				matched = append(matched, a)
			}
		}
		return matched
	}

	var matched []*archetype
	for _, a := range c.world.store.archetypes() {
		if c.query.Evaluate(c.world, a) {
			matched = append(matched, a)
		}
	}
	return matched
}

// Reset clears cursor state and releases world's iterating lock.
func (c *Cursor) Reset() {
	c.storageIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.matchedArchetypes = nil
	if c.initialized {
		c.world.unlockIterating()
	}
	c.initialized = false
}

// CurrentEntity returns the entity at the cursor's current position.
func (c *Cursor) CurrentEntity() (Entity, error) {
	entry, err := c.currentArchetype.table.Entry(c.entityIndex - 1)
	if err != nil {
		return nil, err
	}
	return c.world.Entity(entry.ID())
}

// EntityAtOffset returns the entity at offset positions from the cursor's
// current position, within the same archetype.
func (c *Cursor) EntityAtOffset(offset int) (Entity, error) {
	entry, err := c.currentArchetype.table.Entry(c.entityIndex - 1 + offset)
	if err != nil {
		return nil, err
	}
	return c.world.Entity(entry.ID())
}

// EntityIndex returns the 1-based row position within the current archetype.
func (c *Cursor) EntityIndex() int {
	return c.entityIndex
}

// RemainingInArchetype returns the number of matching entities left in the
// current archetype, not counting the current one.
func (c *Cursor) RemainingInArchetype() int {
	return c.remaining - c.entityIndex
}

// TotalMatched returns the total number of entities the query matches across
// every archetype in world.
func (c *Cursor) TotalMatched() int {
	if !c.initialized {
		c.Initialize()
	}

	total := 0
	for _, a := range c.matchedArchetypes {
		total += a.table.Length()
	}

	c.Reset()
	return total
}
