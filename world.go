package silo

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// lockReasonIterating is the lock bit Cursor/View hold for the duration of
// an iteration, so structural writes started mid-iteration are deferred
// instead of invalidating the iteration.
const lockReasonIterating uint32 = 0

// World owns one Archetype Store, Archetype Index, and Entity Registry —
// the unit of multi-tenancy. Unlike a design built on process-wide globals,
// a World here is an explicit value the caller owns and passes around; Of
// provides an optional per-tag singleton convenience on top, for callers
// who want a global instance instead.
type World struct {
	mu sync.RWMutex

	schema     table.Schema
	entryIndex table.EntryIndex
	entities   []*entity

	components *ComponentRegistry
	store      *archetypeStore
	index      *archetypeIndex
	registry   *entityRegistry

	operationQueue EntityOperationsQueue
	locks          mask.Mask256
}

// New constructs an empty, independent World.
func New() *World {
	schema := table.Factory.NewSchema()
	index := newArchetypeIndex()
	return &World{
		schema:         schema,
		entryIndex:     table.Factory.NewEntryIndex(),
		components:     newComponentRegistry(schema),
		store:          newArchetypeStore(index),
		index:          index,
		registry:       newEntityRegistry(),
		operationQueue: &entityOperationsQueue{},
	}
}

var (
	worldsMu sync.Mutex
	worlds   = map[reflect.Type]*World{}
)

// Of returns the process-wide World singleton for Tag, constructing it on
// first use. Different Tag types yield
// independent, statically separated instances. Prefer New for an explicitly
// owned World; Of exists for callers that want the convenience of a
// global-per-tag instance.
func Of[Tag any]() *World {
	tag := reflect.TypeOf((*Tag)(nil)).Elem()
	worldsMu.Lock()
	defer worldsMu.Unlock()
	if w, ok := worlds[tag]; ok {
		return w
	}
	w := New()
	worlds[tag] = w
	return w
}

// Register assigns dense ids to any of components not yet seen by this
// World, failing once more than MaxComponents distinct types are observed.
func (w *World) Register(components ...Component) error {
	return w.components.Register(components...)
}

// RowIndexFor returns the bit/row index assigned to c within this World.
func (w *World) RowIndexFor(c Component) uint32 {
	return w.components.RowIndexFor(c)
}

// Archetypes returns every archetype currently stored in this World.
func (w *World) Archetypes() []Archetype {
	all := w.store.archetypes()
	out := make([]Archetype, len(all))
	for i, a := range all {
		out[i] = a
	}
	return out
}

// Locked reports whether any structural lock is held.
func (w *World) Locked() bool {
	return !w.locks.IsEmpty()
}

// Lock marks reason as an outstanding reason to defer structural writes
// (e.g. an in-flight Cursor/View iteration).
func (w *World) Lock(reason uint32) {
	w.locks.Mark(reason)
}

// Unlock clears reason. Once no lock reasons remain, every queued
// EntityOperation is applied.
func (w *World) Unlock(reason uint32) {
	w.locks.Unmark(reason)
	if w.locks.IsEmpty() {
		if err := w.operationQueue.ProcessAll(w); err != nil {
			panic(bark.AddTrace(fmt.Errorf("processing queued operations: %w", err)))
		}
	}
}

func (w *World) lockIterating()   { w.Lock(lockReasonIterating) }
func (w *World) unlockIterating() { w.Unlock(lockReasonIterating) }

// Enqueue adds op to the deferred-operation queue, to be applied once the
// World is fully unlocked.
func (w *World) Enqueue(op EntityOperation) {
	w.operationQueue.Enqueue(op)
}

// NewEntities creates n entities carrying components, creating the backing
// archetype if this is the first entity of that shape.
func (w *World) NewEntities(n int, components ...Component) ([]Entity, error) {
	return w.createEntities(n, components, nil)
}

// NewEntitiesOfShape creates n entities from shape, seeding any registered
// defaults.
func (w *World) NewEntitiesOfShape(n int, shape *Shape) ([]Entity, error) {
	return w.createEntities(n, shape.components, shape.defaults)
}

func (w *World) createEntities(n int, components []Component, defaults map[reflect.Type]any) ([]Entity, error) {
	if n <= 0 {
		return nil, fmt.Errorf("entity count must be positive, got %d", n)
	}
	if w.Locked() {
		return nil, LockedWorldError{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	m, err := w.components.Bitmask(components...)
	if err != nil {
		return nil, err
	}
	arche, err := w.store.getOrCreate(m, w.schema, w.entryIndex, components...)
	if err != nil {
		return nil, err
	}
	entries, err := arche.Generate(n, defaults)
	if err != nil {
		return nil, err
	}
	return w.materialize(entries, components, m), nil
}

// materialize grows the world's entity slice to cover the freshly created
// rows, registers each with the Entity Registry, and returns Entity handles.
//
// Each entity is heap-allocated once and the slice holds only the pointer,
// so growing the slice (which reallocates its backing array) never
// invalidates a *entity a caller is already holding — only the pointer
// values get copied, not the entity state they point to.
func (w *World) materialize(entries []table.Entry, components []Component, m mask.Mask) []Entity {
	currentLen := len(w.entities)
	needed := currentLen + len(entries)
	if cap(w.entities) < needed {
		newCap := max(needed, 2*cap(w.entities))
		grown := make([]*entity, currentLen, newCap)
		copy(grown, w.entities)
		w.entities = grown
	}
	w.entities = w.entities[:needed]

	out := make([]Entity, len(entries))
	for i, en := range entries {
		id := en.ID()
		e := &entity{
			Entry:      en,
			id:         id,
			world:      w,
			components: components,
		}
		w.entities[id-1] = e
		out[i] = e
		w.registry.register(id, m)
	}
	return out
}

// EnqueueNewEntities creates entities immediately if unlocked, else defers
// creation until the World unlocks.
func (w *World) EnqueueNewEntities(n int, components ...Component) error {
	if !w.Locked() {
		_, err := w.NewEntities(n, components...)
		return err
	}
	w.Enqueue(NewEntityOperation{count: n, components: components})
	return nil
}

// EnqueueNewEntitiesOfShape is EnqueueNewEntities for a Shape.
func (w *World) EnqueueNewEntitiesOfShape(n int, shape *Shape) error {
	if !w.Locked() {
		_, err := w.NewEntitiesOfShape(n, shape)
		return err
	}
	w.Enqueue(NewEntitiesOfShapeOperation{count: n, shape: shape})
	return nil
}

// Entity looks up the handle for id. The returned Entity is Valid() false
// if id has since been destroyed; an id never created in this World yields
// UnregisteredEntityError.
func (w *World) Entity(id EntityID) (Entity, error) {
	idx := int(id) - 1
	if idx < 0 || idx >= len(w.entities) {
		return nil, UnregisteredEntityError{ID: id}
	}
	return w.entities[idx], nil
}

// DestroyEntities erases every row in entities from its archetype table,
// fires any destroy callbacks, and removes each id from the Entity
// Registry.
func (w *World) DestroyEntities(entities ...Entity) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	byTable := make(map[table.Table][]int)
	for _, e := range entities {
		if e == nil {
			continue
		}
		byTable[e.Table()] = append(byTable[e.Table()], int(e.ID()))
	}
	for tbl, ids := range byTable {
		if _, err := tbl.DeleteEntries(ids...); err != nil {
			return fmt.Errorf("destroying entities: %w", err)
		}
	}
	for _, e := range entities {
		if e == nil {
			continue
		}
		id := e.ID()
		w.registry.unregister(id)
		idx := int(id) - 1
		if idx >= 0 && idx < len(w.entities) && w.entities[idx] != nil {
			if cb := w.entities[idx].relationships.onDestroy; cb != nil {
				cb(e)
			}
			w.entities[idx] = nil
		}
	}
	return nil
}

// EnqueueDestroyEntities destroys entities immediately if unlocked, else
// defers destruction until the World unlocks.
func (w *World) EnqueueDestroyEntities(entities ...Entity) error {
	if !w.Locked() {
		return w.DestroyEntities(entities...)
	}
	for _, e := range entities {
		w.Enqueue(DestroyEntityOperation{entity: e, recycled: e.Recycled()})
	}
	return nil
}
