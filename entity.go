package silo

import (
	"reflect"
	"sort"
	"strings"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// Entity is the owning handle for one row in the database. It is move-only
// in spirit (copying the handle does not copy ownership — only the World
// that created it may destroy it) and its component set never changes
// after construction: silo does not support adding or removing components
// from a live entity.
type Entity interface {
	table.Entry

	SetParent(parent Entity, callback EntityDestroyCallback) error
	Parent() Entity
	SetDestroyCallback(EntityDestroyCallback) error

	// Has reports whether c is part of this entity's shape.
	Has(c Component) bool
	Components() []Component
	ComponentsAsString() string

	Valid() bool
	World() *World
}

var _ Entity = &entity{}

type entity struct {
	table.Entry
	id            EntityID
	world         *World
	relationships relationships
	components    []Component
}

type relationships struct {
	recycled  int
	parent    Entity
	onDestroy EntityDestroyCallback
}

func (e *entity) ID() table.EntryID {
	return e.id
}

func (e *entity) Index() int {
	return e.entry().Index()
}

func (e *entity) Recycled() int {
	return e.entry().Recycled()
}

func (e *entity) Table() table.Table {
	return e.entry().Table()
}

func (e *entity) World() *World {
	return e.world
}

// SetParent establishes a parent-child relationship: callback becomes
// parent's destroy callback (replacing any it had), so it fires, receiving
// parent, when parent is destroyed.
func (e *entity) SetParent(parent Entity, callback EntityDestroyCallback) error {
	if e.relationships.parent != nil {
		return EntityRelationError{child: e, parent: parent}
	}
	e.relationships.parent = parent
	e.relationships.recycled = parent.Recycled()
	return parent.SetDestroyCallback(callback)
}

// Parent returns the parent entity, or nil if it has none or its parent has
// since been recycled (a new entity reusing the same table slot).
func (e *entity) Parent() Entity {
	if e.relationships.parent == nil {
		return nil
	}
	if e.relationships.parent.Recycled() != e.relationships.recycled {
		return nil
	}
	return e.relationships.parent
}

// SetDestroyCallback sets the callback invoked when this entity is destroyed.
func (e *entity) SetDestroyCallback(callback EntityDestroyCallback) error {
	e.relationships.onDestroy = callback
	return nil
}

// Has reports whether c is part of this entity's shape, via a mask-and
// against the bitmask the world's Entity Registry has on file. The two
// never diverge in this design, so this doubles as a consistency check.
func (e *entity) Has(c Component) bool {
	m, ok := e.world.registry.maskOf(e.id)
	if !ok {
		return false
	}
	var probe mask.Mask
	probe.Mark(e.world.components.RowIndexFor(c))
	return m.ContainsAll(probe)
}

// Components returns every component attached to this entity.
func (e *entity) Components() []Component {
	return e.components
}

// ComponentsAsString returns a sorted, formatted string of component names,
// handy in test failure messages.
func (e *entity) ComponentsAsString() string {
	if len(e.components) == 0 {
		return "[]"
	}
	names := make([]string, len(e.components))
	for i, c := range e.components {
		typeName := reflect.TypeOf(c).String()
		typeName = strings.TrimPrefix(typeName, "*")
		parts := strings.Split(typeName, ".")
		names[i] = strings.TrimSuffix(parts[len(parts)-1], "]")
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}

// Valid reports whether this handle still refers to a live entity.
func (e *entity) Valid() bool {
	if e == nil || e.id == 0 || e.world == nil {
		return false
	}
	_, ok := e.world.registry.maskOf(e.id)
	return ok
}

func (e *entity) entry() table.Entry {
	en, err := e.world.entryIndex.Entry(int(e.id - 1))
	if err != nil {
		panic(bark.AddTrace(UnregisteredEntityError{ID: e.id}))
	}
	return en
}
