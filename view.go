package silo

import (
	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// viewState names the position of a View within its BeginArchetype ->
// NextRow -> NextArchetype -> Finished walk.
type viewState int

const (
	viewBeginArchetype viewState = iota
	viewNextRow
	viewNextArchetype
	viewFinished
)

// viewBase drives the state machine shared by View1/View2/View3: resolve the
// query's component set once via the Archetype Index, then step
// row by row, archetype by archetype, locking world against structural
// writes for as long as the walk is live.
type viewBase struct {
	world       *World
	archetypes  []*archetype
	archIdx     int
	entityIndex int
	remaining   int
	state       viewState
	locked      bool
}

func newViewBase(world *World, q mask.Mask) *viewBase {
	var archetypes []*archetype
	for m := range world.index.Supersets(q) {
		if a, ok := world.store.get(m); ok {
			archetypes = append(archetypes, a)
		}
	}
	return &viewBase{world: world, archetypes: archetypes}
}

// Next steps the state machine once, returning false once Finished.
func (v *viewBase) Next() bool {
	if !v.locked {
		v.world.lockIterating()
		v.locked = true
	}
	for {
		switch v.state {
		case viewBeginArchetype:
			if v.archIdx >= len(v.archetypes) {
				v.state = viewFinished
				continue
			}
			v.remaining = v.archetypes[v.archIdx].table.Length()
			v.entityIndex = 0
			v.state = viewNextRow
		case viewNextRow:
			if v.entityIndex < v.remaining {
				v.entityIndex++
				return true
			}
			v.state = viewNextArchetype
		case viewNextArchetype:
			v.archIdx++
			v.state = viewBeginArchetype
		case viewFinished:
			if v.locked {
				v.world.unlockIterating()
				v.locked = false
			}
			return false
		}
	}
}

// current returns the archetype and 0-based row the view is positioned on,
// panicking if the view has not been advanced onto a row, or has already
// finished.
func (v *viewBase) current() (*archetype, int) {
	if v.state != viewNextRow || v.entityIndex == 0 {
		panic(bark.AddTrace(FinishedViewError{}))
	}
	return v.archetypes[v.archIdx], v.entityIndex - 1
}

func (v *viewBase) entity() Entity {
	arch, idx := v.current()
	entry, err := arch.table.Entry(idx)
	if err != nil {
		panic(bark.AddTrace(err))
	}
	ent, err := v.world.Entity(entry.ID())
	if err != nil {
		panic(bark.AddTrace(err))
	}
	return ent
}

// View1 walks every entity carrying component A. Build one with NewView1.
type View1[A any] struct {
	base *viewBase
	a    AccessibleComponent[A]
}

// NewView1 resolves the query {A} against world's Archetype Index and
// returns a View positioned before the first matching row.
func NewView1[A any](world *World, a AccessibleComponent[A]) *View1[A] {
	var q mask.Mask
	q.Mark(world.RowIndexFor(a.Component))
	return &View1[A]{base: newViewBase(world, q), a: a}
}

// Next advances to the next matching entity.
func (v *View1[A]) Next() bool { return v.base.Next() }

// Entity returns the entity at the view's current position.
func (v *View1[A]) Entity() Entity { return v.base.entity() }

// A returns a pointer to the A value at the view's current position.
func (v *View1[A]) A() *A {
	arch, idx := v.base.current()
	return v.a.Get(idx, arch.table)
}

// View2 walks every entity carrying both A and B.
type View2[A any, B any] struct {
	base *viewBase
	a    AccessibleComponent[A]
	b    AccessibleComponent[B]
}

// NewView2 resolves the query {A, B} against world's Archetype Index.
func NewView2[A any, B any](world *World, a AccessibleComponent[A], b AccessibleComponent[B]) *View2[A, B] {
	var q mask.Mask
	q.Mark(world.RowIndexFor(a.Component))
	q.Mark(world.RowIndexFor(b.Component))
	return &View2[A, B]{base: newViewBase(world, q), a: a, b: b}
}

func (v *View2[A, B]) Next() bool   { return v.base.Next() }
func (v *View2[A, B]) Entity() Entity { return v.base.entity() }

func (v *View2[A, B]) A() *A {
	arch, idx := v.base.current()
	return v.a.Get(idx, arch.table)
}

func (v *View2[A, B]) B() *B {
	arch, idx := v.base.current()
	return v.b.Get(idx, arch.table)
}

// View3 walks every entity carrying A, B, and C.
type View3[A any, B any, C any] struct {
	base *viewBase
	a    AccessibleComponent[A]
	b    AccessibleComponent[B]
	c    AccessibleComponent[C]
}

// NewView3 resolves the query {A, B, C} against world's Archetype Index.
func NewView3[A any, B any, C any](
	world *World,
	a AccessibleComponent[A],
	b AccessibleComponent[B],
	c AccessibleComponent[C],
) *View3[A, B, C] {
	var q mask.Mask
	q.Mark(world.RowIndexFor(a.Component))
	q.Mark(world.RowIndexFor(b.Component))
	q.Mark(world.RowIndexFor(c.Component))
	return &View3[A, B, C]{base: newViewBase(world, q), a: a, b: b, c: c}
}

func (v *View3[A, B, C]) Next() bool   { return v.base.Next() }
func (v *View3[A, B, C]) Entity() Entity { return v.base.entity() }

func (v *View3[A, B, C]) A() *A {
	arch, idx := v.base.current()
	return v.a.Get(idx, arch.table)
}

func (v *View3[A, B, C]) B() *B {
	arch, idx := v.base.current()
	return v.b.Get(idx, arch.table)
}

func (v *View3[A, B, C]) C() *C {
	arch, idx := v.base.current()
	return v.c.Get(idx, arch.table)
}
