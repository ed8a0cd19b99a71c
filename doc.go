/*
Package silo is an in-memory entity-component database optimized for
cache-friendly bulk iteration over heterogeneous record sets.

Entities are identified by a 64-bit id and carry a fixed set of typed
components. Entities sharing the exact same component set form an
archetype; components are stored grouped by archetype and by component
type, so iterating over any subset of components is contiguous per type.

Core Concepts:

  - World: owns one Archetype Store, Archetype Index, and Entity Registry.
    It is the unit of multi-tenancy (see Of).
  - Component: a user-defined value type that can be attached to entities.
  - Archetype: the runtime table backing one distinct component set.
  - Shape: a named, reusable component set plus optional per-component
    defaults, used to stamp out entities of one kind repeatedly.
  - View / Cursor: lazy iteration over matching entities. A View, and a
    Cursor over a pure And query, visits every archetype whose component
    set is a superset of the requested components; a Cursor over an Or/Not
    query evaluates it against each stored archetype.

Basic Usage:

	w := silo.New()

	position := silo.FactoryNewComponent[Position]()
	velocity := silo.FactoryNewComponent[Velocity]()

	entities, _ := w.NewEntities(100, position, velocity)
	_ = entities

	view := silo.NewView2(w, position, velocity)
	for view.Next() {
		pos, vel := view.A(), view.B()
		pos.X += vel.X
		pos.Y += vel.Y
	}

Entities are born with a fixed component set: silo does not support
adding or removing components from a live entity (see Entity). Shape
mutation, persistence, and multi-process sharing are out of scope.
*/
package silo
