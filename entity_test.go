package silo

import "testing"

type entityTestPosition struct{ X, Y float64 }
type entityTestVelocity struct{ X, Y float64 }

func TestEntityHas(t *testing.T) {
	w := New()
	pos := FactoryNewComponent[entityTestPosition]()
	vel := FactoryNewComponent[entityTestVelocity]()

	entities, err := w.NewEntities(1, pos)
	if err != nil {
		t.Fatalf("NewEntities: %v", err)
	}
	e := entities[0]

	if !e.Has(pos) {
		t.Fatal("entity does not report Has(pos) despite being created with it")
	}
	if e.Has(vel) {
		t.Fatal("entity reports Has(vel) despite never being given it")
	}
}

func TestEntityComponentsAsString(t *testing.T) {
	w := New()
	pos := FactoryNewComponent[entityTestPosition]()
	vel := FactoryNewComponent[entityTestVelocity]()

	entities, err := w.NewEntities(1, pos, vel)
	if err != nil {
		t.Fatalf("NewEntities: %v", err)
	}

	got := entities[0].ComponentsAsString()
	want := "[entityTestPosition, entityTestVelocity]"
	if got != want {
		t.Fatalf("ComponentsAsString() = %q, want %q", got, want)
	}
}

func TestEntitySetParentRejectsDouble(t *testing.T) {
	w := New()
	pos := FactoryNewComponent[entityTestPosition]()

	entities, err := w.NewEntities(2, pos)
	if err != nil {
		t.Fatalf("NewEntities: %v", err)
	}
	child, parent := entities[0], entities[1]

	if err := child.SetParent(parent, nil); err != nil {
		t.Fatalf("first SetParent: %v", err)
	}
	if err := child.SetParent(parent, nil); err == nil {
		t.Fatal("expected EntityRelationError re-parenting an already-parented entity")
	}
	if child.Parent() != parent {
		t.Fatal("Parent() does not return the established parent")
	}
}

func TestEntityDestroyCallback(t *testing.T) {
	w := New()
	pos := FactoryNewComponent[entityTestPosition]()

	entities, err := w.NewEntities(2, pos)
	if err != nil {
		t.Fatalf("NewEntities: %v", err)
	}
	child, parent := entities[0], entities[1]

	fired := false
	if err := child.SetParent(parent, func(Entity) { fired = true }); err != nil {
		t.Fatalf("SetParent: %v", err)
	}

	if err := w.DestroyEntities(parent); err != nil {
		t.Fatalf("DestroyEntities: %v", err)
	}
	if !fired {
		t.Fatal("destroy callback did not fire when the parent was destroyed")
	}
}
