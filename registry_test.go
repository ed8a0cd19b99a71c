package silo

import (
	"reflect"
	"testing"

	"github.com/TheBitDrifter/table"
)

type regTestA struct{ V int }
type regTestB struct{ V int }

func TestComponentRegistryIdempotent(t *testing.T) {
	schema := table.Factory.NewSchema()
	reg := newComponentRegistry(schema)

	a := FactoryNewComponent[regTestA]()

	if err := reg.Register(a); err != nil {
		t.Fatalf("Register: %v", err)
	}
	first := reg.RowIndexFor(a)

	if err := reg.Register(a); err != nil {
		t.Fatalf("second Register: %v", err)
	}
	second := reg.RowIndexFor(a)

	if first != second {
		t.Fatalf("re-registering the same component type changed its row index: %d -> %d", first, second)
	}
}

func TestComponentRegistryDistinctTypes(t *testing.T) {
	schema := table.Factory.NewSchema()
	reg := newComponentRegistry(schema)

	a := FactoryNewComponent[regTestA]()
	b := FactoryNewComponent[regTestB]()

	if err := reg.Register(a, b); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.RowIndexFor(a) == reg.RowIndexFor(b) {
		t.Fatal("two distinct component types were assigned the same row index")
	}
}

func TestComponentRegistryEnforcesLimit(t *testing.T) {
	schema := table.Factory.NewSchema()
	reg := &ComponentRegistry{
		schema: schema,
		seen: &SimpleCache[reflect.Type]{
			itemIndices: make(map[string]int),
			maxCapacity: 0,
		},
	}

	a := FactoryNewComponent[regTestA]()
	err := reg.Register(a)
	if err == nil {
		t.Fatal("expected ComponentLimitExceededError with a zero-capacity registry")
	}
	var limitErr ComponentLimitExceededError
	if _, ok := err.(ComponentLimitExceededError); !ok {
		t.Fatalf("got error %v (%T), want %T", err, err, limitErr)
	}
}

func TestComponentRegistryBitmaskDistinguishesSets(t *testing.T) {
	schema := table.Factory.NewSchema()
	reg := newComponentRegistry(schema)

	a := FactoryNewComponent[regTestA]()
	b := FactoryNewComponent[regTestB]()

	m1, err := reg.Bitmask(a)
	if err != nil {
		t.Fatalf("Bitmask: %v", err)
	}
	m2, err := reg.Bitmask(a, b)
	if err != nil {
		t.Fatalf("Bitmask: %v", err)
	}
	if m1 == m2 {
		t.Fatal("bitmasks for {A} and {A, B} must differ")
	}
	if !m2.ContainsAll(m1) {
		t.Fatal("{A, B}'s bitmask must be a superset of {A}'s")
	}
}
