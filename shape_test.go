package silo_test

import (
	"testing"

	"github.com/harlowdrift/silo"
)

type shapeTestPosition struct{ X, Y float64 }
type shapeTestVelocity struct{ X, Y float64 }

func TestShapeAppliesDefaults(t *testing.T) {
	w := silo.New()
	pos := silo.FactoryNewComponent[shapeTestPosition]()
	vel := silo.FactoryNewComponent[shapeTestVelocity]()

	shape := silo.NewShape("mover", pos, vel)
	shape.Default(pos, shapeTestPosition{X: 5, Y: 5})

	entities, err := w.NewEntitiesOfShape(3, shape)
	if err != nil {
		t.Fatalf("NewEntitiesOfShape: %v", err)
	}
	for _, e := range entities {
		p := pos.GetFromEntity(e)
		if p.X != 5 || p.Y != 5 {
			t.Fatalf("position default not applied: got %+v", p)
		}
		v := vel.GetFromEntity(e)
		if v.X != 0 || v.Y != 0 {
			t.Fatalf("velocity should be zero-valued absent a default: got %+v", v)
		}
	}
}

func TestShapeWithoutDefaultsIsZeroValued(t *testing.T) {
	w := silo.New()
	pos := silo.FactoryNewComponent[shapeTestPosition]()

	shape := silo.NewShape("plain", pos)
	entities, err := w.NewEntitiesOfShape(1, shape)
	if err != nil {
		t.Fatalf("NewEntitiesOfShape: %v", err)
	}

	p := pos.GetFromEntity(entities[0])
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("expected zero-valued position, got %+v", p)
	}
}
