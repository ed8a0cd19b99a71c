package silo

import (
	"fmt"
	"reflect"

	"github.com/TheBitDrifter/table"
)

// Shape is a named, reusable declaration of a component set plus optional
// per-component defaults. Go has no type-level mixins, so a Shape stands in
// at runtime for a compile-time component-set trait: declare it once, reuse
// it at every NewEntitiesOfShape call site.
type Shape struct {
	Name       string
	components []Component
	defaults   map[reflect.Type]any
}

// NewShape declares a shape over the given components. The component set is
// fixed for the lifetime of the Shape value.
func NewShape(name string, components ...Component) *Shape {
	return &Shape{
		Name:       name,
		components: components,
	}
}

// Default registers value as the initial value for component c on entities
// created from this shape, in place of Go's usual zero value. value's
// concrete type must match c's component value type.
func (s *Shape) Default(c Component, value any) *Shape {
	if s.defaults == nil {
		s.defaults = make(map[reflect.Type]any)
	}
	s.defaults[reflect.TypeOf(value)] = value
	return s
}

// Components returns the shape's declared component set.
func (s *Shape) Components() []Component {
	return s.components
}

// setRowValue assigns value into row at index, failing if value's type
// doesn't match the row's element type. Grounded on entity.go's
// AddComponentWithValue reflect-assignment idiom.
func setRowValue(row table.Row, index int, value any) error {
	rv := reflect.Value(row)
	elemType := rv.Type().Elem()
	valueType := reflect.TypeOf(value)
	if valueType != elemType {
		return fmt.Errorf("default value type %v does not match component type %v", valueType, elemType)
	}
	rv.Index(index).Set(reflect.ValueOf(value))
	return nil
}
