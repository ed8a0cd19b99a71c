package silo

import (
	"fmt"
	"reflect"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

type archetypeID uint32

// archetype is the runtime embodiment of one component set: a bitmask
// identity plus the columnar table.Table backing every row. Column
// storage, lockstep iteration, and per-component-id dispatch are all
// delegated to table.Table/table.Accessor rather than reimplemented here.
type archetype struct {
	id      archetypeID
	bitmask mask.Mask
	table   table.Table
}

func newArchetype(schema table.Schema, entryIndex table.EntryIndex, id archetypeID, m mask.Mask, components ...Component) (*archetype, error) {
	elementTypes := make([]table.ElementType, len(components))
	for i, comp := range components {
		elementTypes[i] = comp
	}
	tbl, err := table.NewTableBuilder().
		WithSchema(schema).
		WithEntryIndex(entryIndex).
		WithElementTypes(elementTypes...).
		WithEvents(Config.tableEvents).
		Build()
	if err != nil {
		return nil, fmt.Errorf("building archetype table: %w", err)
	}
	return &archetype{
		id:      id,
		bitmask: m,
		table:   tbl,
	}, nil
}

// ID returns the archetype's store-local identifier.
func (a *archetype) ID() uint32 {
	return uint32(a.id)
}

// Bitmask returns the component-set bitmask identifying this archetype.
func (a *archetype) Bitmask() mask.Mask {
	return a.bitmask
}

// Table returns the columnar table backing this archetype's rows.
func (a *archetype) Table() table.Table {
	return a.table
}

// Generate inserts n new rows, seeding any column with a registered default
// from defaults (component value type -> default value), else leaving it
// zero-valued.
func (a *archetype) Generate(n int, defaults map[reflect.Type]any) ([]table.Entry, error) {
	entries, err := a.table.NewEntries(n)
	if err != nil {
		return nil, fmt.Errorf("generating %d rows: %w", n, err)
	}
	if len(defaults) == 0 {
		return entries, nil
	}
	for _, row := range a.table.Rows() {
		value, ok := defaults[reflect.Value(row).Type().Elem()]
		if !ok {
			continue
		}
		for _, entry := range entries {
			if err := setRowValue(row, entry.Index(), value); err != nil {
				return nil, err
			}
		}
	}
	return entries, nil
}

// Drop removes id's row from every column of this archetype. The
// archetype itself persists, even if now empty.
func (a *archetype) Drop(id EntityID) error {
	_, err := a.table.DeleteEntries(int(id))
	return err
}
