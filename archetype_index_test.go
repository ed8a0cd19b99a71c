package silo

import (
	"testing"

	"github.com/TheBitDrifter/mask"
)

func maskFromBits(bits ...uint32) mask.Mask {
	var m mask.Mask
	for _, b := range bits {
		m.Mark(b)
	}
	return m
}

func TestArchetypeIndexInsertContains(t *testing.T) {
	idx := newArchetypeIndex()
	m := maskFromBits(1, 5, 9)

	if idx.Contains(m) {
		t.Fatal("index reports a mask it was never given")
	}

	idx.Insert(m)
	if !idx.Contains(m) {
		t.Fatal("index does not contain a mask it was just given")
	}
	if idx.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", idx.Len())
	}

	// Idempotent: re-inserting does not grow the index.
	idx.Insert(m)
	if idx.Len() != 1 {
		t.Fatalf("Len() after re-insert = %d, want 1", idx.Len())
	}
}

func TestArchetypeIndexSupersets(t *testing.T) {
	idx := newArchetypeIndex()

	posOnly := maskFromBits(0)
	posVel := maskFromBits(0, 1)
	posVelName := maskFromBits(0, 1, 2)
	velOnly := maskFromBits(1)

	for _, m := range []mask.Mask{posOnly, posVel, posVelName, velOnly} {
		idx.Insert(m)
	}

	// Query {position}: every archetype that has bit 0 set.
	got := collectSupersets(idx, maskFromBits(0))
	want := map[mask.Mask]bool{posOnly: true, posVel: true, posVelName: true}
	assertSameSet(t, got, want)

	// Query {position, velocity}: only archetypes with both bits.
	got = collectSupersets(idx, maskFromBits(0, 1))
	want = map[mask.Mask]bool{posVel: true, posVelName: true}
	assertSameSet(t, got, want)

	// Empty query matches every stored mask.
	got = collectSupersets(idx, mask.Mask{})
	want = map[mask.Mask]bool{posOnly: true, posVel: true, posVelName: true, velOnly: true}
	assertSameSet(t, got, want)

	// Query for a bit nothing carries: no results.
	got = collectSupersets(idx, maskFromBits(50))
	if len(got) != 0 {
		t.Fatalf("query for an absent bit matched %d masks, want 0", len(got))
	}
}

func collectSupersets(idx *archetypeIndex, q mask.Mask) []mask.Mask {
	var out []mask.Mask
	for m := range idx.Supersets(q) {
		out = append(out, m)
	}
	return out
}

func assertSameSet(t *testing.T, got []mask.Mask, want map[mask.Mask]bool) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d masks, want %d (got=%v)", len(got), len(want), got)
	}
	for _, m := range got {
		if !want[m] {
			t.Fatalf("unexpected mask in results: %v", m)
		}
	}
}

func TestArchetypeIndexSupersetsStopsEarly(t *testing.T) {
	idx := newArchetypeIndex()
	idx.Insert(maskFromBits(0))
	idx.Insert(maskFromBits(0, 1))
	idx.Insert(maskFromBits(0, 1, 2))

	seen := 0
	for range idx.Supersets(mask.Mask{}) {
		seen++
		if seen == 1 {
			break
		}
	}
	if seen != 1 {
		t.Fatalf("yield stop was not honored, saw %d", seen)
	}
}
