package silo

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

// archetypeIndex is a bitwise trie over component-set bitmasks. The path
// from the root encodes bits MaxComponents-1 down to 0; Supersets walks it
// depth-first, pruning any subtree that cannot satisfy the query.
//
// This has no ready-made library equivalent: enumerating stored bitmasks
// that are supersets of a query mask isn't the same problem content-
// addressed hashing or byte-range radix storage solve, so it's built
// from scratch rather than adapted from any one source.
type archetypeIndex struct {
	root *trieNode
	size int
}

type trieNode struct {
	children [2]*trieNode
	mask     mask.Mask
	terminal bool
}

func newArchetypeIndex() *archetypeIndex {
	return &archetypeIndex{root: &trieNode{}}
}

// bitAt reports the value (0 or 1) of bit i in m, using only the Mark/
// ContainsAll surface mask.Mask already exposes — there is no direct
// single-bit accessor.
func bitAt(m mask.Mask, i uint32) int {
	var probe mask.Mask
	probe.Mark(i)
	if m.ContainsAll(probe) {
		return 1
	}
	return 0
}

// Insert adds m to the index. Idempotent: inserting an already-present mask
// is a no-op.
func (idx *archetypeIndex) Insert(m mask.Mask) {
	n := idx.root
	for level := MaxComponents; level > 0; level-- {
		bit := bitAt(m, uint32(level-1))
		if n.children[bit] == nil {
			n.children[bit] = &trieNode{}
		}
		n = n.children[bit]
	}
	if !n.terminal {
		n.terminal = true
		n.mask = m
		idx.size++
	}
}

// Contains reports whether m has been inserted.
func (idx *archetypeIndex) Contains(m mask.Mask) bool {
	n := idx.root
	for level := MaxComponents; level > 0; level-- {
		n = n.children[bitAt(m, uint32(level-1))]
		if n == nil {
			return false
		}
	}
	return n.terminal
}

// Len returns the number of distinct masks currently stored.
func (idx *archetypeIndex) Len() int {
	return idx.size
}

// Supersets lazily yields every stored mask K such that K&q == q (K has at
// least the bits of q set), depth-first, each exactly once. The zero query
// mask matches every stored mask, since every mask is a superset of the
// empty set.
func (idx *archetypeIndex) Supersets(q mask.Mask) iter.Seq[mask.Mask] {
	return func(yield func(mask.Mask) bool) {
		walkSupersets(idx.root, q, MaxComponents, yield)
	}
}

// walkSupersets returns false once yield has asked to stop, so callers can
// unwind the recursion without finishing the traversal.
func walkSupersets(n *trieNode, q mask.Mask, level int, yield func(mask.Mask) bool) bool {
	if n == nil {
		return true
	}
	if level == 0 {
		if n.terminal {
			return yield(n.mask)
		}
		return true
	}
	bit := uint32(level - 1)
	if bitAt(q, bit) == 1 {
		// Query requires this bit: only the 1-subtree can satisfy it.
		return walkSupersets(n.children[1], q, level-1, yield)
	}
	// Query doesn't care about this bit: both subtrees may satisfy it.
	if !walkSupersets(n.children[0], q, level-1, yield) {
		return false
	}
	return walkSupersets(n.children[1], q, level-1, yield)
}
