package silo

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// QueryOperation names the boolean operator a compositeNode applies to its
// components and children.
type QueryOperation int

const (
	OpAnd QueryOperation = iota
	OpOr
	OpNot
)

// QueryNode is one node of a query tree, evaluable against a given
// Archetype within world (component row indices are assigned per-World).
type QueryNode interface {
	Evaluate(world *World, archetype Archetype) bool
}

// Query is a composable, mutable query tree. Build one with NewQuery, then
// grow it by calling And/Or/Not with Components, []Component, or other
// QueryNodes. An empty Query (no And/Or/Not called yet) matches every
// archetype.
type Query interface {
	QueryNode
	And(items ...any) QueryNode
	Or(items ...any) QueryNode
	Not(items ...any) QueryNode
}

type compositeNode struct {
	op         QueryOperation
	children   []QueryNode
	components []Component
}

type leafNode struct {
	components []Component
}

type query struct {
	root QueryNode
}

// NewQuery creates a new, initially empty Query.
func NewQuery() Query {
	return &query{}
}

func newCompositeNode(op QueryOperation, components []Component) *compositeNode {
	return &compositeNode{op: op, components: components}
}

func (n *compositeNode) Evaluate(world *World, archetype Archetype) bool {
	var nodeMask mask.Mask
	for _, comp := range n.components {
		nodeMask.Mark(world.RowIndexFor(comp))
	}
	archeMask := archetype.Bitmask()

	switch n.op {
	case OpAnd:
		if !archeMask.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(world, archetype) {
				return false
			}
		}
		return true
	case OpOr:
		if archeMask.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(world, archetype) {
				return true
			}
		}
		return false
	case OpNot:
		if len(n.components) > 0 && !archeMask.ContainsNone(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if child.Evaluate(world, archetype) {
				return false
			}
		}
		return true
	}
	return false
}

func (n *leafNode) Evaluate(world *World, archetype Archetype) bool {
	var nodeMask mask.Mask
	for _, comp := range n.components {
		nodeMask.Mark(world.RowIndexFor(comp))
	}
	return archetype.Bitmask().ContainsAll(nodeMask)
}

// And adds (or starts) an AND node over items, the intersection of each
// Component's presence and each child QueryNode's result.
func (q *query) And(items ...any) QueryNode {
	components, children := processQueryItems(items...)
	node := newCompositeNode(OpAnd, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Or adds (or starts) an OR node over items.
func (q *query) Or(items ...any) QueryNode {
	components, children := processQueryItems(items...)
	node := newCompositeNode(OpOr, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Not adds (or starts) a NOT node over items.
func (q *query) Not(items ...any) QueryNode {
	components, children := processQueryItems(items...)
	node := newCompositeNode(OpNot, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) Evaluate(world *World, archetype Archetype) bool {
	if q.root == nil {
		return true
	}
	return q.root.Evaluate(world, archetype)
}

func validateQueryItems(items ...any) error {
	for _, item := range items {
		switch item.(type) {
		case Component, []Component, QueryNode, Query:
			continue
		default:
			return fmt.Errorf("invalid query item type: %T; only Component, []Component, or QueryNode are allowed", item)
		}
	}
	return nil
}

func processQueryItems(items ...any) ([]Component, []QueryNode) {
	if err := validateQueryItems(items...); err != nil {
		panic(bark.AddTrace(err))
	}
	var components []Component
	var children []QueryNode
	for _, item := range items {
		switch v := item.(type) {
		case Component:
			components = append(components, v)
		case []Component:
			components = append(components, v...)
		case QueryNode:
			children = append(children, v)
		}
	}
	return components, children
}

// andMask reports the component row indices q requires, if q reduces to a
// pure AND of component leaves with no Or/Not anywhere in the tree. When ok,
// the Cursor resolves the query via the Archetype Index's trie instead of
// scanning every stored archetype. A nil query (or one with no root yet)
// is the trivially-true empty AND.
func andMask(world *World, q QueryNode) ([]uint32, bool) {
	switch n := q.(type) {
	case nil:
		return nil, true
	case *query:
		if n.root == nil {
			return nil, true
		}
		return andMask(world, n.root)
	case *leafNode:
		rows := make([]uint32, len(n.components))
		for i, c := range n.components {
			rows[i] = world.RowIndexFor(c)
		}
		return rows, true
	case *compositeNode:
		if n.op != OpAnd {
			return nil, false
		}
		rows := make([]uint32, len(n.components))
		for i, c := range n.components {
			rows[i] = world.RowIndexFor(c)
		}
		for _, child := range n.children {
			childRows, ok := andMask(world, child)
			if !ok {
				return nil, false
			}
			rows = append(rows, childRows...)
		}
		return rows, true
	default:
		return nil, false
	}
}
