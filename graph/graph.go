// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"errors"
	"slices"
)

// Graph errors.
var (
	// ErrUnknownNode is returned when an operation names a node that does not exist.
	ErrUnknownNode = errors.New("graph: unknown node")

	// ErrCycle is returned when reparenting would make a node its own ancestor.
	ErrCycle = errors.New("graph: reparenting would create a cycle")

	// ErrNilComponent is returned when attaching a nil component.
	ErrNilComponent = errors.New("graph: nil component")
)

// NodeID identifies a node within a Graph.
// The zero value is never assigned to a node and is used as "no node".
type NodeID uint32

// None is the NodeID that refers to no node. Roots have None as parent.
const None NodeID = 0

// Component is a capability attached to a node. The graph stores
// components opaquely; consumers find them with Find.
type Component any

// Hierarchy is the read-only view of a scene graph.
//
// Relations are expressed through ids rather than pointers, so a holder of
// a NodeID never keeps the referenced node alive.
type Hierarchy interface {
	// Exists reports whether id names a node.
	Exists(id NodeID) bool

	// Parent returns the parent of id. ok is false for roots and unknown ids.
	Parent(id NodeID) (parent NodeID, ok bool)

	// Children returns the direct children of id in insertion order.
	Children(id NodeID) []NodeID

	// ActiveInHierarchy reports whether id and all of its ancestors are active.
	ActiveInHierarchy(id NodeID) bool

	// Components returns the components attached to id.
	Components(id NodeID) []Component
}

// Observer receives structural change notifications from a Graph.
type Observer interface {
	// Reparented is called after id moved under a new parent.
	Reparented(id NodeID)

	// ActiveChanged is called after the local active flag of id changed.
	ActiveChanged(id NodeID, active bool)

	// Removed is called for every node of a removed subtree, deepest first,
	// before the node is forgotten by the graph.
	Removed(id NodeID)
}

type node struct {
	name       string
	parent     NodeID
	children   []NodeID
	active     bool
	components []Component
}

// Graph is an in-memory scene graph.
//
// Graph is not safe for concurrent use. It is meant to be driven from the
// thread that runs the render pass.
type Graph struct {
	nodes     map[NodeID]*node
	next      NodeID
	observers []Observer
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[NodeID]*node),
	}
}

// Observe registers o for structural change notifications.
func (g *Graph) Observe(o Observer) {
	if o == nil {
		return
	}
	g.observers = append(g.observers, o)
}

// Add creates an active node named name under parent and returns its id.
// Pass None as parent to create a root.
func (g *Graph) Add(name string, parent NodeID) (NodeID, error) {
	if parent != None {
		if _, ok := g.nodes[parent]; !ok {
			return None, ErrUnknownNode
		}
	}

	g.next++
	id := g.next
	g.nodes[id] = &node{
		name:   name,
		parent: parent,
		active: true,
	}
	if parent != None {
		p := g.nodes[parent]
		p.children = append(p.children, id)
	}
	return id, nil
}

// MustAdd is like Add but panics on error. It is intended for building
// fixed hierarchies in tests and examples.
func (g *Graph) MustAdd(name string, parent NodeID) NodeID {
	id, err := g.Add(name, parent)
	if err != nil {
		panic(err)
	}
	return id
}

// Exists implements Hierarchy.
func (g *Graph) Exists(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Name returns the name of id, or "" for unknown ids.
func (g *Graph) Name(id NodeID) string {
	if n, ok := g.nodes[id]; ok {
		return n.name
	}
	return ""
}

// Parent implements Hierarchy.
func (g *Graph) Parent(id NodeID) (NodeID, bool) {
	n, ok := g.nodes[id]
	if !ok || n.parent == None {
		return None, false
	}
	return n.parent, true
}

// Children implements Hierarchy. The returned slice must not be modified.
func (g *Graph) Children(id NodeID) []NodeID {
	if n, ok := g.nodes[id]; ok {
		return n.children
	}
	return nil
}

// Components implements Hierarchy. The returned slice must not be modified.
func (g *Graph) Components(id NodeID) []Component {
	if n, ok := g.nodes[id]; ok {
		return n.components
	}
	return nil
}

// Active returns the local active flag of id.
func (g *Graph) Active(id NodeID) bool {
	n, ok := g.nodes[id]
	return ok && n.active
}

// ActiveInHierarchy implements Hierarchy.
func (g *Graph) ActiveInHierarchy(id NodeID) bool {
	for id != None {
		n, ok := g.nodes[id]
		if !ok || !n.active {
			return false
		}
		id = n.parent
	}
	return true
}

// SetActive changes the local active flag of id and notifies observers
// when the flag actually changed.
func (g *Graph) SetActive(id NodeID, active bool) error {
	n, ok := g.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if n.active == active {
		return nil
	}
	n.active = active
	for _, o := range g.observers {
		o.ActiveChanged(id, active)
	}
	return nil
}

// SetParent moves id under parent. Pass None to make id a root.
// Observers are notified after the move.
func (g *Graph) SetParent(id, parent NodeID) error {
	n, ok := g.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if parent != None {
		if _, ok := g.nodes[parent]; !ok {
			return ErrUnknownNode
		}
		if parent == id || g.IsAncestor(id, parent) {
			return ErrCycle
		}
	}
	if n.parent == parent {
		return nil
	}

	if n.parent != None {
		old := g.nodes[n.parent]
		old.children = slices.DeleteFunc(old.children, func(c NodeID) bool { return c == id })
	}
	n.parent = parent
	if parent != None {
		p := g.nodes[parent]
		p.children = append(p.children, id)
	}

	for _, o := range g.observers {
		o.Reparented(id)
	}
	return nil
}

// IsAncestor reports whether ancestor is a strict ancestor of id.
func (g *Graph) IsAncestor(ancestor, id NodeID) bool {
	for p, ok := g.Parent(id); ok; p, ok = g.Parent(p) {
		if p == ancestor {
			return true
		}
	}
	return false
}

// Remove deletes id and its whole subtree. Observers see every removed
// node, deepest first.
func (g *Graph) Remove(id NodeID) error {
	n, ok := g.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if n.parent != None {
		p := g.nodes[n.parent]
		p.children = slices.DeleteFunc(p.children, func(c NodeID) bool { return c == id })
	}
	g.remove(id)
	return nil
}

func (g *Graph) remove(id NodeID) {
	n := g.nodes[id]
	for _, c := range slices.Clone(n.children) {
		g.remove(c)
	}
	for _, o := range g.observers {
		o.Removed(id)
	}
	delete(g.nodes, id)
}

// Attach adds c to the components of id.
func (g *Graph) Attach(id NodeID, c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	n, ok := g.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	n.components = append(n.components, c)
	return nil
}

// Detach removes c from the components of id. It reports whether c was attached.
func (g *Graph) Detach(id NodeID, c Component) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	before := len(n.components)
	n.components = slices.DeleteFunc(n.components, func(x Component) bool { return x == c })
	return len(n.components) != before
}
