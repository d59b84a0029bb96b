// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mask

import (
	"errors"

	"github.com/gogpu/softmask"
	"github.com/gogpu/softmask/graph"
	"github.com/gogpu/softmask/material"
	"github.com/gogpu/softmask/variant"
)

// System errors.
var (
	// ErrNilDrawable is returned when registering a node without a drawable.
	ErrNilDrawable = errors.New("mask: nil drawable")

	// ErrDuplicateNode is returned when registering a node twice.
	ErrDuplicateNode = errors.New("mask: node already maskable")

	// ErrNilDependency is returned by NewSystem when a required
	// collaborator is missing.
	ErrNilDependency = errors.New("mask: nil dependency")
)

// VariantCache is the cache of masked material variants.
type VariantCache = variant.Cache[*material.Material]

// System owns the maskable nodes of one scene graph.
//
// It is the capability table for the maskable capability: a node is
// maskable exactly when the System holds a Node for it. The System also
// translates structural graph changes into node lifecycle events; pass it
// to graph.Graph.Observe (or call Watch) to keep nodes in sync.
//
// System is not safe for concurrent use. The variant cache it is given may
// be shared by several systems.
type System struct {
	graph   Graph
	cache   *VariantCache
	factory Factory
	ctx     RenderContext
	nodes   map[graph.NodeID]*Node
}

// NewSystem creates a System over g. Variants are created by factory and
// shared through cache; pass a nil cache to give the system its own.
func NewSystem(g Graph, ctx RenderContext, factory Factory, cache *VariantCache) (*System, error) {
	if g == nil || ctx == nil || factory == nil {
		return nil, ErrNilDependency
	}
	if cache == nil {
		cache = variant.New[*material.Material]()
	}
	return &System{
		graph:   g,
		cache:   cache,
		factory: factory,
		ctx:     ctx,
		nodes:   make(map[graph.NodeID]*Node),
	}, nil
}

// Watch subscribes the system to structural changes of g.
func (s *System) Watch(g *graph.Graph) {
	g.Observe(s)
}

// Cache returns the variant cache of the system.
func (s *System) Cache() *VariantCache { return s.cache }

// Add makes id maskable with drawable d. The node starts enabled with an
// unresolved stencil state.
func (s *System) Add(id graph.NodeID, d Drawable) (*Node, error) {
	if d == nil {
		return nil, ErrNilDrawable
	}
	if !s.graph.Exists(id) {
		return nil, graph.ErrUnknownNode
	}
	if _, ok := s.nodes[id]; ok {
		return nil, ErrDuplicateNode
	}

	n := &Node{
		sys:        s,
		id:         id,
		drawable:   d,
		enabled:    true,
		state:      StateUninitialized,
		resolution: unresolved,
	}
	s.nodes[id] = n
	softmask.Logger().Debug("mask: node added", "node", id)
	return n, nil
}

// Node returns the maskable node of id.
func (s *System) Node(id graph.NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Maskable is the capability lookup used by the ignore predicate.
func (s *System) Maskable(id graph.NodeID) (*Node, bool) {
	return s.Node(id)
}

// Len returns the number of maskable nodes.
func (s *System) Len() int { return len(s.nodes) }

// Remove destroys the maskable node of id. It reports whether id was maskable.
func (s *System) Remove(id graph.NodeID) bool {
	n, ok := s.nodes[id]
	if !ok {
		return false
	}
	n.Destroy()
	delete(s.nodes, id)
	return true
}

// AncestryChanged invalidates the stencil resolution of id and of every
// maskable node below it. It returns the number of nodes invalidated.
func (s *System) AncestryChanged(id graph.NodeID) int {
	return s.invalidateSubtree(id, true)
}

// MaskChanged is called after the mask configuration of id changed.
// Every maskable descendant re-resolves on its next use.
func (s *System) MaskChanged(id graph.NodeID) int {
	return s.invalidateSubtree(id, false)
}

// Reparented implements graph.Observer.
func (s *System) Reparented(id graph.NodeID) {
	s.AncestryChanged(id)
}

// ActiveChanged implements graph.Observer. Every maskable node in the
// subtree of id is activated or deactivated according to its new
// activity in the hierarchy.
func (s *System) ActiveChanged(id graph.NodeID, _ bool) {
	s.syncActive(id)
	graph.Walk(s.graph, id, func(c graph.NodeID) bool {
		s.syncActive(c)
		return true
	})
}

func (s *System) syncActive(id graph.NodeID) {
	n, ok := s.nodes[id]
	if !ok || n.state == StateDestroyed || !n.enabled {
		return
	}
	if s.graph.ActiveInHierarchy(id) {
		n.activated()
	} else {
		n.deactivated()
	}
}

// Removed implements graph.Observer.
func (s *System) Removed(id graph.NodeID) {
	s.Remove(id)
}

// Close destroys every node of the system.
func (s *System) Close() {
	for id, n := range s.nodes {
		n.Destroy()
		delete(s.nodes, id)
	}
}
