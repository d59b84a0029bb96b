// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mask

import "github.com/gogpu/softmask/graph"

// MarkSubtreeDirty asks every maskable descendant of id for a redraw.
//
// Only children that are maskable nodes are visited and recursed into; a
// non-maskable child ends the walk along its branch. Stencil resolutions
// are left untouched. It returns the number of nodes notified.
func (s *System) MarkSubtreeDirty(id graph.NodeID) int {
	count := 0
	for _, c := range s.graph.Children(id) {
		n, ok := s.nodes[c]
		if !ok {
			continue
		}
		n.NotifyDirty()
		count++
		count += s.MarkSubtreeDirty(c)
	}
	return count
}

// invalidateSubtree marks the stencil resolution of id and every maskable
// node below it stale and asks each for a redraw. Unlike MarkSubtreeDirty
// it walks through non-maskable nodes: the ancestor chain of every
// descendant changed. It returns the number of nodes invalidated.
func (s *System) invalidateSubtree(id graph.NodeID, self bool) int {
	count := 0
	if n, ok := s.nodes[id]; ok && self {
		n.AncestryChanged()
		count++
	}
	graph.Walk(s.graph, id, func(c graph.NodeID) bool {
		if n, ok := s.nodes[c]; ok {
			n.AncestryChanged()
			count++
		}
		return true
	})
	return count
}
