// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

// Find returns the first component of id that implements T.
//
// Capabilities are interfaces; Find is the safe downcast used to ask
// "does this node have capability T".
func Find[T any](h Hierarchy, id NodeID) (T, bool) {
	for _, c := range h.Components(id) {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Has reports whether id carries a component implementing T.
func Has[T any](h Hierarchy, id NodeID) bool {
	_, ok := Find[T](h, id)
	return ok
}

// Walk calls fn for every strict descendant of id in depth-first pre-order.
// Returning false from fn skips the subtree below that node.
func Walk(h Hierarchy, id NodeID, fn func(NodeID) bool) {
	for _, c := range h.Children(id) {
		if fn(c) {
			Walk(h, c, fn)
		}
	}
}

// Depth returns the number of ancestors of id.
func Depth(h Hierarchy, id NodeID) int {
	d := 0
	for p, ok := h.Parent(id); ok; p, ok = h.Parent(p) {
		d++
	}
	return d
}
