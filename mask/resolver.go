// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mask

import (
	"github.com/gogpu/softmask/graph"
	"github.com/gogpu/softmask/material"
)

// DepthNone is the mask depth of a node no soft mask governs.
const DepthNone = -1

// MaxDepth bounds supported soft mask nesting. Nodes at depth MaxDepth or
// deeper render unmasked.
const MaxDepth = material.MaxDepth

// Resolution is the masking state of a node derived from its ancestors.
type Resolution struct {
	// StencilBits has one bit per enclosing mask level, the outermost mask
	// at bit 0. A bit is set when that level clips through the stencil.
	StencilBits uint32

	// Depth is the nesting index of the governing soft mask among the soft
	// masks above the node (0 for the outermost), or DepthNone.
	Depth int

	// Governing is the nearest active soft mask ancestor, or graph.None.
	// It is a lookup key, never an owning reference.
	Governing graph.NodeID

	// SoftLevels has the bits of StencilBits that belong to soft mask
	// levels, set or not.
	SoftLevels uint32

	// UseStencil is set when any enclosing soft mask, or the project
	// setting, requests stencil clipping outside the screen bounds.
	UseStencil bool
}

// WithStencilOutsideScreen returns r as seen under the project-wide
// stencil-outside-screen setting: when on, every soft mask level clips
// through the stencil.
func (r Resolution) WithStencilOutsideScreen(on bool) Resolution {
	if on {
		r.StencilBits |= r.SoftLevels
		r.UseStencil = true
	}
	return r
}

// Governed reports whether a soft mask governs the node.
func (r Resolution) Governed() bool {
	return r.Governing != graph.None
}

// unresolved is the resolution of inactive nodes.
var unresolved = Resolution{Depth: DepthNone, Governing: graph.None}

// ResolveStencil walks the ancestors of id and computes its stencil bits,
// soft mask depth and governing soft mask.
//
// The walk starts at the parent: a node's own mask capability never masks
// the node itself. It stops at the root or after visiting a Boundary.
// Inactive masks are skipped.
//
// ResolveStencil is a pure function of the ancestor chain. Project
// settings are applied on top with Resolution.WithStencilOutsideScreen.
func ResolveStencil(g Graph, id graph.NodeID) Resolution {
	if !g.ActiveInHierarchy(id) {
		return unresolved
	}

	r := unresolved
	soft := 0
	for p, ok := g.Parent(id); ok; p, ok = g.Parent(p) {
		if sm, ok := graph.Find[SoftMask](g, p); ok && sm.SoftMaskEnabled() {
			if soft == 0 {
				r.Governing = p
			}
			soft++
			clip := sm.StencilClipping() || sm.UseStencilOutsideScreen()
			r.StencilBits = r.StencilBits<<1 | b2u(clip)
			r.SoftLevels = r.SoftLevels<<1 | 1
			r.UseStencil = r.UseStencil || sm.UseStencilOutsideScreen()
		} else if st, ok := graph.Find[StencilMask](g, p); ok && st.StencilEnabled() {
			r.StencilBits = r.StencilBits<<1 | 1
			r.SoftLevels <<= 1
		}

		if b, ok := graph.Find[Boundary](g, p); ok && b.IsolatesMasking() {
			break
		}
	}

	if soft > 0 {
		r.Depth = soft - 1
	}
	return r
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
