// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mask resolves, per drawable scene node, the material variant that
// renders the node through the soft masks of its ancestors.
//
// # Overview
//
// A System tracks the maskable nodes of one scene graph. For each node it
// resolves the stencil state contributed by enclosing masks:
//
//   - StencilBits: one bit per enclosing mask level, outermost at bit 0
//   - Depth: nesting index of the nearest soft mask, or DepthNone
//   - Governing: id of the nearest active soft mask
//
// The resolution is cached on the Node until the node is told its ancestor
// chain changed (RequestMaskingRecalculation, System.AncestryChanged or a
// graph reparent notification). Reading it never re-walks a clean chain.
//
// Node.ResolveMaterial turns the resolution into a material. Equal inputs
// share one variant through a reference counted variant.Cache; every
// configuration that cannot be masked falls back to the base material.
//
// # Capabilities
//
// Masks are components attached to graph nodes. The resolver finds them
// with graph.Find:
//
//   - SoftMask: alpha buffer mask (Region is a ready implementation)
//   - StencilMask: hard stencil-only mask (Stencil)
//   - Boundary: isolated render root that masks above do not cross (Isolation)
//
// The maskable capability itself is the System's node table.
//
// # Usage
//
//	g := graph.New()
//	root := g.MustAdd("root", graph.None)
//	panel := g.MustAdd("panel", root)
//	icon := g.MustAdd("icon", panel)
//	_ = g.Attach(panel, mask.NewRegion(material.NewMaskBuffer("panel", 256, 256)))
//
//	sys, _ := mask.NewSystem(g, softmask.NewSettings(), material.NewMaskedFactory(), nil)
//	sys.Watch(g)
//	n, _ := sys.Add(icon, drawable)
//	mat := n.ResolveMaterial(base)
//
// # Thread safety
//
// Nodes and systems are driven from the render thread. The variant cache is
// safe for concurrent use and may be shared between systems.
package mask
