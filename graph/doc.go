// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package graph provides a minimal scene graph: nodes addressed by id,
// parent/child relations, active flags and a per-node component table.
//
// Components are capabilities. A node "is a soft mask" or "is maskable"
// because one of its components implements the corresponding interface,
// which callers test with Find:
//
//	g := graph.New()
//	root := g.MustAdd("canvas", graph.None)
//	panel := g.MustAdd("panel", root)
//	_ = g.Attach(panel, region)
//
//	if m, ok := graph.Find[mask.SoftMask](g, panel); ok {
//	    // panel carries a soft mask
//	}
//
// Structural changes (reparenting, activation, removal) are reported to
// registered Observers so that dependent caches can be invalidated.
package graph
