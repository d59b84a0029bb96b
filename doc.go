// Package softmask resolves soft-maskable material variants for scene
// graph drawables.
//
// # Overview
//
// A soft mask is an ancestor-defined alpha buffer that attenuates the
// visibility of the drawables below it. Rendering a drawable through its
// masks needs a variant of its material that samples the right mask level
// and tests the right stencil bits. softmask computes that state per node,
// caches it until the hierarchy changes, and shares one variant between all
// drawables that would render identically.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/softmask"
//		"github.com/gogpu/softmask/graph"
//		"github.com/gogpu/softmask/mask"
//		"github.com/gogpu/softmask/material"
//	)
//
//	g := graph.New()
//	sys, _ := mask.NewSystem(g, softmask.NewSettings(), material.NewMaskedFactory(), nil)
//	sys.Watch(g)
//
//	n, _ := sys.Add(id, drawable)
//	mat := n.ResolveMaterial(base)
//
// # Architecture
//
// The library is organized into:
//   - softmask: project settings and logging
//   - graph: scene graph with component capabilities
//   - variant: reference counted variant cache keyed by 128-bit keys
//   - material: materials, mask buffers and the masked variant factory
//   - mask: stencil resolution, ignore rules and per-node resolution
//
// # Logging
//
// The library is silent by default. Use SetLogger to route its slog output.
package softmask

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
