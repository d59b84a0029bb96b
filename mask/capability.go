// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mask

import (
	"github.com/gogpu/softmask"
	"github.com/gogpu/softmask/graph"
	"github.com/gogpu/softmask/material"
)

// SoftMask is the capability of a node that attenuates the visibility of
// its descendants through an alpha buffer.
type SoftMask interface {
	// SoftMaskEnabled reports whether the mask is active and enabled.
	SoftMaskEnabled() bool

	// Buffer returns the texture the mask renders its alpha into.
	Buffer() *material.Texture

	// StencilClipping reports whether the mask also clips its descendants
	// to its rectangle through the stencil buffer.
	StencilClipping() bool

	// UseStencilOutsideScreen reports whether this mask requests stencil
	// clipping outside the on-screen bounds.
	UseStencilOutsideScreen() bool

	// AllowDynamicResolution and AllowRenderScale are per-mask render
	// toggles bound on variants without being part of their key.
	AllowDynamicResolution() bool
	AllowRenderScale() bool

	// AlphaClipThreshold and Subtract are honored in preview mode.
	AlphaClipThreshold() float32
	Subtract() bool
}

// StencilMask is the capability of a hard (stencil-only) mask.
type StencilMask interface {
	StencilEnabled() bool
}

// Boundary is the capability of a node that starts an independently
// sorted render root. Masks above a boundary do not apply below it.
type Boundary interface {
	IsolatesMasking() bool
}

// Canvas is the render context a drawable belongs to.
type Canvas interface {
	// Stereo reports whether the canvas is rendered by a stereo camera.
	Stereo() bool
}

// Drawable is the render-side component of a maskable node.
type Drawable interface {
	// Canvas returns the canvas the drawable renders into, or nil.
	Canvas() Canvas

	// Maskable reports whether the drawable accepts masking at all.
	Maskable() bool

	// SetMaterialDirty asks the renderer to resolve the material again.
	SetMaterialDirty()
}

// TerminalShape is implemented by drawables that define a mask region
// themselves. Such drawables are never masked.
type TerminalShape interface {
	MaskingShape()
}

// RenderContext is the project-wide configuration queried on every
// resolution. *softmask.Settings implements it.
type RenderContext interface {
	SoftMaskingEnabled() bool
	StereoEnabled() bool
	StencilOutsideScreen() bool
	Fallback() softmask.Fallback
	Preview() bool
}

// Factory creates masked variants of base materials.
// *material.MaskedFactory implements it.
type Factory interface {
	CreateMaskedVariant(
		base *material.Material,
		buffer *material.Texture,
		depth int,
		stencilBits uint32,
		stereo bool,
		fallback softmask.Fallback,
	) (*material.Material, error)
}

// Graph is the scene graph view the resolver walks.
type Graph = graph.Hierarchy

// Region is a soft mask component with plain configurable fields.
// After changing fields of an attached Region, call System.MaskChanged.
type Region struct {
	Enabled              bool
	StencilClip          bool
	StencilOutsideScreen bool
	DynamicResolution    bool
	RenderScale          bool
	Threshold            float32
	SubtractMode         bool

	buffer *material.Texture
}

// NewRegion creates an enabled soft mask rendering into buffer that also
// clips its descendants to its rectangle through the stencil.
func NewRegion(buffer *material.Texture) *Region {
	return &Region{
		Enabled:     true,
		StencilClip: true,
		buffer:      buffer,
	}
}

// SoftMaskEnabled implements SoftMask.
func (r *Region) SoftMaskEnabled() bool { return r.Enabled }

// Buffer implements SoftMask.
func (r *Region) Buffer() *material.Texture { return r.buffer }

// StencilClipping implements SoftMask.
func (r *Region) StencilClipping() bool { return r.StencilClip }

// UseStencilOutsideScreen implements SoftMask.
func (r *Region) UseStencilOutsideScreen() bool { return r.StencilOutsideScreen }

// AllowDynamicResolution implements SoftMask.
func (r *Region) AllowDynamicResolution() bool { return r.DynamicResolution }

// AllowRenderScale implements SoftMask.
func (r *Region) AllowRenderScale() bool { return r.RenderScale }

// AlphaClipThreshold implements SoftMask.
func (r *Region) AlphaClipThreshold() float32 { return r.Threshold }

// Subtract implements SoftMask.
func (r *Region) Subtract() bool { return r.SubtractMode }

// Stencil is a hard mask component.
type Stencil struct {
	Enabled bool
}

// StencilEnabled implements StencilMask.
func (s *Stencil) StencilEnabled() bool { return s.Enabled }

// Isolation marks a node as an independent render root.
type Isolation struct{}

// IsolatesMasking implements Boundary.
func (Isolation) IsolatesMasking() bool { return true }
