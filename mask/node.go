// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mask

import (
	"github.com/gogpu/softmask"
	"github.com/gogpu/softmask/graph"
	"github.com/gogpu/softmask/material"
	"github.com/gogpu/softmask/variant"
)

// Node is the masking state of one drawable scene node.
//
// A Node caches the stencil resolution of its ancestor chain until told
// the chain changed, and holds at most one handle into the variant cache:
// the one matching its latest resolution.
//
// Node is not safe for concurrent use. All calls happen on the thread that
// runs the render pass.
type Node struct {
	sys      *System
	id       graph.NodeID
	drawable Drawable

	ignoreSelf     bool
	ignoreChildren bool

	enabled    bool
	state      State
	resolution Resolution
	resolves   int

	handle *variant.Handle[*material.Material]
}

// ID returns the scene node id.
func (n *Node) ID() graph.NodeID { return n.id }

// Drawable returns the drawable component of the node.
func (n *Node) Drawable() Drawable { return n.drawable }

// State returns the validity of the cached stencil resolution.
func (n *Node) State() State { return n.state }

// IgnoreSelf reports whether the node's own render is exempt from masking.
func (n *Node) IgnoreSelf() bool { return n.ignoreSelf }

// IgnoreChildren reports whether the node's descendants are exempt from masking.
func (n *Node) IgnoreChildren() bool { return n.ignoreChildren }

// SetIgnoreSelf exempts (or stops exempting) the node's own render from
// masking and asks for a redraw when the flag changed.
func (n *Node) SetIgnoreSelf(v bool) {
	if n.ignoreSelf == v {
		return
	}
	n.ignoreSelf = v
	n.NotifyDirty()
}

// SetIgnoreChildren exempts (or stops exempting) the node's descendants
// from masking and asks every maskable descendant for a redraw when the
// flag changed.
func (n *Node) SetIgnoreChildren(v bool) {
	if n.ignoreChildren == v {
		return
	}
	n.ignoreChildren = v
	n.NotifyDirtyForSubtree()
}

// Active reports whether the node is enabled and active in the hierarchy.
func (n *Node) Active() bool {
	return n.enabled && n.state != StateDestroyed && n.sys.graph.ActiveInHierarchy(n.id)
}

// Material returns the variant the node currently holds, or nil.
func (n *Node) Material() *material.Material {
	if n.handle == nil {
		return nil
	}
	return n.handle.Value()
}

// Key returns the variant key of the held material.
func (n *Node) Key() (variant.Key, bool) {
	if n.handle == nil {
		return variant.Key{}, false
	}
	return n.handle.Key(), true
}

// Cached returns the cached ancestor-chain resolution without recomputing
// it or applying project settings. The value is meaningful only when State
// is StateResolved.
func (n *Node) Cached() Resolution { return n.resolution }

// Resolves returns how many times the ancestor chain has been walked.
func (n *Node) Resolves() int { return n.resolves }

// Stencil returns the node's stencil resolution under the current project
// settings, walking the ancestor chain only when the cached one is invalid.
//
// An inactive node resolves to no governing mask, zero stencil bits and
// DepthNone, and nothing is cached.
func (n *Node) Stencil() Resolution {
	if !n.Active() {
		return unresolved
	}
	return n.chain().WithStencilOutsideScreen(n.sys.ctx.StencilOutsideScreen())
}

// chain returns the cached ancestor-chain resolution, recomputing it when
// invalid.
func (n *Node) chain() Resolution {
	if !n.state.NeedsResolve() {
		return n.resolution
	}

	n.resolution = ResolveStencil(n.sys.graph, n.id)
	n.resolves++
	n.state = n.state.Next(EventResolved)

	softmask.Logger().Debug("mask: stencil resolved",
		"node", n.id,
		"bits", n.resolution.StencilBits,
		"depth", n.resolution.Depth,
		"governing", n.resolution.Governing)
	return n.resolution
}

// RequestMaskingRecalculation marks the cached resolution stale. It is
// called when the ancestor chain or the configuration of a mask above
// may have changed; the next resolution walks the chain again.
func (n *Node) RequestMaskingRecalculation() {
	n.state = n.state.Next(EventAncestryChanged)
}

// NotifyDirty asks the renderer to resolve this node's material again.
func (n *Node) NotifyDirty() {
	if n.drawable != nil {
		n.drawable.SetMaterialDirty()
	}
}

// NotifyDirtyForSubtree asks every maskable descendant for a redraw.
// It returns the number of descendants notified.
func (n *Node) NotifyDirtyForSubtree() int {
	return n.sys.MarkSubtreeDirty(n.id)
}

// governingMask looks up the soft mask of the current resolution.
func (n *Node) governingMask() (SoftMask, bool) {
	r := n.Stencil()
	if !r.Governed() {
		return nil, false
	}
	return graph.Find[SoftMask](n.sys.graph, r.Governing)
}

// canMask reports whether the node and its drawable can be masked at all.
func (n *Node) canMask(base *material.Material) bool {
	if base == nil || n.drawable == nil || !n.Active() {
		return false
	}
	if n.drawable.Canvas() == nil || !n.drawable.Maskable() {
		return false
	}
	if _, terminal := n.drawable.(TerminalShape); terminal {
		return false
	}
	return true
}

// ResolveMaterial returns the material the node's drawable should render
// with instead of base.
//
// It returns base unchanged whenever masking does not apply: masking is
// disabled globally, the node cannot be masked, the node is ignored, no
// soft mask governs it or it is nested too deep. In every such case the
// node's hold on a previous variant is released.
//
// Otherwise it returns the shared variant for the node's current masking
// state, creating it on first use. Calling ResolveMaterial again with
// nothing changed returns the same instance without touching holder counts.
func (n *Node) ResolveMaterial(base *material.Material) *material.Material {
	ctx := n.sys.ctx
	if !ctx.SoftMaskingEnabled() || !n.canMask(base) || n.ignoreSelf {
		n.releaseMaterial()
		return base
	}

	r := n.Stencil()
	if n.IsIgnored() {
		n.releaseMaterial()
		return base
	}
	sm, ok := n.governingMask()
	if !ok || r.Depth < 0 || r.Depth >= MaxDepth {
		n.releaseMaterial()
		return base
	}
	buffer := sm.Buffer()
	if buffer == nil {
		n.releaseMaterial()
		return base
	}

	stereo := ctx.StereoEnabled() && n.drawable.Canvas().Stereo()
	preview := ctx.Preview()

	key := DeriveKey(KeyInputs{
		Base:        base,
		Buffer:      buffer,
		StencilBits: r.StencilBits,
		Depth:       r.Depth,
		Stereo:      stereo,
		UseStencil:  r.UseStencil,
		Preview:     preview,
		Threshold:   sm.AlphaClipThreshold(),
		Subtract:    sm.Subtract(),
	})

	h, err := n.sys.cache.Swap(n.handle, key, func() (*material.Material, error) {
		return n.sys.factory.CreateMaskedVariant(base, buffer, r.Depth, r.StencilBits, stereo, ctx.Fallback())
	})
	n.handle = h
	if err != nil {
		softmask.Logger().Warn("mask: variant creation failed, rendering unmasked",
			"node", n.id,
			"base", base.Name,
			"err", err)
		return base
	}

	mat := h.Value()
	n.bindDynamic(mat, sm, key, preview)
	return mat
}

// bindDynamic writes per-mask values that are not part of the key onto
// the shared variant. Holders of one key share the governing mask buffer,
// and with it the mask these values come from.
func (n *Node) bindDynamic(mat *material.Material, sm SoftMask, key variant.Key, preview bool) {
	n.setShared(mat, key, material.PropAllowDynamicResolution, boolf(sm.AllowDynamicResolution()))
	n.setShared(mat, key, material.PropAllowRenderScale, boolf(sm.AllowRenderScale()))
	if preview {
		n.setShared(mat, key, material.PropAlphaClipThreshold, clamp01(sm.AlphaClipThreshold()))
		n.setShared(mat, key, material.PropSoftMaskSubtract, boolf(sm.Subtract()))
	}
}

// setShared sets a float property, logging when it overwrites a different
// value on a variant that other nodes also hold.
func (n *Node) setShared(mat *material.Material, key variant.Key, name string, v float32) {
	if prev, ok := mat.Float(name); ok && prev != v && n.sys.cache.RefCount(key) > 1 {
		softmask.Logger().Debug("mask: overwriting property of shared variant",
			"node", n.id,
			"property", name,
			"from", prev,
			"to", v)
	}
	mat.SetFloat(name, v)
}

// IsIgnored reports whether masking is skipped for the node: it opts
// itself out, no active soft mask governs it, or a maskable ancestor opts
// its subtree out.
//
// The ancestor flags are re-read on every call; they can change without
// the node being told.
func (n *Node) IsIgnored() bool {
	if n.ignoreSelf {
		return true
	}
	sm, ok := n.governingMask()
	if !ok || !sm.SoftMaskEnabled() {
		return true
	}
	g := n.sys.graph
	for p, ok := g.Parent(n.id); ok; p, ok = g.Parent(p) {
		if m, ok := n.sys.Maskable(p); ok && m.IgnoreChildren() {
			return true
		}
	}
	return false
}

// releaseMaterial gives the held variant back to the cache.
func (n *Node) releaseMaterial() {
	if n.handle == nil {
		return
	}
	if err := n.sys.cache.Release(n.handle); err != nil {
		softmask.Logger().Warn("mask: release failed", "node", n.id, "err", err)
	}
	n.handle = nil
}

// Activate enables masking for the node. The resolution is recomputed on
// next use.
func (n *Node) Activate() {
	if n.state == StateDestroyed {
		return
	}
	n.enabled = true
	n.activated()
}

// Deactivate disables masking for the node and releases the held variant.
func (n *Node) Deactivate() {
	if n.state == StateDestroyed {
		return
	}
	n.enabled = false
	n.deactivated()
}

func (n *Node) activated() {
	n.state = n.state.Next(EventActivate)
	n.resolution = unresolved
	n.NotifyDirty()
}

func (n *Node) deactivated() {
	n.state = n.state.Next(EventDeactivate)
	n.resolution = unresolved
	n.releaseMaterial()
	n.NotifyDirty()
}

// AncestryChanged is called when the node was moved in the hierarchy.
func (n *Node) AncestryChanged() {
	n.RequestMaskingRecalculation()
	n.NotifyDirty()
}

// Destroy releases everything the node holds. A destroyed node resolves
// every material to its base.
func (n *Node) Destroy() {
	if n.state == StateDestroyed {
		return
	}
	n.releaseMaterial()
	n.enabled = false
	n.state = n.state.Next(EventDestroy)
	n.resolution = unresolved
}

func boolf(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func clamp01(v float32) float32 {
	return float32(QuantizeThreshold(v)) / 0xFF
}
