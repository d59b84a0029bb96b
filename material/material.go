// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package material

import (
	"maps"
	"slices"
	"sync/atomic"

	"github.com/gogpu/wgpu/hal"
)

// materialIDCounter generates unique material instance ids.
var materialIDCounter atomic.Uint32

// Material is a render material: a shader plus the values bound to it.
//
// Material identity is its instance id. Clones get a new id.
type Material struct {
	id     uint32
	Name   string
	Shader string

	floats   map[string]float32
	textures map[string]*Texture
	keywords map[string]struct{}

	// DepthStencil is the depth-stencil state the material renders with.
	// Nil means no stencil test.
	DepthStencil *hal.DepthStencilState

	// StencilReference is the reference value for the stencil test.
	StencilReference uint32

	// WGSL is the shader source of generated variants.
	WGSL string

	// SPIRV holds the compiled shader when validation is enabled.
	SPIRV []uint32

	destroyed bool
}

// New creates a material named name using shader.
func New(name, shader string) *Material {
	return &Material{
		id:       materialIDCounter.Add(1),
		Name:     name,
		Shader:   shader,
		floats:   make(map[string]float32),
		textures: make(map[string]*Texture),
		keywords: make(map[string]struct{}),
	}
}

// ID returns the material instance id.
func (m *Material) ID() uint32 {
	if m == nil {
		return 0
	}
	return m.id
}

// SetFloat binds a float property.
func (m *Material) SetFloat(name string, v float32) {
	m.floats[name] = v
}

// Float returns a float property.
func (m *Material) Float(name string) (float32, bool) {
	v, ok := m.floats[name]
	return v, ok
}

// SetBool binds a boolean property, stored as 0 or 1.
func (m *Material) SetBool(name string, v bool) {
	if v {
		m.floats[name] = 1
	} else {
		m.floats[name] = 0
	}
}

// SetTexture binds a texture property. A nil texture unbinds it.
func (m *Material) SetTexture(name string, t *Texture) {
	if t == nil {
		delete(m.textures, name)
		return
	}
	m.textures[name] = t
}

// Texture returns a texture property.
func (m *Material) Texture(name string) (*Texture, bool) {
	t, ok := m.textures[name]
	return t, ok
}

// EnableKeyword turns on a shader keyword.
func (m *Material) EnableKeyword(k string) {
	m.keywords[k] = struct{}{}
}

// DisableKeyword turns off a shader keyword.
func (m *Material) DisableKeyword(k string) {
	delete(m.keywords, k)
}

// IsKeywordEnabled reports whether keyword k is on.
func (m *Material) IsKeywordEnabled(k string) bool {
	_, ok := m.keywords[k]
	return ok
}

// Keywords returns the enabled keywords in sorted order.
func (m *Material) Keywords() []string {
	return slices.Sorted(maps.Keys(m.keywords))
}

// Clone returns a copy of m with a new instance id. Property maps are
// copied; textures are shared.
func (m *Material) Clone() *Material {
	c := &Material{
		id:               materialIDCounter.Add(1),
		Name:             m.Name,
		Shader:           m.Shader,
		floats:           maps.Clone(m.floats),
		textures:         maps.Clone(m.textures),
		keywords:         maps.Clone(m.keywords),
		StencilReference: m.StencilReference,
		WGSL:             m.WGSL,
		SPIRV:            slices.Clone(m.SPIRV),
	}
	if m.DepthStencil != nil {
		ds := *m.DepthStencil
		c.DepthStencil = &ds
	}
	return c
}

// Destroy releases the material. Destroying twice is harmless.
func (m *Material) Destroy() {
	m.destroyed = true
	m.SPIRV = nil
}

// IsDestroyed reports whether Destroy has been called.
func (m *Material) IsDestroyed() bool {
	return m.destroyed
}
