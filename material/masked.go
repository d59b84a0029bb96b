// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package material

import (
	"errors"
	"fmt"
	"sync"
	"text/template"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/softmask"
)

// MaxDepth is the number of soft mask nesting levels a variant supports.
// Depths at or above MaxDepth are unsupported.
const MaxDepth = 4

// Masked variant errors.
var (
	// ErrNilBase is returned when creating a variant of a nil material.
	ErrNilBase = errors.New("material: base material is nil")

	// ErrNoMaskedShader is returned when the base shader has no registered
	// soft-maskable template and the fallback is FallbackNone.
	ErrNoMaskedShader = errors.New("material: no soft-maskable shader registered")

	// ErrDepthOutOfRange is returned for depths outside [0, MaxDepth).
	ErrDepthOutOfRange = errors.New("material: soft mask depth out of range")
)

// Property and keyword names bound on masked variants.
const (
	PropSoftMaskTex            = "_SoftMaskTex"
	PropSoftMaskDepth          = "_SoftMaskDepth"
	PropStencilBits            = "_StencilBits"
	PropAllowDynamicResolution = "_AllowDynamicResolution"
	PropAllowRenderScale       = "_AllowRenderScale"
	PropAlphaClipThreshold     = "_AlphaClipThreshold"
	PropSoftMaskSubtract       = "_SoftMaskSubtract"

	KeywordSoftMaskable = "SOFTMASKABLE"
	KeywordStereo       = "SOFTMASKABLE_STEREO"
)

// VariantShaderSuffix is appended to the base shader name of a variant.
const VariantShaderSuffix = "/SoftMaskable"

// MaskedFactory synthesizes soft-maskable variants of base materials.
//
// Thread Safety:
// MaskedFactory is safe for concurrent use.
type MaskedFactory struct {
	mu       sync.RWMutex
	shaders  map[string]*template.Template
	validate bool
	textures gpucontext.TextureCreator
}

// FactoryOption configures a MaskedFactory during creation.
type FactoryOption func(*MaskedFactory)

// WithShaderValidation compiles every generated shader to SPIR-V through
// naga and stores the result on the variant. Compilation failures fail
// variant creation.
func WithShaderValidation(on bool) FactoryOption {
	return func(f *MaskedFactory) {
		f.validate = on
	}
}

// WithTextureCreator allocates the device texture of every mask buffer a
// variant binds, on first use, through tc. Allocation failures fail variant
// creation.
func WithTextureCreator(tc gpucontext.TextureCreator) FactoryOption {
	return func(f *MaskedFactory) {
		f.textures = tc
	}
}

// WithShader registers a parsed soft-maskable template for base shader name.
func WithShader(name string, t *template.Template) FactoryOption {
	return func(f *MaskedFactory) {
		f.shaders[name] = t
	}
}

// NewMaskedFactory creates a factory with no registered shaders.
func NewMaskedFactory(opts ...FactoryOption) *MaskedFactory {
	f := &MaskedFactory{
		shaders: make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Register adds or replaces the soft-maskable template for base shader name.
func (f *MaskedFactory) Register(name string, t *template.Template) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shaders[name] = t
}

// lookup returns the template for shader name, honoring fallback.
func (f *MaskedFactory) lookup(name string, fallback softmask.Fallback) (*template.Template, error) {
	f.mu.RLock()
	t, ok := f.shaders[name]
	f.mu.RUnlock()
	if ok {
		return t, nil
	}
	if fallback == softmask.FallbackNone {
		return nil, fmt.Errorf("%w for %q", ErrNoMaskedShader, name)
	}
	return defaultTemplate, nil
}

// CreateMaskedVariant builds a soft-maskable variant of base that reads
// soft mask level depth from buffer and is clipped by the stencil masks in
// stencilBits.
//
// The variant is a new material: base is never modified.
func (f *MaskedFactory) CreateMaskedVariant(
	base *Material,
	buffer *Texture,
	depth int,
	stencilBits uint32,
	stereo bool,
	fallback softmask.Fallback,
) (*Material, error) {
	if base == nil {
		return nil, ErrNilBase
	}
	if depth < 0 || depth >= MaxDepth {
		return nil, fmt.Errorf("%w: %d", ErrDepthOutOfRange, depth)
	}

	if f.textures != nil && buffer != nil {
		if err := buffer.Allocate(f.textures); err != nil {
			return nil, err
		}
	}

	t, err := f.lookup(base.Shader, fallback)
	if err != nil {
		return nil, err
	}
	src, err := generateShader(t, base.Shader, depth, stereo)
	if err != nil {
		return nil, err
	}

	v := base.Clone()
	v.Name = base.Name + " (SoftMaskable)"
	v.Shader = base.Shader + VariantShaderSuffix
	v.WGSL = src
	v.SPIRV = nil

	if f.validate {
		spirv, err := CompileShaderToSPIRV(src)
		if err != nil {
			return nil, err
		}
		v.SPIRV = spirv
	}

	bits := stencilBits & StencilBitsMask
	v.SetTexture(PropSoftMaskTex, buffer)
	v.SetFloat(PropSoftMaskDepth, float32(depth))
	v.SetFloat(PropStencilBits, float32(bits))
	v.EnableKeyword(KeywordSoftMaskable)
	if stereo {
		v.EnableKeyword(KeywordStereo)
	} else {
		v.DisableKeyword(KeywordStereo)
	}
	v.DepthStencil = StencilState(bits)
	v.StencilReference = bits

	softmask.Logger().Debug("material: masked variant",
		"base", base.Name,
		"depth", depth,
		"stencil", bits,
		"stereo", stereo)
	return v, nil
}
