// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package material

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Texture errors.
var (
	// ErrNotAllocated is returned when uploading to a texture that has no
	// device texture yet.
	ErrNotAllocated = errors.New("material: texture has no device texture")

	// ErrNotUpdatable is returned when the device texture cannot receive
	// pixel uploads.
	ErrNotUpdatable = errors.New("material: device texture does not accept uploads")

	// ErrTextureSize is returned when pixel data or a device texture does
	// not match the texture dimensions.
	ErrTextureSize = errors.New("material: texture size mismatch")
)

// textureIDCounter generates unique texture instance ids.
var textureIDCounter atomic.Uint32

// rgbaBytesPerPixel is the pixel stride of gpucontext RGBA uploads.
const rgbaBytesPerPixel = 4

// Texture describes a texture bound to a material, such as the buffer a
// soft mask renders its alpha into.
//
// Texture identity is its instance id: two Textures with equal dimensions
// are still different textures. *Texture implements gpucontext.Texture.
type Texture struct {
	id     uint32
	Label  string
	Format gputypes.TextureFormat

	width  int
	height int

	mu  sync.Mutex
	gpu gpucontext.Texture
}

var _ gpucontext.Texture = (*Texture)(nil)

// NewTexture creates a texture description with a fresh instance id.
func NewTexture(label string, width, height int, format gputypes.TextureFormat) *Texture {
	return &Texture{
		id:     textureIDCounter.Add(1),
		Label:  label,
		Format: format,
		width:  width,
		height: height,
	}
}

// NewMaskBuffer creates the texture a soft mask renders into. Each nesting
// level of soft masks is written to its own channel, so the buffer is
// four-channel.
func NewMaskBuffer(label string, width, height int) *Texture {
	return NewTexture(label, width, height, gputypes.TextureFormatRGBA8Unorm)
}

// ID returns the texture instance id.
func (t *Texture) ID() uint32 {
	if t == nil {
		return 0
	}
	return t.id
}

// Width implements gpucontext.Texture.
func (t *Texture) Width() int { return t.width }

// Height implements gpucontext.Texture.
func (t *Texture) Height() int { return t.height }

// Device returns the device texture backing t, or nil before Allocate.
func (t *Texture) Device() gpucontext.Texture {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gpu
}

// Allocate creates the device texture through tc, cleared to full
// coverage in every channel. Allocating an allocated texture is a no-op.
func (t *Texture) Allocate(tc gpucontext.TextureCreator) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gpu != nil {
		return nil
	}

	data := bytes.Repeat([]byte{0xFF}, t.width*t.height*rgbaBytesPerPixel)
	gpu, err := tc.NewTextureFromRGBA(t.width, t.height, data)
	if err != nil {
		return fmt.Errorf("material: allocate %q: %w", t.Label, err)
	}
	if gpu.Width() != t.width || gpu.Height() != t.height {
		return fmt.Errorf("%w: %q is %dx%d, device texture %dx%d",
			ErrTextureSize, t.Label, t.width, t.height, gpu.Width(), gpu.Height())
	}
	t.gpu = gpu
	return nil
}

// Upload replaces the pixels of the device texture with RGBA data.
func (t *Texture) Upload(data []byte) error {
	if len(data) != t.width*t.height*rgbaBytesPerPixel {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrTextureSize, len(data), t.width, t.height)
	}
	gpu := t.Device()
	if gpu == nil {
		return ErrNotAllocated
	}
	u, ok := gpu.(gpucontext.TextureUpdater)
	if !ok {
		return ErrNotUpdatable
	}
	return u.UpdateData(data)
}
