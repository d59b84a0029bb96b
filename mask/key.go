// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mask

import (
	"math"

	"github.com/gogpu/softmask/material"
	"github.com/gogpu/softmask/variant"
)

// Bit layout of the third key word.
const (
	keyStencilMask = material.StencilBitsMask
	keyStereoBit   = 1 << 8
	keyStencilBit  = 1 << 9
	keyDepthShift  = 10
)

// keyPreviewBit marks a preview key in the last key word, so that a
// preview key never equals a non-preview one.
const keyPreviewBit = 1 << 16

// KeyInputs are the inputs that change the rendered appearance of a
// masked variant.
type KeyInputs struct {
	Base        *material.Material
	Buffer      *material.Texture
	StencilBits uint32
	Depth       int
	Stereo      bool
	UseStencil  bool

	// Preview-only inputs, packed into the last key word when Preview is set.
	Preview   bool
	Threshold float32
	Subtract  bool
}

// DeriveKey packs in into a variant key:
//
//	word 0: base material id
//	word 1: mask buffer id
//	word 2: stencil bits (8) | stereo << 8 | use stencil << 9 | depth << 10
//	word 3: preview only: 1 << 16 | threshold (8) << 8 | subtract
//
// Equal inputs always give equal keys and any difference in the inputs
// gives a different key, with one exception: stencil bits are truncated to
// the 8 bits of the stencil buffer, the same way CreateMaskedVariant
// truncates them. Bits above 7 belong to the nearest levels of chains
// nested deeper than 8 and never reach the variant.
func DeriveKey(in KeyInputs) variant.Key {
	flags := in.StencilBits&keyStencilMask |
		b2u(in.Stereo)*keyStereoBit |
		b2u(in.UseStencil)*keyStencilBit |
		uint32(max(in.Depth, 0))<<keyDepthShift //nolint:gosec // G115: depth is bounded by MaxDepth

	var local uint32
	if in.Preview {
		local = keyPreviewBit | QuantizeThreshold(in.Threshold)<<8 | b2u(in.Subtract)
	}

	return variant.Pack(in.Base.ID(), in.Buffer.ID(), flags, local)
}

// QuantizeThreshold clamps t to [0, 1] and scales it to 8 bits.
// NaN quantizes to 0.
func QuantizeThreshold(t float32) uint32 {
	if !(t > 0) {
		return 0
	}
	if t >= 1 {
		return 0xFF
	}
	return uint32(math.Round(float64(t) * 0xFF))
}
