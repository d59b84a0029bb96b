// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package material

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// StencilBitsMask limits stencil bits to the 8-bit stencil buffer.
const StencilBitsMask = 0xFF

// StencilState returns the depth-stencil state of a variant nested inside
// the stencil masks described by bits.
//
// With no bits set the stencil test always passes. Otherwise only pixels
// whose stencil value equals bits on every bit of bits pass, so each
// enclosing stencil mask clips the variant. The stencil buffer itself is
// never written by a masked variant.
func StencilState(bits uint32) *hal.DepthStencilState {
	bits &= StencilBitsMask

	compare := gputypes.CompareFunctionAlways
	if bits != 0 {
		compare = gputypes.CompareFunctionEqual
	}
	face := hal.StencilFaceState{
		Compare:     compare,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}

	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth24PlusStencil8,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront:      face,
		StencilBack:       face,
		StencilReadMask:   bits,
		StencilWriteMask:  0,
	}
}
