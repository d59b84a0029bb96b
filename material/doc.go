// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package material provides render materials and the factory that derives
// soft-maskable variants from them.
//
// A masked variant is a clone of a base material with:
//   - a generated WGSL shader that multiplies the fragment alpha by the
//     soft mask buffer channels of every nesting level up to its depth
//   - the soft mask buffer bound as a texture
//   - a stencil test (hal.DepthStencilState) that keeps the variant inside
//     every enclosing stencil mask
//
// Shader templates are registered per base shader name. Base shaders
// without a template use the built-in generic template unless the
// fallback is softmask.FallbackNone.
package material
