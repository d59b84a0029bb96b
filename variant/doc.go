// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package variant implements a reference-counted store of shared material
// variants keyed by a 128-bit structural key.
//
// Holders acquire a Handle for the key describing everything that changes
// the rendered result, use Handle.Value, and release the handle when the
// key changes or the holder goes away:
//
//	cache := variant.New[*material.Material]()
//	h, err := cache.Swap(old, key, func() (*material.Material, error) {
//	    return factory.CreateMaskedVariant(base, buffer, depth, bits, stereo, fallback)
//	})
//
// The cache guarantees at most one live value per key: holders with equal
// keys share the literal same value, and the value is destroyed when its
// last holder releases it.
package variant
