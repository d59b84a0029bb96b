// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package variant

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
)

// Key is a 128-bit structural key identifying a material variant.
//
// A Key is built by packing the inputs that change the rendered result
// into four 32-bit words. Packing is exact: two keys are equal only if
// every packed word is equal.
type Key struct {
	Hi uint64
	Lo uint64
}

// Pack builds a Key from four 32-bit words, most significant first.
func Pack(a, b, c, d uint32) Key {
	return Key{
		Hi: uint64(a)<<32 | uint64(b),
		Lo: uint64(c)<<32 | uint64(d),
	}
}

// Words returns the four 32-bit words of k, most significant first.
func (k Key) Words() (a, b, c, d uint32) {
	//nolint:gosec // G115: truncation is the unpacking
	return uint32(k.Hi >> 32), uint32(k.Hi), uint32(k.Lo >> 32), uint32(k.Lo)
}

// IsZero reports whether k is the zero key.
func (k Key) IsZero() bool {
	return k.Hi == 0 && k.Lo == 0
}

// String returns k as 32 hexadecimal digits.
func (k Key) String() string {
	return fmt.Sprintf("%016x%016x", k.Hi, k.Lo)
}

// shardHash computes an FNV-1a hash of k used for shard selection.
func shardHash(k Key) uint64 {
	h := fnv.New64a()
	hashWriteUint64(h, k.Hi)
	hashWriteUint64(h, k.Lo)
	return h.Sum64()
}

// hashWriteUint64 writes a uint64 to the hash.
func hashWriteUint64(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}
