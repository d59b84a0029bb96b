// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mask

import (
	"math"
	"testing"

	"github.com/gogpu/softmask"
	"github.com/gogpu/softmask/material"
)

func TestQuantizeThreshold(t *testing.T) {
	tests := []struct {
		in   float32
		want uint32
	}{
		{-1, 0},
		{0, 0},
		{float32(math.NaN()), 0},
		{0.5, 128},
		{1, 255},
		{3, 255},
		{float32(math.Inf(1)), 255},
	}
	for _, tt := range tests {
		if got := QuantizeThreshold(tt.in); got != tt.want {
			t.Errorf("QuantizeThreshold(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDeriveKeyLayout(t *testing.T) {
	base := newBase("base")
	buf := material.NewMaskBuffer("buf", 8, 8)

	k := DeriveKey(KeyInputs{
		Base:        base,
		Buffer:      buf,
		StencilBits: 0b101,
		Depth:       2,
		Stereo:      true,
		UseStencil:  true,
		Threshold:   0.5,
		Subtract:    true,
	})
	a, b, c, d := k.Words()
	if a != base.ID() || b != buf.ID() {
		t.Errorf("identity words = %d %d, want %d %d", a, b, base.ID(), buf.ID())
	}
	if want := uint32(0b101 | 1<<8 | 1<<9 | 2<<10); c != want {
		t.Errorf("flags word = %#x, want %#x", c, want)
	}
	if d != 0 {
		t.Errorf("preview word = %#x without preview", d)
	}

	k = DeriveKey(KeyInputs{Base: base, Buffer: buf, Preview: true, Threshold: 0.5, Subtract: true})
	if _, _, _, d = k.Words(); d != 1<<16|128<<8|1 {
		t.Errorf("preview word = %#x, want %#x", d, 1<<16|128<<8|1)
	}
}

func TestDeriveKeyPreviewZeroThreshold(t *testing.T) {
	in := KeyInputs{Base: newBase("base"), Buffer: material.NewMaskBuffer("buf", 8, 8), StencilBits: 1}
	plain := DeriveKey(in)

	in.Preview = true
	preview := DeriveKey(in)
	if preview == plain {
		t.Errorf("preview with zero threshold shares key %s with non-preview", plain)
	}
	if _, _, _, d := preview.Words(); d != 1<<16 {
		t.Errorf("preview word = %#x, want %#x", d, 1<<16)
	}
}

func TestDeriveKeyStencilTruncation(t *testing.T) {
	base := newBase("base")
	buf := material.NewMaskBuffer("buf", 8, 8)

	tests := []struct {
		name string
		bits uint32
		want uint32
	}{
		{"eight levels", 0xFF, 0xFF},
		{"nine levels", 0x1FF, 0xFF},
		{"nearest level beyond the buffer", 0x100, 0},
	}
	f := material.NewMaskedFactory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := DeriveKey(KeyInputs{Base: base, Buffer: buf, StencilBits: tt.bits})
			if _, _, c, _ := k.Words(); c&0xFF != tt.want {
				t.Errorf("key stencil bits = %#x, want %#x", c&0xFF, tt.want)
			}
			if k != DeriveKey(KeyInputs{Base: base, Buffer: buf, StencilBits: tt.want}) {
				t.Error("truncated bits gave a different key")
			}

			// the variant sees the same truncated bits as the key
			v, err := f.CreateMaskedVariant(base, buf, 0, tt.bits, false, softmask.FallbackDefault)
			if err != nil {
				t.Fatal(err)
			}
			if v.StencilReference != tt.want {
				t.Errorf("StencilReference = %#x, want %#x", v.StencilReference, tt.want)
			}
		})
	}
}

func TestDeriveKeyDistinguishesInputs(t *testing.T) {
	base := newBase("base")
	buf := material.NewMaskBuffer("buf", 8, 8)
	in := KeyInputs{Base: base, Buffer: buf, StencilBits: 0b01, Depth: 1}
	ref := DeriveKey(in)

	if DeriveKey(in) != ref {
		t.Fatal("DeriveKey is not deterministic")
	}

	mutations := map[string]func(*KeyInputs){
		"base":        func(k *KeyInputs) { k.Base = newBase("other") },
		"buffer":      func(k *KeyInputs) { k.Buffer = material.NewMaskBuffer("other", 8, 8) },
		"stencil":     func(k *KeyInputs) { k.StencilBits = 0b10 },
		"depth":       func(k *KeyInputs) { k.Depth = 2 },
		"stereo":      func(k *KeyInputs) { k.Stereo = true },
		"use stencil": func(k *KeyInputs) { k.UseStencil = true },
		"preview":     func(k *KeyInputs) { k.Preview, k.Threshold = true, 0.25 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			m := in
			mutate(&m)
			if DeriveKey(m) == ref {
				t.Errorf("changing %s kept key %s", name, ref)
			}
		})
	}

	// preview-only inputs do not split keys outside preview
	m := in
	m.Threshold, m.Subtract = 0.9, true
	if DeriveKey(m) != ref {
		t.Error("threshold changed key outside preview")
	}
}
