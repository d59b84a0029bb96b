// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mask

import (
	"testing"

	"github.com/gogpu/softmask"
	"github.com/gogpu/softmask/graph"
	"github.com/gogpu/softmask/material"
)

// testCanvas is a Canvas with a fixed stereo flag.
type testCanvas struct {
	stereo bool
}

func (c *testCanvas) Stereo() bool { return c.stereo }

// testDrawable records redraw requests.
type testDrawable struct {
	canvas    Canvas
	maskable  bool
	dirtyHits int
}

func newDrawable() *testDrawable {
	return &testDrawable{canvas: &testCanvas{}, maskable: true}
}

func (d *testDrawable) Canvas() Canvas     { return d.canvas }
func (d *testDrawable) Maskable() bool     { return d.maskable }
func (d *testDrawable) SetMaterialDirty()  { d.dirtyHits++ }
func (d *testDrawable) resetDirty()        { d.dirtyHits = 0 }
func (d *testDrawable) setCanvas(c Canvas) { d.canvas = c }

// testShape is a drawable that defines a mask region itself.
type testShape struct {
	testDrawable
}

func (*testShape) MaskingShape() {}

// scene bundles a graph, settings and a system for tests.
type scene struct {
	t        *testing.T
	g        *graph.Graph
	settings *softmask.Settings
	sys      *System
	root     graph.NodeID
}

func newScene(t *testing.T, opts ...softmask.Option) *scene {
	t.Helper()
	g := graph.New()
	settings := softmask.NewSettings(opts...)
	sys, err := NewSystem(g, settings, material.NewMaskedFactory(), nil)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	return &scene{
		t:        t,
		g:        g,
		settings: settings,
		sys:      sys,
		root:     g.MustAdd("root", graph.None),
	}
}

// softMask adds a node carrying a fresh Region under parent.
func (s *scene) softMask(name string, parent graph.NodeID) (graph.NodeID, *Region) {
	s.t.Helper()
	id := s.g.MustAdd(name, parent)
	r := NewRegion(material.NewMaskBuffer(name, 64, 64))
	if err := s.g.Attach(id, r); err != nil {
		s.t.Fatalf("Attach: %v", err)
	}
	return id, r
}

// attach adds component c to a new node under parent.
func (s *scene) attach(name string, parent graph.NodeID, c graph.Component) graph.NodeID {
	s.t.Helper()
	id := s.g.MustAdd(name, parent)
	if err := s.g.Attach(id, c); err != nil {
		s.t.Fatalf("Attach: %v", err)
	}
	return id
}

// maskable adds a maskable node under parent.
func (s *scene) maskable(name string, parent graph.NodeID) (*Node, *testDrawable) {
	s.t.Helper()
	id := s.g.MustAdd(name, parent)
	d := newDrawable()
	n, err := s.sys.Add(id, d)
	if err != nil {
		s.t.Fatalf("Add(%s): %v", name, err)
	}
	return n, d
}

func newBase(name string) *material.Material {
	return material.New(name, "UI/Default")
}
