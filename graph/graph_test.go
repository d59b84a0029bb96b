// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"errors"
	"slices"
	"testing"
)

type recordingObserver struct {
	reparented []NodeID
	active     map[NodeID]bool
	removed    []NodeID
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{active: make(map[NodeID]bool)}
}

func (o *recordingObserver) Reparented(id NodeID)             { o.reparented = append(o.reparented, id) }
func (o *recordingObserver) ActiveChanged(id NodeID, on bool) { o.active[id] = on }
func (o *recordingObserver) Removed(id NodeID)                { o.removed = append(o.removed, id) }

type tagA struct{ name string }
type tagB struct{}

type named interface{ Name() string }

func (t *tagA) Name() string { return t.name }

func TestAddAndRelations(t *testing.T) {
	g := New()
	root := g.MustAdd("root", None)
	a := g.MustAdd("a", root)
	b := g.MustAdd("b", root)
	c := g.MustAdd("c", a)

	if g.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", g.Len())
	}
	if _, ok := g.Parent(root); ok {
		t.Error("root should have no parent")
	}
	if p, ok := g.Parent(c); !ok || p != a {
		t.Errorf("Parent(c) = %d, %v; want %d, true", p, ok, a)
	}
	if got := g.Children(root); !slices.Equal(got, []NodeID{a, b}) {
		t.Errorf("Children(root) = %v, want [%d %d]", got, a, b)
	}
	if g.Name(c) != "c" {
		t.Errorf("Name(c) = %q", g.Name(c))
	}
	if Depth(g, c) != 2 {
		t.Errorf("Depth(c) = %d, want 2", Depth(g, c))
	}
	if !g.IsAncestor(root, c) || g.IsAncestor(b, c) {
		t.Error("IsAncestor mismatch")
	}
}

func TestAddUnknownParent(t *testing.T) {
	g := New()
	if _, err := g.Add("x", 42); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Add with unknown parent: err = %v, want ErrUnknownNode", err)
	}
}

func TestActiveInHierarchy(t *testing.T) {
	g := New()
	root := g.MustAdd("root", None)
	a := g.MustAdd("a", root)
	leaf := g.MustAdd("leaf", a)

	if !g.ActiveInHierarchy(leaf) {
		t.Fatal("new nodes should be active")
	}
	if err := g.SetActive(a, false); err != nil {
		t.Fatal(err)
	}
	if g.ActiveInHierarchy(leaf) {
		t.Error("leaf should be inactive when its parent is inactive")
	}
	if !g.Active(leaf) {
		t.Error("local flag of leaf should stay true")
	}
	if g.ActiveInHierarchy(999) {
		t.Error("unknown node reported active")
	}
}

func TestSetParent(t *testing.T) {
	g := New()
	obs := newRecordingObserver()
	g.Observe(obs)

	root := g.MustAdd("root", None)
	a := g.MustAdd("a", root)
	b := g.MustAdd("b", root)
	c := g.MustAdd("c", a)

	if err := g.SetParent(c, b); err != nil {
		t.Fatal(err)
	}
	if p, _ := g.Parent(c); p != b {
		t.Errorf("Parent(c) = %d, want %d", p, b)
	}
	if len(g.Children(a)) != 0 {
		t.Errorf("a still has children %v", g.Children(a))
	}
	if !slices.Equal(obs.reparented, []NodeID{c}) {
		t.Errorf("reparented = %v, want [%d]", obs.reparented, c)
	}

	// Same parent is a no-op without notification.
	if err := g.SetParent(c, b); err != nil {
		t.Fatal(err)
	}
	if len(obs.reparented) != 1 {
		t.Errorf("no-op reparent notified observers")
	}

	if err := g.SetParent(root, c); !errors.Is(err, ErrCycle) {
		t.Errorf("SetParent(root, c) err = %v, want ErrCycle", err)
	}
	if err := g.SetParent(a, a); !errors.Is(err, ErrCycle) {
		t.Errorf("SetParent(a, a) err = %v, want ErrCycle", err)
	}
}

func TestSetActiveNotifiesOnChange(t *testing.T) {
	g := New()
	obs := newRecordingObserver()
	g.Observe(obs)
	root := g.MustAdd("root", None)

	_ = g.SetActive(root, true)
	if len(obs.active) != 0 {
		t.Error("unchanged flag should not notify")
	}
	_ = g.SetActive(root, false)
	if on, ok := obs.active[root]; !ok || on {
		t.Errorf("ActiveChanged(root) = %v, %v; want false, true", on, ok)
	}
	if err := g.SetActive(77, false); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("err = %v, want ErrUnknownNode", err)
	}
}

func TestRemoveSubtree(t *testing.T) {
	g := New()
	obs := newRecordingObserver()
	g.Observe(obs)

	root := g.MustAdd("root", None)
	a := g.MustAdd("a", root)
	b := g.MustAdd("b", a)
	c := g.MustAdd("c", b)

	if err := g.Remove(a); err != nil {
		t.Fatal(err)
	}
	if g.Exists(a) || g.Exists(b) || g.Exists(c) {
		t.Error("subtree still present after Remove")
	}
	if !slices.Equal(obs.removed, []NodeID{c, b, a}) {
		t.Errorf("removed = %v, want deepest first [%d %d %d]", obs.removed, c, b, a)
	}
	if len(g.Children(root)) != 0 {
		t.Error("root still references removed child")
	}
}

func TestComponents(t *testing.T) {
	g := New()
	n := g.MustAdd("n", None)
	a := &tagA{name: "mask"}
	b := &tagB{}

	if err := g.Attach(n, nil); !errors.Is(err, ErrNilComponent) {
		t.Errorf("Attach(nil) err = %v", err)
	}
	_ = g.Attach(n, b)
	_ = g.Attach(n, a)

	got, ok := Find[named](g, n)
	if !ok || got.Name() != "mask" {
		t.Fatalf("Find[named] = %v, %v", got, ok)
	}
	if !Has[*tagB](g, n) {
		t.Error("Has[*tagB] = false")
	}
	if Has[*tagA](g, 999) {
		t.Error("Has on unknown node = true")
	}

	if !g.Detach(n, a) {
		t.Error("Detach(a) = false")
	}
	if g.Detach(n, a) {
		t.Error("second Detach(a) = true")
	}
	if Has[named](g, n) {
		t.Error("capability still present after Detach")
	}
}

func TestWalk(t *testing.T) {
	g := New()
	root := g.MustAdd("root", None)
	a := g.MustAdd("a", root)
	a1 := g.MustAdd("a1", a)
	b := g.MustAdd("b", root)
	b1 := g.MustAdd("b1", b)

	var all []NodeID
	Walk(g, root, func(id NodeID) bool {
		all = append(all, id)
		return true
	})
	if !slices.Equal(all, []NodeID{a, a1, b, b1}) {
		t.Errorf("Walk = %v", all)
	}

	var pruned []NodeID
	Walk(g, root, func(id NodeID) bool {
		pruned = append(pruned, id)
		return id != a
	})
	if !slices.Equal(pruned, []NodeID{a, b, b1}) {
		t.Errorf("pruned Walk = %v", pruned)
	}
}
