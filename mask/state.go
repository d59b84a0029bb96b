// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mask

// State is the validity of a node's cached stencil resolution.
//
//	Uninitialized --resolve--> Resolved --ancestry--> Dirty --resolve--> Resolved
//	      any --activate/deactivate--> Uninitialized
//	      any --destroy--> Destroyed (absorbing)
//
// Cached stencil bits, depth and governing mask are meaningful only in
// Resolved.
type State uint8

const (
	// StateUninitialized: never resolved since the node was (re)activated.
	StateUninitialized State = iota

	// StateDirty: resolved once, but the ancestor chain may have changed.
	StateDirty

	// StateResolved: cached resolution matches the ancestor chain.
	StateResolved

	// StateDestroyed: the node was destroyed; nothing is cached.
	StateDestroyed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateDirty:
		return "Dirty"
	case StateResolved:
		return "Resolved"
	case StateDestroyed:
		return "Destroyed"
	default:
		return unknownStr
	}
}

const unknownStr = "Unknown"

// NeedsResolve reports whether the cached resolution must be recomputed
// before it is read.
func (s State) NeedsResolve() bool {
	return s == StateUninitialized || s == StateDirty
}

// Event drives State transitions.
type Event uint8

const (
	// EventActivate: the node became active.
	EventActivate Event = iota
	// EventDeactivate: the node became inactive.
	EventDeactivate
	// EventAncestryChanged: the ancestor chain or a mask above changed.
	EventAncestryChanged
	// EventResolved: the resolution was just recomputed.
	EventResolved
	// EventDestroy: the node was destroyed.
	EventDestroy
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventActivate:
		return "Activate"
	case EventDeactivate:
		return "Deactivate"
	case EventAncestryChanged:
		return "AncestryChanged"
	case EventResolved:
		return "Resolved"
	case EventDestroy:
		return "Destroy"
	default:
		return unknownStr
	}
}

// Next returns the state after e.
func (s State) Next(e Event) State {
	if s == StateDestroyed {
		return StateDestroyed
	}
	switch e {
	case EventActivate, EventDeactivate:
		return StateUninitialized
	case EventAncestryChanged:
		if s == StateResolved {
			return StateDirty
		}
		return s
	case EventResolved:
		return StateResolved
	case EventDestroy:
		return StateDestroyed
	default:
		return s
	}
}
