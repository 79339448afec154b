package meshsync

import "errors"

// Package errors. Every failure in this package is deterministic; there is
// no transient-failure surface and no retry anywhere.
var (
	// ErrInvalidState is returned when an operation's precondition does
	// not hold, e.g. draining a renderable with no geometry assigned.
	ErrInvalidState = errors.New("meshsync: invalid state")

	// ErrNoIdentity is returned when the dispatcher cannot assign a
	// renderable identity at construction.
	ErrNoIdentity = errors.New("meshsync: dispatcher has no identity to assign")

	// ErrNoContext is returned when the dispatcher cannot supply the
	// current transform or origin needed to seed a new renderable.
	ErrNoContext = errors.New("meshsync: dispatcher has no current context")
)
