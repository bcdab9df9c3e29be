package accessibility

import (
	"fmt"
	"image"
	"sync/atomic"
)

// Element is an owned, reference-counted handle to an accessibility tree
// element. Elements are created by discovery, retained while the active
// mode references them, and released on mode exit. Using an Element after
// release is a programming error surfaced as zero values, never a crash.
type Element struct {
	ref      Ref
	client   Client
	attrs    Attributes
	released atomic.Bool
}

// newElement wraps a bridge ref, taking one retain on it.
func newElement(client Client, ref Ref, attrs Attributes) *Element {
	client.Retain(ref)
	return &Element{ref: ref, client: client, attrs: attrs}
}

// Role returns the accessibility role.
func (e *Element) Role() string {
	return e.attrs.Role
}

// Title returns the element title.
func (e *Element) Title() string {
	return e.attrs.Title
}

// RoleDescription returns the human-readable role description.
func (e *Element) RoleDescription() string {
	return e.attrs.RoleDescription
}

// Frame returns the element's screen-space bounding rectangle.
func (e *Element) Frame() image.Rectangle {
	return e.attrs.Frame
}

// Enabled reports whether the element is enabled.
func (e *Element) Enabled() bool {
	return e.attrs.Enabled
}

// Focused reports whether the element has keyboard focus.
func (e *Element) Focused() bool {
	return e.attrs.Focused
}

// PID returns the process id owning the element.
func (e *Element) PID() int {
	return e.attrs.PID
}

// Center returns the center point of the element's frame.
func (e *Element) Center() image.Point {
	f := e.attrs.Frame
	return image.Point{
		X: f.Min.X + f.Dx()/2,
		Y: f.Min.Y + f.Dy()/2,
	}
}

// Equal reports platform object identity with another element. Handle
// addresses are transient, so identity always goes through the client.
func (e *Element) Equal(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.released.Load() || other.released.Load() {
		return false
	}
	return e.client.Equal(e.ref, other.ref)
}

// HashKey returns a hash consistent with Equal, suitable as a map key
// alongside Equal-based bucketing.
func (e *Element) HashKey() uint64 {
	if e.released.Load() {
		return 0
	}
	return e.client.Hash(e.ref)
}

// Released reports whether the handle has been released.
func (e *Element) Released() bool {
	return e.released.Load()
}

// release drops the element's retain. Idempotent.
func (e *Element) release() {
	if e.released.CompareAndSwap(false, true) {
		e.client.Release(e.ref)
	}
}

// String describes the element for logs.
func (e *Element) String() string {
	return fmt.Sprintf("%s(%q pid=%d frame=%v)", e.attrs.Role, e.attrs.Title, e.attrs.PID, e.attrs.Frame)
}
