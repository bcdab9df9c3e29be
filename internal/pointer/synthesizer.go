package pointer

import "image"

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// ScrollDelta is one scroll step in line units. Positive Y scrolls content
// up (wheel away from the user), positive X scrolls content left.
type ScrollDelta struct {
	X int
	Y int
}

// Synthesizer posts raw pointer events. Implementations are platform
// bridges; they do no sequencing or timing of their own.
type Synthesizer interface {
	// Warp moves the cursor instantly without generating a drag.
	Warp(p image.Point) error
	// ButtonDown presses a button at the cursor's current position.
	ButtonDown(b Button, p image.Point) error
	// ButtonUp releases a button.
	ButtonUp(b Button, p image.Point) error
	// Scroll posts one wheel event at the cursor's current position.
	Scroll(d ScrollDelta) error
	// Position reports the current cursor location.
	Position() (image.Point, error)
}
