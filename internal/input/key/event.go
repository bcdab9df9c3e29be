package key

import (
	"time"
	"unicode"
)

// Event represents a single key press delivered by the event-capture bridge.
type Event struct {
	// Code identifies the physical key.
	Code Code

	// Rune is the translated character for printable keys, or 0.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(code Code, r rune, mods Modifier) Event {
	return Event{
		Code:      code,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// IsPrintable reports whether the event carries a printable character
// without Cmd/Ctrl/Opt held. Shift alone does not disqualify a character:
// it is already folded into the rune.
func (e Event) IsPrintable() bool {
	if e.Rune == 0 || !unicode.IsPrint(e.Rune) {
		return false
	}
	return e.Modifiers&(ModCmd|ModCtrl|ModOpt) == 0
}

// IsEscape reports whether the event is the escape key.
func (e Event) IsEscape() bool {
	return e.Code == CodeEscape
}

// IsBackspace reports whether the event is the backspace key.
func (e Event) IsBackspace() bool {
	return e.Code == CodeBackspace
}

// String returns a canonical representation like "Cmd+Shift+Space" or "j".
func (e Event) String() string {
	mods := e.Modifiers.String()

	var name string
	if e.Rune != 0 && e.Code != CodeSpace {
		name = string(e.Rune)
	} else {
		name = e.Code.String()
	}

	if mods == "" {
		return name
	}
	return mods + "+" + name
}
