package app

import (
	"github.com/kbaines/pounce/internal/accessibility"
	"github.com/kbaines/pounce/internal/input/hotkey"
	"github.com/kbaines/pounce/internal/input/key"
	"github.com/kbaines/pounce/internal/overlay"
	"github.com/kbaines/pounce/internal/perr"
	"github.com/kbaines/pounce/internal/pointer"
)

// KeySource delivers keyboard events captured while an interaction mode
// is active. Start is called once during Run; events may arrive from any
// goroutine.
type KeySource interface {
	Start(deliver func(key.Event)) error
	Stop()
}

// noKeys is the fallback source when the platform cannot tap keyboard
// input; modes then only react to IPC commands.
type noKeys struct{}

func (noKeys) Start(func(key.Event)) error { return nil }
func (noKeys) Stop()                       {}

// Bridges carries the platform implementations the daemon core runs on
// top of. Accessibility, Hotkeys and Pointer are required; Keys defaults
// to an inert source and Renderer to the null renderer.
type Bridges struct {
	Accessibility accessibility.Client
	Hotkeys       hotkey.Backend
	Pointer       pointer.Synthesizer
	Keys          KeySource
	Renderer      overlay.Renderer
}

func (b *Bridges) validate() error {
	if b.Accessibility == nil {
		return perr.New(perr.CodeInternal, "accessibility bridge is required")
	}
	if b.Hotkeys == nil {
		return perr.New(perr.CodeInternal, "hotkey bridge is required")
	}
	if b.Pointer == nil {
		return perr.New(perr.CodeInternal, "pointer bridge is required")
	}
	if b.Keys == nil {
		b.Keys = noKeys{}
	}
	if b.Renderer == nil {
		b.Renderer = overlay.NullRenderer{}
	}
	return nil
}
