package overlay

// Renderer is the drawing backend. Implementations apply deltas in order
// and must tolerate Clear with nothing drawn. A backend whose window has
// been torn down returns an error with code RENDER_TARGET_GONE; the
// manager treats that as a clean empty state rather than a failure.
type Renderer interface {
	// Apply draws d.Add, redraws d.Update in place, and erases d.Remove.
	Apply(d Delta) error
	// Clear erases everything.
	Clear() error
	// SetHidden toggles visibility without discarding state, used to hide
	// the overlay from screen capture.
	SetHidden(hidden bool) error
	// Close releases the backend's window or screen.
	Close() error
}

// NullRenderer discards everything. It backs headless runs and tests.
type NullRenderer struct{}

func (NullRenderer) Apply(Delta) error    { return nil }
func (NullRenderer) Clear() error         { return nil }
func (NullRenderer) SetHidden(bool) error { return nil }
func (NullRenderer) Close() error         { return nil }
