package backend

import (
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/kbaines/pounce/internal/overlay"
	"github.com/kbaines/pounce/internal/perr"
)

// Terminal renders overlay entries into a tcell screen, scaling desktop
// coordinates down to terminal cells. It keeps the full entry set and
// repaints on every delta; terminal frames are small enough that the
// incremental bookkeeping happens upstream in the manager.
type Terminal struct {
	mu      sync.Mutex
	screen  tcell.Screen
	style   overlay.Style
	desktop image.Rectangle
	entries map[string]overlay.Entry
	hidden  bool
	closed  bool
}

// NewTerminal opens a real terminal screen previewing the given desktop
// bounds.
func NewTerminal(style overlay.Style, desktop image.Rectangle) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, perr.Wrap(perr.CodeRenderTargetGone, "open terminal", err)
	}
	return newTerminal(screen, style, desktop)
}

func newTerminal(screen tcell.Screen, style overlay.Style, desktop image.Rectangle) (*Terminal, error) {
	if desktop.Dx() <= 0 || desktop.Dy() <= 0 {
		return nil, perr.Newf(perr.CodeInvalidInput, "empty desktop bounds %v", desktop)
	}
	if err := screen.Init(); err != nil {
		return nil, perr.Wrap(perr.CodeRenderTargetGone, "init terminal", err)
	}
	return &Terminal{
		screen:  screen,
		style:   style,
		desktop: desktop,
		entries: make(map[string]overlay.Entry),
	}, nil
}

func (t *Terminal) Apply(d overlay.Delta) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return perr.New(perr.CodeRenderTargetGone, "terminal screen closed")
	}
	for _, e := range d.Add {
		t.entries[e.Key] = e
	}
	for _, e := range d.Update {
		t.entries[e.Key] = e
	}
	for _, k := range d.Remove {
		delete(t.entries, k)
	}
	t.repaint()
	return nil
}

func (t *Terminal) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return perr.New(perr.CodeRenderTargetGone, "terminal screen closed")
	}
	t.entries = make(map[string]overlay.Entry)
	t.repaint()
	return nil
}

func (t *Terminal) SetHidden(hidden bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return perr.New(perr.CodeRenderTargetGone, "terminal screen closed")
	}
	t.hidden = hidden
	t.repaint()
	return nil
}

func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.screen.Fini()
	return nil
}

// PollEvent blocks until the screen produces an event. It returns nil
// after Close. Used by the preview loop to read keystrokes from the same
// screen the overlay draws on.
func (t *Terminal) PollEvent() tcell.Event {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	screen := t.screen
	t.mu.Unlock()
	return screen.PollEvent()
}

// repaint redraws everything. Caller holds the lock.
func (t *Terminal) repaint() {
	t.screen.Clear()
	if !t.hidden {
		for _, e := range t.entries {
			t.draw(e)
		}
	}
	t.screen.Show()
}

func (t *Terminal) draw(e overlay.Entry) {
	cell := t.project(e.Bounds)
	switch e.Kind {
	case overlay.KindCell:
		t.drawBox(cell, e.Dimmed)
		t.drawLabel(cell.Min.X+1, cell.Min.Y, e)
	default:
		t.drawLabel(cell.Min.X, cell.Min.Y, e)
	}
}

// project maps desktop coordinates onto the terminal grid.
func (t *Terminal) project(r image.Rectangle) image.Rectangle {
	w, h := t.screen.Size()
	scale := func(v, from, size, to int) int {
		if size == 0 {
			return 0
		}
		p := (v - from) * to / size
		if p < 0 {
			p = 0
		}
		if p >= to {
			p = to - 1
		}
		return p
	}
	return image.Rect(
		scale(r.Min.X, t.desktop.Min.X, t.desktop.Dx(), w),
		scale(r.Min.Y, t.desktop.Min.Y, t.desktop.Dy(), h),
		scale(r.Max.X, t.desktop.Min.X, t.desktop.Dx(), w),
		scale(r.Max.Y, t.desktop.Min.Y, t.desktop.Dy(), h),
	)
}

func (t *Terminal) drawLabel(x, y int, e overlay.Entry) {
	base := tcell.StyleDefault.
		Foreground(toTcell(t.style.TextColor, tcell.ColorBlack)).
		Background(toTcell(t.style.BackgroundColor, tcell.ColorYellow))
	matched := base.Foreground(toTcell(t.style.MatchedColor, tcell.ColorGray))
	if e.Dimmed {
		base = tcell.StyleDefault.Dim(true)
		matched = base
	}
	for i, r := range e.Label {
		st := base
		if i < e.MatchedLen {
			st = matched
		}
		t.screen.SetContent(x+i, y, r, nil, st)
	}
}

func (t *Terminal) drawBox(r image.Rectangle, dimmed bool) {
	st := tcell.StyleDefault.Foreground(toTcell(t.style.BorderColor, tcell.ColorWhite))
	if dimmed {
		st = st.Dim(true)
	}
	for x := r.Min.X; x <= r.Max.X; x++ {
		t.screen.SetContent(x, r.Min.Y, tcell.RuneHLine, nil, st)
		t.screen.SetContent(x, r.Max.Y, tcell.RuneHLine, nil, st)
	}
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		t.screen.SetContent(r.Min.X, y, tcell.RuneVLine, nil, st)
		t.screen.SetContent(r.Max.X, y, tcell.RuneVLine, nil, st)
	}
	t.screen.SetContent(r.Min.X, r.Min.Y, tcell.RuneULCorner, nil, st)
	t.screen.SetContent(r.Max.X, r.Min.Y, tcell.RuneURCorner, nil, st)
	t.screen.SetContent(r.Min.X, r.Max.Y, tcell.RuneLLCorner, nil, st)
	t.screen.SetContent(r.Max.X, r.Max.Y, tcell.RuneLRCorner, nil, st)
}

func toTcell(hex string, fallback tcell.Color) tcell.Color {
	c, err := overlay.ParseColor(hex)
	if err != nil {
		return fallback
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
