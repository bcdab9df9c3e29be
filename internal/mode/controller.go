package mode

import (
	"context"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kbaines/pounce/internal/accessibility"
	"github.com/kbaines/pounce/internal/grid"
	"github.com/kbaines/pounce/internal/hint"
	"github.com/kbaines/pounce/internal/input/key"
	"github.com/kbaines/pounce/internal/overlay"
	"github.com/kbaines/pounce/internal/perr"
	"github.com/kbaines/pounce/internal/pointer"
)

// Scroll step defaults, in wheel lines.
const (
	DefaultScrollLines    = 3
	DefaultScrollHalfPage = 15
	DefaultScrollFullPage = 30
)

// Config tunes controller behavior.
type Config struct {
	// HintAction is performed on hint selection; empty means left click.
	HintAction pointer.Action
	// GridAction is performed when a final grid cell is chosen.
	GridAction pointer.Action
	// ScrollLines, ScrollHalfPage and ScrollFullPage are wheel step sizes.
	ScrollLines    int
	ScrollHalfPage int
	ScrollFullPage int
	// ShowIndicator renders the active-mode badge.
	ShowIndicator bool
}

func (c *Config) fill() {
	if c.HintAction == "" {
		c.HintAction = pointer.ActionLeftClick
	}
	if c.GridAction == "" {
		c.GridAction = pointer.ActionLeftClick
	}
	if c.ScrollLines <= 0 {
		c.ScrollLines = DefaultScrollLines
	}
	if c.ScrollHalfPage <= 0 {
		c.ScrollHalfPage = DefaultScrollHalfPage
	}
	if c.ScrollFullPage <= 0 {
		c.ScrollFullPage = DefaultScrollFullPage
	}
}

// Stats receives controller telemetry. The metrics package implements it.
type Stats interface {
	ModeActivated(mode string)
	DiscoveryObserved(d time.Duration, elements int)
}

type noStats struct{}

func (noStats) ModeActivated(string)                 {}
func (noStats) DiscoveryObserved(time.Duration, int) {}

// ChangeCallback observes mode transitions.
type ChangeCallback func(from, to Mode)

// SelectCallback observes a completed hint or grid selection.
type SelectCallback func(label string, target image.Point)

// Controller is the input state machine. Its exported methods are safe for
// concurrent use but are expected to arrive through a Queue; the mutex
// only guards against stray direct calls.
type Controller struct {
	mu sync.Mutex

	client  accessibility.Client
	index   *accessibility.Index
	alloc   *hint.Allocator
	nav     *grid.Navigator
	overlay *overlay.Manager
	act     *pointer.Actuator
	logger  *zap.Logger
	stats   Stats
	cfg     Config

	current    Mode
	buffer     string
	hints      *hint.Collection
	matched    []*hint.Hint
	callbacks  []ChangeCallback
	selections []SelectCallback
}

// NewController wires the controller's collaborators. A nil stats falls
// back to a no-op.
func NewController(
	client accessibility.Client,
	index *accessibility.Index,
	alloc *hint.Allocator,
	nav *grid.Navigator,
	ov *overlay.Manager,
	act *pointer.Actuator,
	logger *zap.Logger,
	stats Stats,
	cfg Config,
) *Controller {
	cfg.fill()
	if stats == nil {
		stats = noStats{}
	}
	return &Controller{
		client:  client,
		index:   index,
		alloc:   alloc,
		nav:     nav,
		overlay: ov,
		act:     act,
		logger:  logger,
		stats:   stats,
		cfg:     cfg,
	}
}

// OnChange registers a transition observer, called with the controller
// lock held; observers must not call back in.
func (c *Controller) OnChange(cb ChangeCallback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbacks = append(c.callbacks, cb)
}

// OnSelect registers a selection observer. Like OnChange observers it runs
// with the controller lock held.
func (c *Controller) OnSelect(cb SelectCallback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selections = append(c.selections, cb)
}

// Current returns the active mode.
func (c *Controller) Current() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Toggle activates m, or deactivates when m is already active.
func (c *Controller) Toggle(ctx context.Context, m Mode) error {
	if c.Current() == m {
		return c.Deactivate(ctx)
	}
	switch m {
	case Hints:
		return c.ActivateHints(ctx)
	case Grid:
		return c.ActivateGrid(ctx)
	case Scroll:
		return c.ActivateScroll(ctx)
	default:
		return c.Deactivate(ctx)
	}
}

// ActivateHints discovers the frontmost window's actionable elements,
// labels them, and renders the hint overlay. With nothing to label the
// controller stays idle.
func (c *Controller) ActivateHints(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.client.Permitted() {
		return perr.New(perr.CodePermissionDenied, "accessibility access not granted")
	}
	c.leaveLocked()

	start := time.Now()
	elements := c.index.DiscoverFrontmost()
	c.stats.DiscoveryObserved(time.Since(start), len(elements))
	if len(elements) == 0 {
		c.index.ReleaseAll()
		c.abortLocked()
		c.logger.Info("hint activation found no actionable elements")
		return perr.New(perr.CodeElementUnavailable, "no actionable elements in frontmost window")
	}

	hint.SortByPosition(elements)
	hints, err := c.alloc.Allocate(elements)
	if err != nil {
		c.index.ReleaseAll()
		c.abortLocked()
		return err
	}
	c.hints = hint.NewCollection(hints)
	c.matched = c.hints.Refilter("")
	c.buffer = ""
	c.enterLocked(Hints)
	c.logger.Info("hints activated",
		zap.Int("elements", len(elements)),
		zap.Duration("discovery", time.Since(start)))
	return c.renderLocked()
}

// ActivateGrid partitions the active screen and renders the root grid.
func (c *Controller) ActivateGrid(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.leaveLocked()
	if _, err := c.nav.Start(c.client.ScreenBounds()); err != nil {
		c.abortLocked()
		return err
	}
	c.buffer = ""
	c.enterLocked(Grid)
	return c.renderLocked()
}

// ActivateScroll enters scroll mode; only the indicator is drawn.
func (c *Controller) ActivateScroll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.leaveLocked()
	c.enterLocked(Scroll)
	return c.renderLocked()
}

// Deactivate returns to idle, releasing element handles and clearing the
// overlay. Safe to call when already idle.
func (c *Controller) Deactivate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == Idle {
		return nil
	}
	c.leaveLocked()
	c.enterLocked(Idle)
	return c.overlay.Clear()
}

// HandleKey routes one key event to the active mode. The returned bool
// reports whether the event was consumed; unconsumed events fall through
// to the focused application.
func (c *Controller) HandleKey(ctx context.Context, ev key.Event) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.current {
	case Hints:
		return c.hintKeyLocked(ctx, ev)
	case Grid:
		return c.gridKeyLocked(ctx, ev)
	case Scroll:
		return c.scrollKeyLocked(ctx, ev)
	default:
		return false, nil
	}
}

func (c *Controller) hintKeyLocked(ctx context.Context, ev key.Event) (bool, error) {
	switch {
	case ev.IsEscape():
		c.leaveLocked()
		c.enterLocked(Idle)
		return true, c.overlay.Clear()

	case ev.IsBackspace():
		if c.buffer == "" {
			return true, nil
		}
		c.buffer = c.buffer[:len(c.buffer)-1]
		c.matched = c.hints.Refilter(c.buffer)
		return true, c.renderLocked()

	case ev.IsPrintable():
		r, ok := c.alloc.NormalizeInput(ev.Rune)
		if !ok {
			return true, nil
		}
		candidate := c.buffer + string(r)
		if h, exact := c.hints.Exact(candidate); exact {
			return true, c.selectHintLocked(ctx, h)
		}
		// A keystroke that matches nothing leaves the buffer untouched.
		if !c.hints.AnyMatch(candidate) {
			return true, nil
		}
		c.buffer = candidate
		c.matched = c.hints.Refilter(c.buffer)
		return true, c.renderLocked()
	}
	return false, nil
}

func (c *Controller) selectHintLocked(ctx context.Context, h *hint.Hint) error {
	target := h.Element.Center()
	label := h.Label
	c.leaveLocked()
	c.enterLocked(Idle)
	if err := c.overlay.Clear(); err != nil {
		return err
	}
	c.logger.Info("hint selected", zap.String("label", label))
	for _, cb := range c.selections {
		cb(label, target)
	}
	return c.perform(ctx, c.cfg.HintAction, target)
}

func (c *Controller) gridKeyLocked(ctx context.Context, ev key.Event) (bool, error) {
	switch {
	case ev.IsEscape():
		c.leaveLocked()
		c.enterLocked(Idle)
		return true, c.overlay.Clear()

	case ev.IsBackspace():
		if c.buffer != "" {
			c.buffer = c.buffer[:len(c.buffer)-1]
			return true, c.renderLocked()
		}
		if _, ok := c.nav.Ascend(); !ok {
			return true, nil
		}
		return true, c.renderLocked()

	case ev.IsPrintable():
		r, ok := c.alloc.NormalizeInput(ev.Rune)
		if !ok {
			return true, nil
		}
		g := c.nav.Current()
		candidate := c.buffer + string(r)
		if _, exact := g.Exact(candidate); exact {
			return true, c.selectCellLocked(ctx, candidate)
		}
		if len(g.Match(candidate)) == 0 {
			return true, nil
		}
		c.buffer = candidate
		return true, c.renderLocked()
	}
	return false, nil
}

func (c *Controller) selectCellLocked(ctx context.Context, label string) error {
	cell, _, done, err := c.nav.Select(label)
	if err != nil {
		return err
	}
	c.buffer = ""
	if !done {
		return c.renderLocked()
	}
	target := cell.Center()
	c.leaveLocked()
	c.enterLocked(Idle)
	if err := c.overlay.Clear(); err != nil {
		return err
	}
	c.logger.Info("grid cell selected", zap.String("label", label))
	for _, cb := range c.selections {
		cb(label, target)
	}
	return c.perform(ctx, c.cfg.GridAction, target)
}

func (c *Controller) scrollKeyLocked(ctx context.Context, ev key.Event) (bool, error) {
	if ev.IsEscape() {
		c.leaveLocked()
		c.enterLocked(Idle)
		return true, c.overlay.Clear()
	}
	delta, ok := c.scrollDelta(ev)
	if !ok {
		return true, nil
	}
	return true, c.act.Scroll(ctx, delta, 1)
}

// scrollDelta maps vim-style keys and arrows to wheel steps. Negative Y
// moves the view down (wheel toward the user).
func (c *Controller) scrollDelta(ev key.Event) (pointer.ScrollDelta, bool) {
	line := c.cfg.ScrollLines
	switch ev.Code {
	case key.CodeDown:
		return pointer.ScrollDelta{Y: -line}, true
	case key.CodeUp:
		return pointer.ScrollDelta{Y: line}, true
	case key.CodeLeft:
		return pointer.ScrollDelta{X: line}, true
	case key.CodeRight:
		return pointer.ScrollDelta{X: -line}, true
	}
	switch ev.Rune {
	case 'j', 'J':
		return pointer.ScrollDelta{Y: -line}, true
	case 'k', 'K':
		return pointer.ScrollDelta{Y: line}, true
	case 'h', 'H':
		return pointer.ScrollDelta{X: line}, true
	case 'l', 'L':
		return pointer.ScrollDelta{X: -line}, true
	case 'd', 'D':
		return pointer.ScrollDelta{Y: -c.cfg.ScrollHalfPage}, true
	case 'u', 'U':
		return pointer.ScrollDelta{Y: c.cfg.ScrollHalfPage}, true
	case 'f', 'F':
		return pointer.ScrollDelta{Y: -c.cfg.ScrollFullPage}, true
	case 'b', 'B':
		return pointer.ScrollDelta{Y: c.cfg.ScrollFullPage}, true
	}
	return pointer.ScrollDelta{}, false
}

func (c *Controller) perform(ctx context.Context, action pointer.Action, p image.Point) error {
	if b, ok := action.Button(); ok {
		if action == pointer.ActionDoubleClick {
			return c.act.DoubleClick(ctx, b, p)
		}
		return c.act.Click(ctx, b, p)
	}
	return c.act.MoveTo(ctx, p)
}

// enterLocked switches state and notifies observers.
func (c *Controller) enterLocked(m Mode) {
	from := c.current
	c.current = m
	if m != Idle {
		c.stats.ModeActivated(m.String())
	}
	if from != m {
		for _, cb := range c.callbacks {
			cb(from, m)
		}
	}
}

// abortLocked drops to idle after a failed activation. The previous
// mode's state is already torn down by leaveLocked, so it must not stay
// current and keep receiving keys.
func (c *Controller) abortLocked() {
	c.enterLocked(Idle)
	if err := c.overlay.Clear(); err != nil {
		c.logger.Warn("overlay clear after failed activation", zap.Error(err))
	}
}

// leaveLocked tears down per-mode state without rendering.
func (c *Controller) leaveLocked() {
	switch c.current {
	case Hints:
		c.hints = nil
		c.matched = nil
		c.index.ReleaseAll()
	case Grid:
		c.nav.Reset()
	}
	c.buffer = ""
}

// renderLocked rebuilds the overlay frame for the current state.
func (c *Controller) renderLocked() error {
	var entries []overlay.Entry
	switch c.current {
	case Hints:
		entries = overlay.FromHints(c.matched)
	case Grid:
		entries = overlay.FromGrid(c.nav.Current(), c.buffer)
	}
	if c.current != Idle && c.cfg.ShowIndicator {
		entries = append(entries, overlay.Indicator(c.current.String(), c.indicatorBounds()))
	}
	return c.overlay.Render(entries)
}

// indicatorBounds anchors the mode badge at the bottom-left of the screen.
func (c *Controller) indicatorBounds() image.Rectangle {
	s := c.client.ScreenBounds()
	return image.Rect(s.Min.X+12, s.Max.Y-36, s.Min.X+132, s.Max.Y-12)
}
