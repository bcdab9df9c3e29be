package pointer

import (
	"context"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/kbaines/pounce/internal/perr"
)

// Timing defaults. The press-release gap keeps fast synthetic clicks from
// being coalesced or dropped by the target application; the settle delay
// gives the window system one frame to observe the warped cursor before
// the button goes down.
const (
	DefaultClickGap     = 12 * time.Millisecond
	DefaultSettleDelay  = 8 * time.Millisecond
	DefaultMoveDuration = 120 * time.Millisecond
	defaultMoveSteps    = 24
)

// Options tune the actuator. Zero values take package defaults;
// RestoreCursor puts the cursor back where it was after a click performed
// on behalf of a hint selection.
type Options struct {
	ClickGap      time.Duration
	SettleDelay   time.Duration
	MoveDuration  time.Duration
	SmoothMove    bool
	RestoreCursor bool
}

func (o *Options) fill() {
	if o.ClickGap <= 0 {
		o.ClickGap = DefaultClickGap
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	if o.MoveDuration <= 0 {
		o.MoveDuration = DefaultMoveDuration
	}
}

// Actuator sequences pointer gestures over a Synthesizer.
type Actuator struct {
	synth  Synthesizer
	logger *zap.Logger
	opts   Options

	// sleep is swapped out by tests.
	sleep func(context.Context, time.Duration) error
}

// NewActuator wires a synthesizer.
func NewActuator(synth Synthesizer, logger *zap.Logger, opts Options) *Actuator {
	opts.fill()
	return &Actuator{synth: synth, logger: logger, opts: opts, sleep: sleepCtx}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// MoveTo positions the cursor at p. With SmoothMove the path is linearly
// interpolated over MoveDuration; otherwise the cursor warps directly.
func (a *Actuator) MoveTo(ctx context.Context, p image.Point) error {
	if !a.opts.SmoothMove {
		return a.warp(p)
	}
	from, err := a.synth.Position()
	if err != nil {
		return perr.Wrap(perr.CodeActionFailed, "read cursor position", err)
	}
	if from == p {
		return nil
	}
	step := a.opts.MoveDuration / defaultMoveSteps
	for i := 1; i <= defaultMoveSteps; i++ {
		mid := image.Pt(
			from.X+(p.X-from.X)*i/defaultMoveSteps,
			from.Y+(p.Y-from.Y)*i/defaultMoveSteps,
		)
		if err := a.warp(mid); err != nil {
			return err
		}
		if i < defaultMoveSteps {
			if err := a.sleep(ctx, step); err != nil {
				return err
			}
		}
	}
	return nil
}

// Click presses and releases a button at p. When RestoreCursor is set the
// cursor is captured first and warped back afterwards.
func (a *Actuator) Click(ctx context.Context, b Button, p image.Point) error {
	restore, err := a.captureForRestore()
	if err != nil {
		return err
	}
	if err := a.MoveTo(ctx, p); err != nil {
		return err
	}
	if err := a.sleep(ctx, a.opts.SettleDelay); err != nil {
		return err
	}
	if err := a.press(ctx, b, p); err != nil {
		return err
	}
	if restore != nil {
		if err := a.sleep(ctx, a.opts.SettleDelay); err != nil {
			return err
		}
		return restore()
	}
	return nil
}

// DoubleClick posts two clicks separated by the click gap.
func (a *Actuator) DoubleClick(ctx context.Context, b Button, p image.Point) error {
	restore, err := a.captureForRestore()
	if err != nil {
		return err
	}
	if err := a.MoveTo(ctx, p); err != nil {
		return err
	}
	if err := a.sleep(ctx, a.opts.SettleDelay); err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if err := a.press(ctx, b, p); err != nil {
			return err
		}
		if i == 0 {
			if err := a.sleep(ctx, a.opts.ClickGap); err != nil {
				return err
			}
		}
	}
	if restore != nil {
		return restore()
	}
	return nil
}

// Drag holds the button down at from, moves to to, and releases. The move
// is always interpolated so drop targets see intermediate drag events.
func (a *Actuator) Drag(ctx context.Context, b Button, from, to image.Point) error {
	if err := a.MoveTo(ctx, from); err != nil {
		return err
	}
	if err := a.sleep(ctx, a.opts.SettleDelay); err != nil {
		return err
	}
	if err := a.synth.ButtonDown(b, from); err != nil {
		return perr.Wrap(perr.CodeActionFailed, "drag press", err)
	}
	smooth := a.opts
	smooth.SmoothMove = true
	dragged := &Actuator{synth: a.synth, logger: a.logger, opts: smooth, sleep: a.sleep}
	if err := dragged.MoveTo(ctx, to); err != nil {
		// Best effort release so the button is not left stuck.
		_ = a.synth.ButtonUp(b, to)
		return err
	}
	if err := a.sleep(ctx, a.opts.SettleDelay); err != nil {
		_ = a.synth.ButtonUp(b, to)
		return err
	}
	if err := a.synth.ButtonUp(b, to); err != nil {
		return perr.Wrap(perr.CodeActionFailed, "drag release", err)
	}
	return nil
}

// Scroll posts count wheel steps of delta, pacing them with the click gap
// so momentum-sensitive views track them as separate events.
func (a *Actuator) Scroll(ctx context.Context, delta ScrollDelta, count int) error {
	for i := 0; i < count; i++ {
		if err := a.synth.Scroll(delta); err != nil {
			return perr.Wrap(perr.CodeActionFailed, "scroll", err)
		}
		if i < count-1 {
			if err := a.sleep(ctx, a.opts.ClickGap); err != nil {
				return err
			}
		}
	}
	return nil
}

// Position reports the cursor location.
func (a *Actuator) Position() (image.Point, error) {
	p, err := a.synth.Position()
	if err != nil {
		return image.Point{}, perr.Wrap(perr.CodeActionFailed, "read cursor position", err)
	}
	return p, nil
}

func (a *Actuator) warp(p image.Point) error {
	if err := a.synth.Warp(p); err != nil {
		return perr.Wrap(perr.CodeActionFailed, "warp cursor", err)
	}
	return nil
}

func (a *Actuator) press(ctx context.Context, b Button, p image.Point) error {
	if err := a.synth.ButtonDown(b, p); err != nil {
		return perr.Wrap(perr.CodeActionFailed, "button down", err)
	}
	if err := a.sleep(ctx, a.opts.ClickGap); err != nil {
		_ = a.synth.ButtonUp(b, p)
		return err
	}
	if err := a.synth.ButtonUp(b, p); err != nil {
		return perr.Wrap(perr.CodeActionFailed, "button up", err)
	}
	return nil
}

func (a *Actuator) captureForRestore() (func() error, error) {
	if !a.opts.RestoreCursor {
		return nil, nil
	}
	orig, err := a.synth.Position()
	if err != nil {
		return nil, perr.Wrap(perr.CodeActionFailed, "capture cursor", err)
	}
	return func() error { return a.warp(orig) }, nil
}
