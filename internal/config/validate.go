package config

import (
	"fmt"

	"github.com/kbaines/pounce/internal/grid"
	"github.com/kbaines/pounce/internal/hint"
	"github.com/kbaines/pounce/internal/input/key"
	"github.com/kbaines/pounce/internal/mode"
	"github.com/kbaines/pounce/internal/perr"
	"github.com/kbaines/pounce/internal/pointer"
)

// Validate checks every field that later code assumes is well-formed.
func (c *Config) Validate() error {
	for spec, target := range c.Hotkeys.Bindings {
		if _, err := key.ParseSpec(spec); err != nil {
			return perr.Wrap(perr.CodeInvalidConfig, fmt.Sprintf("hotkey %q", spec), err)
		}
		if m, ok := mode.ParseMode(target); !ok || m == mode.Idle {
			return perr.Newf(perr.CodeInvalidConfig, "hotkey %q targets unknown mode %q", spec, target)
		}
	}

	if _, err := hint.NewAllocator(c.Hints.Characters); err != nil {
		return err
	}
	if _, err := pointer.ParseAction(c.Hints.Action); err != nil {
		return perr.Wrap(perr.CodeInvalidConfig, "hints.action", err)
	}
	if err := c.OverlayStyle().Validate(); err != nil {
		return err
	}
	if c.Hints.MinVisibleSamples < 1 || c.Hints.MinVisibleSamples > 5 {
		return perr.Newf(perr.CodeInvalidConfig,
			"hints.min_visible_samples %d outside [1,5]", c.Hints.MinVisibleSamples)
	}

	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		return perr.Newf(perr.CodeInvalidConfig, "grid %dx%d needs at least one row and column",
			c.Grid.Rows, c.Grid.Cols)
	}
	if _, err := grid.NewPartitioner(c.Grid.Characters, c.GridOptions()); err != nil {
		return err
	}
	if _, err := pointer.ParseAction(c.Grid.Action); err != nil {
		return perr.Wrap(perr.CodeInvalidConfig, "grid.action", err)
	}

	for _, f := range []struct {
		name string
		v    int
	}{
		{"scroll.step", c.Scroll.Step},
		{"scroll.step_half", c.Scroll.StepHalf},
		{"scroll.step_full", c.Scroll.StepFull},
	} {
		if f.v < 1 {
			return perr.Newf(perr.CodeInvalidConfig, "%s must be positive, got %d", f.name, f.v)
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return perr.Newf(perr.CodeInvalidConfig, "logging.level %q unknown", c.Logging.Level)
	}

	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		return perr.New(perr.CodeInvalidConfig, "metrics enabled without a listen address")
	}
	if c.Script.Enabled && c.Script.Path == "" {
		return perr.New(perr.CodeInvalidConfig, "script enabled without a path")
	}
	return nil
}
