package app

import (
	"context"
	"sort"

	"github.com/kbaines/pounce/internal/config"
	"github.com/kbaines/pounce/internal/mode"
	"go.uber.org/zap"
)

// bindHotkeys replaces the registered global hotkeys with cfg's bindings.
// Specs are registered in sorted order so conflicts resolve the same way
// on every reload.
func (a *App) bindHotkeys(cfg *config.Config) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bindHotkeysLocked(cfg)
}

func (a *App) bindHotkeysLocked(cfg *config.Config) error {
	for _, id := range a.hotkeyIDs {
		a.registry.Unregister(id)
	}
	a.hotkeyIDs = a.hotkeyIDs[:0]

	specs := make([]string, 0, len(cfg.Hotkeys.Bindings))
	for spec := range cfg.Hotkeys.Bindings {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	for _, spec := range specs {
		target, ok := mode.ParseMode(cfg.Hotkeys.Bindings[spec])
		if !ok || target == mode.Idle {
			a.logger.Warn("skipping binding with unknown target",
				zap.String("spec", spec),
				zap.String("target", cfg.Hotkeys.Bindings[spec]))
			continue
		}
		id, err := a.registry.Register(spec, a.toggleFunc(target))
		if err != nil {
			return err
		}
		a.hotkeyIDs = append(a.hotkeyIDs, id)
	}
	return nil
}

// toggleFunc builds the hotkey callback for a mode. The callback runs on
// the platform dispatch thread, so the actual transition is posted onto
// the serialization queue.
func (a *App) toggleFunc(target mode.Mode) func() {
	return func() {
		if a.met != nil {
			a.met.HotkeyDispatched()
		}
		posted := a.queue.Post(func(ctx context.Context) {
			if err := a.ctrl.Toggle(ctx, target); err != nil {
				a.logger.Warn("mode toggle failed",
					zap.Stringer("mode", target), zap.Error(err))
			}
		})
		if !posted {
			a.logger.Warn("mode toggle dropped", zap.Stringer("mode", target))
		}
	}
}
