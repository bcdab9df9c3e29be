package overlay

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kbaines/pounce/internal/perr"
)

// Stats receives per-frame delta sizes. The metrics package implements it;
// tests substitute their own.
type Stats interface {
	ObserveDelta(add, update, remove int)
}

type noStats struct{}

func (noStats) ObserveDelta(int, int, int) {}

// Manager owns the current frame and feeds reconciled deltas to the
// renderer. Generation identifies one continuous overlay session; it
// changes whenever the frame is rebuilt from nothing, so log lines from
// different activations are distinguishable.
type Manager struct {
	renderer Renderer
	logger   *zap.Logger
	stats    Stats

	current    []Entry
	generation uuid.UUID
	hidden     bool
}

// NewManager wires a renderer. A nil stats falls back to a no-op.
func NewManager(renderer Renderer, logger *zap.Logger, stats Stats) *Manager {
	if stats == nil {
		stats = noStats{}
	}
	return &Manager{renderer: renderer, logger: logger, stats: stats}
}

// Generation returns the current session's identifier.
func (m *Manager) Generation() uuid.UUID { return m.generation }

// Render reconciles next against the frame on screen and applies the
// delta. When the render target is gone the manager's state is reset and
// the call succeeds as a no-op.
func (m *Manager) Render(next []Entry) error {
	if len(m.current) == 0 && len(next) > 0 {
		m.generation = uuid.New()
	}
	d := Reconcile(m.current, next)
	if d.Empty() {
		m.current = next
		return nil
	}
	m.stats.ObserveDelta(len(d.Add), len(d.Update), len(d.Remove))
	if err := m.renderer.Apply(d); err != nil {
		if perr.HasCode(err, perr.CodeRenderTargetGone) {
			m.logger.Warn("render target gone, dropping overlay state",
				zap.String("generation", m.generation.String()))
			m.current = nil
			return nil
		}
		return err
	}
	m.logger.Debug("overlay delta applied",
		zap.String("generation", m.generation.String()),
		zap.Int("add", len(d.Add)),
		zap.Int("update", len(d.Update)),
		zap.Int("remove", len(d.Remove)))
	m.current = next
	return nil
}

// Clear erases the frame. Always resets local state, even when the
// backend errors, so a wedged backend cannot pin stale entries.
func (m *Manager) Clear() error {
	m.current = nil
	if err := m.renderer.Clear(); err != nil {
		if perr.HasCode(err, perr.CodeRenderTargetGone) {
			return nil
		}
		return err
	}
	return nil
}

// SetHidden toggles screen-capture hiding.
func (m *Manager) SetHidden(hidden bool) error {
	if m.hidden == hidden {
		return nil
	}
	if err := m.renderer.SetHidden(hidden); err != nil {
		return err
	}
	m.hidden = hidden
	return nil
}

// Hidden reports the current hiding state.
func (m *Manager) Hidden() bool { return m.hidden }

// Close clears and shuts the backend.
func (m *Manager) Close() error {
	m.current = nil
	return m.renderer.Close()
}
