package cli

import (
	"context"
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kbaines/pounce/internal/accessibility"
	"github.com/kbaines/pounce/internal/config"
	"github.com/kbaines/pounce/internal/grid"
	"github.com/kbaines/pounce/internal/hint"
	"github.com/kbaines/pounce/internal/input/key"
	"github.com/kbaines/pounce/internal/mode"
	"github.com/kbaines/pounce/internal/overlay"
	"github.com/kbaines/pounce/internal/overlay/backend"
	"github.com/kbaines/pounce/internal/pointer"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the overlay in the terminal",
	Long: `Preview runs hint, grid and scroll modes against a synthetic window,
drawing the overlay into the terminal. Useful for trying alphabets, grid
geometry and colors from a config file without accessibility permissions.

Keys: h hints, g grid, s scroll, q quit; within a mode, keys behave as
they would against the real overlay.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		return runPreview(cfg)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

// previewSynth tracks the cursor without moving anything.
type previewSynth struct {
	pos image.Point
}

func (s *previewSynth) Warp(p image.Point) error                     { s.pos = p; return nil }
func (s *previewSynth) ButtonDown(pointer.Button, image.Point) error { return nil }
func (s *previewSynth) ButtonUp(pointer.Button, image.Point) error   { return nil }
func (s *previewSynth) Scroll(pointer.ScrollDelta) error             { return nil }
func (s *previewSynth) Position() (image.Point, error)               { return s.pos, nil }

// previewWindow builds a synthetic window with a spread of clickable
// elements so hint mode has something to label.
func previewWindow(desktop image.Rectangle) *accessibility.MockNode {
	titles := []string{"Open", "Save", "Close", "Back", "Forward", "Reload", "Search", "Menu"}
	children := make([]*accessibility.MockNode, 0, len(titles))
	cols := 4
	for i, title := range titles {
		col, row := i%cols, i/cols
		x := desktop.Min.X + 120 + col*300
		y := desktop.Min.Y + 150 + row*250
		children = append(children, accessibility.NewMockNode(accessibility.Attributes{
			Role:    accessibility.RoleButton,
			Title:   title,
			Frame:   image.Rect(x, y, x+160, y+60),
			Enabled: true,
			PID:     1,
			Actions: []string{accessibility.ActionPress},
		}))
	}
	return accessibility.NewMockNode(accessibility.Attributes{
		Role:    accessibility.RoleWindow,
		Frame:   desktop,
		Enabled: true,
		PID:     1,
	}, children...)
}

func runPreview(cfg *config.Config) error {
	desktop := image.Rect(0, 0, 1440, 900)
	client := accessibility.NewMockClient(desktop, previewWindow(desktop))

	term, err := backend.NewTerminal(cfg.OverlayStyle(), desktop)
	if err != nil {
		return err
	}
	defer term.Close()

	// The terminal owns stdout; logging would corrupt the frame.
	logger := zap.NewNop()

	alloc, err := hint.NewAllocator(cfg.Hints.Characters)
	if err != nil {
		return err
	}
	part, err := grid.NewPartitioner(cfg.Grid.Characters, cfg.GridOptions())
	if err != nil {
		return err
	}
	ctrl := mode.NewController(
		client,
		accessibility.NewIndex(client, cfg.DiscoveryOptions(), logger),
		alloc,
		grid.NewNavigator(part),
		overlay.NewManager(term, logger, nil),
		pointer.NewActuator(&previewSynth{}, logger, cfg.PointerOptions()),
		logger,
		nil,
		cfg.ModeConfig(),
	)

	ctx := context.Background()
	for {
		ev := term.PollEvent()
		if ev == nil {
			return nil
		}
		kev, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		mapped, ok := mapKey(kev)
		if !ok {
			continue
		}
		consumed, err := ctrl.HandleKey(ctx, mapped)
		if err != nil {
			return err
		}
		if consumed {
			continue
		}
		switch kev.Rune() {
		case 'h':
			if err := ctrl.ActivateHints(ctx); err != nil {
				return err
			}
		case 'g':
			if err := ctrl.ActivateGrid(ctx); err != nil {
				return err
			}
		case 's':
			if err := ctrl.ActivateScroll(ctx); err != nil {
				return err
			}
		case 'q':
			return nil
		}
	}
}

// mapKey translates a terminal key event into the daemon's key model.
func mapKey(ev *tcell.EventKey) (key.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		return key.NewEvent(key.CodeEscape, 0, 0), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewEvent(key.CodeBackspace, 0, 0), true
	case tcell.KeyUp:
		return key.NewEvent(key.CodeUp, 0, 0), true
	case tcell.KeyDown:
		return key.NewEvent(key.CodeDown, 0, 0), true
	case tcell.KeyLeft:
		return key.NewEvent(key.CodeLeft, 0, 0), true
	case tcell.KeyRight:
		return key.NewEvent(key.CodeRight, 0, 0), true
	case tcell.KeyRune:
		return key.NewEvent(key.CodeNone, ev.Rune(), 0), true
	default:
		return key.Event{}, false
	}
}
