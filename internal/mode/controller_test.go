package mode

import (
	"context"
	"fmt"
	"image"
	"testing"

	"go.uber.org/zap"

	"github.com/kbaines/pounce/internal/accessibility"
	"github.com/kbaines/pounce/internal/grid"
	"github.com/kbaines/pounce/internal/hint"
	"github.com/kbaines/pounce/internal/input/key"
	"github.com/kbaines/pounce/internal/overlay"
	"github.com/kbaines/pounce/internal/perr"
	"github.com/kbaines/pounce/internal/pointer"
)

// fakeRenderer tracks what is currently drawn.
type fakeRenderer struct {
	entries map[string]overlay.Entry
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{entries: make(map[string]overlay.Entry)}
}

func (r *fakeRenderer) Apply(d overlay.Delta) error {
	for _, e := range d.Add {
		r.entries[e.Key] = e
	}
	for _, e := range d.Update {
		r.entries[e.Key] = e
	}
	for _, k := range d.Remove {
		delete(r.entries, k)
	}
	return nil
}

func (r *fakeRenderer) Clear() error {
	r.entries = make(map[string]overlay.Entry)
	return nil
}

func (r *fakeRenderer) SetHidden(bool) error { return nil }
func (r *fakeRenderer) Close() error         { return nil }

func (r *fakeRenderer) labels() map[string]bool {
	out := make(map[string]bool)
	for _, e := range r.entries {
		if e.Kind != overlay.KindIndicator {
			out[e.Label] = true
		}
	}
	return out
}

// fakeSynth records pointer events.
type fakeSynth struct {
	pos    image.Point
	events []string
}

func (f *fakeSynth) Warp(p image.Point) error {
	f.pos = p
	return nil
}

func (f *fakeSynth) ButtonDown(b pointer.Button, p image.Point) error {
	f.events = append(f.events, fmt.Sprintf("down %s %d,%d", b, p.X, p.Y))
	return nil
}

func (f *fakeSynth) ButtonUp(b pointer.Button, p image.Point) error {
	f.events = append(f.events, fmt.Sprintf("up %s %d,%d", b, p.X, p.Y))
	return nil
}

func (f *fakeSynth) Scroll(d pointer.ScrollDelta) error {
	f.events = append(f.events, fmt.Sprintf("scroll %d,%d", d.X, d.Y))
	return nil
}

func (f *fakeSynth) Position() (image.Point, error) { return f.pos, nil }

type harness struct {
	client   *accessibility.MockClient
	ctrl     *Controller
	renderer *fakeRenderer
	synth    *fakeSynth
	index    *accessibility.Index
}

const testPID = 77

func button(frame image.Rectangle, title string) *accessibility.MockNode {
	return accessibility.NewMockNode(accessibility.Attributes{
		Role: accessibility.RoleButton, Title: title, Frame: frame,
		Enabled: true, PID: testPID, Actions: []string{accessibility.ActionPress},
	})
}

func newHarness(t *testing.T, alphabet string, buttons ...*accessibility.MockNode) *harness {
	t.Helper()
	screenRect := image.Rect(0, 0, 800, 600)
	win := accessibility.NewMockNode(accessibility.Attributes{
		Role: accessibility.RoleWindow, Frame: image.Rect(0, 0, 800, 600),
		Enabled: true, PID: testPID,
	}, buttons...)
	client := accessibility.NewMockClient(screenRect, win)

	logger := zap.NewNop()
	index := accessibility.NewIndex(client, accessibility.DiscoveryOptions{}, logger)
	alloc, err := hint.NewAllocator(alphabet)
	if err != nil {
		t.Fatal(err)
	}
	part, err := grid.NewPartitioner(alphabet, grid.Options{Rows: 2, Cols: 2, MinCellWidth: 150, MinCellHeight: 120, MaxDepth: 2})
	if err != nil {
		t.Fatal(err)
	}
	renderer := newFakeRenderer()
	synth := &fakeSynth{}
	ctrl := NewController(
		client, index, alloc, grid.NewNavigator(part),
		overlay.NewManager(renderer, logger, nil),
		pointer.NewActuator(synth, logger, pointer.Options{}),
		logger, nil, Config{},
	)
	return &harness{client: client, ctrl: ctrl, renderer: renderer, synth: synth, index: index}
}

func press(r rune) key.Event {
	return key.NewEvent(key.CodeNone, r, 0)
}

func TestActivateHintsRendersLabels(t *testing.T) {
	h := newHarness(t, "AS",
		button(image.Rect(10, 10, 110, 40), "ok"),
		button(image.Rect(10, 60, 110, 90), "cancel"),
	)

	if err := h.ctrl.ActivateHints(context.Background()); err != nil {
		t.Fatal(err)
	}
	if h.ctrl.Current() != Hints {
		t.Fatalf("mode = %v", h.ctrl.Current())
	}
	labels := h.renderer.labels()
	if !labels["A"] || !labels["S"] {
		t.Fatalf("labels = %v, want A and S", labels)
	}
	if h.index.HeldCount() == 0 {
		t.Fatal("no element handles held in hint mode")
	}
}

func TestHintSelectionClicksElementCenter(t *testing.T) {
	h := newHarness(t, "AS",
		button(image.Rect(10, 10, 110, 40), "ok"),
		button(image.Rect(10, 60, 110, 90), "cancel"),
	)
	h.ctrl.ActivateHints(context.Background())

	handled, err := h.ctrl.HandleKey(context.Background(), press('a'))
	if err != nil || !handled {
		t.Fatalf("handled=%v err=%v", handled, err)
	}
	// "ok" sorts first and takes label A; its center is (60, 25).
	want := []string{"down left 60,25", "up left 60,25"}
	if len(h.synth.events) != 2 || h.synth.events[0] != want[0] || h.synth.events[1] != want[1] {
		t.Fatalf("events = %v, want %v", h.synth.events, want)
	}
	if h.ctrl.Current() != Idle {
		t.Fatal("selection should return to idle")
	}
	if h.index.HeldCount() != 0 {
		t.Fatal("element handles leaked after selection")
	}
	if len(h.renderer.entries) != 0 {
		t.Fatalf("overlay not cleared: %v", h.renderer.entries)
	}
}

func TestHintNarrowingAndZeroMatchIgnored(t *testing.T) {
	h := newHarness(t, "AS",
		button(image.Rect(10, 10, 110, 40), "one"),
		button(image.Rect(10, 60, 110, 90), "two"),
		button(image.Rect(10, 110, 110, 140), "three"),
	)
	h.ctrl.ActivateHints(context.Background())
	// Three elements over "AS" label as S, AA, AS.

	h.ctrl.HandleKey(context.Background(), press('a'))
	labels := h.renderer.labels()
	if labels["S"] || !labels["AA"] || !labels["AS"] {
		t.Fatalf("after 'a': labels = %v", labels)
	}

	// 'q' matches nothing: buffer and overlay stay as they are.
	h.ctrl.HandleKey(context.Background(), press('q'))
	if got := h.renderer.labels(); !got["AA"] || !got["AS"] || got["S"] {
		t.Fatalf("zero-match keystroke changed the overlay: %v", got)
	}
	if h.ctrl.Current() != Hints {
		t.Fatal("zero-match keystroke left hint mode")
	}

	h.ctrl.HandleKey(context.Background(), press('s'))
	if h.ctrl.Current() != Idle {
		t.Fatal("full label should select")
	}
	if len(h.synth.events) == 0 {
		t.Fatal("no click synthesized")
	}
}

func TestHintBackspaceRestores(t *testing.T) {
	h := newHarness(t, "AS",
		button(image.Rect(10, 10, 110, 40), "one"),
		button(image.Rect(10, 60, 110, 90), "two"),
		button(image.Rect(10, 110, 110, 140), "three"),
	)
	h.ctrl.ActivateHints(context.Background())

	h.ctrl.HandleKey(context.Background(), press('a'))
	if labels := h.renderer.labels(); labels["S"] {
		t.Fatal("S should be filtered out after 'a'")
	}
	h.ctrl.HandleKey(context.Background(), key.NewEvent(key.CodeBackspace, 0, 0))
	if labels := h.renderer.labels(); !labels["S"] || !labels["AA"] || !labels["AS"] {
		t.Fatalf("backspace did not restore: %v", labels)
	}
}

func TestHintEscapeReleasesEverything(t *testing.T) {
	h := newHarness(t, "AS",
		button(image.Rect(10, 10, 110, 40), "ok"),
		button(image.Rect(10, 60, 110, 90), "cancel"),
	)
	h.ctrl.ActivateHints(context.Background())

	h.ctrl.HandleKey(context.Background(), key.NewEvent(key.CodeEscape, 0, 0))
	if h.ctrl.Current() != Idle {
		t.Fatal("escape should deactivate")
	}
	if h.index.HeldCount() != 0 {
		t.Fatal("escape leaked element handles")
	}
	if len(h.renderer.entries) != 0 {
		t.Fatal("escape left overlay entries")
	}
	if len(h.synth.events) != 0 {
		t.Fatal("escape synthesized pointer events")
	}
}

func TestActivateHintsNoElements(t *testing.T) {
	h := newHarness(t, "AS")

	err := h.ctrl.ActivateHints(context.Background())
	if !perr.HasCode(err, perr.CodeElementUnavailable) {
		t.Fatalf("err = %v, want ELEMENT_UNAVAILABLE", err)
	}
	if h.ctrl.Current() != Idle {
		t.Fatal("controller entered hint mode with no elements")
	}
}

func TestFailedHintActivationFromGridGoesIdle(t *testing.T) {
	h := newHarness(t, "AS")

	if err := h.ctrl.ActivateGrid(context.Background()); err != nil {
		t.Fatal(err)
	}
	if h.ctrl.Current() != Grid {
		t.Fatal("grid mode did not activate")
	}

	// No actionable elements: the hint activation fails after grid state
	// was torn down, so the controller must not stay in grid mode.
	err := h.ctrl.ActivateHints(context.Background())
	if !perr.HasCode(err, perr.CodeElementUnavailable) {
		t.Fatalf("err = %v, want ELEMENT_UNAVAILABLE", err)
	}
	if h.ctrl.Current() != Idle {
		t.Fatalf("mode = %v after failed activation, want idle", h.ctrl.Current())
	}
	if len(h.renderer.entries) != 0 {
		t.Fatalf("overlay still shows %d entries after failed activation", len(h.renderer.entries))
	}

	consumed, err := h.ctrl.HandleKey(context.Background(), press('A'))
	if err != nil {
		t.Fatalf("HandleKey after failed activation: %v", err)
	}
	if consumed {
		t.Fatal("idle controller consumed a key")
	}
}

func TestActivateHintsWithoutPermission(t *testing.T) {
	h := newHarness(t, "AS", button(image.Rect(10, 10, 110, 40), "ok"))
	h.client.SetPermitted(false)

	err := h.ctrl.ActivateHints(context.Background())
	if !perr.IsPermissionDenied(err) {
		t.Fatalf("err = %v, want PERMISSION_DENIED", err)
	}
}

func TestGridDescendsThenClicks(t *testing.T) {
	h := newHarness(t, "ASDF")

	if err := h.ctrl.ActivateGrid(context.Background()); err != nil {
		t.Fatal(err)
	}
	if h.ctrl.Current() != Grid {
		t.Fatalf("mode = %v", h.ctrl.Current())
	}
	// Root cells are 400x300; dividing again would make 200x150 cells,
	// which clears the 150x120 minimum, so the first selection descends.
	h.ctrl.HandleKey(context.Background(), press('a'))
	if h.ctrl.Current() != Grid {
		t.Fatal("first selection should stay in grid mode")
	}

	// MaxDepth 2 makes the second selection final: cell (0,0) of the
	// top-left subgrid spans (0,0)-(200,150), center (100,75).
	h.ctrl.HandleKey(context.Background(), press('a'))
	if h.ctrl.Current() != Idle {
		t.Fatal("final selection should return to idle")
	}
	want := "down left 100,75"
	if len(h.synth.events) == 0 || h.synth.events[0] != want {
		t.Fatalf("events = %v, want first %q", h.synth.events, want)
	}
}

func TestGridBackspaceAscends(t *testing.T) {
	h := newHarness(t, "ASDF")
	h.ctrl.ActivateGrid(context.Background())
	h.ctrl.HandleKey(context.Background(), press('a'))

	h.ctrl.HandleKey(context.Background(), key.NewEvent(key.CodeBackspace, 0, 0))
	if h.ctrl.Current() != Grid {
		t.Fatal("ascend should stay in grid mode")
	}
	// Root grid cells span 400x300 again.
	found := false
	for _, e := range h.renderer.entries {
		if e.Kind == overlay.KindCell && e.Bounds.Dx() == 400 {
			found = true
		}
	}
	if !found {
		t.Fatalf("root grid not restored: %v", h.renderer.entries)
	}

	// Backspace at the root is a no-op.
	h.ctrl.HandleKey(context.Background(), key.NewEvent(key.CodeBackspace, 0, 0))
	if h.ctrl.Current() != Grid {
		t.Fatal("backspace at root should not leave grid mode")
	}
}

func TestScrollKeys(t *testing.T) {
	h := newHarness(t, "AS")
	h.ctrl.ActivateScroll(context.Background())

	tests := []struct {
		ev   key.Event
		want string
	}{
		{press('j'), "scroll 0,-3"},
		{press('k'), "scroll 0,3"},
		{press('h'), "scroll 3,0"},
		{press('l'), "scroll -3,0"},
		{press('d'), "scroll 0,-15"},
		{press('u'), "scroll 0,15"},
		{press('f'), "scroll 0,-30"},
		{press('b'), "scroll 0,30"},
		{key.NewEvent(key.CodeDown, 0, 0), "scroll 0,-3"},
		{key.NewEvent(key.CodeUp, 0, 0), "scroll 0,3"},
	}
	for i, tt := range tests {
		h.synth.events = nil
		handled, err := h.ctrl.HandleKey(context.Background(), tt.ev)
		if err != nil || !handled {
			t.Fatalf("case %d: handled=%v err=%v", i, handled, err)
		}
		if len(h.synth.events) != 1 || h.synth.events[0] != tt.want {
			t.Fatalf("case %d: events = %v, want %q", i, h.synth.events, tt.want)
		}
	}

	// Unmapped keys are consumed but do nothing.
	h.synth.events = nil
	if handled, _ := h.ctrl.HandleKey(context.Background(), press('x')); !handled {
		t.Fatal("scroll mode should consume unmapped keys")
	}
	if len(h.synth.events) != 0 {
		t.Fatalf("unmapped key scrolled: %v", h.synth.events)
	}
}

func TestToggleSameModeDeactivates(t *testing.T) {
	h := newHarness(t, "AS", button(image.Rect(10, 10, 110, 40), "ok"))

	h.ctrl.Toggle(context.Background(), Hints)
	if h.ctrl.Current() != Hints {
		t.Fatal("toggle did not activate")
	}
	h.ctrl.Toggle(context.Background(), Hints)
	if h.ctrl.Current() != Idle {
		t.Fatal("second toggle did not deactivate")
	}
}

func TestModeSwitchTearsDownPreviousMode(t *testing.T) {
	h := newHarness(t, "AS", button(image.Rect(10, 10, 110, 40), "ok"))

	h.ctrl.ActivateHints(context.Background())
	h.ctrl.ActivateGrid(context.Background())
	if h.ctrl.Current() != Grid {
		t.Fatal("grid activation failed")
	}
	if h.index.HeldCount() != 0 {
		t.Fatal("hint elements survived the switch to grid mode")
	}
}

func TestIdleIgnoresKeys(t *testing.T) {
	h := newHarness(t, "AS")
	handled, err := h.ctrl.HandleKey(context.Background(), press('a'))
	if err != nil || handled {
		t.Fatalf("idle consumed a key: handled=%v err=%v", handled, err)
	}
}

func TestOnChangeObservers(t *testing.T) {
	h := newHarness(t, "AS", button(image.Rect(10, 10, 110, 40), "ok"))
	var transitions []string
	h.ctrl.OnChange(func(from, to Mode) {
		transitions = append(transitions, fmt.Sprintf("%v->%v", from, to))
	})

	h.ctrl.ActivateHints(context.Background())
	h.ctrl.Deactivate(context.Background())
	if len(transitions) != 2 || transitions[0] != "idle->hints" || transitions[1] != "hints->idle" {
		t.Fatalf("transitions = %v", transitions)
	}
}
