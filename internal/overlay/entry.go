package overlay

import (
	"fmt"
	"image"

	"github.com/kbaines/pounce/internal/grid"
	"github.com/kbaines/pounce/internal/hint"
)

// Kind distinguishes what an entry draws.
type Kind int

const (
	KindHint Kind = iota
	KindCell
	KindIndicator
)

func (k Kind) String() string {
	switch k {
	case KindHint:
		return "hint"
	case KindCell:
		return "cell"
	case KindIndicator:
		return "indicator"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entry is one drawable. Key is its stable identity across frames: two
// entries with equal keys are the same on-screen object, and a change in
// any other field is an in-place update rather than a remove and re-add.
type Entry struct {
	Key        string
	Kind       Kind
	Label      string
	Bounds     image.Rectangle
	MatchedLen int
	Dimmed     bool
}

// hintKey keys a hint badge. Labels are unique within a frame and stable
// for an unchanged element set, so the label alone identifies the badge.
func hintKey(label string) string { return "hint/" + label }

// cellKey keys a grid cell by depth and geometry; re-entering the same
// subgrid reuses the same keys and diffs to nothing.
func cellKey(depth int, b image.Rectangle) string {
	return fmt.Sprintf("cell/%d/%d,%d,%d,%d", depth, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// IndicatorKey is the single mode-indicator entry's key.
const IndicatorKey = "indicator"

// FromHints converts the matched hints of a collection into entries,
// anchored at each element's frame.
func FromHints(hints []*hint.Hint) []Entry {
	out := make([]Entry, 0, len(hints))
	for _, h := range hints {
		e := Entry{
			Key:        hintKey(h.Label),
			Kind:       KindHint,
			Label:      h.Label,
			MatchedLen: h.MatchedPrefixLen,
		}
		if h.Element != nil {
			e.Bounds = h.Element.Frame()
		}
		out = append(out, e)
	}
	return out
}

// FromGrid converts a grid's cells into entries. Cells that do not match
// the typed prefix are kept but dimmed, so backing out a keystroke is an
// update rather than a re-add.
func FromGrid(g *grid.Grid, prefix string) []Entry {
	out := make([]Entry, 0, len(g.Cells))
	for _, c := range g.Cells {
		matched := len(prefix)
		dim := false
		if !hasPrefix(c.Label, prefix) {
			matched = 0
			dim = true
		}
		out = append(out, Entry{
			Key:        cellKey(g.Depth, c.Bounds),
			Kind:       KindCell,
			Label:      c.Label,
			Bounds:     c.Bounds,
			MatchedLen: matched,
			Dimmed:     dim,
		})
	}
	return out
}

// Indicator builds the persistent mode badge shown while a mode is active.
func Indicator(text string, bounds image.Rectangle) Entry {
	return Entry{Key: IndicatorKey, Kind: KindIndicator, Label: text, Bounds: bounds}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
