package hint

import (
	"sort"
	"strings"

	"github.com/kbaines/pounce/internal/accessibility"
)

// Hint is one labeled element. MatchedPrefixLen is the number of leading
// label characters the current input buffer has matched; renderers use it
// to dim the typed portion.
type Hint struct {
	Label            string
	Element          *accessibility.Element
	MatchedPrefixLen int
}

// Matches reports whether the hint survives the given input prefix.
func (h *Hint) Matches(prefix string) bool {
	return strings.HasPrefix(h.Label, prefix)
}

// Collection holds every hint allocated for a discovery pass. Refilter
// narrows the visible set against an input prefix without discarding the
// excluded hints, so shortening the prefix restores them.
type Collection struct {
	hints   []*Hint
	byLabel map[string]*Hint
}

// NewCollection builds a collection. Labels are assumed unique; the
// allocator guarantees that.
func NewCollection(hints []*Hint) *Collection {
	byLabel := make(map[string]*Hint, len(hints))
	for _, h := range hints {
		byLabel[h.Label] = h
	}
	return &Collection{hints: hints, byLabel: byLabel}
}

// Len returns the total hint count, filtered or not.
func (c *Collection) Len() int { return len(c.hints) }

// All returns every hint in allocation order.
func (c *Collection) All() []*Hint { return c.hints }

// Refilter recomputes each hint's matched prefix length against prefix and
// returns the hints that still match, in allocation order. Hints that fall
// out keep their previous prefix length frozen; they are simply absent from
// the returned slice.
func (c *Collection) Refilter(prefix string) []*Hint {
	matched := make([]*Hint, 0, len(c.hints))
	for _, h := range c.hints {
		if h.Matches(prefix) {
			h.MatchedPrefixLen = len(prefix)
			matched = append(matched, h)
		}
	}
	return matched
}

// Exact returns the hint whose label equals prefix, if any.
func (c *Collection) Exact(prefix string) (*Hint, bool) {
	h, ok := c.byLabel[prefix]
	return h, ok
}

// AnyMatch reports whether at least one hint survives the prefix. The mode
// controller uses this to decide whether to ignore a keystroke entirely.
func (c *Collection) AnyMatch(prefix string) bool {
	for _, h := range c.hints {
		if h.Matches(prefix) {
			return true
		}
	}
	return false
}

// SortByPosition orders elements top-to-bottom, then left-to-right, before
// allocation so that labels read naturally across the screen. Ties break on
// element hash for stability.
func SortByPosition(elements []*accessibility.Element) {
	sort.SliceStable(elements, func(i, j int) bool {
		a, b := elements[i].Frame().Min, elements[j].Frame().Min
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return elements[i].HashKey() < elements[j].HashKey()
	})
}
