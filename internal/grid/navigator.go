package grid

import (
	"image"

	"github.com/kbaines/pounce/internal/perr"
)

// Navigator drives recursive grid selection. It keeps the stack of grids
// entered so far; Ascend pops one level, mirroring what a backspace does in
// the grid mode.
type Navigator struct {
	part  *Partitioner
	stack []*Grid
}

// NewNavigator wraps a partitioner with selection history.
func NewNavigator(part *Partitioner) *Navigator {
	return &Navigator{part: part}
}

// Start resets history and partitions the root bounds.
func (n *Navigator) Start(bounds image.Rectangle) (*Grid, error) {
	g, err := n.part.Partition(bounds, 0)
	if err != nil {
		return nil, err
	}
	n.stack = n.stack[:0]
	n.stack = append(n.stack, g)
	return g, nil
}

// Current returns the grid at the top of the stack, or nil before Start.
func (n *Navigator) Current() *Grid {
	if len(n.stack) == 0 {
		return nil
	}
	return n.stack[len(n.stack)-1]
}

// Depth returns how many levels deep the navigator is; 0 before Start,
// 1 at the root grid.
func (n *Navigator) Depth() int { return len(n.stack) }

// Select resolves a full cell label on the current grid. When the cell can
// be subdivided the subgrid is pushed and returned with done=false. When it
// cannot, the cell itself is the final target and done=true; the stack is
// left untouched so the caller can still Ascend.
func (n *Navigator) Select(label string) (cell Cell, sub *Grid, done bool, err error) {
	cur := n.Current()
	if cur == nil {
		return Cell{}, nil, false, perr.New(perr.CodeInvalidInput, "grid navigation not started")
	}
	c, ok := cur.Exact(label)
	if !ok {
		return Cell{}, nil, false, perr.Newf(perr.CodeInvalidInput, "no grid cell labeled %q", label)
	}
	if !n.part.Divisible(c, cur.Depth) {
		return c, nil, true, nil
	}
	g, err := n.part.Partition(c.Bounds, cur.Depth+1)
	if err != nil {
		return Cell{}, nil, false, err
	}
	n.stack = append(n.stack, g)
	return c, g, false, nil
}

// Ascend pops one level and returns the grid uncovered, or false when
// already at the root.
func (n *Navigator) Ascend() (*Grid, bool) {
	if len(n.stack) <= 1 {
		return n.Current(), false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return n.Current(), true
}

// Reset drops all history.
func (n *Navigator) Reset() { n.stack = n.stack[:0] }
