package grid

import (
	"image"
	"strings"

	"github.com/kbaines/pounce/internal/hint"
	"github.com/kbaines/pounce/internal/perr"
)

// Defaults for the partition shape. 26 cells fit a one-character label per
// cell with the default alphabet.
const (
	DefaultRows = 4
	DefaultCols = 7

	DefaultMinCellWidth  = 30
	DefaultMinCellHeight = 30
	DefaultMaxDepth      = 4
)

// Cell is one labeled tile of a grid.
type Cell struct {
	Label  string
	Bounds image.Rectangle
	Row    int
	Col    int
}

// Center returns the cell's midpoint, the pointer target when the cell is
// selected at the deepest level.
func (c Cell) Center() image.Point {
	return image.Pt(c.Bounds.Min.X+c.Bounds.Dx()/2, c.Bounds.Min.Y+c.Bounds.Dy()/2)
}

// Grid is one fully partitioned rectangle. Cells are stored row-major.
type Grid struct {
	Bounds image.Rectangle
	Rows   int
	Cols   int
	Depth  int
	Cells  []Cell
}

// CellAt returns the cell at (row, col).
func (g *Grid) CellAt(row, col int) Cell {
	return g.Cells[row*g.Cols+col]
}

// Match returns the cells whose labels start with prefix, row-major.
func (g *Grid) Match(prefix string) []Cell {
	out := make([]Cell, 0, len(g.Cells))
	for _, c := range g.Cells {
		if strings.HasPrefix(c.Label, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// Exact returns the cell whose label equals label, if any.
func (g *Grid) Exact(label string) (Cell, bool) {
	for _, c := range g.Cells {
		if c.Label == label {
			return c, true
		}
	}
	return Cell{}, false
}

// Options configure a Partitioner. Zero values take the package defaults.
type Options struct {
	Rows          int
	Cols          int
	MinCellWidth  int
	MinCellHeight int
	MaxDepth      int
}

func (o *Options) fill() {
	if o.Rows <= 0 {
		o.Rows = DefaultRows
	}
	if o.Cols <= 0 {
		o.Cols = DefaultCols
	}
	if o.MinCellWidth <= 0 {
		o.MinCellWidth = DefaultMinCellWidth
	}
	if o.MinCellHeight <= 0 {
		o.MinCellHeight = DefaultMinCellHeight
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
}

// Partitioner slices rectangles into labeled grids. Labels come from the
// same prefix-free generator the hint overlay uses, assigned row-major, so
// a grid's labeling is fully determined by its shape and alphabet.
type Partitioner struct {
	alloc *hint.Allocator
	opts  Options
}

// NewPartitioner builds a partitioner over the given label alphabet.
func NewPartitioner(alphabet string, opts Options) (*Partitioner, error) {
	opts.fill()
	alloc, err := hint.NewAllocator(alphabet)
	if err != nil {
		return nil, err
	}
	if opts.Rows*opts.Cols > alloc.Capacity() {
		return nil, perr.Newf(perr.CodeInvalidConfig,
			"grid %dx%d exceeds label capacity %d", opts.Rows, opts.Cols, alloc.Capacity())
	}
	return &Partitioner{alloc: alloc, opts: opts}, nil
}

// Partition tiles bounds into Rows x Cols cells. Cell edges are computed by
// integer division with the remainder absorbed by the last row and column,
// so the cells cover bounds exactly with no gaps or overlap.
func (p *Partitioner) Partition(bounds image.Rectangle, depth int) (*Grid, error) {
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, perr.Newf(perr.CodeInvalidInput, "cannot partition empty bounds %v", bounds)
	}
	rows, cols := p.opts.Rows, p.opts.Cols
	labels, err := p.alloc.Labels(rows * cols)
	if err != nil {
		return nil, err
	}

	cellW := bounds.Dx() / cols
	cellH := bounds.Dy() / rows
	g := &Grid{Bounds: bounds, Rows: rows, Cols: cols, Depth: depth, Cells: make([]Cell, 0, rows*cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			min := image.Pt(bounds.Min.X+c*cellW, bounds.Min.Y+r*cellH)
			max := image.Pt(min.X+cellW, min.Y+cellH)
			if c == cols-1 {
				max.X = bounds.Max.X
			}
			if r == rows-1 {
				max.Y = bounds.Max.Y
			}
			g.Cells = append(g.Cells, Cell{
				Label:  labels[r*cols+c],
				Bounds: image.Rectangle{Min: min, Max: max},
				Row:    r,
				Col:    c,
			})
		}
	}
	return g, nil
}

// Divisible reports whether the cell is large enough, and the depth shallow
// enough, for another level of partitioning.
func (p *Partitioner) Divisible(c Cell, depth int) bool {
	if depth+1 >= p.opts.MaxDepth {
		return false
	}
	return c.Bounds.Dx()/p.opts.Cols >= p.opts.MinCellWidth &&
		c.Bounds.Dy()/p.opts.Rows >= p.opts.MinCellHeight
}
