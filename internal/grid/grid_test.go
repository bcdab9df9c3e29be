package grid

import (
	"image"
	"testing"
)

func mustPartitioner(t *testing.T, opts Options) *Partitioner {
	t.Helper()
	p, err := NewPartitioner("", opts)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPartitionCoversExactly(t *testing.T) {
	p := mustPartitioner(t, Options{Rows: 3, Cols: 4})
	// 1001x763 does not divide evenly by either axis.
	bounds := image.Rect(10, 20, 1011, 783)
	g, err := p.Partition(bounds, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Cells) != 12 {
		t.Fatalf("cell count = %d, want 12", len(g.Cells))
	}

	// Every point of bounds belongs to exactly one cell.
	area := 0
	for i, a := range g.Cells {
		if !a.Bounds.In(bounds) {
			t.Fatalf("cell %d %v escapes bounds %v", i, a.Bounds, bounds)
		}
		area += a.Bounds.Dx() * a.Bounds.Dy()
		for j, b := range g.Cells {
			if i != j && a.Bounds.Overlaps(b.Bounds) {
				t.Fatalf("cells %d and %d overlap: %v, %v", i, j, a.Bounds, b.Bounds)
			}
		}
	}
	if want := bounds.Dx() * bounds.Dy(); area != want {
		t.Fatalf("total cell area %d != bounds area %d; tiling has gaps", area, want)
	}
}

func TestPartitionRemainderGoesToLastRowCol(t *testing.T) {
	p := mustPartitioner(t, Options{Rows: 2, Cols: 3})
	g, err := p.Partition(image.Rect(0, 0, 100, 50), 0)
	if err != nil {
		t.Fatal(err)
	}
	// 100/3 = 33 rem 1: last column is 34 wide.
	if w := g.CellAt(0, 2).Bounds.Dx(); w != 34 {
		t.Errorf("last column width = %d, want 34", w)
	}
	if w := g.CellAt(0, 0).Bounds.Dx(); w != 33 {
		t.Errorf("first column width = %d, want 33", w)
	}
}

func TestPartitionLabelsUniqueRowMajor(t *testing.T) {
	p := mustPartitioner(t, Options{Rows: 2, Cols: 2})
	g, _ := p.Partition(image.Rect(0, 0, 100, 100), 0)
	seen := make(map[string]bool)
	for _, c := range g.Cells {
		if c.Label == "" {
			t.Fatal("cell with empty label")
		}
		if seen[c.Label] {
			t.Fatalf("duplicate label %q", c.Label)
		}
		seen[c.Label] = true
	}
	if g.Cells[0].Row != 0 || g.Cells[0].Col != 0 || g.Cells[3].Row != 1 || g.Cells[3].Col != 1 {
		t.Fatal("cells not row-major")
	}
}

func TestPartitionDeterministic(t *testing.T) {
	p := mustPartitioner(t, Options{})
	a, _ := p.Partition(image.Rect(0, 0, 1440, 900), 0)
	b, _ := p.Partition(image.Rect(0, 0, 1440, 900), 0)
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("cell %d differs between identical partitions", i)
		}
	}
}

func TestPartitionEmptyBounds(t *testing.T) {
	p := mustPartitioner(t, Options{})
	if _, err := p.Partition(image.Rect(5, 5, 5, 100), 0); err == nil {
		t.Fatal("expected error for zero-width bounds")
	}
}

func TestMatchAndExact(t *testing.T) {
	p := mustPartitioner(t, Options{Rows: 2, Cols: 2})
	g, _ := p.Partition(image.Rect(0, 0, 100, 100), 0)

	first := g.Cells[0].Label
	if got := g.Match(first); len(got) != 1 || got[0].Label != first {
		t.Fatalf("Match(%q) = %v", first, got)
	}
	if got := g.Match(""); len(got) != 4 {
		t.Fatalf("Match(\"\") = %d cells, want 4", len(got))
	}
	if _, ok := g.Exact("??"); ok {
		t.Fatal("Exact matched a label that does not exist")
	}
}

func TestDivisibleHonorsMinSizeAndDepth(t *testing.T) {
	p := mustPartitioner(t, Options{Rows: 2, Cols: 2, MinCellWidth: 30, MinCellHeight: 30, MaxDepth: 3})

	big := Cell{Bounds: image.Rect(0, 0, 200, 200)}
	small := Cell{Bounds: image.Rect(0, 0, 50, 50)} // 50/2 = 25 < 30

	if !p.Divisible(big, 0) {
		t.Fatal("200x200 cell should subdivide at depth 0")
	}
	if p.Divisible(small, 0) {
		t.Fatal("50x50 cell should not subdivide below min cell size")
	}
	if p.Divisible(big, 2) {
		t.Fatal("depth 2 of max 3 should not subdivide again")
	}
}
