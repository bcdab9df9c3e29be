package overlay

import (
	"image"
	"testing"

	"github.com/kbaines/pounce/internal/grid"
	"github.com/kbaines/pounce/internal/hint"
)

func TestFromHintsCarriesMatchedPrefix(t *testing.T) {
	hints := []*hint.Hint{
		{Label: "JK", MatchedPrefixLen: 1},
		{Label: "JL", MatchedPrefixLen: 1},
	}
	entries := FromHints(hints)
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	for _, e := range entries {
		if e.Kind != KindHint || e.MatchedLen != 1 {
			t.Fatalf("entry = %+v", e)
		}
	}
	if entries[0].Key == entries[1].Key {
		t.Fatal("hint keys collide")
	}
}

func TestFromGridDimsNonMatching(t *testing.T) {
	p, err := grid.NewPartitioner("", grid.Options{Rows: 2, Cols: 2})
	if err != nil {
		t.Fatal(err)
	}
	g, err := p.Partition(image.Rect(0, 0, 400, 400), 0)
	if err != nil {
		t.Fatal(err)
	}

	prefix := g.Cells[0].Label
	entries := FromGrid(g, prefix)
	var dimmed, lit int
	for _, e := range entries {
		if e.Dimmed {
			dimmed++
			if e.MatchedLen != 0 {
				t.Fatalf("dimmed cell carries matched prefix: %+v", e)
			}
		} else {
			lit++
			if e.MatchedLen != len(prefix) {
				t.Fatalf("matching cell MatchedLen = %d", e.MatchedLen)
			}
		}
	}
	if lit != 1 || dimmed != 3 {
		t.Fatalf("lit=%d dimmed=%d, want 1/3", lit, dimmed)
	}
}

func TestFromGridStableKeysAcrossFrames(t *testing.T) {
	p, _ := grid.NewPartitioner("", grid.Options{Rows: 2, Cols: 2})
	g, _ := p.Partition(image.Rect(0, 0, 400, 400), 0)

	a := FromGrid(g, "")
	b := FromGrid(g, g.Cells[0].Label)
	d := Reconcile(a, b)
	if len(d.Add) != 0 || len(d.Remove) != 0 {
		t.Fatalf("prefix change should be updates only: %+v", d)
	}
}
