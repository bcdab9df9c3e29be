package pointer

import (
	"context"
	"fmt"
	"image"
	"time"
)

// fakeSynth records every posted event in order.
type fakeSynth struct {
	pos    image.Point
	events []string
	posErr error
}

func (f *fakeSynth) Warp(p image.Point) error {
	f.pos = p
	f.events = append(f.events, fmt.Sprintf("warp %d,%d", p.X, p.Y))
	return nil
}

func (f *fakeSynth) ButtonDown(b Button, p image.Point) error {
	f.events = append(f.events, fmt.Sprintf("down %s %d,%d", b, p.X, p.Y))
	return nil
}

func (f *fakeSynth) ButtonUp(b Button, p image.Point) error {
	f.events = append(f.events, fmt.Sprintf("up %s %d,%d", b, p.X, p.Y))
	return nil
}

func (f *fakeSynth) Scroll(d ScrollDelta) error {
	f.events = append(f.events, fmt.Sprintf("scroll %d,%d", d.X, d.Y))
	return nil
}

func (f *fakeSynth) Position() (image.Point, error) {
	if f.posErr != nil {
		return image.Point{}, f.posErr
	}
	return f.pos, nil
}

// instantSleep records requested delays without waiting.
func instantSleep(slept *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
}
