package overlay

// Delta is the minimal set of operations turning one frame into the next.
// The three sets are disjoint by key.
type Delta struct {
	Add    []Entry
	Update []Entry
	Remove []string
}

// Empty reports whether applying the delta would change nothing.
func (d Delta) Empty() bool {
	return len(d.Add) == 0 && len(d.Update) == 0 && len(d.Remove) == 0
}

// Size returns the total operation count, for logging and metrics.
func (d Delta) Size() int { return len(d.Add) + len(d.Update) + len(d.Remove) }

// Reconcile diffs two frames by entry key. An entry present in both frames
// lands in Update only when some field actually changed; unchanged entries
// produce no operation at all, so Reconcile(x, x) is always empty.
func Reconcile(prev, next []Entry) Delta {
	prevByKey := make(map[string]Entry, len(prev))
	for _, e := range prev {
		prevByKey[e.Key] = e
	}

	var d Delta
	seen := make(map[string]bool, len(next))
	for _, e := range next {
		seen[e.Key] = true
		old, ok := prevByKey[e.Key]
		switch {
		case !ok:
			d.Add = append(d.Add, e)
		case old != e:
			d.Update = append(d.Update, e)
		}
	}
	for _, e := range prev {
		if !seen[e.Key] {
			d.Remove = append(d.Remove, e.Key)
		}
	}
	return d
}
