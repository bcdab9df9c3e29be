package accessibility

import (
	"image"
	"slices"

	"go.uber.org/zap"
)

// DiscoveryOptions tunes element discovery and visibility filtering.
type DiscoveryOptions struct {
	// MaxDepth bounds the depth-first walk. Zero means DefaultMaxDepth.
	MaxDepth int

	// MinSize excludes elements smaller than this in either dimension.
	MinSize image.Point

	// ExtraRoles are treated as actionable even without a press action.
	ExtraRoles []string

	// ExcludeRoles are never included regardless of actions.
	ExcludeRoles []string

	// ExcludedBundleIDs short-circuits discovery for these applications.
	ExcludedBundleIDs []string

	// MinVisibleSamples is the number of sample points that must hit-test
	// back to the candidate's process for the element to count as visible.
	// Zero means DefaultMinVisibleSamples.
	MinVisibleSamples int
}

const (
	// DefaultMaxDepth bounds tree traversal depth.
	DefaultMaxDepth = 25

	// DefaultMinVisibleSamples is the occlusion-test threshold.
	DefaultMinVisibleSamples = 2

	// sampleInset is how far sample points sit inside the element's edges.
	// Sampling exactly on the edge hit-tests neighbouring elements too
	// often to be useful.
	sampleInset = 4
)

// Index discovers actionable elements and owns their handles for the
// duration of an active mode. It is not safe for concurrent use; the
// controller serializes all access.
type Index struct {
	client Client
	logger *zap.Logger
	opts   DiscoveryOptions
	held   []*Element
}

// NewIndex creates an index over the given client.
func NewIndex(client Client, opts DiscoveryOptions, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MinVisibleSamples <= 0 {
		opts.MinVisibleSamples = DefaultMinVisibleSamples
	}
	return &Index{client: client, logger: logger, opts: opts}
}

// Discover walks the accessibility tree from root depth-first and returns
// the actionable, visible elements in traversal order. It never fails:
// missing permission, a nil root, or per-element attribute errors all
// degrade to an empty or shorter result. Returned elements are owned by
// the index until ReleaseAll.
func (ix *Index) Discover(root Ref) []*Element {
	if root == nil {
		return nil
	}
	if !ix.client.Permitted() {
		ix.logger.Debug("discovery skipped, accessibility not permitted")
		return nil
	}

	rootAttrs, err := ix.client.Attributes(root)
	if err == nil && ix.excludedApp(rootAttrs.PID) {
		ix.logger.Debug("discovery skipped, application excluded",
			zap.Int("pid", rootAttrs.PID))
		return nil
	}

	var found []*Element
	seen := make(map[uint64][]Ref)

	type frame struct {
		ref   Ref
		depth int
	}
	stack := []frame{{ref: root, depth: 0}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		attrs, err := ix.client.Attributes(top.ref)
		if err != nil {
			// Stale handle mid-walk. Drop it and carry on; a single
			// element never aborts the pass.
			continue
		}

		if ix.duplicate(seen, top.ref) {
			continue
		}

		if ix.eligible(attrs) && ix.visible(attrs) {
			found = append(found, newElement(ix.client, top.ref, attrs))
		}

		if top.depth < ix.opts.MaxDepth {
			children := ix.client.Children(top.ref)
			// Push in reverse so traversal order matches the bridge's
			// child order.
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, frame{ref: children[i], depth: top.depth + 1})
			}
		}
	}

	ix.held = append(ix.held, found...)

	ix.logger.Debug("discovery complete", zap.Int("elements", len(found)))
	return found
}

// DiscoverFrontmost discovers from the frontmost window, falling back to
// the focused application when no window is available.
func (ix *Index) DiscoverFrontmost() []*Element {
	if root := ix.client.FrontmostWindow(); root != nil {
		return ix.Discover(root)
	}
	return ix.Discover(ix.client.FocusedApplication())
}

// ReleaseAll releases every element handle produced by discovery. The
// index is the sole long-term owner during an active mode; the controller
// calls this on return to idle. Idempotent.
func (ix *Index) ReleaseAll() {
	for _, e := range ix.held {
		e.release()
	}
	ix.held = nil
}

// HeldCount returns the number of element handles currently owned.
func (ix *Index) HeldCount() int {
	return len(ix.held)
}

// eligible applies the static attribute filter: actionable capability,
// enabled, minimum size, role includes/excludes.
func (ix *Index) eligible(attrs Attributes) bool {
	if !attrs.Enabled {
		return false
	}
	f := attrs.Frame
	if f.Empty() || f.Dx() < ix.opts.MinSize.X || f.Dy() < ix.opts.MinSize.Y {
		return false
	}
	if slices.Contains(ix.opts.ExcludeRoles, attrs.Role) {
		return false
	}
	if attrs.Actionable() {
		return true
	}
	return slices.Contains(ix.opts.ExtraRoles, attrs.Role)
}

// visible hit-tests a fixed set of sample points inset from the element's
// edges. The element is visible only if at least MinVisibleSamples resolve
// to an element owned by the same process: geometrically present but
// covered by another window fails this test.
func (ix *Index) visible(attrs Attributes) bool {
	samples := samplePoints(attrs.Frame)
	needed := ix.opts.MinVisibleSamples
	if needed > len(samples) {
		needed = len(samples)
	}

	hits := 0
	for i, pt := range samples {
		if ref := ix.client.ElementAt(pt); ref != nil {
			hit, err := ix.client.Attributes(ref)
			ix.client.Release(ref)
			if err == nil && hit.PID == attrs.PID {
				hits++
				if hits >= needed {
					return true
				}
			}
		}
		// Not enough samples left to reach the threshold.
		if hits+(len(samples)-1-i) < needed {
			return false
		}
	}
	return false
}

// duplicate records the ref in seen and reports whether an equal element
// was already visited. Hash buckets are confirmed with Equal because the
// hash is only consistent with, not equivalent to, identity.
func (ix *Index) duplicate(seen map[uint64][]Ref, ref Ref) bool {
	h := ix.client.Hash(ref)
	for _, prev := range seen[h] {
		if ix.client.Equal(prev, ref) {
			return true
		}
	}
	seen[h] = append(seen[h], ref)
	return false
}

func (ix *Index) excludedApp(pid int) bool {
	if len(ix.opts.ExcludedBundleIDs) == 0 {
		return false
	}
	bundle := ix.client.BundleIdentifier(pid)
	return bundle != "" && slices.Contains(ix.opts.ExcludedBundleIDs, bundle)
}

// samplePoints returns the visibility sample set for a frame: the center
// plus the four corners inset by sampleInset, clamped so tiny elements
// still sample inside their own bounds.
func samplePoints(f image.Rectangle) []image.Point {
	insetX := sampleInset
	if f.Dx() < 2*sampleInset+1 {
		insetX = f.Dx() / 3
	}
	insetY := sampleInset
	if f.Dy() < 2*sampleInset+1 {
		insetY = f.Dy() / 3
	}

	cx := f.Min.X + f.Dx()/2
	cy := f.Min.Y + f.Dy()/2

	return []image.Point{
		{X: cx, Y: cy},
		{X: f.Min.X + insetX, Y: f.Min.Y + insetY},
		{X: f.Max.X - 1 - insetX, Y: f.Min.Y + insetY},
		{X: f.Min.X + insetX, Y: f.Max.Y - 1 - insetY},
		{X: f.Max.X - 1 - insetX, Y: f.Max.Y - 1 - insetY},
	}
}
