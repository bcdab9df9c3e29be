package accessibility

import (
	"image"
	"sync"
)

// MockNode is a node in a fake accessibility tree used by tests and the
// preview backend.
type MockNode struct {
	Attrs    Attributes
	Children []*MockNode

	// Stale marks the node as released/vanished: attribute reads fail.
	Stale bool
}

// NewMockNode builds a node with the given attributes.
func NewMockNode(attrs Attributes, children ...*MockNode) *MockNode {
	return &MockNode{Attrs: attrs, Children: children}
}

// MockClient is an in-memory Client over a set of fake surfaces. The
// zero value is unusable; use NewMockClient.
type MockClient struct {
	mu sync.Mutex

	permitted bool
	screen    image.Rectangle

	// surfaces are hit-tested topmost first. The first surface is also
	// the frontmost window returned to discovery.
	surfaces []*MockNode

	bundles map[int]string

	hashes   map[*MockNode]uint64
	nextHash uint64
	retains  map[*MockNode]int
}

// NewMockClient creates a permitted mock client with the given screen
// bounds and surfaces (topmost first).
func NewMockClient(screen image.Rectangle, surfaces ...*MockNode) *MockClient {
	return &MockClient{
		permitted: true,
		screen:    screen,
		surfaces:  surfaces,
		bundles:   make(map[int]string),
		hashes:    make(map[*MockNode]uint64),
		nextHash:  1,
		retains:   make(map[*MockNode]int),
	}
}

// SetPermitted toggles the simulated accessibility permission.
func (c *MockClient) SetPermitted(ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.permitted = ok
}

// SetBundle associates a bundle identifier with a pid.
func (c *MockClient) SetBundle(pid int, bundle string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bundles[pid] = bundle
}

// PushSurface inserts a surface above all existing ones.
func (c *MockClient) PushSurface(n *MockNode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surfaces = append([]*MockNode{n}, c.surfaces...)
}

// RetainCount returns the current retain count for a node.
func (c *MockClient) RetainCount(n *MockNode) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retains[n]
}

// TotalRetains returns the sum of all outstanding retains.
func (c *MockClient) TotalRetains() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.retains {
		total += n
	}
	return total
}

// Permitted implements Client.
func (c *MockClient) Permitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.permitted
}

// FrontmostWindow implements Client.
func (c *MockClient) FrontmostWindow() Ref {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.surfaces) == 0 {
		return nil
	}
	return c.surfaces[0]
}

// FocusedApplication implements Client.
func (c *MockClient) FocusedApplication() Ref {
	return c.FrontmostWindow()
}

// Children implements Client.
func (c *MockClient) Children(ref Ref) []Ref {
	n, ok := ref.(*MockNode)
	if !ok || n == nil {
		return nil
	}
	out := make([]Ref, len(n.Children))
	for i, child := range n.Children {
		out[i] = child
	}
	return out
}

// Attributes implements Client.
func (c *MockClient) Attributes(ref Ref) (Attributes, error) {
	n, ok := ref.(*MockNode)
	if !ok || n == nil || n.Stale {
		return Attributes{}, errStaleRef
	}
	return n.Attrs, nil
}

// ElementAt implements Client: topmost surface first, deepest containing
// node within a surface.
func (c *MockClient) ElementAt(pt image.Point) Ref {
	c.mu.Lock()
	surfaces := c.surfaces
	c.mu.Unlock()

	for _, surface := range surfaces {
		if hit := deepestAt(surface, pt); hit != nil {
			c.Retain(hit)
			return hit
		}
	}
	return nil
}

// Equal implements Client.
func (c *MockClient) Equal(a, b Ref) bool {
	na, okA := a.(*MockNode)
	nb, okB := b.(*MockNode)
	return okA && okB && na == nb
}

// Hash implements Client.
func (c *MockClient) Hash(ref Ref) uint64 {
	n, ok := ref.(*MockNode)
	if !ok || n == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.hashes[n]; ok {
		return h
	}
	h := c.nextHash
	c.nextHash++
	c.hashes[n] = h
	return h
}

// Retain implements Client.
func (c *MockClient) Retain(ref Ref) {
	n, ok := ref.(*MockNode)
	if !ok || n == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retains[n]++
}

// Release implements Client.
func (c *MockClient) Release(ref Ref) {
	n, ok := ref.(*MockNode)
	if !ok || n == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retains[n]--
}

// BundleIdentifier implements Client.
func (c *MockClient) BundleIdentifier(pid int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bundles[pid]
}

// ScreenBounds implements Client.
func (c *MockClient) ScreenBounds() image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// deepestAt returns the deepest node in the tree whose frame contains pt.
func deepestAt(n *MockNode, pt image.Point) *MockNode {
	if n == nil || n.Stale || !pt.In(n.Attrs.Frame) {
		return nil
	}
	for _, child := range n.Children {
		if hit := deepestAt(child, pt); hit != nil {
			return hit
		}
	}
	return n
}

// errStaleRef is returned for attribute reads on released handles.
var errStaleRef = staleRefError{}

type staleRefError struct{}

func (staleRefError) Error() string { return "stale accessibility element reference" }
