package accessibility

import "image"

// Ref is an opaque handle into the platform accessibility tree. Refs are
// only meaningful to the Client that produced them. Two distinct Refs may
// denote the same underlying element; use Client.Equal, never Go equality.
type Ref any

// ActionPress is the action name exposed by clickable elements.
const ActionPress = "AXPress"

// Roles commonly exposed by actionable elements.
const (
	RoleButton        = "AXButton"
	RoleLink          = "AXLink"
	RoleTextField     = "AXTextField"
	RoleTextArea      = "AXTextArea"
	RoleCheckBox      = "AXCheckBox"
	RoleRadioButton   = "AXRadioButton"
	RoleMenuItem      = "AXMenuItem"
	RolePopUpButton   = "AXPopUpButton"
	RoleSlider        = "AXSlider"
	RoleSwitch        = "AXSwitch"
	RoleMenuBarItem   = "AXMenuBarItem"
	RoleDockItem      = "AXDockItem"
	RoleScrollArea    = "AXScrollArea"
	RoleWindow        = "AXWindow"
	RoleStaticText    = "AXStaticText"
	RoleImage         = "AXImage"
	RoleGroup         = "AXGroup"
	RoleApplication   = "AXApplication"
	RoleSheet         = "AXSheet"
	RoleToolbar       = "AXToolbar"
	RoleTabGroup      = "AXTabGroup"
	RoleOutlineRow    = "AXRow"
	RoleDisclosure    = "AXDisclosureTriangle"
	RoleMenuBar       = "AXMenuBar"
	RoleScrollBar     = "AXScrollBar"
	RoleComboBox      = "AXComboBox"
)

// Attributes is a snapshot of an element's accessibility attributes.
type Attributes struct {
	Role            string
	Title           string
	RoleDescription string
	Frame           image.Rectangle
	Enabled         bool
	Focused         bool
	PID             int
	Actions         []string
}

// Actionable reports whether the attributes describe an element that can
// receive a pointer action.
func (a Attributes) Actionable() bool {
	for _, action := range a.Actions {
		if action == ActionPress {
			return true
		}
	}
	return false
}

// Client is the platform accessibility bridge. Implementations wrap the
// native API; the mock implementation in this package serves tests.
//
// All methods must be safe to call with stale Refs: a released or vanished
// element yields an error or empty result, never a crash.
type Client interface {
	// Permitted reports whether accessibility access is authorized.
	// Prompting the user is the caller's concern, not the client's.
	Permitted() bool

	// FrontmostWindow returns the frontmost window of the focused
	// application, or nil if there is none.
	FrontmostWindow() Ref

	// FocusedApplication returns the focused application element, or nil.
	FocusedApplication() Ref

	// Children returns the child elements of ref in stable order. The
	// returned refs are borrowed: valid for the duration of the walk,
	// retained explicitly if kept.
	Children(ref Ref) []Ref

	// Attributes reads the attribute snapshot for ref. A stale or released
	// handle returns an error.
	Attributes(ref Ref) (Attributes, error)

	// ElementAt hit-tests a screen point, returning the deepest element at
	// that point, or nil if the point resolves to nothing. A non-nil
	// result is retained; the caller must release it.
	ElementAt(pt image.Point) Ref

	// Equal reports platform object identity for two refs.
	Equal(a, b Ref) bool

	// Hash returns a hash consistent with Equal.
	Hash(ref Ref) uint64

	// Retain increments the platform reference count of ref.
	Retain(ref Ref)

	// Release decrements the platform reference count of ref.
	Release(ref Ref)

	// BundleIdentifier returns the bundle identifier owning pid, or "".
	BundleIdentifier(pid int) string

	// ScreenBounds returns the bounds of the active screen.
	ScreenBounds() image.Rectangle
}
