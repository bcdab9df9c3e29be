package accessibility

import (
	"image"
	"testing"
)

func TestElementAccessors(t *testing.T) {
	node := NewMockNode(Attributes{
		Role:            RoleButton,
		Title:           "submit",
		RoleDescription: "button",
		Frame:           image.Rect(10, 20, 110, 60),
		Enabled:         true,
		Focused:         true,
		PID:             42,
		Actions:         []string{ActionPress},
	})
	client := NewMockClient(image.Rect(0, 0, 800, 600), node)

	attrs, err := client.Attributes(node)
	if err != nil {
		t.Fatalf("Attributes: %v", err)
	}
	e := newElement(client, node, attrs)

	if e.Role() != RoleButton || e.Title() != "submit" || e.RoleDescription() != "button" {
		t.Error("attribute accessors mismatch")
	}
	if e.PID() != 42 || !e.Enabled() || !e.Focused() {
		t.Error("flag accessors mismatch")
	}
	if got := e.Center(); got != (image.Point{X: 60, Y: 40}) {
		t.Errorf("Center() = %v", got)
	}
}

func TestElementIdentity(t *testing.T) {
	node := NewMockNode(Attributes{
		Role: RoleButton, Frame: image.Rect(0, 0, 10, 10), Enabled: true, PID: 1,
	})
	client := NewMockClient(image.Rect(0, 0, 800, 600), node)

	attrs, _ := client.Attributes(node)
	// Two distinct handles to the same platform object.
	e1 := newElement(client, node, attrs)
	e2 := newElement(client, node, attrs)

	if !e1.Equal(e2) {
		t.Error("handles of the same platform object must compare equal")
	}
	if e1.HashKey() != e2.HashKey() {
		t.Error("hash must be consistent with equality")
	}

	other := NewMockNode(Attributes{
		Role: RoleButton, Frame: image.Rect(20, 0, 30, 10), Enabled: true, PID: 1,
	})
	attrsOther, _ := client.Attributes(other)
	e3 := newElement(client, other, attrsOther)
	if e1.Equal(e3) {
		t.Error("distinct platform objects must not compare equal")
	}

	e1.release()
	e2.release()
	e3.release()
}

func TestElementReleaseIsIdempotent(t *testing.T) {
	node := NewMockNode(Attributes{
		Role: RoleButton, Frame: image.Rect(0, 0, 10, 10), Enabled: true, PID: 1,
	})
	client := NewMockClient(image.Rect(0, 0, 800, 600), node)
	attrs, _ := client.Attributes(node)
	e := newElement(client, node, attrs)

	e.release()
	e.release()

	if client.RetainCount(node) != 0 {
		t.Errorf("retain count = %d, want 0", client.RetainCount(node))
	}
	if !e.Released() {
		t.Error("element should report released")
	}
	if e.Equal(e) {
		t.Error("released handle must not claim identity")
	}
}
