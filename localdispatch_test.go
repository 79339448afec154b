package meshsync

import (
	"fmt"
	"testing"

	"github.com/gogpu/meshsync/command"
	"github.com/gogpu/meshsync/geometry"
)

func TestLocalDispatcherIdentities(t *testing.T) {
	d := NewLocalDispatcher()
	a, err := d.AssignIdentity()
	if err != nil {
		t.Fatalf("AssignIdentity() failed: %v", err)
	}
	b, err := d.AssignIdentity()
	if err != nil {
		t.Fatalf("AssignIdentity() failed: %v", err)
	}
	if a == b {
		t.Errorf("identities not unique: %d == %d", a, b)
	}
}

func TestLocalDispatcherContext(t *testing.T) {
	d := NewLocalDispatcher(
		WithRenderPath("scene/terrain"),
		WithOrigin(Vec3{0, 1, 0}),
	)

	if got := d.CurrentRenderPath(); got != "scene/terrain" {
		t.Errorf("CurrentRenderPath() = %q, want scene/terrain", got)
	}
	tr, err := d.CurrentTransform()
	if err != nil {
		t.Fatalf("CurrentTransform() failed: %v", err)
	}
	if !tr.IsIdentity() {
		t.Errorf("default transform = %v, want identity", tr)
	}
	origin, err := d.CurrentOrigin()
	if err != nil {
		t.Fatalf("CurrentOrigin() failed: %v", err)
	}
	if origin != (Vec3{0, 1, 0}) {
		t.Errorf("CurrentOrigin() = %v, want {0 1 0}", origin)
	}

	d.SetRenderPath("scene/water")
	if got := d.CurrentRenderPath(); got != "scene/water" {
		t.Errorf("CurrentRenderPath() after change = %q, want scene/water", got)
	}
}

func TestLocalDispatcherNotifications(t *testing.T) {
	d := NewLocalDispatcher()

	var gotTransform Mat4
	var gotOpacity float32
	var gotOrigin Vec3
	var gotSize Vec3
	d.SubscribeTransform(func(t Mat4) { gotTransform = t })
	d.SubscribeOpacity(func(o float32) { gotOpacity = o })
	d.SubscribeOrigin(func(o Vec3) { gotOrigin = o })
	d.SubscribeSize(func(p SizeProvider) { gotSize = p.EffectiveSize() })

	d.SetTransform(TranslationMat4(1, 2, 3))
	d.SetOpacity(0.5)
	d.SetOrigin(Vec3{4, 5, 6})
	d.SetSize(StaticSize{7, 8, 9})

	if gotTransform != TranslationMat4(1, 2, 3) {
		t.Error("transform subscriber not notified")
	}
	if gotOpacity != 0.5 {
		t.Error("opacity subscriber not notified")
	}
	if gotOrigin != (Vec3{4, 5, 6}) {
		t.Error("origin subscriber not notified")
	}
	if gotSize != (Vec3{7, 8, 9}) {
		t.Error("size subscriber not notified")
	}

	// SetTransform also updates the context new renderables seed from.
	tr, _ := d.CurrentTransform()
	if tr != TranslationMat4(1, 2, 3) {
		t.Error("CurrentTransform() does not reflect SetTransform")
	}
}

func TestLocalDispatcherFlush(t *testing.T) {
	d := NewLocalDispatcher(WithRenderPath("body/0"))

	m1, err := NewMesh(d)
	if err != nil {
		t.Fatalf("NewMesh() failed: %v", err)
	}
	m2, err := NewMesh(d)
	if err != nil {
		t.Fatalf("NewMesh() failed: %v", err)
	}
	m1.SetGeometry(geometry.Triangle())
	m2.SetGeometry(geometry.Plane(1, 1))

	if d.DirtyCount() != 2 {
		t.Fatalf("DirtyCount() = %d, want 2", d.DirtyCount())
	}

	var s command.Stream
	n, err := d.Flush(&s)
	if err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Flush() drained %d renderables, want 2", n)
	}
	if d.DirtyCount() != 0 {
		t.Errorf("DirtyCount() after flush = %d, want 0", d.DirtyCount())
	}

	// Both renderables drained, lower identity first.
	var headers int
	var creates int
	for _, c := range s.Commands() {
		switch c.Op {
		case command.OpWith:
			headers++
		case command.OpCreateMesh:
			creates++
		}
	}
	if headers != 2 || creates != 2 {
		t.Errorf("flush emitted %d headers and %d creates, want 2 and 2", headers, creates)
	}

	// A clean dispatcher flushes nothing.
	s.Reset()
	n, err = d.Flush(&s)
	if err != nil {
		t.Fatalf("second Flush() failed: %v", err)
	}
	if n != 0 || s.Len() != 0 {
		t.Errorf("clean flush drained %d renderables, %d commands", n, s.Len())
	}
}

func TestLocalDispatcherFlushOrder(t *testing.T) {
	d := NewLocalDispatcher()

	var order []RenderableID
	for i := 0; i < 3; i++ {
		id, _ := d.AssignIdentity()
		captured := id
		d.RegisterRenderable(id, drainerFunc(func(sink command.Sink) (bool, error) {
			order = append(order, captured)
			return true, nil
		}))
		d.MarkDirty(id)
	}

	var s command.Stream
	if _, err := d.Flush(&s); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("flush order = %v, want ascending identities", order)
		}
	}
}

func TestLocalDispatcherFlushError(t *testing.T) {
	d := NewLocalDispatcher()

	id, _ := d.AssignIdentity()
	d.RegisterRenderable(id, drainerFunc(func(command.Sink) (bool, error) {
		return false, fmt.Errorf("drain exploded")
	}))
	d.MarkDirty(id)

	var s command.Stream
	if _, err := d.Flush(&s); err == nil {
		t.Error("Flush() should propagate drain errors")
	}
}

func TestLocalDispatcherFlushKeepsDirtyOnFalse(t *testing.T) {
	d := NewLocalDispatcher()

	id, _ := d.AssignIdentity()
	d.RegisterRenderable(id, drainerFunc(func(command.Sink) (bool, error) {
		return false, nil
	}))
	d.MarkDirty(id)

	var s command.Stream
	if _, err := d.Flush(&s); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	if d.DirtyCount() != 1 {
		t.Errorf("renderable reporting a non-empty queue must stay dirty")
	}
}

func TestLocalDispatcherUnregisteredDirty(t *testing.T) {
	d := NewLocalDispatcher()
	d.MarkDirty(42)

	var s command.Stream
	n, err := d.Flush(&s)
	if err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Flush() drained %d renderables, want 0", n)
	}
	if d.DirtyCount() != 0 {
		t.Error("unregistered dirty entry should be discarded")
	}
}

// drainerFunc adapts a function to the Drainer interface for tests.
type drainerFunc func(command.Sink) (bool, error)

func (f drainerFunc) Drain(sink command.Sink) (bool, error) { return f(sink) }
