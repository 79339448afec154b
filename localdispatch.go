package meshsync

import (
	"sort"

	"github.com/gogpu/meshsync/command"
)

// LocalDispatcher is an in-memory Dispatcher for hosts that do not bring
// their own scene-graph dispatch layer: it assigns identities, routes
// property-change notifications to subscribers, tracks the dirty set, and
// flushes dirty renderables into a frame's command stream.
//
// LocalDispatcher is not safe for concurrent use; like the rest of the
// package it assumes frame-synchronous execution.
type LocalDispatcher struct {
	nextID RenderableID

	transformSubs []func(Mat4)
	sizeSubs      []func(SizeProvider)
	opacitySubs   []func(float32)
	originSubs    []func(Vec3)

	renderables map[RenderableID]Drainer
	dirty       map[RenderableID]struct{}

	transform Mat4
	origin    Vec3
	path      command.PathID
}

// DispatcherOption configures a LocalDispatcher.
type DispatcherOption func(*LocalDispatcher)

// WithRenderPath sets the render path drains select. Default is "".
func WithRenderPath(path command.PathID) DispatcherOption {
	return func(d *LocalDispatcher) {
		d.path = path
	}
}

// WithTransform sets the initial transform new renderables are seeded
// with. Default is the identity transform.
func WithTransform(t Mat4) DispatcherOption {
	return func(d *LocalDispatcher) {
		d.transform = t
	}
}

// WithOrigin sets the initial origin new renderables are seeded with.
func WithOrigin(o Vec3) DispatcherOption {
	return func(d *LocalDispatcher) {
		d.origin = o
	}
}

// NewLocalDispatcher creates a dispatcher with an identity transform and
// zero origin.
func NewLocalDispatcher(opts ...DispatcherOption) *LocalDispatcher {
	d := &LocalDispatcher{
		renderables: make(map[RenderableID]Drainer),
		dirty:       make(map[RenderableID]struct{}),
		transform:   IdentityMat4(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AssignIdentity implements Dispatcher.
func (d *LocalDispatcher) AssignIdentity() (RenderableID, error) {
	d.nextID++
	return d.nextID, nil
}

// SubscribeTransform implements Dispatcher.
func (d *LocalDispatcher) SubscribeTransform(fn func(Mat4)) {
	d.transformSubs = append(d.transformSubs, fn)
}

// SubscribeSize implements Dispatcher.
func (d *LocalDispatcher) SubscribeSize(fn func(SizeProvider)) {
	d.sizeSubs = append(d.sizeSubs, fn)
}

// SubscribeOpacity implements Dispatcher.
func (d *LocalDispatcher) SubscribeOpacity(fn func(float32)) {
	d.opacitySubs = append(d.opacitySubs, fn)
}

// SubscribeOrigin implements Dispatcher.
func (d *LocalDispatcher) SubscribeOrigin(fn func(Vec3)) {
	d.originSubs = append(d.originSubs, fn)
}

// CurrentTransform implements Dispatcher.
func (d *LocalDispatcher) CurrentTransform() (Mat4, error) {
	return d.transform, nil
}

// CurrentOrigin implements Dispatcher.
func (d *LocalDispatcher) CurrentOrigin() (Vec3, error) {
	return d.origin, nil
}

// CurrentRenderPath implements Dispatcher.
func (d *LocalDispatcher) CurrentRenderPath() command.PathID {
	return d.path
}

// SetRenderPath changes the path subsequent drains select.
func (d *LocalDispatcher) SetRenderPath(path command.PathID) {
	d.path = path
}

// MarkDirty implements Dispatcher. Marking is idempotent.
func (d *LocalDispatcher) MarkDirty(id RenderableID) {
	d.dirty[id] = struct{}{}
}

// RegisterRenderable implements RenderableRegistrar; Flush only drains
// registered renderables.
func (d *LocalDispatcher) RegisterRenderable(id RenderableID, r Drainer) {
	d.renderables[id] = r
}

// DirtyCount returns the number of renderables with pending changes.
func (d *LocalDispatcher) DirtyCount() int {
	return len(d.dirty)
}

// SetTransform updates the current transform and notifies subscribers.
func (d *LocalDispatcher) SetTransform(t Mat4) {
	d.transform = t
	for _, fn := range d.transformSubs {
		fn(t)
	}
}

// SetSize notifies size subscribers with the provider.
func (d *LocalDispatcher) SetSize(p SizeProvider) {
	for _, fn := range d.sizeSubs {
		fn(p)
	}
}

// SetOpacity notifies opacity subscribers.
func (d *LocalDispatcher) SetOpacity(opacity float32) {
	for _, fn := range d.opacitySubs {
		fn(opacity)
	}
}

// SetOrigin updates the current origin and notifies subscribers.
func (d *LocalDispatcher) SetOrigin(o Vec3) {
	d.origin = o
	for _, fn := range d.originSubs {
		fn(o)
	}
}

// Flush drains every dirty renderable once, in ascending identity order
// for deterministic output, and clears the dirty flag of each renderable
// whose drain reported an empty queue. It returns the number of
// renderables drained.
//
// A drain error is fatal for the frame and propagated immediately; the
// sink may have received the output of earlier renderables.
func (d *LocalDispatcher) Flush(sink command.Sink) (int, error) {
	if len(d.dirty) == 0 {
		return 0, nil
	}

	ids := make([]RenderableID, 0, len(d.dirty))
	for id := range d.dirty {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	drained := 0
	for _, id := range ids {
		r, ok := d.renderables[id]
		if !ok {
			// Dirty but never registered: nothing to drain.
			delete(d.dirty, id)
			continue
		}
		clean, err := r.Drain(sink)
		if err != nil {
			return drained, err
		}
		drained++
		if clean {
			delete(d.dirty, id)
		}
	}

	Logger().Debug("meshsync: frame flushed", "renderables", drained)
	return drained, nil
}

// StaticSize is a SizeProvider with a fixed effective size, for hosts
// without descendant size propagation.
type StaticSize Vec3

// EffectiveSize implements SizeProvider.
func (s StaticSize) EffectiveSize() Vec3 { return Vec3(s) }
