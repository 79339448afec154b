package meshsync

import "github.com/gogpu/meshsync/command"

// RenderableID is the opaque identity the dispatcher assigns to each
// renderable at construction; stable for the renderable's lifetime.
type RenderableID uint64

// SizeProvider supplies a renderable's effective 3-component size,
// accounting for descendant size propagation in the scene graph.
type SizeProvider interface {
	EffectiveSize() Vec3
}

// Dispatcher is the scene-graph collaborator a Mesh is wired to. It assigns
// identity, routes property-change notifications, tracks which renderables
// are dirty, and supplies the frame context new renderables are seeded from.
//
// A Mesh receives its dispatcher at construction and never reaches for
// ambient global state.
type Dispatcher interface {
	// AssignIdentity returns a fresh renderable identity. Construction
	// cannot proceed if it fails.
	AssignIdentity() (RenderableID, error)

	// SubscribeTransform registers a callback for transform changes on
	// the owning node.
	SubscribeTransform(func(Mat4))

	// SubscribeSize registers a callback for size changes. The provider
	// resolves the effective size at notification time.
	SubscribeSize(func(SizeProvider))

	// SubscribeOpacity registers a callback for opacity changes.
	SubscribeOpacity(func(float32))

	// SubscribeOrigin registers a callback for origin changes.
	SubscribeOrigin(func(Vec3))

	// CurrentTransform returns the node's current transform, used to seed
	// a freshly created renderable.
	CurrentTransform() (Mat4, error)

	// CurrentOrigin returns the node's current origin, used to seed a
	// freshly created renderable.
	CurrentOrigin() (Vec3, error)

	// CurrentRenderPath returns the render path every drain's WITH header
	// selects.
	CurrentRenderPath() command.PathID

	// MarkDirty records that the renderable has pending, undrained
	// changes. Marking is idempotent within a frame.
	MarkDirty(RenderableID)
}

// Drainer is the flush-side contract of a renderable: emit everything
// pending to the sink and report whether the queue ended empty.
type Drainer interface {
	Drain(command.Sink) (bool, error)
}

// RenderableRegistrar is an optional dispatcher capability. Dispatchers
// that flush renderables themselves (like LocalDispatcher) implement it so
// a Mesh can hand itself over after identity assignment; pure routing
// dispatchers can omit it.
type RenderableRegistrar interface {
	RegisterRenderable(RenderableID, Drainer)
}
