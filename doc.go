// Package meshsync synchronizes retained scene-graph renderables with a
// GPU command stream.
//
// A Mesh observes incremental property changes on one renderable —
// transform, size, opacity, origin, material inputs and geometry — and
// serializes them into a minimal, ordered sequence of draw commands that a
// shared renderer replays against a graphics context. The package never
// touches the graphics API itself; it consumes change notifications from a
// Dispatcher and produces commands for the render path to execute.
//
// # Architecture
//
//   - command: the opcode vocabulary and the ordered command buffer.
//   - geometry: named vertex buffers, topology, and buffer invalidations.
//   - material: scalar / vector / compiled-expression input classification.
//   - meshsync (this package): the per-renderable command queue (Mesh),
//     the Dispatcher contract, and an in-memory LocalDispatcher.
//   - replay: typed playback of the command stream into pluggable
//     backends, including a HAL uploader (replay/wgpuback).
//
// # Frame protocol
//
// Property changes append opcodes to the renderable's queue and mark it
// dirty with the dispatcher. Once per frame, the dispatcher drains each
// dirty renderable: the drain emits a path-selection header, any pending
// geometry binding, the geometry's buffer invalidations in last-in-first-out
// order, and finally the renderable's own opcodes strictly in FIFO order.
// Execution is single-threaded and frame-synchronous; within one renderable
// commands are observed in the exact order their triggering calls occurred.
//
// Example:
//
//	d := meshsync.NewLocalDispatcher(meshsync.WithRenderPath("body/0"))
//	mesh, err := meshsync.NewMesh(d)
//	if err != nil {
//	    // dispatcher could not supply an identity or context
//	}
//	mesh.SetGeometry(geometry.Sphere(16))
//	mesh.SetBaseColor([3]float32{1, 0, 0})
//
//	var frame command.Stream
//	d.Flush(&frame)
package meshsync
