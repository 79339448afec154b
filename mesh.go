package meshsync

import (
	"fmt"

	"github.com/gogpu/meshsync/command"
	"github.com/gogpu/meshsync/geometry"
	"github.com/gogpu/meshsync/material"
)

// Material slot names. Each slot is a shader-visible surface property
// assigned through SetMaterialInput or its typed convenience wrappers.
const (
	SlotBaseColor      = "baseColor"
	SlotNormal         = "normal"
	SlotGlossiness     = "glossiness"
	SlotMetallic       = "metallic"
	SlotPositionOffset = "positionOffset"
)

// Uniform names emitted for scene-graph property changes.
const (
	uniformTransform = "transform"
	uniformSize      = "size"
	uniformOrigin    = "origin"
	uniformOpacity   = "opacity"
)

// Mesh is the per-renderable command queue: an always-consistent,
// replayable record of everything that must be re-communicated to the
// graphics context to bring it up to date with the renderable's current
// scene-graph state.
//
// A Mesh is created with NewMesh, mutated by property-change notifications
// and explicit assignment calls, and drained once per frame by the
// dispatcher while dirty. It is not safe for concurrent use; the whole
// synchronization layer is frame-synchronous.
type Mesh struct {
	id         RenderableID
	dispatcher Dispatcher

	// queue holds property opcodes in notification order.
	queue command.Buffer

	// geomQueue holds pending GL_SET_GEOMETRY announcements, drained
	// between the path header and the invalidation replay.
	geomQueue command.Buffer

	// size caches the last size notification for external queries.
	size Vec3

	geometry *geometry.Descriptor

	// baseColor caches the last non-vector baseColor assignment; the
	// other material slots are write-only through the queue.
	baseColor any
}

// NewMesh constructs a renderable command queue bound to the dispatcher.
// It requests an identity, seeds the queue with a GL_CREATE_MESH opcode
// followed by the dispatcher's current transform and origin, and subscribes
// to transform, size, opacity and origin change notifications. A freshly
// created mesh is therefore correct before any future change fires.
//
// NewMesh fails only if the dispatcher cannot supply an identity or the
// current context; the failure is propagated, not recovered.
func NewMesh(d Dispatcher) (*Mesh, error) {
	id, err := d.AssignIdentity()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}

	m := &Mesh{id: id, dispatcher: d}
	m.queue.Append(command.New(command.OpCreateMesh))

	transform, err := d.CurrentTransform()
	if err != nil {
		return nil, fmt.Errorf("%w: transform: %v", ErrNoContext, err)
	}
	m.queue.Append(command.New(command.OpSetUniform, uniformTransform, transform))

	origin, err := d.CurrentOrigin()
	if err != nil {
		return nil, fmt.Errorf("%w: origin: %v", ErrNoContext, err)
	}
	m.queue.Append(command.New(command.OpSetUniform, uniformOrigin, origin))

	d.SubscribeTransform(m.OnTransformChange)
	d.SubscribeSize(m.OnSizeChange)
	d.SubscribeOpacity(m.OnOpacityChange)
	d.SubscribeOrigin(m.OnOriginChange)

	if r, ok := d.(RenderableRegistrar); ok {
		r.RegisterRenderable(id, m)
	}
	d.MarkDirty(id)

	return m, nil
}

// ID returns the identity the dispatcher assigned at construction.
func (m *Mesh) ID() RenderableID { return m.id }

// OnTransformChange appends a transform uniform update and marks the
// renderable dirty. Repeated changes within one frame each append an
// opcode; redundant uploads are preferred over reordering.
func (m *Mesh) OnTransformChange(transform Mat4) {
	m.dispatcher.MarkDirty(m.id)
	m.queue.Append(command.New(command.OpSetUniform, uniformTransform, transform))
}

// OnSizeChange derives the effective 3-component size from the provider,
// caches it, marks dirty, and appends a size uniform update.
func (m *Mesh) OnSizeChange(p SizeProvider) {
	m.size = p.EffectiveSize()
	m.dispatcher.MarkDirty(m.id)
	m.queue.Append(command.New(command.OpSetUniform, uniformSize, m.size))
}

// OnOriginChange marks dirty and appends an origin uniform update.
func (m *Mesh) OnOriginChange(origin Vec3) {
	m.dispatcher.MarkDirty(m.id)
	m.queue.Append(command.New(command.OpSetUniform, uniformOrigin, origin))
}

// OnOpacityChange marks dirty and appends an opacity uniform update.
func (m *Mesh) OnOpacityChange(opacity float32) {
	m.dispatcher.MarkDirty(m.id)
	m.queue.Append(command.New(command.OpSetUniform, uniformOpacity, opacity))
}

// Size returns the cached size from the last size notification.
// It has no side effects.
func (m *Mesh) Size() Vec3 { return m.size }

// Geometry returns the currently assigned geometry, or nil.
func (m *Mesh) Geometry() *geometry.Descriptor { return m.geometry }

// SetGeometry adopts the geometry reference and queues a GL_SET_GEOMETRY
// announcement for the next drain. Reassigning the same reference is a
// no-op; assigning a different reference queues exactly one announcement
// per change, and at most one announcement per geometry stays pending.
//
// SetGeometry must be called at least once before the first Drain.
func (m *Mesh) SetGeometry(g *geometry.Descriptor) {
	if g == m.geometry {
		return
	}
	m.geometry = g

	// Collapse an earlier pending announcement for the same geometry.
	m.geomQueue.RemoveIf(func(c command.Command) bool {
		return len(c.Args) > 0 && c.Args[0] == g.ID()
	})
	m.geomQueue.Append(command.New(command.OpSetGeometry, g.ID(), g.Topology(), g.Dynamic()))
	m.dispatcher.MarkDirty(m.id)
}

// SetMaterialInput assigns a value to a named material slot.
//
// If the value exposes a compile step (material.Compilable), it is resolved
// exactly once and the result used thereafter. Classification then routes
// the value: vectors are emitted as raw GL_UNIFORMS uploads, scalars as
// UNIFORM_INPUT, and compiled expressions (or any other payload, passed
// through uninterpreted) as MATERIAL_INPUT.
//
// Assigning baseColor marks the renderable dirty and caches the last
// non-vector value for retrieval via BaseColor; the other slots do
// neither.
func (m *Mesh) SetMaterialInput(slot string, value any) error {
	return m.setInput(slot, value, slot == SlotBaseColor)
}

// SetBaseColor assigns the baseColor slot.
func (m *Mesh) SetBaseColor(value any) error {
	return m.setInput(SlotBaseColor, value, true)
}

// SetNormal assigns the normal slot.
func (m *Mesh) SetNormal(value any) error {
	return m.setInput(SlotNormal, value, false)
}

// SetGlossiness assigns the glossiness slot.
func (m *Mesh) SetGlossiness(value any) error {
	return m.setInput(SlotGlossiness, value, false)
}

// SetMetallic assigns the metallic slot.
func (m *Mesh) SetMetallic(value any) error {
	return m.setInput(SlotMetallic, value, false)
}

// SetPositionOffset assigns the positionOffset slot, displacing vertices
// in the vertex stage.
func (m *Mesh) SetPositionOffset(value any) error {
	return m.setInput(SlotPositionOffset, value, false)
}

// BaseColor returns the last non-vector baseColor assignment, or nil.
func (m *Mesh) BaseColor() any { return m.baseColor }

// SetDrawOptions queues renderer draw options (blending, culling, depth
// mask) for the renderable and marks it dirty.
func (m *Mesh) SetDrawOptions(options map[string]any) {
	m.dispatcher.MarkDirty(m.id)
	m.queue.Append(command.New(command.OpSetDrawOptions, options))
}

func (m *Mesh) setInput(slot string, value any, dirty bool) error {
	if c, ok := value.(material.Compilable); ok {
		resolved, err := c.Resolve()
		if err != nil {
			return err
		}
		value = resolved
	}

	in := material.Classify(value)
	switch in.Kind() {
	case material.KindVector:
		m.queue.Append(command.New(command.OpSetUniform, slot, in.Vector()))
	case material.KindScalar:
		m.queue.Append(command.New(command.OpUniformInput, slot, in.Scalar()))
	default:
		m.queue.Append(command.New(command.OpMaterialInput, slot, in.Value()))
	}

	if slot == SlotBaseColor && in.Kind() != material.KindVector {
		m.baseColor = in.Value()
	}
	if dirty {
		m.dispatcher.MarkDirty(m.id)
	}
	return nil
}

// Drain flushes everything pending to the sink:
//
//  1. a (WITH, renderPath) header selecting the path all subsequent
//     commands apply to;
//  2. pending geometry announcements;
//  3. the geometry's buffer invalidations, last-invalidated-first, each
//     emitted exactly once as GL_BUFFER_DATA;
//  4. the renderable's own opcode queue, strictly in FIFO order.
//
// It returns true iff the queue ended empty; the dispatcher uses a true
// result to clear the renderable's dirty flag. Draining before any
// geometry has been assigned is a fatal precondition violation: no
// partial output is emitted and ErrInvalidState is returned.
func (m *Mesh) Drain(sink command.Sink) (bool, error) {
	if m.geometry == nil {
		return false, fmt.Errorf("%w: drain without assigned geometry", ErrInvalidState)
	}

	sink.EmitCommand(command.New(command.OpWith, m.dispatcher.CurrentRenderPath()))
	m.geomQueue.DrainTo(sink)

	geomID := m.geometry.ID()
	m.geometry.DrainInvalidations(func(name string, values []float32, spacing int) {
		sink.EmitCommand(command.New(command.OpBufferData, geomID, name, values, spacing))
	})

	m.queue.DrainTo(sink)
	return m.queue.IsEmpty(), nil
}
