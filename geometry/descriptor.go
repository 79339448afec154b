// Package geometry describes mesh geometry as named vertex buffers plus the
// bookkeeping the synchronization layer needs to keep the GPU copy current:
// a primitive topology, a dynamic flag, and a queue of pending buffer
// invalidations.
//
// The package holds buffer metadata and values only; actual GPU storage
// belongs to the render backend that replays GL_BUFFER_DATA commands.
package geometry

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gputypes"
)

// ID is an opaque handle identifying one geometry descriptor.
// IDs are assigned at construction and stable for the descriptor's lifetime.
type ID uint64

// nextID is the process-wide descriptor ID counter.
var nextID atomic.Uint64

// Descriptor holds named vertex buffers with parallel name/value/spacing
// slices, the primitive topology, whether buffers may be re-uploaded, and
// the list of buffers changed since the last flush.
//
// Descriptor is not safe for concurrent use. A descriptor shared by several
// renderables assumes exclusive, single-consumer invalidation draining per
// frame (see DrainInvalidations).
type Descriptor struct {
	id       ID
	topology gputypes.PrimitiveTopology
	dynamic  bool

	// Parallel buffer slices; index i describes one named buffer.
	names    []string
	values   [][]float32
	spacings []int

	// invalidations holds buffer indices changed since the last flush,
	// consumed in reverse of insertion order.
	invalidations []int
}

// Option configures a Descriptor.
type Option func(*Descriptor)

// WithTopology sets the primitive topology. The default is
// gputypes.PrimitiveTopologyTriangleList.
func WithTopology(t gputypes.PrimitiveTopology) Option {
	return func(d *Descriptor) {
		d.topology = t
	}
}

// WithDynamic marks the geometry's buffers as re-uploadable. Static
// geometry (the default) is uploaded once and never rewritten in place.
func WithDynamic(dynamic bool) Option {
	return func(d *Descriptor) {
		d.dynamic = dynamic
	}
}

// NewDescriptor creates an empty geometry descriptor with a fresh identity.
func NewDescriptor(opts ...Option) *Descriptor {
	d := &Descriptor{
		id:       ID(nextID.Add(1)),
		topology: gputypes.PrimitiveTopologyTriangleList,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID returns the descriptor's identity.
func (d *Descriptor) ID() ID { return d.id }

// Topology returns the primitive topology.
func (d *Descriptor) Topology() gputypes.PrimitiveTopology { return d.topology }

// Dynamic reports whether buffers may be re-uploaded.
func (d *Descriptor) Dynamic() bool { return d.dynamic }

// BufferCount returns the number of named buffers.
func (d *Descriptor) BufferCount() int { return len(d.names) }

// BufferNames returns the buffer names in declaration order.
// The returned slice is owned by the descriptor.
func (d *Descriptor) BufferNames() []string { return d.names }

// Buffer returns the values and per-element spacing of the named buffer.
// ok is false if no buffer with that name exists.
func (d *Descriptor) Buffer(name string) (values []float32, spacing int, ok bool) {
	i := d.index(name)
	if i < 0 {
		return nil, 0, false
	}
	return d.values[i], d.spacings[i], true
}

// SetVertexBuffer adds or replaces a named buffer and marks it invalidated
// so the next flush re-uploads it. Spacing is the number of float values
// per element (e.g. 3 for vec3 positions).
func (d *Descriptor) SetVertexBuffer(name string, values []float32, spacing int) {
	i := d.index(name)
	if i < 0 {
		i = len(d.names)
		d.names = append(d.names, name)
		d.values = append(d.values, values)
		d.spacings = append(d.spacings, spacing)
	} else {
		d.values[i] = values
		d.spacings[i] = spacing
	}
	d.invalidate(i)
}

// Invalidate marks an existing named buffer as changed without replacing
// its values, forcing a re-upload on the next flush. It returns an error
// if no buffer with that name exists.
func (d *Descriptor) Invalidate(name string) error {
	i := d.index(name)
	if i < 0 {
		return fmt.Errorf("geometry: invalidate unknown buffer %q", name)
	}
	d.invalidate(i)
	return nil
}

// PendingInvalidations returns the number of buffers awaiting re-upload.
func (d *Descriptor) PendingInvalidations() int {
	return len(d.invalidations)
}

// DrainInvalidations consumes the invalidation list, calling fn once per
// pending buffer in last-invalidated-first order. Each entry is emitted at
// most once; the list is empty when DrainInvalidations returns.
//
// Draining is single-consumer: when several renderables share one
// descriptor, whichever drains first claims all pending entries.
func (d *Descriptor) DrainInvalidations(fn func(name string, values []float32, spacing int)) {
	for len(d.invalidations) > 0 {
		last := len(d.invalidations) - 1
		i := d.invalidations[last]
		d.invalidations = d.invalidations[:last]
		fn(d.names[i], d.values[i], d.spacings[i])
	}
}

// invalidate records a pending re-upload for buffer index i. A buffer
// already pending is not recorded twice.
func (d *Descriptor) invalidate(i int) {
	for _, pending := range d.invalidations {
		if pending == i {
			return
		}
	}
	d.invalidations = append(d.invalidations, i)
}

// index returns the slot of the named buffer, or -1.
func (d *Descriptor) index(name string) int {
	for i, n := range d.names {
		if n == name {
			return i
		}
	}
	return -1
}
