package replay

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/meshsync/command"
	"github.com/gogpu/meshsync/geometry"
)

func init() {
	Register("trace", func() Backend { return NewTrace() })
}

// Trace is a Backend that records a human-readable line per replayed
// command instead of touching a graphics context. It is the reference
// backend for debugging drained streams and for asserting replay behavior
// in tests.
type Trace struct {
	lines []string
	began bool
	ended bool
}

// NewTrace creates an empty trace backend.
func NewTrace() *Trace {
	return &Trace{}
}

// Lines returns the recorded lines in replay order.
func (t *Trace) Lines() []string { return t.lines }

// String returns the whole trace, one command per line.
func (t *Trace) String() string { return strings.Join(t.lines, "\n") }

// Reset discards all recorded state so the trace can be reused.
func (t *Trace) Reset() {
	t.lines = t.lines[:0]
	t.began = false
	t.ended = false
}

func (t *Trace) record(format string, args ...any) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Begin implements Backend.
func (t *Trace) Begin() error {
	t.began = true
	t.record("begin")
	return nil
}

// SelectPath implements Backend.
func (t *Trace) SelectPath(path command.PathID) error {
	t.record("with %s", path)
	return nil
}

// CreateMesh implements Backend.
func (t *Trace) CreateMesh() error {
	t.record("create mesh")
	return nil
}

// SetGeometry implements Backend.
func (t *Trace) SetGeometry(id geometry.ID, topology gputypes.PrimitiveTopology, dynamic bool) error {
	t.record("set geometry %d topology=%d dynamic=%t", id, topology, dynamic)
	return nil
}

// UploadBuffer implements Backend.
func (t *Trace) UploadBuffer(id geometry.ID, name string, values []float32, spacing int) error {
	t.record("upload %d/%s %d floats spacing=%d", id, name, len(values), spacing)
	return nil
}

// SetUniform implements Backend.
func (t *Trace) SetUniform(name string, value any) error {
	t.record("uniform %s = %v", name, value)
	return nil
}

// UniformInput implements Backend.
func (t *Trace) UniformInput(name string, value float32) error {
	t.record("uniform input %s = %g", name, value)
	return nil
}

// MaterialInput implements Backend.
func (t *Trace) MaterialInput(name string, value any) error {
	t.record("material input %s = %T", name, value)
	return nil
}

// SetDrawOptions implements DrawOptionSetter.
func (t *Trace) SetDrawOptions(options map[string]any) error {
	t.record("draw options %d entries", len(options))
	return nil
}

// End implements Backend.
func (t *Trace) End() error {
	t.ended = true
	t.record("end")
	return nil
}
