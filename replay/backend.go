// Package replay turns drained command streams back into graphics work.
//
// A command stream is backend-agnostic: draining a renderable produces
// opcodes and arguments, and a Backend interprets them against a concrete
// graphics context. Backends register themselves by name (usually from an
// init function) and hosts select one with NewBackend, mirroring the
// database/sql driver model.
package replay

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/meshsync"
	"github.com/gogpu/meshsync/command"
	"github.com/gogpu/meshsync/geometry"
)

// Backend consumes a replayed command stream. Playback calls Begin once,
// then one method per command in stream order, then End once. Errors are
// fatal and abort the replay.
type Backend interface {
	// Begin starts a frame of replayed commands.
	Begin() error

	// SelectPath makes path the target of all subsequent commands.
	SelectPath(path command.PathID) error

	// CreateMesh allocates backend state for a new renderable on the
	// selected path.
	CreateMesh() error

	// SetGeometry announces the geometry the following buffer uploads and
	// draws belong to.
	SetGeometry(id geometry.ID, topology gputypes.PrimitiveTopology, dynamic bool) error

	// UploadBuffer uploads a named vertex buffer of the given geometry.
	UploadBuffer(id geometry.ID, name string, values []float32, spacing int) error

	// SetUniform uploads a raw uniform value (transforms, sizes, vectors).
	SetUniform(name string, value any) error

	// UniformInput binds a scalar material input as a uniform.
	UniformInput(name string, value float32) error

	// MaterialInput binds a non-uniform material input: a compiled
	// expression, a texture, or any other backend-interpreted payload.
	MaterialInput(name string, value any) error

	// End finishes the frame.
	End() error
}

// Playback replays a drained command stream into the backend. The stream
// is consumed in order; argument arity and types are asserted per opcode,
// and a malformed command aborts the replay. Unknown opcodes are skipped
// with a warning so streams from newer producers degrade instead of
// failing.
func Playback(commands []command.Command, b Backend) error {
	if err := b.Begin(); err != nil {
		return fmt.Errorf("replay: begin: %w", err)
	}
	for i, c := range commands {
		if err := dispatch(c, b); err != nil {
			return fmt.Errorf("replay: command %d %s: %w", i, c.Op, err)
		}
	}
	if err := b.End(); err != nil {
		return fmt.Errorf("replay: end: %w", err)
	}
	return nil
}

func dispatch(c command.Command, b Backend) error {
	switch c.Op {
	case command.OpWith:
		path, ok := arg[command.PathID](c, 0)
		if !ok {
			return errArgs(c)
		}
		return b.SelectPath(path)

	case command.OpCreateMesh:
		return b.CreateMesh()

	case command.OpSetGeometry:
		id, ok1 := arg[geometry.ID](c, 0)
		topology, ok2 := arg[gputypes.PrimitiveTopology](c, 1)
		dynamic, ok3 := arg[bool](c, 2)
		if !ok1 || !ok2 || !ok3 {
			return errArgs(c)
		}
		return b.SetGeometry(id, topology, dynamic)

	case command.OpBufferData:
		id, ok1 := arg[geometry.ID](c, 0)
		name, ok2 := arg[string](c, 1)
		values, ok3 := arg[[]float32](c, 2)
		spacing, ok4 := arg[int](c, 3)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return errArgs(c)
		}
		return b.UploadBuffer(id, name, values, spacing)

	case command.OpSetUniform:
		name, ok := arg[string](c, 0)
		if !ok || len(c.Args) < 2 {
			return errArgs(c)
		}
		return b.SetUniform(name, c.Args[1])

	case command.OpUniformInput:
		name, ok1 := arg[string](c, 0)
		value, ok2 := arg[float32](c, 1)
		if !ok1 || !ok2 {
			return errArgs(c)
		}
		return b.UniformInput(name, value)

	case command.OpMaterialInput:
		name, ok := arg[string](c, 0)
		if !ok || len(c.Args) < 2 {
			return errArgs(c)
		}
		return b.MaterialInput(name, c.Args[1])

	case command.OpSetDrawOptions:
		// Draw options are advisory; backends without an opinion skip them.
		if o, ok := b.(DrawOptionSetter); ok {
			options, okArg := arg[map[string]any](c, 0)
			if !okArg {
				return errArgs(c)
			}
			return o.SetDrawOptions(options)
		}
		return nil

	default:
		meshsync.Logger().Warn("replay: unknown opcode skipped", "op", string(c.Op))
		return nil
	}
}

// DrawOptionSetter is an optional Backend capability for renderer draw
// options (blending, culling, depth mask).
type DrawOptionSetter interface {
	SetDrawOptions(options map[string]any) error
}

// arg returns the i-th command argument asserted to T.
func arg[T any](c command.Command, i int) (T, bool) {
	var zero T
	if i >= len(c.Args) {
		return zero, false
	}
	v, ok := c.Args[i].(T)
	if !ok {
		return zero, false
	}
	return v, true
}

func errArgs(c command.Command) error {
	return fmt.Errorf("malformed arguments: %v", c.Args)
}
