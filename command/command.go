package command

import (
	"fmt"
	"strings"
)

// Command is one tagged instruction in the output command stream.
// Args are opaque to this package; their layout is fixed per opcode
// (see the Opcode constants).
type Command struct {
	// Op is the command tag.
	Op Opcode

	// Args is the heterogeneous argument list, in opcode-defined order.
	Args []any
}

// New creates a command with the given opcode and arguments.
func New(op Opcode, args ...any) Command {
	return Command{Op: op, Args: args}
}

// String returns a compact human-readable form, e.g. for trace output:
//
//	GL_UNIFORMS(opacity, 0.5)
func (c Command) String() string {
	if len(c.Args) == 0 {
		return string(c.Op)
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return string(c.Op) + "(" + strings.Join(parts, ", ") + ")"
}

// Sink receives drained commands. The dispatcher's output stream and the
// replay backends implement it.
type Sink interface {
	// EmitCommand appends one command to the output stream.
	EmitCommand(Command)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Command)

// EmitCommand implements Sink.
func (f SinkFunc) EmitCommand(c Command) { f(c) }

// Buffer is an ordered, externally drained command queue. It is an explicit
// value type: callers append and drain, never iterate shared state.
//
// The zero value is an empty buffer ready for use.
// Buffer is not safe for concurrent use; the synchronization core is
// strictly frame-synchronous.
type Buffer struct {
	cmds []Command
}

// Append adds a command to the end of the buffer.
func (b *Buffer) Append(c Command) {
	b.cmds = append(b.cmds, c)
}

// Len returns the number of pending commands.
func (b *Buffer) Len() int {
	return len(b.cmds)
}

// IsEmpty returns true if no commands are pending.
func (b *Buffer) IsEmpty() bool {
	return len(b.cmds) == 0
}

// DrainTo emits all pending commands to the sink in FIFO order and clears
// the buffer. It returns the number of commands emitted.
func (b *Buffer) DrainTo(sink Sink) int {
	n := len(b.cmds)
	for _, c := range b.cmds {
		sink.EmitCommand(c)
	}
	b.cmds = b.cmds[:0]
	return n
}

// RemoveIf deletes every pending command the predicate matches, preserving
// the relative order of the remainder. It returns the number removed.
func (b *Buffer) RemoveIf(pred func(Command) bool) int {
	kept := b.cmds[:0]
	removed := 0
	for _, c := range b.cmds {
		if pred(c) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	b.cmds = kept
	return removed
}

// Reset clears the buffer for reuse without deallocating memory.
func (b *Buffer) Reset() {
	b.cmds = b.cmds[:0]
}

// Stream is a slice-backed Sink that accumulates a frame's combined
// command sequence.
//
// The zero value is an empty stream ready for use.
type Stream struct {
	cmds []Command
}

// EmitCommand implements Sink.
func (s *Stream) EmitCommand(c Command) {
	s.cmds = append(s.cmds, c)
}

// Commands returns the accumulated commands in emission order.
// The returned slice is owned by the stream; callers must not mutate it.
func (s *Stream) Commands() []Command {
	return s.cmds
}

// Len returns the number of accumulated commands.
func (s *Stream) Len() int {
	return len(s.cmds)
}

// Reset clears the stream for the next frame without deallocating memory.
func (s *Stream) Reset() {
	s.cmds = s.cmds[:0]
}
