package command

import (
	"reflect"
	"testing"
)

func TestCommandString(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{
			name: "no args",
			cmd:  New(OpCreateMesh),
			want: "GL_CREATE_MESH",
		},
		{
			name: "one arg",
			cmd:  New(OpWith, PathID("body/0")),
			want: "WITH(body/0)",
		},
		{
			name: "two args",
			cmd:  New(OpSetUniform, "opacity", float32(0.5)),
			want: "GL_UNIFORMS(opacity, 0.5)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpcodeClassification(t *testing.T) {
	tests := []struct {
		op       Opcode
		uniform  bool
		geometry bool
	}{
		{OpCreateMesh, false, false},
		{OpWith, false, false},
		{OpBufferData, false, true},
		{OpSetGeometry, false, true},
		{OpSetUniform, true, false},
		{OpUniformInput, true, false},
		{OpMaterialInput, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			if got := tt.op.IsUniformCommand(); got != tt.uniform {
				t.Errorf("IsUniformCommand() = %v, want %v", got, tt.uniform)
			}
			if got := tt.op.IsGeometryCommand(); got != tt.geometry {
				t.Errorf("IsGeometryCommand() = %v, want %v", got, tt.geometry)
			}
		})
	}
}

func TestBufferDrainOrder(t *testing.T) {
	var b Buffer
	b.Append(New(OpCreateMesh))
	b.Append(New(OpSetUniform, "transform"))
	b.Append(New(OpSetUniform, "origin"))

	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}

	var s Stream
	n := b.DrainTo(&s)
	if n != 3 {
		t.Errorf("DrainTo() = %d, want 3", n)
	}
	if !b.IsEmpty() {
		t.Error("buffer should be empty after drain")
	}

	want := []Opcode{OpCreateMesh, OpSetUniform, OpSetUniform}
	got := make([]Opcode, 0, s.Len())
	for _, c := range s.Commands() {
		got = append(got, c.Op)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("drained opcodes = %v, want %v", got, want)
	}
}

func TestBufferDrainEmpty(t *testing.T) {
	var b Buffer
	var s Stream
	if n := b.DrainTo(&s); n != 0 {
		t.Errorf("DrainTo() on empty buffer = %d, want 0", n)
	}
	if s.Len() != 0 {
		t.Errorf("stream received %d commands, want 0", s.Len())
	}
}

func TestBufferRemoveIf(t *testing.T) {
	var b Buffer
	b.Append(New(OpSetGeometry, uint64(1)))
	b.Append(New(OpSetUniform, "opacity"))
	b.Append(New(OpSetGeometry, uint64(2)))

	removed := b.RemoveIf(func(c Command) bool {
		return c.Op == OpSetGeometry && c.Args[0] == uint64(1)
	})
	if removed != 1 {
		t.Fatalf("RemoveIf() = %d, want 1", removed)
	}

	var s Stream
	b.DrainTo(&s)
	cmds := s.Commands()
	if len(cmds) != 2 {
		t.Fatalf("remaining = %d commands, want 2", len(cmds))
	}
	if cmds[0].Op != OpSetUniform || cmds[1].Op != OpSetGeometry {
		t.Errorf("relative order not preserved: %v, %v", cmds[0].Op, cmds[1].Op)
	}
	if cmds[1].Args[0] != uint64(2) {
		t.Errorf("wrong survivor: %v", cmds[1].Args[0])
	}
}

func TestBufferReset(t *testing.T) {
	var b Buffer
	b.Append(New(OpCreateMesh))
	b.Reset()
	if !b.IsEmpty() {
		t.Error("buffer should be empty after Reset")
	}
}

func TestSinkFunc(t *testing.T) {
	var got []Command
	sink := SinkFunc(func(c Command) { got = append(got, c) })
	sink.EmitCommand(New(OpCreateMesh))
	if len(got) != 1 || got[0].Op != OpCreateMesh {
		t.Errorf("SinkFunc did not forward command: %v", got)
	}
}

func TestStreamReset(t *testing.T) {
	var s Stream
	s.EmitCommand(New(OpCreateMesh))
	s.EmitCommand(New(OpWith, PathID("p")))
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", s.Len())
	}
}
