// Package command defines the draw-command vocabulary and the ordered
// command buffer that carries renderable state changes to the render path.
//
// A command is a string opcode tag paired with a heterogeneous argument
// list. Commands are accumulated in a Buffer in the order their triggering
// calls occurred and drained into a Sink exactly once; insertion order is
// semantically significant and preserved through draining.
package command

// Opcode is the string tag identifying a draw command.
// The vocabulary matches what the shared renderer's command interpreter
// understands; this package never interprets argument payloads itself.
type Opcode string

// Opcode constants define the full command vocabulary emitted by this
// module. Each opcode has a fixed argument layout documented in its comment.
const (
	// OpCreateMesh announces a new renderable to the render path.
	// Args: none.
	OpCreateMesh Opcode = "GL_CREATE_MESH"

	// OpWith selects the render path all subsequent commands in a drain
	// apply to.
	// Args: 1 PathID.
	OpWith Opcode = "WITH"

	// OpBufferData uploads one named vertex buffer of a geometry.
	// Args: geometry id, buffer name (string), values ([]float32),
	// per-element spacing (int).
	OpBufferData Opcode = "GL_BUFFER_DATA"

	// OpSetGeometry binds a geometry to the current renderable.
	// Args: geometry id, primitive topology, dynamic flag (bool).
	OpSetGeometry Opcode = "GL_SET_GEOMETRY"

	// OpSetUniform uploads a raw uniform value.
	// Args: uniform name (string), value (matrix, vector or scalar).
	OpSetUniform Opcode = "GL_UNIFORMS"

	// OpSetDrawOptions sets renderer draw options for the current
	// renderable.
	// Args: 1 options map (map[string]any).
	OpSetDrawOptions Opcode = "GL_SET_DRAW_OPTIONS"

	// OpUniformInput uploads a scalar shader input, distinguished from
	// OpSetUniform so the shader system can specialize on it.
	// Args: input name (string), scalar value (float32).
	OpUniformInput Opcode = "UNIFORM_INPUT"

	// OpMaterialInput binds a compiled material expression to a named
	// shader input, requiring the shader system to resolve a texture or
	// sub-graph.
	// Args: input name (string), compiled expression value.
	OpMaterialInput Opcode = "MATERIAL_INPUT"
)

// String returns the raw opcode tag.
func (op Opcode) String() string {
	return string(op)
}

// IsUniformCommand returns true if the opcode carries a raw uniform upload.
func (op Opcode) IsUniformCommand() bool {
	return op == OpSetUniform || op == OpUniformInput
}

// IsGeometryCommand returns true if the opcode mutates geometry state.
func (op Opcode) IsGeometryCommand() bool {
	return op == OpSetGeometry || op == OpBufferData
}

// PathID identifies a render path. The dispatcher assigns it and every
// drain opens with a (WITH, PathID) header selecting it.
type PathID string
