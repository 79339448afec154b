package geometry

import "github.com/gogpu/gputypes"

// IndexBufferName is the conventional name of the element index buffer.
// It describes triangle connectivity, not per-vertex attributes, so
// VertexLayout skips it.
const IndexBufferName = "indices"

// vertexFormat maps a per-element spacing to the matching WebGPU vertex
// format. Spacings outside 1..4 have no single-attribute representation
// and return ok=false.
func vertexFormat(spacing int) (gputypes.VertexFormat, bool) {
	switch spacing {
	case 1:
		return gputypes.VertexFormatFloat32, true
	case 2:
		return gputypes.VertexFormatFloat32x2, true
	case 3:
		return gputypes.VertexFormatFloat32x3, true
	case 4:
		return gputypes.VertexFormatFloat32x4, true
	default:
		return 0, false
	}
}

// VertexLayout derives one vertex buffer layout per named attribute buffer,
// with shader locations assigned in declaration order. The index buffer and
// buffers whose spacing has no vertex-format equivalent are skipped.
//
// Each buffer becomes its own layout (non-interleaved), matching how
// GL_BUFFER_DATA uploads one named buffer at a time.
func (d *Descriptor) VertexLayout() []gputypes.VertexBufferLayout {
	layouts := make([]gputypes.VertexBufferLayout, 0, len(d.names))
	location := uint32(0)
	for i, name := range d.names {
		if name == IndexBufferName {
			continue
		}
		format, ok := vertexFormat(d.spacings[i])
		if !ok {
			continue
		}
		layouts = append(layouts, gputypes.VertexBufferLayout{
			ArrayStride: uint64(d.spacings[i]) * 4,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{
					Format:         format,
					Offset:         0,
					ShaderLocation: location,
				},
			},
		})
		location++
	}
	return layouts
}
