package wgpuback

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/meshsync"
)

// floatBytes serializes float32 values to little-endian bytes, the layout
// WebGPU buffer writes expect.
func floatBytes(values []float32) []byte {
	data := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	return data
}

// uniformBytes serializes a uniform payload. Transforms, vectors and raw
// float slices all reduce to packed little-endian float32 data.
func uniformBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case meshsync.Mat4:
		return floatBytes(v[:]), nil
	case meshsync.Vec3:
		return floatBytes(v[:]), nil
	case []float32:
		if len(v) == 0 {
			return nil, fmt.Errorf("empty uniform payload")
		}
		return floatBytes(v), nil
	case [2]float32:
		return floatBytes(v[:]), nil
	case [3]float32:
		return floatBytes(v[:]), nil
	case [4]float32:
		return floatBytes(v[:]), nil
	case float32:
		return floatBytes([]float32{v}), nil
	default:
		return nil, fmt.Errorf("unsupported uniform payload %T", value)
	}
}
