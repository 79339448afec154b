package meshsync

import "github.com/chewxy/math32"

// Vec3 is a 3-component float vector: sizes, origins, offsets.
type Vec3 [3]float32

// Add returns the component-wise sum v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v[0] + other[0], v[1] + other[1], v[2] + other[2]}
}

// Scale returns v with every component multiplied by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Mat4 is a 4x4 transform matrix in column-major order, as consumed by
// the "transform" uniform.
type Mat4 [16]float32

// IdentityMat4 returns the identity transform.
func IdentityMat4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// TranslationMat4 returns a transform translating by (x, y, z).
func TranslationMat4(x, y, z float32) Mat4 {
	m := IdentityMat4()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Multiply returns the product m * other.
func (m Mat4) Multiply(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// IsIdentity returns true if m is exactly the identity transform.
func (m Mat4) IsIdentity() bool {
	return m == IdentityMat4()
}
