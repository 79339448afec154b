package geometry

import "github.com/chewxy/math32"

// Procedural descriptors for the standard primitives the surrounding
// system ships. Each fills the conventional attribute buffers: "position"
// (vec3), "normal" (vec3), "texcoord" (vec2) and "indices".

// Triangle creates a unit triangle in the XY plane facing +Z.
func Triangle(opts ...Option) *Descriptor {
	d := NewDescriptor(opts...)
	d.SetVertexBuffer("position", []float32{
		0, 1, 0,
		-1, -1, 0,
		1, -1, 0,
	}, 3)
	d.SetVertexBuffer("normal", []float32{
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
	}, 3)
	d.SetVertexBuffer("texcoord", []float32{
		0.5, 0,
		0, 1,
		1, 1,
	}, 2)
	d.SetVertexBuffer(IndexBufferName, []float32{0, 1, 2}, 1)
	return d
}

// Plane creates a subdivided unit plane in the XY plane facing +Z.
// cols and rows are the number of cells per axis; values below 1 are
// clamped to 1.
func Plane(cols, rows int, opts ...Option) *Descriptor {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	vertsX := cols + 1
	vertsY := rows + 1
	positions := make([]float32, 0, vertsX*vertsY*3)
	normals := make([]float32, 0, vertsX*vertsY*3)
	texcoords := make([]float32, 0, vertsX*vertsY*2)
	indices := make([]float32, 0, cols*rows*6)

	for y := 0; y < vertsY; y++ {
		v := float32(y) / float32(rows)
		for x := 0; x < vertsX; x++ {
			u := float32(x) / float32(cols)
			positions = append(positions, 2*u-1, 2*v-1, 0)
			normals = append(normals, 0, 0, 1)
			texcoords = append(texcoords, u, 1-v)
		}
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := float32(y*vertsX + x)
			right := i + 1
			above := i + float32(vertsX)
			aboveRight := above + 1
			indices = append(indices,
				i, right, above,
				right, aboveRight, above,
			)
		}
	}

	d := NewDescriptor(opts...)
	d.SetVertexBuffer("position", positions, 3)
	d.SetVertexBuffer("normal", normals, 3)
	d.SetVertexBuffer("texcoord", texcoords, 2)
	d.SetVertexBuffer(IndexBufferName, indices, 1)
	return d
}

// Sphere creates a unit latitude/longitude sphere. detail is the number of
// latitude bands; longitude bands are twice that. Values below 3 are
// clamped to 3.
func Sphere(detail int, opts ...Option) *Descriptor {
	if detail < 3 {
		detail = 3
	}
	latBands := detail
	lonBands := detail * 2

	vertCount := (latBands + 1) * (lonBands + 1)
	positions := make([]float32, 0, vertCount*3)
	normals := make([]float32, 0, vertCount*3)
	texcoords := make([]float32, 0, vertCount*2)
	indices := make([]float32, 0, latBands*lonBands*6)

	for lat := 0; lat <= latBands; lat++ {
		theta := float32(lat) * math32.Pi / float32(latBands)
		sinTheta := math32.Sin(theta)
		cosTheta := math32.Cos(theta)
		for lon := 0; lon <= lonBands; lon++ {
			phi := float32(lon) * 2 * math32.Pi / float32(lonBands)
			x := math32.Cos(phi) * sinTheta
			y := cosTheta
			z := math32.Sin(phi) * sinTheta

			// Unit sphere: position doubles as the normal.
			positions = append(positions, x, y, z)
			normals = append(normals, x, y, z)
			texcoords = append(texcoords,
				1-float32(lon)/float32(lonBands),
				float32(lat)/float32(latBands),
			)
		}
	}
	for lat := 0; lat < latBands; lat++ {
		for lon := 0; lon < lonBands; lon++ {
			first := float32(lat*(lonBands+1) + lon)
			second := first + float32(lonBands) + 1
			indices = append(indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}

	d := NewDescriptor(opts...)
	d.SetVertexBuffer("position", positions, 3)
	d.SetVertexBuffer("normal", normals, 3)
	d.SetVertexBuffer("texcoord", texcoords, 2)
	d.SetVertexBuffer(IndexBufferName, indices, 1)
	return d
}
