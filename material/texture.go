package material

import (
	"image"

	"golang.org/x/image/draw"
)

// Texture is an image-backed material input. It carries decoded RGBA
// pixels ready for upload; the shader system binds it as a sampled
// texture under the input's slot name.
//
// Texture is not Compilable: it classifies as KindExpression and is
// emitted as a MATERIAL_INPUT payload.
type Texture struct {
	// Name labels the sampled texture for the shader system.
	Name string

	// Width and Height are the stored pixel dimensions.
	Width, Height int

	// Pixels holds tightly packed RGBA data, 4 bytes per pixel.
	Pixels []byte
}

// NewTexture converts src into an upload-ready RGBA texture input.
// If either dimension exceeds maxDim (and maxDim > 0), the image is scaled
// down proportionally with bilinear filtering.
func NewTexture(name string, src image.Image, maxDim int) *Texture {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxDim > 0 && (w > maxDim || h > maxDim) {
		if w >= h {
			h = h * maxDim / w
			w = maxDim
		} else {
			w = w * maxDim / h
			h = maxDim
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	return &Texture{
		Name:   name,
		Width:  w,
		Height: h,
		Pixels: dst.Pix,
	}
}
