package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// RenderTarget is a 2D pixel grid in some native encoding P. The raytracer
// only writes to it; each pixel is written by exactly one worker per frame.
type RenderTarget[P any] interface {
	Width() int
	Height() int
	Len() int
	SetItem(i int, p P)
	Set(x, y int, p P)
	FromColor(c core.Vec3) P
}

// ImageTarget is a render target backed by an *image.RGBA
type ImageTarget struct {
	img   *image.RGBA
	gamma float64 // 0 or 1 disables gamma correction
}

// NewImageTarget allocates an RGBA image of the given size
func NewImageTarget(width, height int) *ImageTarget {
	return &ImageTarget{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// SetGamma enables gamma correction in FromColor
func (t *ImageTarget) SetGamma(gamma float64) {
	t.gamma = gamma
}

// Image returns the underlying image
func (t *ImageTarget) Image() *image.RGBA {
	return t.img
}

// Width returns the image width in pixels
func (t *ImageTarget) Width() int { return t.img.Rect.Dx() }

// Height returns the image height in pixels
func (t *ImageTarget) Height() int { return t.img.Rect.Dy() }

// Len returns the number of pixels
func (t *ImageTarget) Len() int { return t.Width() * t.Height() }

// SetItem stores p at row-major index i
func (t *ImageTarget) SetItem(i int, p color.RGBA) {
	t.img.SetRGBA(i%t.Width(), i/t.Width(), p)
}

// Set stores p at (x, y)
func (t *ImageTarget) Set(x, y int, p color.RGBA) {
	t.img.SetRGBA(x, y, p)
}

// At returns the pixel at (x, y)
func (t *ImageTarget) At(x, y int) color.RGBA {
	return t.img.RGBAAt(x, y)
}

// FromColor converts a linear color to 8-bit RGBA with clamping
func (t *ImageTarget) FromColor(c core.Vec3) color.RGBA {
	if t.gamma > 0 && t.gamma != 1 {
		c = c.Clamp(0.0, 1.0).GammaCorrect(t.gamma)
	}
	c = c.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}

// Buffer is a generic row-major render target. The conversion function maps
// shaded colors to the stored encoding.
type Buffer[P any] struct {
	width, height int
	data          []P
	convert       func(core.Vec3) P
}

// NewBuffer allocates a width x height buffer
func NewBuffer[P any](width, height int, convert func(core.Vec3) P) *Buffer[P] {
	return &Buffer[P]{
		width:   width,
		height:  height,
		data:    make([]P, width*height),
		convert: convert,
	}
}

// NewColorBuffer allocates a buffer that stores colors unconverted
func NewColorBuffer(width, height int) *Buffer[core.Vec3] {
	return NewBuffer(width, height, func(c core.Vec3) core.Vec3 { return c })
}

// Width returns the buffer width in elements
func (b *Buffer[P]) Width() int { return b.width }

// Height returns the buffer height in elements
func (b *Buffer[P]) Height() int { return b.height }

// Len returns the number of elements
func (b *Buffer[P]) Len() int { return len(b.data) }

// SetItem stores p at row-major index i
func (b *Buffer[P]) SetItem(i int, p P) { b.data[i] = p }

// Set stores p at (x, y)
func (b *Buffer[P]) Set(x, y int, p P) { b.data[y*b.width+x] = p }

// Item returns the element at row-major index i
func (b *Buffer[P]) Item(i int) P { return b.data[i] }

// At returns the element at (x, y)
func (b *Buffer[P]) At(x, y int) P { return b.data[y*b.width+x] }

// FromColor applies the buffer's conversion function
func (b *Buffer[P]) FromColor(c core.Vec3) P { return b.convert(c) }
