// Package raster renders the first page of a PDF document to an RGBA
// pixel buffer suitable for QR scanning.
package raster

import (
	"image"
)

// Raster is a rendered page in RGBA8888, row major, top to bottom.
// len(Pix) is always 4*Width*Height.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// FromImage converts an RGBA image into a tightly packed Raster. Rows are
// repacked when the source stride carries padding.
func FromImage(img *image.RGBA) *Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	r := &Raster{Width: w, Height: h}
	if img.Stride == 4*w && bounds.Min == (image.Point{}) {
		r.Pix = img.Pix[:4*w*h]
		return r
	}

	r.Pix = make([]uint8, 4*w*h)
	for y := 0; y < h; y++ {
		src := img.Pix[(y+bounds.Min.Y-img.Rect.Min.Y)*img.Stride+(bounds.Min.X-img.Rect.Min.X)*4:]
		copy(r.Pix[y*4*w:(y+1)*4*w], src[:4*w])
	}
	return r
}

// Image returns the raster as an image.RGBA sharing the pixel buffer.
func (r *Raster) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    r.Pix,
		Stride: 4 * r.Width,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}
