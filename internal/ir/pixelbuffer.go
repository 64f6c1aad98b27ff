package ir

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ErrInvalidBuffer reports a PixelBuffer whose dimensions and pixel data disagree.
var ErrInvalidBuffer = errors.New("invalid pixel buffer")

// PixelBuffer is the intermediate representation passed between the PNG
// decoder, the recolor transform and the PNG encoder. Pixels are stored as
// interleaved, non-premultiplied R,G,B,A bytes (4 bytes per pixel, row-major).
//
// A buffer has exactly one owner at a time. Stages that produce a new image
// allocate a new buffer instead of editing the one they were given.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte // len = Width * Height * 4
}

// New allocates a zeroed (fully transparent) buffer.
func New(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBuffer, width, height)
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}, nil
}

// Validate checks the size invariants.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBuffer, b.Width, b.Height)
	}
	if expected := b.Width * b.Height * 4; len(b.Pix) != expected {
		return fmt.Errorf("%w: expected %d RGBA bytes for %dx%d, got %d",
			ErrInvalidBuffer, expected, b.Width, b.Height, len(b.Pix))
	}
	return nil
}

// Stride returns the number of bytes in one row.
func (b *PixelBuffer) Stride() int {
	return b.Width * 4
}

// FromImage copies img into a new buffer, converting to non-premultiplied RGBA.
// The origin of img's bounds maps to pixel (0, 0).
func FromImage(img image.Image) (*PixelBuffer, error) {
	r := img.Bounds()
	buf, err := New(r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}

	if src, ok := img.(*image.NRGBA); ok {
		stride := buf.Stride()
		for y := 0; y < buf.Height; y++ {
			off := src.PixOffset(r.Min.X, r.Min.Y+y)
			copy(buf.Pix[y*stride:(y+1)*stride], src.Pix[off:off+stride])
		}
		return buf, nil
	}

	dst := &image.NRGBA{Pix: buf.Pix, Stride: buf.Stride(), Rect: image.Rect(0, 0, buf.Width, buf.Height)}
	draw.Draw(dst, dst.Rect, img, r.Min, draw.Src)
	return buf, nil
}

// Image wraps the buffer as an *image.NRGBA without copying; the two share Pix.
func (b *PixelBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Stride(),
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
