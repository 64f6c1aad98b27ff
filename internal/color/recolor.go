package color

import (
	"context"
	"fmt"
	"runtime"

	"github.com/davesmith10/recolor/internal/ir"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"
)

// ITU-R BT.601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// Luminance returns the BT.601 weighted brightness of an 8-bit RGB triple, in [0,255].
func Luminance(r, g, b uint8) float64 {
	return lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)
}

// Options controls how Recolor schedules work.
type Options struct {
	// Workers bounds the number of row bands processed concurrently.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
}

// Recolor replaces the hue of every visible pixel in src with target while
// keeping its shading. It returns a new buffer; src is not modified.
//
// Each pixel with alpha > 0 is blended between target and white, weighted by
// its inverse normalized luminance: black becomes target, white stays white.
// Fully transparent pixels are copied unchanged and alpha is never altered.
func Recolor(src *ir.PixelBuffer, target Color) (*ir.PixelBuffer, error) {
	return RecolorContext(context.Background(), src, target, Options{})
}

// RecolorContext is Recolor with cancellation and scheduling options.
// Cancellation is checked between row bands; a cancelled run returns no buffer.
func RecolorContext(ctx context.Context, src *ir.PixelBuffer, target Color, opts Options) (*ir.PixelBuffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("recolor: %w", err)
	}

	dst := &ir.PixelBuffer{
		Width:  src.Width,
		Height: src.Height,
		Pix:    make([]byte, len(src.Pix)),
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	bands := workers * 4
	rowsPerBand := max(1, (src.Height+bands-1)/bands)
	stride := src.Stride()
	tc := target.Colorful()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y0 := 0; y0 < src.Height; y0 += rowsPerBand {
		lo := y0 * stride
		hi := min(y0+rowsPerBand, src.Height) * stride
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recolorSpan(dst.Pix[lo:hi], src.Pix[lo:hi], tc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("recolor: %w", err)
	}
	return dst, nil
}

// recolorSpan transforms a run of whole RGBA pixels from src into dst.
func recolorSpan(dst, src []byte, target colorful.Color) {
	for i := 0; i+3 < len(src); i += 4 {
		r, g, b, a := src[i], src[i+1], src[i+2], src[i+3]
		if a == 0 {
			dst[i], dst[i+1], dst[i+2], dst[i+3] = r, g, b, a
			continue
		}
		k := 1 - Luminance(r, g, b)/255
		// float rounding can push k a hair outside [0,1] for pure black or white
		k = min(1, max(0, k))
		dst[i], dst[i+1], dst[i+2] = white.BlendRgb(target, k).RGB255()
		dst[i+3] = a
	}
}
