// Package analysis summarizes an image's brightness and suggests target
// colors taken from its own palette.
package analysis

import (
	"image"
	"log/slog"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/davesmith10/recolor/internal/color"
	"github.com/davesmith10/recolor/internal/ir"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/stat"
)

// Options controls palette extraction.
type Options struct {
	PaletteSize   int          // colors per palette, default 5
	ThumbnailSize int          // longest side of the sampling thumbnail, default 128
	Logger        *slog.Logger // nil = slog.Default()
}

func (o Options) withDefaults() Options {
	if o.PaletteSize <= 0 {
		o.PaletteSize = 5
	}
	if o.ThumbnailSize <= 0 {
		o.ThumbnailSize = 128
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Swatch is one palette entry. Weight is the share of sampled pixels it covers.
type Swatch struct {
	Color  color.Color
	Weight float64
}

// Report is the outcome of Analyze.
type Report struct {
	Width, Height int

	VisiblePixels     int // alpha > 0
	TransparentPixels int // alpha == 0

	// BT.601 luminance of visible pixels, in [0,255].
	MeanLuminance   float64
	StdDevLuminance float64
	MinLuminance    float64
	MaxLuminance    float64

	Dominant []Swatch // from dominantcolor
	Clusters []Swatch // from k-means, most populated first
}

// Analyze computes luminance statistics over every visible pixel and extracts
// two candidate palettes from a downscaled copy of buf.
func Analyze(buf *ir.PixelBuffer, opts Options) (*Report, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	r := &Report{Width: buf.Width, Height: buf.Height}
	r.luminanceStats(buf)

	if r.VisiblePixels == 0 {
		opts.Logger.Debug("image is fully transparent, skipping palette")
		return r, nil
	}

	thumb := thumbnail(buf.Image(), opts.ThumbnailSize)
	r.Dominant = dominantPalette(thumb, opts.PaletteSize)
	cl, err := kmeansPalette(thumb, opts.PaletteSize)
	if err != nil {
		opts.Logger.Warn("k-means palette failed", "err", err)
	}
	r.Clusters = cl
	return r, nil
}

func (r *Report) luminanceStats(buf *ir.PixelBuffer) {
	lums := make([]float64, 0, buf.Width*buf.Height)
	for i := 0; i < len(buf.Pix); i += 4 {
		if buf.Pix[i+3] == 0 {
			r.TransparentPixels++
			continue
		}
		lums = append(lums, color.Luminance(buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2]))
	}
	r.VisiblePixels = len(lums)
	if len(lums) == 0 {
		return
	}

	r.MeanLuminance, r.StdDevLuminance = stat.MeanStdDev(lums, nil)
	if len(lums) < 2 || math.IsNaN(r.StdDevLuminance) {
		r.StdDevLuminance = 0
	}
	r.MinLuminance, r.MaxLuminance = slices.Min(lums), slices.Max(lums)
}

// thumbnail scales img down so its longest side is at most size.
func thumbnail(img *image.NRGBA, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= size && h <= size {
		return img
	}
	scale := float64(size) / float64(max(w, h))
	tw := max(1, int(math.Round(float64(w)*scale)))
	th := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func dominantPalette(img image.Image, k int) []Swatch {
	found := dominantcolor.FindWeight(img, k)
	out := make([]Swatch, 0, len(found))
	for _, c := range found {
		out = append(out, Swatch{
			Color:  color.Color{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B},
			Weight: c.Weight,
		})
	}
	return out
}

func kmeansPalette(img image.Image, k int) ([]Swatch, error) {
	b := img.Bounds()
	var dataset clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			// Un-premultiply so translucent pixels cluster by their own color.
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / float64(a16),
				float64(g16) / float64(a16),
				float64(b16) / float64(a16),
			})
		}
	}
	if len(dataset) == 0 {
		return nil, nil
	}
	k = min(k, len(dataset))

	cc, err := kmeans.New().Partition(dataset, k)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]Swatch, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}
		out = append(out, Swatch{
			Color:  color.FromColorful(col),
			Weight: float64(len(c.Observations)) / float64(len(dataset)),
		})
	}
	return out, nil
}
