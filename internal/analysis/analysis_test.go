package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/davesmith10/recolor/internal/ir"
)

// stripes builds a buffer whose left half is c1 and right half is c2.
func stripes(t *testing.T, w, h int, c1, c2 [4]byte) *ir.PixelBuffer {
	t.Helper()
	buf, err := ir.New(w, h)
	if err != nil {
		t.Fatalf("ir.New: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := c1
			if x >= w/2 {
				c = c2
			}
			copy(buf.Pix[(y*w+x)*4:], c[:])
		}
	}
	return buf
}

func TestLuminanceStats(t *testing.T) {
	buf := stripes(t, 10, 4, [4]byte{0, 0, 0, 255}, [4]byte{255, 255, 255, 255})
	r, err := Analyze(buf, Options{PaletteSize: 2})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.Width != 10 || r.Height != 4 {
		t.Errorf("unexpected dimensions: %dx%d", r.Width, r.Height)
	}
	if r.VisiblePixels != 40 || r.TransparentPixels != 0 {
		t.Errorf("visible=%d transparent=%d", r.VisiblePixels, r.TransparentPixels)
	}
	if math.Abs(r.MeanLuminance-127.5) > 0.01 {
		t.Errorf("mean luminance = %v, want 127.5", r.MeanLuminance)
	}
	// Sample std-dev of 20 zeros and 20 255s.
	want := 127.5 * math.Sqrt(40.0/39.0)
	if math.Abs(r.StdDevLuminance-want) > 0.01 {
		t.Errorf("std-dev luminance = %v, want %v", r.StdDevLuminance, want)
	}
	if r.MinLuminance != 0 || math.Abs(r.MaxLuminance-255) > 0.001 {
		t.Errorf("range = [%v, %v]", r.MinLuminance, r.MaxLuminance)
	}
}

func TestTransparentPixelsExcluded(t *testing.T) {
	buf := stripes(t, 4, 4, [4]byte{255, 0, 0, 0}, [4]byte{0, 0, 0, 255})
	r, err := Analyze(buf, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.VisiblePixels != 8 || r.TransparentPixels != 8 {
		t.Errorf("visible=%d transparent=%d", r.VisiblePixels, r.TransparentPixels)
	}
	if r.MeanLuminance != 0 || r.StdDevLuminance != 0 {
		t.Errorf("transparent red leaked into stats: mean=%v std=%v", r.MeanLuminance, r.StdDevLuminance)
	}
}

func TestFullyTransparent(t *testing.T) {
	buf, err := ir.New(3, 3)
	if err != nil {
		t.Fatalf("ir.New: %v", err)
	}
	r, err := Analyze(buf, Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.VisiblePixels != 0 || r.Dominant != nil || r.Clusters != nil {
		t.Errorf("expected empty report, got %+v", r)
	}
}

func TestPalettes(t *testing.T) {
	buf := stripes(t, 300, 200, [4]byte{200, 30, 30, 255}, [4]byte{30, 30, 200, 255})
	r, err := Analyze(buf, Options{PaletteSize: 2, ThumbnailSize: 32})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(r.Dominant) > 2 {
		t.Errorf("expected at most 2 dominant colors, got %d", len(r.Dominant))
	}
	if len(r.Clusters) > 2 {
		t.Errorf("expected at most 2 clusters, got %d", len(r.Clusters))
	}
	total := 0.0
	for _, s := range r.Clusters {
		if s.Weight <= 0 || s.Weight > 1 {
			t.Errorf("cluster %s has weight %v", s.Color, s.Weight)
		}
		total += s.Weight
	}
	if len(r.Clusters) > 0 && math.Abs(total-1) > 1e-9 {
		t.Errorf("cluster weights sum to %v", total)
	}
}

func TestThumbnailBounds(t *testing.T) {
	buf := stripes(t, 400, 100, [4]byte{1, 2, 3, 255}, [4]byte{4, 5, 6, 255})
	thumb := thumbnail(buf.Image(), 64)
	if b := thumb.Bounds(); b.Dx() != 64 || b.Dy() != 16 {
		t.Errorf("thumbnail is %dx%d, want 64x16", b.Dx(), b.Dy())
	}

	small := stripes(t, 10, 10, [4]byte{1, 2, 3, 255}, [4]byte{4, 5, 6, 255})
	if thumb := thumbnail(small.Image(), 64); thumb.Bounds().Dx() != 10 {
		t.Errorf("small image was rescaled to %v", thumb.Bounds())
	}
}

func TestAnalyzeInvalidBuffer(t *testing.T) {
	_, err := Analyze(&ir.PixelBuffer{Width: 1, Height: 1}, Options{})
	if !errors.Is(err, ir.ErrInvalidBuffer) {
		t.Errorf("expected ErrInvalidBuffer, got %v", err)
	}
}
