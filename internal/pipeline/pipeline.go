package pipeline

import (
	"context"
	"fmt"
	stdpng "image/png"
	"io"
	"log/slog"
	"time"

	"github.com/davesmith10/recolor/internal/color"
	"github.com/davesmith10/recolor/internal/png"
)

// Source is one input image as handed over by the caller.
type Source struct {
	Name      string    // for messages only
	MediaType string    // declared type, e.g. an upload's Content-Type
	Reader    io.Reader // image bytes
}

// Options controls the decode → recolor → encode pipeline.
type Options struct {
	Workers     int                     // recolor concurrency, 0 = GOMAXPROCS
	Compression stdpng.CompressionLevel // output PNG compression
	Logger      *slog.Logger            // nil = slog.Default()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Result holds the output of a pipeline run.
type Result struct {
	Data   []byte // encoded PNG
	Width  int
	Height int
	Color  color.Color // target the image was recolored with
}

// Load validates the declared media type and reads all bytes from src.
// Nothing is read when the type is not PNG.
func Load(src Source) ([]byte, error) {
	if err := png.CheckMediaType(src.MediaType); err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name, err)
	}
	if src.Reader == nil {
		return nil, fmt.Errorf("%s: %w: no reader", src.Name, ErrRead)
	}
	data, err := io.ReadAll(src.Reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", src.Name, ErrRead, err)
	}
	return data, nil
}

// Process executes decode → recolor → encode over PNG bytes already loaded.
// Every stage completes before the next starts; a failure at any stage aborts
// the run with no partial output.
func Process(ctx context.Context, data []byte, target color.Color, opts Options) (*Result, error) {
	log := opts.logger()
	start := time.Now()

	// 1. Decode PNG
	decoded, err := png.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	log.Debug("decoded", "width", decoded.Width, "height", decoded.Height, "bytes", len(data))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2. Recolor into a new buffer
	recolored, err := color.RecolorContext(ctx, decoded, target, color.Options{Workers: opts.Workers})
	if err != nil {
		return nil, err
	}
	log.Debug("recolored", "target", target.Hex())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3. Encode PNG
	encoded, err := png.Encode(recolored, png.EncoderOptions{Compression: opts.Compression})
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	log.Debug("encoded", "bytes", len(encoded), "elapsed", time.Since(start))
	return &Result{
		Data:   encoded,
		Width:  recolored.Width,
		Height: recolored.Height,
		Color:  target,
	}, nil
}

// Run loads src and processes it in one call.
func Run(ctx context.Context, src Source, target color.Color, opts Options) (*Result, error) {
	data, err := Load(src)
	if err != nil {
		return nil, err
	}
	return Process(ctx, data, target, opts)
}
