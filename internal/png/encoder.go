package png

import (
	"bytes"
	"fmt"
	"image/png"
	"sync"

	"github.com/davesmith10/recolor/internal/ir"
)

// EncoderOptions controls PNG encoding.
type EncoderOptions struct {
	Compression png.CompressionLevel // zero value is png.DefaultCompression
}

// encoderBuffers reuses the encoder's zlib and row scratch space across runs.
type encoderBuffers struct {
	pool sync.Pool
}

func (p *encoderBuffers) Get() *png.EncoderBuffer {
	b, _ := p.pool.Get().(*png.EncoderBuffer)
	return b
}

func (p *encoderBuffers) Put(b *png.EncoderBuffer) {
	p.pool.Put(b)
}

var sharedBuffers = &encoderBuffers{}

// Encode encodes an RGBA pixel buffer as a PNG file.
// Fully opaque buffers are written without an alpha channel.
func Encode(buf *ir.PixelBuffer, opts EncoderOptions) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}

	enc := png.Encoder{
		CompressionLevel: opts.Compression,
		BufferPool:       sharedBuffers,
	}

	var out bytes.Buffer
	out.Grow(len(buf.Pix) / 4)
	if err := enc.Encode(&out, buf.Image()); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return out.Bytes(), nil
}
