package png

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/davesmith10/recolor/internal/ir"
)

// ErrDecode is returned when bytes cannot be decoded as a PNG image.
var ErrDecode = errors.New("decode failure")

// Decode decodes a PNG file from memory into a new RGBA pixel buffer.
func Decode(data []byte) (*ir.PixelBuffer, error) {
	if len(data) < len(pngSignature) {
		return nil, fmt.Errorf("%w: data too short for PNG (%d bytes)", ErrDecode, len(data))
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	buf, err := ir.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return buf, nil
}
