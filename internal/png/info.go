package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

const (
	chunkHeaderLen = 8 // length + type
	chunkCRCLen    = 4
	ihdrLen        = 13
)

// colorTypeName returns a string for a PNG IHDR color type.
func colorTypeName(ct byte) string {
	switch ct {
	case 0:
		return "Grayscale"
	case 2:
		return "RGB"
	case 3:
		return "Indexed"
	case 4:
		return "GrayscaleAlpha"
	case 6:
		return "RGBA"
	default:
		return fmt.Sprintf("ColorType(%d)", ct)
	}
}

// ImageInfo contains metadata about a PNG file.
type ImageInfo struct {
	Width      int
	Height     int
	BitDepth   int
	ColorType  string
	Interlaced bool
	HasICC     bool     // iCCP chunk present
	HasGamma   bool     // gAMA chunk present
	Chunks     []string // chunk types in file order
}

// GetInfo reads PNG header metadata by walking the chunk list, without
// decompressing any image data.
func GetInfo(data []byte) (*ImageInfo, error) {
	if len(data) < len(pngSignature) || !bytes.Equal(data[:len(pngSignature)], pngSignature) {
		return nil, fmt.Errorf("%w: missing PNG signature", ErrDecode)
	}

	info := &ImageInfo{}
	rest := data[len(pngSignature):]
	for len(rest) > 0 {
		if len(rest) < chunkHeaderLen {
			return nil, fmt.Errorf("%w: truncated chunk header", ErrDecode)
		}
		n := int(binary.BigEndian.Uint32(rest[:4]))
		typ := string(rest[4:8])
		end := chunkHeaderLen + n + chunkCRCLen
		if n < 0 || end > len(rest) {
			return nil, fmt.Errorf("%w: chunk %q overruns file", ErrDecode, typ)
		}
		body := rest[chunkHeaderLen : chunkHeaderLen+n]

		if len(info.Chunks) == 0 && typ != "IHDR" {
			return nil, fmt.Errorf("%w: first chunk is %q, expected IHDR", ErrDecode, typ)
		}
		info.Chunks = append(info.Chunks, typ)

		switch typ {
		case "IHDR":
			if err := info.parseIHDR(body); err != nil {
				return nil, err
			}
		case "iCCP":
			info.HasICC = true
		case "gAMA":
			info.HasGamma = true
		}

		rest = rest[end:]
		if typ == "IEND" {
			return info, nil
		}
	}
	return nil, fmt.Errorf("%w: missing IEND chunk", ErrDecode)
}

func (info *ImageInfo) parseIHDR(body []byte) error {
	if len(body) != ihdrLen {
		return fmt.Errorf("%w: IHDR is %d bytes, expected %d", ErrDecode, len(body), ihdrLen)
	}
	w := binary.BigEndian.Uint32(body[0:4])
	h := binary.BigEndian.Uint32(body[4:8])
	if w == 0 || h == 0 || w > 1<<31-1 || h > 1<<31-1 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrDecode, w, h)
	}
	info.Width = int(w)
	info.Height = int(h)
	info.BitDepth = int(body[8])
	info.ColorType = colorTypeName(body[9])
	info.Interlaced = body[12] == 1
	return nil
}
