package png

import (
	"fmt"
	"image/png"
)

// ParseCompression converts a compression name to a png.CompressionLevel.
func ParseCompression(s string) (png.CompressionLevel, error) {
	switch s {
	case "", "default":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	default:
		return 0, fmt.Errorf("unknown compression level: %q", s)
	}
}

// CompressionName is the inverse of ParseCompression.
func CompressionName(level png.CompressionLevel) string {
	switch level {
	case png.DefaultCompression:
		return "default"
	case png.NoCompression:
		return "none"
	case png.BestSpeed:
		return "speed"
	case png.BestCompression:
		return "best"
	default:
		return fmt.Sprintf("CompressionLevel(%d)", int(level))
	}
}
