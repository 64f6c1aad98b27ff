package color

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColorFormat is returned when a target color is not six hex digits.
var ErrInvalidColorFormat = errors.New("invalid color format")

var hexColorPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// Color is an sRGB color with 8-bit components.
type Color struct {
	R, G, B uint8
}

// ParseColor parses "#RRGGBB" or "RRGGBB" (case-insensitive).
// Short "#RGB" forms and color names are not accepted.
func ParseColor(s string) (Color, error) {
	if !hexColorPattern.MatchString(s) {
		return Color{}, fmt.Errorf("%w: %q (expected #RRGGBB)", ErrInvalidColorFormat, s)
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColorFormat, s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as upper-case "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// Colorful converts c to a go-colorful color with components in [0,1].
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// FromColorful converts a go-colorful color, clamping out-of-gamut values.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
