package color

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseColorValid(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#FF0000", Color{R: 255}},
		{"ff0000", Color{R: 255}},
		{"#00ff7F", Color{G: 255, B: 127}},
		{"#000000", Color{}},
		{"FFFFFF", Color{R: 255, G: 255, B: 255}},
		{"#1a2B3c", Color{R: 0x1a, G: 0x2b, B: 0x3c}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorRoundTrip(t *testing.T) {
	// Walk a spread of values on every channel, with and without '#',
	// in both cases.
	for v := 0; v < 256; v += 7 {
		for _, format := range []string{"#%02x%02x%02x", "%02X%02X%02X", "#%02X%02x%02X"} {
			in := fmt.Sprintf(format, v, 255-v, (v*3)%256)
			c, err := ParseColor(in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", in, err)
			}
			want := strings.ToUpper(strings.TrimPrefix(in, "#"))
			if got := strings.TrimPrefix(c.Hex(), "#"); got != want {
				t.Errorf("round trip %q: got %q, want %q", in, got, want)
			}
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"#",
		"#FFF",
		"FFF",
		"#FF000",
		"#FF00000",
		"GG0000",
		"#12345z",
		"red",
		"##FF0000",
		" #FF0000",
		"#FF0000\n",
		"0xFF0000",
		"+FFFFF",
	} {
		_, err := ParseColor(in)
		if !errors.Is(err, ErrInvalidColorFormat) {
			t.Errorf("ParseColor(%q): expected ErrInvalidColorFormat, got %v", in, err)
		}
	}
}

func TestColorfulConversion(t *testing.T) {
	c := MustParseColor("#336699")
	if back := FromColorful(c.Colorful()); back != c {
		t.Errorf("colorful round trip: got %s, want %s", back, c)
	}
	if got := c.String(); got != "#336699" {
		t.Errorf("String() = %q", got)
	}
}
