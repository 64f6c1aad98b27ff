package pipeline

import (
	"errors"

	"github.com/davesmith10/recolor/internal/color"
	"github.com/davesmith10/recolor/internal/png"
)

// ErrRead is returned when the input byte source cannot be read.
var ErrRead = errors.New("read failure")

// Kind classifies a pipeline failure for display to the user.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnsupportedFileType
	KindDecodeFailure
	KindInvalidColorFormat
	KindReadFailure
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedFileType:
		return "UnsupportedFileType"
	case KindDecodeFailure:
		return "DecodeFailure"
	case KindInvalidColorFormat:
		return "InvalidColorFormat"
	case KindReadFailure:
		return "ReadFailure"
	default:
		return "Unknown"
	}
}

// KindOf reports which kind of failure err is. A nil error is KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, png.ErrUnsupportedFileType):
		return KindUnsupportedFileType
	case errors.Is(err, png.ErrDecode):
		return KindDecodeFailure
	case errors.Is(err, color.ErrInvalidColorFormat):
		return KindInvalidColorFormat
	case errors.Is(err, ErrRead):
		return KindReadFailure
	default:
		return KindUnknown
	}
}
