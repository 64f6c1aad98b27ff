package png

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// MediaType is the only declared input type accepted.
const MediaType = "image/png"

// ErrUnsupportedFileType is returned when an input's declared media type is not PNG.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// CheckMediaType validates a declared media type such as an upload's
// Content-Type. Parameters and case are ignored. The image bytes are not
// inspected.
func CheckMediaType(declared string) error {
	if declared == "" {
		return fmt.Errorf("%w: no media type declared (want %s)", ErrUnsupportedFileType, MediaType)
	}
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedFileType, declared, err)
	}
	if mt != MediaType {
		return fmt.Errorf("%w: %s (want %s)", ErrUnsupportedFileType, mt, MediaType)
	}
	return nil
}

// MediaTypeForPath returns the media type declared by a file name's extension,
// or "" if the extension is unknown.
func MediaTypeForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}
