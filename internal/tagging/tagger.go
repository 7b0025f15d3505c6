package tagging

import (
	"errors"
	"fmt"
	"io"

	"github.com/handiism/bing-wallpaper-downloader/internal/model"
)

// Tag names written into the image, as named in the EXIF tag table.
const (
	TagImageDescription = "ImageDescription"
	TagCopyright        = "Copyright"
)

// ErrUnsupportedFormat is returned when a tagger cannot handle the file's format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Tagger writes a ParsedDescription into the descriptive tags of an image
// file, in place.
type Tagger interface {
	Tag(path string, desc model.ParsedDescription) error
}

// Kind selects a Tagger implementation.
type Kind string

const (
	KindEXIF     Kind = "exif"
	KindExiftool Kind = "exiftool"
	KindNone     Kind = "none"
)

// New creates the Tagger for kind. An empty kind selects KindEXIF.
//
// The returned Tagger may implement io.Closer (ExiftoolTagger does);
// use Close to release it.
func New(kind Kind) (Tagger, error) {
	switch kind {
	case KindEXIF, "":
		return NewEXIFTagger(), nil
	case KindExiftool:
		return NewExiftoolTagger()
	case KindNone:
		return NopTagger{}, nil
	}
	return nil, fmt.Errorf("unknown tagger %q", kind)
}

// Close releases t if it holds resources.
func Close(t Tagger) error {
	if c, ok := t.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NopTagger leaves files untouched.
type NopTagger struct{}

// Tag does nothing.
func (NopTagger) Tag(string, model.ParsedDescription) error { return nil }
