package tagging

import (
	"fmt"

	"github.com/barasher/go-exiftool"

	"github.com/handiism/bing-wallpaper-downloader/internal/model"
)

// ExiftoolTagger writes tags through a long-running exiftool process.
// It handles every format exiftool can write, not just JPEG.
//
// exiftool must be installed and on PATH. Call Close when done.
type ExiftoolTagger struct {
	et *exiftool.Exiftool
}

// NewExiftoolTagger starts the exiftool process.
func NewExiftoolTagger() (*ExiftoolTagger, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("could not initialize exiftool: %w", err)
	}
	return &ExiftoolTagger{et: et}, nil
}

// Tag writes EXIF:ImageDescription and EXIF:Copyright into the file at path.
func (t *ExiftoolTagger) Tag(path string, desc model.ParsedDescription) error {
	fm := exiftool.EmptyFileMetadata()
	fm.File = path
	fm.SetString("EXIF:"+TagImageDescription, desc.Title)
	fm.SetString("EXIF:"+TagCopyright, desc.Copyright)

	batch := []exiftool.FileMetadata{fm}
	t.et.WriteMetadata(batch)

	if batch[0].Err != nil {
		return fmt.Errorf("exiftool %s: %w", path, batch[0].Err)
	}
	return nil
}

// Close stops the exiftool process.
func (t *ExiftoolTagger) Close() error {
	return t.et.Close()
}
