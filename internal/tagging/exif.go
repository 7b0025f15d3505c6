package tagging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jis "github.com/dsoprea/go-jpeg-image-structure/v2"

	"github.com/handiism/bing-wallpaper-downloader/internal/model"
)

var jpegMagic = []byte{0xFF, 0xD8, 0xFF}

// EXIFTagger rewrites the IFD0 ImageDescription and Copyright tags of
// JPEG files without re-encoding the image data.
//
// Example:
//
//	tagger := NewEXIFTagger()
//	err := tagger.Tag(path, model.ParsedDescription{Title: "Sunset", Copyright: "Jane Doe"})
type EXIFTagger struct {
	tagIndex *exif.TagIndex
}

// NewEXIFTagger creates an EXIFTagger backed by the standard EXIF tag table.
func NewEXIFTagger() *EXIFTagger {
	return &EXIFTagger{tagIndex: exif.NewTagIndex()}
}

// Tag writes desc into the file at path.
//
// This method:
//  1. Checks the file is a JPEG (by content, not extension)
//  2. Loads the existing EXIF block, or starts an empty one
//  3. Sets each field whose tag name resolves in the tag table
//  4. Replaces the file through a temp file in the same directory
//
// Returns ErrUnsupportedFormat (wrapped) for non-JPEG files.
func (t *EXIFTagger) Tag(path string, desc model.ParsedDescription) (err error) {
	// The exif libraries report many failures by panicking.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tag %s: %v", path, r)
		}
	}()

	ok, err := isJPEG(path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	mc, err := jis.NewJpegMediaParser().ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	sl := mc.(*jis.SegmentList)

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		// Missing or unreadable EXIF: start from an empty IFD0.
		rootIb, err = t.emptyRoot()
		if err != nil {
			return err
		}
	}

	fields := []struct{ name, value string }{
		{TagImageDescription, desc.Title},
		{TagCopyright, desc.Copyright},
	}
	for _, f := range fields {
		if !t.resolvable(f.name) {
			continue
		}
		if err := rootIb.SetStandardWithName(f.name, f.value); err != nil {
			return fmt.Errorf("set %s: %w", f.name, err)
		}
	}

	if err := sl.SetExif(rootIb); err != nil {
		return fmt.Errorf("update EXIF segment: %w", err)
	}

	var buf bytes.Buffer
	if err := sl.Write(&buf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return replaceFile(path, buf.Bytes())
}

func (t *EXIFTagger) resolvable(name string) bool {
	_, err := t.tagIndex.GetWithName(exifcommon.IfdStandardIfdIdentity, name)
	return err == nil
}

func (t *EXIFTagger) emptyRoot() (*exif.IfdBuilder, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, fmt.Errorf("load IFD mapping: %w", err)
	}
	return exif.NewIfdBuilder(im, t.tagIndex, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder), nil
}

func isJPEG(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, len(jpegMagic))
	if _, err := io.ReadFull(f, head); err != nil {
		return false, nil
	}
	return bytes.Equal(head, jpegMagic), nil
}

// replaceFile swaps data in for the file at path, keeping its permissions.
func replaceFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tagging-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
