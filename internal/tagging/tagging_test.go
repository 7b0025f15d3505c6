package tagging

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	exif "github.com/dsoprea/go-exif/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/bing-wallpaper-downloader/internal/model"
)

func writeTestJPEG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		img.Set(x, x, color.RGBA{B: 200, A: 255})
	}

	path := filepath.Join(dir, "20240101.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 90}))
	require.NoError(t, f.Close())
	return path
}

func readTags(t *testing.T, path string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rawExif, err := exif.SearchAndExtractExif(data)
	require.NoError(t, err)

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	require.NoError(t, err)

	tags := make(map[string]string)
	for _, e := range entries {
		if s, ok := e.Value.(string); ok {
			tags[e.TagName] = s
		}
	}
	return tags
}

func TestEXIFTagger_TagsJPEGWithoutExif(t *testing.T) {
	path := writeTestJPEG(t, t.TempDir())

	err := NewEXIFTagger().Tag(path, model.ParsedDescription{Title: "Sunset", Copyright: "Jane Doe"})
	require.NoError(t, err)

	tags := readTags(t, path)
	assert.Equal(t, "Sunset", tags[TagImageDescription])
	assert.Equal(t, "Jane Doe", tags[TagCopyright])

	// Pixel data must still decode.
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
}

func TestEXIFTagger_RetagOverwritesFields(t *testing.T) {
	path := writeTestJPEG(t, t.TempDir())
	tagger := NewEXIFTagger()

	require.NoError(t, tagger.Tag(path, model.ParsedDescription{Title: "First", Copyright: "A"}))
	require.NoError(t, tagger.Tag(path, model.ParsedDescription{Title: "Second", Copyright: ""}))

	tags := readTags(t, path)
	assert.Equal(t, "Second", tags[TagImageDescription])
	assert.Equal(t, "", tags[TagCopyright])
}

func TestEXIFTagger_KeepsPermissionsAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeTestJPEG(t, dir)
	require.NoError(t, os.Chmod(path, 0640))

	require.NoError(t, NewEXIFTagger().Tag(path, model.ParsedDescription{Title: "Sunset"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEXIFTagger_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "20240101.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 4, 4))))
	require.NoError(t, f.Close())

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = NewEXIFTagger().Tag(path, model.ParsedDescription{Title: "Sunset"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEXIFTagger_CorruptJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, 0644))

	assert.Error(t, NewEXIFTagger().Tag(path, model.ParsedDescription{Title: "Sunset"}))
}

func TestEXIFTagger_MissingFile(t *testing.T) {
	err := NewEXIFTagger().Tag(filepath.Join(t.TempDir(), "missing.jpg"), model.ParsedDescription{})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	tagger, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &EXIFTagger{}, tagger)

	tagger, err = New(KindNone)
	require.NoError(t, err)
	assert.NoError(t, tagger.Tag("/does/not/matter", model.ParsedDescription{}))
	assert.NoError(t, Close(tagger))

	_, err = New("pillow")
	assert.Error(t, err)
}

func TestExiftoolTagger(t *testing.T) {
	if _, err := exec.LookPath("exiftool"); err != nil {
		t.Skip("exiftool not installed")
	}

	path := writeTestJPEG(t, t.TempDir())
	tagger, err := NewExiftoolTagger()
	require.NoError(t, err)
	defer tagger.Close()

	require.NoError(t, tagger.Tag(path, model.ParsedDescription{Title: "Sunset", Copyright: "Jane Doe"}))

	tags := readTags(t, path)
	assert.Equal(t, "Sunset", tags[TagImageDescription])
	assert.Equal(t, "Jane Doe", tags[TagCopyright])
}
