package ioutils

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageInfo describes a saved image without its pixel data.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// ProbeImage reads just enough of the file at path to report its format
// and dimensions.
//
// Supported formats are JPEG, PNG, GIF, BMP and WebP. SVG and anything
// else returns an error; callers use the result for logging only.
//
// Example:
//
//	info, err := ProbeImage("/opt/bingwall/20240101.jpg")
//	// info = {Format: "jpeg", Width: 3840, Height: 2160}
func ProbeImage(path string) (ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("probe %s: %w", path, err)
	}

	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
