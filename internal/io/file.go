// Package ioutils provides file system utilities for the bing-wallpaper-downloader.
package ioutils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultExtension is used when the Content-Type is missing or unknown.
const DefaultExtension = ".jpg"

// DefaultBaseName replaces a base name that sanitizes to nothing.
const DefaultBaseName = "wallpaper"

var extensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/bmp":     ".bmp",
}

// ExtensionForContentType maps an HTTP Content-Type to a file extension.
//
// Matching is case-insensitive and exact; anything not in the known set,
// including an empty string, maps to DefaultExtension.
//
// Example:
//
//	ExtensionForContentType("IMAGE/PNG")   // ".png"
//	ExtensionForContentType("text/html")   // ".jpg"
//	ExtensionForContentType("")            // ".jpg"
func ExtensionForContentType(contentType string) string {
	if ext, ok := extensions[strings.ToLower(contentType)]; ok {
		return ext
	}
	return DefaultExtension
}

// Allocator hands out file paths under a fixed root directory that do
// not exist at the moment they are returned.
//
// The existence check and the later file creation are not atomic. That is
// fine for one process writing into its own directory; two instances
// sharing a root could race for the same name.
type Allocator struct {
	root string
}

// NewAllocator creates an Allocator rooted at dir.
func NewAllocator(dir string) *Allocator {
	return &Allocator{root: dir}
}

// Root returns the directory paths are allocated in.
func (a *Allocator) Root() string {
	return a.root
}

// Allocate returns <root>/<base><ext>, or <root>/<base>_N<ext> with the
// smallest N >= 1 that is free.
//
// The base name is sanitized first so provider data cannot point outside
// the root.
//
// Example:
//
//	// with 20240101.jpg and 20240101_1.jpg already present
//	path, _ := alloc.Allocate("20240101", ".jpg") // ".../20240101_2.jpg"
func (a *Allocator) Allocate(base, ext string) (string, error) {
	base = SanitizeFileName(base)
	if base == "" {
		base = DefaultBaseName
	}

	path := filepath.Join(a.root, base+ext)
	for counter := 1; ; counter++ {
		taken, err := exists(path)
		if err != nil {
			return "", fmt.Errorf("check %s: %w", path, err)
		}
		if !taken {
			return path, nil
		}
		path = filepath.Join(a.root, fmt.Sprintf("%s_%d%s", base, counter, ext))
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Leading and trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("2024/01/01")  // Returns "2024_01_01"
//	SanitizeFileName("20240101...") // Returns "20240101"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
