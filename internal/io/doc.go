// Package ioutils provides file system and image utilities.
//
// This package contains functions for:
//   - Mapping a Content-Type to a file extension
//   - Allocating collision-free file names under a root directory
//   - Filename sanitization for cross-platform compatibility
//   - Reading image dimensions without decoding pixels
//
// # File Names
//
//	alloc := ioutils.NewAllocator("/opt/bingwall")
//	path, err := alloc.Allocate("20240101", ioutils.ExtensionForContentType("image/jpeg"))
//	// "/opt/bingwall/20240101.jpg", or "/opt/bingwall/20240101_1.jpg" if taken
//
// # Image Probing
//
//	info, err := ioutils.ProbeImage(path)
//	fmt.Printf("%s %dx%d\n", info.Format, info.Width, info.Height)
package ioutils
