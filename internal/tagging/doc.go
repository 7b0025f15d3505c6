// Package tagging writes descriptive EXIF tags into saved wallpaper images.
//
// # Taggers
//
// Three implementations of Tagger are provided:
//   - EXIFTagger: pure Go, rewrites the EXIF block of JPEG files in place
//   - ExiftoolTagger: drives an external exiftool process, any format it supports
//   - NopTagger: tagging disabled
//
// Use New to pick one by name:
//
//	tagger, err := tagging.New(tagging.KindEXIF)
//	err = tagger.Tag("/opt/bingwall/20240101.jpg", model.ParsedDescription{
//	    Title:     "Sunset",
//	    Copyright: "Jane Doe",
//	})
//
// # Fields
//
// The title goes into ImageDescription (0x010e) and the attribution into
// Copyright (0x8298), both in IFD0. Other existing tags are preserved.
//
// Tagging is an enrichment step: callers log a returned error and keep
// the file as downloaded.
package tagging
