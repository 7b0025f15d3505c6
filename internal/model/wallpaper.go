package model

// WallpaperRecord is the metadata the provider returns for one day-index.
//
// It is transient: produced by the resolver, consumed once by the
// pipeline and then discarded.
type WallpaperRecord struct {
	// ImageURL is the location of the full-size image. Empty when the
	// provider omitted the field.
	ImageURL string

	// Description is the combined "title (© copyright)" text.
	Description string

	// EndDate is used verbatim as the base name of the saved file.
	EndDate string
}

// HasImage reports whether the record carries an image reference.
func (r *WallpaperRecord) HasImage() bool {
	return r != nil && r.ImageURL != ""
}

// ParsedDescription holds the title and copyright split out of a
// WallpaperRecord description.
type ParsedDescription struct {
	Title     string
	Copyright string
}
