package bing

import (
	"strings"
	"unicode/utf8"

	"github.com/handiism/bing-wallpaper-downloader/internal/model"
)

const (
	titleBoundary     = " ("
	copyrightBoundary = "© "
)

// ParseDescription splits a combined "title (© copyright)" description.
//
// Title is everything before the first " (", or the whole text when there
// is none. Copyright is the text after the first "© " (up to any second
// "© ") with its last character dropped, which removes the closing
// parenthesis; it is empty when the text has no "© ".
//
// Example:
//
//	ParseDescription("Sunset (© Jane Doe)") // {Title: "Sunset", Copyright: "Jane Doe"}
//	ParseDescription("Sunset")              // {Title: "Sunset", Copyright: ""}
func ParseDescription(text string) model.ParsedDescription {
	title, _, _ := strings.Cut(text, titleBoundary)

	var copyright string
	if _, after, ok := strings.Cut(text, copyrightBoundary); ok {
		segment, _, _ := strings.Cut(after, copyrightBoundary)
		_, size := utf8.DecodeLastRuneInString(segment)
		copyright = segment[:len(segment)-size]
	}

	return model.ParsedDescription{Title: title, Copyright: copyright}
}
