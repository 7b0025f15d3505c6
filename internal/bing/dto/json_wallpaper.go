package dto

import "github.com/handiism/bing-wallpaper-downloader/internal/model"

// JSONWallpaper is the document returned by the bing.biturl.top endpoint.
type JSONWallpaper struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	URL           string `json:"url"`
	Copyright     string `json:"copyright"`
	CopyrightLink string `json:"copyright_link"`
}

// ToRecord converts JSONWallpaper to a model.WallpaperRecord.
func (jw *JSONWallpaper) ToRecord() *model.WallpaperRecord {
	return &model.WallpaperRecord{
		ImageURL:    jw.URL,
		Description: jw.Copyright,
		EndDate:     jw.EndDate,
	}
}
