// Package model defines the core data structures used throughout
// the bing-wallpaper-downloader application.
//
// # Wallpaper Records
//
// WallpaperRecord is what the provider returns for one day-index:
//
//	rec := &model.WallpaperRecord{
//	    ImageURL:    "https://www.bing.com/th?id=OHR.Example_UHD.jpg",
//	    Description: "Sunset over the bay (© Jane Doe)",
//	    EndDate:     "20240101",
//	}
//
// # Outcomes
//
// FetchOutcome is the discriminated result of a transfer: either a saved
// path or the error that stopped it.
//
//	out := model.Success("/opt/bingwall/20240101.jpg")
//	if out.OK() {
//	    fmt.Println(out.Path)
//	}
//
// # Progress
//
// BatchProgress computes the integer percentage reported after each unit:
//
//	p := model.BatchProgress{Completed: 1, Total: 3}
//	p.Percent() // 33
package model
