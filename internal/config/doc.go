// Package config provides configuration management for bing-wallpaper-downloader.
//
// This package handles:
//   - Loading and saving settings from YAML files
//   - Default configuration values
//   - Resolving the program directory images are written to
//   - Building the shared logger
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Queries bing.biturl.top for UHD en-US images
//	// Saves next to the executable
//	// Tags JPEGs with the pure-Go EXIF writer
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/bingwall.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.OutputDir = "/srv/wallpapers"
//	err := settings.Save("/path/to/bingwall.yaml")
package config
