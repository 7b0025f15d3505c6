package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/handiism/bing-wallpaper-downloader/internal/config"
	"github.com/handiism/bing-wallpaper-downloader/internal/download"
	"github.com/handiism/bing-wallpaper-downloader/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Log lines would tear the alt screen.
	log := config.NewLogger(settings.LogLevel)
	log.SetOutput(io.Discard)

	pipeline, err := download.NewPipeline(settings, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer pipeline.Close()

	if err := tui.Run(context.Background(), download.NewRunner(pipeline, log), pipeline.OutputDir()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		pipeline.Close()
		os.Exit(1)
	}
}
