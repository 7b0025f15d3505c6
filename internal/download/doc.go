// Package download provides the fetch-resolve-persist-tag pipeline and the
// batch runner that drives it.
//
// # Pipeline
//
// Pipeline handles one day-index:
//
//  1. Resolve the wallpaper record from the provider
//  2. Split the description into title and copyright
//  3. Stream the image to a collision-free path in the output directory
//  4. Write EXIF tags (best effort, failures are logged and ignored)
//
// Every run ends in exactly one human-readable outcome string.
//
// # Batch Runner
//
// Runner parses an index specification ("3" or "0,7") and runs the
// pipeline for each index in order, one at a time:
//
//	pipeline, err := download.NewPipeline(settings, log)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pipeline.Close()
//
//	runner := download.NewRunner(pipeline, log)
//	progress, result := runner.Start(ctx, "0,3")
//	for p := range progress {
//	    fmt.Printf("%d%%\n", p)
//	}
//	fmt.Println(<-result)
//
// # Progress Reporting
//
// Single mode reports 50 then 100. Range mode reports
// completed*100/total after each index. The progress channel is closed
// before the one result is sent, so draining progress first never misses
// the result.
package download
