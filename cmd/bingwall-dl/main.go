package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/bing-wallpaper-downloader/internal/config"
	"github.com/handiism/bing-wallpaper-downloader/internal/download"
)

var (
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AA55FF"))
	bytesStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	resultStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#95E1A3"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
)

var errInterrupted = errors.New("interrupted")

// byteReportStep is how often -verbose reports transfer progress.
const byteReportStep = 256 << 10

func main() {
	var (
		indexFlag      = flag.String("index", "", "Day to download, 0-7 (0 is today), or an inclusive range like 0,3")
		configFlag     = flag.String("config", "", "Path to YAML config file")
		saveConfigFlag = flag.String("save-config", "", "Write the effective settings to this YAML file and exit")
		outputFlag     = flag.String("output", "", "Output directory (default: directory of this program)")
		taggerFlag     = flag.String("tagger", "", "Tag writer: exif, exiftool or none")
		marketFlag     = flag.String("market", "", "Provider market, e.g. en-US")
		logLevelFlag   = flag.String("log-level", "", "Log level: debug, info, warn, error")
		verboseFlag    = flag.Bool("verbose", false, "Show bytes received while downloading")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Bing Wallpaper Downloader - save the daily Bing image with its title and copyright")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  bingwall-dl [options] [index|start,end]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "For interactive mode, use: bingwall-tui")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
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

	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *taggerFlag != "" {
		settings.Tagger = *taggerFlag
	}
	if *marketFlag != "" {
		settings.Market = *marketFlag
	}
	if *logLevelFlag != "" {
		settings.LogLevel = *logLevelFlag
	}

	if *saveConfigFlag != "" {
		if err := settings.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := settings.Save(*saveConfigFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Settings written to %s\n", *saveConfigFlag)
		return
	}

	spec := *indexFlag
	if spec == "" && flag.NArg() > 0 {
		spec = flag.Arg(0)
	}

	log := config.NewLogger(settings.LogLevel)

	var opts []download.FetcherOption
	if *verboseFlag {
		opts = append(opts, download.WithProgress(byteReporter(os.Stdout)))
	}

	pipeline, err := download.NewPipeline(settings, log, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}
	defer pipeline.Close()

	// Batches are not cancellable: the run keeps a background context and
	// an interrupt only stops this process from waiting on it.
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := download.NewRunner(pipeline, log)
	progressCh, resultCh := runner.Start(context.Background(), spec)

	result, err := consume(sigCtx, progressCh, resultCh)
	if errors.Is(err, errInterrupted) {
		fmt.Println("\nInterrupted")
		pipeline.Close()
		os.Exit(130)
	}

	if strings.HasPrefix(result, "execution error") {
		fmt.Println(errorStyle.Render(result))
		pipeline.Close()
		os.Exit(2)
	}
	fmt.Println(resultStyle.Render(result))
}

// consume prints progress until the run reports its result, or until ctx
// is cancelled by a signal.
func consume(ctx context.Context, progressCh <-chan int, resultCh <-chan string) (string, error) {
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	var result string

	g.Go(func() error {
		select {
		case <-done:
			return nil
		case <-gctx.Done():
			return errInterrupted
		}
	})

	g.Go(func() error {
		defer close(done)
		for progressCh != nil {
			select {
			case p, ok := <-progressCh:
				if !ok {
					progressCh = nil
					continue
				}
				fmt.Println(progressStyle.Render(fmt.Sprintf("[%3d%%]", p)))
			case <-gctx.Done():
				return errInterrupted
			}
		}
		select {
		case result = <-resultCh:
			return nil
		case <-gctx.Done():
			return errInterrupted
		}
	})

	err := g.Wait()
	return result, err
}

// byteReporter writes the running byte count to w every byteReportStep
// bytes and once the body is complete.
func byteReporter(w io.Writer) download.ProgressFunc {
	var reported int64
	return func(written, total int64) {
		if written < reported {
			reported = 0
		}
		if written-reported < byteReportStep && written != total {
			return
		}
		reported = written
		if total > 0 {
			fmt.Fprintln(w, bytesStyle.Render(fmt.Sprintf("       %d / %d bytes", written, total)))
		} else {
			fmt.Fprintln(w, bytesStyle.Render(fmt.Sprintf("       %d bytes", written)))
		}
	}
}
