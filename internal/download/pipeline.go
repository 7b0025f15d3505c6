package download

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/handiism/bing-wallpaper-downloader/internal/bing"
	"github.com/handiism/bing-wallpaper-downloader/internal/config"
	"github.com/handiism/bing-wallpaper-downloader/internal/http"
	ioutils "github.com/handiism/bing-wallpaper-downloader/internal/io"
	"github.com/handiism/bing-wallpaper-downloader/internal/model"
	"github.com/handiism/bing-wallpaper-downloader/internal/tagging"
)

// Outcome strings produced by Pipeline.Run.
const (
	OutcomeRecordFailed   = "continuation impossible, record fetch failed"
	OutcomeNoImageURL     = "no image reference in record"
	OutcomeDownloadFailed = "image download failed"
	outcomeSavedFormat    = "image downloaded, saved to: %s"
)

// SavedOutcome returns the outcome string for an image saved at path.
func SavedOutcome(path string) string {
	return fmt.Sprintf(outcomeSavedFormat, path)
}

// Resolver looks up the wallpaper record for a day-index.
type Resolver interface {
	Resolve(ctx context.Context, index int) (*model.WallpaperRecord, error)
}

// Result is everything one pipeline run produced.
//
// Only Outcome is reported to users. Transfer and TagErr keep the two
// stages apart so a tagging failure stays visible to callers that care,
// even though it never changes Outcome.
type Result struct {
	Index    int
	Outcome  string
	Record   *model.WallpaperRecord
	Transfer model.FetchOutcome
	TagErr   error
}

// Pipeline runs resolve → fetch → tag for one day-index.
type Pipeline struct {
	resolver Resolver
	fetcher  *Fetcher
	tagger   tagging.Tagger
	log      *logrus.Logger
}

// NewPipelineWith assembles a Pipeline from its parts.
func NewPipelineWith(resolver Resolver, fetcher *Fetcher, tagger tagging.Tagger, log *logrus.Logger) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		fetcher:  fetcher,
		tagger:   tagger,
		log:      log,
	}
}

// NewPipeline wires a Pipeline from settings: one HTTP client shared by
// resolver and fetcher, the output directory fixed at construction, and
// the configured tagger. opts are applied to the fetcher.
func NewPipeline(settings *config.Settings, log *logrus.Logger, opts ...FetcherOption) (*Pipeline, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	root, err := settings.ResolveOutputDir()
	if err != nil {
		return nil, err
	}
	if err := ioutils.EnsureDir(root); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	tagger, err := tagging.New(tagging.Kind(settings.Tagger))
	if err != nil {
		return nil, err
	}

	client := http.NewClient(settings.UserAgent, settings.Timeout)
	resolver := bing.NewResolver(client, settings.Endpoint, settings.ToQuery(), log)
	fetcher := NewFetcher(client, ioutils.NewAllocator(root), settings.ChunkSize, log, opts...)

	log.WithFields(logrus.Fields{"output_dir": root, "tagger": settings.Tagger}).Debug("Pipeline ready")
	return NewPipelineWith(resolver, fetcher, tagger, log), nil
}

// OutputDir returns the directory images are saved in.
func (p *Pipeline) OutputDir() string {
	return p.fetcher.Root()
}

// Close releases the tagger.
func (p *Pipeline) Close() error {
	return tagging.Close(p.tagger)
}

// Run processes one day-index and always returns a Result with Outcome set.
func (p *Pipeline) Run(ctx context.Context, index int) (res Result) {
	res.Index = index
	unitLog := p.log.WithField("index", index)

	defer func() {
		if r := recover(); r != nil {
			unitLog.WithField("panic", r).Error("Pipeline failed unexpectedly")
			res.Transfer = model.Failure(fmt.Errorf("%w: %v", ErrTransfer, r))
			res.Outcome = OutcomeDownloadFailed
		}
	}()

	rec, err := p.resolver.Resolve(ctx, index)
	if err != nil || rec == nil {
		res.Outcome = OutcomeRecordFailed
		return res
	}
	res.Record = rec

	if !rec.HasImage() {
		unitLog.Warn("Record has no image URL")
		res.Outcome = OutcomeNoImageURL
		return res
	}

	desc := bing.ParseDescription(rec.Description)

	res.Transfer = p.fetcher.Fetch(ctx, rec.ImageURL, rec.EndDate)
	if !res.Transfer.OK() {
		res.Outcome = OutcomeDownloadFailed
		return res
	}
	path := res.Transfer.Path

	if err := p.tagger.Tag(path, desc); err != nil {
		res.TagErr = err
		unitLog.WithError(err).WithField("path", path).Warn("Could not tag image, keeping it untagged")
	}

	if info, err := ioutils.ProbeImage(path); err == nil {
		unitLog.WithFields(logrus.Fields{
			"format": info.Format,
			"width":  info.Width,
			"height": info.Height,
		}).Debug("Probed saved image")
	}

	unitLog.WithFields(logrus.Fields{"path": path, "title": desc.Title}).Info("Wallpaper saved")
	res.Outcome = SavedOutcome(path)
	return res
}
