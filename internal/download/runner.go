package download

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/handiism/bing-wallpaper-downloader/internal/model"
)

// BatchResultPrefix starts the result of a range run; the last index's
// outcome follows it.
const BatchResultPrefix = "batch download complete, last result: "

// ExecutionError formats the result reported when a run cannot execute.
func ExecutionError(err error) string {
	return fmt.Sprintf("execution error: %v", err)
}

// UnitRunner runs the pipeline for a single day-index.
type UnitRunner interface {
	Run(ctx context.Context, index int) Result
}

// Runner drives a UnitRunner over an index specification.
//
// It never fans out: indices run one after another. It does not stop two
// runs from overlapping; callers keep at most one in flight.
type Runner struct {
	unit UnitRunner
	log  *logrus.Logger
}

// NewRunner creates a Runner over unit.
func NewRunner(unit UnitRunner, log *logrus.Logger) *Runner {
	return &Runner{unit: unit, log: log}
}

// Run executes the specification synchronously and returns the result
// string. onProgress (may be nil) receives every progress value, in order,
// before Run returns.
//
// Only the last index's outcome appears in a range result; earlier
// outcomes are visible in the log.
func (r *Runner) Run(ctx context.Context, text string, onProgress func(int)) (result string) {
	runLog := r.log.WithFields(logrus.Fields{"run_id": uuid.NewString(), "spec": text})
	emit := func(percent int) {
		if onProgress != nil {
			onProgress(percent)
		}
	}

	defer func() {
		if rec := recover(); rec != nil {
			runLog.WithField("panic", rec).Error("Batch run failed")
			emit(0)
			result = ExecutionError(fmt.Errorf("%v", rec))
		}
	}()

	spec, err := ParseIndexSpec(text)
	if err != nil {
		runLog.WithError(err).Warn("Rejected index specification")
		emit(0)
		return ExecutionError(err)
	}

	if !spec.Range {
		runLog.WithField("index", spec.Start).Info("Starting download")
		emit(50)
		res := r.unit.Run(ctx, spec.Start)
		emit(100)
		return res.Outcome
	}

	indices := spec.Indices()
	if len(indices) == 0 {
		err := fmt.Errorf("%w %d..%d", ErrEmptyRange, spec.Start, spec.End)
		runLog.WithError(err).Warn("Nothing to download")
		emit(0)
		return ExecutionError(err)
	}

	runLog.WithFields(logrus.Fields{"start": spec.Start, "end": spec.End}).Info("Starting batch download")

	progress := model.BatchProgress{Total: len(indices)}
	var last Result
	for _, index := range indices {
		last = r.unit.Run(ctx, index)
		progress.Completed++
		runLog.WithFields(logrus.Fields{"index": index, "outcome": last.Outcome}).Info("Index finished")
		emit(progress.Percent())
	}

	return BatchResultPrefix + last.Outcome
}

// Start runs the specification on a dedicated goroutine.
//
// Progress values arrive on the first channel, which is closed once the
// run is over. The single result is then sent on the second channel,
// which is closed after it.
func (r *Runner) Start(ctx context.Context, text string) (<-chan int, <-chan string) {
	progress := make(chan int, model.MaxDayIndex+2)
	result := make(chan string, 1)

	go func() {
		defer close(result)
		out := r.Run(ctx, text, func(percent int) {
			progress <- percent
		})
		close(progress)
		result <- out
	}()

	return progress, result
}
