package app

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/gwiki/internal/domain"
	"github.com/bft-labs/gwiki/internal/ports"
	"github.com/bft-labs/gwiki/internal/transform"
)

// BatchConfig contains configuration for a batch run.
type BatchConfig struct {
	// Workers bounds concurrent article transforms; <= 0 means runtime.NumCPU().
	Workers int

	// ProgressEvery logs progress every N articles; 0 disables progress logs.
	ProgressEvery int

	// CopyImages enables copying referenced images after the transforms.
	CopyImages bool

	Transform transform.Options
}

// Runner executes one batch: load the desired list, transform every
// candidate, copy images and save the report.
type Runner struct {
	config  BatchConfig
	titles  ports.TitleLoader
	source  ports.ArticleSource
	writer  ports.ArticleWriter
	copier  ports.AssetCopier
	reports ports.ReportWriter
	logger  ports.Logger

	now   func() time.Time
	runID func() string
}

// NewRunner creates a batch runner with the given dependencies.
// copier may be nil when images are not copied.
func NewRunner(
	config BatchConfig,
	titles ports.TitleLoader,
	source ports.ArticleSource,
	writer ports.ArticleWriter,
	copier ports.AssetCopier,
	reports ports.ReportWriter,
	logger ports.Logger,
) *Runner {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Runner{
		config:  config,
		titles:  titles,
		source:  source,
		writer:  writer,
		copier:  copier,
		reports: reports,
		logger:  logger,
		now:     time.Now,
		runID:   uuid.NewString,
	}
}

// Run executes the batch and returns the saved report.
// Missing titles or an unreadable source directory abort the run. Per-article
// failures are recorded in the report. On cancellation in-flight articles
// finish and the partial report is saved before the context error is returned.
func (r *Runner) Run(ctx context.Context) (domain.Report, error) {
	start := r.now()

	desired, err := r.titles.Load(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	index := domain.NewValidityIndex(desired)

	available, err := r.source.List(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	candidates, missing := partition(index, available)
	r.logger.Info("starting batch",
		ports.Int("desired", index.Len()),
		ports.Int("found", len(candidates)),
		ports.Int("missing", len(missing)),
		ports.Int("workers", r.config.Workers))

	sample := missingSample(missing)
	if len(missing) > 0 {
		r.logger.Warn("desired articles not found in source",
			ports.Int("missing", len(missing)),
			ports.Strings("sample", sample))
	}

	transformer := transform.NewTransformer(index, r.writer, r.logger, r.config.Transform)
	acc := NewAccumulator(len(candidates), r.config.ProgressEvery, r.logger)

	results := make(chan sequencedResult, r.config.Workers)
	done := make(chan struct{})
	go acc.run(results, done)

	// Articles are not interruptible once started; ctx only gates scheduling.
	workCtx := context.WithoutCancel(ctx)

	g := new(errgroup.Group)
	g.SetLimit(r.config.Workers)

	for i, id := range candidates {
		i, id := i, id
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// Go may block for a free slot past a cancellation.
			if ctx.Err() != nil {
				return nil
			}
			results <- sequencedResult{seq: i, result: r.processOne(workCtx, transformer, id)}
			return nil
		})
	}

	g.Wait()
	close(results)
	<-done

	runErr := ctx.Err()
	if runErr != nil {
		r.logger.Warn("batch interrupted",
			ports.Int("completed", acc.Len()),
			ports.Int("total", len(candidates)))
	}

	images := acc.Images()
	copied := 0
	if r.config.CopyImages && r.copier != nil && runErr == nil {
		stats, err := r.copier.Copy(ctx, images)
		if err != nil {
			r.logger.Warn("image copy incomplete", ports.Err(err))
		}
		copied = stats.Copied
		r.logger.Info("copied images",
			ports.Int("copied", stats.Copied),
			ports.Int("total", len(images)),
			ports.Int("skipped", stats.Skipped),
			ports.Int("missing", stats.Missing),
			ports.Int("failed", stats.Failed))
	}

	processed, redirects, errs := acc.Counts()
	report := domain.Report{
		RunID:         r.runID(),
		GeneratedAt:   r.now().UTC(),
		TotalDesired:  index.Len(),
		FoundFiles:    len(candidates),
		Missing:       len(missing),
		MissingSample: sample,
		Processed:     processed,
		Redirects:     redirects,
		Errors:        errs,
		TotalImages:   len(images),
		CopiedImages:  copied,
		Articles:      records(acc.Results()),
	}

	if err := r.reports.Save(workCtx, report); err != nil {
		return report, fmt.Errorf("save report: %w", err)
	}

	r.logger.Info("batch complete",
		ports.Int("processed", processed),
		ports.Int("redirects", redirects),
		ports.Int("errors", errs),
		ports.Int("unique_images", len(images)),
		ports.String("report", r.reports.Path()),
		ports.Duration("duration", r.now().Sub(start)))

	return report, runErr
}

// processOne reads and transforms a single article. Read failures become
// error results.
func (r *Runner) processOne(ctx context.Context, t *transform.Transformer, id domain.ArticleID) domain.ArticleResult {
	raw, err := r.source.Read(ctx, id)
	if err != nil {
		r.logger.Warn("failed to read article", ports.String("article", id), ports.Err(err))
		return domain.ErrorResult(id, 0, "", err)
	}
	return t.Transform(ctx, raw)
}

// partition splits the source listing into sorted candidates (present and
// desired) and the sorted desired identifiers absent from the source.
func partition(index domain.ValidityIndex, available []domain.ArticleID) (candidates, missing []domain.ArticleID) {
	found := make(map[domain.ArticleID]struct{}, len(available))
	for _, id := range available {
		if index.Contains(id) {
			if _, dup := found[id]; !dup {
				candidates = append(candidates, id)
			}
			found[id] = struct{}{}
		}
	}
	for _, id := range index.IDs() {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(candidates)
	sort.Strings(missing)
	return candidates, missing
}

// missingSample returns the first domain.MissingSampleSize missing identifiers.
func missingSample(missing []domain.ArticleID) []domain.ArticleID {
	n := len(missing)
	if n > domain.MissingSampleSize {
		n = domain.MissingSampleSize
	}
	sample := make([]domain.ArticleID, n)
	copy(sample, missing[:n])
	return sample
}

func records(results []domain.ArticleResult) []domain.ArticleRecord {
	out := make([]domain.ArticleRecord, len(results))
	for i, res := range results {
		out[i] = res.ToRecord()
	}
	return out
}
