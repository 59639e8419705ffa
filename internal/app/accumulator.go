package app

import (
	"sort"
	"time"

	"github.com/bft-labs/gwiki/internal/domain"
	"github.com/bft-labs/gwiki/internal/ports"
)

// sequencedResult tags a result with its position in the candidate order.
type sequencedResult struct {
	seq    int
	result domain.ArticleResult
}

// Accumulator folds article results into batch totals and the batch-wide
// image set. It is owned by a single goroutine; workers reach it only
// through the channel passed to run.
type Accumulator struct {
	total         int
	progressEvery int
	logger        ports.Logger
	started       time.Time

	results   []sequencedResult
	images    map[string]struct{}
	processed int
	redirects int
	errors    int
}

// NewAccumulator creates an accumulator expecting total results.
// Progress is logged every progressEvery results; zero disables it.
func NewAccumulator(total, progressEvery int, logger ports.Logger) *Accumulator {
	return &Accumulator{
		total:         total,
		progressEvery: progressEvery,
		logger:        logger,
		started:       time.Now(),
		results:       make([]sequencedResult, 0, total),
		images:        make(map[string]struct{}),
	}
}

// run consumes results until in is closed, then closes done.
func (a *Accumulator) run(in <-chan sequencedResult, done chan<- struct{}) {
	defer close(done)
	for r := range in {
		a.add(r)
	}
}

func (a *Accumulator) add(r sequencedResult) {
	a.results = append(a.results, r)

	switch r.result.Outcome() {
	case domain.OutcomeSuccess:
		a.processed++
		for _, img := range r.result.Images {
			a.images[img] = struct{}{}
		}
	case domain.OutcomeRedirect:
		a.redirects++
	case domain.OutcomeError:
		a.errors++
	}

	done := len(a.results)
	if a.progressEvery > 0 && (done%a.progressEvery == 0 || done == a.total) {
		a.logger.Info("progress",
			ports.Int("done", done),
			ports.Int("total", a.total),
			ports.Int("processed", a.processed),
			ports.Int("redirects", a.redirects),
			ports.Int("errors", a.errors),
			ports.Duration("elapsed", time.Since(a.started)))
	}
}

// Results returns the accumulated results in candidate order.
func (a *Accumulator) Results() []domain.ArticleResult {
	sorted := make([]sequencedResult, len(a.results))
	copy(sorted, a.results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].seq < sorted[j].seq })

	out := make([]domain.ArticleResult, len(sorted))
	for i, r := range sorted {
		out[i] = r.result
	}
	return out
}

// Images returns the sorted union of images referenced by processed articles.
func (a *Accumulator) Images() []string {
	out := make([]string, 0, len(a.images))
	for img := range a.images {
		out = append(out, img)
	}
	sort.Strings(out)
	return out
}

// Counts returns the per-outcome totals.
func (a *Accumulator) Counts() (processed, redirects, errors int) {
	return a.processed, a.redirects, a.errors
}

// Len returns the number of results received.
func (a *Accumulator) Len() int {
	return len(a.results)
}
