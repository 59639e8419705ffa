// Package gwiki converts a flat wiki-dump article corpus into cross-linked
// static pages and reports the image assets each article needs.
//
// Example usage:
//
//	cfg := gwiki.DefaultConfig()
//	cfg.TitlesFile = "gtitles.txt"
//	cfg.SourceDir = "/dump/A"
//	cfg.TargetDir = "/site/A"
//	report, err := gwiki.Run(context.Background(), cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Processed, "articles written")
package gwiki

import (
	"context"
	"fmt"

	"github.com/bft-labs/gwiki/internal/adapters/fs"
	logAdapter "github.com/bft-labs/gwiki/internal/adapters/log"
	"github.com/bft-labs/gwiki/internal/app"
	"github.com/bft-labs/gwiki/internal/cliconfig"
	"github.com/bft-labs/gwiki/internal/domain"
	"github.com/bft-labs/gwiki/internal/ports"
	"github.com/bft-labs/gwiki/internal/transform"
)

// Config holds the configuration for a processing run.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// Report is the batch summary written to Config.OutputJSON.
type Report = domain.Report

// ArticleResult is the outcome of transforming one article.
type ArticleResult = domain.ArticleResult

// RawArticle is an article file as read from the dump.
type RawArticle = domain.RawArticle

// Logger is the structured logger used by a run.
type Logger = ports.Logger

// Errors returned by Run, checkable with errors.Is.
var (
	ErrTitlesNotFound    = domain.ErrTitlesNotFound
	ErrInvalidConfig     = domain.ErrInvalidConfig
	ErrSourceUnavailable = domain.ErrSourceUnavailable
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Run validates cfg and processes one batch, returning the saved report.
// A nil logger discards all output.
func Run(ctx context.Context, cfg Config, logger Logger) (Report, error) {
	runner, err := newRunner(&cfg, logger)
	if err != nil {
		return Report{}, err
	}
	return runner.Run(ctx)
}

// Watch runs one batch, then re-runs it every time the titles file changes
// until ctx is cancelled. Failed re-runs are logged and do not stop watching.
func Watch(ctx context.Context, cfg Config, logger Logger) error {
	if logger == nil {
		logger = logAdapter.NewNoopLogger()
	}
	runner, err := newRunner(&cfg, logger)
	if err != nil {
		return err
	}
	if _, err := runner.Run(ctx); err != nil {
		return err
	}

	watcher := app.NewTitlesWatcher(cfg.TitlesFile, cfg.WatchDebounce, func(ctx context.Context) {
		if _, err := runner.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("batch re-run failed", ports.Err(err))
		}
	}, logger)
	return watcher.Run(ctx)
}

// TransformArticle runs the in-memory pipeline over one article with the
// default options, checking links against validIDs. The rewritten body is
// nil unless the result is processed.
func TransformArticle(raw RawArticle, validIDs []string) ([]byte, ArticleResult) {
	out := transform.TransformArticle(raw, domain.NewValidityIndex(validIDs), transform.DefaultOptions())
	return out.Body, out.Result
}

// NewRawArticle wraps content read for id.
func NewRawArticle(id string, content []byte) RawArticle {
	return domain.NewRawArticle(id, content)
}

func newRunner(cfg *Config, logger Logger) (*app.Runner, error) {
	if logger == nil {
		logger = logAdapter.NewNoopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	writer := fs.NewArticleDir(cfg.TargetDir, cfg.OutputExt)
	if err := writer.Prepare(); err != nil {
		return nil, fmt.Errorf("create target dir: %w", err)
	}

	var copier ports.AssetCopier
	if cfg.CopyImages {
		copier = fs.NewImageCopier(cfg.SourceImagesDir, cfg.TargetImagesDir, logger)
	}

	return app.NewRunner(
		app.BatchConfig{
			Workers:       cfg.Workers,
			ProgressEvery: cfg.ProgressEvery,
			CopyImages:    cfg.CopyImages,
			Transform:     cfg.TransformOptions(),
		},
		fs.NewTitlesFile(cfg.TitlesFile),
		fs.NewSourceDir(cfg.SourceDir),
		writer,
		copier,
		fs.NewReportFile(cfg.OutputJSON),
		logger,
	), nil
}
