package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/gwiki"
	logAdapter "github.com/bft-labs/gwiki/internal/adapters/log"
	"github.com/bft-labs/gwiki/internal/cliconfig"
	"github.com/bft-labs/gwiki/internal/ports"
)

const helpDescription = `
Convert a wiki dump into cross-linked static pages.

Every article named in the titles file is read from the source directory.
Stub and redirect pages are skipped. Links to articles outside the titles
set are pointed at a placeholder page. The images each article needs are
collected into a JSON report and can optionally be copied alongside.
`

var exampleUsage = strings.TrimSpace(`
  gwiki --titles gtitles.txt --source-dir dump/A --target-dir site/A
  gwiki --copy-images --source-images-dir dump/I --target-images-dir site/I
  gwiki --config $HOME/.gwiki/config.toml --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// newLogger writes human-readable lines to stderr and, when path is set,
// JSON lines to path. The returned closer releases the log file.
func newLogger(path string, debugLevel bool) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if debugLevel {
		level = zerolog.DebugLevel
	}
	if path == "" {
		return logAdapter.NewConsoleLogger(os.Stderr, nil, level), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
	}
	return logAdapter.NewConsoleLogger(os.Stderr, f, level), f, nil
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	bootLog := logAdapter.NewZerologAdapter()

	root := &cobra.Command{
		Use:           "gwiki",
		Short:         "Convert a wiki dump into cross-linked static pages",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.gwiki/config.toml), then apply flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			} else if cfgPath != "" {
				return fmt.Errorf("config file %s not found", cfgPath)
			}

			// Apply environment variables (GWIKI_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			zl, closer, err := newLogger(cfg.LogFile, cfg.Debug)
			if err != nil {
				return err
			}
			defer closer.Close()

			zl.Info().Interface("config", cfg).Msg("configuration")
			logger := logAdapter.NewZerologAdapterWithLogger(zl)

			// Setup signal handling for graceful shutdown
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Watch {
				err = gwiki.Watch(ctx, cfg, logger)
			} else {
				_, err = gwiki.Run(ctx, cfg, logger)
			}
			if errors.Is(err, context.Canceled) {
				zl.Warn().Msg("interrupted")
				return nil
			}
			return err
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file, .toml or .yaml (default: $HOME/.gwiki/config.toml)")
	root.Flags().StringVar(&cfg.TitlesFile, "titles", cfg.TitlesFile, "file containing desired article titles, one per line")
	root.Flags().StringVar(&cfg.SourceDir, "source-dir", cfg.SourceDir, "directory of raw article files")
	root.Flags().StringVar(&cfg.TargetDir, "target-dir", cfg.TargetDir, "directory for rewritten articles")
	root.Flags().StringVar(&cfg.SourceImagesDir, "source-images-dir", cfg.SourceImagesDir, "directory of source images")
	root.Flags().StringVar(&cfg.TargetImagesDir, "target-images-dir", cfg.TargetImagesDir, "directory images are copied to")
	root.Flags().StringVar(&cfg.OutputJSON, "output-json", cfg.OutputJSON, "output file for processing results")
	root.Flags().BoolVar(&cfg.CopyImages, "copy-images", cfg.CopyImages, "copy referenced images to the target images directory")

	root.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "number of articles processed concurrently")
	root.Flags().IntVar(&cfg.RedirectThreshold, "redirect-threshold", cfg.RedirectThreshold, "articles smaller than this many bytes are treated as redirects")
	root.Flags().Float64Var(&cfg.BufferRatio, "buffer-ratio", cfg.BufferRatio, "size ratio above the threshold within which visible text is checked")
	root.Flags().IntVar(&cfg.MinTextLength, "min-text-length", cfg.MinTextLength, "minimum visible characters for a borderline article")

	root.Flags().StringVar(&cfg.OutputExt, "output-ext", cfg.OutputExt, "extension of output articles and internal links")
	root.Flags().StringVar(&cfg.BrokenHref, "broken-href", cfg.BrokenHref, "link target for articles outside the titles set")
	root.Flags().StringVar(&cfg.BrokenClass, "broken-class", cfg.BrokenClass, "class added to broken links")
	for _, name := range []string{"output-ext", "broken-href", "broken-class"} {
		if err := root.Flags().MarkHidden(name); err != nil {
			bootLog.Info("failed to hide flag", ports.String("flag", name), ports.Err(err))
		}
	}

	root.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "JSON log file (empty to log to stderr only)")
	root.Flags().IntVar(&cfg.ProgressEvery, "progress-every", cfg.ProgressEvery, "log progress every N articles (0 disables)")
	root.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-run whenever the titles file changes")
	root.Flags().DurationVar(&cfg.WatchDebounce, "watch-debounce", cfg.WatchDebounce, "quiet period before a watch re-run")

	if err := root.Execute(); err != nil {
		bootLog.Error("gwiki", ports.Err(err))
		os.Exit(1)
	}
}
