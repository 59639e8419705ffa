package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (GWIKI_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("titles", os.Getenv("GWIKI_TITLES_FILE"), &cfg.TitlesFile)
	s.setString("source-dir", os.Getenv("GWIKI_SOURCE_DIR"), &cfg.SourceDir)
	s.setString("source-images-dir", os.Getenv("GWIKI_SOURCE_IMAGES_DIR"), &cfg.SourceImagesDir)
	s.setString("target-dir", os.Getenv("GWIKI_TARGET_DIR"), &cfg.TargetDir)
	s.setString("target-images-dir", os.Getenv("GWIKI_TARGET_IMAGES_DIR"), &cfg.TargetImagesDir)
	s.setString("output-json", os.Getenv("GWIKI_OUTPUT_JSON"), &cfg.OutputJSON)
	s.setString("output-ext", os.Getenv("GWIKI_OUTPUT_EXT"), &cfg.OutputExt)
	s.setString("broken-href", os.Getenv("GWIKI_BROKEN_HREF"), &cfg.BrokenHref)
	s.setString("broken-class", os.Getenv("GWIKI_BROKEN_CLASS"), &cfg.BrokenClass)
	s.setString("log-file", os.Getenv("GWIKI_LOG_FILE"), &cfg.LogFile)

	if err := s.setIntFromString("workers", os.Getenv("GWIKI_WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setCountFromString("redirect-threshold", os.Getenv("GWIKI_REDIRECT_THRESHOLD"), &cfg.RedirectThreshold); err != nil {
		return err
	}
	if err := s.setCountFromString("min-text-length", os.Getenv("GWIKI_MIN_TEXT_LENGTH"), &cfg.MinTextLength); err != nil {
		return err
	}
	if err := s.setCountFromString("progress-every", os.Getenv("GWIKI_PROGRESS_EVERY"), &cfg.ProgressEvery); err != nil {
		return err
	}
	if err := s.setFloatFromString("buffer-ratio", os.Getenv("GWIKI_BUFFER_RATIO"), &cfg.BufferRatio); err != nil {
		return err
	}
	if err := s.setDuration("watch-debounce", os.Getenv("GWIKI_WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setBoolFromString("copy-images", os.Getenv("GWIKI_COPY_IMAGES"), &cfg.CopyImages)
	s.setBoolFromString("watch", os.Getenv("GWIKI_WATCH"), &cfg.Watch)
	s.setBoolFromString("debug", os.Getenv("GWIKI_DEBUG"), &cfg.Debug)

	return nil
}
