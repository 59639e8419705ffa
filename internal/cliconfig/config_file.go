package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	TitlesFile        string  `toml:"titles_file" yaml:"titles_file"`
	SourceDir         string  `toml:"source_dir" yaml:"source_dir"`
	SourceImagesDir   string  `toml:"source_images_dir" yaml:"source_images_dir"`
	TargetDir         string  `toml:"target_dir" yaml:"target_dir"`
	TargetImagesDir   string  `toml:"target_images_dir" yaml:"target_images_dir"`
	OutputJSON        string  `toml:"output_json" yaml:"output_json"`
	CopyImages        *bool   `toml:"copy_images" yaml:"copy_images"`
	Workers           int     `toml:"workers" yaml:"workers"`
	RedirectThreshold *int    `toml:"redirect_threshold" yaml:"redirect_threshold"`
	BufferRatio       float64 `toml:"buffer_ratio" yaml:"buffer_ratio"`
	MinTextLength     *int    `toml:"min_text_length" yaml:"min_text_length"`
	OutputExt         string  `toml:"output_ext" yaml:"output_ext"`
	BrokenHref        string  `toml:"broken_href" yaml:"broken_href"`
	BrokenClass       string  `toml:"broken_class" yaml:"broken_class"`
	LogFile           string  `toml:"log_file" yaml:"log_file"`
	ProgressEvery     *int    `toml:"progress_every" yaml:"progress_every"`
	Watch             *bool   `toml:"watch" yaml:"watch"`
	WatchDebounce     string  `toml:"watch_debounce" yaml:"watch_debounce"`
	Debug             *bool   `toml:"debug" yaml:"debug"`
}

// LoadFileConfig reads and parses a config file from the given path.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.gwiki/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".gwiki", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("titles", fc.TitlesFile, &cfg.TitlesFile)
	s.setString("source-dir", fc.SourceDir, &cfg.SourceDir)
	s.setString("source-images-dir", fc.SourceImagesDir, &cfg.SourceImagesDir)
	s.setString("target-dir", fc.TargetDir, &cfg.TargetDir)
	s.setString("target-images-dir", fc.TargetImagesDir, &cfg.TargetImagesDir)
	s.setString("output-json", fc.OutputJSON, &cfg.OutputJSON)
	s.setString("output-ext", fc.OutputExt, &cfg.OutputExt)
	s.setString("broken-href", fc.BrokenHref, &cfg.BrokenHref)
	s.setString("broken-class", fc.BrokenClass, &cfg.BrokenClass)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)

	if err := s.setDuration("watch-debounce", fc.WatchDebounce, &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setInt("workers", fc.Workers, &cfg.Workers)
	s.setCount("redirect-threshold", fc.RedirectThreshold, &cfg.RedirectThreshold)
	s.setCount("min-text-length", fc.MinTextLength, &cfg.MinTextLength)
	s.setCount("progress-every", fc.ProgressEvery, &cfg.ProgressEvery)
	s.setFloat("buffer-ratio", fc.BufferRatio, &cfg.BufferRatio)

	s.setBool("copy-images", fc.CopyImages, &cfg.CopyImages)
	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("debug", fc.Debug, &cfg.Debug)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
