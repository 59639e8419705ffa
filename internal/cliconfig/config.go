package cliconfig

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/gwiki/internal/domain"
	"github.com/bft-labs/gwiki/internal/transform"
)

// Defaults for the directory layout of a dump and its output site.
const (
	DefaultTitlesFile      = "gtitles.txt"
	DefaultSourceDir       = "wiki/A"
	DefaultSourceImagesDir = "wiki/I"
	DefaultTargetDir       = "site/A"
	DefaultTargetImagesDir = "site/I"
	DefaultOutputJSON      = "processing_results.json"
	DefaultLogFile         = "wiki_processing.log"
	DefaultProgressEvery   = 500
	DefaultWatchDebounce   = 500 * time.Millisecond
)

// Config holds CLI configuration for gwiki.
type Config struct {
	TitlesFile      string
	SourceDir       string
	SourceImagesDir string
	TargetDir       string
	TargetImagesDir string
	OutputJSON      string

	CopyImages bool
	Workers    int

	RedirectThreshold int
	BufferRatio       float64
	MinTextLength     int

	OutputExt   string
	BrokenHref  string
	BrokenClass string

	LogFile       string
	ProgressEvery int
	Debug         bool

	Watch         bool
	WatchDebounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		TitlesFile:        DefaultTitlesFile,
		SourceDir:         DefaultSourceDir,
		SourceImagesDir:   DefaultSourceImagesDir,
		TargetDir:         DefaultTargetDir,
		TargetImagesDir:   DefaultTargetImagesDir,
		OutputJSON:        DefaultOutputJSON,
		Workers:           runtime.NumCPU(),
		RedirectThreshold: transform.DefaultRedirectThreshold,
		BufferRatio:       transform.DefaultBufferRatio,
		MinTextLength:     transform.DefaultMinTextLength,
		OutputExt:         transform.DefaultExtension,
		BrokenHref:        transform.DefaultBrokenHref,
		BrokenClass:       transform.DefaultBrokenClass,
		LogFile:           DefaultLogFile,
		ProgressEvery:     DefaultProgressEvery,
		WatchDebounce:     DefaultWatchDebounce,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
// Errors wrap domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"titles", c.TitlesFile},
		{"source-dir", c.SourceDir},
		{"target-dir", c.TargetDir},
		{"output-json", c.OutputJSON},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid("%s is required", r.name)
		}
	}

	if c.CopyImages {
		if c.SourceImagesDir == "" || c.TargetImagesDir == "" {
			return invalid("source-images-dir and target-images-dir are required with copy-images")
		}
	}

	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.RedirectThreshold < 0 {
		return invalid("redirect-threshold must not be negative")
	}
	if c.BufferRatio < 1 {
		return invalid("buffer-ratio must be at least 1")
	}
	if c.MinTextLength < 0 {
		return invalid("min-text-length must not be negative")
	}

	if c.OutputExt == "" {
		c.OutputExt = transform.DefaultExtension
	}
	// Ensure leading dot
	if !strings.HasPrefix(c.OutputExt, ".") {
		c.OutputExt = "." + c.OutputExt
	}
	if strings.ContainsAny(c.OutputExt, `/\`) {
		return invalid("output-ext must not contain path separators")
	}
	if c.BrokenHref == "" {
		c.BrokenHref = transform.DefaultBrokenHref
	}
	if c.BrokenClass == "" || strings.ContainsAny(c.BrokenClass, " \t\"'") {
		return invalid("broken-class must be a single class name")
	}

	if c.ProgressEvery < 0 {
		return invalid("progress-every must not be negative")
	}
	if c.WatchDebounce <= 0 {
		c.WatchDebounce = DefaultWatchDebounce
	}

	return nil
}

// TransformOptions converts the configuration to pipeline options.
func (c Config) TransformOptions() transform.Options {
	return transform.Options{
		Classifier: transform.Classifier{
			Threshold:     c.RedirectThreshold,
			BufferRatio:   c.BufferRatio,
			MinTextLength: c.MinTextLength,
		},
		Links: transform.LinkOptions{
			Extension:   c.OutputExt,
			BrokenHref:  c.BrokenHref,
			BrokenClass: c.BrokenClass,
		},
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setCount sets an int value where zero is meaningful, if present and not negative
// and flag not changed.
func (s *configSetter) setCount(flag string, value *int, dst *int) {
	if value == nil || *value < 0 || s.changed[flag] {
		return
	}
	*dst = *value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setCountFromString parses a string to int and sets the destination if not
// negative. Zero is kept.
// Used for environment variables that come as strings.
func (s *configSetter) setCountFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i < 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
