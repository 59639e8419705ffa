package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func intPtr(i int) *int { return &i }

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				TitlesFile:        "titles.txt",
				SourceDir:         "/dump/A",
				Workers:           8,
				RedirectThreshold: intPtr(1500),
				BufferRatio:       1.5,
				WatchDebounce:     "2s",
				CopyImages:        &trueVal,
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				TitlesFile:        "titles.txt",
				SourceDir:         "/dump/A",
				Workers:           8,
				RedirectThreshold: 1500,
				BufferRatio:       1.5,
				WatchDebounce:     2 * time.Second,
				CopyImages:        true,
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				SourceDir: "/config/A",
				TargetDir: "/config/out",
			},
			changed: map[string]bool{"source-dir": true},
			initial: Config{
				SourceDir: "/flag/A",
				TargetDir: "/flag/out",
			},
			expected: Config{
				SourceDir: "/flag/A", // unchanged because flag was set
				TargetDir: "/config/out",
			},
			wantErr: false,
		},
		{
			name: "handles all field types correctly",
			fileConfig: FileConfig{
				TitlesFile:        "t.txt",
				SourceDir:         "/a",
				SourceImagesDir:   "/i",
				TargetDir:         "/out/a",
				TargetImagesDir:   "/out/i",
				OutputJSON:        "r.json",
				CopyImages:        &trueVal,
				Workers:           2,
				RedirectThreshold: intPtr(900),
				BufferRatio:       1.1,
				MinTextLength:     intPtr(50),
				OutputExt:         ".htm",
				BrokenHref:        "../missing.htm",
				BrokenClass:       "missing",
				LogFile:           "run.log",
				ProgressEvery:     intPtr(10),
				Watch:             &trueVal,
				WatchDebounce:     "1s",
				Debug:             &falseVal,
			},
			changed: map[string]bool{},
			initial: Config{Debug: true},
			expected: Config{
				TitlesFile:        "t.txt",
				SourceDir:         "/a",
				SourceImagesDir:   "/i",
				TargetDir:         "/out/a",
				TargetImagesDir:   "/out/i",
				OutputJSON:        "r.json",
				CopyImages:        true,
				Workers:           2,
				RedirectThreshold: 900,
				BufferRatio:       1.1,
				MinTextLength:     50,
				OutputExt:         ".htm",
				BrokenHref:        "../missing.htm",
				BrokenClass:       "missing",
				LogFile:           "run.log",
				ProgressEvery:     10,
				Watch:             true,
				WatchDebounce:     time.Second,
				Debug:             false,
			},
			wantErr: false,
		},
		{
			name: "zero values keep existing config",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    Config{Workers: 4, OutputExt: ".html"},
			expected:   Config{Workers: 4, OutputExt: ".html"},
			wantErr:    false,
		},
		{
			name: "explicit zero counts are applied",
			fileConfig: FileConfig{
				RedirectThreshold: intPtr(0),
				MinTextLength:     intPtr(0),
				ProgressEvery:     intPtr(0),
			},
			changed:  map[string]bool{},
			initial:  Config{RedirectThreshold: 1000, MinTextLength: 200, ProgressEvery: 500},
			expected: Config{},
			wantErr:  false,
		},
		{
			name: "negative counts are ignored",
			fileConfig: FileConfig{
				ProgressEvery: intPtr(-1),
			},
			changed:  map[string]bool{},
			initial:  Config{ProgressEvery: 500},
			expected: Config{ProgressEvery: 500},
			wantErr:  false,
		},
		{
			name: "returns error for invalid duration",
			fileConfig: FileConfig{
				WatchDebounce: "soon",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	// Create a temporary TOML file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	tomlContent := `
titles_file = "gtitles.txt"
source_dir = "/dump/A"
workers = 4
buffer_ratio = 1.3
watch_debounce = "250ms"
copy_images = true
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.TitlesFile != "gtitles.txt" {
		t.Errorf("TitlesFile = %v, want gtitles.txt", fc.TitlesFile)
	}
	if fc.SourceDir != "/dump/A" {
		t.Errorf("SourceDir = %v, want /dump/A", fc.SourceDir)
	}
	if fc.Workers != 4 {
		t.Errorf("Workers = %v, want 4", fc.Workers)
	}
	if fc.BufferRatio != 1.3 {
		t.Errorf("BufferRatio = %v, want 1.3", fc.BufferRatio)
	}
	if fc.WatchDebounce != "250ms" {
		t.Errorf("WatchDebounce = %v, want 250ms", fc.WatchDebounce)
	}
	if fc.CopyImages == nil || *fc.CopyImages != true {
		t.Errorf("CopyImages = %v, want true", fc.CopyImages)
	}
}

func TestLoadFileConfig_ZeroProgress(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("progress_every = 0\n"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig() error = %v", err)
	}
	if cfg.ProgressEvery != 0 {
		t.Errorf("ProgressEvery = %v, want 0 from file", cfg.ProgressEvery)
	}
	if cfg.MinTextLength != DefaultConfig().MinTextLength {
		t.Errorf("MinTextLength = %v, want default when absent", cfg.MinTextLength)
	}
}

func TestLoadFileConfig_YAML(t *testing.T) {
	tmpDir := t.TempDir()

	yamlContent := `
titles_file: gtitles.txt
target_dir: /site/A
broken_class: missing
progress_every: 100
debug: true
`

	for _, name := range []string{"config.yaml", "config.YML"} {
		configPath := filepath.Join(tmpDir, name)
		if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
			t.Fatalf("Failed to create test config file: %v", err)
		}

		fc, err := LoadFileConfig(configPath)
		if err != nil {
			t.Fatalf("LoadFileConfig(%s) error = %v", name, err)
		}
		if fc.TitlesFile != "gtitles.txt" || fc.TargetDir != "/site/A" || fc.BrokenClass != "missing" {
			t.Errorf("%s: strings = %+v", name, fc)
		}
		if fc.ProgressEvery == nil || *fc.ProgressEvery != 100 {
			t.Errorf("%s: ProgressEvery = %v, want 100", name, fc.ProgressEvery)
		}
		if fc.Debug == nil || !*fc.Debug {
			t.Errorf("%s: Debug = %v, want true", name, fc.Debug)
		}
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
titles_file = "/test"
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestLoadFileConfig_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	if err := os.WriteFile(configPath, []byte("workers: [1, 2\n"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	if _, err := LoadFileConfig(configPath); err == nil {
		t.Error("LoadFileConfig() expected error for invalid YAML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	// Should return a path containing .gwiki
	if path != "" && !strings.Contains(path, ".gwiki") {
		t.Errorf("DefaultConfigPath() = %v, should contain .gwiki", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
