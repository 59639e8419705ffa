package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/bft-labs/gwiki/internal/domain"
	"github.com/bft-labs/gwiki/internal/ports"
)

type mockLogger struct {
	warns []string
}

func (m *mockLogger) Debug(msg string, fields ...ports.Field) {}
func (m *mockLogger) Info(msg string, fields ...ports.Field)  {}
func (m *mockLogger) Warn(msg string, fields ...ports.Field) {
	m.warns = append(m.warns, msg)
}
func (m *mockLogger) Error(msg string, fields ...ports.Field) {}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestSourceDir_List(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Galileo_Galilei"), "x")
	writeFile(t, filepath.Join(dir, "Galaxy"), "x")
	if err := os.Mkdir(filepath.Join(dir, "images"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "Galaxy"), filepath.Join(dir, "Galaxies")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "Dangling")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	ids, err := NewSourceDir(dir).List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"Galaxies", "Galaxy", "Galileo_Galilei"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("List() = %v, want %v", ids, want)
	}
}

func TestSourceDir_ListMissingDir(t *testing.T) {
	_, err := NewSourceDir(filepath.Join(t.TempDir(), "nope")).List(context.Background())
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Errorf("List() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestSourceDir_Read(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Galaxy"), "<title>Galaxy</title>")
	src := NewSourceDir(dir)

	raw, err := src.Read(context.Background(), "Galaxy")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if raw.ID != "Galaxy" || raw.Size != 21 || string(raw.Content) != "<title>Galaxy</title>" {
		t.Errorf("Read() = %+v", raw)
	}

	for _, id := range []string{"", "..", "../etc/passwd", "a/b"} {
		if _, err := src.Read(context.Background(), id); err == nil {
			t.Errorf("Read(%q) succeeded, want error", id)
		}
	}
	if _, err := src.Read(context.Background(), "Missing"); err == nil {
		t.Error("Read(Missing) succeeded, want error")
	}
}

func TestArticleDir_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewArticleDir(dir, ".html")
	if err := w.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if err := w.Write(context.Background(), "Galaxy", []byte("body")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write(context.Background(), "Galaxy", []byte("body2")); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "Galaxy.html"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "body2" {
		t.Errorf("output = %q, want body2", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("output dir has %d entries, want 1 (temp files left behind?)", len(entries))
	}
}

func TestArticleDir_WriteFailure(t *testing.T) {
	w := NewArticleDir(filepath.Join(t.TempDir(), "never-created"), ".html")
	if err := w.Write(context.Background(), "Galaxy", []byte("body")); err == nil {
		t.Error("Write() into missing dir succeeded, want error")
	}
}

func TestImageCopier_Copy(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")
	writeFile(t, filepath.Join(src, "a.png"), "A")
	writeFile(t, filepath.Join(src, "b.png"), "B")
	writeFile(t, filepath.Join(dst, "b.png"), "old")

	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(src, "a.png"), mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	logger := &mockLogger{}
	stats, err := NewImageCopier(src, dst, logger).Copy(context.Background(), []string{"a.png", "b.png", "c.png"})
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	want := ports.CopyStats{Requested: 3, Copied: 1, Skipped: 1, Missing: 1}
	if stats != want {
		t.Errorf("Copy() stats = %+v, want %+v", stats, want)
	}

	got, _ := os.ReadFile(filepath.Join(dst, "a.png"))
	if string(got) != "A" {
		t.Errorf("a.png = %q, want A", got)
	}
	got, _ = os.ReadFile(filepath.Join(dst, "b.png"))
	if string(got) != "old" {
		t.Errorf("b.png overwritten: %q", got)
	}
	info, err := os.Stat(filepath.Join(dst, "a.png"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("a.png mtime = %v, want %v", info.ModTime(), mtime)
	}
	if len(logger.warns) != 0 {
		t.Errorf("unexpected warnings: %v", logger.warns)
	}
}

func TestImageCopier_Empty(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "dst")
	stats, err := NewImageCopier(t.TempDir(), dst, &mockLogger{}).Copy(context.Background(), nil)
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if stats != (ports.CopyStats{}) {
		t.Errorf("Copy() stats = %+v, want zero", stats)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("destination created for empty copy")
	}
}

func TestImageCopier_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewImageCopier(t.TempDir(), t.TempDir(), &mockLogger{}).Copy(ctx, []string{"a.png"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Copy() error = %v, want context.Canceled", err)
	}
}

func TestReportFile_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "report.json")
	rf := NewReportFile(path)

	report := domain.Report{
		RunID:         "run-1",
		GeneratedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		TotalDesired:  2,
		FoundFiles:    1,
		Missing:       1,
		MissingSample: []string{"Gaul"},
		Processed:     1,
		TotalImages:   1,
		Articles: []domain.ArticleRecord{{
			Name:       "Göteborg",
			Title:      "Göteborg & <Gothenburg>",
			SizeBytes:  1500,
			Processed:  true,
			Images:     []string{"map.png"},
			ImageCount: 1,
		}},
	}

	if err := rf.Save(context.Background(), report); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	text := string(data)
	for _, want := range []string{`"title": "Göteborg & <Gothenburg>"`, `"missing_sample": [`, "\n  \"run_id\""} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}

	var loaded domain.Report
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if !reflect.DeepEqual(loaded, report) {
		t.Errorf("decoded report = %+v, want %+v", loaded, report)
	}
	if rf.Path() != path {
		t.Errorf("Path() = %q, want %q", rf.Path(), path)
	}
}

func TestTitlesFile_Load(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "plain",
			content: "Galaxy\nGalileo_Galilei\n",
			want:    []string{"Galaxy", "Galileo_Galilei"},
		},
		{
			name:    "blank lines and whitespace",
			content: "\n  Galaxy \r\n\n\tGaul\n   \n",
			want:    []string{"Galaxy", "Gaul"},
		},
		{
			name:    "duplicates",
			content: "Galaxy\nGaul\nGalaxy\n",
			want:    []string{"Galaxy", "Gaul"},
		},
		{
			name:    "byte order mark",
			content: "\ufeffGalaxy\n",
			want:    []string{"Galaxy"},
		},
		{
			name:    "no trailing newline",
			content: "Galaxy",
			want:    []string{"Galaxy"},
		},
		{
			name:    "empty",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "titles.txt")
			writeFile(t, path, tt.content)

			got, err := NewTitlesFile(path).Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Load() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTitlesFile_Missing(t *testing.T) {
	_, err := NewTitlesFile(filepath.Join(t.TempDir(), "titles.txt")).Load(context.Background())
	if !errors.Is(err, domain.ErrTitlesNotFound) {
		t.Errorf("Load() error = %v, want ErrTitlesNotFound", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want wrapped os.ErrNotExist", err)
	}
}
