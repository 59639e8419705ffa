package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bft-labs/gwiki/internal/domain"
)

// ReportFile implements ports.ReportWriter using an indented JSON file.
type ReportFile struct {
	path string
}

// NewReportFile creates a ReportFile at path.
func NewReportFile(path string) *ReportFile {
	return &ReportFile{path: path}
}

// Save persists the report atomically. Non-ASCII text and markup characters
// in titles are written unescaped.
func (r *ReportFile) Save(ctx context.Context, report domain.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}

	return writeFileAtomic(r.path, buf.Bytes(), 0o644)
}

// Path returns the report location.
func (r *ReportFile) Path() string {
	return r.path
}
