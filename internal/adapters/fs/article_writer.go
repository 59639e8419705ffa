package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bft-labs/gwiki/internal/domain"
)

// ArticleDir implements ports.ArticleWriter by writing <dir>/<id><ext>.
type ArticleDir struct {
	dir string
	ext string
}

// NewArticleDir creates an ArticleDir. Bodies are written as <id><ext>.
func NewArticleDir(dir, ext string) *ArticleDir {
	return &ArticleDir{dir: dir, ext: ext}
}

// Prepare creates the output directory.
func (w *ArticleDir) Prepare() error {
	return os.MkdirAll(w.dir, 0o755)
}

// Write stores body atomically.
func (w *ArticleDir) Write(ctx context.Context, id domain.ArticleID, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validName(id) {
		return fmt.Errorf("invalid article name %q", id)
	}
	if err := writeFileAtomic(w.Path(id), body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", id, err)
	}
	return nil
}

// Path returns the output location for id.
func (w *ArticleDir) Path(id domain.ArticleID) string {
	return filepath.Join(w.dir, id+w.ext)
}
