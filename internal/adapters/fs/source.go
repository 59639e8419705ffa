package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bft-labs/gwiki/internal/domain"
)

// SourceDir implements ports.ArticleSource over a flat directory of article files.
type SourceDir struct {
	dir string
}

// NewSourceDir creates a SourceDir reading from dir.
func NewSourceDir(dir string) *SourceDir {
	return &SourceDir{dir: dir}
}

// List returns the sorted basenames of every regular file in the directory.
// Symlinks are followed; subdirectories are ignored.
func (s *SourceDir) List(ctx context.Context) ([]domain.ArticleID, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}

	ids := make([]domain.ArticleID, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mode := e.Type()
		if mode&os.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(s.dir, e.Name()))
			if err != nil {
				continue
			}
			mode = info.Mode().Type()
		}
		if !mode.IsRegular() {
			continue
		}
		ids = append(ids, e.Name())
	}

	sort.Strings(ids)
	return ids, nil
}

// Read loads the article named id.
func (s *SourceDir) Read(ctx context.Context, id domain.ArticleID) (domain.RawArticle, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawArticle{}, err
	}
	if !validName(id) {
		return domain.RawArticle{}, fmt.Errorf("invalid article name %q", id)
	}

	content, err := os.ReadFile(filepath.Join(s.dir, id))
	if err != nil {
		return domain.RawArticle{}, err
	}
	return domain.NewRawArticle(id, content), nil
}

// validName rejects identifiers that would escape a flat directory.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
