package fs

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bft-labs/gwiki/internal/domain"
)

// maxTitleLine bounds a single line of the titles file.
const maxTitleLine = 1 << 20

// TitlesFile implements ports.TitleLoader over a newline-delimited file.
type TitlesFile struct {
	path string
}

// NewTitlesFile creates a TitlesFile reading path.
func NewTitlesFile(path string) *TitlesFile {
	return &TitlesFile{path: path}
}

// Load returns trimmed, non-empty identifiers in file order with duplicates removed.
// A missing or unreadable file wraps domain.ErrTitlesNotFound.
func (f *TitlesFile) Load(ctx context.Context) ([]domain.ArticleID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTitlesNotFound, err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), maxTitleLine)

	seen := make(map[domain.ArticleID]struct{})
	var ids []domain.ArticleID
	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrTitlesNotFound, f.path, err)
	}
	return ids, nil
}

// Path returns the titles file location.
func (f *TitlesFile) Path() string {
	return f.path
}
