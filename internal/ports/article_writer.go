package ports

import (
	"context"

	"github.com/bft-labs/gwiki/internal/domain"
)

// ArticleWriter persists rewritten article bodies.
// Implementations must write atomically: a body is either fully written or
// not present at all.
type ArticleWriter interface {
	Write(ctx context.Context, id domain.ArticleID, body []byte) error
}

// AssetCopier copies referenced images into the output tree.
type AssetCopier interface {
	// Copy copies every named image that exists in the source and is not yet
	// present at the destination. Failures are reported per image and do not
	// stop the copy.
	Copy(ctx context.Context, images []string) (CopyStats, error)
}

// CopyStats summarizes an asset copy pass.
type CopyStats struct {
	Requested int
	Copied    int
	Skipped   int
	Missing   int
	Failed    int
}

// ReportWriter persists the batch report.
type ReportWriter interface {
	Save(ctx context.Context, report domain.Report) error
	Path() string
}
