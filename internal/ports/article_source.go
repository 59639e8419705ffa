package ports

import (
	"context"

	"github.com/bft-labs/gwiki/internal/domain"
)

// ArticleSource provides access to the raw article dump.
type ArticleSource interface {
	// List returns the identifiers of every regular file in the source.
	List(ctx context.Context) ([]domain.ArticleID, error)

	// Read loads one article by identifier.
	Read(ctx context.Context, id domain.ArticleID) (domain.RawArticle, error)
}

// TitleLoader loads the newline-delimited list of desired identifiers.
type TitleLoader interface {
	// Load returns the trimmed, non-empty, deduplicated identifiers in file order.
	Load(ctx context.Context) ([]domain.ArticleID, error)

	// Path returns the location being loaded, used for watching.
	Path() string
}
