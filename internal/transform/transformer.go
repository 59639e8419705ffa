package transform

import (
	"context"
	"fmt"

	"github.com/bft-labs/gwiki/internal/domain"
	"github.com/bft-labs/gwiki/internal/ports"
)

// Options configures a Transformer.
type Options struct {
	Classifier Classifier
	Links      LinkOptions
}

// DefaultOptions returns the stock classifier and link options.
func DefaultOptions() Options {
	return Options{
		Classifier: DefaultClassifier(),
		Links:      DefaultLinkOptions(),
	}
}

// Output is the product of transforming one article in memory.
type Output struct {
	Body   []byte
	Result domain.ArticleResult
	Links  LinkStats
}

// TransformArticle runs classification, title extraction, link rewriting and
// image collection over raw. Body is nil unless Result.Processed is true.
func TransformArticle(raw domain.RawArticle, index domain.ValidityIndex, opts Options) Output {
	if opts.Classifier.IsRedirect(raw.Content) {
		return Output{Result: domain.RedirectResult(raw)}
	}

	doc := Parse(raw.Content)
	title := ExtractTitle(doc)
	if title == "" {
		return Output{Result: domain.ErrorResult(raw.ID, raw.Size, "", domain.ErrNoTitle)}
	}

	body, links := RewriteLinks(doc, index, opts.Links)
	images := CollectImages(doc)

	return Output{
		Body:   body,
		Result: domain.SuccessResult(raw, title, images),
		Links:  links,
	}
}

// Transformer transforms articles and hands processed bodies to a writer.
// It is safe for concurrent use as long as the writer is.
type Transformer struct {
	opts   Options
	index  domain.ValidityIndex
	writer ports.ArticleWriter
	logger ports.Logger
}

// NewTransformer creates a Transformer checking links against index.
func NewTransformer(index domain.ValidityIndex, writer ports.ArticleWriter, logger ports.Logger, opts Options) *Transformer {
	return &Transformer{
		opts:   opts,
		index:  index,
		writer: writer,
		logger: logger,
	}
}

// Transform produces exactly one result for raw. It never returns an error:
// failures, including panics, become error results.
func (t *Transformer) Transform(ctx context.Context, raw domain.RawArticle) (result domain.ArticleResult) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.ErrorResult(raw.ID, raw.Size, "", fmt.Errorf("transform %s: %v", raw.ID, r))
			t.logger.Error("article transform panicked",
				ports.String("article", raw.ID),
				ports.Any("panic", r))
		}
	}()

	out := TransformArticle(raw, t.index, t.opts)
	if !out.Result.Processed {
		t.logger.Debug("article not processed",
			ports.String("article", raw.ID),
			ports.String("outcome", out.Result.Outcome().String()),
			ports.Int("size", raw.Size))
		return out.Result
	}

	if err := t.writer.Write(ctx, raw.ID, out.Body); err != nil {
		t.logger.Warn("failed to write article",
			ports.String("article", raw.ID),
			ports.Err(err))
		return domain.ErrorResult(raw.ID, raw.Size, out.Result.Title, err)
	}

	t.logger.Debug("article processed",
		ports.String("article", raw.ID),
		ports.String("title", out.Result.Title),
		ports.Int("images", len(out.Result.Images)),
		ports.Int("links", out.Links.Total()),
		ports.Int("broken_links", out.Links.Broken))
	return out.Result
}
