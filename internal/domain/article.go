package domain

// ArticleID names an article by its source file basename.
type ArticleID = string

// RawArticle is an article file as read from the dump.
type RawArticle struct {
	// ID is the source filename
	ID ArticleID

	// Content is the raw markup
	Content []byte

	// Size is the byte length of Content
	Size int
}

// NewRawArticle wraps content read for id.
func NewRawArticle(id ArticleID, content []byte) RawArticle {
	return RawArticle{ID: id, Content: content, Size: len(content)}
}

// Outcome is the terminal state of a single article transformation.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRedirect
	OutcomeError
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// ArticleResult is the outcome of transforming one article.
type ArticleResult struct {
	ID         ArticleID
	Title      string
	Size       int
	IsRedirect bool

	// Images holds sorted, deduplicated image basenames
	Images    []string
	Processed bool
	Error     string
}

// RedirectResult builds the result for a stub/redirect article.
func RedirectResult(raw RawArticle) ArticleResult {
	return ArticleResult{
		ID:         raw.ID,
		Size:       raw.Size,
		IsRedirect: true,
		Images:     []string{},
	}
}

// ErrorResult builds the result for an article that failed to transform.
func ErrorResult(id ArticleID, size int, title string, err error) ArticleResult {
	return ArticleResult{
		ID:     id,
		Title:  title,
		Size:   size,
		Images: []string{},
		Error:  err.Error(),
	}
}

// SuccessResult builds the result for a fully transformed article.
func SuccessResult(raw RawArticle, title string, images []string) ArticleResult {
	if images == nil {
		images = []string{}
	}
	return ArticleResult{
		ID:        raw.ID,
		Title:     title,
		Size:      raw.Size,
		Images:    images,
		Processed: true,
	}
}

// Outcome classifies the result.
func (r ArticleResult) Outcome() Outcome {
	switch {
	case r.IsRedirect:
		return OutcomeRedirect
	case r.Processed:
		return OutcomeSuccess
	default:
		return OutcomeError
	}
}
