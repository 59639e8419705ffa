package transform

// Default classifier thresholds.
const (
	DefaultRedirectThreshold = 1000
	DefaultBufferRatio       = 1.2
	DefaultMinTextLength     = 200
)

// Classifier decides whether an article is a stub/redirect.
type Classifier struct {
	// Threshold is the hard byte size below which content is always a redirect.
	Threshold int

	// BufferRatio scales Threshold into the band where text density is checked.
	BufferRatio float64

	// MinTextLength is the visible text floor, in runes, inside that band.
	MinTextLength int
}

// DefaultClassifier returns a Classifier with the stock thresholds.
func DefaultClassifier() Classifier {
	return Classifier{
		Threshold:     DefaultRedirectThreshold,
		BufferRatio:   DefaultBufferRatio,
		MinTextLength: DefaultMinTextLength,
	}
}

// IsRedirect reports whether content is a redirect or stub page. Markup is
// only scanned when the size falls between Threshold and BufferRatio×Threshold.
func (c Classifier) IsRedirect(content []byte) bool {
	size := len(content)
	if size < c.Threshold {
		return true
	}
	if float64(size) >= float64(c.Threshold)*c.BufferRatio {
		return false
	}
	return Parse(content).visibleTextLength() < c.MinTextLength
}
