package domain

// ValidityIndex is the closed set of identifiers link targets are checked against.
// It is built once per run and never mutated afterwards, so it is safe for
// concurrent readers.
type ValidityIndex struct {
	ids map[ArticleID]struct{}
}

// NewValidityIndex builds an index from ids. Empty identifiers are ignored.
func NewValidityIndex(ids []ArticleID) ValidityIndex {
	m := make(map[ArticleID]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		m[id] = struct{}{}
	}
	return ValidityIndex{ids: m}
}

// Contains reports whether id is a known article.
func (v ValidityIndex) Contains(id ArticleID) bool {
	_, ok := v.ids[id]
	return ok
}

// Len returns the number of identifiers in the index.
func (v ValidityIndex) Len() int {
	return len(v.ids)
}

// IDs returns the identifiers in unspecified order.
func (v ValidityIndex) IDs() []ArticleID {
	out := make([]ArticleID, 0, len(v.ids))
	for id := range v.ids {
		out = append(out, id)
	}
	return out
}
