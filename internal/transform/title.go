package transform

import "strings"

// ExtractTitle returns the trimmed inner text of the first <title> element,
// or "" when there is none. An element without its closing tag has no title.
func ExtractTitle(doc *Document) string {
	for i, seg := range doc.segments {
		if seg.kind != startTagSegment || seg.name != "title" {
			continue
		}
		var b strings.Builder
		for _, next := range doc.segments[i+1:] {
			switch {
			case next.kind == textSegment:
				b.WriteString(next.text)
			case next.kind == endTagSegment && next.name == "title":
				return strings.TrimSpace(b.String())
			default:
				return ""
			}
		}
		return ""
	}
	return ""
}
