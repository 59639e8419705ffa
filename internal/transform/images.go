package transform

import (
	"path"
	"sort"
	"strings"
)

// CollectImages returns the basenames referenced by <img src> in doc, sorted
// and deduplicated. Empty, missing and inline data sources are skipped.
func CollectImages(doc *Document) []string {
	seen := make(map[string]struct{})
	for _, seg := range doc.segments {
		if seg.kind != startTagSegment || seg.name != "img" {
			continue
		}
		src, ok := seg.attr("src")
		if !ok {
			continue
		}
		if name := imageBasename(src); name != "" {
			seen[name] = struct{}{}
		}
	}

	images := make([]string, 0, len(seen))
	for name := range seen {
		images = append(images, name)
	}
	sort.Strings(images)
	return images
}

// imageBasename strips directories, query and fragment from an image source.
func imageBasename(src string) string {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "data:") {
		return ""
	}
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	if src == "" {
		return ""
	}
	switch name := path.Base(src); name {
	case ".", "..", "/":
		return ""
	default:
		return name
	}
}
