package transform

import (
	"bytes"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/bft-labs/gwiki/internal/domain"
)

// Default link rewriting values.
const (
	DefaultExtension   = ".html"
	DefaultBrokenHref  = "../not_g.html"
	DefaultBrokenClass = "not_g"
)

// LinkOptions controls how hrefs are rewritten.
type LinkOptions struct {
	// Extension is the output file extension appended to valid links.
	Extension string

	// BrokenHref replaces the href of links to unknown articles.
	BrokenHref string

	// BrokenClass is attached to links to unknown articles.
	BrokenClass string
}

// DefaultLinkOptions returns the stock link rewriting values.
func DefaultLinkOptions() LinkOptions {
	return LinkOptions{
		Extension:   DefaultExtension,
		BrokenHref:  DefaultBrokenHref,
		BrokenClass: DefaultBrokenClass,
	}
}

// LinkStats counts anchors seen by a rewrite pass.
type LinkStats struct {
	Valid    int
	Extended int
	Broken   int
}

// Total returns the number of anchors with an href.
func (s LinkStats) Total() int {
	return s.Valid + s.Extended + s.Broken
}

type linkVerdict uint8

const (
	linkSkipped linkVerdict = iota
	linkValid
	linkExtended
	linkBroken
)

// linkReference is the href of one anchor, alive only during a rewrite pass.
type linkReference struct {
	tag  []byte
	href rawAttr
	val  string
}

// target strips the fragment and the output extension from the href.
func (l linkReference) target(ext string) string {
	base, _, _ := strings.Cut(l.val, "#")
	return strings.TrimSuffix(base, ext)
}

// RewriteLinks rewrites every anchor href in doc against index and returns
// the new content. Bytes outside rewritten href and class attributes are
// copied unchanged.
func RewriteLinks(doc *Document, index domain.ValidityIndex, opts LinkOptions) ([]byte, LinkStats) {
	var (
		buf   bytes.Buffer
		stats LinkStats
	)
	for _, seg := range doc.segments {
		if seg.kind != startTagSegment || seg.name != "a" {
			buf.Write(seg.raw)
			continue
		}

		out, verdict := rewriteAnchor(seg.raw, index, opts)
		switch verdict {
		case linkValid:
			stats.Valid++
		case linkExtended:
			stats.Extended++
		case linkBroken:
			stats.Broken++
		}
		buf.Write(out)
	}
	return buf.Bytes(), stats
}

func rewriteAnchor(tag []byte, index domain.ValidityIndex, opts LinkOptions) ([]byte, linkVerdict) {
	attrs := scanRawAttrs(tag)
	href, ok := findRawAttr(attrs, "href")
	if !ok || href.valStart < 0 {
		return tag, linkSkipped
	}

	ref := linkReference{
		tag:  tag,
		href: href,
		val:  html.UnescapeString(string(tag[href.valStart:href.valEnd])),
	}

	target := ref.target(opts.Extension)
	if target == "" || index.Contains(target) {
		if strings.HasSuffix(ref.val, opts.Extension) || strings.Contains(ref.val, "#") {
			return tag, linkValid
		}
		return applyEdits(tag, []edit{{
			start: href.valEnd,
			end:   href.valEnd,
			text:  opts.Extension,
		}}), linkExtended
	}

	return markBroken(ref, attrs, opts), linkBroken
}

// markBroken points the anchor at the sentinel page and attaches the marker
// class. Other attributes are left as they are.
func markBroken(ref linkReference, attrs []rawAttr, opts LinkOptions) []byte {
	tag, href := ref.tag, ref.href

	valueStart, valueEnd := href.valStart, href.end(tag)
	if href.quote != 0 {
		valueStart--
	}
	edits := []edit{{start: valueStart, end: valueEnd, text: `"` + opts.BrokenHref + `"`}}

	class, ok := findRawAttr(attrs, "class")
	switch {
	case !ok:
		edits = append(edits, edit{
			start: valueEnd,
			end:   valueEnd,
			text:  ` class="` + opts.BrokenClass + `"`,
		})
	case class.valStart < 0:
		edits = append(edits, edit{
			start: class.nameStart,
			end:   class.nameEnd,
			text:  `class="` + opts.BrokenClass + `"`,
		})
	default:
		current := string(tag[class.valStart:class.valEnd])
		if hasClass(html.UnescapeString(current), opts.BrokenClass) {
			break
		}
		if class.quote != 0 {
			sep := " "
			if strings.TrimSpace(current) == "" {
				sep = ""
			}
			edits = append(edits, edit{start: class.valEnd, end: class.valEnd, text: sep + opts.BrokenClass})
		} else {
			edits = append(edits, edit{
				start: class.valStart,
				end:   class.valEnd,
				text:  `"` + current + " " + opts.BrokenClass + `"`,
			})
		}
	}

	return applyEdits(tag, edits)
}

func hasClass(list, class string) bool {
	for _, c := range strings.Fields(list) {
		if c == class {
			return true
		}
	}
	return false
}

// edit replaces tag[start:end] with text.
type edit struct {
	start, end int
	text       string
}

// applyEdits applies non-overlapping edits to a copy of tag.
func applyEdits(tag []byte, edits []edit) []byte {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	out := append([]byte(nil), tag...)
	for _, e := range edits {
		tail := append([]byte(e.text), out[e.end:]...)
		out = append(out[:e.start], tail...)
	}
	return out
}
