package transform

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

type segmentKind uint8

const (
	textSegment segmentKind = iota
	startTagSegment
	endTagSegment
	otherSegment
)

// segment is one token of the scanned markup.
type segment struct {
	kind segmentKind

	// name is the lowercased tag name for tag segments
	name string

	// raw is the unmodified token text
	raw []byte

	// text is the entity-decoded content of text segments
	text string

	// attrs are the decoded attributes of start tags
	attrs []html.Attribute
}

// Document is the scanned form of an article shared by every pipeline stage.
type Document struct {
	segments []segment
}

// Parse tokenizes content. It never fails: malformed markup degrades into
// text segments, and the raw segments always reassemble into content.
func Parse(content []byte) *Document {
	z := html.NewTokenizer(bytes.NewReader(content))
	doc := &Document{segments: make([]segment, 0, len(content)/32+1)}
	pos := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// Unterminated tags at EOF are reported as errors; keep their bytes.
			doc.appendGap(content[pos:])
			return doc
		}

		// Raw must be copied before TagName/TagAttr/Text, which decode in place.
		seg := segment{raw: append([]byte(nil), z.Raw()...)}

		// The tokenizer skips some sequences such as "</>" without a token.
		if !bytes.HasPrefix(content[pos:], seg.raw) {
			if i := bytes.Index(content[pos:], seg.raw); i > 0 {
				doc.appendGap(content[pos : pos+i])
				pos += i
			}
		}
		pos += len(seg.raw)

		switch tt {
		case html.TextToken:
			seg.kind = textSegment
			seg.text = string(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			seg.kind = startTagSegment
			name, more := z.TagName()
			seg.name = string(name)
			for more {
				var key, val []byte
				key, val, more = z.TagAttr()
				seg.attrs = append(seg.attrs, html.Attribute{Key: string(key), Val: string(val)})
			}
		case html.EndTagToken:
			seg.kind = endTagSegment
			name, _ := z.TagName()
			seg.name = string(name)
		default:
			seg.kind = otherSegment
		}

		doc.segments = append(doc.segments, seg)
	}
}

func (d *Document) appendGap(raw []byte) {
	if len(raw) == 0 {
		return
	}
	d.segments = append(d.segments, segment{
		kind: textSegment,
		raw:  append([]byte(nil), raw...),
		text: string(raw),
	})
}

// Bytes reassembles the document from its raw segments.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	for _, seg := range d.segments {
		buf.Write(seg.raw)
	}
	return buf.Bytes()
}

// visibleTextLength counts the runes left once every tag, comment and doctype
// is stripped and surrounding whitespace trimmed. Entities are not decoded.
func (d *Document) visibleTextLength() int {
	var b strings.Builder
	for _, seg := range d.segments {
		if seg.kind == textSegment {
			b.Write(seg.raw)
		}
	}
	return utf8.RuneCountInString(strings.TrimSpace(b.String()))
}

// attr returns the decoded value of key on a start tag segment.
func (s segment) attr(key string) (string, bool) {
	for _, a := range s.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// rawAttr locates one attribute inside the raw text of a start tag.
type rawAttr struct {
	key string

	nameStart, nameEnd int

	// valStart and valEnd delimit the value without quotes; both are -1
	// for attributes without a value.
	valStart, valEnd int

	// quote is '"', '\'' or 0 for unquoted values
	quote byte
}

// end returns the offset just past the attribute, closing quote included.
func (a rawAttr) end(raw []byte) int {
	if a.valStart < 0 {
		return a.nameEnd
	}
	if a.quote != 0 && a.valEnd < len(raw) {
		return a.valEnd + 1
	}
	return a.valEnd
}

// scanRawAttrs walks a raw start tag and records the span of every attribute.
// It follows the tokenizer's attribute rules closely enough for dump markup;
// it is not a validator.
func scanRawAttrs(raw []byte) []rawAttr {
	n := len(raw)
	i := 1
	for i < n && !isSpace(raw[i]) && raw[i] != '>' && raw[i] != '/' {
		i++
	}

	var attrs []rawAttr
	for i < n {
		for i < n && (isSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= n || raw[i] == '>' {
			break
		}

		start := i
		i++
		for i < n && !isSpace(raw[i]) && raw[i] != '=' && raw[i] != '>' && raw[i] != '/' {
			i++
		}
		a := rawAttr{
			key:       strings.ToLower(string(raw[start:i])),
			nameStart: start,
			nameEnd:   i,
			valStart:  -1,
			valEnd:    -1,
		}

		j := i
		for j < n && isSpace(raw[j]) {
			j++
		}
		if j < n && raw[j] == '=' {
			j++
			for j < n && isSpace(raw[j]) {
				j++
			}
			switch {
			case j < n && (raw[j] == '"' || raw[j] == '\''):
				a.quote = raw[j]
				a.valStart = j + 1
				if k := bytes.IndexByte(raw[j+1:], a.quote); k >= 0 {
					a.valEnd = j + 1 + k
					i = a.valEnd + 1
				} else {
					a.valEnd = n
					i = n
				}
			default:
				a.valStart = j
				for j < n && !isSpace(raw[j]) && raw[j] != '>' {
					j++
				}
				a.valEnd = j
				i = j
			}
		}

		attrs = append(attrs, a)
	}
	return attrs
}

func findRawAttr(attrs []rawAttr, key string) (rawAttr, bool) {
	for _, a := range attrs {
		if a.key == key {
			return a, true
		}
	}
	return rawAttr{}, false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
