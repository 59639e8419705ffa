package transform

import (
	"strings"
	"testing"
)

// padMarkup returns markup of exactly size bytes containing almost no text.
func padMarkup(size int) []byte {
	var b strings.Builder
	b.WriteString("<title>X</title>")
	for b.Len()+len("<br>") <= size {
		b.WriteString("<br>")
	}
	b.WriteString(strings.Repeat(" ", size-b.Len()))
	return []byte(b.String())
}

func TestClassifier_IsRedirect(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"fifty bytes", []byte(strings.Repeat("x", 50)), true},
		{"empty", nil, true},
		{"text just below threshold", []byte(strings.Repeat("a", 999)), true},
		{"markup in buffer band", padMarkup(1100), true},
		{"text in buffer band", []byte(strings.Repeat("a", 1100)), false},
		{"markup at buffer edge", padMarkup(1200), false},
		{"markup above buffer", padMarkup(5000), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsRedirect(tt.content); got != tt.want {
				t.Errorf("IsRedirect() = %v, want %v (size %d)", got, tt.want, len(tt.content))
			}
		})
	}
}

func TestClassifier_SizeBounds(t *testing.T) {
	c := DefaultClassifier()

	for size := 0; size < c.Threshold; size += 37 {
		text := []byte(strings.Repeat("a", size))
		if !c.IsRedirect(text) {
			t.Fatalf("size %d below threshold classified as content", size)
		}
	}

	edge := int(float64(c.Threshold) * c.BufferRatio)
	for size := edge; size < edge+2000; size += 113 {
		if c.IsRedirect(padMarkup(size)) {
			t.Fatalf("size %d at or above buffer classified as redirect", size)
		}
	}
}

func TestClassifier_MinTextLength(t *testing.T) {
	c := DefaultClassifier()
	body := "<p>" + strings.Repeat("w", c.MinTextLength) + "</p>"
	content := []byte(body + strings.Repeat("<br>", (1100-len(body))/4))

	if c.IsRedirect(content) {
		t.Errorf("content with %d visible runes classified as redirect", c.MinTextLength)
	}
}
