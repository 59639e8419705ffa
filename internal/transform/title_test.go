package transform

import "testing"

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", `<title>Galaxy</title>`, "Galaxy"},
		{"trimmed", "<title>\n  Galileo Galilei \t</title>", "Galileo Galilei"},
		{"entities", `<title>AT&amp;T</title>`, "AT&T"},
		{"uppercase tag", `<TITLE>Gauss</TITLE>`, "Gauss"},
		{"attributes", `<head><title lang="en">Gdańsk</title></head>`, "Gdańsk"},
		{"first wins", `<title>One</title><title>Two</title>`, "One"},
		{"missing", `<html><body><h1>No title</h1></body></html>`, ""},
		{"empty element", `<title>   </title>`, ""},
		{"empty input", ``, ""},
		{"unterminated", `<title>Galaxy`, ""},
		{"unterminated before body", "<title>Galaxy\n<body><p>text</p></body>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTitle(Parse([]byte(tt.input))); got != tt.want {
				t.Errorf("ExtractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
