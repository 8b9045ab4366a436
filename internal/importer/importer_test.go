package importer

import (
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"doc.md", false},
		{"doc.markdown", false},
		{"notes.txt", false},
		{"data.csv", false},
		{"page.html", false},
		{"page.htm", false},
		{"report.pdf", false},
		{"report.docx", false},
		{"image.png", true},
		{"noext", true},
	}
	for _, tt := range tests {
		_, err := ForFile(tt.filename)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q): err=%v, wantErr=%v", tt.filename, err, tt.wantErr)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("slides.md") {
		t.Error("expected .md to be supported")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("expected .zip to be unsupported")
	}
	if !IsSupportedExtension("REPORT.PDF") {
		t.Error("expected extension check to be case-insensitive")
	}
}

func TestMarkdownParser_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	p := &MarkdownParser{}
	o, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if o.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", o.Title)
	}

	// Top-level: one h1 ("Title")
	if len(o.Sections) != 1 {
		t.Fatalf("expected 1 top-level section (h1), got %d", len(o.Sections))
	}

	h1 := o.Sections[0]
	if h1.Title != "Title" {
		t.Errorf("expected h1 title %q, got %q", "Title", h1.Title)
	}
	if !strings.Contains(h1.Text, "Intro text.") {
		t.Errorf("expected h1 text to contain %q, got %q", "Intro text.", h1.Text)
	}

	if len(h1.Sections) != 2 {
		t.Fatalf("expected 2 h2 sections, got %d", len(h1.Sections))
	}

	secA := h1.Sections[0]
	if secA.Title != "Section A" {
		t.Errorf("expected %q, got %q", "Section A", secA.Title)
	}
	if !strings.Contains(secA.Text, "Section A content.") {
		t.Errorf("expected section A text to contain %q, got %q", "Section A content.", secA.Text)
	}
	if len(secA.Sections) != 1 {
		t.Fatalf("expected 1 h3 section under Section A, got %d", len(secA.Sections))
	}
	if secA.Sections[0].Title != "Subsection A1" {
		t.Errorf("expected %q, got %q", "Subsection A1", secA.Sections[0].Title)
	}

	if h1.Sections[1].Title != "Section B" {
		t.Errorf("expected %q, got %q", "Section B", h1.Sections[1].Title)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := `Just some plain text.

Another paragraph here.`

	p := &MarkdownParser{}
	o, err := p.Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No headings: all text should be collected into a single section.
	if len(o.Sections) != 1 {
		t.Fatalf("expected 1 section for headingless markdown, got %d", len(o.Sections))
	}
	text := o.Sections[0].Text
	if !strings.Contains(text, "Just some plain text.") {
		t.Errorf("expected text to contain first paragraph, got %q", text)
	}
	if !strings.Contains(text, "Another paragraph here.") {
		t.Errorf("expected text to contain second paragraph, got %q", text)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	o, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(o.Sections) != 0 {
		t.Errorf("expected 0 sections for empty input, got %d", len(o.Sections))
	}
}

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	o, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if o.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", o.Title)
	}
	if len(o.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(o.Sections))
	}

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		if o.Sections[i].Text != w {
			t.Errorf("section[%d]: expected %q, got %q", i, w, o.Sections[i].Text)
		}
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	// Lines with only whitespace count as paragraph breaks.
	input := "Para one.\n   \nPara two."
	p := &TextParser{}
	o, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(o.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(o.Sections))
	}
}

func TestHTMLParser_Headings(t *testing.T) {
	input := `<html><head><title>My Page</title></head><body>
<h1>Main</h1>
<p>Intro paragraph.</p>
<h2>Details</h2>
<p>Detail paragraph.</p>
<script>ignore_me();</script>
</body></html>`

	p := &HTMLParser{}
	o, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if o.Title != "My Page" {
		t.Errorf("expected title from <title>, got %q", o.Title)
	}
	if len(o.Sections) != 1 {
		t.Fatalf("expected 1 top-level section, got %d", len(o.Sections))
	}

	h1 := o.Sections[0]
	if h1.Title != "Main" {
		t.Errorf("expected h1 title %q, got %q", "Main", h1.Title)
	}
	if !strings.Contains(h1.Text, "Intro paragraph.") {
		t.Errorf("expected h1 text to contain intro, got %q", h1.Text)
	}
	if strings.Contains(h1.Text, "ignore_me") {
		t.Errorf("script content leaked into text: %q", h1.Text)
	}
	if len(h1.Sections) != 1 || h1.Sections[0].Title != "Details" {
		t.Fatalf("expected h2 section %q under h1, got %+v", "Details", h1.Sections)
	}
	if !strings.Contains(h1.Sections[0].Text, "Detail paragraph.") {
		t.Errorf("expected h2 text, got %q", h1.Sections[0].Text)
	}
}

func TestCSVParser_RowBatches(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("name,score\n")
	for i := 1; i <= 12; i++ {
		sb.WriteString("row")
		sb.WriteString(strings.Repeat("x", i%3))
		sb.WriteString(",1\n")
	}

	p := &CSVParser{}
	o, err := p.Parse(strings.NewReader(sb.String()), "data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if o.Title != "data" {
		t.Errorf("expected title %q, got %q", "data", o.Title)
	}
	// 12 data rows at 10 per section: two sections.
	if len(o.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(o.Sections))
	}
	if o.Sections[0].Title != "Rows 2-11" {
		t.Errorf("expected first section title %q, got %q", "Rows 2-11", o.Sections[0].Title)
	}
	if o.Sections[1].Title != "Rows 12-13" {
		t.Errorf("expected second section title %q, got %q", "Rows 12-13", o.Sections[1].Title)
	}
	if !strings.Contains(o.Sections[0].Text, "name: row") {
		t.Errorf("expected header-labelled cells, got %q", o.Sections[0].Text)
	}
	if !strings.HasPrefix(o.Sections[0].Text, "- ") {
		t.Errorf("expected bullet lines, got %q", o.Sections[0].Text)
	}
}

func TestCSVParser_EmptyInput(t *testing.T) {
	p := &CSVParser{}
	o, err := p.Parse(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(o.Sections) != 0 {
		t.Errorf("expected 0 sections for empty csv, got %d", len(o.Sections))
	}
}
