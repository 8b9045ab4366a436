package markdown

import (
	"strings"
	"testing"
)

func checkSegments(t *testing.T, got, want []Segment) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d segments, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestExtractSegments_BoldAndItalic(t *testing.T) {
	segs := ExtractSegments("**bold** and *italic*")
	checkSegments(t, segs, []Segment{
		{Text: "bold", Bold: true},
		{Text: " and "},
		{Text: "italic", Italic: true},
	})
}

func TestExtractSegments_BoldItalicCombined(t *testing.T) {
	segs := ExtractSegments("***both*** plain")
	checkSegments(t, segs, []Segment{
		{Text: "both", Bold: true, Italic: true},
		{Text: " plain"},
	})
}

func TestExtractSegments_UnderscoreVariants(t *testing.T) {
	segs := ExtractSegments("___all___ __bold__ _italic_")
	checkSegments(t, segs, []Segment{
		{Text: "all", Bold: true, Italic: true},
		{Text: " "},
		{Text: "bold", Bold: true},
		{Text: " "},
		{Text: "italic", Italic: true},
	})
}

func TestExtractSegments_Underline(t *testing.T) {
	segs := ExtractSegments("see <u>this</u> part")
	checkSegments(t, segs, []Segment{
		{Text: "see "},
		{Text: "this", Underline: true},
		{Text: " part"},
	})
}

func TestExtractSegments_Plain(t *testing.T) {
	segs := ExtractSegments("no markers here")
	checkSegments(t, segs, []Segment{{Text: "no markers here"}})
}

func TestExtractSegments_Empty(t *testing.T) {
	segs := ExtractSegments("")
	checkSegments(t, segs, []Segment{{}})
}

func TestExtractSegments_UnmatchedMarkerPreserved(t *testing.T) {
	segs := ExtractSegments("a lone * star")
	checkSegments(t, segs, []Segment{{Text: "a lone * star"}})
}

func TestExtractSegments_BoldNotMisreadAsItalic(t *testing.T) {
	// Unclosed bold markers must not be picked up by the italic rule.
	segs := ExtractSegments("broken **bold text")
	checkSegments(t, segs, []Segment{{Text: "broken **bold text"}})
}

func TestExtractSegments_PriorityOverPosition(t *testing.T) {
	// A later bold+italic match outranks an earlier bold one; the earlier
	// span is emitted plain with its markers intact.
	segs := ExtractSegments("**a** ***b***")
	checkSegments(t, segs, []Segment{
		{Text: "**a** "},
		{Text: "b", Bold: true, Italic: true},
	})
}

func TestExtractSegments_Reconstruction(t *testing.T) {
	in := "**bold** and *italic* with <u>underline</u>"
	segs := ExtractSegments(in)
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.Text)
	}
	want := "bold and italic with underline"
	if sb.String() != want {
		t.Errorf("expected reconstruction %q, got %q", want, sb.String())
	}
}
