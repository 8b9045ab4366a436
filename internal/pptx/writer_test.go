package pptx

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/transudeck/transudeck/internal/deck"
)

func sampleDeck() deck.Deck {
	return deck.Deck{Slides: []deck.Slide{
		{
			Title:      "Cover",
			TitleSlide: true,
			Paragraphs: []deck.Paragraph{
				{Bullet: deck.BulletNone, SpaceAfter: 6, Runs: []deck.Run{{Text: "subtitle", Size: 14}}},
			},
		},
		{
			Title: "Body slide",
			Paragraphs: []deck.Paragraph{
				{Bullet: deck.BulletDefault, Level: 1, SpaceAfter: 6, Runs: []deck.Run{{Text: "a < b & c", Size: 14, Bold: true}}},
				{Bullet: deck.BulletNumbered, StartAt: 5, SpaceAfter: 6, Runs: []deck.Run{{Text: "step", Size: 14}}},
			},
		},
	}}
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading package: %v", err)
	}
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(b)
	}
	return parts
}

func TestWriteTo_PackageStructure(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTo(sampleDeck(), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := readZip(t, buf.Bytes())

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slideLayouts/slideLayout2.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}

	pres := parts["ppt/presentation.xml"]
	if !strings.Contains(pres, `cx="9144000" cy="6858000"`) {
		t.Error("expected the fixed 4:3 canvas in presentation.xml")
	}
	if strings.Count(pres, "<p:sldId ") != 2 {
		t.Errorf("expected 2 slide ids, got presentation.xml: %s", pres)
	}
}

func TestWriteTo_LayoutSelection(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTo(sampleDeck(), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := readZip(t, buf.Bytes())

	if !strings.Contains(parts["ppt/slides/_rels/slide1.xml.rels"], "slideLayout1.xml") {
		t.Error("title slide must bind the title layout")
	}
	if !strings.Contains(parts["ppt/slides/_rels/slide2.xml.rels"], "slideLayout2.xml") {
		t.Error("regular slide must bind the title+body layout")
	}
	if !strings.Contains(parts["ppt/slides/slide1.xml"], `<p:ph type="ctrTitle"/>`) {
		t.Error("title slide must use the centered title placeholder")
	}
}

func TestWriteTo_SlideContent(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTo(sampleDeck(), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := readZip(t, buf.Bytes())
	slide2 := parts["ppt/slides/slide2.xml"]

	if !strings.Contains(slide2, `sz="3200" b="1"`) {
		t.Error("title must be 32pt bold")
	}
	if !strings.Contains(slide2, `<a:t>a &lt; b &amp; c</a:t>`) {
		t.Error("run text must be XML-escaped")
	}
	if !strings.Contains(slide2, `lvl="1"`) {
		t.Error("expected nesting level on the bullet paragraph")
	}
	if !strings.Contains(slide2, `<a:buAutoNum type="arabicPeriod" startAt="5"/>`) {
		t.Error("numbered list must restart at 5")
	}
	if !strings.Contains(slide2, `<a:spcAft><a:spcPts val="600"/></a:spcAft>`) {
		t.Error("expected 6pt trailing spacing")
	}
	if !strings.Contains(slide2, `sz="1400" b="1"`) {
		t.Error("expected 14pt bold run")
	}
}

func TestWriteTo_BulletSuppression(t *testing.T) {
	d := deck.Deck{Slides: []deck.Slide{{
		Title: "T",
		Paragraphs: []deck.Paragraph{
			{Bullet: deck.BulletNone, SpaceAfter: 6, Runs: []deck.Run{{Text: "heading", Size: 20, Bold: true}}},
		},
	}}}
	var buf bytes.Buffer
	if err := WriteTo(d, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := readZip(t, buf.Bytes())
	if !strings.Contains(parts["ppt/slides/slide1.xml"], "<a:buNone/>") {
		t.Error("suppressed paragraphs must emit buNone")
	}
}

func TestWriteTo_EmptyBodyOmitsPlaceholder(t *testing.T) {
	d := deck.Deck{Slides: []deck.Slide{{Title: "Only title", TitleSlide: true}}}
	var buf bytes.Buffer
	if err := WriteTo(d, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := readZip(t, buf.Bytes())
	if strings.Contains(parts["ppt/slides/slide1.xml"], `idx="1"`) {
		t.Error("slide without body paragraphs must not emit a body placeholder")
	}
}

func TestWriteTo_Deterministic(t *testing.T) {
	var first, second bytes.Buffer
	if err := WriteTo(sampleDeck(), &first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WriteTo(sampleDeck(), &second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("identical decks must serialize to identical bytes")
	}
}

func TestWrite_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pptx")
	if err := Write(sampleDeck(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty output file")
	}
	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the output file, got %d entries", len(entries))
	}
}

func TestWrite_InvalidDestination(t *testing.T) {
	err := Write(sampleDeck(), filepath.Join(t.TempDir(), "missing", "out.pptx"))
	if err == nil {
		t.Fatal("expected error for unwritable destination")
	}
	if !strings.Contains(err.Error(), "render failed") {
		t.Errorf("expected wrapped render error, got %v", err)
	}
}
