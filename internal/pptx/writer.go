// Package pptx materializes a rendered deck into a PowerPoint file. The
// package is an OPC zip of PresentationML parts; the static scaffolding
// (master, layouts, theme) lives in parts.go and only the presentation
// manifest and the slide parts vary per deck.
package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/transudeck/transudeck/internal/deck"
)

// Canvas mode is fixed at 4:3 (10in x 7.5in) and never inferred per
// document. EMU = 1/914400 inch.
const (
	SlideWidthEMU  = 9144000
	SlideHeightEMU = 6858000
)

// Write serializes the deck to path. The file is written to a temporary
// sibling first and renamed into place, so a failed generation never leaves
// a partial deck behind.
func Write(d deck.Deck, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".deck-*.pptx")
	if err != nil {
		return fmt.Errorf("render failed: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := WriteTo(d, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("render failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("render failed: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("render failed: move into place: %w", err)
	}
	return nil
}

// WriteTo serializes the deck as a pptx zip to w.
func WriteTo(d deck.Deck, w io.Writer) error {
	zw := zip.NewWriter(w)

	type part struct {
		name    string
		content string
	}

	n := len(d.Slides)
	parts := []part{
		{"[Content_Types].xml", contentTypesXML(n)},
		{"_rels/.rels", rootRelsXML},
		{"ppt/presentation.xml", presentationXML(n)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(n)},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML()},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML(true)},
		{"ppt/slideLayouts/slideLayout2.xml", slideLayoutXML(false)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML},
		{"ppt/slideLayouts/_rels/slideLayout2.xml.rels", slideLayoutRelsXML},
		{"ppt/theme/theme1.xml", themeXML()},
	}
	for i, s := range d.Slides {
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(s)},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRelsXML(s.TitleSlide)},
		)
	}

	for _, pt := range parts {
		f, err := zw.Create(pt.name)
		if err != nil {
			return fmt.Errorf("create part %s: %w", pt.name, err)
		}
		if _, err := io.WriteString(f, pt.content); err != nil {
			return fmt.Errorf("write part %s: %w", pt.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize package: %w", err)
	}
	return nil
}

// slideXML emits one slide part: a title placeholder with the fixed title
// rule (32pt bold) and, when the slide has body paragraphs, the body
// placeholder populated from the descriptors.
func slideXML(s deck.Slide) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(spTreeHeader)

	titleType := "title"
	bodyType := "body"
	if s.TitleSlide {
		titleType = "ctrTitle"
		bodyType = "subTitle"
	}

	// Title shape.
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`)
	fmt.Fprintf(&b, `<p:nvPr><p:ph type="%s"/></p:nvPr></p:nvSpPr><p:spPr/>`, titleType)
	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/><a:p>`)
	if s.Title != "" {
		fmt.Fprintf(&b, `<a:r><a:rPr lang="en-US" sz="%d" b="1" dirty="0"/><a:t>%s</a:t></a:r>`, deck.TitleFontSize*100, escape(s.Title))
	} else {
		b.WriteString(`<a:endParaRPr/>`)
	}
	b.WriteString(`</a:p></p:txBody></p:sp>`)

	// Body shape, only when there is something to show.
	if len(s.Paragraphs) > 0 {
		b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Content Placeholder 2"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`)
		fmt.Fprintf(&b, `<p:nvPr><p:ph type="%s" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/>`, bodyType)
		b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)
		for _, p := range s.Paragraphs {
			writeParagraph(&b, p)
		}
		b.WriteString(`</p:txBody></p:sp>`)
	}

	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

func writeParagraph(b *strings.Builder, p deck.Paragraph) {
	b.WriteString(`<a:p><a:pPr`)
	if p.Level > 0 {
		fmt.Fprintf(b, ` lvl="%d"`, p.Level)
	}
	b.WriteString(`>`)
	if p.SpaceAfter > 0 {
		fmt.Fprintf(b, `<a:spcAft><a:spcPts val="%d"/></a:spcAft>`, p.SpaceAfter*100)
	}
	switch p.Bullet {
	case deck.BulletNone:
		b.WriteString(`<a:buNone/>`)
	case deck.BulletNumbered:
		if p.StartAt > 1 {
			fmt.Fprintf(b, `<a:buAutoNum type="arabicPeriod" startAt="%d"/>`, p.StartAt)
		} else {
			b.WriteString(`<a:buAutoNum type="arabicPeriod"/>`)
		}
	}
	// BulletDefault inherits the layout's glyph for the level.
	b.WriteString(`</a:pPr>`)

	for _, r := range p.Runs {
		b.WriteString(`<a:r><a:rPr lang="en-US"`)
		if r.Size > 0 {
			fmt.Fprintf(b, ` sz="%d"`, r.Size*100)
		}
		if r.Bold {
			b.WriteString(` b="1"`)
		}
		if r.Italic {
			b.WriteString(` i="1"`)
		}
		if r.Underline {
			b.WriteString(` u="sng"`)
		}
		b.WriteString(` dirty="0"/>`)
		fmt.Fprintf(b, `<a:t>%s</a:t></a:r>`, escape(r.Text))
	}
	b.WriteString(`</a:p>`)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string {
	return xmlEscaper.Replace(s)
}
