// Package importer turns uploaded documents into outlines that seed slide
// drafts. One parser per supported format.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/transudeck/transudeck/internal/outline"
)

// Parser converts raw document bytes into an Outline.
type Parser interface {
	Parse(r io.Reader, filename string) (*outline.Outline, error)
}

// SupportedExtensions lists file extensions this service can import.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// sectionStack tracks heading nesting while building an outline. Shared by
// the markdown, html and docx parsers, which all derive structure from
// heading levels.
type sectionStack struct {
	entries []stackEntry
	text    strings.Builder
}

type stackEntry struct {
	section *outline.Section
	level   int
}

func newSectionStack(root *outline.Section) *sectionStack {
	return &sectionStack{entries: []stackEntry{{section: root, level: 0}}}
}

func (s *sectionStack) top() *outline.Section {
	return s.entries[len(s.entries)-1].section
}

// flush attaches buffered text to the current section.
func (s *sectionStack) flush() {
	t := strings.TrimSpace(s.text.String())
	if t != "" {
		top := s.top()
		if top.Text != "" {
			top.Text += "\n\n" + t
		} else {
			top.Text = t
		}
	}
	s.text.Reset()
}

// openSection starts a new section at the given heading level, popping back
// to the right parent first.
func (s *sectionStack) openSection(title string, level int) {
	s.flush()
	sec := &outline.Section{Title: title}
	for len(s.entries) > 1 && s.entries[len(s.entries)-1].level >= level {
		s.entries = s.entries[:len(s.entries)-1]
	}
	parent := s.top()
	parent.Sections = append(parent.Sections, sec)
	s.entries = append(s.entries, stackEntry{section: sec, level: level})
}

// addText buffers body text for the current section.
func (s *sectionStack) addText(t string) {
	if t == "" {
		return
	}
	if s.text.Len() > 0 {
		s.text.WriteString("\n\n")
	}
	s.text.WriteString(t)
}

// finish flushes pending text and applies the headingless-document fallback:
// if no sections were created, all text becomes a single section.
func finish(o *outline.Outline, root *outline.Section, s *sectionStack) {
	s.flush()
	o.Sections = root.Sections
	if len(o.Sections) == 0 && root.Text != "" {
		o.Sections = []*outline.Section{{Text: root.Text}}
	}
}

func titleFromFilename(filename string, exts ...string) string {
	for _, ext := range exts {
		filename = strings.TrimSuffix(filename, ext)
	}
	return filename
}
