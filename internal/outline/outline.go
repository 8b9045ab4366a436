// Package outline holds the heading-structured view of an imported document,
// the intermediate between format parsers and slide drafting.
package outline

import "strings"

// Outline is the root of a parsed document.
type Outline struct {
	Title    string     // Document title (from metadata or filename)
	Sections []*Section // Top-level sections
}

// Section is a recursive part of the document.
type Section struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Text content of this section (may be empty for containers)
	Page     int        // Source page (0 if N/A)
	Sections []*Section // Subsections
}

// Text flattens all section text into one string, for token estimation and
// summarization prompts.
func (o *Outline) Text() string {
	var sb strings.Builder
	var walk func(sections []*Section)
	walk = func(sections []*Section) {
		for _, s := range sections {
			if s.Text != "" {
				if sb.Len() > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(s.Text)
			}
			walk(s.Sections)
		}
	}
	walk(o.Sections)
	return sb.String()
}

// Markdown converts the outline into multi-slide markdown: one slide per
// top-level section, separated by horizontal rules. Section titles become H2
// lines so the slide splitter promotes them to slide titles; nested section
// titles become H3 lines.
func (o *Outline) Markdown() string {
	var slides []string
	for _, s := range o.Sections {
		var sb strings.Builder
		if s.Title != "" {
			sb.WriteString("## " + s.Title + "\n")
		}
		writeSectionBody(&sb, s)
		slide := strings.TrimSpace(sb.String())
		if slide != "" {
			slides = append(slides, slide)
		}
	}
	if len(slides) == 0 {
		return ""
	}
	return strings.Join(slides, "\n\n---\n\n")
}

func writeSectionBody(sb *strings.Builder, s *Section) {
	if s.Text != "" {
		sb.WriteString("\n" + s.Text + "\n")
	}
	for _, sub := range s.Sections {
		if sub.Title != "" {
			sb.WriteString("\n### " + sub.Title + "\n")
		}
		writeSectionBody(sb, sub)
	}
}
