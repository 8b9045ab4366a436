package deck

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/transudeck/transudeck/internal/markdown"
)

// Renderer turns raw markdown slide inputs into a Deck. A Renderer holds no
// mutable state across calls; concurrent generation requests each get their
// own results.
type Renderer struct {
	log *slog.Logger
}

func NewRenderer(log *slog.Logger) *Renderer {
	return &Renderer{log: log}
}

// Render sorts the inputs by order (stable, so ties keep input order) and
// renders each into a slide.
func (r *Renderer) Render(inputs []Input) Deck {
	sorted := make([]Input, len(inputs))
	copy(sorted, inputs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	d := Deck{Slides: make([]Slide, 0, len(sorted))}
	for _, in := range sorted {
		d.Slides = append(d.Slides, r.RenderSlide(in.Content))
	}
	return d
}

// RenderSlide splits one content block into title and body and renders the
// body lines into paragraph descriptors.
func (r *Renderer) RenderSlide(content string) Slide {
	sc := markdown.SplitSlide(content, r.log)
	s := Slide{Title: sc.Title, TitleSlide: sc.TitleSlide}

	for _, raw := range sc.Body {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		p, ok, err := renderLine(raw)
		if err != nil {
			if r.log != nil {
				r.log.Warn("line render failed, skipping", "line", truncate(raw, 50), "error", err)
			}
			continue
		}
		if !ok {
			continue
		}
		s.Paragraphs = append(s.Paragraphs, p)
	}

	return s
}

// renderLine classifies and formats one body line. A fault in line processing
// is confined to that line; the slide keeps rendering.
func renderLine(raw string) (p Paragraph, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, ok, err = Paragraph{}, false, fmt.Errorf("line processing fault: %v", r)
		}
	}()

	l := markdown.ParseLine(raw)
	if l.Text == "" {
		return Paragraph{}, false, nil
	}

	switch l.Kind {
	case markdown.KindHeading:
		// H1/H2 were consumed as the slide title; never render them twice.
		if l.Level <= 2 {
			return Paragraph{}, false, nil
		}
		size, found := headingFontSizes[l.Level]
		if !found {
			size = headingFontSizeDefault
		}
		return Paragraph{
			Bullet:     BulletNone,
			SpaceAfter: ParagraphSpaceAfter,
			Runs:       makeRuns(l.Text, size, true),
		}, true, nil

	case markdown.KindNumbered:
		startAt := 0
		if l.Number > 1 {
			startAt = l.Number
		}
		return Paragraph{
			Level:      nestLevel(l.Indent),
			Bullet:     BulletNumbered,
			StartAt:    startAt,
			SpaceAfter: ParagraphSpaceAfter,
			Runs:       makeRuns(l.Text, DefaultFontSize, false),
		}, true, nil

	case markdown.KindBullet:
		return Paragraph{
			Level:      nestLevel(l.Indent),
			Bullet:     BulletDefault,
			SpaceAfter: ParagraphSpaceAfter,
			Runs:       makeRuns(l.Text, DefaultFontSize, false),
		}, true, nil

	default:
		return Paragraph{
			Bullet:     BulletNone,
			SpaceAfter: ParagraphSpaceAfter,
			Runs:       makeRuns(l.Text, DefaultFontSize, false),
		}, true, nil
	}
}

// makeRuns applies the inline formatter and the size/weight policy. Heading
// lines force bold on every run; detected italic/underline flags survive.
func makeRuns(text string, size int, forceBold bool) []Run {
	segs := markdown.ExtractSegments(text)
	runs := make([]Run, 0, len(segs))
	for _, seg := range segs {
		if seg.Text == "" {
			continue
		}
		runs = append(runs, Run{
			Text:      seg.Text,
			Bold:      seg.Bold || forceBold,
			Italic:    seg.Italic,
			Underline: seg.Underline,
			Size:      size,
		})
	}
	return runs
}

func nestLevel(indent int) int {
	if indent > MaxNestLevel {
		return MaxNestLevel
	}
	return indent
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
