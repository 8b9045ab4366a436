package markdown

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// SlideContent is one slide's content after title promotion.
type SlideContent struct {
	Title      string
	Body       []string // raw lines, classified later by the renderer
	TitleSlide bool
}

var hruleRe = regexp.MustCompile(`^-{3,}$`)

// SplitDocument divides raw markdown into per-slide content blocks on
// horizontal-rule lines (three or more hyphens on a line of their own).
// Blocks that are empty after trimming are dropped.
func SplitDocument(text string) []string {
	var blocks []string
	var current []string

	flush := func() {
		block := strings.TrimSpace(strings.Join(current, "\n"))
		if block != "" {
			blocks = append(blocks, block)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if hruleRe.MatchString(strings.TrimSpace(line)) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// SplitSlide extracts the slide title from a content block. The first H1
// becomes the title and marks a title slide; failing that, the first H2
// becomes the title of a regular slide. Every later H1/H2 is demoted to an
// H3 body line so it cannot render as a duplicate title.
func SplitSlide(content string, log *slog.Logger) SlideContent {
	var sc SlideContent
	var h1Found, h2Found bool

	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(stripped, "# ") && !h1Found:
			sc.Title = strings.TrimSpace(stripped[2:])
			sc.TitleSlide = true
			h1Found = true
		case strings.HasPrefix(stripped, "# "):
			warnf(log, "multiple H1 headings in slide, demoting to H3", stripped)
			sc.Body = append(sc.Body, "### "+stripped[2:])
		case strings.HasPrefix(stripped, "## ") && !h2Found && !h1Found:
			sc.Title = strings.TrimSpace(stripped[3:])
			h2Found = true
		case strings.HasPrefix(stripped, "## "):
			warnf(log, "multiple H2 headings in slide, demoting to H3", stripped)
			sc.Body = append(sc.Body, "### "+stripped[3:])
		default:
			sc.Body = append(sc.Body, line)
		}
	}

	return sc
}

func warnf(log *slog.Logger, msg, line string) {
	if log == nil {
		return
	}
	if len(line) > 50 {
		line = line[:50]
	}
	log.Warn(msg, "line", line)
}

// Draft is a slide draft synthesized from a markdown document, ready to be
// edited or sent to the generate endpoint.
type Draft struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Title   string `json:"title"`
	Order   int    `json:"order"`
}

var draftTitleRe = regexp.MustCompile(`(?m)^##\s+(.+)$`)

// SplitToDrafts splits a multi-slide markdown document into drafts with
// synthesized ids and orders. The draft title is the first H2 in the block,
// or a positional fallback.
func SplitToDrafts(text string) []Draft {
	blocks := SplitDocument(text)
	drafts := make([]Draft, 0, len(blocks))
	for i, block := range blocks {
		title := fmt.Sprintf("Slide %d", i+1)
		if m := draftTitleRe.FindStringSubmatch(block); m != nil {
			title = strings.TrimSpace(m[1])
		}
		drafts = append(drafts, Draft{
			ID:      fmt.Sprintf("slide-%d", i),
			Content: block,
			Title:   title,
			Order:   i,
		})
	}
	return drafts
}

var (
	stripHeadingRe  = regexp.MustCompile(`(?m)^#+\s+`)
	stripBoldRe     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	stripItalicRe   = regexp.MustCompile(`\*(.+?)\*`)
	stripBoldURe    = regexp.MustCompile(`__(.+?)__`)
	stripItalicURe  = regexp.MustCompile(`_(.+?)_`)
	stripLinkRe     = regexp.MustCompile(`\[(.+?)\]\(.+?\)`)
	stripBulletRe   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	stripNumberedRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
)

// StripFormatting reduces markdown to plain text, for token estimation and
// content hashing.
func StripFormatting(text string) string {
	text = stripHeadingRe.ReplaceAllString(text, "")
	text = stripBoldRe.ReplaceAllString(text, "$1")
	text = stripItalicRe.ReplaceAllString(text, "$1")
	text = stripBoldURe.ReplaceAllString(text, "$1")
	text = stripItalicURe.ReplaceAllString(text, "$1")
	text = stripLinkRe.ReplaceAllString(text, "$1")
	text = stripBulletRe.ReplaceAllString(text, "")
	text = stripNumberedRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
