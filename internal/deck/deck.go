// Package deck defines the intermediate presentation model: immutable
// paragraph descriptors produced from markdown slide content, consumed by a
// backend writer. Keeping this model free of any document-format dependency
// keeps the parsing and classification logic testable on its own.
package deck

// BulletKind selects the list style of a paragraph.
type BulletKind int

const (
	// BulletNone suppresses the layout's default bullet glyph.
	BulletNone BulletKind = iota
	// BulletDefault uses the body placeholder's bullet for the level.
	BulletDefault
	// BulletNumbered renders an auto-numbered arabic list ("1.", "2.").
	BulletNumbered
)

const (
	// TitleFontSize is the fixed title point size.
	TitleFontSize = 32
	// DefaultFontSize applies to body runs with no explicit size.
	DefaultFontSize = 14
	// MaxNestLevel caps list nesting; layouts support levels 0..8.
	MaxNestLevel = 8
	// ParagraphSpaceAfter is the trailing spacing of every body paragraph,
	// in points.
	ParagraphSpaceAfter = 6
)

// headingFontSizes maps in-body heading levels (H3..H6) to point sizes.
var headingFontSizes = map[int]int{3: 20, 4: 18, 5: 16, 6: 14}

const headingFontSizeDefault = 16

// Run is a contiguous text span with one formatting state.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Size      int // point size
}

// Paragraph is one rendered body paragraph.
type Paragraph struct {
	Level      int        // nesting level 0..8
	Bullet     BulletKind
	StartAt    int // restart value for numbered lists, 0 = continue from 1
	SpaceAfter int // trailing spacing in points
	Runs       []Run
}

// Slide is one rendered slide.
type Slide struct {
	Title      string
	TitleSlide bool
	Paragraphs []Paragraph
}

// Deck is an ordered, fully rendered presentation.
type Deck struct {
	Slides []Slide
}

// Input is one raw slide supplied by a caller; Order determines render order.
type Input struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}
