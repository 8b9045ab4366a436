package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind classifies a single markdown line.
type LineKind int

const (
	KindPlain LineKind = iota
	KindHeading
	KindBullet
	KindNumbered
)

// Line is one classified markdown line with its syntax stripped.
type Line struct {
	Text   string
	Indent int      // 2 leading spaces = 1 level
	Kind   LineKind
	Level  int // heading level 1..6, 0 otherwise
	Number int // start number for numbered items, 0 otherwise
}

var (
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletRe   = regexp.MustCompile(`^-\s+(.+)$`)
	numberedRe = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
)

// ParseLine classifies one raw line. Heading syntax wins over list syntax,
// and only "-" is a bullet marker.
func ParseLine(raw string) Line {
	if raw == "" {
		return Line{}
	}

	indent := 0
	trimmed := strings.TrimLeft(raw, " \t")
	if len(trimmed) < len(raw) {
		indent = (len(raw) - len(trimmed)) / 2
	}

	if m := headingRe.FindStringSubmatch(trimmed); m != nil {
		return Line{Text: m[2], Indent: indent, Kind: KindHeading, Level: len(m[1])}
	}
	if m := bulletRe.FindStringSubmatch(trimmed); m != nil {
		return Line{Text: m[1], Indent: indent, Kind: KindBullet}
	}
	if m := numberedRe.FindStringSubmatch(trimmed); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			n = 1
		}
		return Line{Text: m[2], Indent: indent, Kind: KindNumbered, Number: n}
	}

	return Line{Text: trimmed, Indent: indent, Kind: KindPlain}
}
