package markdown

import "regexp"

// Segment is a maximal run of text sharing one emphasis state. Concatenating
// the Text fields of all segments for a line reconstructs the line with
// matched delimiters removed.
type Segment struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
}

var (
	boldItalicRe = regexp.MustCompile(`\*\*\*(.+?)\*\*\*|___(.+?)___`)
	boldRe       = regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`)
	underlineRe  = regexp.MustCompile(`<u>(.+?)</u>`)
)

// ExtractSegments splits a text span into emphasis-tagged segments. Patterns
// are tried in priority order (bold+italic, bold, italic, underline) against
// the unconsumed suffix; the leftmost occurrence of the first pattern that
// matches anywhere wins, and text before it is emitted plain with any markers
// left as-is. An unmatched remainder becomes one plain segment. Never returns
// an empty slice.
func ExtractSegments(text string) []Segment {
	if text == "" {
		return []Segment{{}}
	}

	var segs []Segment
	rest := text
	for rest != "" {
		if inner, end, ok := findAlternation(boldItalicRe, rest, &segs); ok {
			segs = append(segs, Segment{Text: inner, Bold: true, Italic: true})
			rest = rest[end:]
			continue
		}
		if inner, end, ok := findAlternation(boldRe, rest, &segs); ok {
			segs = append(segs, Segment{Text: inner, Bold: true})
			rest = rest[end:]
			continue
		}
		if inner, end, ok := findItalic(rest, '*', &segs); ok {
			segs = append(segs, Segment{Text: inner, Italic: true})
			rest = rest[end:]
			continue
		}
		if inner, end, ok := findItalic(rest, '_', &segs); ok {
			segs = append(segs, Segment{Text: inner, Italic: true})
			rest = rest[end:]
			continue
		}
		if m := underlineRe.FindStringSubmatchIndex(rest); m != nil {
			if m[0] > 0 {
				segs = append(segs, Segment{Text: rest[:m[0]]})
			}
			segs = append(segs, Segment{Text: rest[m[2]:m[3]], Underline: true})
			rest = rest[m[1]:]
			continue
		}
		segs = append(segs, Segment{Text: rest})
		break
	}

	return segs
}

// findAlternation locates the leftmost match of a two-branch pattern,
// emits the preceding text as a plain segment, and returns the inner text
// and the match end offset.
func findAlternation(re *regexp.Regexp, s string, segs *[]Segment) (string, int, bool) {
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return "", 0, false
	}
	if m[0] > 0 {
		*segs = append(*segs, Segment{Text: s[:m[0]]})
	}
	// Either the first or the second alternative captured.
	if m[2] >= 0 {
		return s[m[2]:m[3]], m[1], true
	}
	return s[m[4]:m[5]], m[1], true
}

// findItalic matches a single-marker emphasis span where neither delimiter
// is adjacent to another marker of the same kind, so bold delimiters are
// never misread as italic ones. RE2 has no lookaround, so the adjacency
// conditions are checked by hand: for the opener the preceding and following
// bytes must not be the marker, for the closer the preceding and following
// bytes must not be the marker, and the enclosed text must be non-empty.
func findItalic(s string, marker byte, segs *[]Segment) (string, int, bool) {
	n := len(s)
	for i := 0; i < n-2; i++ {
		if s[i] != marker {
			continue
		}
		if i > 0 && s[i-1] == marker {
			continue
		}
		if s[i+1] == marker {
			continue
		}
		for j := i + 2; j < n; j++ {
			if s[j] != marker || s[j-1] == marker {
				continue
			}
			if j+1 < n && s[j+1] == marker {
				continue
			}
			if i > 0 {
				*segs = append(*segs, Segment{Text: s[:i]})
			}
			return s[i+1 : j], j + 1, true
		}
	}
	return "", 0, false
}
