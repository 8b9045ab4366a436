// Package chunker splits document text into pieces that fit within a
// language model's input limits, with overlap so context carries across
// chunk boundaries.
package chunker

import "strings"

// Config controls chunking behavior.
type Config struct {
	ChunkSize    int // Target chunk size in tokens.
	ChunkOverlap int // Overlap between consecutive chunks in tokens.
	MinChunk     int // Minimum chunk size to emit.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1500,
		ChunkOverlap: 200,
		MinChunk:     100,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ChunkSize <= 0 {
		c.ChunkSize = d.ChunkSize
	}
	if c.ChunkOverlap <= 0 {
		c.ChunkOverlap = d.ChunkOverlap
	}
	if c.MinChunk <= 0 {
		c.MinChunk = d.MinChunk
	}
	return c
}

// Split breaks text into chunks of approximately cfg.ChunkSize tokens.
// Text shorter than the target comes back as a single chunk; fragments
// below MinChunk are dropped.
func Split(text string, cfg Config) []string {
	cfg = cfg.withDefaults()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if EstimateTokens(text) <= cfg.ChunkSize {
		return []string{text}
	}

	var out []string
	for _, chunk := range splitText(text, cfg.ChunkSize, cfg.ChunkOverlap) {
		if EstimateTokens(chunk) >= cfg.MinChunk {
			out = append(out, chunk)
		}
	}
	return out
}

// chunkBuilder accumulates parts up to a token target. When a part would
// push past the target, the buffer is emitted and the next chunk is seeded
// with the tail of the previous one.
type chunkBuilder struct {
	sep     string
	target  int
	overlap int

	out    []string
	buf    strings.Builder
	tokens int
}

func (b *chunkBuilder) add(part string, partTokens int) {
	if b.tokens > 0 && b.tokens+partTokens > b.target {
		b.flush(true)
	}
	if b.buf.Len() > 0 {
		b.buf.WriteString(b.sep)
	}
	b.buf.WriteString(part)
	b.tokens += partTokens
}

func (b *chunkBuilder) flush(carryOverlap bool) {
	if b.tokens == 0 {
		return
	}
	chunk := b.buf.String()
	b.out = append(b.out, chunk)
	b.buf.Reset()
	b.tokens = 0
	if carryOverlap {
		if tail := overlapTail(chunk, b.overlap); tail != "" {
			b.buf.WriteString(tail)
			b.tokens = EstimateTokens(tail)
		}
	}
}

// splitText packs whole paragraphs into chunks. A paragraph too large to
// fit on its own is broken at sentence boundaries instead, with no overlap
// carried across that seam.
func splitText(text string, target, overlap int) []string {
	b := &chunkBuilder{sep: "\n\n", target: target, overlap: overlap}
	for _, para := range paragraphs(text) {
		pt := EstimateTokens(para)
		if pt > target {
			b.flush(false)
			b.out = append(b.out, splitLongParagraph(para, target, overlap)...)
			continue
		}
		b.add(para, pt)
	}
	b.flush(false)
	return b.out
}

func splitLongParagraph(para string, target, overlap int) []string {
	b := &chunkBuilder{sep: " ", target: target, overlap: overlap}
	for _, sent := range sentences(para) {
		b.add(sent, EstimateTokens(sent))
	}
	b.flush(false)
	return b.out
}

func paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// sentences breaks text on terminal punctuation followed by a space.
func sentences(text string) []string {
	var out []string
	var cur strings.Builder
	for i, r := range text {
		cur.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		out = append(out, strings.TrimSpace(cur.String()))
	}
	return out
}

// overlapTail returns roughly the last targetTokens worth of words, or ""
// when the text is not longer than the requested tail.
func overlapTail(text string, targetTokens int) string {
	words := strings.Fields(text)
	n := int(float64(targetTokens) / tokensPerWord)
	if n <= 0 || len(words) <= n {
		return ""
	}
	return strings.Join(words[len(words)-n:], " ")
}
