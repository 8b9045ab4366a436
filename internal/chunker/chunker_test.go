package chunker

import (
	"strings"
	"testing"
)

func TestSplit_SmallTextFitsOneChunk(t *testing.T) {
	text := strings.Repeat("word ", 200) // ~200 words -> ~266 tokens

	cfg := Config{
		ChunkSize:    1500,
		ChunkOverlap: 200,
		MinChunk:     50,
	}
	chunks := Split(text, cfg)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if !strings.Contains(chunks[0], "word") {
		t.Errorf("expected chunk text to contain 'word', got %q", chunks[0])
	}
}

func TestSplit_LargeTextRequiresSplitting(t *testing.T) {
	// ~2700 words -> ~3590 tokens at 1.33 tokens/word.
	largeText := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 300)

	cfg := Config{
		ChunkSize:    500,
		ChunkOverlap: 50,
		MinChunk:     10,
	}
	chunks := Split(largeText, cfg)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks for large text, got %d", len(chunks))
	}

	// Verify no chunk exceeds the target size by a large margin.
	// (Due to paragraph/sentence boundaries, slight overflows are expected.)
	for i, c := range chunks {
		tokens := EstimateTokens(c)
		// Allow 2x the target as a generous ceiling.
		if tokens > cfg.ChunkSize*2 {
			t.Errorf("chunk %d: %d tokens exceeds 2x target %d", i, tokens, cfg.ChunkSize)
		}
	}
}

func TestSplit_ParagraphBoundariesPreferred(t *testing.T) {
	paraA := strings.Repeat("alpha ", 300)
	paraB := strings.Repeat("beta ", 300)
	text := strings.TrimSpace(paraA) + "\n\n" + strings.TrimSpace(paraB)

	cfg := Config{
		ChunkSize:    450,
		ChunkOverlap: 10,
		MinChunk:     10,
	}
	chunks := Split(text, cfg)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks (one per paragraph), got %d", len(chunks))
	}
	if !strings.Contains(chunks[0], "alpha") {
		t.Errorf("expected first chunk to hold first paragraph, got %q", chunks[0][:40])
	}
	if !strings.Contains(chunks[1], "beta") {
		t.Errorf("expected second chunk to hold second paragraph")
	}
}

func TestSplit_MinChunkFiltering(t *testing.T) {
	cfg := Config{
		ChunkSize:    1500,
		ChunkOverlap: 200,
		MinChunk:     100,
	}
	chunks := Split("Hi", cfg)
	if len(chunks) != 1 {
		// Text below ChunkSize always comes back whole.
		t.Errorf("expected short text as a single chunk, got %d", len(chunks))
	}
}

func TestSplit_EmptyText(t *testing.T) {
	if chunks := Split("", DefaultConfig()); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty text, got %d", len(chunks))
	}
	if chunks := Split("   \n\n  ", DefaultConfig()); len(chunks) != 0 {
		t.Errorf("expected 0 chunks for whitespace text, got %d", len(chunks))
	}
}

func TestSplit_DefaultConfigFallback(t *testing.T) {
	// Zero-value config should be replaced with defaults.
	chunks := Split(strings.Repeat("word ", 200), Config{})
	if len(chunks) < 1 {
		t.Errorf("expected at least 1 chunk with zero config (defaults applied), got %d", len(chunks))
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Errorf("expected 0 tokens for empty text, got %d", got)
	}
	if got := EstimateTokens("x"); got < 1 {
		t.Errorf("expected at least 1 token for non-empty text, got %d", got)
	}
	hundred := strings.Repeat("word ", 100)
	got := EstimateTokens(hundred)
	if got < 100 || got > 150 {
		t.Errorf("expected ~133 tokens for 100 words, got %d", got)
	}
}
