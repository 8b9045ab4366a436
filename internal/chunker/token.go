package chunker

import "strings"

// Roughly how many tokens an English word costs. Exact tokenization is not
// required for chunking, so a word-count heuristic is enough.
const tokensPerWord = 1.33

// EstimateTokens gives a rough token count for text.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	tokens := int(float64(len(strings.Fields(text))) * tokensPerWord)
	return max(tokens, 1)
}
