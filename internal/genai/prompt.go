package genai

import (
	"fmt"
	"strings"
)

// BuildTranslatePrompt creates the prompt for a translation request. The
// model is told to return only the translation so the reply can be used
// verbatim.
func BuildTranslatePrompt(text, sourceLang, targetLang string) string {
	return fmt.Sprintf(`Translate the following text from %s to %s.
Only provide the translation without any explanations or additional text.

Text to translate:
%s`, sourceLang, targetLang, text)
}

// BuildSummarizePrompt creates the prompt for a summarization request. The
// output format is the same markdown dialect the deck renderer consumes,
// including "---" slide separators when more than one slide is requested.
func BuildSummarizePrompt(text string, opts SummarizeOptions) string {
	var slideInstruction string
	if opts.NumSlides > 1 {
		slideInstruction = fmt.Sprintf(`
Divide the content into exactly %d slides.
Separate each slide with a horizontal rule (---) in markdown format.
Each slide should be self-contained and focused on a specific topic.
`, opts.NumSlides)
	}

	languageInstruction := fmt.Sprintf(`
Output the summary in %s.
All content must be written in %s.
`, opts.TargetLang, opts.TargetLang)

	var sb strings.Builder
	sb.WriteString("Summarize the following text for a presentation slide.\n")
	sb.WriteString(languageInstruction)
	sb.WriteString(slideInstruction)
	sb.WriteString(`
Format the output in markdown with:
- Clear headings (##) for slide titles
- Bullet points (-) for key information
- Concise and professional language
- Focus on the most important points
`)
	if opts.AdditionalInstructions != "" {
		sb.WriteString("\n")
		sb.WriteString(opts.AdditionalInstructions)
		sb.WriteString("\n")
	}
	sb.WriteString("\nText to summarize:\n")
	sb.WriteString(text)
	return sb.String()
}
