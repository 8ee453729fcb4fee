package mcqgen

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the generation instruction for p, embedding at most
// the first SourceCharLimit characters of source.
func BuildPrompt(p Params, source string) string {
	return buildPrompt(p, source, SourceCharLimit)
}

func buildPrompt(p Params, source string, limit int) string {
	var b strings.Builder

	b.WriteString("You are a professional quiz generator. Generate multiple choice questions based on the provided document content and the user's request.\n\n")
	fmt.Fprintf(&b, "Topic/Focus: \"%s\"\n\n", p.Topic)

	b.WriteString("Instructions:\n")
	fmt.Fprintf(&b, "1. Generate exactly %d MCQs that are specifically focused on the user's topic\n", p.Count)
	b.WriteString("2. Each question must have exactly 4 distinct options\n")
	b.WriteString("3. Make questions progressively harder, from easy to difficult\n")
	b.WriteString("4. Ensure questions are directly related to the document content\n")
	b.WriteString("5. Format output as a JSON array with this structure:\n")
	b.WriteString(`[
  {
    "id": "1",
    "question": "Clear, focused question text?",
    "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
    "correctAnswer": "Must match one option exactly"
  }
]`)
	b.WriteString("\n\n")

	b.WriteString("Document Content: ")
	b.WriteString(truncateRunes(source, limit))
	b.WriteString("\n\n")

	b.WriteString("Important:\n")
	fmt.Fprintf(&b, "- Return ONLY the JSON array with exactly %d questions\n", p.Count)
	b.WriteString("- No explanations or additional text\n")
	b.WriteString("- Ensure correctAnswer matches one option exactly\n")
	b.WriteString("- Questions must be based on the document content only")

	return b.String()
}

// truncateRunes returns the first n characters of s. n <= 0 disables the limit.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
