// Package mcqgen turns source text and a free-form instruction into a
// validated set of multiple-choice questions.
//
// A run interprets the instruction, builds a single prompt, asks a
// Completer for a completion, isolates the JSON list in it, and validates
// every item. Any failure aborts the attempt; the Generator decides
// whether to try again.
package mcqgen

// Question count bounds applied by Interpret.
const (
	MinCount     = 5
	MaxCount     = 20
	DefaultCount = 5
)

// SourceCharLimit is the default number of source characters embedded in a
// prompt. Longer documents are truncated silently.
const SourceCharLimit = 3000

// Params are the generation parameters derived from one instruction.
type Params struct {
	// Count is the number of questions requested, clamped to [MinCount, MaxCount].
	Count int

	// Topic is the user's instruction, embedded verbatim in the prompt.
	Topic string
}

// MCQ is a single validated multiple-choice question.
type MCQ struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Set is an ordered list of validated questions with IDs "1".."N".
type Set []MCQ
