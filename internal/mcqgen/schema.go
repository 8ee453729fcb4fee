package mcqgen

import "github.com/abhisek/docquiz/internal/llm"

// PayloadSchema describes the question list expected from the model. It is
// only sent when Config.StructuredOutput is enabled.
var PayloadSchema = &llm.Schema{
	Name:        "mcq-list",
	Description: "A list of multiple choice questions about the document",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{
					"type":        "string",
					"description": "1-based position of the question, as a string",
				},
				"question": map[string]any{
					"type":        "string",
					"description": "The question text",
				},
				"options": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"minItems":    4,
					"maxItems":    4,
					"description": "Exactly 4 distinct answer options",
				},
				"correctAnswer": map[string]any{
					"type":        "string",
					"description": "The correct option, copied exactly from options",
				},
			},
			"required": []any{"question", "options", "correctAnswer"},
		},
	},
}
