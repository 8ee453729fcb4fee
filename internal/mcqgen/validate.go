package mcqgen

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Validate parses payload and checks it holds at least n well-formed
// questions. Extra questions past n are dropped. The first violation aborts
// validation; no partial set is returned.
func Validate(payload string, n int) (Set, error) {
	var parsed any
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, &ErrMalformedPayload{Err: err}
	}

	items, ok := parsed.([]any)
	if !ok {
		return nil, &ErrShape{Got: jsonKind(parsed)}
	}

	if len(items) < n {
		return nil, &ErrInsufficientCount{Expected: n, Actual: len(items)}
	}
	items = items[:n]

	set := make(Set, 0, n)
	for i, item := range items {
		q, err := validateItem(i+1, item)
		if err != nil {
			return nil, err
		}
		set = append(set, q)
	}
	return set, nil
}

func validateItem(index int, item any) (MCQ, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return MCQ{}, &ErrMissingField{Index: index, Field: "question"}
	}

	question, ok := obj["question"].(string)
	if !ok || strings.TrimSpace(question) == "" {
		return MCQ{}, &ErrMissingField{Index: index, Field: "question"}
	}
	rawOptions, ok := obj["options"].([]any)
	if !ok {
		return MCQ{}, &ErrMissingField{Index: index, Field: "options"}
	}
	answer, ok := obj["correctAnswer"].(string)
	if !ok || strings.TrimSpace(answer) == "" {
		return MCQ{}, &ErrMissingField{Index: index, Field: "correctAnswer"}
	}

	if len(rawOptions) != 4 {
		return MCQ{}, &ErrOptionCount{Index: index, Count: len(rawOptions)}
	}

	options := make([]string, len(rawOptions))
	for j, o := range rawOptions {
		s, ok := o.(string)
		if !ok {
			return MCQ{}, &ErrMissingField{Index: index, Field: "options"}
		}
		options[j] = strings.TrimSpace(s)
	}

	answer = strings.TrimSpace(answer)
	if !slices.Contains(options, answer) {
		return MCQ{}, &ErrAnswerMismatch{Index: index, Answer: answer}
	}

	return MCQ{
		ID:            strconv.Itoa(index),
		Question:      strings.TrimSpace(question),
		Options:       options,
		CorrectAnswer: answer,
	}, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
