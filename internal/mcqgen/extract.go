package mcqgen

import "strings"

// ExtractPayload isolates the JSON list embedded in a raw completion: the
// text from the first '[' through the last ']' inclusive. Prose before and
// after the list is discarded.
func ExtractPayload(raw string) (string, error) {
	start := strings.Index(raw, "[")
	if start < 0 {
		return "", &ErrExtraction{Reason: "no opening bracket"}
	}
	end := strings.LastIndex(raw, "]")
	if end <= start {
		return "", &ErrExtraction{Reason: "no closing bracket after the opening bracket"}
	}
	return raw[start : end+1], nil
}
