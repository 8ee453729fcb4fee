package mcqgen

import (
	"errors"
	"fmt"
)

// ErrGenerationClient wraps a failure of the completion backend itself, as
// opposed to a problem with what it returned.
type ErrGenerationClient struct {
	Err error
}

func (e *ErrGenerationClient) Error() string {
	return fmt.Sprintf("generation client: %v", e.Err)
}

func (e *ErrGenerationClient) Unwrap() error { return e.Err }

// ErrExtraction indicates no JSON list could be located in the completion.
type ErrExtraction struct {
	Reason string
}

func (e *ErrExtraction) Error() string {
	return fmt.Sprintf("no question list in response: %s", e.Reason)
}

// ErrMalformedPayload indicates the extracted payload is not valid JSON.
type ErrMalformedPayload struct {
	Err error
}

func (e *ErrMalformedPayload) Error() string {
	return fmt.Sprintf("failed to parse question list: %v", e.Err)
}

func (e *ErrMalformedPayload) Unwrap() error { return e.Err }

// ErrShape indicates the payload parsed but is not a list.
type ErrShape struct {
	Got string
}

func (e *ErrShape) Error() string {
	return fmt.Sprintf("response is not a list (got %s)", e.Got)
}

// ErrInsufficientCount indicates fewer questions than requested.
type ErrInsufficientCount struct {
	Expected int
	Actual   int
}

func (e *ErrInsufficientCount) Error() string {
	return fmt.Sprintf("not enough questions generated: expected %d, got %d", e.Expected, e.Actual)
}

// ErrMissingField indicates question Index (1-based) lacks a required field
// or carries it with the wrong type.
type ErrMissingField struct {
	Index int
	Field string
}

func (e *ErrMissingField) Error() string {
	return fmt.Sprintf("question %d is missing required field %q", e.Index, e.Field)
}

// ErrOptionCount indicates question Index does not have exactly 4 options.
type ErrOptionCount struct {
	Index int
	Count int
}

func (e *ErrOptionCount) Error() string {
	return fmt.Sprintf("question %d must have exactly 4 options, got %d", e.Index, e.Count)
}

// ErrAnswerMismatch indicates the correct answer of question Index matches
// none of its options.
type ErrAnswerMismatch struct {
	Index  int
	Answer string
}

func (e *ErrAnswerMismatch) Error() string {
	return fmt.Sprintf("question %d has invalid correct answer %q", e.Index, e.Answer)
}

// ErrGenerationFailed is returned once every attempt has failed. Err is the
// failure of the final attempt.
type ErrGenerationFailed struct {
	Attempts int
	Err      error
}

func (e *ErrGenerationFailed) Error() string {
	return fmt.Sprintf("failed to generate valid MCQs after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ErrGenerationFailed) Unwrap() error { return e.Err }

// ErrorKind returns a short stable label for the most specific pipeline
// error in err's chain, or "" for nil.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var (
		extraction   *ErrExtraction
		malformed    *ErrMalformedPayload
		shape        *ErrShape
		insufficient *ErrInsufficientCount
		missing      *ErrMissingField
		optCount     *ErrOptionCount
		mismatch     *ErrAnswerMismatch
		client       *ErrGenerationClient
	)
	switch {
	case errors.As(err, &extraction):
		return "extraction"
	case errors.As(err, &malformed):
		return "malformed_payload"
	case errors.As(err, &shape):
		return "shape"
	case errors.As(err, &insufficient):
		return "insufficient_count"
	case errors.As(err, &missing):
		return "missing_field"
	case errors.As(err, &optCount):
		return "option_count"
	case errors.As(err, &mismatch):
		return "answer_mismatch"
	case errors.As(err, &client):
		return "generation_client"
	default:
		return "other"
	}
}
