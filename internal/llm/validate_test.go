package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// mcqListSchema describes an array of at least n questions, each with four
// string options.
func mcqListSchema(n int) *Schema {
	return &Schema{
		Name:        fmt.Sprintf("test-mcq-list-%d", n),
		Description: "A list of multiple-choice questions",
		Definition: map[string]any{
			"type":     "array",
			"minItems": n,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string"},
						"minItems": 4,
						"maxItems": 4,
					},
					"correctAnswer": map[string]any{"type": "string", "minLength": 1},
				},
				"required": []any{"question", "options", "correctAnswer"},
			},
		},
	}
}

func mcqJSON(n int) json.RawMessage {
	items := make([]map[string]any, n)
	for i := range items {
		items[i] = map[string]any{
			"question":      fmt.Sprintf("Question %d?", i+1),
			"options":       []string{"a", "b", "c", "d"},
			"correctAnswer": "a",
		}
	}
	raw, _ := json.Marshal(items)
	return raw
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		raw     string
		wantErr bool
	}{
		{"valid", 5, string(mcqJSON(5)), false},
		{"more than required", 5, string(mcqJSON(7)), false},
		{"too few items", 5, string(mcqJSON(3)), true},
		{"object root", 1, `{"questions": []}`, true},
		{"three options", 1, `[{"question":"q","options":["a","b","c"],"correctAnswer":"a"}]`, true},
		{"missing answer", 1, `[{"question":"q","options":["a","b","c","d"]}]`, true},
		{"empty question", 1, `[{"question":"","options":["a","b","c","d"],"correctAnswer":"a"}]`, true},
		{"numeric option", 1, `[{"question":"q","options":["a","b","c",4],"correctAnswer":"a"}]`, true},
		{"malformed", 1, `[{"question":`, true},
		{"empty", 1, ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(mcqListSchema(tt.min), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
		})
	}
}

func TestValidateJSON_NilSchema(t *testing.T) {
	if err := ValidateJSON(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestValidateJSON_KeepsContent(t *testing.T) {
	raw := json.RawMessage(`{"oops": true}`)
	err := ValidateJSON(mcqListSchema(1), raw)

	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
	if string(invErr.Content) != string(raw) {
		t.Errorf("content = %s, want %s", invErr.Content, raw)
	}
}

func TestValidateJSON_CachesBySchemaName(t *testing.T) {
	schema := mcqListSchema(2)
	if err := ValidateJSON(schema, mcqJSON(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := compiled.Load(schema.Name); !ok {
		t.Fatal("schema was not cached")
	}

	// Served from the cache this time.
	if err := ValidateJSON(schema, mcqJSON(1)); err == nil {
		t.Error("expected too-short list to fail")
	}
}

func TestValidateJSON_BadSchema(t *testing.T) {
	schema := &Schema{
		Name:       "test-bad-schema",
		Definition: map[string]any{"type": 42},
	}
	err := ValidateJSON(schema, json.RawMessage(`[]`))

	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
	if !strings.Contains(err.Error(), `schema "test-bad-schema"`) {
		t.Errorf("error %q should name the schema", err)
	}
}
