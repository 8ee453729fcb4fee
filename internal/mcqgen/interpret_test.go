package mcqgen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretCount(t *testing.T) {
	tests := []struct {
		name        string
		instruction string
		want        int
	}{
		{"mcqs", "give me 10 mcqs on cells", 10},
		{"questions", "Create 12 questions about the war", 12},
		{"singular question", "1 question please", 5},
		{"mcq no space", "7mcq", 7},
		{"uppercase", "15 MCQs", 15},
		{"mixed case", "8 Questions on trees", 8},
		{"extra whitespace", "9   questions", 9},
		{"below minimum", "give me 3 mcqs", 5},
		{"zero", "0 questions", 5},
		{"above maximum", "50 questions", 20},
		{"at minimum", "5 mcqs", 5},
		{"at maximum", "20 mcqs", 20},
		{"no count", "quiz me on chapter two", 5},
		{"number not before keyword", "chapter 12 summary", 5},
		{"keyword without number", "questions about history", 5},
		{"empty", "", 5},
		{"first match wins", "6 mcqs then 18 questions", 6},
		{"overflow", "99999999999999999999999 questions", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterpretCount(tt.instruction))
		})
	}
}

func TestInterpretCount_InRangeIsExact(t *testing.T) {
	for n := MinCount; n <= MaxCount; n++ {
		assert.Equal(t, n, InterpretCount(fmt.Sprintf("%d mcqs", n)))
		assert.Equal(t, n, InterpretCount(fmt.Sprintf("%d questions", n)))
	}
}

func TestInterpretCount_AlwaysInRange(t *testing.T) {
	for n := 0; n <= 100; n++ {
		got := InterpretCount(fmt.Sprintf("%d questions", n))
		assert.GreaterOrEqual(t, got, MinCount)
		assert.LessOrEqual(t, got, MaxCount)
	}
}

func TestInterpret_TopicIsInstruction(t *testing.T) {
	p := Interpret("  8 questions on \"Mitosis\"  ")
	assert.Equal(t, 8, p.Count)
	assert.Equal(t, "  8 questions on \"Mitosis\"  ", p.Topic)
}
