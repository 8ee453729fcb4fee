package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/docquiz/internal/mcqgen"
)

func sampleSet() mcqgen.Set {
	return mcqgen.Set{
		{ID: "1", Question: "What is the powerhouse of the cell?", Options: []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi"}, CorrectAnswer: "Mitochondria"},
		{ID: "2", Question: "Which gas do plants absorb?", Options: []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Helium"}, CorrectAnswer: "Carbon dioxide"},
	}
}

func TestSet_ListsEveryQuestion(t *testing.T) {
	out := Set(sampleSet(), Options{})

	assert.Contains(t, out, "2 questions")
	assert.Contains(t, out, "1. What is the powerhouse of the cell?")
	assert.Contains(t, out, "2. Which gas do plants absorb?")
	assert.Contains(t, out, "B)  Mitochondria")
	assert.Contains(t, out, "C)  Carbon dioxide")
	assert.Contains(t, out, "answers hidden")
	assert.NotContains(t, out, "✓")
}

func TestSet_ShowAnswers(t *testing.T) {
	out := Set(sampleSet(), Options{ShowAnswers: true})

	assert.Equal(t, 2, strings.Count(out, "✓"))
	assert.Contains(t, out, "B)  Mitochondria  ✓")
	assert.NotContains(t, out, "answers hidden")
}

func TestMCQ_MoreThanFourOptions(t *testing.T) {
	q := mcqgen.MCQ{ID: "1", Question: "Pick", Options: []string{"a", "b", "c", "d", "e"}, CorrectAnswer: "e"}
	out := MCQ(q, Options{})
	assert.Contains(t, out, "5)  e")
}

func TestError(t *testing.T) {
	assert.Contains(t, Error(errors.New("boom")), "✗ boom")
}
