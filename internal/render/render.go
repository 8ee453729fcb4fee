// Package render formats MCQ sets for the terminal.
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/docquiz/internal/mcqgen"
)

var optionLabels = []string{"A", "B", "C", "D"}

// Options controls how a set is rendered.
type Options struct {
	// ShowAnswers highlights the correct option of every question.
	ShowAnswers bool

	// Width wraps each question card. Zero disables wrapping.
	Width int
}

// Set renders every question of set as a bordered card, followed by a
// one-line summary.
func Set(set mcqgen.Set, opts Options) string {
	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("%d questions", len(set))))
	b.WriteString("\n\n")

	for _, q := range set {
		b.WriteString(MCQ(q, opts))
		b.WriteString("\n")
	}

	if !opts.ShowAnswers {
		b.WriteString(Hint.Render("answers hidden; pass --answers to show them"))
		b.WriteString("\n")
	}
	return b.String()
}

// MCQ renders a single question card.
func MCQ(q mcqgen.MCQ, opts Options) string {
	var lines []string
	lines = append(lines, Question.Render(q.ID+". "+q.Question), "")

	for i, opt := range q.Options {
		label := fmt.Sprintf("%d", i+1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		line := fmt.Sprintf("  %s)  %s", label, opt)
		if opts.ShowAnswers && opt == q.CorrectAnswer {
			lines = append(lines, Correct.Render(line+"  ✓"))
			continue
		}
		lines = append(lines, Option.Render(line))
	}

	card := Card
	if opts.Width > 0 {
		card = card.Width(opts.Width)
	}
	return card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Error renders a failure message.
func Error(err error) string {
	return Failure.Render("✗ " + err.Error())
}
