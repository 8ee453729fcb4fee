package mcqgen

import (
	"encoding/json"
	"fmt"
)

type rawItem struct {
	ID            string   `json:"id,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

func sampleItems(n int) []rawItem {
	items := make([]rawItem, n)
	for i := range items {
		items[i] = rawItem{
			Question: fmt.Sprintf("Question %d about photosynthesis?", i+1),
			Options: []string{
				fmt.Sprintf("Chlorophyll %d", i+1),
				fmt.Sprintf("Glucose %d", i+1),
				fmt.Sprintf("Oxygen %d", i+1),
				fmt.Sprintf("Water %d", i+1),
			},
			CorrectAnswer: fmt.Sprintf("Glucose %d", i+1),
		}
	}
	return items
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func samplePayload(n int) string {
	return mustJSON(sampleItems(n))
}
