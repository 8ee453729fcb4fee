package mcqgen

import (
	"regexp"
	"strconv"
)

// countPattern matches an integer immediately before "mcq", "question" or
// "questions", with optional whitespace between them.
var countPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:mcq|questions?)`)

// InterpretCount extracts the requested question count from instruction.
// It never fails: a missing count yields DefaultCount and any value is
// clamped to [MinCount, MaxCount].
func InterpretCount(instruction string) int {
	m := countPattern.FindStringSubmatch(instruction)
	if m == nil {
		return DefaultCount
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Only overflow can fail here; the digits are already validated.
		return MaxCount
	}
	return clamp(n, MinCount, MaxCount)
}

// Interpret derives generation parameters from a free-form instruction.
func Interpret(instruction string) Params {
	return Params{
		Count: InterpretCount(instruction),
		Topic: instruction,
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
