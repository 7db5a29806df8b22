// Package practice holds the in-memory exercise shapes used while the
// learner works through fill-in-the-blank sentences, and the answer
// correctness engine that scores them.
package practice

import "strings"

// Result is the tri-state outcome of checking a gap. Unknown means the
// gap has not been attempted yet; it must stay distinguishable from
// Incorrect for the UI and for score aggregation.
type Result int

const (
	Unknown Result = iota
	Correct
	Incorrect
)

// macronFold maps the five long-vowel macron marks, both cases, to their
// plain base letters.
var macronFold = strings.NewReplacer(
	"ā", "a", "ē", "e", "ī", "i", "ō", "o", "ū", "u",
	"Ā", "A", "Ē", "E", "Ī", "I", "Ō", "O", "Ū", "U",
)

// Check evaluates a typed answer against the expected ending. Both sides
// are trimmed, lowercased, and macron-folded before exact comparison; no
// stemming, fuzzy matching, or alternate endings.
func Check(answer, ending string) Result {
	if strings.TrimSpace(answer) == "" {
		return Unknown
	}
	if normalizeAnswer(answer) == normalizeAnswer(ending) {
		return Correct
	}
	return Incorrect
}

func normalizeAnswer(s string) string {
	return macronFold.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Score aggregates gap results for one exercise.
type Score struct {
	Total   int
	Correct int
	Percent int
}

// ScoreOf computes the aggregate score of an exercise. A gap counts as
// correct only on Result Correct. An exercise without gaps scores 0%.
func ScoreOf(e *Exercise) Score {
	var s Score
	for _, sentence := range e.Sentences {
		for _, g := range sentence.Gaps() {
			s.Total++
			if Check(g.Answer, g.Ending) == Correct {
				s.Correct++
			}
		}
	}
	if s.Total > 0 {
		s.Percent = int(float64(s.Correct)/float64(s.Total)*100 + 0.5)
	}
	return s
}
