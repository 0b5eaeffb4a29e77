// Package quiz defines the mood quiz catalog and the scoring engine that
// turns quiz answers into a normalized mood vector.
package quiz

import "fmt"

// Mood is one of the four fixed mood labels.
type Mood string

// The four mood labels. Moods lists them in canonical order; ties in
// dominant-mood selection resolve to the earliest entry.
const (
	MoodEnergetic     Mood = "energetic"
	MoodCalm          Mood = "calm"
	MoodIntrospective Mood = "introspective"
	MoodAdventurous   Mood = "adventurous"
)

// Moods is the canonical enumeration order of the mood labels.
var Moods = []Mood{MoodEnergetic, MoodCalm, MoodIntrospective, MoodAdventurous}

// Weight holds the per-mood integer weights for a single answer option.
type Weight struct {
	Energetic     int `json:"energetic"`
	Calm          int `json:"calm"`
	Introspective int `json:"introspective"`
	Adventurous   int `json:"adventurous"`
}

// Vector is a normalized mood score in percent per mood.
// Components sum to 100 (within rounding) unless the vector is all-zero.
type Vector struct {
	Energetic     float64 `json:"energetic"`
	Calm          float64 `json:"calm"`
	Introspective float64 `json:"introspective"`
	Adventurous   float64 `json:"adventurous"`
}

// Get returns the score for a mood label.
func (v Vector) Get(m Mood) float64 {
	switch m {
	case MoodEnergetic:
		return v.Energetic
	case MoodCalm:
		return v.Calm
	case MoodIntrospective:
		return v.Introspective
	case MoodAdventurous:
		return v.Adventurous
	}
	return 0
}

// Question is a single quiz question. Weights[i] corresponds to Options[i].
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
	Weights []Weight `json:"weights"`
}

// AnswerSet maps question index (0-based) to the chosen option index.
type AnswerSet map[int]int

// ValidateCatalog checks catalog invariants: every question has at least one
// option, matching option/weight counts, and non-negative weights. The
// catalog is static, so a violation is a defect and is fatal at startup.
func ValidateCatalog(catalog []Question) error {
	if len(catalog) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	for _, q := range catalog {
		if len(q.Options) == 0 {
			return fmt.Errorf("question %d has no options", q.ID)
		}
		if len(q.Options) != len(q.Weights) {
			return fmt.Errorf("question %d has %d options but %d weight sets",
				q.ID, len(q.Options), len(q.Weights))
		}
		for j, w := range q.Weights {
			if w.Energetic < 0 || w.Calm < 0 || w.Introspective < 0 || w.Adventurous < 0 {
				return fmt.Errorf("question %d option %d has a negative weight", q.ID, j)
			}
		}
	}
	return nil
}
