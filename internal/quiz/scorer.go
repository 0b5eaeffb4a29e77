package quiz

import "math"

// Result holds the scored mood vector and the dominant mood label.
type Result struct {
	Scores   Vector `json:"moodScores"`
	Dominant Mood   `json:"dominantMood"`
}

// Score computes normalized mood percentages from a set of answers.
//
// Answers with a question index outside the catalog, or an option index
// outside that question's options, are skipped rather than rejected. When
// every answer is skipped (or the set is empty) all four scores are 0.0.
// Otherwise each score is the mood's share of the total raw weight, rounded
// half-up to two decimals.
//
// The dominant mood is the strictly highest score; ties resolve to the first
// label in the Moods enumeration order.
func Score(answers AnswerSet, catalog []Question) Result {
	var energetic, calm, introspective, adventurous int

	for questionIndex, optionIndex := range answers {
		if questionIndex < 0 || questionIndex >= len(catalog) {
			continue
		}
		q := catalog[questionIndex]
		if optionIndex < 0 || optionIndex >= len(q.Weights) {
			continue
		}
		w := q.Weights[optionIndex]
		energetic += w.Energetic
		calm += w.Calm
		introspective += w.Introspective
		adventurous += w.Adventurous
	}

	total := energetic + calm + introspective + adventurous

	var scores Vector
	if total > 0 {
		scores = Vector{
			Energetic:     percent(energetic, total),
			Calm:          percent(calm, total),
			Introspective: percent(introspective, total),
			Adventurous:   percent(adventurous, total),
		}
	}

	dominant := Moods[0]
	best := scores.Get(dominant)
	for _, m := range Moods[1:] {
		if s := scores.Get(m); s > best {
			best = s
			dominant = m
		}
	}

	return Result{Scores: scores, Dominant: dominant}
}

// percent returns part/total as a percentage rounded to two decimals.
func percent(part, total int) float64 {
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
