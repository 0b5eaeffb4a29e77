// Package insights groups a user's mood-quiz history into phases using
// k-means clustering over the normalized mood vectors.
package insights

import (
	"log"
	"slices"
	"time"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/tripify/go-mood-playlist/internal/quiz"
)

// Config holds phase-detection parameters.
type Config struct {
	NumPhases    int // number of clusters to create
	MinPhaseSize int // smaller clusters are discarded
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		NumPhases:    3,
		MinPhaseSize: 2,
	}
}

// Sample is one scored quiz submission.
type Sample struct {
	Scores    quiz.Vector
	CreatedAt time.Time
}

// Phase is a cluster of mood results from a contiguous-feeling stretch of
// the user's history.
type Phase struct {
	Name      string      `json:"name"`
	Dominant  quiz.Mood   `json:"dominantMood"`
	Centroid  quiz.Vector `json:"centroid"`
	StartDate time.Time   `json:"startDate"`
	EndDate   time.Time   `json:"endDate"`
	Count     int         `json:"resultCount"`
}

// sampleObservation wraps a Sample to implement clusters.Observation.
type sampleObservation struct {
	sample *Sample
	coords clusters.Coordinates
}

func (o sampleObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o sampleObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// DetectPhases clusters mood samples into phases. Histories smaller than
// the phase count yield no phases rather than an error; clustering failures
// likewise degrade to an empty result.
func DetectPhases(samples []Sample, cfg Config) []Phase {
	if cfg.NumPhases <= 0 {
		cfg.NumPhases = DefaultConfig().NumPhases
	}
	if len(samples) < cfg.NumPhases || len(samples) < cfg.MinPhaseSize {
		return nil
	}

	var obs clusters.Observations
	for i := range samples {
		s := &samples[i]
		obs = append(obs, sampleObservation{
			sample: s,
			coords: clusters.Coordinates{
				s.Scores.Energetic / 100,
				s.Scores.Calm / 100,
				s.Scores.Introspective / 100,
				s.Scores.Adventurous / 100,
			},
		})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, cfg.NumPhases)
	if err != nil {
		log.Printf("insights: k-means partition failed: %v", err)
		return nil
	}

	var phases []Phase
	for _, cluster := range result {
		var members []Sample
		for _, o := range cluster.Observations {
			if so, ok := o.(sampleObservation); ok {
				members = append(members, *so.sample)
			}
		}
		if len(members) < cfg.MinPhaseSize {
			continue
		}

		slices.SortFunc(members, func(a, b Sample) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})

		centroid := quiz.Vector{
			Energetic:     cluster.Center[0] * 100,
			Calm:          cluster.Center[1] * 100,
			Introspective: cluster.Center[2] * 100,
			Adventurous:   cluster.Center[3] * 100,
		}
		dominant := dominantMood(centroid)

		phases = append(phases, Phase{
			Name:      phaseName(dominant, members[0].CreatedAt, members[len(members)-1].CreatedAt),
			Dominant:  dominant,
			Centroid:  centroid,
			StartDate: members[0].CreatedAt,
			EndDate:   members[len(members)-1].CreatedAt,
			Count:     len(members),
		})
	}

	slices.SortFunc(phases, func(a, b Phase) int {
		return a.StartDate.Compare(b.StartDate)
	})
	return phases
}

// dominantMood returns the highest centroid component, ties resolving in
// enumeration order like the scorer.
func dominantMood(v quiz.Vector) quiz.Mood {
	dominant := quiz.Moods[0]
	best := v.Get(dominant)
	for _, m := range quiz.Moods[1:] {
		if s := v.Get(m); s > best {
			best = s
			dominant = m
		}
	}
	return dominant
}

// phaseLabels maps each mood to a display label for phase names.
var phaseLabels = map[quiz.Mood]string{
	quiz.MoodEnergetic:     "High Energy",
	quiz.MoodCalm:          "Mellow",
	quiz.MoodIntrospective: "Reflective",
	quiz.MoodAdventurous:   "Exploratory",
}

// phaseName builds a descriptive name like "Mellow: Jan 5 - Mar 2, 2026".
func phaseName(dominant quiz.Mood, start, end time.Time) string {
	label := phaseLabels[dominant]
	if start.Year() == end.Year() {
		return label + ": " + start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
	}
	return label + ": " + start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
}
