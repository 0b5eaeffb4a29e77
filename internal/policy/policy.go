// Package policy maps mood labels to recommendation strategies.
//
// A Strategy describes how to query the track provider for a mood. Three
// shapes exist because the product went through three provider APIs:
// audio-feature targets with genre seeds, a single seed artist, and slices
// of the user's own listening history. History is the default shape since
// Spotify restricted the recommendations and audio-features endpoints for
// new apps in November 2024; the other two tables remain available behind
// the same lookup contract.
package policy

import (
	"strings"

	"github.com/tripify/go-mood-playlist/internal/quiz"
)

// Kind tags the shape of a Strategy.
type Kind int

// Strategy shapes.
const (
	KindHistory Kind = iota
	KindFeatures
	KindSeedArtist
)

// TimeRange names a slice of the user's listening history.
type TimeRange string

// Provider time-range buckets.
const (
	RangeShortTerm  TimeRange = "short_term"  // last ~4 weeks
	RangeMediumTerm TimeRange = "medium_term" // last ~6 months
	RangeLongTerm   TimeRange = "long_term"   // all-time
)

// ProviderMax is the maximum number of items the provider returns per fetch.
const ProviderMax = 50

// FeatureTargets holds audio-feature bounds for a feature-based query.
// Nil pointers mean the bound is not set.
type FeatureTargets struct {
	TargetEnergy  *float64
	MinTempo      *float64
	MaxTempo      *float64
	TargetValence *float64
	MinValence    *float64
	MaxValence    *float64
	Genres        []string // up to 5 seed genres
}

// Strategy describes how to fetch candidate tracks for one mood.
// Kind selects which of the remaining fields are meaningful.
type Strategy struct {
	Kind      Kind
	Range     TimeRange       // KindHistory
	Diversify bool            // KindHistory: top up from the long-term bucket
	Features  *FeatureTargets // KindFeatures
	ArtistID  string          // KindSeedArtist
}

// FetchLimit returns how many candidates to request from the provider so
// that downstream sampling has room: twice the requested count, capped at
// the provider maximum.
func (s Strategy) FetchLimit(requested int) int {
	return min(requested*2, ProviderMax)
}

// Table is a total mapping from mood label to strategy.
type Table map[quiz.Mood]Strategy

// For looks up the strategy for a mood label. The lookup is
// case-insensitive; unrecognized labels fall back to the energetic strategy
// so that a caller always receives a usable strategy.
func (t Table) For(label string) Strategy {
	if s, ok := t[quiz.Mood(strings.ToLower(label))]; ok {
		return s
	}
	return t[quiz.MoodEnergetic]
}

// DefaultTable returns the history-based strategy table.
//
// Energetic draws from recent listening, calm from all-time favorites,
// introspective from the reflective medium term, and adventurous from
// recent discoveries with long-term diversification when the primary
// fetch comes up short.
func DefaultTable() Table {
	return Table{
		quiz.MoodEnergetic:     {Kind: KindHistory, Range: RangeShortTerm},
		quiz.MoodCalm:          {Kind: KindHistory, Range: RangeLongTerm},
		quiz.MoodIntrospective: {Kind: KindHistory, Range: RangeMediumTerm},
		quiz.MoodAdventurous:   {Kind: KindHistory, Range: RangeShortTerm, Diversify: true},
	}
}

// FeatureTable returns the audio-feature strategy table.
func FeatureTable() Table {
	return Table{
		quiz.MoodEnergetic: {Kind: KindFeatures, Features: &FeatureTargets{
			TargetEnergy:  f(0.8),
			MinTempo:      f(120),
			TargetValence: f(0.7),
			Genres:        []string{"dance", "edm", "party", "power-pop"},
		}},
		quiz.MoodCalm: {Kind: KindFeatures, Features: &FeatureTargets{
			TargetEnergy:  f(0.3),
			MaxTempo:      f(100),
			TargetValence: f(0.5),
			Genres:        []string{"chill", "acoustic", "ambient", "piano"},
		}},
		quiz.MoodIntrospective: {Kind: KindFeatures, Features: &FeatureTargets{
			TargetEnergy: f(0.4),
			MaxTempo:     f(110),
			MinValence:   f(0.2),
			MaxValence:   f(0.6),
			Genres:       []string{"focus", "study", "sleep", "indie-pop"},
		}},
		quiz.MoodAdventurous: {Kind: KindFeatures, Features: &FeatureTargets{
			TargetEnergy:  f(0.6),
			MinTempo:      f(100),
			TargetValence: f(0.6),
			Genres:        []string{"alternative", "indie", "world-music", "latin"},
		}},
	}
}

// SeedTable returns the seed-artist strategy table. One fixed artist per
// mood keeps the query reproducible.
func SeedTable() Table {
	return Table{
		quiz.MoodEnergetic:     {Kind: KindSeedArtist, ArtistID: "1vCWHaC5f2uS3yhpwWbIA6"}, // Avicii
		quiz.MoodCalm:          {Kind: KindSeedArtist, ArtistID: "2elBjNSdBE2Y3f0j1mjrql"}, // Ludovico Einaudi
		quiz.MoodIntrospective: {Kind: KindSeedArtist, ArtistID: "4svLGqwzTGbZYMHcLbRWAw"}, // Bon Iver
		quiz.MoodAdventurous:   {Kind: KindSeedArtist, ArtistID: "53XhwfbYqKCa1cC15pYq2q"}, // Imagine Dragons
	}
}

func f(v float64) *float64 { return &v }
