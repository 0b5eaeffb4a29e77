// Package recommend turns a mood label into a reproducible set of tracks
// from an external provider, and orchestrates playlist creation on top of
// that.
package recommend

import (
	"context"
	"hash/fnv"
	"log"
	"math/rand"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tripify/go-mood-playlist/internal/policy"
)

// Track is the canonical track shape used internally regardless of what the
// provider returns. PreviewURL and ImageURL are empty when the provider has
// none.
type Track struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Artists         []string `json:"artists"`
	DurationMinutes float64  `json:"duration"`
	PreviewURL      string   `json:"preview_url,omitempty"`
	URI             string   `json:"uri"`
	ImageURL        string   `json:"image,omitempty"`
}

// PlaylistInfo identifies a playlist created on the provider.
type PlaylistInfo struct {
	ID  string
	URL string
}

// Provider is the authenticated track-provider session the adapter queries.
type Provider interface {
	TopTracks(ctx context.Context, timeRange policy.TimeRange, limit int) ([]Track, error)
	RecommendationsBySeed(ctx context.Context, artistID string, limit int) ([]Track, error)
	RecommendationsByFeatures(ctx context.Context, targets policy.FeatureTargets, limit int) ([]Track, error)
	CurrentUserID(ctx context.Context) (string, error)
	CreatePlaylist(ctx context.Context, userID, name, description string) (PlaylistInfo, error)
	AddTracks(ctx context.Context, playlistID string, uris []string) error
}

// varietyLimit is how many extra long-term tracks a diversifying fetch pulls.
const varietyLimit = 20

// Recommender resolves a mood to tracks via the policy table. Provider
// failures never escape Recommend; they degrade to an empty result after a
// single fallback attempt.
type Recommender struct {
	table   policy.Table
	breaker *gobreaker.CircuitBreaker[[]Track]
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithTable overrides the strategy table.
func WithTable(t policy.Table) Option {
	return func(r *Recommender) {
		r.table = t
	}
}

// New creates a Recommender using the default history-based strategy table.
// Provider calls run through a circuit breaker that opens after five
// consecutive failures and re-closes after 30 seconds.
func New(opts ...Option) *Recommender {
	r := &Recommender{
		table: policy.DefaultTable(),
		breaker: gobreaker.NewCircuitBreaker[[]Track](gobreaker.Settings{
			Name:    "track-provider",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend returns up to limit tracks for the given mood.
//
// The primary fetch follows the mood's strategy. If it fails, one fallback
// fetch (medium-term top tracks) is attempted; if that also fails the result
// is an empty slice, never an error. The candidate set is deduplicated by
// track ID and shuffled with a generator seeded from the mood label, so the
// same mood over the same candidates yields the same order.
func (r *Recommender) Recommend(ctx context.Context, provider Provider, mood string, limit int) []Track {
	if limit <= 0 {
		limit = 20
	}
	if limit > policy.ProviderMax {
		limit = policy.ProviderMax
	}

	strategy := r.table.For(mood)
	fetchLimit := strategy.FetchLimit(limit)

	tracks, err := r.fetch(func() ([]Track, error) {
		return r.primary(ctx, provider, strategy, fetchLimit)
	})
	if err != nil {
		log.Printf("recommend: primary fetch for mood %q failed: %v", mood, err)
		tracks, err = r.fetch(func() ([]Track, error) {
			return provider.TopTracks(ctx, policy.RangeMediumTerm, fetchLimit)
		})
		if err != nil {
			log.Printf("recommend: fallback fetch for mood %q failed: %v", mood, err)
			return []Track{}
		}
	}

	if len(tracks) == 0 {
		return []Track{}
	}

	// History strategies for short primaries can top up from the long-term
	// bucket. A failure here only means less variety.
	if strategy.Kind == policy.KindHistory && strategy.Diversify && len(tracks) < limit {
		extra, err := r.fetch(func() ([]Track, error) {
			return provider.TopTracks(ctx, policy.RangeLongTerm, varietyLimit)
		})
		if err != nil {
			log.Printf("recommend: variety fetch for mood %q failed: %v", mood, err)
		} else {
			tracks = append(tracks, extra...)
		}
	}

	tracks = dedupe(tracks)
	shuffleForMood(tracks, mood)

	if len(tracks) > limit {
		tracks = tracks[:limit]
	}
	return tracks
}

// primary dispatches the strategy-shaped provider call.
func (r *Recommender) primary(ctx context.Context, provider Provider, strategy policy.Strategy, limit int) ([]Track, error) {
	switch strategy.Kind {
	case policy.KindFeatures:
		return provider.RecommendationsByFeatures(ctx, *strategy.Features, limit)
	case policy.KindSeedArtist:
		return provider.RecommendationsBySeed(ctx, strategy.ArtistID, limit)
	default:
		return provider.TopTracks(ctx, strategy.Range, limit)
	}
}

// fetch runs a provider call through the circuit breaker.
func (r *Recommender) fetch(call func() ([]Track, error)) ([]Track, error) {
	return r.breaker.Execute(call)
}

// dedupe removes duplicate track IDs, keeping first occurrence order.
// It returns a new slice so the caller can shuffle without mutating the
// provider's candidate pool.
func dedupe(tracks []Track) []Track {
	seen := make(map[string]struct{}, len(tracks))
	out := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

// shuffleForMood shuffles tracks with a generator seeded from the mood
// label, so repeated calls for the same mood reproduce the same order.
func shuffleForMood(tracks []Track, mood string) {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(mood)))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	rng.Shuffle(len(tracks), func(i, j int) {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	})
}
