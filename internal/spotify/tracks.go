package spotify

import (
	"context"
	"fmt"
	"math"

	"github.com/zmb3/spotify/v2"

	"github.com/tripify/go-mood-playlist/internal/policy"
	"github.com/tripify/go-mood-playlist/internal/recommend"
)

// TopTracks fetches the user's top tracks for a listening-history bucket.
func (c *Client) TopTracks(ctx context.Context, timeRange policy.TimeRange, limit int) ([]recommend.Track, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	page, err := c.api.CurrentUsersTopTracks(ctx,
		spotify.Limit(limit),
		spotify.Timerange(toRange(timeRange)),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching top tracks (%s): %w", timeRange, err)
	}

	tracks := make([]recommend.Track, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		tracks = append(tracks, convertFullTrack(t))
	}
	return tracks, nil
}

// RecommendationsBySeed fetches recommendations seeded by a single artist.
func (c *Client) RecommendationsBySeed(ctx context.Context, artistID string, limit int) ([]recommend.Track, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	seeds := spotify.Seeds{Artists: []spotify.ID{spotify.ID(artistID)}}
	recs, err := c.api.GetRecommendations(ctx, seeds, nil, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("fetching seed recommendations: %w", err)
	}

	tracks := make([]recommend.Track, 0, len(recs.Tracks))
	for _, t := range recs.Tracks {
		tracks = append(tracks, convertSimpleTrack(t))
	}
	return tracks, nil
}

// RecommendationsByFeatures fetches recommendations for audio-feature
// targets with genre seeds.
func (c *Client) RecommendationsByFeatures(ctx context.Context, targets policy.FeatureTargets, limit int) ([]recommend.Track, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	genres := targets.Genres
	if len(genres) > spotify.MaxNumberOfSeeds {
		genres = genres[:spotify.MaxNumberOfSeeds]
	}
	seeds := spotify.Seeds{Genres: genres}

	attrs := spotify.NewTrackAttributes()
	if targets.TargetEnergy != nil {
		attrs = attrs.TargetEnergy(*targets.TargetEnergy)
	}
	if targets.MinTempo != nil {
		attrs = attrs.MinTempo(*targets.MinTempo)
	}
	if targets.MaxTempo != nil {
		attrs = attrs.MaxTempo(*targets.MaxTempo)
	}
	if targets.TargetValence != nil {
		attrs = attrs.TargetValence(*targets.TargetValence)
	}
	if targets.MinValence != nil {
		attrs = attrs.MinValence(*targets.MinValence)
	}
	if targets.MaxValence != nil {
		attrs = attrs.MaxValence(*targets.MaxValence)
	}

	recs, err := c.api.GetRecommendations(ctx, seeds, attrs, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("fetching feature recommendations: %w", err)
	}

	tracks := make([]recommend.Track, 0, len(recs.Tracks))
	for _, t := range recs.Tracks {
		tracks = append(tracks, convertSimpleTrack(t))
	}
	return tracks, nil
}

// toRange maps a policy time range to the Spotify API constant.
func toRange(tr policy.TimeRange) spotify.Range {
	switch tr {
	case policy.RangeShortTerm:
		return spotify.ShortTermRange
	case policy.RangeLongTerm:
		return spotify.LongTermRange
	default:
		return spotify.MediumTermRange
	}
}

// convertFullTrack converts a Spotify FullTrack to the canonical shape.
func convertFullTrack(t spotify.FullTrack) recommend.Track {
	track := convertSimpleTrack(t.SimpleTrack)
	if track.ImageURL == "" && len(t.Album.Images) > 0 {
		track.ImageURL = t.Album.Images[0].URL
	}
	return track
}

// convertSimpleTrack converts a Spotify SimpleTrack to the canonical shape.
// Missing preview URLs and album art become empty fields.
func convertSimpleTrack(t spotify.SimpleTrack) recommend.Track {
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}

	var imageURL string
	if len(t.Album.Images) > 0 {
		imageURL = t.Album.Images[0].URL
	}

	return recommend.Track{
		ID:              t.ID.String(),
		Name:            t.Name,
		Artists:         artists,
		DurationMinutes: math.Round(float64(t.Duration)/60000*100) / 100,
		PreviewURL:      t.PreviewURL,
		URI:             string(t.URI),
		ImageURL:        imageURL,
	}
}
