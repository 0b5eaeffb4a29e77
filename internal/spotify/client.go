// Package spotify adapts the Spotify Web API to the track-provider
// interface the recommendation engine consumes.
package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/time/rate"
)

// requestsPerSecond is a client-side politeness limit on the Web API.
const requestsPerSecond = 10

// Client wraps the Spotify API client with the provider methods the
// recommendation adapter needs. The underlying client must already be
// authenticated.
type Client struct {
	api     *spotify.Client
	limiter *rate.Limiter
}

// New creates a new Spotify client wrapper.
func New(api *spotify.Client) *Client {
	return &Client{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// wait blocks until the limiter permits another API request.
func (c *Client) wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}

// CurrentUserID returns the current user's Spotify ID.
func (c *Client) CurrentUserID(ctx context.Context) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("getting current user: %w", err)
	}
	return user.ID, nil
}
