package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// SpotifyAuth wraps the Spotify OAuth2 authorization-code flow.
type SpotifyAuth struct {
	auth *spotifyauth.Authenticator
}

// NewSpotifyAuth creates the authenticator with the scopes the app needs:
// playlist modification, profile read, and top-tracks read.
func NewSpotifyAuth(clientID, clientSecret, redirectURL string) *SpotifyAuth {
	return &SpotifyAuth{
		auth: spotifyauth.New(
			spotifyauth.WithClientID(clientID),
			spotifyauth.WithClientSecret(clientSecret),
			spotifyauth.WithRedirectURL(redirectURL),
			spotifyauth.WithScopes(
				spotifyauth.ScopePlaylistModifyPublic,
				spotifyauth.ScopePlaylistModifyPrivate,
				spotifyauth.ScopeUserReadEmail,
				spotifyauth.ScopeUserReadPrivate,
				spotifyauth.ScopeUserTopRead,
			),
		),
	}
}

// AuthURL returns the Spotify authorization URL for the given state.
func (a *SpotifyAuth) AuthURL(state string) string {
	return a.auth.AuthURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// Exchange trades an authorization code for an OAuth token.
func (a *SpotifyAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.auth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return token, nil
}

// Client returns an authenticated Spotify API client for a token.
func (a *SpotifyAuth) Client(ctx context.Context, token *oauth2.Token) *spotify.Client {
	return spotify.New(a.auth.Client(ctx, token), spotify.WithRetry(true))
}

// GenerateState creates a random state string for the OAuth flow.
func GenerateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
