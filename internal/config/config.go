// Package config loads process configuration from defaults, an optional
// YAML file, and TRIPIFY_-prefixed environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Validation errors.
var (
	ErrMissingDatabaseURL = errors.New("database_url must be set")
	ErrMissingCredentials = errors.New("spotify_id and spotify_secret must be set")
)

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `koanf:"addr"`

	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string `koanf:"database_url"`

	// SpotifyID and SpotifySecret are the Spotify app credentials.
	SpotifyID     string `koanf:"spotify_id"`
	SpotifySecret string `koanf:"spotify_secret"`

	// RedirectURL must match the Spotify app configuration.
	RedirectURL string `koanf:"redirect_url"`

	// FrontendURL is where the OAuth callback redirects with tokens.
	FrontendURL string `koanf:"frontend_url"`
}

// defaults returns a Config with development defaults; credentials and the
// database URL have none and must be provided.
func defaults() *Config {
	return &Config{
		Addr:        "127.0.0.1:8000",
		RedirectURL: "http://127.0.0.1:8000/api/spotify/callback",
		FrontendURL: "http://localhost:8081",
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables.
// Order of precedence (low -> high):
//  1. defaults
//  2. file (YAML) if TRIPIFY_CONFIG is set
//  3. env (prefix TRIPIFY_)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("TRIPIFY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Map env keys like TRIPIFY_DATABASE_URL -> database_url (flat keys).
	envProvider := env.Provider("TRIPIFY_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "tripify_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.SpotifyID == "" || cfg.SpotifySecret == "" {
		return nil, ErrMissingCredentials
	}
	return &cfg, nil
}
