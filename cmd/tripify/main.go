// Command tripify runs the Tripify mood-playlist API server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tripify/go-mood-playlist/internal/auth"
	"github.com/tripify/go-mood-playlist/internal/config"
	"github.com/tripify/go-mood-playlist/internal/db"
	"github.com/tripify/go-mood-playlist/internal/quiz"
	"github.com/tripify/go-mood-playlist/internal/recommend"
	"github.com/tripify/go-mood-playlist/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ctx := context.Background()

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Printf("connected to database")

	server, err := web.NewServer(web.ServerConfig{
		Addr:        cfg.Addr,
		DB:          database,
		SpotifyAuth: auth.NewSpotifyAuth(cfg.SpotifyID, cfg.SpotifySecret, cfg.RedirectURL),
		Hasher:      auth.NewBcryptHasher(),
		Recommender: recommend.New(),
		Catalog:     quiz.DefaultCatalog(),
		FrontendURL: cfg.FrontendURL,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}
