package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tripify/go-mood-playlist/internal/auth"
	"github.com/tripify/go-mood-playlist/internal/db"
	"github.com/tripify/go-mood-playlist/internal/quiz"
	"github.com/tripify/go-mood-playlist/internal/recommend"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr        string
	DB          *db.DB
	SpotifyAuth *auth.SpotifyAuth
	Hasher      auth.PasswordHasher
	Recommender *recommend.Recommender
	Catalog     []quiz.Question
	FrontendURL string

	// Provider overrides the track-provider factory; nil means Spotify.
	Provider ProviderFactory
}

// Server is the HTTP server for the API.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
}

// NewServer creates a new API server. The quiz catalog is validated here
// since a malformed catalog is a startup defect, not a request error.
func NewServer(cfg ServerConfig) (*Server, error) {
	if err := quiz.ValidateCatalog(cfg.Catalog); err != nil {
		return nil, fmt.Errorf("validating quiz catalog: %w", err)
	}

	handlers := NewHandlers(
		cfg.DB.Users(),
		cfg.DB.MoodResults(),
		cfg.DB.Playlists(),
		cfg.Hasher,
		cfg.SpotifyAuth,
		cfg.Recommender,
		cfg.Catalog,
		cfg.FrontendURL,
		cfg.Provider,
	)

	router := chi.NewRouter()

	s := &Server{
		router:   router,
		handlers: handlers,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(metricsMiddleware)
}

// setupRoutes configures routes for the API.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handlers.Root)
	s.router.Get("/health", s.handlers.Health)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handlers.Signup)
			r.Post("/login", s.handlers.Login)
			r.Get("/users/{email}", s.handlers.UserLookup)
		})

		r.Route("/quiz", func(r chi.Router) {
			r.Get("/questions", s.handlers.Questions)
			r.Post("/calculate-mood", s.handlers.CalculateMood)
			r.Get("/mood-history/{userID}", s.handlers.MoodHistory)
			r.Get("/mood-insights/{userID}", s.handlers.MoodInsights)
		})

		r.Route("/spotify", func(r chi.Router) {
			r.Get("/auth", s.handlers.SpotifyAuthURL)
			r.Get("/callback", s.handlers.SpotifyCallback)
			r.Post("/generate-playlist", s.handlers.GeneratePlaylist)
			r.Post("/create-playlist", s.handlers.CreatePlaylist)
			r.Get("/playlists/{userID}", s.handlers.ListPlaylists)
		})
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting server at http://%s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
