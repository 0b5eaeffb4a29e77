// Package web provides the HTTP API for the Tripify backend.
package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/tripify/go-mood-playlist/internal/auth"
	"github.com/tripify/go-mood-playlist/internal/db"
	"github.com/tripify/go-mood-playlist/internal/insights"
	"github.com/tripify/go-mood-playlist/internal/quiz"
	"github.com/tripify/go-mood-playlist/internal/recommend"
	"github.com/tripify/go-mood-playlist/internal/spotify"
)

const minPasswordLength = 6

// UserStore is the user persistence the handlers depend on.
type UserStore interface {
	Create(ctx context.Context, user *db.User) error
	GetByEmail(ctx context.Context, email string) (*db.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*db.User, error)
}

// MoodStore is the mood-result persistence the handlers depend on.
type MoodStore interface {
	Insert(ctx context.Context, result *db.MoodResult) error
	ListByUser(ctx context.Context, userID string) ([]db.MoodResult, error)
}

// PlaylistStore is the playlist persistence the handlers depend on.
type PlaylistStore interface {
	Insert(ctx context.Context, playlist *db.Playlist) error
	ListByUser(ctx context.Context, userID string) ([]db.Playlist, error)
}

// ProviderFactory builds a track-provider session from an access token.
// Swappable so tests can inject a fake provider.
type ProviderFactory func(ctx context.Context, accessToken string) recommend.Provider

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	users       UserStore
	moods       MoodStore
	playlists   PlaylistStore
	hasher      auth.PasswordHasher
	spotifyAuth *auth.SpotifyAuth
	recommender *recommend.Recommender
	catalog     []quiz.Question
	frontendURL string
	provider    ProviderFactory
}

// NewHandlers creates a Handlers instance. A nil provider factory defaults
// to real Spotify sessions built from the access token.
func NewHandlers(users UserStore, moods MoodStore, playlists PlaylistStore,
	hasher auth.PasswordHasher, spotifyAuth *auth.SpotifyAuth,
	recommender *recommend.Recommender, catalog []quiz.Question,
	frontendURL string, provider ProviderFactory) *Handlers {

	h := &Handlers{
		users:       users,
		moods:       moods,
		playlists:   playlists,
		hasher:      hasher,
		spotifyAuth: spotifyAuth,
		recommender: recommender,
		catalog:     catalog,
		frontendURL: frontendURL,
		provider:    provider,
	}
	if h.provider == nil {
		h.provider = func(ctx context.Context, accessToken string) recommend.Provider {
			token := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
			return spotify.New(spotifyAuth.Client(ctx, token))
		}
	}
	return h
}

// ============================================================================
// Root
// ============================================================================

// Root handles GET /.
func (h *Handlers) Root(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to Tripify API",
		"status":  "running",
	})
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ============================================================================
// Auth
// ============================================================================

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Signup handles POST /api/auth/signup.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FullName == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "fullName and email are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	digest, err := h.hasher.Hash(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := &db.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: digest,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, db.ErrEmailTaken) {
			respondError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		log.Printf("web: creating user: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	respondJSON(w, http.StatusCreated, userResponse{
		ID:        user.ID.String(),
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// Login handles POST /api/auth/login. Unknown emails and wrong passwords
// get the same response so the two cases are indistinguishable.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			log.Printf("web: looking up user: %v", err)
		}
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	respondJSON(w, http.StatusOK, userResponse{
		ID:        user.ID.String(),
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// UserLookup handles GET /api/auth/users/{email}.
func (h *Handlers) UserLookup(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := h.users.GetByEmail(r.Context(), email)
	if errors.Is(err, db.ErrNotFound) {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("web: looking up user: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to look up user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"id":       user.ID.String(),
		"fullName": user.FullName,
		"email":    user.Email,
		"exists":   true,
	})
}

// ============================================================================
// Quiz
// ============================================================================

type quizAnswersRequest struct {
	UserID string `json:"userId"`
	// Answers maps question index to chosen option index. Keys arrive as
	// JSON strings; non-numeric keys are skipped like any other malformed
	// answer.
	Answers map[string]int `json:"answers"`
}

type moodResultResponse struct {
	UserID    string      `json:"userId"`
	Scores    quiz.Vector `json:"moodScores"`
	Dominant  quiz.Mood   `json:"dominantMood"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Questions handles GET /api/quiz/questions.
func (h *Handlers) Questions(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"questions": h.catalog})
}

// CalculateMood handles POST /api/quiz/calculate-mood.
//
// The user lookup is informational only: an unknown or malformed user ID
// logs a note and scoring proceeds in guest mode. Malformed answers never
// fail the request.
func (h *Handlers) CalculateMood(w http.ResponseWriter, r *http.Request) {
	var req quizAnswersRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if id, err := uuid.Parse(req.UserID); err == nil {
		if _, err := h.users.GetByID(r.Context(), id); errors.Is(err, db.ErrNotFound) {
			log.Printf("web: user %s not found, continuing as guest", req.UserID)
		}
	} else {
		log.Printf("web: user id %q not parseable, continuing as guest", req.UserID)
	}

	answers := make(quiz.AnswerSet, len(req.Answers))
	for key, option := range req.Answers {
		index, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		answers[index] = option
	}

	scored := quiz.Score(answers, h.catalog)

	result := &db.MoodResult{
		UserID:   req.UserID,
		Scores:   scored.Scores,
		Dominant: scored.Dominant,
	}
	if err := h.moods.Insert(r.Context(), result); err != nil {
		log.Printf("web: saving mood result: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save mood result")
		return
	}

	respondJSON(w, http.StatusOK, moodResultResponse{
		UserID:    result.UserID,
		Scores:    result.Scores,
		Dominant:  result.Dominant,
		CreatedAt: result.CreatedAt,
	})
}

type moodHistoryEntry struct {
	ID        string      `json:"id"`
	Scores    quiz.Vector `json:"moodScores"`
	Dominant  quiz.Mood   `json:"dominantMood"`
	CreatedAt time.Time   `json:"createdAt"`
}

// MoodHistory handles GET /api/quiz/mood-history/{userID}.
func (h *Handlers) MoodHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	results, err := h.moods.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("web: listing mood history: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch mood history")
		return
	}

	history := make([]moodHistoryEntry, 0, len(results))
	for _, result := range results {
		history = append(history, moodHistoryEntry{
			ID:        result.ID.String(),
			Scores:    result.Scores,
			Dominant:  result.Dominant,
			CreatedAt: result.CreatedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{"moodHistory": history})
}

// MoodInsights handles GET /api/quiz/mood-insights/{userID}. Short
// histories yield an empty phase list.
func (h *Handlers) MoodInsights(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	results, err := h.moods.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("web: listing mood history: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch mood history")
		return
	}

	samples := make([]insights.Sample, 0, len(results))
	for _, result := range results {
		samples = append(samples, insights.Sample{
			Scores:    result.Scores,
			CreatedAt: result.CreatedAt,
		})
	}

	phases := insights.DetectPhases(samples, insights.DefaultConfig())
	if phases == nil {
		phases = []insights.Phase{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"phases": phases})
}

// ============================================================================
// Spotify
// ============================================================================

// SpotifyAuthURL handles GET /api/spotify/auth.
func (h *Handlers) SpotifyAuthURL(w http.ResponseWriter, _ *http.Request) {
	state, err := auth.GenerateState()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate Spotify auth URL")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"authUrl": h.spotifyAuth.AuthURL(state),
	})
}

// SpotifyCallback handles GET /api/spotify/callback. The browser lands
// here after Spotify consent; on success it is redirected to the frontend
// with the tokens, on failure to the frontend error page.
func (h *Handlers) SpotifyCallback(w http.ResponseWriter, r *http.Request) {
	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		h.redirectFrontendError(w, r, errMsg)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectFrontendError(w, r, "missing authorization code")
		return
	}

	token, err := h.spotifyAuth.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("web: exchanging spotify code: %v", err)
		h.redirectFrontendError(w, r, "token exchange failed")
		return
	}

	params := url.Values{}
	params.Set("access_token", token.AccessToken)
	params.Set("refresh_token", token.RefreshToken)
	http.Redirect(w, r, h.frontendURL+"/SpotifySuccess?"+params.Encode(), http.StatusTemporaryRedirect)
}

func (h *Handlers) redirectFrontendError(w http.ResponseWriter, r *http.Request, msg string) {
	params := url.Values{}
	params.Set("error", msg)
	http.Redirect(w, r, h.frontendURL+"/spotify-error?"+params.Encode(), http.StatusTemporaryRedirect)
}

type playlistRequest struct {
	UserID      string `json:"userId"`
	Mood        string `json:"mood"`
	AccessToken string `json:"accessToken"`
	Limit       int    `json:"limit"`
}

// GeneratePlaylist handles POST /api/spotify/generate-playlist. Provider
// failures degrade to an empty track list, not an error status.
func (h *Handlers) GeneratePlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AccessToken == "" {
		respondError(w, http.StatusBadRequest, "accessToken is required")
		return
	}

	provider := h.provider(r.Context(), req.AccessToken)
	tracks := h.recommender.Recommend(r.Context(), provider, req.Mood, req.Limit)

	outcome := "ok"
	if len(tracks) == 0 {
		outcome = "empty"
	}
	recommendationsTotal.WithLabelValues(req.Mood, outcome).Inc()

	respondJSON(w, http.StatusOK, map[string]any{
		"mood":   req.Mood,
		"tracks": tracks,
	})
}

// CreatePlaylist handles POST /api/spotify/create-playlist. When the
// provider is unavailable the response reports success=false instead of a
// 5xx, so the client can render a degraded state.
func (h *Handlers) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AccessToken == "" {
		respondError(w, http.StatusBadRequest, "accessToken is required")
		return
	}

	provider := h.provider(r.Context(), req.AccessToken)
	summary, err := h.recommender.CreatePlaylist(r.Context(), provider, req.Mood, req.Limit)
	if err != nil {
		log.Printf("web: creating spotify playlist: %v", err)
		recommendationsTotal.WithLabelValues(req.Mood, "failed").Inc()
		respondJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"detail":  "Spotify is unavailable, no playlist was created",
		})
		return
	}

	playlist := &db.Playlist{
		UserID:            req.UserID,
		Mood:              req.Mood,
		SpotifyPlaylistID: summary.ProviderPlaylistID,
		Name:              summary.Name,
		URL:               summary.URL,
		TrackCount:        summary.TracksAdded,
		Tracks:            summary.Tracks,
	}
	if err := h.playlists.Insert(r.Context(), playlist); err != nil {
		log.Printf("web: saving playlist: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save playlist")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"playlistId":        playlist.ID.String(),
		"spotifyPlaylistId": summary.ProviderPlaylistID,
		"playlistName":      summary.Name,
		"playlistUrl":       summary.URL,
		"tracksAdded":       summary.TracksAdded,
	})
}

type playlistEntry struct {
	ID         string    `json:"id"`
	Mood       string    `json:"mood"`
	Name       string    `json:"playlistName"`
	URL        string    `json:"playlistUrl"`
	TrackCount int       `json:"tracksCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListPlaylists handles GET /api/spotify/playlists/{userID}.
func (h *Handlers) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	playlists, err := h.playlists.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("web: listing playlists: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch playlists")
		return
	}

	entries := make([]playlistEntry, 0, len(playlists))
	for _, p := range playlists {
		entries = append(entries, playlistEntry{
			ID:         p.ID.String(),
			Mood:       p.Mood,
			Name:       p.Name,
			URL:        p.URL,
			TrackCount: p.TrackCount,
			CreatedAt:  p.CreatedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{"playlists": entries})
}
