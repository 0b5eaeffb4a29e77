package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tripify/go-mood-playlist/internal/auth"
	"github.com/tripify/go-mood-playlist/internal/db"
	"github.com/tripify/go-mood-playlist/internal/policy"
	"github.com/tripify/go-mood-playlist/internal/quiz"
	"github.com/tripify/go-mood-playlist/internal/recommend"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeUserStore struct {
	byEmail map[string]*db.User
	byID    map[uuid.UUID]*db.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: make(map[string]*db.User),
		byID:    make(map[uuid.UUID]*db.User),
	}
}

func (s *fakeUserStore) Create(_ context.Context, user *db.User) error {
	if _, ok := s.byEmail[user.Email]; ok {
		return db.ErrEmailTaken
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*db.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, db.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*db.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return user, nil
}

type fakeMoodStore struct {
	inserted  []*db.MoodResult
	results   []db.MoodResult
	insertErr error
}

func (s *fakeMoodStore) Insert(_ context.Context, result *db.MoodResult) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	result.ID = uuid.New()
	result.CreatedAt = time.Now()
	s.inserted = append(s.inserted, result)
	return nil
}

func (s *fakeMoodStore) ListByUser(_ context.Context, _ string) ([]db.MoodResult, error) {
	return s.results, nil
}

type fakePlaylistStore struct {
	inserted  []*db.Playlist
	playlists []db.Playlist
}

func (s *fakePlaylistStore) Insert(_ context.Context, playlist *db.Playlist) error {
	playlist.ID = uuid.New()
	playlist.CreatedAt = time.Now()
	s.inserted = append(s.inserted, playlist)
	return nil
}

func (s *fakePlaylistStore) ListByUser(_ context.Context, _ string) ([]db.Playlist, error) {
	return s.playlists, nil
}

// stubHasher avoids bcrypt cost in handler tests.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (stubHasher) Verify(password, digest string) bool  { return digest == "hashed:"+password }

// stubProvider serves a fixed pool of tracks, or fails everything.
type stubProvider struct {
	pool []recommend.Track
	fail bool
}

func (p *stubProvider) TopTracks(_ context.Context, _ policy.TimeRange, _ int) ([]recommend.Track, error) {
	if p.fail {
		return nil, errors.New("provider down")
	}
	return p.pool, nil
}

func (p *stubProvider) RecommendationsBySeed(_ context.Context, _ string, _ int) ([]recommend.Track, error) {
	return p.TopTracks(nil, "", 0)
}

func (p *stubProvider) RecommendationsByFeatures(_ context.Context, _ policy.FeatureTargets, _ int) ([]recommend.Track, error) {
	return p.TopTracks(nil, "", 0)
}

func (p *stubProvider) CurrentUserID(_ context.Context) (string, error) {
	if p.fail {
		return "", errors.New("provider down")
	}
	return "spotify-user", nil
}

func (p *stubProvider) CreatePlaylist(_ context.Context, _, name, _ string) (recommend.PlaylistInfo, error) {
	if p.fail {
		return recommend.PlaylistInfo{}, errors.New("provider down")
	}
	return recommend.PlaylistInfo{ID: "pl-1", URL: "https://open.spotify.com/playlist/pl-1"}, nil
}

func (p *stubProvider) AddTracks(_ context.Context, _ string, _ []string) error {
	if p.fail {
		return errors.New("provider down")
	}
	return nil
}

// ============================================================================
// Harness
// ============================================================================

type testEnv struct {
	users     *fakeUserStore
	moods     *fakeMoodStore
	playlists *fakePlaylistStore
	provider  *stubProvider
	router    chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:     newFakeUserStore(),
		moods:     &fakeMoodStore{},
		playlists: &fakePlaylistStore{},
		provider:  &stubProvider{},
	}

	handlers := NewHandlers(
		env.users,
		env.moods,
		env.playlists,
		stubHasher{},
		auth.NewSpotifyAuth("client-id", "client-secret", "http://127.0.0.1:8000/api/spotify/callback"),
		recommend.New(),
		quiz.DefaultCatalog(),
		"http://localhost:8081",
		func(_ context.Context, _ string) recommend.Provider { return env.provider },
	)

	router := chi.NewRouter()
	router.Post("/api/auth/signup", handlers.Signup)
	router.Post("/api/auth/login", handlers.Login)
	router.Get("/api/auth/users/{email}", handlers.UserLookup)
	router.Get("/api/quiz/questions", handlers.Questions)
	router.Post("/api/quiz/calculate-mood", handlers.CalculateMood)
	router.Get("/api/quiz/mood-history/{userID}", handlers.MoodHistory)
	router.Get("/api/quiz/mood-insights/{userID}", handlers.MoodInsights)
	router.Get("/api/spotify/auth", handlers.SpotifyAuthURL)
	router.Get("/api/spotify/callback", handlers.SpotifyCallback)
	router.Post("/api/spotify/generate-playlist", handlers.GeneratePlaylist)
	router.Post("/api/spotify/create-playlist", handlers.CreatePlaylist)
	router.Get("/api/spotify/playlists/{userID}", handlers.ListPlaylists)

	env.router = router
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

// ============================================================================
// Auth
// ============================================================================

func TestSignupAndDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]string{"fullName": "Ada Lovelace", "email": "ada@example.com", "password": "secret1"}
	rec := env.do(t, http.MethodPost, "/api/auth/signup", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var user userResponse
	decodeBody(t, rec, &user)
	if user.Email != "ada@example.com" || user.ID == "" {
		t.Errorf("signup response = %+v", user)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/signup", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate signup status = %d, want 400", rec.Code)
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"fullName": "Ada", "email": "ada@example.com", "password": "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"fullName": "Ada", "email": "ada@example.com", "password": "secret1",
	})

	rec := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ada@example.com", "password": "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("login status = %d, want 200", rec.Code)
	}

	// Wrong password and unknown email produce the same response.
	wrongPass := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ada@example.com", "password": "nope123",
	})
	unknown := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ghost@example.com", "password": "secret1",
	})
	if wrongPass.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Errorf("statuses = %d/%d, want 401/401", wrongPass.Code, unknown.Code)
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Error("wrong-password and unknown-email responses differ")
	}
}

func TestUserLookup(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"fullName": "Ada", "email": "ada@example.com", "password": "secret1",
	})

	rec := env.do(t, http.MethodGet, "/api/auth/users/ada@example.com", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/auth/users/ghost@example.com", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// ============================================================================
// Quiz
// ============================================================================

func TestQuizQuestions(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/quiz/questions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Questions []quiz.Question `json:"questions"`
	}
	decodeBody(t, rec, &body)
	if len(body.Questions) != 10 {
		t.Errorf("got %d questions, want 10", len(body.Questions))
	}
}

func TestCalculateMoodPersistsAndRespondsForGuests(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/quiz/calculate-mood", map[string]any{
		"userId":  "not-a-registered-user",
		"answers": map[string]int{"0": 1, "1": 0},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even for guests: %s", rec.Code, rec.Body.String())
	}

	var body moodResultResponse
	decodeBody(t, rec, &body)
	if body.Dominant == "" {
		t.Error("dominantMood missing from response")
	}
	if len(env.moods.inserted) != 1 {
		t.Fatalf("persisted %d results, want 1", len(env.moods.inserted))
	}
	if env.moods.inserted[0].UserID != "not-a-registered-user" {
		t.Errorf("persisted userID = %q", env.moods.inserted[0].UserID)
	}
}

func TestCalculateMoodIgnoresMalformedAnswers(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/quiz/calculate-mood", map[string]any{
		"userId":  "guest",
		"answers": map[string]int{"99": 0, "abc": 1, "-4": 2},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for malformed answers", rec.Code)
	}

	var body moodResultResponse
	decodeBody(t, rec, &body)
	if body.Scores != (quiz.Vector{}) {
		t.Errorf("scores = %+v, want all zeros", body.Scores)
	}
	if body.Dominant != quiz.MoodEnergetic {
		t.Errorf("dominantMood = %q, want energetic", body.Dominant)
	}
}

func TestMoodHistoryNewestFirstPassthrough(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	env.moods.results = []db.MoodResult{
		{ID: uuid.New(), UserID: "u1", Dominant: quiz.MoodCalm, CreatedAt: now},
		{ID: uuid.New(), UserID: "u1", Dominant: quiz.MoodEnergetic, CreatedAt: now.Add(-time.Hour)},
	}

	rec := env.do(t, http.MethodGet, "/api/quiz/mood-history/u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		MoodHistory []moodHistoryEntry `json:"moodHistory"`
	}
	decodeBody(t, rec, &body)
	if len(body.MoodHistory) != 2 {
		t.Fatalf("got %d entries, want 2", len(body.MoodHistory))
	}
	if !body.MoodHistory[0].CreatedAt.After(body.MoodHistory[1].CreatedAt) {
		t.Error("history is not newest-first")
	}
}

func TestMoodHistoryEmptyForUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/quiz/mood-history/nobody", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with empty list", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"moodHistory":[]`) {
		t.Errorf("body = %s, want empty moodHistory array", rec.Body.String())
	}
}

func TestMoodInsightsShortHistory(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/quiz/mood-insights/u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"phases":[]`) {
		t.Errorf("body = %s, want empty phases array", rec.Body.String())
	}
}

// ============================================================================
// Spotify
// ============================================================================

func TestSpotifyAuthURL(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/spotify/auth", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if !strings.Contains(body["authUrl"], "accounts.spotify.com/authorize") {
		t.Errorf("authUrl = %q", body["authUrl"])
	}
}

func TestSpotifyCallbackErrorRedirectsToFrontend(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/spotify/callback?error=access_denied", nil)
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want 307", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "http://localhost:8081/spotify-error") {
		t.Errorf("Location = %q, want frontend error page", location)
	}
}

func TestGeneratePlaylist(t *testing.T) {
	env := newTestEnv(t)
	env.provider.pool = []recommend.Track{
		{ID: "t1", Name: "One", URI: "spotify:track:t1"},
		{ID: "t2", Name: "Two", URI: "spotify:track:t2"},
	}

	rec := env.do(t, http.MethodPost, "/api/spotify/generate-playlist", map[string]any{
		"userId": "u1", "mood": "calm", "accessToken": "token", "limit": 10,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Mood   string            `json:"mood"`
		Tracks []recommend.Track `json:"tracks"`
	}
	decodeBody(t, rec, &body)
	if body.Mood != "calm" || len(body.Tracks) != 2 {
		t.Errorf("mood = %q, tracks = %d, want calm/2", body.Mood, len(body.Tracks))
	}
}

func TestGeneratePlaylistDegradesWhenProviderFails(t *testing.T) {
	env := newTestEnv(t)
	env.provider.fail = true

	rec := env.do(t, http.MethodPost, "/api/spotify/generate-playlist", map[string]any{
		"userId": "u1", "mood": "energetic", "accessToken": "token",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 degraded, not a 5xx", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"tracks":[]`) {
		t.Errorf("body = %s, want empty tracks array", rec.Body.String())
	}
}

func TestGeneratePlaylistRequiresAccessToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/spotify/generate-playlist", map[string]any{
		"userId": "u1", "mood": "calm",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreatePlaylistPersistsRecord(t *testing.T) {
	env := newTestEnv(t)
	env.provider.pool = []recommend.Track{
		{ID: "t1", Name: "One", URI: "spotify:track:t1"},
	}

	rec := env.do(t, http.MethodPost, "/api/spotify/create-playlist", map[string]any{
		"userId": "u1", "mood": "calm", "accessToken": "token", "limit": 5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	decodeBody(t, rec, &body)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["playlistName"] != "Tripify – Calm Mix" {
		t.Errorf("playlistName = %v", body["playlistName"])
	}

	if len(env.playlists.inserted) != 1 {
		t.Fatalf("persisted %d playlists, want 1", len(env.playlists.inserted))
	}
	saved := env.playlists.inserted[0]
	if saved.UserID != "u1" || saved.Mood != "calm" || saved.TrackCount != 1 {
		t.Errorf("saved playlist = %+v", saved)
	}
}

func TestCreatePlaylistDegradesWhenProviderFails(t *testing.T) {
	env := newTestEnv(t)
	env.provider.fail = true

	rec := env.do(t, http.MethodPost, "/api/spotify/create-playlist", map[string]any{
		"userId": "u1", "mood": "calm", "accessToken": "token",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 degraded, not a 5xx", rec.Code)
	}

	var body map[string]any
	decodeBody(t, rec, &body)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if len(env.playlists.inserted) != 0 {
		t.Errorf("persisted %d playlists, want none on failure", len(env.playlists.inserted))
	}
}

func TestListPlaylists(t *testing.T) {
	env := newTestEnv(t)
	env.playlists.playlists = []db.Playlist{
		{ID: uuid.New(), UserID: "u1", Mood: "calm", Name: "Tripify – Calm Mix", TrackCount: 3, CreatedAt: time.Now()},
	}

	rec := env.do(t, http.MethodGet, "/api/spotify/playlists/u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Playlists []playlistEntry `json:"playlists"`
	}
	decodeBody(t, rec, &body)
	if len(body.Playlists) != 1 || body.Playlists[0].Mood != "calm" {
		t.Errorf("playlists = %+v", body.Playlists)
	}
}
