package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"watch-party-backend/internal/api"
	"watch-party-backend/internal/dto"
	"watch-party-backend/internal/model"
	"watch-party-backend/internal/queue"
	authservice "watch-party-backend/internal/service/auth"
	catalogservice "watch-party-backend/internal/service/catalog"
)

// Each test server needs its own listen address; the Prometheus collectors
// are registered globally keyed by it.
func newTestServer(t *testing.T) *api.APIServer {
	t.Helper()

	rqm := queue.NewRequestQueueManager(8, 2)
	t.Cleanup(rqm.Shutdown)
	return api.NewAPIServer("test-"+t.Name(), rqm, nil, nil, nil)
}

type fakeCatalogRepo struct {
	movies   map[string]model.MovieItem
	episodes map[string]model.EpisodeItem
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		movies:   make(map[string]model.MovieItem),
		episodes: make(map[string]model.EpisodeItem),
	}
}

func (f *fakeCatalogRepo) GetMovie(_ context.Context, movieID string) (model.MovieItem, error) {
	movie, ok := f.movies[movieID]
	if !ok {
		return model.MovieItem{}, catalogservice.ErrNotFound
	}
	return movie, nil
}

func (f *fakeCatalogRepo) ListMovies(_ context.Context, limit int) ([]model.MovieItem, error) {
	out := make([]model.MovieItem, 0, len(f.movies))
	for _, movie := range f.movies {
		if len(out) == limit {
			break
		}
		out = append(out, movie)
	}
	return out, nil
}

func (f *fakeCatalogRepo) PutMovie(_ context.Context, movie model.MovieItem) error {
	f.movies[movie.MovieID] = movie
	return nil
}

func (f *fakeCatalogRepo) UpdateMovie(_ context.Context, movieID string, updates catalogservice.MovieUpdates) (model.MovieItem, error) {
	movie, ok := f.movies[movieID]
	if !ok {
		return model.MovieItem{}, catalogservice.ErrNotFound
	}
	if updates.Title != "" {
		movie.Title = updates.Title
	}
	if updates.Description != "" {
		movie.Description = updates.Description
	}
	if updates.CoverURL != "" {
		movie.CoverURL = updates.CoverURL
	}
	movie.UpdatedAt = updates.UpdatedAt
	f.movies[movieID] = movie
	return movie, nil
}

func (f *fakeCatalogRepo) DeleteMovie(_ context.Context, movieID string) error {
	delete(f.movies, movieID)
	return nil
}

func (f *fakeCatalogRepo) GetEpisode(_ context.Context, movieID string, episodeNumber int) (model.EpisodeItem, error) {
	episode, ok := f.episodes[model.EpisodePK(movieID, episodeNumber)]
	if !ok {
		return model.EpisodeItem{}, catalogservice.ErrNotFound
	}
	return episode, nil
}

func (f *fakeCatalogRepo) ListEpisodes(_ context.Context, movieID string) ([]model.EpisodeItem, error) {
	var out []model.EpisodeItem
	for _, episode := range f.episodes {
		if episode.MovieID == movieID {
			out = append(out, episode)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) PutEpisode(_ context.Context, episode model.EpisodeItem) error {
	f.episodes[model.EpisodePK(episode.MovieID, episode.EpisodeNumber)] = episode
	return nil
}

func (f *fakeCatalogRepo) DeleteEpisode(_ context.Context, movieID string, episodeNumber int) error {
	delete(f.episodes, model.EpisodePK(movieID, episodeNumber))
	return nil
}

type fakeAuthRepo struct {
	byEmail map[string]model.UserItem
}

func (f *fakeAuthRepo) CreateUser(_ context.Context, user model.UserItem) error {
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeAuthRepo) FindUserByEmail(_ context.Context, email string) (model.UserItem, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return model.UserItem{}, authservice.ErrNotFound
	}
	return user, nil
}

type seededCall struct {
	roomID string
	url    string
}

type fakeSeeder struct {
	calls []seededCall
	err   error
}

func (f *fakeSeeder) SeedURLChange(_ context.Context, roomID, url string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, seededCall{roomID: roomID, url: url})
	return nil
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func testCatalogPaths() CatalogPaths {
	return CatalogPaths{
		PublicMoviesPath:   "/api/v1/movies",
		PublicMoviesPrefix: "/api/v1/movies/",
		AdminMoviesPath:    "/api/v1/admin/movies",
		AdminMoviesPrefix:  "/api/v1/admin/movies/",
	}
}

func TestMoviesList(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.movies["m1"] = model.MovieItem{MovieID: "m1", Title: "Arrival", Status: "published"}
	svc := catalogservice.NewWithRepository(repo, nil)
	e := NewCatalogEndpoints(svc, testCatalogPaths())
	s := newTestServer(t)

	rec := doJSON(t, s.MakeHTTPHandleFunc(e.Movies), http.MethodGet, "/api/v1/movies", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var movies []dto.MovieResponse
	decodeBody(t, rec, &movies)
	if len(movies) != 1 || movies[0].Title != "Arrival" {
		t.Errorf("movies = %+v", movies)
	}

	rec = doJSON(t, s.MakeHTTPHandleFunc(e.Movies), http.MethodDelete, "/api/v1/movies", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestMovieResource(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.movies["m1"] = model.MovieItem{MovieID: "m1", Title: "Arrival"}
	repo.episodes[model.EpisodePK("m1", 1)] = model.EpisodeItem{MovieID: "m1", EpisodeNumber: 1, VideoURL: "https://cdn.example.com/ep1.mp4"}
	svc := catalogservice.NewWithRepository(repo, nil)
	e := NewCatalogEndpoints(svc, testCatalogPaths())
	s := newTestServer(t)
	handler := s.MakeHTTPHandleFunc(e.MovieResource)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/movies/m1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var movie dto.MovieResponse
	decodeBody(t, rec, &movie)
	if movie.MovieID != "m1" {
		t.Errorf("movie = %+v", movie)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/movies/m1/episodes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("episodes status = %d", rec.Code)
	}
	var episodes []dto.EpisodeResponse
	decodeBody(t, rec, &episodes)
	if len(episodes) != 1 || episodes[0].VideoURL != "https://cdn.example.com/ep1.mp4" {
		t.Errorf("episodes = %+v", episodes)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/movies/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing movie status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/movies/m1/cast/extra", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown subresource status = %d, want 404", rec.Code)
	}
}

func TestAdminMovieLifecycle(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := catalogservice.NewWithRepository(repo, nil)
	e := NewCatalogEndpoints(svc, testCatalogPaths())
	s := newTestServer(t)
	create := s.MakeHTTPHandleFunc(e.AdminMovies)
	resource := s.MakeHTTPHandleFunc(e.AdminMovieResource)

	rec := doJSON(t, create, http.MethodPost, "/api/v1/admin/movies", dto.CreateMovieRequest{Title: "Arrival"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body)
	}
	var movie dto.MovieResponse
	decodeBody(t, rec, &movie)
	if movie.MovieID == "" {
		t.Fatal("no movie id assigned")
	}

	rec = doJSON(t, create, http.MethodPost, "/api/v1/admin/movies", dto.CreateMovieRequest{Title: "  "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank title status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, resource, http.MethodPut, "/api/v1/admin/movies/"+movie.MovieID, dto.CreateMovieRequest{Title: "Arrival (4K)"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, resource, http.MethodPost, "/api/v1/admin/movies/"+movie.MovieID+"/episodes", dto.AddEpisodeRequest{
		EpisodeNumber: 1,
		VideoURL:      "https://cdn.example.com/ep1.mp4",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add episode status = %d, body = %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, resource, http.MethodDelete, "/api/v1/admin/movies/"+movie.MovieID+"/episodes/nope", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad episode number status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, resource, http.MethodDelete, "/api/v1/admin/movies/"+movie.MovieID+"/episodes/1", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete episode status = %d", rec.Code)
	}

	rec = doJSON(t, resource, http.MethodDelete, "/api/v1/admin/movies/"+movie.MovieID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete movie status = %d", rec.Code)
	}
	if len(repo.movies) != 0 {
		t.Errorf("movie not deleted: %+v", repo.movies)
	}
}

func TestPartyOpen(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.movies["m1"] = model.MovieItem{MovieID: "m1", Title: "Arrival"}
	repo.episodes[model.EpisodePK("m1", 1)] = model.EpisodeItem{MovieID: "m1", EpisodeNumber: 1, VideoURL: "https://cdn.example.com/ep1.mp4"}
	svc := catalogservice.NewWithRepository(repo, nil)
	seeder := &fakeSeeder{}
	e := NewPartyEndpoints(svc, seeder, nil)
	s := newTestServer(t)
	handler := s.MakeHTTPHandleFunc(e.Open)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/party/open", dto.OpenPartyRequest{MovieID: "m1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp dto.OpenPartyResponse
	decodeBody(t, rec, &resp)
	if resp.RoomID == "" {
		t.Error("no room id generated")
	}
	if resp.VideoURL != "https://cdn.example.com/ep1.mp4" {
		t.Errorf("videoUrl = %q", resp.VideoURL)
	}
	if len(seeder.calls) != 1 || seeder.calls[0].roomID != resp.RoomID || seeder.calls[0].url != resp.VideoURL {
		t.Errorf("seeder calls = %+v", seeder.calls)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/party/open", dto.OpenPartyRequest{MovieID: "m1", RoomID: "friday-night"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	decodeBody(t, rec, &resp)
	if resp.RoomID != "friday-night" {
		t.Errorf("roomId = %q, want caller's", resp.RoomID)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/party/open", dto.OpenPartyRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing movieId status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/party/open", dto.OpenPartyRequest{MovieID: "missing"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown movie status = %d, want 404", rec.Code)
	}
}

func TestAuthEndpoints(t *testing.T) {
	t.Setenv("USER_SECRET", "test-user-secret")
	t.Setenv("ADMIN_SECRET", "test-admin-secret")

	repo := &fakeAuthRepo{byEmail: make(map[string]model.UserItem)}
	svc := authservice.NewWithRepository(repo, func() time.Time {
		return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	})
	e := NewAuthEndpoints(svc)
	s := newTestServer(t)
	register := s.MakeHTTPHandleFunc(e.Register)
	login := s.MakeHTTPHandleFunc(e.Login)

	rec := doJSON(t, register, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Email:    "viewer@example.com",
		Password: "hunter22",
		Name:     "Viewer",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body)
	}
	var auth dto.AuthResponse
	decodeBody(t, rec, &auth)
	if auth.AccessToken == "" {
		t.Error("no access token in register response")
	}
	if strings.Contains(rec.Body.String(), "passwordHash") {
		t.Error("password hash leaked in response")
	}

	rec = doJSON(t, register, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Email:    "viewer@example.com",
		Password: "other",
		Name:     "Dup",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}

	rec = doJSON(t, login, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
		Email:    "viewer@example.com",
		Password: "hunter22",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, login, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
		Email:    "viewer@example.com",
		Password: "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", rec.Code)
	}
}
