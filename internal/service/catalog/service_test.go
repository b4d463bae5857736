package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"watch-party-backend/internal/model"
)

type fakeRepository struct {
	movies   map[string]model.MovieItem
	episodes map[string]model.EpisodeItem
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		movies:   make(map[string]model.MovieItem),
		episodes: make(map[string]model.EpisodeItem),
	}
}

func (f *fakeRepository) GetMovie(_ context.Context, movieID string) (model.MovieItem, error) {
	movie, ok := f.movies[movieID]
	if !ok {
		return model.MovieItem{}, ErrNotFound
	}
	return movie, nil
}

func (f *fakeRepository) ListMovies(_ context.Context, limit int) ([]model.MovieItem, error) {
	out := make([]model.MovieItem, 0, len(f.movies))
	for _, movie := range f.movies {
		if len(out) == limit {
			break
		}
		out = append(out, movie)
	}
	return out, nil
}

func (f *fakeRepository) PutMovie(_ context.Context, movie model.MovieItem) error {
	f.movies[movie.MovieID] = movie
	return nil
}

func (f *fakeRepository) UpdateMovie(_ context.Context, movieID string, updates MovieUpdates) (model.MovieItem, error) {
	movie, ok := f.movies[movieID]
	if !ok {
		return model.MovieItem{}, ErrNotFound
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

func (f *fakeRepository) DeleteMovie(_ context.Context, movieID string) error {
	delete(f.movies, movieID)
	return nil
}

func (f *fakeRepository) GetEpisode(_ context.Context, movieID string, episodeNumber int) (model.EpisodeItem, error) {
	episode, ok := f.episodes[model.EpisodePK(movieID, episodeNumber)]
	if !ok {
		return model.EpisodeItem{}, ErrNotFound
	}
	return episode, nil
}

func (f *fakeRepository) ListEpisodes(_ context.Context, movieID string) ([]model.EpisodeItem, error) {
	var out []model.EpisodeItem
	for _, episode := range f.episodes {
		if episode.MovieID == movieID {
			out = append(out, episode)
		}
	}
	return out, nil
}

func (f *fakeRepository) PutEpisode(_ context.Context, episode model.EpisodeItem) error {
	f.episodes[model.EpisodePK(episode.MovieID, episode.EpisodeNumber)] = episode
	return nil
}

func (f *fakeRepository) DeleteEpisode(_ context.Context, movieID string, episodeNumber int) error {
	delete(f.episodes, model.EpisodePK(movieID, episodeNumber))
	return nil
}

func testService(repo Repository) *Service {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewWithRepository(repo, func() time.Time { return fixed })
}

func TestCreateMovie(t *testing.T) {
	repo := newFakeRepository()
	svc := testService(repo)

	movie, err := svc.CreateMovie(context.Background(), CreateMovieParams{
		Title:       "  Arrival  ",
		Description: "first contact",
	})
	if err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}
	if movie.MovieID == "" {
		t.Error("movie id not assigned")
	}
	if movie.Title != "Arrival" {
		t.Errorf("title = %q, want trimmed", movie.Title)
	}
	if movie.Status != "published" {
		t.Errorf("status = %q", movie.Status)
	}
	if movie.CreatedAt != "2025-03-01T12:00:00Z" {
		t.Errorf("createdAt = %q", movie.CreatedAt)
	}
	if _, ok := repo.movies[movie.MovieID]; !ok {
		t.Error("movie not persisted")
	}
}

func TestCreateMovieRequiresTitle(t *testing.T) {
	svc := testService(newFakeRepository())

	_, err := svc.CreateMovie(context.Background(), CreateMovieParams{Title: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateMoviePartial(t *testing.T) {
	repo := newFakeRepository()
	repo.movies["m1"] = model.MovieItem{MovieID: "m1", Title: "Old", Description: "keep me"}
	svc := testService(repo)

	movie, err := svc.UpdateMovie(context.Background(), "m1", CreateMovieParams{Title: "New"})
	if err != nil {
		t.Fatalf("UpdateMovie: %v", err)
	}
	if movie.Title != "New" {
		t.Errorf("title = %q", movie.Title)
	}
	if movie.Description != "keep me" {
		t.Errorf("description overwritten: %q", movie.Description)
	}
	if movie.UpdatedAt != "2025-03-01T12:00:00Z" {
		t.Errorf("updatedAt = %q", movie.UpdatedAt)
	}
}

func TestUpdateMovieMissing(t *testing.T) {
	svc := testService(newFakeRepository())

	if _, err := svc.UpdateMovie(context.Background(), "missing", CreateMovieParams{Title: "New"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAddEpisodeRequiresMovie(t *testing.T) {
	svc := testService(newFakeRepository())

	_, err := svc.AddEpisode(context.Background(), AddEpisodeParams{
		MovieID:       "missing",
		EpisodeNumber: 1,
		VideoURL:      "https://cdn.example.com/ep1.mp4",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAddEpisodeValidation(t *testing.T) {
	repo := newFakeRepository()
	repo.movies["m1"] = model.MovieItem{MovieID: "m1", Title: "Show"}
	svc := testService(repo)

	cases := []AddEpisodeParams{
		{MovieID: "", EpisodeNumber: 1, VideoURL: "https://x/1.mp4"},
		{MovieID: "m1", EpisodeNumber: 0, VideoURL: "https://x/1.mp4"},
		{MovieID: "m1", EpisodeNumber: 1, VideoURL: "   "},
	}
	for i, params := range cases {
		if _, err := svc.AddEpisode(context.Background(), params); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: err = %v, want ErrValidation", i, err)
		}
	}
}

func TestEpisodesSorted(t *testing.T) {
	repo := newFakeRepository()
	repo.movies["m1"] = model.MovieItem{MovieID: "m1", Title: "Show"}
	repo.episodes[model.EpisodePK("m1", 3)] = model.EpisodeItem{MovieID: "m1", EpisodeNumber: 3}
	repo.episodes[model.EpisodePK("m1", 1)] = model.EpisodeItem{MovieID: "m1", EpisodeNumber: 1}
	repo.episodes[model.EpisodePK("m1", 2)] = model.EpisodeItem{MovieID: "m1", EpisodeNumber: 2}
	svc := testService(repo)

	episodes, err := svc.Episodes(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	for i, episode := range episodes {
		if episode.EpisodeNumber != i+1 {
			t.Fatalf("episode %d has number %d", i, episode.EpisodeNumber)
		}
	}
}

func TestEpisodeURL(t *testing.T) {
	repo := newFakeRepository()
	repo.movies["m1"] = model.MovieItem{MovieID: "m1", Title: "Show"}
	repo.episodes[model.EpisodePK("m1", 1)] = model.EpisodeItem{MovieID: "m1", EpisodeNumber: 1, VideoURL: "https://cdn.example.com/ep1.mp4"}
	repo.episodes[model.EpisodePK("m1", 2)] = model.EpisodeItem{MovieID: "m1", EpisodeNumber: 2, VideoURL: "https://cdn.example.com/ep2.mp4"}
	svc := testService(repo)

	url, err := svc.EpisodeURL(context.Background(), "m1", 0)
	if err != nil {
		t.Fatalf("EpisodeURL default: %v", err)
	}
	if url != "https://cdn.example.com/ep1.mp4" {
		t.Errorf("default episode url = %q, want first episode", url)
	}

	url, err = svc.EpisodeURL(context.Background(), "m1", 2)
	if err != nil {
		t.Fatalf("EpisodeURL explicit: %v", err)
	}
	if url != "https://cdn.example.com/ep2.mp4" {
		t.Errorf("episode 2 url = %q", url)
	}

	if _, err := svc.EpisodeURL(context.Background(), "m1", 9); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing episode err = %v, want ErrNotFound", err)
	}
}

func TestEpisodeURLNoEpisodes(t *testing.T) {
	repo := newFakeRepository()
	repo.movies["m1"] = model.MovieItem{MovieID: "m1", Title: "Show"}
	svc := testService(repo)

	if _, err := svc.EpisodeURL(context.Background(), "m1", 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
