package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"watch-party-backend/internal/database"
	"watch-party-backend/internal/model"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("catalog: validation")

const defaultListLimit = 20

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

type CreateMovieParams struct {
	Title       string
	Description string
	CoverURL    string
}

type AddEpisodeParams struct {
	MovieID       string
	EpisodeNumber int
	Title         string
	VideoURL      string
	DurationSec   int
}

func (s *Service) Movie(ctx context.Context, movieID string) (model.MovieItem, error) {
	if movieID == "" {
		return model.MovieItem{}, fmt.Errorf("%w: movie id required", ErrValidation)
	}
	return s.repo.GetMovie(ctx, movieID)
}

func (s *Service) Movies(ctx context.Context, limit int) ([]model.MovieItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.ListMovies(ctx, limit)
}

func (s *Service) CreateMovie(ctx context.Context, params CreateMovieParams) (model.MovieItem, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return model.MovieItem{}, fmt.Errorf("%w: title required", ErrValidation)
	}

	movie := model.MovieItem{
		MovieID:     uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(params.Description),
		CoverURL:    strings.TrimSpace(params.CoverURL),
		Status:      "published",
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.PutMovie(ctx, movie); err != nil {
		return model.MovieItem{}, err
	}
	return movie, nil
}

// UpdateMovie applies a partial update; empty request fields keep their stored
// values. The existence check matters because a Dynamo update on a missing key
// would otherwise create a half-formed movie.
func (s *Service) UpdateMovie(ctx context.Context, movieID string, params CreateMovieParams) (model.MovieItem, error) {
	if _, err := s.Movie(ctx, movieID); err != nil {
		return model.MovieItem{}, err
	}

	return s.repo.UpdateMovie(ctx, movieID, MovieUpdates{
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		CoverURL:    strings.TrimSpace(params.CoverURL),
		UpdatedAt:   s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Service) DeleteMovie(ctx context.Context, movieID string) error {
	if movieID == "" {
		return fmt.Errorf("%w: movie id required", ErrValidation)
	}
	return s.repo.DeleteMovie(ctx, movieID)
}

// Episodes returns a movie's episodes ordered by episode number.
func (s *Service) Episodes(ctx context.Context, movieID string) ([]model.EpisodeItem, error) {
	if movieID == "" {
		return nil, fmt.Errorf("%w: movie id required", ErrValidation)
	}

	episodes, err := s.repo.ListEpisodes(ctx, movieID)
	if err != nil {
		return nil, err
	}
	sort.Slice(episodes, func(i, j int) bool {
		return episodes[i].EpisodeNumber < episodes[j].EpisodeNumber
	})
	return episodes, nil
}

func (s *Service) AddEpisode(ctx context.Context, params AddEpisodeParams) (model.EpisodeItem, error) {
	if params.MovieID == "" {
		return model.EpisodeItem{}, fmt.Errorf("%w: movie id required", ErrValidation)
	}
	if params.EpisodeNumber <= 0 {
		return model.EpisodeItem{}, fmt.Errorf("%w: episode number must be positive", ErrValidation)
	}
	if strings.TrimSpace(params.VideoURL) == "" {
		return model.EpisodeItem{}, fmt.Errorf("%w: video url required", ErrValidation)
	}

	if _, err := s.repo.GetMovie(ctx, params.MovieID); err != nil {
		return model.EpisodeItem{}, err
	}

	episode := model.EpisodeItem{
		MovieID:       params.MovieID,
		EpisodeNumber: params.EpisodeNumber,
		Title:         strings.TrimSpace(params.Title),
		VideoURL:      strings.TrimSpace(params.VideoURL),
		DurationSec:   params.DurationSec,
		CreatedAt:     s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.PutEpisode(ctx, episode); err != nil {
		return model.EpisodeItem{}, err
	}
	return episode, nil
}

func (s *Service) DeleteEpisode(ctx context.Context, movieID string, episodeNumber int) error {
	if movieID == "" || episodeNumber <= 0 {
		return fmt.Errorf("%w: movie id and episode number required", ErrValidation)
	}
	return s.repo.DeleteEpisode(ctx, movieID, episodeNumber)
}

// EpisodeURL resolves the video locator a watch party is seeded with.
// episodeNumber 0 means the first episode.
func (s *Service) EpisodeURL(ctx context.Context, movieID string, episodeNumber int) (string, error) {
	if movieID == "" {
		return "", fmt.Errorf("%w: movie id required", ErrValidation)
	}

	if episodeNumber <= 0 {
		episodes, err := s.Episodes(ctx, movieID)
		if err != nil {
			return "", err
		}
		if len(episodes) == 0 {
			return "", ErrNotFound
		}
		return episodes[0].VideoURL, nil
	}

	episode, err := s.repo.GetEpisode(ctx, movieID, episodeNumber)
	if err != nil {
		return "", err
	}
	return episode.VideoURL, nil
}
