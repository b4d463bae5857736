package dto

import "watch-party-backend/internal/model"

type CreateMovieRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
}

type AddEpisodeRequest struct {
	EpisodeNumber int    `json:"episodeNumber"`
	Title         string `json:"title"`
	VideoURL      string `json:"videoUrl"`
	DurationSec   int    `json:"durationSec"`
}

type MovieResponse struct {
	MovieID     string `json:"movieId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CoverURL    string `json:"coverUrl,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type EpisodeResponse struct {
	MovieID       string `json:"movieId"`
	EpisodeNumber int    `json:"episodeNumber"`
	Title         string `json:"title,omitempty"`
	VideoURL      string `json:"videoUrl"`
	DurationSec   int    `json:"durationSec,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

func MovieToResponse(m model.MovieItem) MovieResponse {
	return MovieResponse{
		MovieID:     m.MovieID,
		Title:       m.Title,
		Description: m.Description,
		CoverURL:    m.CoverURL,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func EpisodeToResponse(e model.EpisodeItem) EpisodeResponse {
	return EpisodeResponse{
		MovieID:       e.MovieID,
		EpisodeNumber: e.EpisodeNumber,
		Title:         e.Title,
		VideoURL:      e.VideoURL,
		DurationSec:   e.DurationSec,
		CreatedAt:     e.CreatedAt,
	}
}

func MoviesToResponse(movies []model.MovieItem) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, MovieToResponse(m))
	}
	return out
}

func EpisodesToResponse(episodes []model.EpisodeItem) []EpisodeResponse {
	out := make([]EpisodeResponse, 0, len(episodes))
	for _, e := range episodes {
		out = append(out, EpisodeToResponse(e))
	}
	return out
}
