package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"watch-party-backend/internal/dto"
	catalogservice "watch-party-backend/internal/service/catalog"
)

type CatalogPaths struct {
	PublicMoviesPath   string
	PublicMoviesPrefix string
	AdminMoviesPath    string
	AdminMoviesPrefix  string
}

type CatalogEndpoints struct {
	service *catalogservice.Service
	paths   CatalogPaths
}

func NewCatalogEndpoints(service *catalogservice.Service, paths CatalogPaths) *CatalogEndpoints {
	return &CatalogEndpoints{
		service: service,
		paths:   paths,
	}
}

func catalogError(err error) error {
	switch {
	case errors.Is(err, catalogservice.ErrNotFound):
		return httpError(http.StatusNotFound, "not found", nil)
	case errors.Is(err, catalogservice.ErrValidation):
		return httpError(http.StatusBadRequest, err.Error(), nil)
	default:
		return httpError(http.StatusInternalServerError, "Internal server error", err)
	}
}

// Movies handles the public movie collection.
func (e *CatalogEndpoints) Movies(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return httpError(http.StatusMethodNotAllowed, "method not allowed", nil)
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	movies, err := e.service.Movies(r.Context(), limit)
	if err != nil {
		return catalogError(err)
	}
	return WriteJSON(w, http.StatusOK, dto.MoviesToResponse(movies))
}

// MovieResource handles public reads below /movies/: a single movie and its
// episode list.
func (e *CatalogEndpoints) MovieResource(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return httpError(http.StatusMethodNotAllowed, "method not allowed", nil)
	}

	segments := pathSegments(r.URL.Path, e.paths.PublicMoviesPrefix)
	switch {
	case len(segments) == 1:
		movie, err := e.service.Movie(r.Context(), segments[0])
		if err != nil {
			return catalogError(err)
		}
		return WriteJSON(w, http.StatusOK, dto.MovieToResponse(movie))

	case len(segments) == 2 && segments[1] == "episodes":
		episodes, err := e.service.Episodes(r.Context(), segments[0])
		if err != nil {
			return catalogError(err)
		}
		return WriteJSON(w, http.StatusOK, dto.EpisodesToResponse(episodes))

	default:
		return httpError(http.StatusNotFound, "not found", nil)
	}
}

// AdminMovies handles movie creation.
func (e *CatalogEndpoints) AdminMovies(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return httpError(http.StatusMethodNotAllowed, "method not allowed", nil)
	}

	var req dto.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httpError(http.StatusBadRequest, "invalid request body", err)
	}

	movie, err := e.service.CreateMovie(r.Context(), catalogservice.CreateMovieParams{
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		return catalogError(err)
	}
	return WriteJSON(w, http.StatusCreated, dto.MovieToResponse(movie))
}

// AdminMovieResource handles admin writes below /movies/.
func (e *CatalogEndpoints) AdminMovieResource(w http.ResponseWriter, r *http.Request) error {
	segments := pathSegments(r.URL.Path, e.paths.AdminMoviesPrefix)

	switch {
	case len(segments) == 1 && r.Method == http.MethodPut:
		var req dto.CreateMovieRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return httpError(http.StatusBadRequest, "invalid request body", err)
		}
		movie, err := e.service.UpdateMovie(r.Context(), segments[0], catalogservice.CreateMovieParams{
			Title:       req.Title,
			Description: req.Description,
			CoverURL:    req.CoverURL,
		})
		if err != nil {
			return catalogError(err)
		}
		return WriteJSON(w, http.StatusOK, dto.MovieToResponse(movie))

	case len(segments) == 1 && r.Method == http.MethodDelete:
		if err := e.service.DeleteMovie(r.Context(), segments[0]); err != nil {
			return catalogError(err)
		}
		return WriteJSON(w, http.StatusOK, struct{}{})

	case len(segments) == 2 && segments[1] == "episodes" && r.Method == http.MethodPost:
		var req dto.AddEpisodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return httpError(http.StatusBadRequest, "invalid request body", err)
		}
		episode, err := e.service.AddEpisode(r.Context(), catalogservice.AddEpisodeParams{
			MovieID:       segments[0],
			EpisodeNumber: req.EpisodeNumber,
			Title:         req.Title,
			VideoURL:      req.VideoURL,
			DurationSec:   req.DurationSec,
		})
		if err != nil {
			return catalogError(err)
		}
		return WriteJSON(w, http.StatusCreated, dto.EpisodeToResponse(episode))

	case len(segments) == 3 && segments[1] == "episodes" && r.Method == http.MethodDelete:
		episodeNumber, err := strconv.Atoi(segments[2])
		if err != nil {
			return httpError(http.StatusBadRequest, "invalid episode number", err)
		}
		if err := e.service.DeleteEpisode(r.Context(), segments[0], episodeNumber); err != nil {
			return catalogError(err)
		}
		return WriteJSON(w, http.StatusOK, struct{}{})

	default:
		return httpError(http.StatusNotFound, "not found", nil)
	}
}

func pathSegments(path, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}
