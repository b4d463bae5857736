package endpoints

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"watch-party-backend/internal/dto"
	"watch-party-backend/internal/party"
	catalogservice "watch-party-backend/internal/service/catalog"

	"github.com/google/uuid"
)

// Seeder pushes the initial url_change for a room; party.Publisher in
// production.
type Seeder interface {
	SeedURLChange(ctx context.Context, roomID, url string) error
}

type PartyEndpoints struct {
	catalog *catalogservice.Service
	seeder  Seeder
	handler *party.Handler
}

func NewPartyEndpoints(catalog *catalogservice.Service, seeder Seeder, handler *party.Handler) *PartyEndpoints {
	return &PartyEndpoints{
		catalog: catalog,
		seeder:  seeder,
		handler: handler,
	}
}

// Open resolves a movie/episode to its video locator and seeds the room with
// it. A failed lookup is a 404 so the host learns immediately instead of
// guests waiting on a room that never loads.
func (e *PartyEndpoints) Open(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return httpError(http.StatusMethodNotAllowed, "method not allowed", nil)
	}

	var req dto.OpenPartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httpError(http.StatusBadRequest, "invalid request body", err)
	}
	if req.MovieID == "" {
		return httpError(http.StatusBadRequest, "movieId required", nil)
	}

	url, err := e.catalog.EpisodeURL(r.Context(), req.MovieID, req.Episode)
	if err != nil {
		switch {
		case errors.Is(err, catalogservice.ErrNotFound):
			return httpError(http.StatusNotFound, "movie or episode not found", nil)
		case errors.Is(err, catalogservice.ErrValidation):
			return httpError(http.StatusBadRequest, err.Error(), nil)
		default:
			return httpError(http.StatusInternalServerError, "Internal server error", err)
		}
	}

	roomID := req.RoomID
	if roomID == "" {
		roomID = uuid.NewString()
	}

	if err := e.seeder.SeedURLChange(r.Context(), roomID, url); err != nil {
		return httpError(http.StatusInternalServerError, "failed to open party", err)
	}

	return WriteJSON(w, http.StatusOK, dto.OpenPartyResponse{
		RoomID:   roomID,
		VideoURL: url,
	})
}

// Rooms lists the rooms known to this party server.
func (e *PartyEndpoints) Rooms(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return httpError(http.StatusMethodNotAllowed, "method not allowed", nil)
	}
	return WriteJSON(w, http.StatusOK, e.handler.Hub().Rooms())
}

// Websocket upgrades a viewer connection into the hub.
func (e *PartyEndpoints) Websocket(w http.ResponseWriter, r *http.Request) error {
	return e.handler.ServeWS(w, r)
}
