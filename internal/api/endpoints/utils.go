package endpoints

import (
	"net/http"

	"watch-party-backend/internal/api"
)

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	return api.WriteJSON(w, status, v)
}

func httpError(status int, message string, cause error) *api.HTTPError {
	return &api.HTTPError{
		StatusCode: status,
		Message:    message,
		ErrorLog:   cause,
	}
}
