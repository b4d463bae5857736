package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"watch-party-backend/internal/dto"
	authservice "watch-party-backend/internal/service/auth"
)

type AuthEndpoints struct {
	service *authservice.Service
}

func NewAuthEndpoints(service *authservice.Service) *AuthEndpoints {
	return &AuthEndpoints{service: service}
}

func authError(err error) error {
	switch {
	case errors.Is(err, authservice.ErrValidation):
		return httpError(http.StatusBadRequest, "missing required fields", nil)
	case errors.Is(err, authservice.ErrEmailTaken):
		return httpError(http.StatusConflict, "email already registered", nil)
	case errors.Is(err, authservice.ErrInvalidCredentials):
		return httpError(http.StatusUnauthorized, "invalid credentials", nil)
	default:
		return httpError(http.StatusInternalServerError, "Internal server error", err)
	}
}

func (e *AuthEndpoints) Register(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return httpError(http.StatusMethodNotAllowed, "method not allowed", nil)
	}

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httpError(http.StatusBadRequest, "invalid request body", err)
	}

	result, err := e.service.Register(r.Context(), authservice.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return authError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.AuthResponse{
		User:        dto.UserToResponse(result.User),
		AccessToken: result.Tokens.AccessToken,
	})
}

func (e *AuthEndpoints) Login(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return httpError(http.StatusMethodNotAllowed, "method not allowed", nil)
	}

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httpError(http.StatusBadRequest, "invalid request body", err)
	}

	result, err := e.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return authError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.AuthResponse{
		User:        dto.UserToResponse(result.User),
		AccessToken: result.Tokens.AccessToken,
	})
}
