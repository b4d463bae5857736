package router

import (
	"net/http"

	"watch-party-backend/internal/api"
	"watch-party-backend/internal/api/endpoints"
	authservice "watch-party-backend/internal/service/auth"
)

func AuthRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := authservice.New(s.Database())
		authEndpoints := endpoints.NewAuthEndpoints(service)

		mux.HandleFunc(prefix+"/auth/register", s.MakeHTTPHandleFunc(authEndpoints.Register))
		mux.HandleFunc(prefix+"/auth/login", s.MakeHTTPHandleFunc(authEndpoints.Login))
	}
}
