package router

import (
	"net/http"

	"watch-party-backend/internal/api"
	"watch-party-backend/internal/api/endpoints"
	"watch-party-backend/internal/api/middleware"
	catalogservice "watch-party-backend/internal/service/catalog"
)

// PartyRoutes registers the seed endpoint on the API server: it resolves an
// episode locator and publishes the url_change the party server replays.
func PartyRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := catalogservice.New(s.Database())
		partyEndpoints := endpoints.NewPartyEndpoints(service, s.Seeder(), nil)

		mux.HandleFunc(prefix+"/party/open", s.MakeHTTPHandleFunc(partyEndpoints.Open, middleware.ValidateUserJWT))
	}
}

// PartyWebsocketRoutes registers the socket upgrade and room listing on the
// party server.
func PartyWebsocketRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		partyEndpoints := endpoints.NewPartyEndpoints(nil, nil, s.Party())

		mux.HandleFunc(prefix+"/party", s.MakeHTTPHandleFunc(partyEndpoints.Websocket))
		mux.HandleFunc(prefix+"/party/rooms", s.MakeHTTPHandleFunc(partyEndpoints.Rooms))
	}
}
