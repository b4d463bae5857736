package router

import (
	"net/http"
	"strings"

	"watch-party-backend/internal/api"
	"watch-party-backend/internal/api/endpoints"
	"watch-party-backend/internal/api/middleware"
	catalogservice "watch-party-backend/internal/service/catalog"
)

func CatalogPublicRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := catalogservice.New(s.Database())
		paths := endpoints.CatalogPaths{
			PublicMoviesPath:   strings.TrimRight(prefix, "/") + "/movies",
			PublicMoviesPrefix: strings.TrimRight(prefix, "/") + "/movies/",
		}
		catalogEndpoints := endpoints.NewCatalogEndpoints(service, paths)

		mux.HandleFunc(paths.PublicMoviesPath, s.MakeHTTPHandleFunc(catalogEndpoints.Movies))
		mux.HandleFunc(paths.PublicMoviesPrefix, s.MakeHTTPHandleFunc(catalogEndpoints.MovieResource))
	}
}

func CatalogAdminRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := catalogservice.New(s.Database())
		paths := endpoints.CatalogPaths{
			AdminMoviesPath:   strings.TrimRight(prefix, "/") + "/movies",
			AdminMoviesPrefix: strings.TrimRight(prefix, "/") + "/movies/",
		}
		catalogEndpoints := endpoints.NewCatalogEndpoints(service, paths)

		mux.HandleFunc(paths.AdminMoviesPath, s.MakeHTTPHandleFunc(catalogEndpoints.AdminMovies, middleware.ValidateAdminJWT))
		mux.HandleFunc(paths.AdminMoviesPrefix, s.MakeHTTPHandleFunc(catalogEndpoints.AdminMovieResource, middleware.ValidateAdminJWT))
	}
}
