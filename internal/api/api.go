package api

import (
	"net/http"

	"watch-party-backend/internal/database"
	"watch-party-backend/internal/logger"
	"watch-party-backend/internal/party"
	"watch-party-backend/internal/queue"

	"github.com/prometheus/client_golang/prometheus"
)

type RouteRegistrar func(mux *http.ServeMux, s *APIServer)

type APIServer struct {
	listenAddr          string
	requestQueueManager *queue.RequestQueueManager
	db                  *database.Database
	partyHandler        *party.Handler
	seeder              *party.Publisher
	routeRegistrars     []RouteRegistrar
	metrics             *metrics
}

// NewAPIServer builds a server from route registrars. partyHandler is set on
// the party server, seeder on the API server; either may be nil.
func NewAPIServer(listenAddr string, rqm *queue.RequestQueueManager, db *database.Database, partyHandler *party.Handler, seeder *party.Publisher, registrars ...RouteRegistrar) *APIServer {
	return &APIServer{
		listenAddr:          listenAddr,
		requestQueueManager: rqm,
		db:                  db,
		partyHandler:        partyHandler,
		seeder:              seeder,
		routeRegistrars:     registrars,
		metrics:             newMetrics(prometheus.DefaultRegisterer, listenAddr, rqm),
	}
}

func (s *APIServer) Run() {
	mux := http.NewServeMux()

	for _, reg := range s.routeRegistrars {
		reg(mux, s)
	}

	mux.Handle("/metrics", s.metrics.metricsHandler())

	logger.L().Info().Str("listen_addr", s.listenAddr).Msg("server listening")

	if err := http.ListenAndServe(s.listenAddr, s.metrics.instrument(mux)); err != nil {
		logger.L().Error().Err(err).Msg("server stopped")
	}
}

func (s *APIServer) Database() *database.Database {
	return s.db
}

func (s *APIServer) Party() *party.Handler {
	return s.partyHandler
}

func (s *APIServer) Seeder() *party.Publisher {
	return s.seeder
}
