package main

import (
	"watch-party-backend/internal/api"
	"watch-party-backend/internal/api/router"
	"watch-party-backend/internal/database"
	"watch-party-backend/internal/env"
	"watch-party-backend/internal/logger"
	"watch-party-backend/internal/party"
	"watch-party-backend/internal/queue"

	"github.com/go-redis/redis/v8"
)

func main() {
	logger.Init("api-server", env.Get(env.LogLevel))
	if err := env.Validate(); err != nil {
		logger.L().Fatal().Err(err).Msg("invalid configuration")
	}

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("db init failed")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     env.Get(env.PartyRedisURL),
		Password: env.Get(env.PartyRedisPass),
		DB:       0,
	})

	server := api.NewAPIServer(
		":82",
		queueManager,
		db,
		nil,
		party.NewPublisher(redisClient),
		router.UtilsRoutes("/api/v1"),
		router.AuthRoutes("/api/v1"),
		router.CatalogPublicRoutes("/api/v1"),
		router.CatalogAdminRoutes("/api/v1/admin"),
		router.PartyRoutes("/api/v1"),
	)

	server.Run()
}
