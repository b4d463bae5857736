package main

import (
	"context"

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
	logger.Init("party-server", env.Get(env.LogLevel))
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

	hub := party.NewHub()
	go hub.Run()

	handler := party.NewHandler(hub, redisClient)
	handler.SubscribeSeeds(context.Background())

	server := api.NewAPIServer(
		":83",
		queueManager,
		db,
		handler,
		nil,
		router.UtilsRoutes("/api/ws/v1"),
		router.PartyWebsocketRoutes("/api/ws/v1"),
	)

	server.Run()
}
