package main

import (
	"os"
	"time"

	"gamehub-backend/internal/app"
	"gamehub-backend/internal/config"
	"gamehub-backend/internal/database"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid REDIS_URL")
		}
		rdb = redis.NewClient(opt)
	} else {
		log.Warn().Msg("REDIS_URL not set, sessions and traffic counters disabled")
	}

	srv := app.New(app.Options{DB: db, Redis: rdb, Config: cfg})

	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting server")
	if err := srv.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
