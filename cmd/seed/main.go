package main

import (
	"context"
	"stay/config"
	"stay/di"
	"stay/shared/logger"
	"time"

	"github.com/rs/zerolog/log"
)

const traceFlushTimeout = 5 * time.Second

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	seeder := di.InitializeSeeder()

	_, err := seeder.Run(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), traceFlushTimeout)
	defer cancel()

	if closeErr := seeder.Close(ctx); closeErr != nil {
		log.Error().Err(closeErr).Msg("Failed to flush traces")
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed") //nolint:gocritic
	}
}
