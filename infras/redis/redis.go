package redis

import (
	"context"
	"net"
	"stay/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// New connects to the primary Redis. It returns nil when no host is
// configured so callers can run without a rate limiter.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary
	if primary.Host == "" {
		log.Warn().Msg("Redis host not configured, continuing without cache")

		return nil
	}

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client
}
