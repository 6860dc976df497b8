//go:build wireinject
// +build wireinject

package di

import (
	"stay/config"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/infras/redis"
	"stay/internal/handlers/health"
	"stay/internal/seeder"
	"stay/shared/cache"
	"stay/transport/http"
	"stay/transport/http/middleware"
	"stay/transport/http/router"

	bookingRepository "stay/internal/domains/booking/repository"
	bookingService "stay/internal/domains/booking/service"
	listingRepository "stay/internal/domains/listing/repository"
	listingService "stay/internal/domains/listing/service"
	reviewRepository "stay/internal/domains/review/repository"
	reviewService "stay/internal/domains/review/service"
	userRepository "stay/internal/domains/user/repository"
	userService "stay/internal/domains/user/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var listingDomain = wire.NewSet(
	listingRepository.New,
	listingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var domains = wire.NewSet(
	userDomain,
	listingDomain,
	bookingDomain,
	reviewDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	health.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeSeeder() *seeder.Seeder {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		domains,
		seeder.New,
	)

	return &seeder.Seeder{}
}
