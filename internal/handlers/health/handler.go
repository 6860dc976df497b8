package health

import (
	"context"
	"net/http"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/shared/cache"
	"stay/shared/constant"
	"stay/transport/http/response"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 2 * time.Second

type Handler struct {
	db    *postgres.Connection
	cache cache.RedisCache
	otel  otel.Otel
}

func New(db *postgres.Connection, cache cache.RedisCache, otel otel.Otel) Handler {
	return Handler{
		db:    db,
		cache: cache,
		otel:  otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Check)
}

// Check reports unhealthy when either database role or the configured redis
// cannot be reached.
func (handler *Handler) Check(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := handler.ping(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("health check failed")
		response.WithUnhealthy(writer)

		return
	}

	response.WithMessage(writer, http.StatusOK, constant.ResponseMessageHealthy)
}

func (handler *Handler) ping(ctx context.Context) error {
	if err := handler.db.Write.PingContext(ctx); err != nil {
		return err
	}

	if handler.db.Read != handler.db.Write {
		if err := handler.db.Read.PingContext(ctx); err != nil {
			return err
		}
	}

	if handler.cache != nil {
		return handler.cache.Ping(ctx)
	}

	return nil
}
