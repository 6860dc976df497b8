package router

import (
	"net/http"
	"stay/internal/handlers/health"
	"stay/transport/http/response"

	"github.com/go-chi/chi/v5"
)

const (
	HealthPath   = "/health"
	ListingsPath = "/listings"
)

type DomainHandlers struct {
	Health health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts the health probe and the versioned API. The listings
// namespace is reserved and serves no endpoints yet.
func (r *Router) SetupRoutes(router chi.Router) {
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		response.WithNotFound(writer)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		response.WithMethodNotAllowed(writer)
	})

	r.DomainHandlers.Health.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Route(ListingsPath, func(chi.Router) {})
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
