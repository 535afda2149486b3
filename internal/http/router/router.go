package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"userdesk/internal/http/handlers/console"
	"userdesk/internal/http/handlers/health"
	"userdesk/internal/http/responses"
	"userdesk/internal/logging"
)

func NewRouter(
	logger logging.Logger,
	healthHandler *health.Handler,
	consoleHandler *console.Handler,
) chi.Router {
	r := chi.NewRouter()

	useBaseMiddlewares(r, logger)

	r.Group(func(r chi.Router) {
		useRequestMiddlewares(r)

		r.Get("/healthz", healthHandler.Check)

		r.Get("/", consoleHandler.Page)
		r.Get("/state", consoleHandler.State)
		r.Route("/forms", func(r chi.Router) {
			r.Post("/create", consoleHandler.Create)
			r.Post("/search", consoleHandler.Search)
		})
	})

	r.Get("/ws", consoleHandler.Stream)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteNotFound(w, r)
	})

	return r
}
