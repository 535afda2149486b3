package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"userdesk/internal/logging"
)

const requestTimeout = 30 * time.Second

func useBaseMiddlewares(r chi.Router, logger logging.Logger) {
	// Request ID / Real IP / Recover
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(requestLogger(logger.With("component", "http")))
}

// useRequestMiddlewares applies to short-lived requests only; the websocket
// route must not inherit a deadline.
func useRequestMiddlewares(r chi.Router) {
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.NoCache)
}
