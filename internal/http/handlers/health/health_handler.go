package health

import (
	"context"
	"net/http"
	"time"

	"userdesk/internal/http/responses"
	"userdesk/internal/logging"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *cache.RedisClient.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	redis  Pinger
	logger logging.Logger
}

// NewHandler builds the health handler. redis may be nil when Redis is disabled.
func NewHandler(redis Pinger, logger logging.Logger) *Handler {
	return &Handler{
		redis:  redis,
		logger: logger.With("component", "health_http_handler"),
	}
}

// Check GET /healthz
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok"}
	if h.redis == nil {
		responses.WriteJSON(w, http.StatusOK, body)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.redis.Ping(ctx); err != nil {
		h.logger.Warn("redis ping failed", "error", err)
		body["status"] = "degraded"
		body["redis"] = "down"
		responses.WriteJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	body["redis"] = "ok"
	responses.WriteJSON(w, http.StatusOK, body)
}
