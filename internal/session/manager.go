package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"userdesk/internal/app/form"
	"userdesk/internal/config"
	"userdesk/internal/logging"
)

// Manager ties the session cookie to the controller registry.
type Manager struct {
	tokens     *Tokens
	registry   *Registry
	cookieName string
	secure     bool
	ttl        time.Duration
	logger     logging.Logger
}

func NewManager(cfg config.SessionConfig, registry *Registry, logger logging.Logger) (*Manager, error) {
	tokens, err := NewTokens(cfg.Secret, cfg.TTL)
	if err != nil {
		return nil, err
	}
	return &Manager{
		tokens:     tokens,
		registry:   registry,
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
		ttl:        tokens.ttl,
		logger:     logger.With("component", "session_manager"),
	}, nil
}

// SessionID returns the id carried by the request cookie.
func (m *Manager) SessionID(r *http.Request) (string, error) {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return "", err
	}
	return m.tokens.Parse(c.Value)
}

// Resolve returns the request's session id and controller. A missing or
// invalid cookie starts a new session and sets its cookie on w.
func (m *Manager) Resolve(w http.ResponseWriter, r *http.Request) (string, *form.Controller, error) {
	id, err := m.SessionID(r)
	if err == nil {
		return id, m.registry.Get(id), nil
	}
	if !errors.Is(err, http.ErrNoCookie) {
		m.logger.Warn("discarding invalid session cookie", "error", err)
	}

	id = uuid.NewString()
	tok, err := m.tokens.Issue(id)
	if err != nil {
		return "", nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, m.registry.Get(id), nil
}

// Lookup returns the controller of an existing session without creating one.
func (m *Manager) Lookup(r *http.Request) (string, *form.Controller, bool) {
	id, err := m.SessionID(r)
	if err != nil {
		return "", nil, false
	}
	ctrl, ok := m.registry.Lookup(id)
	return id, ctrl, ok
}
