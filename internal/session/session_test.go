package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"userdesk/internal/app/form"
	"userdesk/internal/config"
	"userdesk/internal/logging"
)

func newTestRegistry(t *testing.T) (*Registry, *int) {
	t.Helper()
	created := 0
	r := NewRegistry(func(id string) *form.Controller {
		created++
		return form.NewController(nil, form.Options{Key: id})
	}, time.Hour)
	t.Cleanup(r.Close)
	return r, &created
}

func TestTokens_RoundTrip(t *testing.T) {
	tokens, err := NewTokens("s3cret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}

	tok, err := tokens.Issue("session-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	id, err := tokens.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if id != "session-1" {
		t.Errorf("expected session-1, got %s", id)
	}
}

func TestTokens_RejectsForeignKey(t *testing.T) {
	issuer, _ := NewTokens("one", time.Hour)
	verifier, _ := NewTokens("two", time.Hour)

	tok, err := issuer.Issue("session-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokens_Expired(t *testing.T) {
	tokens, _ := NewTokens("s3cret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	tokens.now = func() time.Time { return issuedAt }
	tok, err := tokens.Issue("session-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tokens.now = time.Now
	if _, err := tokens.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}
}

func TestNewTokens_EmptySecret(t *testing.T) {
	if _, err := NewTokens("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestRegistry_GetCreatesOnce(t *testing.T) {
	r, created := newTestRegistry(t)

	a := r.Get("s1")
	b := r.Get("s1")
	if a != b {
		t.Error("expected the same controller for the same session")
	}
	if r.Get("s2") == a {
		t.Error("expected a distinct controller per session")
	}
	if *created != 2 {
		t.Errorf("expected 2 controllers created, got %d", *created)
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("expected Lookup to not create sessions")
	}
}

func TestRegistry_SweepEvictsIdleSessions(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.Get("s1")

	r.sweep(time.Now().Add(30 * time.Minute))
	if r.Len() != 1 {
		t.Fatal("expected a recently used session to survive")
	}

	r.sweep(time.Now().Add(2 * time.Hour))
	if r.Len() != 0 {
		t.Errorf("expected idle session to be evicted, got %d", r.Len())
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	r, _ := newTestRegistry(t)
	m, err := NewManager(config.SessionConfig{
		Secret:     "s3cret",
		CookieName: "userdesk_session",
		TTL:        time.Hour,
	}, r, logging.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestManager_ResolveIssuesCookieAndReusesSession(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	id, ctrl, err := m.Resolve(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected a session cookie, got %d cookies", len(cookies))
	}
	c := cookies[0]
	if !c.HttpOnly || c.SameSite != http.SameSiteLaxMode || c.Name != "userdesk_session" {
		t.Errorf("unexpected cookie attributes %+v", c)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	rec2 := httptest.NewRecorder()
	id2, ctrl2, err := m.Resolve(rec2, req)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id2 != id || ctrl2 != ctrl {
		t.Error("expected the cookie to resume the same session")
	}
	if len(rec2.Result().Cookies()) != 0 {
		t.Error("expected no new cookie for a valid session")
	}

	if _, got, ok := m.Lookup(req); !ok || got != ctrl {
		t.Error("expected Lookup to find the live session")
	}
}

func TestManager_ResolveReplacesTamperedCookie(t *testing.T) {
	m := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "userdesk_session", Value: "not-a-jwt"})
	rec := httptest.NewRecorder()

	if _, _, err := m.Resolve(rec, req); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Error("expected a fresh cookie for a tampered session")
	}
}
