package responses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body.Error
}

func TestWriteState_DisablesCaching(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteState(rec, map[string]int{"version": 3})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected no-store, got %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected JSON content type, got %q", got)
	}
}

func TestWriteNotFound_NamesTheRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteNotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "no console route for GET /nope" {
		t.Errorf("unexpected error text %q", got)
	}
}

func TestWriteNoSession(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteNoSession(rec)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "no active session" {
		t.Errorf("unexpected error text %q", got)
	}
}
