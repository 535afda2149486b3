package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"userdesk/internal/logging"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		redis      Pinger
		wantStatus int
		wantBody   map[string]string
	}{
		{
			name:       "redis disabled",
			redis:      nil,
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"status": "ok"},
		},
		{
			name:       "redis up",
			redis:      stubPinger{},
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"status": "ok", "redis": "ok"},
		},
		{
			name:       "redis down",
			redis:      stubPinger{err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]string{"status": "degraded", "redis": "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.redis, logging.NewNop())
			rec := httptest.NewRecorder()
			h.Check(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			var got map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if len(got) != len(tt.wantBody) {
				t.Fatalf("expected %v, got %v", tt.wantBody, got)
			}
			for k, v := range tt.wantBody {
				if got[k] != v {
					t.Errorf("%s: expected %q, got %q", k, v, got[k])
				}
			}
		})
	}
}
