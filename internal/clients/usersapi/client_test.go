package usersapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"userdesk/internal/httpclient"
	"userdesk/internal/logging"
)

func newClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/dev", 0, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestCreateUser(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/dev/users" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var in CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if in.Email != "a@b.com" || in.Name != "Ann A" {
			t.Errorf("unexpected body: %+v", in)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"42","email":"a@b.com"}`))
	}))

	res, err := c.CreateUser(context.Background(), CreateUserRequest{Email: "a@b.com", Name: "Ann A"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if res.ID != "42" {
		t.Errorf("expected id 42, got %s", res.ID)
	}
}

func TestCreateUser_ServerError(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"User with this email already exists"}`))
	}))

	_, err := c.CreateUser(context.Background(), CreateUserRequest{Email: "a@b.com", Name: "Ann A"})

	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *httpclient.HTTPError, got %v", err)
	}
	if httpErr.Message != "User with this email already exists" {
		t.Errorf("unexpected message %q", httpErr.Message)
	}
}

func TestFindUserByEmail_EncodesQuery(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "email=a%40b.com" {
			t.Errorf("expected encoded query email=a%%40b.com, got %s", r.URL.RawQuery)
		}
		if got := r.URL.Query().Get("email"); got != "a@b.com" {
			t.Errorf("expected decoded email a@b.com, got %s", got)
		}
		_, _ = w.Write([]byte(`{"id":"7","email":"a@b.com","name":"Ann A"}`))
	}))

	u, err := c.FindUserByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("FindUserByEmail: %v", err)
	}
	if u.ID != "7" || u.Email != "a@b.com" || u.Name != "Ann A" {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestFindUserByEmail_EncodesReservedCharacters(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("email"); got != "a+b&c@x.com" {
			t.Errorf("expected email to round-trip, got %q", got)
		}
		_, _ = w.Write([]byte(`{"id":"8","email":"a+b&c@x.com"}`))
	}))

	u, err := c.FindUserByEmail(context.Background(), "a+b&c@x.com")
	if err != nil {
		t.Fatalf("FindUserByEmail: %v", err)
	}
	if u.HasName() {
		t.Errorf("expected no name, got %q", u.Name)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}))

	_, err := c.FindUserByEmail(context.Background(), "missing@x.com")

	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *httpclient.HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusNotFound || httpErr.Message != "not found" {
		t.Errorf("unexpected error %+v", httpErr)
	}
}

func TestEmptySuccessBodyIsNotAResult(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	_, createErr := c.CreateUser(context.Background(), CreateUserRequest{Email: "a@b.com", Name: "Ann A"})
	_, findErr := c.FindUserByEmail(context.Background(), "a@b.com")

	for name, err := range map[string]error{"create": createErr, "find": findErr} {
		var httpErr *httpclient.HTTPError
		if err == nil || errors.As(err, &httpErr) {
			t.Errorf("%s: expected a non-HTTP error, got %v", name, err)
		}
		if !errors.Is(err, httpclient.ErrEmptyBody) {
			t.Errorf("%s: expected ErrEmptyBody, got %v", name, err)
		}
	}
}
