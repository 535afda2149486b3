package console

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"userdesk/internal/app/form"
	"userdesk/internal/http/responses"
	"userdesk/internal/live"
	"userdesk/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Sessions resolves the form controller behind a request.
type Sessions interface {
	Resolve(w http.ResponseWriter, r *http.Request) (string, *form.Controller, error)
	Lookup(r *http.Request) (string, *form.Controller, bool)
}

// Streams is the live-update hub.
type Streams interface {
	Register(sessionID string, client live.Subscriber)
	Unregister(sessionID string, client live.Subscriber)
}

type Handler struct {
	sessions Sessions
	streams  Streams
	logger   logging.Logger
}

func NewHandler(sessions Sessions, streams Streams, logger logging.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		streams:  streams,
		logger:   logger.With("component", "console_http_handler"),
	}
}

type pageView struct {
	M    form.Catalogue
	S    form.Snapshot
	Busy bool
}

// Page GET /
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	_, ctrl, ok := h.resolve(w, r)
	if !ok {
		return
	}

	snap := ctrl.Snapshot()
	view := pageView{
		M:    ctrl.Messages(),
		S:    snap,
		Busy: snap.Create.Loading() || snap.Search.Loading(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, view); err != nil {
		h.logger.Error("failed to render page", "error", err)
	}
}

// Create POST /forms/create
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		responses.WriteBadRequest(w, "invalid form body")
		return
	}
	_, ctrl, ok := h.resolve(w, r)
	if !ok {
		return
	}

	ctrl.SetCreateEmail(r.PostFormValue("email"))
	ctrl.SetCreateName(r.PostFormValue("name"))
	ctrl.SubmitCreate(context.WithoutCancel(r.Context()))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Search POST /forms/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		responses.WriteBadRequest(w, "invalid form body")
		return
	}
	_, ctrl, ok := h.resolve(w, r)
	if !ok {
		return
	}

	ctrl.SetSearchEmail(r.PostFormValue("email"))
	ctrl.SubmitSearch(context.WithoutCancel(r.Context()))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// State GET /state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	_, ctrl, ok := h.resolve(w, r)
	if !ok {
		return
	}
	responses.WriteState(w, ctrl.Snapshot())
}

// Stream GET /ws
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.sessions.Lookup(r)
	if !ok {
		responses.WriteNoSession(w)
		return
	}

	client, err := live.Upgrade(w, r, h.logger)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "session_id", id, "error", err)
		return
	}

	h.streams.Register(id, client)
	defer func() {
		h.streams.Unregister(id, client)
		client.Close()
	}()

	// Pages rendered before a submission settled catch up from this first push.
	payload, err := json.Marshal(ctrl.Snapshot())
	if err != nil {
		h.logger.Error("failed to encode snapshot", "session_id", id, "error", err)
		return
	}
	if err := client.Send(payload); err != nil {
		return
	}

	client.Drain()
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (string, *form.Controller, bool) {
	id, ctrl, err := h.sessions.Resolve(w, r)
	if err != nil {
		h.logger.Error("failed to resolve session", "error", err)
		responses.WriteError(w, http.StatusInternalServerError, "internal server error")
		return "", nil, false
	}
	return id, ctrl, true
}
