package handler

import (
	"net/http"

	"github.com/palcut/palcut-go/internal/api/middleware"
	"github.com/palcut/palcut-go/internal/services/auth"
	"github.com/palcut/palcut-go/internal/sse"
)

// EventsHandler serves the per-room SSE stream
type EventsHandler struct {
	authService *auth.Service
	hubManager  *sse.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(authService *auth.Service, hubManager *sse.HubManager) *EventsHandler {
	return &EventsHandler{
		authService: authService,
		hubManager:  hubManager,
	}
}

// Stream handles GET /api/v1/rooms/{code}/events.
// Blocks for the lifetime of the connection.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	code := roomCode(r)
	if err := h.authService.CheckRoom(session.Token, code); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(code)
	sse.ServeSSE(w, r, hub, session.ID)
}
