package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/palcut/palcut-go/internal/api/middleware"
	"github.com/palcut/palcut-go/internal/api/request"
	"github.com/palcut/palcut-go/internal/api/response"
	"github.com/palcut/palcut-go/internal/services/auth"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	authService *auth.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service) *SessionHandler {
	return &SessionHandler{authService: authService}
}

// Create handles POST /api/v1/session
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := h.authService.CreateSession()
	if err != nil {
		WriteError(w, err)
		return
	}

	// Browser clients carry the cookie; API clients use the token
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.JSON(w, http.StatusCreated, response.SessionResponseFromSession(session))
}

// GetMe handles GET /api/v1/session/me
func (h *SessionHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	rooms, err := h.authService.Rooms(session.Token)
	if err != nil {
		WriteError(w, err)
		return
	}

	codes := make([]string, len(rooms))
	for i, code := range rooms {
		codes[i] = string(code)
	}

	response.JSON(w, http.StatusOK, response.SessionInfo{
		ExpiresAt: session.ExpiresAt,
		Rooms:     codes,
	})
}

// Delete handles DELETE /api/v1/session
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	h.authService.InvalidateSession(session.Token)
	response.NoContent(w)
}

// GetNames handles GET /api/v1/session/names
func (h *SessionHandler) GetNames(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	names, err := h.authService.FrequentNames(r.Context(), session.Token)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NamesResponse{Names: names})
}

// RememberNames handles POST /api/v1/session/names
func (h *SessionHandler) RememberNames(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.RememberNamesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.authService.RememberNames(r.Context(), session.Token, req.Names); err != nil {
		WriteError(w, err)
		return
	}

	names, err := h.authService.FrequentNames(r.Context(), session.Token)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NamesResponse{Names: names})
}

// ForgetName handles DELETE /api/v1/session/names/{name}
func (h *SessionHandler) ForgetName(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	name := mux.Vars(r)["name"]

	if err := h.authService.ForgetName(r.Context(), session.Token, name); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
