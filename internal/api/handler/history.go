package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/palcut/palcut-go/internal/api/middleware"
	"github.com/palcut/palcut-go/internal/api/response"
	"github.com/palcut/palcut-go/internal/model"
	"github.com/palcut/palcut-go/internal/services/auth"
	"github.com/palcut/palcut-go/internal/services/history"
	"github.com/palcut/palcut-go/internal/sse"
)

// HistoryHandler handles game history endpoints
type HistoryHandler struct {
	historyController history.ControllerInterface
	authService       *auth.Service
	broadcaster       *sse.Broadcaster
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(
	historyController history.ControllerInterface,
	authService *auth.Service,
	broadcaster *sse.Broadcaster,
) *HistoryHandler {
	return &HistoryHandler{
		historyController: historyController,
		authService:       authService,
		broadcaster:       broadcaster,
	}
}

func (h *HistoryHandler) requireMembership(w http.ResponseWriter, r *http.Request) (model.RoomCode, bool) {
	session := middleware.MustGetSession(r.Context())
	code := roomCode(r)
	if err := h.authService.CheckRoom(session.Token, code); err != nil {
		WriteError(w, err)
		return code, false
	}
	return code, true
}

// List handles GET /api/v1/rooms/{code}/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}

	games, err := h.historyController.ListGames(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	totals, err := h.historyController.PlayerTotals(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryResponse{
		Games:  response.RecordsFromModel(games),
		Totals: response.TotalsFromService(totals),
	})
}

// Get handles GET /api/v1/rooms/{code}/history/{record_id}
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}
	recordID := model.RecordID(mux.Vars(r)["record_id"])

	record, err := h.historyController.GetGame(r.Context(), code, recordID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RecordFromModel(record))
}

// Delete handles DELETE /api/v1/rooms/{code}/history/{record_id}
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}
	recordID := model.RecordID(mux.Vars(r)["record_id"])

	if err := h.historyController.DeleteGame(r.Context(), code, recordID); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastHistoryUpdate(code)
	response.NoContent(w)
}
