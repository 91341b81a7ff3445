package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/palcut/palcut-go/internal/api/middleware"
	"github.com/palcut/palcut-go/internal/api/request"
	"github.com/palcut/palcut-go/internal/api/response"
	"github.com/palcut/palcut-go/internal/model"
	"github.com/palcut/palcut-go/internal/services/auth"
	"github.com/palcut/palcut-go/internal/services/room"
	"github.com/palcut/palcut-go/internal/sse"
)

// RoomHandler handles room lifecycle and round endpoints
type RoomHandler struct {
	roomController room.ControllerInterface
	authService    *auth.Service
	broadcaster    *sse.Broadcaster
	hubManager     *sse.HubManager
	logger         *slog.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(
	roomController room.ControllerInterface,
	authService *auth.Service,
	broadcaster *sse.Broadcaster,
	hubManager *sse.HubManager,
	logger *slog.Logger,
) *RoomHandler {
	return &RoomHandler{
		roomController: roomController,
		authService:    authService,
		broadcaster:    broadcaster,
		hubManager:     hubManager,
		logger:         logger.With(slog.String("component", "room-handler")),
	}
}

// roomCode extracts the room code path variable
func roomCode(r *http.Request) model.RoomCode {
	return model.RoomCode(mux.Vars(r)["code"])
}

// requireMembership checks that the caller's session has joined the room.
// Writes the error response itself; callers return on false.
func (h *RoomHandler) requireMembership(w http.ResponseWriter, r *http.Request) (model.RoomCode, bool) {
	session := middleware.MustGetSession(r.Context())
	code := roomCode(r)
	if err := h.authService.CheckRoom(session.Token, code); err != nil {
		WriteError(w, err)
		return code, false
	}
	return code, true
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.roomController.CreateRoom(r.Context(), req.BuyIn, req.Passcode)
	if err != nil {
		WriteError(w, err)
		return
	}

	// The creator is a member from the start
	if err := h.authService.JoinRoom(session.Token, created.Code); err != nil {
		WriteError(w, err)
		return
	}

	h.logger.Info("room created",
		slog.String("room", string(created.Code)),
		slog.Int("buy_in", created.BuyIn))

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}

	got, err := h.roomController.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(got))
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	code := roomCode(r)

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.roomController.VerifyPasscode(r.Context(), code, req.Passcode); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.authService.JoinRoom(session.Token, code); err != nil {
		WriteError(w, err)
		return
	}

	joined, err := h.roomController.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(joined))
}

// AddPlayer handles POST /api/v1/rooms/{code}/players
func (h *RoomHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}

	var req request.AddPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.roomController.AddPlayer(r.Context(), code, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastRoomUpdate(updated)
	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}

// RemovePlayer handles DELETE /api/v1/rooms/{code}/players/{player_id}
func (h *RoomHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	updated, err := h.roomController.RemovePlayer(r.Context(), code, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastRoomUpdate(updated)
	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}

// SetBuyIn handles PUT /api/v1/rooms/{code}/buy-in
func (h *RoomHandler) SetBuyIn(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}

	var req request.SetBuyInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.roomController.SetBuyIn(r.Context(), code, req.BuyIn)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastRoomUpdate(updated)
	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}

// Start handles POST /api/v1/rooms/{code}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}

	started, err := h.roomController.StartGame(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.logger.Info("game started",
		slog.String("room", string(code)),
		slog.Int("players", len(started.Players)))

	h.broadcaster.BroadcastRoomUpdate(started)
	response.JSON(w, http.StatusOK, response.RoomFromModel(started))
}

// SubmitRound handles POST /api/v1/rooms/{code}/rounds
func (h *RoomHandler) SubmitRound(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}

	var req request.SubmitRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	scores := make(map[model.PlayerID]string, len(req.Scores))
	for id, raw := range req.Scores {
		scores[model.PlayerID(id)] = raw
	}
	input := model.RoundInput{
		WinnerID:   model.PlayerID(req.WinnerID),
		Scores:     scores,
		Multiplier: model.Multiplier(req.Multiplier),
	}

	updated, record, err := h.roomController.SubmitRound(r.Context(), code, input)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastRoomUpdate(updated)

	resp := response.RoundResponse{Room: response.RoomFromModel(updated)}
	if record != nil {
		// Direct win ended the game on the spot
		h.logger.Info("game finished by direct win",
			slog.String("room", string(code)),
			slog.String("winner", record.Winner))
		h.broadcaster.BroadcastGameFinished(code, record)
		h.broadcaster.BroadcastHistoryUpdate(code)

		rec := response.RecordFromModel(record)
		resp.Record = &rec
	}

	response.JSON(w, http.StatusOK, resp)
}

// UndoRound handles POST /api/v1/rooms/{code}/rounds/undo
func (h *RoomHandler) UndoRound(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}

	restored, input, err := h.roomController.UndoLastRound(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastRoomUpdate(restored)
	response.JSON(w, http.StatusOK, response.UndoResponse{
		Room:          response.RoomFromModel(restored),
		RestoredRound: response.RoundInputFromModel(input),
	})
}

// RejoinPlayer handles POST /api/v1/rooms/{code}/players/{player_id}/rejoin
func (h *RoomHandler) RejoinPlayer(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	updated, err := h.roomController.RejoinPlayer(r.Context(), code, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastRoomUpdate(updated)
	response.JSON(w, http.StatusOK, response.RoomFromModel(updated))
}

// Finish handles POST /api/v1/rooms/{code}/finish
func (h *RoomHandler) Finish(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}

	finished, record, err := h.roomController.FinishGame(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.logger.Info("game finished",
		slog.String("room", string(code)),
		slog.String("winner", record.Winner),
		slog.Int("pot", record.Pot))

	h.broadcaster.BroadcastRoomUpdate(finished)
	h.broadcaster.BroadcastGameFinished(code, record)
	h.broadcaster.BroadcastHistoryUpdate(code)

	response.JSON(w, http.StatusOK, response.FinishResponse{
		Room:   response.RoomFromModel(finished),
		Record: response.RecordFromModel(record),
	})
}

// Reset handles POST /api/v1/rooms/{code}/reset
func (h *RoomHandler) Reset(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}

	cleared, err := h.roomController.ResetGame(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.BroadcastRoomUpdate(cleared)
	response.JSON(w, http.StatusOK, response.RoomFromModel(cleared))
}

// Delete handles DELETE /api/v1/rooms/{code}
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requireMembership(w, r)
	if !ok {
		return
	}

	if err := h.roomController.DeleteRoom(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	h.hubManager.RemoveHub(code)
	response.NoContent(w)
}
