package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/palcut/palcut-go/internal/model"
	"github.com/palcut/palcut-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeRoomNotFound      = "ROOM_NOT_FOUND"
	CodeInvalidPasscode   = "INVALID_PASSCODE"
	CodeNotInRoom         = "NOT_IN_ROOM"
	CodeGameNotStarted    = "GAME_NOT_STARTED"
	CodeGameInProgress    = "GAME_IN_PROGRESS"
	CodeNotEnoughPlayers  = "NOT_ENOUGH_PLAYERS"
	CodeBuyInOutOfRange   = "BUY_IN_OUT_OF_RANGE"
	CodePlayerNotFound    = "PLAYER_NOT_FOUND"
	CodeBlankName         = "BLANK_NAME"
	CodeDuplicateName     = "DUPLICATE_NAME"
	CodeRosterFull        = "ROSTER_FULL"
	CodeNoWinnerSelected  = "NO_WINNER_SELECTED"
	CodeInvalidWinner     = "INVALID_WINNER"
	CodeInvalidMultiplier = "INVALID_MULTIPLIER"
	CodeNoRoundsPlayed    = "NO_ROUNDS_PLAYED"
	CodeNothingToUndo     = "NOTHING_TO_UNDO"
	CodePlayerNotOut      = "PLAYER_NOT_OUT"
	CodeRejoinClosed      = "REJOIN_CLOSED"
	CodeRecordNotFound    = "RECORD_NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrInvalidPasscode):
		return &httpError{http.StatusForbidden, APIError{CodeInvalidPasscode, "Wrong room passcode"}}
	case errors.Is(err, model.ErrNotInRoom):
		return &httpError{http.StatusForbidden, APIError{CodeNotInRoom, "Join the room first"}}
	case errors.Is(err, model.ErrGameNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameNotStarted, "Game has not started"}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameInProgress, "Game is in progress"}}
	case errors.Is(err, model.ErrNotEnoughPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNotEnoughPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrBuyInOutOfRange):
		return &httpError{http.StatusBadRequest, APIError{CodeBuyInOutOfRange, "Buy-in amount is out of range"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrBlankName):
		return &httpError{http.StatusBadRequest, APIError{CodeBlankName, "Player name must not be blank"}}
	case errors.Is(err, model.ErrDuplicateName):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateName, "Player name already in use"}}
	case errors.Is(err, model.ErrRosterFull):
		return &httpError{http.StatusConflict, APIError{CodeRosterFull, "Roster is full"}}
	case errors.Is(err, model.ErrNoWinnerSelected):
		return &httpError{http.StatusBadRequest, APIError{CodeNoWinnerSelected, "Select a round winner"}}
	case errors.Is(err, model.ErrInvalidWinner):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidWinner, "Winner must be an active player"}}
	case errors.Is(err, model.ErrInvalidMultiplier):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMultiplier, "Unknown multiplier"}}
	case errors.Is(err, model.ErrNoRoundsPlayed):
		return &httpError{http.StatusConflict, APIError{CodeNoRoundsPlayed, "No rounds have been played"}}
	case errors.Is(err, model.ErrNothingToUndo):
		return &httpError{http.StatusConflict, APIError{CodeNothingToUndo, "No round to undo"}}
	case errors.Is(err, model.ErrPlayerNotOut):
		return &httpError{http.StatusConflict, APIError{CodePlayerNotOut, "Player is not eliminated"}}
	case errors.Is(err, model.ErrRejoinClosed):
		return &httpError{http.StatusConflict, APIError{CodeRejoinClosed, "Player can no longer rejoin"}}
	case errors.Is(err, model.ErrRecordNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRecordNotFound, "Game record not found"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
