package response

import (
	"time"

	"github.com/palcut/palcut-go/internal/model"
	"github.com/palcut/palcut-go/internal/services/auth"
	"github.com/palcut/palcut-go/internal/services/history"
)

// Player represents a roster entry in API responses
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	IsOut        bool   `json:"is_out"`
	TotalPaid    int    `json:"total_paid"`
	RejoinCount  int    `json:"rejoin_count"`
	CannotRejoin bool   `json:"cannot_rejoin"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:           string(p.ID),
		Name:         p.Name,
		Score:        p.Score,
		IsOut:        p.IsOut,
		TotalPaid:    p.TotalPaid,
		RejoinCount:  p.RejoinCount,
		CannotRejoin: p.CannotRejoin,
	}
}

// Room represents a room in API responses
type Room struct {
	Code         string    `json:"code"`
	Players      []Player  `json:"players"`
	GameStarted  bool      `json:"game_started"`
	RoundsPlayed int       `json:"rounds_played"`
	BuyIn        int       `json:"buy_in"`
	Pot          int       `json:"pot"`
	ActiveCount  int       `json:"active_count"`
	CanUndo      bool      `json:"can_undo"`
	HasPasscode  bool      `json:"has_passcode"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoomFromModel converts model.Room
func RoomFromModel(r *model.Room) Room {
	players := make([]Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = PlayerFromModel(p)
	}

	return Room{
		Code:         string(r.Code),
		Players:      players,
		GameStarted:  r.GameStarted,
		RoundsPlayed: r.RoundsPlayed,
		BuyIn:        r.BuyIn,
		Pot:          r.Pot(),
		ActiveCount:  r.ActiveCount(),
		CanUndo:      r.PreviousRound != nil,
		HasPasscode:  r.PasscodeHash != "",
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// PlayerResult is one player's final line in a completed game
type PlayerResult struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Paid        int    `json:"paid"`
	Net         int    `json:"net"`
	IsWinner    bool   `json:"is_winner"`
	RejoinCount int    `json:"rejoin_count"`
}

// GameRecord represents a completed game in API responses
type GameRecord struct {
	ID            string         `json:"id"`
	RoomCode      string         `json:"room_code"`
	Winner        string         `json:"winner"`
	Pot           int            `json:"pot"`
	RoundsPlayed  int            `json:"rounds_played"`
	Payout        string         `json:"payout"`
	ActiveWinners int            `json:"active_winners"`
	DirectWin     bool           `json:"direct_win"`
	Players       []PlayerResult `json:"players"`
	CompletedAt   time.Time      `json:"completed_at"`
}

// RecordFromModel converts model.GameRecord
func RecordFromModel(r *model.GameRecord) GameRecord {
	players := make([]PlayerResult, len(r.Players))
	for i, p := range r.Players {
		players[i] = PlayerResult{
			Name:        p.Name,
			Score:       p.Score,
			Paid:        p.Paid,
			Net:         p.Net,
			IsWinner:    p.IsWinner,
			RejoinCount: p.RejoinCount,
		}
	}

	return GameRecord{
		ID:            string(r.ID),
		RoomCode:      string(r.RoomCode),
		Winner:        r.Winner,
		Pot:           r.Pot,
		RoundsPlayed:  r.RoundsPlayed,
		Payout:        r.Payout,
		ActiveWinners: r.ActiveWinners,
		DirectWin:     r.DirectWin,
		Players:       players,
		CompletedAt:   r.CompletedAt,
	}
}

// RecordsFromModel converts a record slice
func RecordsFromModel(records []*model.GameRecord) []GameRecord {
	out := make([]GameRecord, len(records))
	for i, r := range records {
		out[i] = RecordFromModel(r)
	}
	return out
}

// RoundInput echoes back a submitted round, notably after an undo so
// the client can pre-fill the re-edit form
type RoundInput struct {
	WinnerID   string            `json:"winner_id"`
	Scores     map[string]string `json:"scores"`
	Multiplier string            `json:"multiplier"`
}

// RoundInputFromModel converts model.RoundInput
func RoundInputFromModel(in model.RoundInput) RoundInput {
	scores := make(map[string]string, len(in.Scores))
	for id, raw := range in.Scores {
		scores[string(id)] = raw
	}
	return RoundInput{
		WinnerID:   string(in.WinnerID),
		Scores:     scores,
		Multiplier: string(in.Multiplier),
	}
}

// SessionResponse is the response for session endpoints
type SessionResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionResponseFromSession creates a SessionResponse
func SessionResponseFromSession(s *auth.Session) SessionResponse {
	return SessionResponse{
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// SessionInfo describes the current session
type SessionInfo struct {
	ExpiresAt time.Time `json:"expires_at"`
	Rooms     []string  `json:"rooms"`
}

// NamesResponse carries a session's frequent names
type NamesResponse struct {
	Names []string `json:"names"`
}

// RoundResponse is the response after submitting a round. Record is
// set only when the round ended the game with a direct win.
type RoundResponse struct {
	Room   Room        `json:"room"`
	Record *GameRecord `json:"record,omitempty"`
}

// UndoResponse is the response after undoing a round
type UndoResponse struct {
	Room          Room       `json:"room"`
	RestoredRound RoundInput `json:"restored_round"`
}

// FinishResponse is the response after finishing a game
type FinishResponse struct {
	Room   Room       `json:"room"`
	Record GameRecord `json:"record"`
}

// PlayerTotal is a player's aggregate line across a room's history
type PlayerTotal struct {
	Name        string `json:"name"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Net         int    `json:"net"`
}

// TotalsFromService converts history.PlayerTotal values
func TotalsFromService(totals []history.PlayerTotal) []PlayerTotal {
	out := make([]PlayerTotal, len(totals))
	for i, t := range totals {
		out[i] = PlayerTotal{
			Name:        t.Name,
			GamesPlayed: t.GamesPlayed,
			Wins:        t.Wins,
			Net:         t.Net,
		}
	}
	return out
}

// HistoryResponse carries a room's completed games and totals
type HistoryResponse struct {
	Games  []GameRecord  `json:"games"`
	Totals []PlayerTotal `json:"totals"`
}
