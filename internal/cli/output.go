package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SessionResult:
		o.printSessionResult(v)
	case SessionInfo:
		o.printSessionInfo(v)
	case Names:
		o.printNames(v)
	case Room:
		o.printRoom(v)
	case RoundResult:
		o.printRoundResult(v)
	case UndoResult:
		o.printUndoResult(v)
	case FinishResult:
		o.printFinishResult(v)
	case GameRecord:
		o.printRecord(v)
	case History:
		o.printHistory(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// SessionResult response type (matches API)
type SessionResult struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionInfo response type
type SessionInfo struct {
	ExpiresAt time.Time `json:"expires_at"`
	Rooms     []string  `json:"rooms"`
}

// Names response type
type Names struct {
	Names []string `json:"names"`
}

// Player response type
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	IsOut        bool   `json:"is_out"`
	TotalPaid    int    `json:"total_paid"`
	RejoinCount  int    `json:"rejoin_count"`
	CannotRejoin bool   `json:"cannot_rejoin"`
}

// Room response type
type Room struct {
	Code         string   `json:"code"`
	Players      []Player `json:"players"`
	GameStarted  bool     `json:"game_started"`
	RoundsPlayed int      `json:"rounds_played"`
	BuyIn        int      `json:"buy_in"`
	Pot          int      `json:"pot"`
	ActiveCount  int      `json:"active_count"`
	CanUndo      bool     `json:"can_undo"`
	HasPasscode  bool     `json:"has_passcode"`
}

// PlayerResult response type
type PlayerResult struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Paid        int    `json:"paid"`
	Net         int    `json:"net"`
	IsWinner    bool   `json:"is_winner"`
	RejoinCount int    `json:"rejoin_count"`
}

// GameRecord response type
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

// RoundInput response type
type RoundInput struct {
	WinnerID   string            `json:"winner_id"`
	Scores     map[string]string `json:"scores"`
	Multiplier string            `json:"multiplier"`
}

// RoundResult response type
type RoundResult struct {
	Room   Room        `json:"room"`
	Record *GameRecord `json:"record"`
}

// UndoResult response type
type UndoResult struct {
	Room          Room       `json:"room"`
	RestoredRound RoundInput `json:"restored_round"`
}

// FinishResult response type
type FinishResult struct {
	Room   Room       `json:"room"`
	Record GameRecord `json:"record"`
}

// PlayerTotal response type
type PlayerTotal struct {
	Name        string `json:"name"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Net         int    `json:"net"`
}

// History response type
type History struct {
	Games  []GameRecord  `json:"games"`
	Totals []PlayerTotal `json:"totals"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSessionResult(s SessionResult) {
	fmt.Printf("Token: %s\n", s.SessionToken)
	fmt.Printf("Expires: %s\n", s.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printSessionInfo(s SessionInfo) {
	fmt.Printf("Expires: %s\n", s.ExpiresAt.Format(time.RFC3339))
	if len(s.Rooms) == 0 {
		fmt.Println("Rooms: none")
		return
	}
	fmt.Printf("Rooms (%d):\n", len(s.Rooms))
	for _, code := range s.Rooms {
		fmt.Printf("  - %s\n", code)
	}
}

func (o *Output) printNames(n Names) {
	if len(n.Names) == 0 {
		fmt.Println("No saved names")
		return
	}
	for _, name := range n.Names {
		fmt.Println(name)
	}
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.Code)
	state := "setup"
	if r.GameStarted {
		state = fmt.Sprintf("in game, round %d", r.RoundsPlayed)
	}
	fmt.Printf("State: %s\n", state)
	fmt.Printf("Buy-in: %d\n", r.BuyIn)
	fmt.Printf("Pot: %d\n", r.Pot)
	fmt.Printf("Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		status := ""
		if p.IsOut {
			status = " [out]"
			if p.CannotRejoin {
				status = " [out, cannot rejoin]"
			}
		}
		rejoined := ""
		if p.RejoinCount > 0 {
			rejoined = fmt.Sprintf(", rejoined x%d", p.RejoinCount)
		}
		fmt.Printf("  - %s (%s): %d points, paid %d%s%s\n", p.Name, p.ID, p.Score, p.TotalPaid, rejoined, status)
	}
}

func (o *Output) printRoundResult(r RoundResult) {
	if r.Record != nil {
		fmt.Println("Direct win! Game over.")
		o.printRecord(*r.Record)
		return
	}
	o.printRoom(r.Room)
}

func (o *Output) printUndoResult(u UndoResult) {
	fmt.Printf("Round undone (winner was %s, multiplier %s)\n", u.RestoredRound.WinnerID, u.RestoredRound.Multiplier)
	o.printRoom(u.Room)
}

func (o *Output) printFinishResult(f FinishResult) {
	o.printRecord(f.Record)
}

func (o *Output) printRecord(r GameRecord) {
	fmt.Printf("Game: %s\n", r.ID)
	fmt.Printf("Completed: %s\n", r.CompletedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Rounds: %d\n", r.RoundsPlayed)
	fmt.Printf("Pot: %d\n", r.Pot)
	fmt.Printf("Winner: %s\n", r.Winner)
	fmt.Printf("Payout: %s\n", r.Payout)
	fmt.Println("Players:")
	for _, p := range r.Players {
		marker := ""
		if p.IsWinner {
			marker = " [winner]"
		}
		fmt.Printf("  - %s: %d points, paid %d, net %+d%s\n", p.Name, p.Score, p.Paid, p.Net, marker)
	}
}

func (o *Output) printHistory(h History) {
	fmt.Printf("Games (%d):\n", len(h.Games))
	for _, g := range h.Games {
		direct := ""
		if g.DirectWin {
			direct = " (direct win)"
		}
		fmt.Printf("  %s  %s  winner: %s, pot %d%s\n",
			g.CompletedAt.Format("2006-01-02 15:04"), g.ID, g.Winner, g.Pot, direct)
	}
	if len(h.Totals) > 0 {
		fmt.Println("\nTotals:")
		for _, t := range h.Totals {
			fmt.Printf("  %s: %d games, %d wins, net %+d\n", t.Name, t.GamesPlayed, t.Wins, t.Net)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
