// Package engine implements the round-settlement and payout rules for
// Palcut. Every function is a pure transformation: inputs are copied,
// never mutated, and nothing here touches storage.
package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/palcut/palcut-go/internal/model"
)

// NoWinnerDisplay is the winner string recorded when everyone was
// eliminated before the game finished
const NoWinnerDisplay = "—"

// ApplyResult is the outcome of settling one round
type ApplyResult struct {
	// Players is the new roster; the input roster is untouched
	Players []model.Player

	// DirectWin is true when every active non-winner contributed zero,
	// ending the game immediately. The losers have already been forced
	// out with a recorded score of the elimination threshold; the
	// caller is expected to go straight to Finish.
	DirectWin bool
}

// ApplyRound settles one submitted round against the roster.
//
// The winner must be an active roster member. Frozen players
// (CannotRejoin) are untouched; eliminated players use up their
// one-round rejoin grace; active players accumulate their entered
// score scaled by the multiplier and are eliminated at the threshold.
func ApplyRound(players []model.Player, in model.RoundInput) (ApplyResult, error) {
	if in.WinnerID == "" {
		return ApplyResult{}, model.ErrNoWinnerSelected
	}
	if in.Multiplier != "" && !in.Multiplier.Valid() {
		return ApplyResult{}, fmt.Errorf("%w: %q", model.ErrInvalidMultiplier, in.Multiplier)
	}

	winner := findPlayer(players, in.WinnerID)
	if winner == nil || !winner.Active() {
		return ApplyResult{}, model.ErrInvalidWinner
	}

	multiplier := in.Multiplier
	if multiplier == "" {
		multiplier = model.MultiplierNormal
	}

	if isDirectWin(players, in) {
		updated := make([]model.Player, len(players))
		for i, p := range players {
			if p.Active() && p.ID != in.WinnerID {
				p.Score = model.EliminationThreshold
				p.IsOut = true
			}
			updated[i] = p
		}
		return ApplyResult{Players: updated, DirectWin: true}, nil
	}

	updated := make([]model.Player, len(players))
	for i, p := range players {
		switch {
		case p.CannotRejoin:
			// Frozen for the rest of the game
		case p.IsOut:
			// One-round rejoin grace expires
			p.CannotRejoin = true
		default:
			added := 0
			if p.ID != in.WinnerID {
				added = multiplier.Apply(parseScore(in.Scores[p.ID]))
			}
			p.Score += added
			p.IsOut = p.Score >= model.EliminationThreshold
		}
		updated[i] = p
	}

	return ApplyResult{Players: updated}, nil
}

// isDirectWin reports whether every active player other than the winner
// entered an empty, whitespace, or literal-zero score. An empty
// eligible set (only one active player) never triggers a direct win.
func isDirectWin(players []model.Player, in model.RoundInput) bool {
	eligible := 0
	for _, p := range players {
		if !p.Active() || p.ID == in.WinnerID {
			continue
		}
		eligible++
		raw := strings.TrimSpace(in.Scores[p.ID])
		if raw != "" && raw != "0" {
			return false
		}
	}
	return eligible > 0
}

// parseScore parses a raw entered score. Empty, whitespace, non-numeric
// and negative inputs all count as zero.
func parseScore(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FinishResult is the final settlement of a game
type FinishResult struct {
	Results []model.PlayerResult

	// Winner is the display string: one name, comma-joined names on a
	// split, or NoWinnerDisplay
	Winner string

	// Payout is the human-readable payout description
	Payout string

	Pot           int
	ActiveWinners int
	DirectWin     bool
}

// Finish computes the final payouts for the current roster.
//
// On a direct win the named winner takes the whole pot (their own stake
// included) and everyone else loses their stake in full. Otherwise the
// pot splits equally among the active players; with nobody active the
// pot is forfeited and every player's net is the loss of their stake.
func Finish(players []model.Player, directWin bool, directWinnerID model.PlayerID) FinishResult {
	pot := 0
	for _, p := range players {
		pot += p.TotalPaid
	}

	if directWin {
		return finishDirectWin(players, pot, directWinnerID)
	}

	var (
		active  []model.Player
		payout  string
		display string
	)
	for _, p := range players {
		if p.Active() {
			active = append(active, p)
		}
	}

	switch len(active) {
	case 0:
		payout = fmt.Sprintf("No winners (all eliminated); pot of %d unclaimed", pot)
		display = NoWinnerDisplay
	case 1:
		payout = "Full Winner (last remaining)"
		display = active[0].Name
	default:
		payout = fmt.Sprintf("Split equally among %d remaining players", len(active))
		names := make([]string, len(active))
		for i, p := range active {
			names[i] = p.Name
		}
		display = strings.Join(names, ", ")
	}

	share := 0.0
	if len(active) > 0 {
		share = float64(pot) / float64(len(active))
	}

	results := make([]model.PlayerResult, len(players))
	for i, p := range players {
		net := float64(-p.TotalPaid)
		if p.Active() {
			net += share
		}
		results[i] = model.PlayerResult{
			Name:        p.Name,
			Score:       p.Score,
			Paid:        p.TotalPaid,
			Net:         int(math.Round(net)),
			IsWinner:    p.Active(),
			RejoinCount: p.RejoinCount,
		}
	}

	return FinishResult{
		Results:       results,
		Winner:        display,
		Payout:        payout,
		Pot:           pot,
		ActiveWinners: len(active),
	}
}

// finishDirectWin settles a game ended by a direct win: winner takes
// the full pot, everyone else loses their stake
func finishDirectWin(players []model.Player, pot int, winnerID model.PlayerID) FinishResult {
	results := make([]model.PlayerResult, len(players))
	display := ""
	for i, p := range players {
		isWinner := p.ID == winnerID
		net := -p.TotalPaid
		if isWinner {
			net = pot - p.TotalPaid
			display = p.Name
		}
		results[i] = model.PlayerResult{
			Name:        p.Name,
			Score:       p.Score,
			Paid:        p.TotalPaid,
			Net:         net,
			IsWinner:    isWinner,
			RejoinCount: p.RejoinCount,
		}
	}

	return FinishResult{
		Results:       results,
		Winner:        display,
		Payout:        fmt.Sprintf("Direct win — %s takes the full pot", display),
		Pot:           pot,
		ActiveWinners: 1,
		DirectWin:     true,
	}
}

// Rejoin brings an eliminated player back in. Their score is set to the
// highest score among active players so they do not instantly lead,
// and they pay the buy-in again.
func Rejoin(players []model.Player, id model.PlayerID, buyIn int) ([]model.Player, error) {
	target := findPlayer(players, id)
	if target == nil {
		return nil, model.ErrPlayerNotFound
	}
	if !target.IsOut {
		return nil, model.ErrPlayerNotOut
	}
	if target.CannotRejoin {
		return nil, model.ErrRejoinClosed
	}

	highest := 0
	for _, p := range players {
		if p.Active() && p.Score > highest {
			highest = p.Score
		}
	}

	updated := make([]model.Player, len(players))
	for i, p := range players {
		if p.ID == id {
			p.IsOut = false
			p.Score = highest
			p.TotalPaid += buyIn
			p.RejoinCount++
		}
		updated[i] = p
	}
	return updated, nil
}

// Reset returns the roster with every player's mutable fields back at
// their add-time defaults, keeping identity and name
func Reset(players []model.Player, buyIn int) []model.Player {
	updated := make([]model.Player, len(players))
	for i, p := range players {
		p.Score = 0
		p.IsOut = false
		p.TotalPaid = buyIn
		p.RejoinCount = 0
		p.CannotRejoin = false
		updated[i] = p
	}
	return updated
}

func findPlayer(players []model.Player, id model.PlayerID) *model.Player {
	for i := range players {
		if players[i].ID == id {
			return &players[i]
		}
	}
	return nil
}
