package history

import (
	"sort"
	"strings"

	"github.com/palcut/palcut-go/internal/model"
)

// Totals folds a set of game records into per-player aggregates.
// Names are matched case-insensitively; the casing from the most
// recent appearance wins.
func Totals(records []*model.GameRecord) []PlayerTotal {
	byName := make(map[string]*PlayerTotal)
	order := make([]string, 0)

	for _, record := range records {
		for _, result := range record.Players {
			key := strings.ToLower(result.Name)
			total, ok := byName[key]
			if !ok {
				total = &PlayerTotal{Name: result.Name}
				byName[key] = total
				order = append(order, key)
			}
			total.GamesPlayed++
			total.Net += result.Net
			if result.IsWinner {
				total.Wins++
			}
		}
	}

	totals := make([]PlayerTotal, 0, len(order))
	for _, key := range order {
		totals = append(totals, *byName[key])
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Net > totals[j].Net
	})
	return totals
}
