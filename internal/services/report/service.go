// Package report renders a room's history as a self-contained HTML
// document, meant to be opened and printed from a browser.
package report

import (
	"context"
	"html/template"
	"io"
	"time"

	"github.com/palcut/palcut-go/internal/dependencies/clock"
	"github.com/palcut/palcut-go/internal/model"
	"github.com/palcut/palcut-go/internal/services/history"
)

// Service renders printable reports
type Service struct {
	history history.ControllerInterface
	clock   clock.Clock
	tmpl    *template.Template
}

// New creates a new report Service
func New(history history.ControllerInterface, clock clock.Clock) *Service {
	return &Service{
		history: history,
		clock:   clock,
		tmpl:    template.Must(template.New("report").Parse(reportTemplate)),
	}
}

// reportData is the template input
type reportData struct {
	RoomCode    model.RoomCode
	GeneratedAt time.Time
	Games       []*model.GameRecord
	Totals      []history.PlayerTotal
}

// Render writes the room's full history report to w
func (s *Service) Render(ctx context.Context, w io.Writer, code model.RoomCode) error {
	games, err := s.history.ListGames(ctx, code)
	if err != nil {
		return err
	}
	totals, err := s.history.PlayerTotals(ctx, code)
	if err != nil {
		return err
	}

	return s.tmpl.Execute(w, reportData{
		RoomCode:    code,
		GeneratedAt: s.clock.Now(),
		Games:       games,
		Totals:      totals,
	})
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Palcut report — room {{.RoomCode}}</title>
<style>
body { font-family: Georgia, serif; margin: 2rem auto; max-width: 48rem; color: #222; }
h1 { font-size: 1.5rem; border-bottom: 2px solid #222; padding-bottom: 0.25rem; }
h2 { font-size: 1.1rem; margin-top: 2rem; }
table { border-collapse: collapse; width: 100%; margin-top: 0.5rem; }
th, td { border: 1px solid #999; padding: 0.3rem 0.6rem; text-align: left; }
th { background: #eee; }
td.num { text-align: right; }
.meta { color: #666; font-size: 0.85rem; }
.winner { font-weight: bold; }
.negative { color: #a00; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>Palcut — room {{.RoomCode}}</h1>
<p class="meta">Generated {{.GeneratedAt.Format "2 Jan 2006 15:04"}} · {{len .Games}} game(s) on record</p>

<h2>Player totals</h2>
{{if .Totals}}
<table id="totals">
<thead>
<tr><th>Player</th><th>Games</th><th>Wins</th><th>Net</th></tr>
</thead>
<tbody>
{{range .Totals}}
<tr>
<td>{{.Name}}</td>
<td class="num">{{.GamesPlayed}}</td>
<td class="num">{{.Wins}}</td>
<td class="num{{if lt .Net 0}} negative{{end}}">{{.Net}}</td>
</tr>
{{end}}
</tbody>
</table>
{{else}}
<p>No completed games yet.</p>
{{end}}

{{range $i, $g := .Games}}
<h2>Game {{$g.CompletedAt.Format "2 Jan 2006 15:04"}}{{if $g.DirectWin}} — direct win{{end}}</h2>
<p class="meta">{{$g.RoundsPlayed}} round(s) · pot {{$g.Pot}} · {{$g.Payout}}</p>
<table class="game">
<thead>
<tr><th>Player</th><th>Score</th><th>Paid</th><th>Net</th></tr>
</thead>
<tbody>
{{range $g.Players}}
<tr{{if .IsWinner}} class="winner"{{end}}>
<td>{{.Name}}{{if .RejoinCount}} (rejoined ×{{.RejoinCount}}){{end}}</td>
<td class="num">{{.Score}}</td>
<td class="num">{{.Paid}}</td>
<td class="num{{if lt .Net 0}} negative{{end}}">{{.Net}}</td>
</tr>
{{end}}
</tbody>
</table>
{{end}}
</body>
</html>
`
