package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/palcut/palcut-go/internal/dependencies/mocks"
	"github.com/palcut/palcut-go/internal/engine"
	"github.com/palcut/palcut-go/internal/model"
	"github.com/palcut/palcut-go/internal/storage/memory"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.controller = NewController(s.storage, s.clock)
	s.ctx = context.Background()
}

func (s *ControllerSuite) settlement(winner string, nets map[string]int) engine.FinishResult {
	fin := engine.FinishResult{
		Winner:        winner,
		Pot:           300,
		ActiveWinners: 1,
		Payout:        "Full Winner (last remaining)",
	}
	for name, net := range nets {
		fin.Results = append(fin.Results, model.PlayerResult{
			Name:     name,
			Net:      net,
			IsWinner: name == winner,
			Paid:     100,
		})
	}
	return fin
}

func (s *ControllerSuite) TestRecordGame() {
	fin := s.settlement("Alice", map[string]int{"Alice": 200, "Bob": -100})

	record, err := s.controller.RecordGame(s.ctx, "ABC123", 5, fin)
	s.Require().NoError(err)

	s.NotEmpty(record.ID)
	s.Equal(model.RoomCode("ABC123"), record.RoomCode)
	s.Equal("Alice", record.Winner)
	s.Equal(300, record.Pot)
	s.Equal(5, record.RoundsPlayed)
	s.Equal(s.clock.CurrentTime, record.CompletedAt)
	s.Len(record.Players, 2)
}

func (s *ControllerSuite) TestRecordGameIDsAreUnique() {
	fin := s.settlement("Alice", map[string]int{"Alice": 200})

	first, _ := s.controller.RecordGame(s.ctx, "ABC123", 1, fin)
	second, _ := s.controller.RecordGame(s.ctx, "ABC123", 2, fin)
	s.NotEqual(first.ID, second.ID)
}

func (s *ControllerSuite) TestListGamesNewestFirst() {
	fin := s.settlement("Alice", map[string]int{"Alice": 200})

	first, _ := s.controller.RecordGame(s.ctx, "ABC123", 1, fin)
	s.clock.Advance(time.Hour)
	second, _ := s.controller.RecordGame(s.ctx, "ABC123", 2, fin)

	records, err := s.controller.ListGames(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(second.ID, records[0].ID)
	s.Equal(first.ID, records[1].ID)
}

func (s *ControllerSuite) TestGetGame() {
	fin := s.settlement("Alice", map[string]int{"Alice": 200})
	record, _ := s.controller.RecordGame(s.ctx, "ABC123", 1, fin)

	retrieved, err := s.controller.GetGame(s.ctx, "ABC123", record.ID)
	s.Require().NoError(err)
	s.Equal("Alice", retrieved.Winner)
}

func (s *ControllerSuite) TestDeleteGame() {
	fin := s.settlement("Alice", map[string]int{"Alice": 200})
	record, _ := s.controller.RecordGame(s.ctx, "ABC123", 1, fin)

	s.Require().NoError(s.controller.DeleteGame(s.ctx, "ABC123", record.ID))

	_, err := s.controller.GetGame(s.ctx, "ABC123", record.ID)
	s.ErrorIs(err, model.ErrRecordNotFound)
}

func (s *ControllerSuite) TestDeleteGameNotFound() {
	err := s.controller.DeleteGame(s.ctx, "ABC123", "nonexistent")
	s.ErrorIs(err, model.ErrRecordNotFound)
}

func (s *ControllerSuite) TestPlayerTotals() {
	_, _ = s.controller.RecordGame(s.ctx, "ABC123", 3,
		s.settlement("Alice", map[string]int{"Alice": 200, "Bob": -100, "Carol": -100}))
	s.clock.Advance(time.Hour)
	_, _ = s.controller.RecordGame(s.ctx, "ABC123", 2,
		s.settlement("Bob", map[string]int{"Alice": -100, "Bob": 100}))

	totals, err := s.controller.PlayerTotals(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().Len(totals, 3)

	// Descending net order
	s.Equal("Alice", totals[0].Name)
	s.Equal(100, totals[0].Net)
	s.Equal(2, totals[0].GamesPlayed)
	s.Equal(1, totals[0].Wins)

	s.Equal("Bob", totals[1].Name)
	s.Equal(0, totals[1].Net)

	s.Equal("Carol", totals[2].Name)
	s.Equal(-100, totals[2].Net)
	s.Equal(1, totals[2].GamesPlayed)
}

func (s *ControllerSuite) TestPlayerTotalsMatchNamesCaseInsensitively() {
	_, _ = s.controller.RecordGame(s.ctx, "ABC123", 1,
		s.settlement("alice", map[string]int{"alice": 100}))
	s.clock.Advance(time.Hour)
	_, _ = s.controller.RecordGame(s.ctx, "ABC123", 1,
		s.settlement("Alice", map[string]int{"Alice": 50}))

	totals, err := s.controller.PlayerTotals(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().Len(totals, 1)
	s.Equal("Alice", totals[0].Name) // Most recent casing
	s.Equal(150, totals[0].Net)
	s.Equal(2, totals[0].Wins)
}

func (s *ControllerSuite) TestPlayerTotalsEmptyHistory() {
	totals, err := s.controller.PlayerTotals(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Empty(totals)
}
