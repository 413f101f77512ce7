package services

import (
	"context"

	"gametrack-backend/internal/locations"
)

type DepositCounter interface {
	CountPending(ctx context.Context) (int, error)
}

// DashboardSummary is the read-only aggregate shown on the landing
// page.
type DashboardSummary struct {
	ClosedCounts   map[string]int `json:"closedCounts"`
	DepositPending int            `json:"depositPending"`
}

type DashboardService struct {
	games    GameStore
	deposits DepositCounter
	registry *locations.Registry
}

func NewDashboardService(games GameStore, deposits DepositCounter, registry *locations.Registry) *DashboardService {
	return &DashboardService{games: games, deposits: deposits, registry: registry}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{ClosedCounts: make(map[string]int)}

	for _, loc := range s.registry.Locations() {
		count, err := s.games.CountStage(ctx, locations.StageClosed, loc)
		if err != nil {
			return nil, err
		}
		summary.ClosedCounts[loc] = count
	}

	pending, err := s.deposits.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	summary.DepositPending = pending
	return summary, nil
}
