package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"gametrack-backend/internal/locations"
	"gametrack-backend/internal/metrics"
	"gametrack-backend/internal/models"
	"gametrack-backend/internal/timeutil"
)

// GameStore is the slice of the game repository the lifecycle engine
// needs. Tests substitute an in-memory implementation.
type GameStore interface {
	FindByKey(ctx context.Context, stage locations.Stage, location, key string) (*models.GameRecord, error)
	FindAnyLocation(ctx context.Context, stage locations.Stage, key string) (*models.GameRecord, error)
	Move(ctx context.Context, from, to locations.Stage, fromLocation string, g *models.GameRecord) error
	ListStage(ctx context.Context, stage locations.Stage, location string) ([]models.GameRecord, error)
	ListBoxes(ctx context.Context, location string) ([]models.GameRecord, error)
	SetCounters(ctx context.Context, location, key string, ticketsSold, currentTickets, winnersSold, currentWinners int, cashHand float64) error
	ConfirmPickup(ctx context.Context, location, key, picker string, at time.Time) (bool, error)
	CountStage(ctx context.Context, stage locations.Stage, location string) (int, error)
}

type TransportStore interface {
	List(ctx context.Context) ([]models.TransportationRecord, error)
	DropOff(ctx context.Context, key string, at time.Time) (bool, error)
}

type DepositStore interface {
	List(ctx context.Context) ([]models.DepositRecord, error)
	MarkGoingToBank(ctx context.Context, key string, at time.Time) (bool, error)
	MarkDroppedAtBank(ctx context.Context, key string, at time.Time) (bool, error)
}

// LifecycleService drives game records through the stage machine:
// Inventory -> Open -> Closed -> Transportation -> Office -> Deposit.
type LifecycleService struct {
	games     GameStore
	transport TransportStore
	deposits  DepositStore
	registry  *locations.Registry
	pickers   map[string]bool
	now       func() time.Time
}

func NewLifecycleService(games GameStore, transport TransportStore, deposits DepositStore, registry *locations.Registry, pickers []string) *LifecycleService {
	allowed := make(map[string]bool, len(pickers))
	for _, p := range pickers {
		allowed[p] = true
	}
	return &LifecycleService{
		games:     games,
		transport: transport,
		deposits:  deposits,
		registry:  registry,
		pickers:   allowed,
		now:       timeutil.Now,
	}
}

// FindStaged looks a key up in one stage of one location; nil when
// absent.
func (s *LifecycleService) FindStaged(ctx context.Context, stage locations.Stage, location, key string) (*models.GameRecord, error) {
	if err := s.requireLocation(location); err != nil {
		return nil, err
	}
	g, err := s.games.FindByKey(ctx, stage, location, key)
	if err != nil {
		return nil, fmt.Errorf("find %s in %s: %w", key, stage, err)
	}
	return g, nil
}

// OpenGame moves a game from Inventory to Open, stamping the open
// time and an optional selling box (1-7).
func (s *LifecycleService) OpenGame(ctx context.Context, location, key string, box *int) (*models.GameRecord, error) {
	if err := s.requireLocation(location); err != nil {
		return nil, err
	}
	if box != nil && (*box < 1 || *box > 7) {
		return nil, fmt.Errorf("%w: box number must be 1-7", ErrInvalidInput)
	}

	g, err := s.games.FindByKey(ctx, locations.StageInventory, location, key)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}

	opened := s.now()
	g.DateOpened = &opened
	g.BoxNumber = box
	if err := s.games.Move(ctx, locations.StageInventory, locations.StageOpen, location, g); err != nil {
		return nil, err
	}
	metrics.GameMoves.WithLabelValues(string(locations.StageOpen)).Inc()
	return g, nil
}

// CloseGame moves a game from Open to Closed. The counted cash must
// be a finite number.
func (s *LifecycleService) CloseGame(ctx context.Context, location, key string, cashHand float64) (*models.GameRecord, error) {
	if err := s.requireLocation(location); err != nil {
		return nil, err
	}
	if math.IsNaN(cashHand) || math.IsInf(cashHand, 0) {
		return nil, fmt.Errorf("%w: cash on hand must be a finite number", ErrInvalidInput)
	}

	g, err := s.games.FindByKey(ctx, locations.StageOpen, location, key)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}

	closed := s.now()
	g.CashHand = cashHand
	g.DateClosed = &closed
	g.BoxNumber = nil
	if err := s.games.Move(ctx, locations.StageOpen, locations.StageClosed, location, g); err != nil {
		return nil, err
	}
	metrics.GameMoves.WithLabelValues(string(locations.StageClosed)).Inc()
	return g, nil
}

// EmergencyLookup finds which location's Inventory holds a key,
// searching the fixed location order.
func (s *LifecycleService) EmergencyLookup(ctx context.Context, key string) (*models.GameRecord, error) {
	for _, loc := range s.registry.Locations() {
		g, err := s.games.FindByKey(ctx, locations.StageInventory, loc, key)
		if err != nil {
			return nil, err
		}
		if g != nil {
			return g, nil
		}
	}
	return nil, nil
}

// EmergencyMoveResult reports what an emergency relocation did.
type EmergencyMoveResult struct {
	Moved        bool   `json:"moved"`
	FromLocation string `json:"fromLocation,omitempty"`
	ToLocation   string `json:"toLocation,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// EmergencyMove relocates an Inventory-stage game to another
// location, bypassing the normal stage order. Moving a game onto its
// own location is a reported no-op, not an error.
func (s *LifecycleService) EmergencyMove(ctx context.Context, key, toLocation string) (*EmergencyMoveResult, error) {
	if err := s.requireLocation(toLocation); err != nil {
		return nil, err
	}

	g, err := s.EmergencyLookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}

	from := g.Location
	if from == toLocation {
		return &EmergencyMoveResult{Moved: false, FromLocation: from, Reason: "same_location"}, nil
	}

	g.Location = toLocation
	if err := s.games.Move(ctx, locations.StageInventory, locations.StageInventory, from, g); err != nil {
		return nil, err
	}
	metrics.GameMoves.WithLabelValues(string(locations.StageInventory)).Inc()
	return &EmergencyMoveResult{Moved: true, FromLocation: from, ToLocation: toLocation}, nil
}

// PickupResult reports a partial-success pickup batch.
type PickupResult struct {
	Picker string   `json:"picker"`
	Moved  int      `json:"moved"`
	Errors []string `json:"errors"`
}

// ConfirmPickup moves each listed Closed game into Transportation
// under the named picker. Items that fail are reported and skipped;
// the batch never aborts.
func (s *LifecycleService) ConfirmPickup(ctx context.Context, picker string, items []models.PickupItem) (*PickupResult, error) {
	if !s.pickers[picker] {
		return nil, fmt.Errorf("%w: picker %q not authorized", ErrUnauthorized, picker)
	}

	result := &PickupResult{Picker: picker, Errors: []string{}}
	at := s.now()
	for _, item := range items {
		if !s.registry.Valid(item.Location) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: unknown location %q", item.Key, item.Location))
			continue
		}
		moved, err := s.games.ConfirmPickup(ctx, item.Location, item.Key, picker, at)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.Key, err))
			continue
		}
		if !moved {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: not in closed at %s", item.Key, item.Location))
			continue
		}
		metrics.GameMoves.WithLabelValues("transportation").Inc()
		result.Moved++
	}
	return result, nil
}

// PickupList groups Closed-stage games by location for the pickup
// screen.
func (s *LifecycleService) PickupList(ctx context.Context) (map[string][]models.GameRecord, error) {
	byLocation := make(map[string][]models.GameRecord)
	for _, loc := range s.registry.Locations() {
		games, err := s.games.ListStage(ctx, locations.StageClosed, loc)
		if err != nil {
			return nil, err
		}
		byLocation[loc] = games
	}
	return byLocation, nil
}

// DropOff moves games from Transportation into the office, creating
// the office intake row and the deposit row. Absent keys are skipped.
func (s *LifecycleService) DropOff(ctx context.Context, keys []string) error {
	at := s.now()
	for _, key := range keys {
		moved, err := s.transport.DropOff(ctx, key, at)
		if err != nil {
			return err
		}
		if moved {
			metrics.GameMoves.WithLabelValues("office").Inc()
		}
	}
	return nil
}

// SendToBank stamps the going-to-bank phase on each key. Keys whose
// gate precondition does not hold are silently skipped.
func (s *LifecycleService) SendToBank(ctx context.Context, keys []string) error {
	at := s.now()
	for _, key := range keys {
		if _, err := s.deposits.MarkGoingToBank(ctx, key, at); err != nil {
			return err
		}
	}
	return nil
}

// ConfirmAtBank stamps the dropped-at-bank phase, which only takes
// effect after SendToBank has run for the key.
func (s *LifecycleService) ConfirmAtBank(ctx context.Context, keys []string) error {
	at := s.now()
	for _, key := range keys {
		if _, err := s.deposits.MarkDroppedAtBank(ctx, key, at); err != nil {
			return err
		}
	}
	return nil
}

// SellTickets records a sale against an Open-stage game, located by
// key or by box number. When the count is omitted it is derived from
// the money inserted; cash only ever grows by count times the ticket
// price, change is not banked.
func (s *LifecycleService) SellTickets(ctx context.Context, location, key string, box *int, count *int, money *float64) (*models.GameRecord, error) {
	g, err := s.resolveOpen(ctx, location, key, box)
	if err != nil {
		return nil, err
	}

	if g.TicketPrice == nil || *g.TicketPrice <= 0 {
		return nil, fmt.Errorf("%w: game has no ticket price", ErrInvalidInput)
	}
	price := *g.TicketPrice

	n := 0
	if count != nil {
		n = *count
	} else {
		if money == nil || math.IsNaN(*money) || math.IsInf(*money, 0) {
			return nil, fmt.Errorf("%w: need a ticket count or money inserted", ErrInvalidInput)
		}
		n = int(math.Floor(*money / price))
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: ticket count must be positive", ErrInvalidInput)
	}
	if n > g.CurrentTickets {
		return nil, fmt.Errorf("%w: only %d tickets remain", ErrInvalidInput, g.CurrentTickets)
	}

	g.TicketsSold += n
	g.CurrentTickets -= n
	g.CashHand += float64(n) * price
	if err := s.games.SetCounters(ctx, g.Location, g.Key, g.TicketsSold, g.CurrentTickets, g.WinnersSold, g.CurrentWinners, g.CashHand); err != nil {
		return nil, err
	}
	return g, nil
}

// RecordWinners pays out winners against an Open-stage game. The
// remaining-winner counter clamps at zero; cash drops by the payout.
func (s *LifecycleService) RecordWinners(ctx context.Context, location, key string, box *int, winnersPaid int, payoutCash float64) (*models.GameRecord, error) {
	if winnersPaid < 0 || payoutCash < 0 || math.IsNaN(payoutCash) || math.IsInf(payoutCash, 0) {
		return nil, fmt.Errorf("%w: winners and payout must be non-negative", ErrInvalidInput)
	}

	g, err := s.resolveOpen(ctx, location, key, box)
	if err != nil {
		return nil, err
	}

	g.WinnersSold += winnersPaid
	g.CurrentWinners -= winnersPaid
	if g.CurrentWinners < 0 {
		g.CurrentWinners = 0
	}
	g.CashHand -= payoutCash
	if err := s.games.SetCounters(ctx, g.Location, g.Key, g.TicketsSold, g.CurrentTickets, g.WinnersSold, g.CurrentWinners, g.CashHand); err != nil {
		return nil, err
	}
	return g, nil
}

// FindGame searches Open, then Inventory, then Closed across every
// location for a key and reports which stage holds it.
func (s *LifecycleService) FindGame(ctx context.Context, key string) (locations.Stage, *models.GameRecord, error) {
	for _, stage := range []locations.Stage{locations.StageOpen, locations.StageInventory, locations.StageClosed} {
		g, err := s.games.FindAnyLocation(ctx, stage, key)
		if err != nil {
			return "", nil, err
		}
		if g != nil {
			return stage, g, nil
		}
	}
	return "", nil, nil
}

// InventoryLive lists every Inventory-stage game across all
// locations.
func (s *LifecycleService) InventoryLive(ctx context.Context) ([]models.GameSummary, error) {
	var results []models.GameSummary
	for _, loc := range s.registry.Locations() {
		games, err := s.games.ListStage(ctx, locations.StageInventory, loc)
		if err != nil {
			return nil, err
		}
		for _, g := range games {
			results = append(results, models.GameSummary{Location: g.Location, Key: g.Key, Name: g.Name})
		}
	}
	return results, nil
}

// OpenBoxes lists a location's Open-stage games that occupy a selling
// box.
func (s *LifecycleService) OpenBoxes(ctx context.Context, location string) ([]models.GameRecord, error) {
	if err := s.requireLocation(location); err != nil {
		return nil, err
	}
	return s.games.ListBoxes(ctx, location)
}

func (s *LifecycleService) ListTransportation(ctx context.Context) ([]models.TransportationRecord, error) {
	return s.transport.List(ctx)
}

func (s *LifecycleService) ListDeposits(ctx context.Context) ([]models.DepositRecord, error) {
	return s.deposits.List(ctx)
}

func (s *LifecycleService) requireLocation(location string) error {
	if !s.registry.Valid(location) {
		return fmt.Errorf("%w: unknown location %q", ErrInvalidInput, location)
	}
	return nil
}

func (s *LifecycleService) resolveOpen(ctx context.Context, location, key string, box *int) (*models.GameRecord, error) {
	if err := s.requireLocation(location); err != nil {
		return nil, err
	}

	if key != "" {
		g, err := s.games.FindByKey(ctx, locations.StageOpen, location, key)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, ErrNotFound
		}
		return g, nil
	}

	if box == nil {
		return nil, fmt.Errorf("%w: need a game key or box number", ErrInvalidInput)
	}
	games, err := s.games.ListBoxes(ctx, location)
	if err != nil {
		return nil, err
	}
	for i := range games {
		if games[i].BoxNumber != nil && *games[i].BoxNumber == *box {
			return &games[i], nil
		}
	}
	return nil, ErrNotFound
}
