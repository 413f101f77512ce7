package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"gametrack-backend/internal/locations"
	"gametrack-backend/internal/models"
)

var testLocations = []string{"Chanticlear", "McDuffs", "Willies", "Northwoods"}

var testSiteCodes = map[string]string{
	"006": "Chanticlear",
	"014": "McDuffs",
	"012": "Willies",
	"009": "Northwoods",
}

func testRegistry() *locations.Registry {
	return locations.NewRegistry(testLocations, testSiteCodes)
}

func stageKey(location, key string) string {
	return location + "|" + key
}

type fakeGameStore struct {
	stages         map[locations.Stage]map[string]*models.GameRecord
	transportation map[string]models.TransportationRecord
}

func newFakeGameStore() *fakeGameStore {
	s := &fakeGameStore{
		stages:         make(map[locations.Stage]map[string]*models.GameRecord),
		transportation: make(map[string]models.TransportationRecord),
	}
	for _, stage := range []locations.Stage{locations.StageInventory, locations.StageOpen, locations.StageClosed, locations.StageFinalClosed} {
		s.stages[stage] = make(map[string]*models.GameRecord)
	}
	return s
}

func (s *fakeGameStore) put(stage locations.Stage, g models.GameRecord) {
	s.stages[stage][stageKey(g.Location, g.Key)] = &g
}

func (s *fakeGameStore) FindByKey(_ context.Context, stage locations.Stage, location, key string) (*models.GameRecord, error) {
	g, ok := s.stages[stage][stageKey(location, key)]
	if !ok {
		return nil, nil
	}
	copied := *g
	return &copied, nil
}

func (s *fakeGameStore) FindAnyLocation(_ context.Context, stage locations.Stage, key string) (*models.GameRecord, error) {
	for _, loc := range testLocations {
		if g, ok := s.stages[stage][stageKey(loc, key)]; ok {
			copied := *g
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeGameStore) Move(_ context.Context, from, to locations.Stage, fromLocation string, g *models.GameRecord) error {
	copied := *g
	s.stages[to][stageKey(g.Location, g.Key)] = &copied
	delete(s.stages[from], stageKey(fromLocation, g.Key))
	return nil
}

func (s *fakeGameStore) ListStage(_ context.Context, stage locations.Stage, location string) ([]models.GameRecord, error) {
	var out []models.GameRecord
	for _, g := range s.stages[stage] {
		if g.Location == location {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (s *fakeGameStore) ListBoxes(_ context.Context, location string) ([]models.GameRecord, error) {
	var out []models.GameRecord
	for _, g := range s.stages[locations.StageOpen] {
		if g.Location == location && g.BoxNumber != nil {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (s *fakeGameStore) SetCounters(_ context.Context, location, key string, ticketsSold, currentTickets, winnersSold, currentWinners int, cashHand float64) error {
	g, ok := s.stages[locations.StageOpen][stageKey(location, key)]
	if !ok {
		return errors.New("no open row")
	}
	g.TicketsSold = ticketsSold
	g.CurrentTickets = currentTickets
	g.WinnersSold = winnersSold
	g.CurrentWinners = currentWinners
	g.CashHand = cashHand
	return nil
}

func (s *fakeGameStore) ConfirmPickup(_ context.Context, location, key, picker string, at time.Time) (bool, error) {
	g, ok := s.stages[locations.StageClosed][stageKey(location, key)]
	if !ok {
		return false, nil
	}
	copied := *g
	s.stages[locations.StageFinalClosed][stageKey(location, key)] = &copied
	s.transportation[key] = models.TransportationRecord{Key: key, Name: g.Name, CashHand: g.CashHand, Picker: picker, PickedAt: at}
	delete(s.stages[locations.StageClosed], stageKey(location, key))
	return true, nil
}

func (s *fakeGameStore) CountStage(_ context.Context, stage locations.Stage, location string) (int, error) {
	count := 0
	for _, g := range s.stages[stage] {
		if g.Location == location {
			count++
		}
	}
	return count, nil
}

type fakeTransportStore struct {
	records map[string]models.TransportationRecord
	dropped []string
}

func newFakeTransportStore() *fakeTransportStore {
	return &fakeTransportStore{records: make(map[string]models.TransportationRecord)}
}

func (s *fakeTransportStore) List(_ context.Context) ([]models.TransportationRecord, error) {
	var out []models.TransportationRecord
	for _, t := range s.records {
		out = append(out, t)
	}
	return out, nil
}

func (s *fakeTransportStore) DropOff(_ context.Context, key string, _ time.Time) (bool, error) {
	if _, ok := s.records[key]; !ok {
		return false, nil
	}
	delete(s.records, key)
	s.dropped = append(s.dropped, key)
	return true, nil
}

type fakeDepositStore struct {
	records map[string]*models.DepositRecord
}

func newFakeDepositStore() *fakeDepositStore {
	return &fakeDepositStore{records: make(map[string]*models.DepositRecord)}
}

func (s *fakeDepositStore) List(_ context.Context) ([]models.DepositRecord, error) {
	var out []models.DepositRecord
	for _, d := range s.records {
		out = append(out, *d)
	}
	return out, nil
}

func (s *fakeDepositStore) MarkGoingToBank(_ context.Context, key string, at time.Time) (bool, error) {
	d, ok := s.records[key]
	if !ok || d.GoingToBank != nil || d.DroppedAtBank != nil {
		return false, nil
	}
	stamp := at
	d.GoingToBank = &stamp
	return true, nil
}

func (s *fakeDepositStore) MarkDroppedAtBank(_ context.Context, key string, at time.Time) (bool, error) {
	d, ok := s.records[key]
	if !ok || d.GoingToBank == nil || d.DroppedAtBank != nil {
		return false, nil
	}
	stamp := at
	d.DroppedAtBank = &stamp
	return true, nil
}

func (s *fakeDepositStore) CountPending(_ context.Context) (int, error) {
	count := 0
	for _, d := range s.records {
		if d.GoingToBank == nil && d.DroppedAtBank == nil {
			count++
		}
	}
	return count, nil
}

func newTestService(games *fakeGameStore, transport *fakeTransportStore, deposits *fakeDepositStore) *LifecycleService {
	svc := NewLifecycleService(games, transport, deposits, testRegistry(), []string{"Josh", "Steve"})
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func gameAt(location, key string) models.GameRecord {
	price := 1.0
	count := 5
	return models.GameRecord{
		Location:       location,
		Key:            key,
		TicketPrice:    &price,
		TicketCount:    &count,
		CurrentTickets: 5,
		CurrentWinners: 2,
	}
}

func TestOpenGameMovesRow(t *testing.T) {
	games := newFakeGameStore()
	games.put(locations.StageInventory, gameAt("Willies", "M1 P1 S1"))
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	box := 3
	g, err := svc.OpenGame(context.Background(), "Willies", "M1 P1 S1", &box)
	if err != nil {
		t.Fatalf("OpenGame: %v", err)
	}
	if g.DateOpened == nil {
		t.Error("DateOpened not stamped")
	}
	if g.BoxNumber == nil || *g.BoxNumber != 3 {
		t.Error("box number not assigned")
	}

	if _, ok := games.stages[locations.StageInventory][stageKey("Willies", "M1 P1 S1")]; ok {
		t.Error("row still in inventory after open")
	}
	if _, ok := games.stages[locations.StageOpen][stageKey("Willies", "M1 P1 S1")]; !ok {
		t.Error("row missing from open stage")
	}
}

func TestOpenGameRejectsBadBox(t *testing.T) {
	games := newFakeGameStore()
	games.put(locations.StageInventory, gameAt("Willies", "M1 P1 S1"))
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	for _, box := range []int{0, 8, -1} {
		b := box
		if _, err := svc.OpenGame(context.Background(), "Willies", "M1 P1 S1", &b); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("box %d: got %v, want ErrInvalidInput", box, err)
		}
	}
}

func TestOpenGameNotFound(t *testing.T) {
	svc := newTestService(newFakeGameStore(), newFakeTransportStore(), newFakeDepositStore())
	if _, err := svc.OpenGame(context.Background(), "Willies", "missing", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCloseGameNonFiniteCash(t *testing.T) {
	games := newFakeGameStore()
	games.put(locations.StageOpen, gameAt("McDuffs", "M1 P1 S1"))
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	for _, cash := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := svc.CloseGame(context.Background(), "McDuffs", "M1 P1 S1", cash); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("cash %v: got %v, want ErrInvalidInput", cash, err)
		}
	}
	if _, ok := games.stages[locations.StageOpen][stageKey("McDuffs", "M1 P1 S1")]; !ok {
		t.Error("failed close must leave the open row in place")
	}
}

func TestCloseGameStampsAndClearsBox(t *testing.T) {
	games := newFakeGameStore()
	g := gameAt("McDuffs", "M1 P1 S1")
	box := 2
	g.BoxNumber = &box
	games.put(locations.StageOpen, g)
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	closed, err := svc.CloseGame(context.Background(), "McDuffs", "M1 P1 S1", 125.50)
	if err != nil {
		t.Fatalf("CloseGame: %v", err)
	}
	if closed.CashHand != 125.50 {
		t.Errorf("cash = %v, want 125.50", closed.CashHand)
	}
	if closed.DateClosed == nil {
		t.Error("DateClosed not stamped")
	}
	if closed.BoxNumber != nil {
		t.Error("box number must clear on close")
	}
	if _, ok := games.stages[locations.StageClosed][stageKey("McDuffs", "M1 P1 S1")]; !ok {
		t.Error("row missing from closed stage")
	}
}

func TestEmergencyMoveSameLocationIsNoOp(t *testing.T) {
	games := newFakeGameStore()
	games.put(locations.StageInventory, gameAt("Chanticlear", "M1 P1 S1"))
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	result, err := svc.EmergencyMove(context.Background(), "M1 P1 S1", "Chanticlear")
	if err != nil {
		t.Fatalf("EmergencyMove: %v", err)
	}
	if result.Moved {
		t.Error("same-location move must report moved=false")
	}
	if result.Reason != "same_location" {
		t.Errorf("reason = %q, want same_location", result.Reason)
	}
	if g := games.stages[locations.StageInventory][stageKey("Chanticlear", "M1 P1 S1")]; g == nil {
		t.Error("no-op move must not touch the row")
	}
}

func TestEmergencyMoveRelocates(t *testing.T) {
	games := newFakeGameStore()
	games.put(locations.StageInventory, gameAt("Chanticlear", "M1 P1 S1"))
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	result, err := svc.EmergencyMove(context.Background(), "M1 P1 S1", "Northwoods")
	if err != nil {
		t.Fatalf("EmergencyMove: %v", err)
	}
	if !result.Moved || result.FromLocation != "Chanticlear" || result.ToLocation != "Northwoods" {
		t.Errorf("unexpected result %+v", result)
	}
	if _, ok := games.stages[locations.StageInventory][stageKey("Chanticlear", "M1 P1 S1")]; ok {
		t.Error("row left behind at source location")
	}
	moved, ok := games.stages[locations.StageInventory][stageKey("Northwoods", "M1 P1 S1")]
	if !ok {
		t.Fatal("row missing at destination location")
	}
	if moved.Location != "Northwoods" {
		t.Errorf("row location = %q, want Northwoods", moved.Location)
	}
}

func TestEmergencyMoveUnknownKey(t *testing.T) {
	svc := newTestService(newFakeGameStore(), newFakeTransportStore(), newFakeDepositStore())
	if _, err := svc.EmergencyMove(context.Background(), "missing", "Willies"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestConfirmPickupRejectsUnknownPicker(t *testing.T) {
	svc := newTestService(newFakeGameStore(), newFakeTransportStore(), newFakeDepositStore())
	_, err := svc.ConfirmPickup(context.Background(), "Mallory", []models.PickupItem{{Location: "Willies", Key: "M1 P1 S1"}})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestConfirmPickupPartialSuccess(t *testing.T) {
	games := newFakeGameStore()
	games.put(locations.StageClosed, gameAt("Willies", "GOOD 1 1"))
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	result, err := svc.ConfirmPickup(context.Background(), "Josh", []models.PickupItem{
		{Location: "Willies", Key: "GOOD 1 1"},
		{Location: "Willies", Key: "GONE 2 2"},
		{Location: "Atlantis", Key: "BAD 3 3"},
	})
	if err != nil {
		t.Fatalf("ConfirmPickup: %v", err)
	}
	if result.Moved != 1 {
		t.Errorf("moved = %d, want 1", result.Moved)
	}
	if len(result.Errors) != 2 {
		t.Errorf("errors = %v, want 2 entries", result.Errors)
	}
	if _, ok := games.stages[locations.StageFinalClosed][stageKey("Willies", "GOOD 1 1")]; !ok {
		t.Error("picked game missing from final archive")
	}
	if _, ok := games.transportation["GOOD 1 1"]; !ok {
		t.Error("picked game missing from transportation")
	}
}

func TestSellTicketsCountBounds(t *testing.T) {
	games := newFakeGameStore()
	games.put(locations.StageOpen, gameAt("Willies", "M1 P1 S1"))
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	six := 6
	if _, err := svc.SellTickets(context.Background(), "Willies", "M1 P1 S1", nil, &six, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("overselling: got %v, want ErrInvalidInput", err)
	}

	five := 5
	g, err := svc.SellTickets(context.Background(), "Willies", "M1 P1 S1", nil, &five, nil)
	if err != nil {
		t.Fatalf("SellTickets: %v", err)
	}
	if g.CurrentTickets != 0 {
		t.Errorf("current tickets = %d, want 0", g.CurrentTickets)
	}
	if g.CashHand != 5 {
		t.Errorf("cash = %v, want exactly 5", g.CashHand)
	}
}

func TestSellTicketsDerivesCountFromMoney(t *testing.T) {
	games := newFakeGameStore()
	g := gameAt("Willies", "M1 P1 S1")
	price := 2.0
	g.TicketPrice = &price
	games.put(locations.StageOpen, g)
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	money := 7.5
	sold, err := svc.SellTickets(context.Background(), "Willies", "M1 P1 S1", nil, nil, &money)
	if err != nil {
		t.Fatalf("SellTickets: %v", err)
	}
	// floor(7.50 / 2) = 3 tickets; change is not banked
	if sold.TicketsSold != 3 {
		t.Errorf("tickets sold = %d, want 3", sold.TicketsSold)
	}
	if sold.CashHand != 6 {
		t.Errorf("cash = %v, want 6", sold.CashHand)
	}
}

func TestSellTicketsByBoxNumber(t *testing.T) {
	games := newFakeGameStore()
	g := gameAt("Willies", "M1 P1 S1")
	box := 4
	g.BoxNumber = &box
	games.put(locations.StageOpen, g)
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	two := 2
	sold, err := svc.SellTickets(context.Background(), "Willies", "", &box, &two, nil)
	if err != nil {
		t.Fatalf("SellTickets by box: %v", err)
	}
	if sold.Key != "M1 P1 S1" {
		t.Errorf("resolved key = %q", sold.Key)
	}
}

func TestRecordWinnersClampsAndPays(t *testing.T) {
	games := newFakeGameStore()
	g := gameAt("Willies", "M1 P1 S1")
	g.CashHand = 50
	games.put(locations.StageOpen, g)
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	// 5 winners paid against 2 remaining: counter clamps at zero
	got, err := svc.RecordWinners(context.Background(), "Willies", "M1 P1 S1", nil, 5, 20)
	if err != nil {
		t.Fatalf("RecordWinners: %v", err)
	}
	if got.CurrentWinners != 0 {
		t.Errorf("current winners = %d, want 0", got.CurrentWinners)
	}
	if got.WinnersSold != 5 {
		t.Errorf("winners sold = %d, want 5", got.WinnersSold)
	}
	if got.CashHand != 30 {
		t.Errorf("cash = %v, want 30", got.CashHand)
	}

	if _, err := svc.RecordWinners(context.Background(), "Willies", "M1 P1 S1", nil, -1, 5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative winners: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.RecordWinners(context.Background(), "Willies", "M1 P1 S1", nil, 1, -5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative payout: got %v, want ErrInvalidInput", err)
	}
}

func TestBankTwoPhaseGate(t *testing.T) {
	deposits := newFakeDepositStore()
	deposits.records["M1 P1 S1"] = &models.DepositRecord{Key: "M1 P1 S1", CashHand: 100}
	svc := newTestService(newFakeGameStore(), newFakeTransportStore(), deposits)

	// confirmAtBank before sendToBank is a silent no-op
	if err := svc.ConfirmAtBank(context.Background(), []string{"M1 P1 S1"}); err != nil {
		t.Fatalf("ConfirmAtBank: %v", err)
	}
	if deposits.records["M1 P1 S1"].DroppedAtBank != nil {
		t.Error("dropped stamp set before going stamp")
	}

	if err := svc.SendToBank(context.Background(), []string{"M1 P1 S1"}); err != nil {
		t.Fatalf("SendToBank: %v", err)
	}
	first := deposits.records["M1 P1 S1"].GoingToBank
	if first == nil {
		t.Fatal("going stamp not set")
	}

	// second sendToBank leaves the original stamp
	if err := svc.SendToBank(context.Background(), []string{"M1 P1 S1"}); err != nil {
		t.Fatalf("SendToBank again: %v", err)
	}
	if deposits.records["M1 P1 S1"].GoingToBank != first {
		t.Error("second sendToBank must not restamp")
	}

	if err := svc.ConfirmAtBank(context.Background(), []string{"M1 P1 S1"}); err != nil {
		t.Fatalf("ConfirmAtBank: %v", err)
	}
	if deposits.records["M1 P1 S1"].DroppedAtBank == nil {
		t.Error("dropped stamp not set after gate opened")
	}
}

func TestDropOffSkipsMissingKeys(t *testing.T) {
	transport := newFakeTransportStore()
	transport.records["IN 1 1"] = models.TransportationRecord{Key: "IN 1 1", CashHand: 10}
	svc := newTestService(newFakeGameStore(), transport, newFakeDepositStore())

	if err := svc.DropOff(context.Background(), []string{"IN 1 1", "MISSING 2 2"}); err != nil {
		t.Fatalf("DropOff: %v", err)
	}
	if len(transport.dropped) != 1 || transport.dropped[0] != "IN 1 1" {
		t.Errorf("dropped = %v, want only IN 1 1", transport.dropped)
	}
}

func TestFindGameSearchesStagesInOrder(t *testing.T) {
	games := newFakeGameStore()
	games.put(locations.StageInventory, gameAt("Willies", "M1 P1 S1"))
	games.put(locations.StageOpen, gameAt("McDuffs", "M1 P1 S1"))
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	stage, g, err := svc.FindGame(context.Background(), "M1 P1 S1")
	if err != nil {
		t.Fatalf("FindGame: %v", err)
	}
	if stage != locations.StageOpen {
		t.Errorf("stage = %v, want Open first", stage)
	}
	if g.Location != "McDuffs" {
		t.Errorf("location = %q, want McDuffs", g.Location)
	}
}

func TestRoundTripPreservesFinancials(t *testing.T) {
	games := newFakeGameStore()
	g := gameAt("Willies", "M1 P1 S1")
	cost := 42.5
	g.Cost = &cost
	games.put(locations.StageInventory, g)
	svc := newTestService(games, newFakeTransportStore(), newFakeDepositStore())

	ctx := context.Background()
	if _, err := svc.OpenGame(ctx, "Willies", "M1 P1 S1", nil); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := svc.CloseGame(ctx, "Willies", "M1 P1 S1", 75); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := svc.ConfirmPickup(ctx, "Steve", []models.PickupItem{{Location: "Willies", Key: "M1 P1 S1"}}); err != nil {
		t.Fatalf("pickup: %v", err)
	}

	final, ok := games.stages[locations.StageFinalClosed][stageKey("Willies", "M1 P1 S1")]
	if !ok {
		t.Fatal("game never reached the final archive")
	}
	if final.Key != "M1 P1 S1" {
		t.Errorf("key changed through hops: %q", final.Key)
	}
	if final.TicketPrice == nil || *final.TicketPrice != 1.0 {
		t.Error("ticket price changed through hops")
	}
	if final.Cost == nil || *final.Cost != 42.5 {
		t.Error("cost changed through hops")
	}
	if final.CashHand != 75 {
		t.Errorf("cash = %v, want the closed amount 75", final.CashHand)
	}
}
