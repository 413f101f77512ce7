package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gametrack-backend/internal/dbf"
	"gametrack-backend/internal/locations"
	"gametrack-backend/internal/models"
)

// GameUpserter is the writer side the intake pipeline needs.
type GameUpserter interface {
	BulkUpsert(ctx context.Context, stage locations.Stage, games []*models.GameRecord) error
}

// Parser turns uploaded file bytes into generic rows.
type Parser func(data []byte) ([]map[string]string, error)

// IntakeResult reports a successful ingest.
type IntakeResult struct {
	Location string `json:"location"`
	Inserted int    `json:"inserted"`
}

// IntakeService ingests distributor DBF exports into a location's
// Inventory stage.
type IntakeService struct {
	games    GameUpserter
	registry *locations.Registry
	parser   Parser
}

func NewIntakeService(games GameUpserter, registry *locations.Registry) *IntakeService {
	return &IntakeService{games: games, registry: registry, parser: dbf.Parse}
}

// SetParser swaps the file parser, used by tests to feed rows
// directly.
func (s *IntakeService) SetParser(p Parser) {
	s.parser = p
}

// Ingest parses an upload and bulk-inserts every usable record into
// the single location the file resolves to. A file whose records map
// to two different locations is rejected wholesale; nothing commits.
func (s *IntakeService) Ingest(ctx context.Context, data []byte) (*IntakeResult, error) {
	rows, err := s.parser(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	target := ""
	var games []*models.GameRecord
	for _, row := range rows {
		code := locations.Last3FromSiteNo(row["SITENO"])
		if code == "" {
			continue
		}
		loc, ok := s.registry.LocationForSiteCode(code)
		if !ok {
			continue
		}

		if target == "" {
			target = loc
		} else if loc != target {
			return nil, fmt.Errorf("%w: %s and %s in one file", ErrMixedLocations, target, loc)
		}

		key := buildKey(row)
		if key == "" {
			continue
		}
		games = append(games, mapRecord(loc, key, row))
	}

	if target == "" {
		return nil, ErrNoLocationDetermined
	}
	if len(games) == 0 {
		return nil, ErrNoUsableRows
	}

	if err := s.games.BulkUpsert(ctx, locations.StageInventory, games); err != nil {
		return nil, err
	}
	return &IntakeResult{Location: target, Inserted: len(games)}, nil
}

// buildKey assembles the composite "MFCID PARTNO SERNO" identifier.
// Records missing any component are unusable.
func buildKey(row map[string]string) string {
	mfc := row["MFCID"]
	part := row["PARTNO"]
	ser := row["SERNO"]
	if mfc == "" || part == "" || ser == "" {
		return ""
	}
	return mfc + " " + part + " " + ser
}

func mapRecord(location, key string, row map[string]string) *models.GameRecord {
	g := &models.GameRecord{Location: location, Key: key}

	g.Name = optString(row["GNAME"])
	g.DistID = optString(row["DIST_ID"])
	g.Type = optString(row["GTYPE"])
	g.Cost = optFloat(row["GCOST"])
	g.SiteNo = optString(row["SITENO"])
	g.InvNum = optString(row["INV_NUM"])
	g.TicketPrice = optFloat(row["PLCOST"])
	g.TicketCount = optInt(row["PLNOS"])
	g.IdealGross = optFloat(row["IDLGRS"])
	g.IdealPrize = optFloat(row["IDLPRZ"])
	g.PurchaseDate = optDate(row["DPURCH"])

	if g.IdealGross != nil && g.IdealPrize != nil {
		net := *g.IdealGross - *g.IdealPrize
		g.IdealNet = &net
	}
	// Tickets start fully unsold.
	if g.TicketCount != nil {
		g.CurrentTickets = *g.TicketCount
	}
	if g.WinnerCount != nil {
		g.CurrentWinners = *g.WinnerCount
	}
	return g
}

func optString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optFloat(v string) *float64 {
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func optInt(v string) *int {
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// optDate normalizes DBF date values (YYYYMMDD) to YYYY-MM-DD.
func optDate(v string) *string {
	if v == "" {
		return nil
	}
	digits := strings.ReplaceAll(v, "-", "")
	if len(digits) == 8 {
		d := digits[0:4] + "-" + digits[4:6] + "-" + digits[6:8]
		return &d
	}
	return &v
}
