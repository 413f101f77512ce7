package services

import (
	"context"
	"errors"
	"testing"

	"gametrack-backend/internal/locations"
	"gametrack-backend/internal/models"
)

type fakeUpserter struct {
	stage locations.Stage
	games []*models.GameRecord
	calls int
}

func (f *fakeUpserter) BulkUpsert(_ context.Context, stage locations.Stage, games []*models.GameRecord) error {
	f.stage = stage
	f.games = games
	f.calls++
	return nil
}

func fixedRows(rows []map[string]string) Parser {
	return func([]byte) ([]map[string]string, error) {
		return rows, nil
	}
}

func dbfRow(siteno string) map[string]string {
	return map[string]string{
		"MFCID":  "ARR",
		"PARTNO": "4411",
		"SERNO":  "0012345",
		"GNAME":  "LUCKY SEVENS",
		"SITENO": siteno,
		"PLCOST": "1.00",
		"PLNOS":  "2400",
		"IDLGRS": "2400.00",
		"IDLPRZ": "1800.00",
		"DPURCH": "20250110",
	}
}

func TestIngestMapsFields(t *testing.T) {
	up := &fakeUpserter{}
	svc := NewIntakeService(up, testRegistry())
	svc.SetParser(fixedRows([]map[string]string{dbfRow("55006")}))

	result, err := svc.Ingest(context.Background(), nil)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if result.Location != "Chanticlear" || result.Inserted != 1 {
		t.Errorf("result = %+v", result)
	}
	if up.stage != locations.StageInventory {
		t.Errorf("stage = %v, want Inventory", up.stage)
	}

	g := up.games[0]
	if g.Key != "ARR 4411 0012345" {
		t.Errorf("key = %q", g.Key)
	}
	if g.Location != "Chanticlear" {
		t.Errorf("location = %q", g.Location)
	}
	if g.Name == nil || *g.Name != "LUCKY SEVENS" {
		t.Error("name not mapped")
	}
	if g.TicketCount == nil || *g.TicketCount != 2400 {
		t.Error("ticket count not mapped")
	}
	if g.CurrentTickets != 2400 {
		t.Errorf("current tickets = %d, want full count", g.CurrentTickets)
	}
	if g.IdealNet == nil || *g.IdealNet != 600 {
		t.Errorf("ideal net = %v, want 600", g.IdealNet)
	}
	if g.PurchaseDate == nil || *g.PurchaseDate != "2025-01-10" {
		t.Errorf("purchase date = %v", g.PurchaseDate)
	}
}

func TestIngestRejectsMixedLocations(t *testing.T) {
	up := &fakeUpserter{}
	svc := NewIntakeService(up, testRegistry())
	a := dbfRow("55006")
	b := dbfRow("55014")
	b["SERNO"] = "0099999"
	svc.SetParser(fixedRows([]map[string]string{a, b}))

	if _, err := svc.Ingest(context.Background(), nil); !errors.Is(err, ErrMixedLocations) {
		t.Fatalf("got %v, want ErrMixedLocations", err)
	}
	if up.calls != 0 {
		t.Error("mixed-location file must not write anything")
	}
}

func TestIngestNoLocationDetermined(t *testing.T) {
	svc := NewIntakeService(&fakeUpserter{}, testRegistry())
	svc.SetParser(fixedRows([]map[string]string{dbfRow("55999"), dbfRow("7")}))

	if _, err := svc.Ingest(context.Background(), nil); !errors.Is(err, ErrNoLocationDetermined) {
		t.Errorf("got %v, want ErrNoLocationDetermined", err)
	}
}

func TestIngestNoUsableRows(t *testing.T) {
	svc := NewIntakeService(&fakeUpserter{}, testRegistry())
	keyless := dbfRow("55012")
	delete(keyless, "MFCID")
	svc.SetParser(fixedRows([]map[string]string{keyless}))

	if _, err := svc.Ingest(context.Background(), nil); !errors.Is(err, ErrNoUsableRows) {
		t.Errorf("got %v, want ErrNoUsableRows", err)
	}
}

func TestIngestSkipsRowsMissingKeyParts(t *testing.T) {
	up := &fakeUpserter{}
	svc := NewIntakeService(up, testRegistry())
	broken := dbfRow("55012")
	delete(broken, "SERNO")
	good := dbfRow("55012")
	svc.SetParser(fixedRows([]map[string]string{broken, good}))

	result, err := svc.Ingest(context.Background(), nil)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if result.Inserted != 1 {
		t.Errorf("inserted = %d, want 1", result.Inserted)
	}
}

func TestIngestParserFailure(t *testing.T) {
	svc := NewIntakeService(&fakeUpserter{}, testRegistry())
	svc.SetParser(func([]byte) ([]map[string]string, error) {
		return nil, errors.New("not a dbf file")
	})

	if _, err := svc.Ingest(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}
