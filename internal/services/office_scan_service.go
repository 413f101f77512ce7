package services

import (
	"context"
	"time"

	"gametrack-backend/internal/models"
	"gametrack-backend/internal/timeutil"
)

// OfficeStore is the office-intake persistence the scan service
// needs.
type OfficeStore interface {
	FindByKey(ctx context.Context, key string) (*models.OfficeRecord, error)
	List(ctx context.Context) ([]models.OfficeRecord, error)
	SetAuditOffice(ctx context.Context, key string, at time.Time) error
	SetRiverRoom(ctx context.Context, key, value string) error
	SetBinNumber(ctx context.Context, key, value string) error
	SetStorage(ctx context.Context, key, value string) error
}

// ScanOutcome reports which step a scan filled and what was stored.
type ScanOutcome struct {
	Step   ScanStep `json:"step"`
	Stored string   `json:"stored,omitempty"`
}

// OfficeScanService applies scanned values to office intake records,
// one gated step at a time.
type OfficeScanService struct {
	office OfficeStore
	now    func() time.Time
}

func NewOfficeScanService(office OfficeStore) *OfficeScanService {
	return &OfficeScanService{office: office, now: timeutil.Now}
}

// Find returns an office record and the step it is waiting on.
func (s *OfficeScanService) Find(ctx context.Context, key string) (*models.OfficeRecord, ScanStep, error) {
	rec, err := s.office.FindByKey(ctx, key)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", ErrNotFound
	}
	return rec, CurrentStep(rec), nil
}

func (s *OfficeScanService) List(ctx context.Context) ([]models.OfficeRecord, error) {
	return s.office.List(ctx)
}

// Scan validates a value against the record's current step and, when
// it passes, persists the step's column. A failed scan changes
// nothing.
func (s *OfficeScanService) Scan(ctx context.Context, key, value string) (*ScanOutcome, error) {
	rec, err := s.office.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	now := s.now()
	step := CurrentStep(rec)
	stored, err := EvaluateScan(step, value, now)
	if err != nil {
		return nil, err
	}

	switch step {
	case StepAuditOffice:
		err = s.office.SetAuditOffice(ctx, key, now)
	case StepRiverRoom:
		err = s.office.SetRiverRoom(ctx, key, stored)
	case StepBinNumber:
		err = s.office.SetBinNumber(ctx, key, stored)
	case StepStorage:
		err = s.office.SetStorage(ctx, key, stored)
	}
	if err != nil {
		return nil, err
	}
	return &ScanOutcome{Step: step, Stored: stored}, nil
}
