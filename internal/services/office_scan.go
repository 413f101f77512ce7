package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gametrack-backend/internal/models"
	"gametrack-backend/internal/timeutil"
)

// ScanStep is the explicit office-intake state. A record's step is
// derived from which scan columns are filled; columns fill strictly
// in step order.
type ScanStep string

const (
	StepAuditOffice ScanStep = "audit_office"
	StepRiverRoom   ScanStep = "river_room"
	StepBinNumber   ScanStep = "bin_number"
	StepStorage     ScanStep = "storage"
	StepComplete    ScanStep = "complete"
)

const auditPhrase = "auditors office"

var riverRooms = map[string]bool{
	"silver":  true,
	"sockeye": true,
	"king":    true,
	"pink":    true,
	"chumb":   true,
}

var storagePattern = regexp.MustCompile(`^[A-Za-z]+\s+(\d{1,3})$`)

// CurrentStep reports the next scan a record is waiting on.
func CurrentStep(rec *models.OfficeRecord) ScanStep {
	switch {
	case rec.AuditOffice == nil:
		return StepAuditOffice
	case rec.RiverRoom == nil:
		return StepRiverRoom
	case rec.BinNumber == nil:
		return StepBinNumber
	case rec.Storage == nil:
		return StepStorage
	default:
		return StepComplete
	}
}

// EvaluateScan validates a scanned value against a step and returns
// the string to store. A rejected value never advances the step.
// StepAuditOffice stores a timestamp column, so its stored value is
// empty here and the caller stamps the time itself.
func EvaluateScan(step ScanStep, value string, now time.Time) (string, error) {
	v := strings.TrimSpace(value)

	switch step {
	case StepAuditOffice:
		if !strings.EqualFold(v, auditPhrase) {
			return "", fmt.Errorf("%w: expected audit office phrase", ErrInvalidScan)
		}
		return "", nil

	case StepRiverRoom:
		if !riverRooms[strings.ToLower(v)] {
			return "", fmt.Errorf("%w: unknown river room %q", ErrInvalidScan, v)
		}
		return v + " @ " + timeutil.Stamp(now), nil

	case StepBinNumber:
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 900 {
			return "", fmt.Errorf("%w: bin number must be 0-900", ErrInvalidScan)
		}
		return strconv.Itoa(n) + " @ " + timeutil.Stamp(now), nil

	case StepStorage:
		m := storagePattern.FindStringSubmatch(v)
		if m == nil {
			return "", fmt.Errorf("%w: storage slot must be a word and a number", ErrInvalidScan)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n > 100 {
			return "", fmt.Errorf("%w: storage slot number must be 0-100", ErrInvalidScan)
		}
		return v + " @ " + timeutil.Stamp(now), nil

	case StepComplete:
		return "", ErrAlreadyComplete

	default:
		return "", fmt.Errorf("%w: unknown scan step %q", ErrInvalidScan, step)
	}
}
