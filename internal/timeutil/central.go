package timeutil

import (
	"time"
)

// Central is the US Central Time location; all four sites operate in it.
var Central *time.Location

func init() {
	var err error
	Central, err = time.LoadLocation("America/Chicago")
	if err != nil {
		// Fallback: fixed CST offset if the tz database is unavailable
		Central = time.FixedZone("CST", -6*60*60)
	}
}

// Now returns the current time in Central Time.
func Now() time.Time {
	return time.Now().In(Central)
}

// Stamp returns the UTC RFC3339 form used for stored scan values and
// date columns, e.g. "2025-01-14T21:03:05Z".
func Stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// StampNow is Stamp(Now()).
func StampNow() string {
	return Stamp(time.Now())
}

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)
