// Package locations holds the fixed set of physical sites and the
// mapping from lifecycle stages to their backing tables.
package locations

import (
	"errors"
	"fmt"
	"regexp"
)

var ErrUnknownLocation = errors.New("unknown location")

// Stage identifies one phase of a game record's lifecycle.
type Stage string

const (
	StageInventory   Stage = "Inventory"
	StageOpen        Stage = "Open"
	StageClosed      Stage = "Closed"
	StageFinalClosed Stage = "Final_Closed"
)

// stageTables is the only place table names come from; they are never
// built from request input.
var stageTables = map[Stage]string{
	StageInventory:   "inventory_games",
	StageOpen:        "open_games",
	StageClosed:      "closed_games",
	StageFinalClosed: "final_closed",
}

// Table returns the backing table for a stage.
func Table(stage Stage) string {
	t, ok := stageTables[stage]
	if !ok {
		panic(fmt.Sprintf("locations: no table for stage %q", stage))
	}
	return t
}

var last3Pattern = regexp.MustCompile(`^\d{3}$`)

// Registry is the immutable per-deployment location configuration:
// the ordered location list and the SITENO suffix mapping.
type Registry struct {
	locations []string
	siteCodes map[string]string
	known     map[string]bool
}

func NewRegistry(locs []string, siteCodes map[string]string) *Registry {
	r := &Registry{
		locations: append([]string(nil), locs...),
		siteCodes: make(map[string]string, len(siteCodes)),
		known:     make(map[string]bool, len(locs)),
	}
	for _, loc := range locs {
		r.known[loc] = true
	}
	for code, loc := range siteCodes {
		r.siteCodes[code] = loc
	}
	return r
}

// Locations returns the location list in its fixed, deterministic order.
func (r *Registry) Locations() []string {
	return append([]string(nil), r.locations...)
}

// Valid reports whether loc is one of the configured locations.
func (r *Registry) Valid(loc string) bool {
	return r.known[loc]
}

// Require returns loc unchanged or ErrUnknownLocation.
func (r *Registry) Require(loc string) (string, error) {
	if !r.known[loc] {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocation, loc)
	}
	return loc, nil
}

// LocationForSiteCode maps the trailing three digits of a SITENO to a
// location. Unmapped codes return ok=false; callers skip, not abort.
func (r *Registry) LocationForSiteCode(last3 string) (string, bool) {
	loc, ok := r.siteCodes[last3]
	return loc, ok
}

// Last3FromSiteNo extracts the trailing 3-digit site code from a raw
// SITENO value, or "" when the suffix is not exactly three digits.
func Last3FromSiteNo(siteno string) string {
	if len(siteno) < 3 {
		return ""
	}
	last3 := siteno[len(siteno)-3:]
	if !last3Pattern.MatchString(last3) {
		return ""
	}
	return last3
}
