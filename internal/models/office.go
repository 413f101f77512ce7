package models

import "time"

// OfficeRecord tracks a game through office intake. The four scan
// columns fill strictly in order: audit_office, river_room,
// bin_number, storage.
type OfficeRecord struct {
	Key         string     `json:"key" db:"game_key"`
	Name        *string    `json:"gname" db:"gname"`
	CashHand    float64    `json:"cash_hand" db:"cash_hand"`
	Picker      *string    `json:"pick_up" db:"pick_up"`
	OfficeAt    time.Time  `json:"office_at" db:"office_at"`
	AuditOffice *time.Time `json:"audit_office" db:"audit_office"`
	RiverRoom   *string    `json:"river_room" db:"river_room"`
	BinNumber   *string    `json:"bin_number" db:"bin_number"`
	Storage     *string    `json:"storage" db:"storage"`
}
