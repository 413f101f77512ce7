package models

import "time"

// TransportationRecord is a closed game in transit between a site and
// the office, tagged with the picker who collected it.
type TransportationRecord struct {
	Key      string    `json:"key" db:"game_key"`
	Name     *string   `json:"gname" db:"gname"`
	CashHand float64   `json:"cash_hand" db:"cash_hand"`
	Picker   string    `json:"pick_up" db:"pick_up"`
	PickedAt time.Time `json:"picked_at" db:"picked_at"`
}
