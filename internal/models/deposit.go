package models

import "time"

// DepositRecord is the cash side of a dropped-off game. The two bank
// timestamps form a two-phase gate: going_to_bank is only ever set
// while both are null, dropped_at_bank only after going_to_bank.
type DepositRecord struct {
	Key           string     `json:"key" db:"game_key"`
	CashHand      float64    `json:"cash_hand" db:"cash_hand"`
	Picker        *string    `json:"pick_up" db:"pick_up"`
	GoingToBank   *time.Time `json:"going_to_bank" db:"going_to_bank"`
	DroppedAtBank *time.Time `json:"dropped_at_bank" db:"dropped_at_bank"`
}
