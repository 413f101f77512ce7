package models

import "time"

// GameRecord is one pull-tab game row. The same shape lives in every
// stage table; the stage a row sits in is its lifecycle state.
// Key is the composite "MFCID PARTNO SERNO" identifier.
type GameRecord struct {
	Location       string     `json:"location" db:"location"`
	Key            string     `json:"key" db:"game_key"`
	Name           *string    `json:"gname" db:"gname"`
	DistID         *string    `json:"dist_id" db:"dist_id"`
	Type           *string    `json:"gtype" db:"gtype"`
	Cost           *float64   `json:"gcost" db:"gcost"`
	SiteNo         *string    `json:"siteno" db:"siteno"`
	InvNum         *string    `json:"inv_num" db:"inv_num"`
	TicketPrice    *float64   `json:"ticket_price" db:"ticket_price"`
	TicketCount    *int       `json:"ticket_count" db:"ticket_count"`
	TicketsSold    int        `json:"tickets_sold" db:"tickets_sold"`
	CurrentTickets int        `json:"current_tickets" db:"current_tickets"`
	WinnerCount    *int       `json:"winner_count" db:"winner_count"`
	WinnersSold    int        `json:"winners_sold" db:"winners_sold"`
	CurrentWinners int        `json:"current_winners" db:"current_winners"`
	IdealGross     *float64   `json:"ideal_gross" db:"ideal_gross"`
	IdealPrize     *float64   `json:"ideal_prize" db:"ideal_prize"`
	IdealNet       *float64   `json:"ideal_net" db:"ideal_net"`
	PurchaseDate   *string    `json:"purchase_date" db:"purchase_date"`
	CashHand       float64    `json:"cash_hand" db:"cash_hand"`
	DateOpened     *time.Time `json:"date_opened" db:"date_opened"`
	DateClosed     *time.Time `json:"date_closed" db:"date_closed"`
	BoxNumber      *int       `json:"box_number" db:"box_number"`
}

// GameSummary is the trimmed listing row for the live inventory view.
type GameSummary struct {
	Location string  `json:"location"`
	Key      string  `json:"key"`
	Name     *string `json:"gname"`
}

// PickupItem identifies one closed game selected for pickup.
type PickupItem struct {
	Location string `json:"location"`
	Key      string `json:"key"`
}
