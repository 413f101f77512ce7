package models

import "time"

type Issue struct {
	ID        int       `json:"id" db:"id"`
	GameKey   string    `json:"key" db:"game_key"`
	Issue     string    `json:"issue" db:"issue"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
