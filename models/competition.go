package models

import "time"

type Competition struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Code string `json:"code" db:"code"`

	// Максимальный размер команды (обычно 3).
	TeamCapacity int `json:"team_capacity" db:"team_capacity"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
