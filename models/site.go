package models

type Site struct {
	ID            int    `json:"id" db:"id"`
	CompetitionID int    `json:"competition_id" db:"competition_id"`
	Name          string `json:"name" db:"name"`
	Address       string `json:"address" db:"address"`
	Capacity      int    `json:"capacity" db:"capacity"`
}
