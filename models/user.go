package models

import "time"

type User struct {
	ID           int       `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	UniversityID int       `json:"university_id" db:"university_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Роль пользователя в рамках одного соревнования.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleCoach           Role = "coach"
	RoleSiteCoordinator Role = "site_coordinator"
	RoleParticipant     Role = "participant"
)

// RoleSet — набор ролей пользователя в соревновании.
type RoleSet map[Role]struct{}

func (rs RoleSet) Has(role Role) bool {
	_, ok := rs[role]
	return ok
}

func NewRoleSet(roles ...Role) RoleSet {
	rs := make(RoleSet, len(roles))
	for _, r := range roles {
		rs[r] = struct{}{}
	}
	return rs
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
