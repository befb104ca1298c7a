package models

import "time"

type TeamStatus string

const (
	TeamStatusPending      TeamStatus = "pending"
	TeamStatusUnregistered TeamStatus = "unregistered"
	TeamStatusRegistered   TeamStatus = "registered"
)

func (s TeamStatus) Valid() bool {
	switch s {
	case TeamStatusPending, TeamStatusUnregistered, TeamStatusRegistered:
		return true
	}
	return false
}

type Team struct {
	ID            int        `json:"id" db:"id"`
	CompetitionID int        `json:"competition_id" db:"competition_id"`
	Name          string     `json:"name" db:"name"`
	PendingName   *string    `json:"pending_name,omitempty" db:"pending_name"`
	UniversityID  int        `json:"university_id" db:"university_id"`
	CoachID       int        `json:"coach_id" db:"coach_id"`
	SiteID        int        `json:"site_id" db:"site_id"`
	PendingSiteID *int       `json:"pending_site_id,omitempty" db:"pending_site_id"`
	Seat          *string    `json:"seat,omitempty" db:"seat"`
	Size          int        `json:"size" db:"size"`
	Status        TeamStatus `json:"status" db:"status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`

	// Участники загружаются отдельно; пустой слот — это просто отсутствие
	// элемента, len(Participants) == Size.
	Participants []*Participant `json:"participants,omitempty" db:"-"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}

// BestScore возвращает максимальный балл среди участников команды.
func (t *Team) BestScore() int {
	best := 0
	for _, p := range t.Participants {
		if p.Score > best {
			best = p.Score
		}
	}
	return best
}

// HasMember проверяет, состоит ли пользователь в команде.
func (t *Team) HasMember(userID int) bool {
	for _, p := range t.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// MemberUserIDs возвращает идентификаторы пользователей в порядке слотов.
func (t *Team) MemberUserIDs() []int {
	ids := make([]int, 0, len(t.Participants))
	for _, p := range t.Participants {
		ids = append(ids, p.UserID)
	}
	return ids
}
