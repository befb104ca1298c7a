package services

import "context"

// Структурные данные уведомлений. Текст сообщений собирается на стороне
// доставки, жизненный цикл команд оперирует только идентификаторами и именами.

type WithdrawalNote struct {
	CompetitionID   int    `json:"competition_id"`
	CompetitionName string `json:"competition_name"`
	CompetitionCode string `json:"competition_code"`
	TeamID          int    `json:"team_id"`
	TeamName        string `json:"team_name"`
	UserID          int    `json:"user_id"`
	CoachID         int    `json:"coach_id"`

	// TeamDeleted выставляется при выходе единственного участника.
	TeamDeleted bool `json:"team_deleted"`
	// NewTeamID — команда-одиночка, созданная для вышедшего участника.
	NewTeamID *int `json:"new_team_id,omitempty"`
}

type NameChangeNote struct {
	CompetitionID int    `json:"competition_id"`
	TeamID        int    `json:"team_id"`
	TeamName      string `json:"team_name"`
	RequestedName string `json:"requested_name,omitempty"`
	CoachID       int    `json:"coach_id"`
	Approved      bool   `json:"approved"`
}

type SiteChangeNote struct {
	CompetitionID int    `json:"competition_id"`
	TeamID        int    `json:"team_id"`
	TeamName      string `json:"team_name"`
	SiteID        int    `json:"site_id,omitempty"`
	CoachID       int    `json:"coach_id"`
	Approved      bool   `json:"approved"`
}

type SeatNote struct {
	CompetitionID int    `json:"competition_id"`
	SiteID        int    `json:"site_id"`
	TeamID        int    `json:"team_id"`
	TeamName      string `json:"team_name"`
	Seat          string `json:"seat"`
}

type ReminderNote struct {
	CompetitionID int   `json:"competition_id"`
	CoachID       int   `json:"coach_id"`
	TeamIDs       []int `json:"team_ids"`
}

// NotificationSink — получатель событий жизненного цикла, fire-and-forget.
// Ошибки доставки логируются реализацией и никогда не доходят до вызывающего.
type NotificationSink interface {
	TeamWithdrawn(ctx context.Context, note WithdrawalNote)
	NameChangeRequested(ctx context.Context, note NameChangeNote)
	NameChangeResolved(ctx context.Context, note NameChangeNote)
	SiteChangeRequested(ctx context.Context, note SiteChangeNote)
	SiteChangeResolved(ctx context.Context, note SiteChangeNote)
	SeatAssigned(ctx context.Context, note SeatNote)
	ApprovalReminder(ctx context.Context, note ReminderNote)
}
