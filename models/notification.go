package models

import "time"

type NotificationKind string

const (
	NotificationTeamWithdrawn       NotificationKind = "team_withdrawn"
	NotificationMemberLeft          NotificationKind = "member_left"
	NotificationNameChangeRequested NotificationKind = "name_change_requested"
	NotificationNameChangeResolved  NotificationKind = "name_change_resolved"
	NotificationSiteChangeRequested NotificationKind = "site_change_requested"
	NotificationSiteChangeResolved  NotificationKind = "site_change_resolved"
	NotificationSeatAssigned        NotificationKind = "seat_assigned"
	NotificationApprovalReminder    NotificationKind = "approval_reminder"
)

// Notification — строка уведомления, привязанная к команде и/или пользователю.
// Текст письма собирается на стороне доставки, здесь только структурные данные.
type Notification struct {
	ID            int              `json:"id" db:"id"`
	CompetitionID int              `json:"competition_id" db:"competition_id"`
	TeamID        *int             `json:"team_id,omitempty" db:"team_id"`
	UserID        *int             `json:"user_id,omitempty" db:"user_id"`
	Kind          NotificationKind `json:"kind" db:"kind"`
	Payload       string           `json:"payload" db:"payload"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
}
