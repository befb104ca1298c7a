package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Olzhas-T/contest-system/formation"
	"github.com/Olzhas-T/contest-system/models"
	"github.com/Olzhas-T/contest-system/repositories"
	"golang.org/x/sync/errgroup"
)

// notificationService сохраняет строку уведомления, рассылает событие в
// websocket-комнату соревнования и шлёт письма адресатам. Любой сбой
// доставки только логируется: операции жизненного цикла не должны падать
// из-за уведомлений.
type notificationService struct {
	notifRepo repositories.NotificationRepository
	userRepo  repositories.UserRepository
	email     *EmailService
	hub       *formation.Hub
	logger    *slog.Logger
}

func NewNotificationService(
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	email *EmailService,
	hub *formation.Hub,
	logger *slog.Logger,
) NotificationSink {
	return &notificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		email:     email,
		hub:       hub,
		logger:    logger,
	}
}

func (s *notificationService) deliver(ctx context.Context, competitionID int, teamID, userID *int, kind models.NotificationKind, note interface{}, recipientIDs []int, subject string) {
	payload, err := json.Marshal(note)
	if err != nil {
		s.logger.Error("notification payload marshal failed", slog.Any("error", err), slog.String("kind", string(kind)))
		return
	}

	n := &models.Notification{
		CompetitionID: competitionID,
		TeamID:        teamID,
		UserID:        userID,
		Kind:          kind,
		Payload:       string(payload),
	}
	if err := s.notifRepo.Create(ctx, nil, n); err != nil {
		s.logger.Error("failed to persist notification", slog.Any("error", err), slog.String("kind", string(kind)))
	}

	s.hub.BroadcastToRoom(formation.CompetitionRoom(competitionID), formation.EventMessage{
		Type:    string(kind),
		Payload: note,
		RoomID:  formation.CompetitionRoom(competitionID),
	})

	if s.email == nil || len(recipientIDs) == 0 {
		return
	}
	emails, err := s.userRepo.ListEmailsByIDs(ctx, recipientIDs)
	if err != nil {
		s.logger.Error("failed to resolve notification recipients", slog.Any("error", err))
		return
	}

	// Письма уходят параллельно, неудачи не прерывают остальных адресатов.
	g := new(errgroup.Group)
	for _, addr := range emails {
		addr := addr
		g.Go(func() error {
			if sendErr := s.email.SendNotificationEmail(addr, subject, string(payload)); sendErr != nil {
				s.logger.Error("failed to send notification email",
					slog.String("to", addr), slog.Any("error", sendErr))
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *notificationService) TeamWithdrawn(ctx context.Context, note WithdrawalNote) {
	s.deliver(ctx, note.CompetitionID, nil, &note.UserID,
		models.NotificationTeamWithdrawn, note, []int{note.CoachID}, "Участник покинул соревнование")
}

func (s *notificationService) NameChangeRequested(ctx context.Context, note NameChangeNote) {
	s.deliver(ctx, note.CompetitionID, &note.TeamID, nil,
		models.NotificationNameChangeRequested, note, []int{note.CoachID}, "Заявка на смену названия команды")
}

func (s *notificationService) NameChangeResolved(ctx context.Context, note NameChangeNote) {
	s.deliver(ctx, note.CompetitionID, &note.TeamID, nil,
		models.NotificationNameChangeResolved, note, nil, "")
}

func (s *notificationService) SiteChangeRequested(ctx context.Context, note SiteChangeNote) {
	s.deliver(ctx, note.CompetitionID, &note.TeamID, nil,
		models.NotificationSiteChangeRequested, note, []int{note.CoachID}, "Заявка на смену площадки")
}

func (s *notificationService) SiteChangeResolved(ctx context.Context, note SiteChangeNote) {
	s.deliver(ctx, note.CompetitionID, &note.TeamID, nil,
		models.NotificationSiteChangeResolved, note, nil, "")
}

func (s *notificationService) SeatAssigned(ctx context.Context, note SeatNote) {
	s.deliver(ctx, note.CompetitionID, &note.TeamID, nil,
		models.NotificationSeatAssigned, note, nil, "")
}

func (s *notificationService) ApprovalReminder(ctx context.Context, note ReminderNote) {
	s.deliver(ctx, note.CompetitionID, nil, &note.CoachID,
		models.NotificationApprovalReminder, note, []int{note.CoachID}, "Команды ждут решения по заявкам")
}
