package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Olzhas-T/contest-system/repositories"
)

// ReminderService напоминает тренерам о неразобранных заявках на смену
// названия или площадки. Запускается планировщиком из main.
type ReminderService struct {
	competitionRepo repositories.CompetitionRepository
	teamRepo        repositories.TeamRepository
	sink            NotificationSink
	logger          *slog.Logger
}

func NewReminderService(
	competitionRepo repositories.CompetitionRepository,
	teamRepo repositories.TeamRepository,
	sink NotificationSink,
	logger *slog.Logger,
) *ReminderService {
	return &ReminderService{
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		sink:            sink,
		logger:          logger,
	}
}

func (s *ReminderService) RunOnce(ctx context.Context) error {
	competitionIDs, err := s.competitionRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list competitions: %w", err)
	}

	for _, competitionID := range competitionIDs {
		teams, err := s.teamRepo.ListWithPendingRequests(ctx, competitionID)
		if err != nil {
			return fmt.Errorf("failed to list pending requests for competition %d: %w", competitionID, err)
		}
		if len(teams) == 0 {
			continue
		}

		// Одно напоминание на тренера со списком его команд.
		byCoach := make(map[int][]int)
		for _, t := range teams {
			byCoach[t.CoachID] = append(byCoach[t.CoachID], t.ID)
		}
		for coachID, teamIDs := range byCoach {
			s.sink.ApprovalReminder(ctx, ReminderNote{
				CompetitionID: competitionID,
				CoachID:       coachID,
				TeamIDs:       teamIDs,
			})
		}
		s.logger.Info("напоминания о заявках отправлены",
			slog.Int("competition_id", competitionID),
			slog.Int("coaches", len(byCoach)))
	}
	return nil
}
