package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Olzhas-T/contest-system/formation"
	"github.com/Olzhas-T/contest-system/models"
	"github.com/Olzhas-T/contest-system/repositories"
)

type FormationTeamSummary struct {
	TeamID        int    `json:"team_id"`
	Name          string `json:"name"`
	BestScore     int    `json:"best_score"`
	Size          int    `json:"size"`
	MemberUserIDs []int  `json:"member_user_ids"`
}

type FormationSummary struct {
	CompetitionID  int                    `json:"competition_id"`
	CoachID        int                    `json:"coach_id"`
	Teams          []FormationTeamSummary `json:"teams"`
	RetiredTeamIDs []int                  `json:"retired_team_ids"`
}

// TeamFormationService запускает цикл формирования: оценка участников,
// ранжирование команд тренера и жадное слияние до вместимости.
type TeamFormationService interface {
	RunFormation(ctx context.Context, actorID, competitionID, coachID int) (*FormationSummary, error)
}

type teamFormationService struct {
	competitionRepo repositories.CompetitionRepository
	store           repositories.FormationStore
	merger          formation.TeamMerger
	roles           RoleOracle
	hub             *formation.Hub
	logger          *slog.Logger
}

func NewTeamFormationService(
	competitionRepo repositories.CompetitionRepository,
	store repositories.FormationStore,
	merger formation.TeamMerger,
	roles RoleOracle,
	hub *formation.Hub,
	logger *slog.Logger,
) TeamFormationService {
	return &teamFormationService{
		competitionRepo: competitionRepo,
		store:           store,
		merger:          merger,
		roles:           roles,
		hub:             hub,
		logger:          logger,
	}
}

func (s *teamFormationService) RunFormation(ctx context.Context, actorID, competitionID, coachID int) (*FormationSummary, error) {
	roles, err := s.roles.Roles(ctx, actorID, competitionID)
	if err != nil {
		return nil, err
	}
	// Администратор формирует команды любого тренера, тренер — только свои.
	if !roles.Has(models.RoleAdmin) {
		if !roles.Has(models.RoleCoach) || actorID != coachID {
			return nil, ErrForbiddenOperation
		}
	}

	comp, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return nil, ErrCompetitionNotFound
	}

	teams, err := s.store.LoadPendingTeams(ctx, competitionID, coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending teams: %w", err)
	}
	summary := &FormationSummary{
		CompetitionID:  competitionID,
		CoachID:        coachID,
		Teams:          []FormationTeamSummary{},
		RetiredTeamIDs: []int{},
	}
	if len(teams) == 0 {
		// Пустой пул — ничего не делаем.
		return summary, nil
	}

	formation.ScoreAll(teams)
	ranked := formation.Rank(teams)

	result, err := s.merger.Merge(formation.MergeParams{
		Teams:    ranked,
		Capacity: comp.TeamCapacity,
	})
	if err != nil {
		return nil, fmt.Errorf("merge with strategy %s failed: %w", s.merger.GetName(), err)
	}

	if err := s.store.ApplyFormation(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to apply formation: %w", err)
	}

	for _, t := range result.Surviving {
		summary.Teams = append(summary.Teams, FormationTeamSummary{
			TeamID:        t.ID,
			Name:          t.Name,
			BestScore:     t.BestScore(),
			Size:          t.Size,
			MemberUserIDs: t.MemberUserIDs(),
		})
	}
	summary.RetiredTeamIDs = append(summary.RetiredTeamIDs, result.RetiredIDs...)

	if s.hub != nil {
		room := formation.CompetitionRoom(competitionID)
		s.hub.BroadcastToRoom(room, formation.EventMessage{
			Type:    formation.EventFormationCompleted,
			Payload: summary,
			RoomID:  room,
		})
	}
	s.logger.Info("формирование команд завершено",
		slog.Int("competition_id", competitionID),
		slog.Int("coach_id", coachID),
		slog.Int("surviving", len(result.Surviving)),
		slog.Int("retired", len(result.RetiredIDs)),
		slog.String("strategy", s.merger.GetName()))

	return summary, nil
}
