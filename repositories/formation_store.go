package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Olzhas-T/contest-system/formation"
	"github.com/Olzhas-T/contest-system/models"
)

// FormationStore — персистентный коллаборатор прогона формирования команд.
// ApplyFormation применяет результат слияния целиком в одной транзакции:
// либо фиксируются все составы и удаления, либо ничего.
type FormationStore interface {
	LoadPendingTeams(ctx context.Context, competitionID, coachID int) ([]*models.Team, error)
	ApplyFormation(ctx context.Context, result *formation.MergeResult) error
}

type postgresFormationStore struct {
	db            *sql.DB
	teams         TeamRepository
	participants  ParticipantRepository
	notifications NotificationRepository
}

func NewPostgresFormationStore(
	db *sql.DB,
	teams TeamRepository,
	participants ParticipantRepository,
	notifications NotificationRepository,
) FormationStore {
	return &postgresFormationStore{
		db:            db,
		teams:         teams,
		participants:  participants,
		notifications: notifications,
	}
}

func (s *postgresFormationStore) LoadPendingTeams(ctx context.Context, competitionID, coachID int) ([]*models.Team, error) {
	teams, err := s.teams.ListPendingByCoach(ctx, competitionID, coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending teams: %w", err)
	}
	if len(teams) == 0 {
		return teams, nil
	}

	teamIDs := make([]int, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	members, err := s.participants.ListByTeamIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	for _, t := range teams {
		t.Participants = members[t.ID]
		t.Size = len(t.Participants)
	}
	return teams, nil
}

func (s *postgresFormationStore) ApplyFormation(ctx context.Context, result *formation.MergeResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin formation transaction: %w", err)
	}
	defer tx.Rollback()

	// Сначала переносим участников, потом удаляем опустевшие команды,
	// иначе нарушится внешний ключ participants.team_id.
	for _, team := range result.Surviving {
		participantIDs := make([]int, 0, len(team.Participants))
		for _, p := range team.Participants {
			participantIDs = append(participantIDs, p.ID)
		}
		if err := s.participants.ReassignTeam(ctx, tx, team.ID, participantIDs); err != nil {
			return fmt.Errorf("failed to reassign members of team %d: %w", team.ID, err)
		}
		if err := s.teams.UpdateSize(ctx, tx, team.ID, len(team.Participants)); err != nil {
			return fmt.Errorf("failed to update size of team %d: %w", team.ID, err)
		}
	}

	for _, teamID := range result.RetiredIDs {
		if err := s.notifications.DeleteByTeamID(ctx, tx, teamID); err != nil {
			return fmt.Errorf("failed to delete notifications of retired team %d: %w", teamID, err)
		}
		if err := s.teams.Delete(ctx, tx, teamID); err != nil {
			return fmt.Errorf("failed to delete retired team %d: %w", teamID, err)
		}
	}

	return tx.Commit()
}
