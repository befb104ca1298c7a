package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Olzhas-T/contest-system/formation"
	"github.com/Olzhas-T/contest-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFormationStore struct {
	pending []*models.Team
	applied *formation.MergeResult
}

func (s *fakeFormationStore) LoadPendingTeams(ctx context.Context, competitionID, coachID int) ([]*models.Team, error) {
	return s.pending, nil
}

func (s *fakeFormationStore) ApplyFormation(ctx context.Context, result *formation.MergeResult) error {
	s.applied = result
	return nil
}

func soloPendingTeam(id, userID, rating int) *models.Team {
	return &models.Team{
		ID:            id,
		CompetitionID: testCompetitionID,
		CoachID:       testCoachID,
		Size:          1,
		Status:        models.TeamStatusPending,
		Participants: []*models.Participant{
			{ID: userID, UserID: userID, TeamID: id, Rating: &rating},
		},
	}
}

func newFormationEnv(store *fakeFormationStore) (*fixture, TeamFormationService) {
	f := newFixture()
	f.competitions[testCompetitionID] = &models.Competition{
		ID:           testCompetitionID,
		TeamCapacity: 3,
	}
	f.addUser(&models.User{ID: testAdminID, Email: "admin@test.dev"})
	f.roles[testAdminID] = models.NewRoleSet(models.RoleAdmin)
	f.addUser(&models.User{ID: testCoachID, Email: "coach@test.dev"})
	f.roles[testCoachID] = models.NewRoleSet(models.RoleCoach)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewTeamFormationService(
		&fakeCompetitionRepo{f},
		store,
		formation.NewGreedyMerger(),
		NewRoleService(&fakeUserRepo{f}, &fakeSiteRepo{f}),
		nil,
		logger,
	)
	return f, svc
}

func TestRunFormationMergesCoachPool(t *testing.T) {
	store := &fakeFormationStore{pending: []*models.Team{
		soloPendingTeam(1, 101, 500),
		soloPendingTeam(2, 102, 2000),
		soloPendingTeam(3, 103, 500),
	}}
	_, svc := newFormationEnv(store)

	summary, err := svc.RunFormation(context.Background(), testCoachID, testCompetitionID, testCoachID)
	require.NoError(t, err)

	// Сильнейшая одиночка (2000) поднимается наверх и забирает обе слабые.
	require.Len(t, summary.Teams, 1)
	assert.Equal(t, 2, summary.Teams[0].TeamID)
	assert.Equal(t, 2000, summary.Teams[0].BestScore)
	assert.Equal(t, 3, summary.Teams[0].Size)
	assert.ElementsMatch(t, []int{101, 102, 103}, summary.Teams[0].MemberUserIDs)
	assert.ElementsMatch(t, []int{1, 3}, summary.RetiredTeamIDs)

	require.NotNil(t, store.applied, "результат слияния сохраняется")
	assert.Len(t, store.applied.Surviving, 1)
}

func TestRunFormationEmptyPoolIsNoOp(t *testing.T) {
	store := &fakeFormationStore{}
	_, svc := newFormationEnv(store)

	summary, err := svc.RunFormation(context.Background(), testCoachID, testCompetitionID, testCoachID)
	require.NoError(t, err)

	assert.Empty(t, summary.Teams)
	assert.Empty(t, summary.RetiredTeamIDs)
	assert.Nil(t, store.applied, "пустой пул не трогает хранилище")
}

func TestRunFormationAuthorization(t *testing.T) {
	store := &fakeFormationStore{pending: []*models.Team{soloPendingTeam(1, 101, 900)}}
	f, svc := newFormationEnv(store)

	t.Run("тренер не запускает чужой пул", func(t *testing.T) {
		_, err := svc.RunFormation(context.Background(), testCoachID, testCompetitionID, testCoachID+1)
		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})

	t.Run("участник не запускает ничего", func(t *testing.T) {
		f.addUser(&models.User{ID: 100, Email: "p@test.dev"})
		f.roles[100] = models.NewRoleSet(models.RoleParticipant)
		_, err := svc.RunFormation(context.Background(), 100, testCompetitionID, testCoachID)
		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})

	t.Run("администратор запускает любой пул", func(t *testing.T) {
		_, err := svc.RunFormation(context.Background(), testAdminID, testCompetitionID, testCoachID)
		assert.NoError(t, err)
	})
}

func TestRunFormationUnknownCompetition(t *testing.T) {
	_, svc := newFormationEnv(&fakeFormationStore{})

	_, err := svc.RunFormation(context.Background(), testAdminID, testCompetitionID+1, testCoachID)
	assert.ErrorIs(t, err, ErrCompetitionNotFound)
}
