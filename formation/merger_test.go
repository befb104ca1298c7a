package formation

import (
	"testing"

	"github.com/Olzhas-T/contest-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleTeam(id, userID, score int) *models.Team {
	return &models.Team{
		ID:   id,
		Size: 1,
		Participants: []*models.Participant{
			{ID: userID, UserID: userID, TeamID: id, Score: score},
		},
	}
}

func TestGreedyMergerTwoSingles(t *testing.T) {
	// Сильная одиночка забирает две следующие: [2000, 500, 500] -> одна
	// команда из трёх.
	teams := []*models.Team{
		singleTeam(1, 101, 2000),
		singleTeam(2, 102, 500),
		singleTeam(3, 103, 500),
	}

	result, err := NewGreedyMerger().Merge(MergeParams{Teams: teams, Capacity: 3})
	require.NoError(t, err)

	require.Len(t, result.Surviving, 1)
	assert.Equal(t, 1, result.Surviving[0].ID)
	assert.Equal(t, 3, result.Surviving[0].Size)
	assert.Equal(t, []int{101, 102, 103}, result.Surviving[0].MemberUserIDs())
	assert.Equal(t, []int{2, 3}, result.RetiredIDs)
}

func TestGreedyMergerNearFullTakesFirstSingle(t *testing.T) {
	pair := &models.Team{
		ID:   1,
		Size: 2,
		Participants: []*models.Participant{
			{ID: 201, UserID: 201, TeamID: 1, Score: 1600},
			{ID: 202, UserID: 202, TeamID: 1, Score: 300},
		},
	}
	teams := []*models.Team{
		pair,
		singleTeam(2, 203, 900),
		singleTeam(3, 204, 800),
	}

	result, err := NewGreedyMerger().Merge(MergeParams{Teams: teams, Capacity: 3})
	require.NoError(t, err)

	require.Len(t, result.Surviving, 2)
	assert.Equal(t, 3, result.Surviving[0].Size)
	assert.Equal(t, []int{201, 202, 203}, result.Surviving[0].MemberUserIDs())
	// Вторая одиночка осталась недоукомплектованной: возвратов нет.
	assert.Equal(t, 3, result.Surviving[1].ID)
	assert.Equal(t, 1, result.Surviving[1].Size)
	assert.Equal(t, []int{2}, result.RetiredIDs)
}

func TestGreedyMergerPairBeatsSecondSingle(t *testing.T) {
	// Пара, встреченная раньше второй одиночки, поглощается целиком,
	// а первая одиночка остаётся в списке.
	lead := &models.Team{
		ID:   1,
		Size: 2,
		Participants: []*models.Participant{
			{ID: 301, UserID: 301, TeamID: 1, Score: 1800},
			{ID: 302, UserID: 302, TeamID: 1, Score: 100},
		},
	}
	pair := &models.Team{
		ID:   3,
		Size: 2,
		Participants: []*models.Participant{
			{ID: 304, UserID: 304, TeamID: 3, Score: 700},
			{ID: 305, UserID: 305, TeamID: 3, Score: 650},
		},
	}
	teams := []*models.Team{
		lead,
		singleTeam(2, 303, 800),
		pair,
		singleTeam(4, 306, 600),
	}

	result, err := NewGreedyMerger().Merge(MergeParams{Teams: teams, Capacity: 4})
	require.NoError(t, err)

	require.Len(t, result.Surviving, 2)
	assert.Equal(t, []int{301, 302, 304, 305}, result.Surviving[0].MemberUserIDs())
	// Оставшиеся одиночки объединяются между собой.
	assert.Equal(t, 2, result.Surviving[1].ID)
	assert.Equal(t, []int{303, 306}, result.Surviving[1].MemberUserIDs())
	assert.Equal(t, []int{3, 4}, result.RetiredIDs)
}

func TestGreedyMergerLoneSingleFallback(t *testing.T) {
	// Единственная оставшаяся одиночка забирается, даже если команда
	// остаётся недоукомплектованной.
	teams := []*models.Team{
		singleTeam(1, 401, 1000),
		singleTeam(2, 402, 500),
	}

	result, err := NewGreedyMerger().Merge(MergeParams{Teams: teams, Capacity: 3})
	require.NoError(t, err)

	require.Len(t, result.Surviving, 1)
	assert.Equal(t, 2, result.Surviving[0].Size)
	assert.Equal(t, []int{401, 402}, result.Surviving[0].MemberUserIDs())
	assert.Equal(t, []int{2}, result.RetiredIDs)
}

func TestGreedyMergerSkipsFullTeams(t *testing.T) {
	full := &models.Team{
		ID:   1,
		Size: 3,
		Participants: []*models.Participant{
			{ID: 501, UserID: 501, TeamID: 1},
			{ID: 502, UserID: 502, TeamID: 1},
			{ID: 503, UserID: 503, TeamID: 1},
		},
	}
	teams := []*models.Team{
		full,
		singleTeam(2, 504, 700),
		singleTeam(3, 505, 600),
	}

	result, err := NewGreedyMerger().Merge(MergeParams{Teams: teams, Capacity: 3})
	require.NoError(t, err)

	require.Len(t, result.Surviving, 2)
	assert.Equal(t, 3, result.Surviving[0].Size, "полная команда не трогается")
	assert.Equal(t, []int{504, 505}, result.Surviving[1].MemberUserIDs())
	assert.Equal(t, []int{3}, result.RetiredIDs)
}

func TestGreedyMergerConservesParticipants(t *testing.T) {
	teams := []*models.Team{
		singleTeam(1, 601, 1700),
		singleTeam(2, 602, 1300),
		singleTeam(3, 603, 1000),
		singleTeam(4, 604, 800),
		singleTeam(5, 605, 600),
	}
	total := 0
	for _, team := range teams {
		total += len(team.Participants)
	}

	result, err := NewGreedyMerger().Merge(MergeParams{Teams: teams, Capacity: 3})
	require.NoError(t, err)

	survivingIDs := make(map[int]bool)
	after := 0
	for _, team := range result.Surviving {
		survivingIDs[team.ID] = true
		after += len(team.Participants)
		assert.LessOrEqual(t, len(team.Participants), 3)
		for _, p := range team.Participants {
			assert.Equal(t, team.ID, p.TeamID, "участник должен ссылаться на выжившую команду")
		}
	}
	assert.Equal(t, total, after, "участники не теряются и не дублируются")

	for _, retiredID := range result.RetiredIDs {
		assert.False(t, survivingIDs[retiredID], "поглощённая команда не может выжить")
	}
}

func TestGreedyMergerRejectsInvalidCapacity(t *testing.T) {
	_, err := NewGreedyMerger().Merge(MergeParams{Capacity: 0})
	assert.Error(t, err)
}
