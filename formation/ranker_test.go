package formation

import (
	"testing"

	"github.com/Olzhas-T/contest-system/models"
	"github.com/stretchr/testify/assert"
)

func teamWithScores(id int, scores ...int) *models.Team {
	t := &models.Team{ID: id}
	for _, s := range scores {
		t.Participants = append(t.Participants, &models.Participant{Score: s})
	}
	t.Size = len(t.Participants)
	return t
}

func teamIDs(teams []*models.Team) []int {
	ids := make([]int, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestRank(t *testing.T) {
	teams := []*models.Team{
		teamWithScores(1, 500),
		teamWithScores(2, 2000, 100),
		teamWithScores(3, 1300),
		teamWithScores(4),
	}

	ranked := Rank(teams)

	assert.Equal(t, []int{2, 3, 1, 4}, teamIDs(ranked))
	// Вход не модифицируется
	assert.Equal(t, []int{1, 2, 3, 4}, teamIDs(teams))
}

func TestRankStableOnTies(t *testing.T) {
	teams := []*models.Team{
		teamWithScores(10, 800),
		teamWithScores(11, 800),
		teamWithScores(12, 800),
		teamWithScores(13, 900),
	}

	ranked := Rank(teams)

	// Команды с равным баллом сохраняют исходный порядок.
	assert.Equal(t, []int{13, 10, 11, 12}, teamIDs(ranked))
}

func TestRankRanksByBestMemberNotSum(t *testing.T) {
	teams := []*models.Team{
		teamWithScores(1, 600, 600, 600), // сумма 1800, лучший 600
		teamWithScores(2, 1700),          // сумма 1700, лучший 1700
	}

	ranked := Rank(teams)

	assert.Equal(t, []int{2, 1}, teamIDs(ranked))
}
