package formation

import (
	"testing"

	"github.com/Olzhas-T/contest-system/models"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		p        models.Participant
		expected int
	}{
		{
			name:     "без сигналов",
			p:        models.Participant{},
			expected: 0,
		},
		{
			name:     "только рейтинг",
			p:        models.Participant{Rating: intPtr(1450)},
			expected: 1450,
		},
		{
			name:     "один курс",
			p:        models.Participant{CompletedCourses: []models.CourseCategory{models.CourseDataStructures}},
			expected: PointsCourseDataStruct,
		},
		{
			name: "несколько курсов берут максимум, не сумму",
			p: models.Participant{CompletedCourses: []models.CourseCategory{
				models.CourseIntroduction,
				models.CourseAlgorithms,
				models.CourseChallenges,
			}},
			expected: PointsCourseChallenges,
		},
		{
			name:     "национальный приз выше курсов",
			p:        models.Participant{HasNationalPrize: true, CompletedCourses: []models.CourseCategory{models.CourseChallenges}},
			expected: PointsNationalPrize,
		},
		{
			name:     "прошлый региональный выше национального приза",
			p:        models.Participant{HasNationalPrize: true, PastRegional: true},
			expected: PointsPastRegional,
		},
		{
			name:     "международный приз сильнее всех",
			p:        models.Participant{HasNationalPrize: true, PastRegional: true, HasInternationalPrize: true},
			expected: PointsInternationalPrize,
		},
		{
			name:     "высокий рейтинг перебивает призы",
			p:        models.Participant{Rating: intPtr(2100), HasInternationalPrize: true},
			expected: 2100,
		},
		{
			name:     "неизвестная категория курса игнорируется",
			p:        models.Participant{CompletedCourses: []models.CourseCategory{"quantum_computing"}},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(&tt.p)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expected, tt.p.Score, "Score должен записываться в участника")
		})
	}
}

func TestScoreAll(t *testing.T) {
	teams := []*models.Team{
		{ID: 1, Participants: []*models.Participant{
			{Rating: intPtr(500)},
			{HasInternationalPrize: true},
		}},
		{ID: 2, Participants: []*models.Participant{
			{CompletedCourses: []models.CourseCategory{models.CourseIntroduction}},
		}},
	}

	ScoreAll(teams)

	assert.Equal(t, 500, teams[0].Participants[0].Score)
	assert.Equal(t, PointsInternationalPrize, teams[0].Participants[1].Score)
	assert.Equal(t, PointsCourseIntroduction, teams[1].Participants[0].Score)
	assert.Equal(t, PointsInternationalPrize, teams[0].BestScore())
}
