package formation

import "github.com/Olzhas-T/contest-system/models"

// Баллы за сигналы достижений. Берётся максимум по всем применимым
// сигналам, не сумма.
const (
	PointsCourseIntroduction = 600
	PointsCourseDataStruct   = 800
	PointsCourseAlgorithms   = 1000
	PointsCourseChallenges   = 1300
	PointsNationalPrize      = 1600
	PointsPastRegional       = 1700
	PointsInternationalPrize = 1800
)

var coursePoints = map[models.CourseCategory]int{
	models.CourseIntroduction:   PointsCourseIntroduction,
	models.CourseDataStructures: PointsCourseDataStruct,
	models.CourseAlgorithms:     PointsCourseAlgorithms,
	models.CourseChallenges:     PointsCourseChallenges,
}

// Score вычисляет приоритетный балл участника и записывает его в p.Score.
// Детерминированная функция: максимум по применимым сигналам, 0 если
// сигналов нет.
func Score(p *models.Participant) int {
	best := 0

	if p.Rating != nil && *p.Rating > best {
		best = *p.Rating
	}
	for _, course := range p.CompletedCourses {
		if pts, ok := coursePoints[course]; ok && pts > best {
			best = pts
		}
	}
	if p.HasNationalPrize && PointsNationalPrize > best {
		best = PointsNationalPrize
	}
	if p.PastRegional && PointsPastRegional > best {
		best = PointsPastRegional
	}
	if p.HasInternationalPrize && PointsInternationalPrize > best {
		best = PointsInternationalPrize
	}

	p.Score = best
	return best
}

// ScoreAll прогоняет скорер по всем участникам всех команд.
func ScoreAll(teams []*models.Team) {
	for _, t := range teams {
		for _, p := range t.Participants {
			Score(p)
		}
	}
}
