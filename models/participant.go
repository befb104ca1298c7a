package models

import "time"

// Категории пройденных курсов, учитываемые при подсчёте балла.
type CourseCategory string

const (
	CourseIntroduction   CourseCategory = "introduction"
	CourseDataStructures CourseCategory = "data_structures"
	CourseAlgorithms     CourseCategory = "algorithm_design"
	CourseChallenges     CourseCategory = "programming_challenges"
)

// Participant — членство пользователя в соревновании. Пока команда в статусе
// pending, участник принадлежит ровно одной команде; при слиянии переходит в
// поглощающую команду.
type Participant struct {
	ID            int  `json:"id" db:"id"`
	UserID        int  `json:"user_id" db:"user_id"`
	CompetitionID int  `json:"competition_id" db:"competition_id"`
	TeamID        int  `json:"team_id" db:"team_id"`
	Remote        bool `json:"remote" db:"remote"`
	DegreeYear    int  `json:"degree_year" db:"degree_year"`

	// Сигналы достижений.
	Rating                *int             `json:"rating,omitempty" db:"rating"`
	CompletedCourses      []CourseCategory `json:"completed_courses,omitempty" db:"-"`
	HasNationalPrize      bool             `json:"has_national_prize" db:"has_national_prize"`
	HasInternationalPrize bool             `json:"has_international_prize" db:"has_international_prize"`
	PastRegional          bool             `json:"past_regional" db:"past_regional"`

	// Вычисляется скорером перед слиянием, вне прогона смысла не имеет.
	Score int `json:"score" db:"score"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
