package formation

import "github.com/Olzhas-T/contest-system/models"

type MergeParams struct {
	// Команды одного тренера в одном соревновании, уже упорядоченные Rank.
	Teams []*models.Team

	// Максимальный размер команды в соревновании.
	Capacity int
}

type MergeResult struct {
	// Выжившие команды в порядке входа, с обновлёнными составами.
	Surviving []*models.Team

	// Поглощённые команды в порядке вывода из игры.
	RetiredIDs []int
}

// TeamMerger объединяет недоукомплектованные команды. Стратегия вынесена за
// интерфейс, чтобы жадный алгоритм можно было заменить, не трогая
// персистентность и авторизацию.
type TeamMerger interface {
	Merge(params MergeParams) (*MergeResult, error)

	GetName() string
}
