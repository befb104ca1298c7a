package formation

import (
	"sort"

	"github.com/Olzhas-T/contest-system/models"
)

// Rank упорядочивает команды по лучшему баллу участника, по убыванию.
// Сортировка стабильная: команды с равным баллом сохраняют исходный порядок.
// Возвращается новый срез, вход не модифицируется.
func Rank(teams []*models.Team) []*models.Team {
	ranked := make([]*models.Team, len(teams))
	copy(ranked, teams)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BestScore() > ranked[j].BestScore()
	})

	return ranked
}
