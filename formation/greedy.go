package formation

import (
	"errors"

	"github.com/Olzhas-T/contest-system/models"
)

// GreedyMerger — один проход слева направо по ранжированному списку без
// возвратов: команды с более сильными участниками заполняются первыми.
// Хвост списка может остаться недоукомплектованным, если одиночки и пары
// закончились раньше. Это свойство алгоритма, менять его нельзя —
// поведение должно совпадать с историческим.
type GreedyMerger struct{}

func NewGreedyMerger() TeamMerger {
	return &GreedyMerger{}
}

func (m *GreedyMerger) GetName() string {
	return "Greedy"
}

func (m *GreedyMerger) Merge(params MergeParams) (*MergeResult, error) {
	if params.Capacity < 1 {
		return nil, errors.New("merge capacity must be positive")
	}

	teams := params.Teams
	retired := make(map[int]bool, len(teams))
	retiredOrder := make([]int, 0)

	retire := func(t *models.Team) {
		retired[t.ID] = true
		retiredOrder = append(retiredOrder, t.ID)
	}

	for i, t := range teams {
		if retired[t.ID] {
			continue
		}
		size := len(t.Participants)
		if size >= params.Capacity {
			continue
		}

		if size == params.Capacity-1 {
			// Нужен ровно один участник: первая непоглощённая одиночка.
			for j := i + 1; j < len(teams); j++ {
				cand := teams[j]
				if retired[cand.ID] || len(cand.Participants) != 1 {
					continue
				}
				absorb(t, cand)
				retire(cand)
				break
			}
			continue
		}

		// Нужно два и больше: либо две одиночки, либо пара,
		// встретившаяся раньше второй одиночки.
		firstSingle := -1
		merged := false
		for j := i + 1; j < len(teams) && !merged; j++ {
			cand := teams[j]
			if retired[cand.ID] {
				continue
			}
			switch len(cand.Participants) {
			case 1:
				if firstSingle == -1 {
					firstSingle = j
					continue
				}
				absorb(t, teams[firstSingle])
				retire(teams[firstSingle])
				absorb(t, cand)
				retire(cand)
				merged = true
			case 2:
				absorb(t, cand)
				retire(cand)
				merged = true
			}
		}

		if !merged && firstSingle != -1 {
			// Осталась единственная одиночка — забираем её, даже если
			// команда останется недоукомплектованной.
			absorb(t, teams[firstSingle])
			retire(teams[firstSingle])
		}
	}

	surviving := make([]*models.Team, 0, len(teams)-len(retiredOrder))
	for _, t := range teams {
		if !retired[t.ID] {
			surviving = append(surviving, t)
		}
	}

	return &MergeResult{Surviving: surviving, RetiredIDs: retiredOrder}, nil
}

// absorb физически переносит участников из src в dst до вывода src из игры.
func absorb(dst, src *models.Team) {
	for _, p := range src.Participants {
		p.TeamID = dst.ID
		dst.Participants = append(dst.Participants, p)
	}
	src.Participants = nil
	src.Size = 0
	dst.Size = len(dst.Participants)
}
