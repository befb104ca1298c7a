package services

import (
	"context"
	"fmt"

	"github.com/Olzhas-T/contest-system/models"
	"github.com/Olzhas-T/contest-system/repositories"
)

// RoleOracle отвечает на вопрос «кем является пользователь в соревновании».
// Все проверки авторизации в жизненном цикле команд идут через него.
type RoleOracle interface {
	Roles(ctx context.Context, userID, competitionID int) (models.RoleSet, error)
	// CoordinatedSites — площадки, которыми управляет координатор.
	CoordinatedSites(ctx context.Context, userID, competitionID int) ([]int, error)
}

type roleService struct {
	userRepo repositories.UserRepository
	siteRepo repositories.SiteRepository
}

func NewRoleService(userRepo repositories.UserRepository, siteRepo repositories.SiteRepository) RoleOracle {
	return &roleService{
		userRepo: userRepo,
		siteRepo: siteRepo,
	}
}

func (s *roleService) Roles(ctx context.Context, userID, competitionID int) (models.RoleSet, error) {
	roles, err := s.userRepo.GetRoles(ctx, userID, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles of user %d: %w", userID, err)
	}
	return roles, nil
}

func (s *roleService) CoordinatedSites(ctx context.Context, userID, competitionID int) ([]int, error) {
	ids, err := s.siteRepo.ListCoordinatedIDs(ctx, userID, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load coordinated sites of user %d: %w", userID, err)
	}
	return ids, nil
}
