package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Olzhas-T/contest-system/models"
	"github.com/Olzhas-T/contest-system/repositories"
	"github.com/Olzhas-T/contest-system/storage"
)

// TeamCodeCodec — обратимое кодирование идентификатора команды в код
// приглашения. Стойкость не требуется, только непрозрачность.
type TeamCodeCodec interface {
	Encode(teamID int) string
	Decode(code string) (int, error)
}

type EnterCompetitionInput struct {
	UserID        int
	CompetitionID int
	CoachID       int
	SiteID        int
	TeamName      string

	Remote                bool
	DegreeYear            int
	Rating                *int
	CompletedCourses      []models.CourseCategory
	HasNationalPrize      bool
	HasInternationalPrize bool
	PastRegional          bool
}

type SeatAssignment struct {
	SiteID int    `json:"site_id"`
	TeamID int    `json:"team_id"`
	Seat   string `json:"seat"`
}

type SeatAssignmentResult struct {
	SeatAssignment
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// TeamLifecycleService управляет внешними операциями над командами:
// вступление по коду, выход, заявки на смену названия и площадки с
// одобрением или отклонением, рассадка и статусы регистрации. Каждая
// операция проверяет роли и владение до любой мутации.
type TeamLifecycleService interface {
	EnterCompetition(ctx context.Context, input EnterCompetitionInput) (*models.Team, error)
	JoinByCode(ctx context.Context, userID, competitionID int, code string) (*models.Team, error)
	Withdraw(ctx context.Context, userID, competitionID int) (*WithdrawalNote, error)

	RequestNameChange(ctx context.Context, userID, competitionID int, newName string) error
	ResolveNameChanges(ctx context.Context, actorID, competitionID int, approveIDs, rejectIDs []int) error
	RequestSiteChange(ctx context.Context, userID, competitionID, newSiteID int) error
	ResolveSiteChanges(ctx context.Context, actorID, competitionID int, approveIDs, rejectIDs []int) error

	AssignSeats(ctx context.Context, actorID, competitionID int, assignments []SeatAssignment) ([]SeatAssignmentResult, error)
	ApproveTeamRegistration(ctx context.Context, actorID, competitionID int, teamIDs []int) error
	RegisterTeams(ctx context.Context, actorID, competitionID int, teamIDs []int) error

	GetTeamByMember(ctx context.Context, userID, competitionID int) (*models.Team, error)
	TeamJoinCode(ctx context.Context, userID, competitionID int) (string, error)
	UploadTeamLogo(ctx context.Context, userID, competitionID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamLifecycleService struct {
	teamRepo        repositories.TeamRepository
	participantRepo repositories.ParticipantRepository
	userRepo        repositories.UserRepository
	competitionRepo repositories.CompetitionRepository
	siteRepo        repositories.SiteRepository
	notifRepo       repositories.NotificationRepository
	codec           TeamCodeCodec
	sink            NotificationSink
	roles           RoleOracle
	uploader        storage.FileUploader

	// strictSeats прерывает пакет рассадки на первой ошибке. Историческое
	// поведение — терпеть частичные отказы, поэтому по умолчанию false.
	strictSeats bool
}

func NewTeamLifecycleService(
	teamRepo repositories.TeamRepository,
	participantRepo repositories.ParticipantRepository,
	userRepo repositories.UserRepository,
	competitionRepo repositories.CompetitionRepository,
	siteRepo repositories.SiteRepository,
	notifRepo repositories.NotificationRepository,
	codec TeamCodeCodec,
	sink NotificationSink,
	roles RoleOracle,
	uploader storage.FileUploader,
	strictSeats bool,
) TeamLifecycleService {
	return &teamLifecycleService{
		teamRepo:        teamRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		competitionRepo: competitionRepo,
		siteRepo:        siteRepo,
		notifRepo:       notifRepo,
		codec:           codec,
		sink:            sink,
		roles:           roles,
		uploader:        uploader,
		strictSeats:     strictSeats,
	}
}

func (s *teamLifecycleService) getCompetition(ctx context.Context, competitionID int) (*models.Competition, error) {
	comp, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to get competition %d: %w", competitionID, err)
	}
	return comp, nil
}

func (s *teamLifecycleService) loadMembers(ctx context.Context, team *models.Team) error {
	members, err := s.participantRepo.ListByTeamIDs(ctx, []int{team.ID})
	if err != nil {
		return fmt.Errorf("failed to load members of team %d: %w", team.ID, err)
	}
	team.Participants = members[team.ID]
	team.Size = len(team.Participants)
	return nil
}

func (s *teamLifecycleService) memberTeam(ctx context.Context, userID, competitionID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByMember(ctx, userID, competitionID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrNotInTeam
		}
		return nil, fmt.Errorf("failed to get team of user %d: %w", userID, err)
	}
	return team, nil
}

// EnterCompetition регистрирует пользователя в соревновании: создаётся
// команда из одного участника в статусе pending.
func (s *teamLifecycleService) EnterCompetition(ctx context.Context, input EnterCompetitionInput) (*models.Team, error) {
	if _, err := s.getCompetition(ctx, input.CompetitionID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", input.UserID, err)
	}
	if _, err := s.participantRepo.GetByUserAndCompetition(ctx, input.UserID, input.CompetitionID); err == nil {
		return nil, ErrAlreadyInCompetition
	} else if !errors.Is(err, repositories.ErrParticipantNotFound) {
		return nil, fmt.Errorf("failed to check membership of user %d: %w", input.UserID, err)
	}

	teamName := input.TeamName
	if teamName == "" {
		teamName = user.FirstName + " " + user.LastName
	}
	team := &models.Team{
		CompetitionID: input.CompetitionID,
		Name:          teamName,
		UniversityID:  user.UniversityID,
		CoachID:       input.CoachID,
		SiteID:        input.SiteID,
		Size:          1,
		Status:        models.TeamStatusPending,
	}
	if err := s.teamRepo.Create(ctx, nil, team); err != nil {
		if errors.Is(err, repositories.ErrTeamSiteInvalid) {
			return nil, ErrSiteNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	p := &models.Participant{
		UserID:                input.UserID,
		CompetitionID:         input.CompetitionID,
		TeamID:                team.ID,
		Remote:                input.Remote,
		DegreeYear:            input.DegreeYear,
		Rating:                input.Rating,
		CompletedCourses:      input.CompletedCourses,
		HasNationalPrize:      input.HasNationalPrize,
		HasInternationalPrize: input.HasInternationalPrize,
		PastRegional:          input.PastRegional,
	}
	if err := s.participantRepo.Create(ctx, nil, p); err != nil {
		if errors.Is(err, repositories.ErrParticipantConflict) {
			return nil, ErrAlreadyInCompetition
		}
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	team.Participants = []*models.Participant{p}
	return team, nil
}

func (s *teamLifecycleService) JoinByCode(ctx context.Context, userID, competitionID int, code string) (*models.Team, error) {
	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	targetID, err := s.codec.Decode(code)
	if err != nil {
		return nil, ErrInvalidTeamCode
	}

	target, err := s.teamRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", targetID, err)
	}
	// Команда должна быть в том же соревновании и университете.
	if target.CompetitionID != competitionID || target.UniversityID != user.UniversityID {
		return nil, ErrTeamNotFound
	}
	if err := s.loadMembers(ctx, target); err != nil {
		return nil, err
	}
	if target.HasMember(userID) {
		return nil, ErrAlreadyInTeam
	}
	if len(target.Participants) >= comp.TeamCapacity {
		return nil, ErrTeamFull
	}

	prior, err := s.memberTeam(ctx, userID, competitionID)
	if err != nil {
		return nil, err
	}
	// Переходы между тренерами запрещены.
	if prior.CoachID != target.CoachID {
		return nil, ErrCrossCoachJoin
	}

	p, err := s.participantRepo.GetByUserAndCompetition(ctx, userID, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant of user %d: %w", userID, err)
	}

	if err := s.participantRepo.UpdateTeam(ctx, nil, p.ID, target.ID); err != nil {
		return nil, fmt.Errorf("failed to move participant %d: %w", p.ID, err)
	}
	p.TeamID = target.ID
	target.Participants = append(target.Participants, p)
	if err := s.teamRepo.UpdateSize(ctx, nil, target.ID, len(target.Participants)); err != nil {
		return nil, fmt.Errorf("failed to update size of team %d: %w", target.ID, err)
	}
	target.Size = len(target.Participants)
	// Любое изменение состава сбрасывает команду в pending.
	if err := s.teamRepo.UpdateStatus(ctx, nil, target.ID, models.TeamStatusPending); err != nil {
		return nil, fmt.Errorf("failed to reset status of team %d: %w", target.ID, err)
	}
	target.Status = models.TeamStatusPending

	// Прежняя команда: одиночку удаляем вместе с уведомлениями, иначе
	// ужимаем и тоже сбрасываем в pending.
	if prior.Size <= 1 {
		if err := s.notifRepo.DeleteByTeamID(ctx, nil, prior.ID); err != nil {
			return nil, fmt.Errorf("failed to delete notifications of team %d: %w", prior.ID, err)
		}
		if err := s.teamRepo.Delete(ctx, nil, prior.ID); err != nil {
			return nil, fmt.Errorf("failed to delete team %d: %w", prior.ID, err)
		}
	} else {
		if err := s.teamRepo.UpdateSize(ctx, nil, prior.ID, prior.Size-1); err != nil {
			return nil, fmt.Errorf("failed to update size of team %d: %w", prior.ID, err)
		}
		if err := s.teamRepo.UpdateStatus(ctx, nil, prior.ID, models.TeamStatusPending); err != nil {
			return nil, fmt.Errorf("failed to reset status of team %d: %w", prior.ID, err)
		}
	}

	s.attachLogoURL(target)
	return target, nil
}

func (s *teamLifecycleService) Withdraw(ctx context.Context, userID, competitionID int) (*WithdrawalNote, error) {
	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	team, err := s.memberTeam(ctx, userID, competitionID)
	if err != nil {
		return nil, err
	}
	p, err := s.participantRepo.GetByUserAndCompetition(ctx, userID, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant of user %d: %w", userID, err)
	}

	note := &WithdrawalNote{
		CompetitionID:   comp.ID,
		CompetitionName: comp.Name,
		CompetitionCode: comp.Code,
		TeamID:          team.ID,
		TeamName:        team.Name,
		UserID:          userID,
		CoachID:         team.CoachID,
	}

	if team.Size <= 1 {
		// Единственный участник: команда, её уведомления и членство
		// удаляются целиком.
		if err := s.notifRepo.DeleteByTeamID(ctx, nil, team.ID); err != nil {
			return nil, fmt.Errorf("failed to delete notifications of team %d: %w", team.ID, err)
		}
		if err := s.participantRepo.Delete(ctx, nil, p.ID); err != nil {
			return nil, fmt.Errorf("failed to delete participant %d: %w", p.ID, err)
		}
		if err := s.teamRepo.Delete(ctx, nil, team.ID); err != nil {
			return nil, fmt.Errorf("failed to delete team %d: %w", team.ID, err)
		}
		note.TeamDeleted = true
		s.sink.TeamWithdrawn(ctx, *note)
		return note, nil
	}

	// Участник уходит в новую команду-одиночку с теми же тренером,
	// университетом и площадкой, чтобы остаться в пуле слияния.
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	fresh := &models.Team{
		CompetitionID: competitionID,
		Name:          user.FirstName + " " + user.LastName,
		UniversityID:  team.UniversityID,
		CoachID:       team.CoachID,
		SiteID:        team.SiteID,
		Size:          1,
		Status:        models.TeamStatusPending,
	}
	if err := s.teamRepo.Create(ctx, nil, fresh); err != nil {
		return nil, fmt.Errorf("failed to create replacement team: %w", err)
	}
	if err := s.participantRepo.UpdateTeam(ctx, nil, p.ID, fresh.ID); err != nil {
		return nil, fmt.Errorf("failed to move participant %d: %w", p.ID, err)
	}
	if err := s.teamRepo.UpdateSize(ctx, nil, team.ID, team.Size-1); err != nil {
		return nil, fmt.Errorf("failed to update size of team %d: %w", team.ID, err)
	}
	if err := s.teamRepo.UpdateStatus(ctx, nil, team.ID, models.TeamStatusPending); err != nil {
		return nil, fmt.Errorf("failed to reset status of team %d: %w", team.ID, err)
	}

	note.NewTeamID = &fresh.ID
	s.sink.TeamWithdrawn(ctx, *note)
	return note, nil
}

func (s *teamLifecycleService) RequestNameChange(ctx context.Context, userID, competitionID int, newName string) error {
	if newName == "" {
		return ErrTeamNameRequired
	}
	team, err := s.memberTeam(ctx, userID, competitionID)
	if err != nil {
		return err
	}
	if newName == team.Name || (team.PendingName != nil && *team.PendingName == newName) {
		return ErrDuplicateNameRequest
	}
	if err := s.teamRepo.SetPendingName(ctx, team.ID, newName); err != nil {
		return fmt.Errorf("failed to set pending name of team %d: %w", team.ID, err)
	}
	s.sink.NameChangeRequested(ctx, NameChangeNote{
		CompetitionID: competitionID,
		TeamID:        team.ID,
		TeamName:      team.Name,
		RequestedName: newName,
		CoachID:       team.CoachID,
	})
	return nil
}

// authorizeTeamBatch допускает администратора к любым командам, тренера —
// только к собственным.
func (s *teamLifecycleService) authorizeTeamBatch(ctx context.Context, actorID, competitionID int, teamIDs []int) error {
	roles, err := s.roles.Roles(ctx, actorID, competitionID)
	if err != nil {
		return err
	}
	if roles.Has(models.RoleAdmin) {
		return nil
	}
	if !roles.Has(models.RoleCoach) {
		return ErrForbiddenOperation
	}
	owned, err := s.teamRepo.CountOwnedByCoach(ctx, actorID, competitionID, teamIDs)
	if err != nil {
		return fmt.Errorf("failed to check team ownership: %w", err)
	}
	if owned != len(teamIDs) {
		return ErrForbiddenOperation
	}
	return nil
}

func checkBatchOverlap(approveIDs, rejectIDs []int) error {
	seen := make(map[int]bool, len(approveIDs))
	for _, id := range approveIDs {
		seen[id] = true
	}
	for _, id := range rejectIDs {
		if seen[id] {
			return ErrBatchOverlap
		}
	}
	return nil
}

func (s *teamLifecycleService) ResolveNameChanges(ctx context.Context, actorID, competitionID int, approveIDs, rejectIDs []int) error {
	if err := checkBatchOverlap(approveIDs, rejectIDs); err != nil {
		return err
	}
	union := append(append([]int{}, approveIDs...), rejectIDs...)
	if err := s.authorizeTeamBatch(ctx, actorID, competitionID, union); err != nil {
		return err
	}

	for _, id := range approveIDs {
		team, err := s.teamRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to get team %d: %w", id, err)
		}
		if team.PendingName == nil {
			return ErrNoPendingRequest
		}
		requested := *team.PendingName
		if err := s.teamRepo.CommitPendingName(ctx, nil, id); err != nil {
			return fmt.Errorf("failed to commit pending name of team %d: %w", id, err)
		}
		s.sink.NameChangeResolved(ctx, NameChangeNote{
			CompetitionID: competitionID,
			TeamID:        id,
			TeamName:      requested,
			RequestedName: requested,
			CoachID:       team.CoachID,
			Approved:      true,
		})
	}
	for _, id := range rejectIDs {
		team, err := s.teamRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to get team %d: %w", id, err)
		}
		if team.PendingName == nil {
			return ErrNoPendingRequest
		}
		requested := *team.PendingName
		if err := s.teamRepo.ClearPendingName(ctx, nil, id); err != nil {
			return fmt.Errorf("failed to clear pending name of team %d: %w", id, err)
		}
		s.sink.NameChangeResolved(ctx, NameChangeNote{
			CompetitionID: competitionID,
			TeamID:        id,
			TeamName:      team.Name,
			RequestedName: requested,
			CoachID:       team.CoachID,
			Approved:      false,
		})
	}
	return nil
}

func (s *teamLifecycleService) RequestSiteChange(ctx context.Context, userID, competitionID, newSiteID int) error {
	team, err := s.memberTeam(ctx, userID, competitionID)
	if err != nil {
		return err
	}
	site, err := s.siteRepo.GetByID(ctx, newSiteID)
	if err != nil {
		if errors.Is(err, repositories.ErrSiteNotFound) {
			return ErrSiteNotFound
		}
		return fmt.Errorf("failed to get site %d: %w", newSiteID, err)
	}
	if site.CompetitionID != competitionID {
		return ErrSiteNotFound
	}
	if newSiteID == team.SiteID || (team.PendingSiteID != nil && *team.PendingSiteID == newSiteID) {
		return ErrDuplicateSiteRequest
	}
	if err := s.teamRepo.SetPendingSite(ctx, team.ID, newSiteID); err != nil {
		return fmt.Errorf("failed to set pending site of team %d: %w", team.ID, err)
	}
	s.sink.SiteChangeRequested(ctx, SiteChangeNote{
		CompetitionID: competitionID,
		TeamID:        team.ID,
		TeamName:      team.Name,
		SiteID:        newSiteID,
		CoachID:       team.CoachID,
	})
	return nil
}

func (s *teamLifecycleService) ResolveSiteChanges(ctx context.Context, actorID, competitionID int, approveIDs, rejectIDs []int) error {
	if err := checkBatchOverlap(approveIDs, rejectIDs); err != nil {
		return err
	}
	union := append(append([]int{}, approveIDs...), rejectIDs...)
	if err := s.authorizeTeamBatch(ctx, actorID, competitionID, union); err != nil {
		return err
	}

	for _, id := range approveIDs {
		team, err := s.teamRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to get team %d: %w", id, err)
		}
		if team.PendingSiteID == nil {
			return ErrNoPendingRequest
		}
		requested := *team.PendingSiteID
		if err := s.teamRepo.CommitPendingSite(ctx, nil, id); err != nil {
			return fmt.Errorf("failed to commit pending site of team %d: %w", id, err)
		}
		s.sink.SiteChangeResolved(ctx, SiteChangeNote{
			CompetitionID: competitionID,
			TeamID:        id,
			TeamName:      team.Name,
			SiteID:        requested,
			CoachID:       team.CoachID,
			Approved:      true,
		})
	}
	for _, id := range rejectIDs {
		team, err := s.teamRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to get team %d: %w", id, err)
		}
		if team.PendingSiteID == nil {
			return ErrNoPendingRequest
		}
		requested := *team.PendingSiteID
		if err := s.teamRepo.ClearPendingSite(ctx, nil, id); err != nil {
			return fmt.Errorf("failed to clear pending site of team %d: %w", id, err)
		}
		s.sink.SiteChangeResolved(ctx, SiteChangeNote{
			CompetitionID: competitionID,
			TeamID:        id,
			TeamName:      team.Name,
			SiteID:        requested,
			CoachID:       team.CoachID,
			Approved:      false,
		})
	}
	return nil
}

// AssignSeats назначает места пакетом. Неудавшиеся назначения не откатывают
// уже применённые — историческое поведение, сохраняется намеренно; строгий
// режим включается через strictSeats.
func (s *teamLifecycleService) AssignSeats(ctx context.Context, actorID, competitionID int, assignments []SeatAssignment) ([]SeatAssignmentResult, error) {
	if len(assignments) == 0 {
		return nil, ErrEmptyBatch
	}
	roles, err := s.roles.Roles(ctx, actorID, competitionID)
	if err != nil {
		return nil, err
	}
	if !roles.Has(models.RoleAdmin) {
		if !roles.Has(models.RoleSiteCoordinator) {
			return nil, ErrForbiddenOperation
		}
		coordinated, err := s.roles.CoordinatedSites(ctx, actorID, competitionID)
		if err != nil {
			return nil, err
		}
		allowed := make(map[int]bool, len(coordinated))
		for _, id := range coordinated {
			allowed[id] = true
		}
		for _, a := range assignments {
			if !allowed[a.SiteID] {
				return nil, ErrForbiddenOperation
			}
		}
	}

	results := make([]SeatAssignmentResult, 0, len(assignments))
	for _, a := range assignments {
		res := SeatAssignmentResult{SeatAssignment: a, OK: true}
		if err := s.teamRepo.UpdateSeat(ctx, a.TeamID, a.SiteID, a.Seat); err != nil {
			res.OK = false
			if errors.Is(err, repositories.ErrTeamNotAtSite) {
				res.Error = ErrTeamNotFound.Error()
			} else {
				res.Error = err.Error()
			}
			if s.strictSeats {
				results = append(results, res)
				return results, ErrTeamNotFound
			}
		} else {
			s.sink.SeatAssigned(ctx, SeatNote{
				CompetitionID: competitionID,
				SiteID:        a.SiteID,
				TeamID:        a.TeamID,
				Seat:          a.Seat,
			})
		}
		results = append(results, res)
	}
	return results, nil
}

// ApproveTeamRegistration открывает командам ворота регистрации: статус
// переходит из pending в unregistered. Финальный registered ставится
// отдельным шагом RegisterTeams — особенность исходной предметной модели.
func (s *teamLifecycleService) ApproveTeamRegistration(ctx context.Context, actorID, competitionID int, teamIDs []int) error {
	if len(teamIDs) == 0 {
		return ErrEmptyBatch
	}
	statuses, err := s.teamRepo.GetStatuses(ctx, teamIDs)
	if err != nil {
		return fmt.Errorf("failed to load team statuses: %w", err)
	}
	for _, id := range teamIDs {
		status, ok := statuses[id]
		if !ok {
			return ErrTeamNotFound
		}
		if status == models.TeamStatusRegistered {
			return ErrTeamAlreadyRegistered
		}
	}
	if err := s.authorizeTeamBatch(ctx, actorID, competitionID, teamIDs); err != nil {
		return err
	}
	if err := s.teamRepo.UpdateStatusBatch(ctx, nil, teamIDs, models.TeamStatusUnregistered); err != nil {
		return fmt.Errorf("failed to approve registration: %w", err)
	}
	return nil
}

func (s *teamLifecycleService) RegisterTeams(ctx context.Context, actorID, competitionID int, teamIDs []int) error {
	if len(teamIDs) == 0 {
		return ErrEmptyBatch
	}
	if err := s.authorizeTeamBatch(ctx, actorID, competitionID, teamIDs); err != nil {
		return err
	}
	if err := s.teamRepo.UpdateStatusBatch(ctx, nil, teamIDs, models.TeamStatusRegistered); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to register teams: %w", err)
	}
	return nil
}

func (s *teamLifecycleService) GetTeamByMember(ctx context.Context, userID, competitionID int) (*models.Team, error) {
	team, err := s.memberTeam(ctx, userID, competitionID)
	if err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, team); err != nil {
		return nil, err
	}
	s.attachLogoURL(team)
	return team, nil
}

func (s *teamLifecycleService) TeamJoinCode(ctx context.Context, userID, competitionID int) (string, error) {
	team, err := s.memberTeam(ctx, userID, competitionID)
	if err != nil {
		return "", err
	}
	return s.codec.Encode(team.ID), nil
}

func (s *teamLifecycleService) UploadTeamLogo(ctx context.Context, userID, competitionID int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("logo storage is not configured")
	}
	team, err := s.memberTeam(ctx, userID, competitionID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo", team.ID)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo of team %d: %w", team.ID, err)
	}
	if err := s.teamRepo.UpdateLogoKey(ctx, team.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to save logo key of team %d: %w", team.ID, err)
	}
	team.LogoKey = &result.Key
	s.attachLogoURL(team)
	return team, nil
}

func (s *teamLifecycleService) attachLogoURL(team *models.Team) {
	if s.uploader == nil || team.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.LogoKey)
	team.LogoURL = &url
}
