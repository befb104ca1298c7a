package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Olzhas-T/contest-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict")
	ErrTeamSiteInvalid  = errors.New("team site conflict or invalid")
	ErrTeamNotAtSite    = errors.New("team is not attending the site")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	// GetByMember возвращает команду пользователя в рамках соревнования.
	GetByMember(ctx context.Context, userID, competitionID int) (*models.Team, error)
	ListPendingByCoach(ctx context.Context, competitionID, coachID int) ([]*models.Team, error)
	// ListWithPendingRequests — команды с неразобранными заявками на смену
	// имени или площадки (для напоминаний тренерам).
	ListWithPendingRequests(ctx context.Context, competitionID int) ([]*models.Team, error)

	UpdateSize(ctx context.Context, exec SQLExecutor, id, size int) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TeamStatus) error
	UpdateStatusBatch(ctx context.Context, exec SQLExecutor, ids []int, status models.TeamStatus) error
	GetStatuses(ctx context.Context, ids []int) (map[int]models.TeamStatus, error)
	// CountOwnedByCoach считает, сколько команд из ids принадлежит тренеру.
	CountOwnedByCoach(ctx context.Context, coachID, competitionID int, ids []int) (int, error)

	SetPendingName(ctx context.Context, id int, name string) error
	CommitPendingName(ctx context.Context, exec SQLExecutor, id int) error
	ClearPendingName(ctx context.Context, exec SQLExecutor, id int) error
	SetPendingSite(ctx context.Context, id, siteID int) error
	CommitPendingSite(ctx context.Context, exec SQLExecutor, id int) error
	ClearPendingSite(ctx context.Context, exec SQLExecutor, id int) error

	// UpdateSeat назначает место команде, находящейся на указанной площадке.
	UpdateSeat(ctx context.Context, teamID, siteID int, seat string) error
	UpdateLogoKey(ctx context.Context, id int, key *string) error

	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const teamColumns = `id, competition_id, name, pending_name, university_id, coach_id,
	site_id, pending_site_id, seat, size, status, logo_key, created_at`

func scanTeam(scanner interface{ Scan(dest ...interface{}) error }) (*models.Team, error) {
	team := &models.Team{}
	err := scanner.Scan(
		&team.ID,
		&team.CompetitionID,
		&team.Name,
		&team.PendingName,
		&team.UniversityID,
		&team.CoachID,
		&team.SiteID,
		&team.PendingSiteID,
		&team.Seat,
		&team.Size,
		&team.Status,
		&team.LogoKey,
		&team.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	query := `
		INSERT INTO teams (competition_id, name, university_id, coach_id, site_id, size, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		team.CompetitionID,
		team.Name,
		team.UniversityID,
		team.CoachID,
		team.SiteID,
		team.Size,
		team.Status,
	).Scan(&team.ID, &team.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "teams_competition_id_name_key" {
					return ErrTeamNameConflict
				}
			case "23503":
				if pqErr.Constraint == "teams_site_id_fkey" {
					return ErrTeamSiteInvalid
				}
			}
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	team, err := scanTeam(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) GetByMember(ctx context.Context, userID, competitionID int) (*models.Team, error) {
	query := `
		SELECT t.id, t.competition_id, t.name, t.pending_name, t.university_id, t.coach_id,
			t.site_id, t.pending_site_id, t.seat, t.size, t.status, t.logo_key, t.created_at
		FROM teams t
		JOIN participants p ON p.team_id = t.id
		WHERE p.user_id = $1 AND t.competition_id = $2`

	team, err := scanTeam(r.db.QueryRowContext(ctx, query, userID, competitionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) ListPendingByCoach(ctx context.Context, competitionID, coachID int) ([]*models.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE competition_id = $1 AND coach_id = $2 AND status = $3
		ORDER BY id`

	return r.list(ctx, query, competitionID, coachID, models.TeamStatusPending)
}

func (r *postgresTeamRepository) ListWithPendingRequests(ctx context.Context, competitionID int) ([]*models.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE competition_id = $1 AND (pending_name IS NOT NULL OR pending_site_id IS NOT NULL)
		ORDER BY coach_id, id`

	return r.list(ctx, query, competitionID)
}

func (r *postgresTeamRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateSize(ctx context.Context, exec SQLExecutor, id, size int) error {
	query := `UPDATE teams SET size = $1 WHERE id = $2`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, size, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TeamStatus) error {
	query := `UPDATE teams SET status = $1 WHERE id = $2`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateStatusBatch(ctx context.Context, exec SQLExecutor, ids []int, status models.TeamStatus) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE teams SET status = $1 WHERE id = ANY($2)`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, status, pq.Array(ids))
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if int(rowsAffected) != len(ids) {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) GetStatuses(ctx context.Context, ids []int) (map[int]models.TeamStatus, error) {
	query := `SELECT id, status FROM teams WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make(map[int]models.TeamStatus, len(ids))
	for rows.Next() {
		var id int
		var status models.TeamStatus
		if scanErr := rows.Scan(&id, &status); scanErr != nil {
			return nil, scanErr
		}
		statuses[id] = status
	}
	return statuses, rows.Err()
}

func (r *postgresTeamRepository) CountOwnedByCoach(ctx context.Context, coachID, competitionID int, ids []int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM teams
		WHERE coach_id = $1 AND competition_id = $2 AND id = ANY($3)`

	var count int
	err := r.db.QueryRowContext(ctx, query, coachID, competitionID, pq.Array(ids)).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresTeamRepository) SetPendingName(ctx context.Context, id int, name string) error {
	query := `UPDATE teams SET pending_name = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, name, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) CommitPendingName(ctx context.Context, exec SQLExecutor, id int) error {
	query := `
		UPDATE teams SET name = pending_name, pending_name = NULL
		WHERE id = $1 AND pending_name IS NOT NULL`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrTeamNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ClearPendingName(ctx context.Context, exec SQLExecutor, id int) error {
	query := `UPDATE teams SET pending_name = NULL WHERE id = $1`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) SetPendingSite(ctx context.Context, id, siteID int) error {
	query := `UPDATE teams SET pending_site_id = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, siteID, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTeamSiteInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) CommitPendingSite(ctx context.Context, exec SQLExecutor, id int) error {
	query := `
		UPDATE teams SET site_id = pending_site_id, pending_site_id = NULL, seat = NULL
		WHERE id = $1 AND pending_site_id IS NOT NULL`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ClearPendingSite(ctx context.Context, exec SQLExecutor, id int) error {
	query := `UPDATE teams SET pending_site_id = NULL WHERE id = $1`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateSeat(ctx context.Context, teamID, siteID int, seat string) error {
	query := `UPDATE teams SET seat = $1 WHERE id = $2 AND site_id = $3`

	result, err := r.db.ExecContext(ctx, query, seat, teamID, siteID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotAtSite)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, key *string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	query := `DELETE FROM teams WHERE id = $1`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
