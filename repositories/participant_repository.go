package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Olzhas-T/contest-system/models"
	"github.com/lib/pq"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrParticipantConflict = errors.New("participant conflict: user already registered for this competition")
)

type ParticipantRepository interface {
	Create(ctx context.Context, exec SQLExecutor, p *models.Participant) error
	GetByUserAndCompetition(ctx context.Context, userID, competitionID int) (*models.Participant, error)
	// ListByTeamIDs загружает участников пачкой, сгруппированных по командам.
	// Порядок внутри команды — порядок создания записей (порядок слотов).
	ListByTeamIDs(ctx context.Context, teamIDs []int) (map[int][]*models.Participant, error)
	UpdateTeam(ctx context.Context, exec SQLExecutor, participantID, teamID int) error
	// ReassignTeam переводит перечисленных участников в команду teamID.
	ReassignTeam(ctx context.Context, exec SQLExecutor, teamID int, participantIDs []int) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresParticipantRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Participant) error {
	query := `
		INSERT INTO participants (user_id, competition_id, team_id, remote, degree_year,
			rating, has_national_prize, has_international_prize, past_regional)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		p.UserID,
		p.CompetitionID,
		p.TeamID,
		p.Remote,
		p.DegreeYear,
		p.Rating,
		p.HasNationalPrize,
		p.HasInternationalPrize,
		p.PastRegional,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" && pqErr.Constraint == "participants_user_id_competition_id_key" {
				return ErrParticipantConflict
			}
		}
		return err
	}

	if len(p.CompletedCourses) > 0 {
		if err := r.insertCourses(ctx, exec, p.ID, p.CompletedCourses); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresParticipantRepository) insertCourses(ctx context.Context, exec SQLExecutor, participantID int, courses []models.CourseCategory) error {
	query := `INSERT INTO participant_courses (participant_id, category) VALUES ($1, $2)`
	for _, course := range courses {
		if _, err := r.getExecutor(exec).ExecContext(ctx, query, participantID, course); err != nil {
			return err
		}
	}
	return nil
}

const participantColumns = `p.id, p.user_id, p.competition_id, p.team_id, p.remote, p.degree_year,
	p.rating, p.has_national_prize, p.has_international_prize, p.past_regional, p.score, p.created_at`

func scanParticipant(scanner interface{ Scan(dest ...interface{}) error }) (*models.Participant, error) {
	p := &models.Participant{}
	err := scanner.Scan(
		&p.ID,
		&p.UserID,
		&p.CompetitionID,
		&p.TeamID,
		&p.Remote,
		&p.DegreeYear,
		&p.Rating,
		&p.HasNationalPrize,
		&p.HasInternationalPrize,
		&p.PastRegional,
		&p.Score,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresParticipantRepository) GetByUserAndCompetition(ctx context.Context, userID, competitionID int) (*models.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants p
		WHERE p.user_id = $1 AND p.competition_id = $2`

	p, err := scanParticipant(r.db.QueryRowContext(ctx, query, userID, competitionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	if err := r.loadCourses(ctx, []*models.Participant{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresParticipantRepository) ListByTeamIDs(ctx context.Context, teamIDs []int) (map[int][]*models.Participant, error) {
	byTeam := make(map[int][]*models.Participant, len(teamIDs))
	if len(teamIDs) == 0 {
		return byTeam, nil
	}

	query := `
		SELECT ` + participantColumns + `
		FROM participants p
		WHERE p.team_id = ANY($1)
		ORDER BY p.team_id, p.id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(teamIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all := make([]*models.Participant, 0)
	for rows.Next() {
		p, scanErr := scanParticipant(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		all = append(all, p)
		byTeam[p.TeamID] = append(byTeam[p.TeamID], p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadCourses(ctx, all); err != nil {
		return nil, err
	}
	return byTeam, nil
}

func (r *postgresParticipantRepository) loadCourses(ctx context.Context, participants []*models.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	byID := make(map[int]*models.Participant, len(participants))
	ids := make([]int, 0, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	query := `
		SELECT participant_id, category
		FROM participant_courses
		WHERE participant_id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var participantID int
		var category models.CourseCategory
		if scanErr := rows.Scan(&participantID, &category); scanErr != nil {
			return scanErr
		}
		if p, ok := byID[participantID]; ok {
			p.CompletedCourses = append(p.CompletedCourses, category)
		}
	}
	return rows.Err()
}

func (r *postgresParticipantRepository) UpdateTeam(ctx context.Context, exec SQLExecutor, participantID, teamID int) error {
	query := `UPDATE participants SET team_id = $1 WHERE id = $2`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, teamID, participantID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) ReassignTeam(ctx context.Context, exec SQLExecutor, teamID int, participantIDs []int) error {
	if len(participantIDs) == 0 {
		return nil
	}
	query := `UPDATE participants SET team_id = $1 WHERE id = ANY($2)`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, teamID, pq.Array(participantIDs))
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if int(rowsAffected) != len(participantIDs) {
		return ErrParticipantNotFound
	}
	return nil
}

func (r *postgresParticipantRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	query := `DELETE FROM participants WHERE id = $1`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}
