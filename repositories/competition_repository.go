package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Olzhas-T/contest-system/models"
)

var ErrCompetitionNotFound = errors.New("competition not found")

type CompetitionRepository interface {
	GetByID(ctx context.Context, id int) (*models.Competition, error)
	GetByCode(ctx context.Context, code string) (*models.Competition, error)
	ListIDs(ctx context.Context) ([]int, error)
}

type postgresCompetitionRepository struct {
	db *sql.DB
}

func NewPostgresCompetitionRepository(db *sql.DB) CompetitionRepository {
	return &postgresCompetitionRepository{db: db}
}

func (r *postgresCompetitionRepository) GetByID(ctx context.Context, id int) (*models.Competition, error) {
	query := `
		SELECT id, name, code, team_capacity, created_at
		FROM competitions
		WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresCompetitionRepository) GetByCode(ctx context.Context, code string) (*models.Competition, error) {
	query := `
		SELECT id, name, code, team_capacity, created_at
		FROM competitions
		WHERE code = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

func (r *postgresCompetitionRepository) ListIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM competitions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresCompetitionRepository) scanOne(row *sql.Row) (*models.Competition, error) {
	comp := &models.Competition{}
	err := row.Scan(
		&comp.ID,
		&comp.Name,
		&comp.Code,
		&comp.TeamCapacity,
		&comp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}
	return comp, nil
}
