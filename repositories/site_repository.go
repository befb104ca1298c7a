package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Olzhas-T/contest-system/models"
)

var ErrSiteNotFound = errors.New("site not found")

type SiteRepository interface {
	GetByID(ctx context.Context, id int) (*models.Site, error)
	// ListCoordinatedIDs возвращает площадки, которыми управляет координатор
	// в рамках соревнования.
	ListCoordinatedIDs(ctx context.Context, userID, competitionID int) ([]int, error)
}

type postgresSiteRepository struct {
	db *sql.DB
}

func NewPostgresSiteRepository(db *sql.DB) SiteRepository {
	return &postgresSiteRepository{db: db}
}

func (r *postgresSiteRepository) GetByID(ctx context.Context, id int) (*models.Site, error) {
	query := `
		SELECT id, competition_id, name, address, capacity
		FROM sites
		WHERE id = $1`

	site := &models.Site{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&site.ID,
		&site.CompetitionID,
		&site.Name,
		&site.Address,
		&site.Capacity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}
	return site, nil
}

func (r *postgresSiteRepository) ListCoordinatedIDs(ctx context.Context, userID, competitionID int) ([]int, error) {
	query := `
		SELECT sc.site_id
		FROM site_coordinators sc
		JOIN sites s ON s.id = sc.site_id
		WHERE sc.user_id = $1 AND s.competition_id = $2`

	rows, err := r.db.QueryContext(ctx, query, userID, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
