package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Olzhas-T/contest-system/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, n *models.Notification) error
	ListByUser(ctx context.Context, userID, competitionID int) ([]*models.Notification, error)
	// DeleteByTeamID удаляет перекрёстные ссылки поглощённой или распущенной
	// команды. Отсутствие строк не ошибка.
	DeleteByTeamID(ctx context.Context, exec SQLExecutor, teamID int) error
}

type postgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresNotificationRepository) Create(ctx context.Context, exec SQLExecutor, n *models.Notification) error {
	query := `
		INSERT INTO notifications (competition_id, team_id, user_id, kind, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.getExecutor(exec).QueryRowContext(ctx, query,
		n.CompetitionID,
		n.TeamID,
		n.UserID,
		n.Kind,
		n.Payload,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *postgresNotificationRepository) ListByUser(ctx context.Context, userID, competitionID int) ([]*models.Notification, error) {
	query := `
		SELECT id, competition_id, team_id, user_id, kind, payload, created_at
		FROM notifications
		WHERE user_id = $1 AND competition_id = $2
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*models.Notification, 0)
	for rows.Next() {
		n := &models.Notification{}
		if scanErr := rows.Scan(
			&n.ID,
			&n.CompetitionID,
			&n.TeamID,
			&n.UserID,
			&n.Kind,
			&n.Payload,
			&n.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *postgresNotificationRepository) DeleteByTeamID(ctx context.Context, exec SQLExecutor, teamID int) error {
	query := `DELETE FROM notifications WHERE team_id = $1`

	_, err := r.getExecutor(exec).ExecContext(ctx, query, teamID)
	return err
}
