package db

import (
	"context"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
)

const notificationColumns = `id, user_id, pin_id, task_id, title, message, type, is_read, read_at, created_at`

func (db *Postgres) CreateNotification(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, pin_id, task_id, title, message, type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
		RETURNING ` + notificationColumns
	row := db.Pool.QueryRow(ctx, query, n.UserID, n.PinID, n.TaskID, n.Title, n.Message, n.Type)
	return scanNotification(row)
}

func (db *Postgres) GetNotificationByID(ctx context.Context, id int64) (*model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	return scanNotification(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) GetNotificationsByUserID(ctx context.Context, userID int64) ([]model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

func (db *Postgres) CountUnreadNotifications(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID,
	).Scan(&count)
	return count, err
}

func (db *Postgres) SetNotificationRead(ctx context.Context, id int64, read bool) (*model.Notification, error) {
	query := `
		UPDATE notifications
		SET is_read = $2,
		    read_at = CASE WHEN $2 THEN NOW() ELSE NULL END
		WHERE id = $1
		RETURNING ` + notificationColumns
	return scanNotification(db.Pool.QueryRow(ctx, query, id, read))
}

func (db *Postgres) DeleteNotification(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	return err
}

func scanNotification(row rowScanner) (*model.Notification, error) {
	var n model.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.PinID,
		&n.TaskID,
		&n.Title,
		&n.Message,
		&n.Type,
		&n.IsRead,
		&n.ReadAt,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
